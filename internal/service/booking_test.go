package service_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhanridho/bioskop-booking/internal/model"
	"github.com/farhanridho/bioskop-booking/internal/queue"
	"github.com/farhanridho/bioskop-booking/internal/repository"
	"github.com/farhanridho/bioskop-booking/internal/service"
)

// publisherRecorder captures published events instead of talking to a
// broker.
type publisherRecorder struct {
	events []queue.BookingCreatedEvent
}

func (p *publisherRecorder) PublishBookingCreated(_ context.Context, ev queue.BookingCreatedEvent) error {
	p.events = append(p.events, ev)
	return nil
}

func newBookingService(t *testing.T) (*service.BookingService, sqlmock.Sqlmock, *publisherRecorder) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rec := &publisherRecorder{}
	svc := service.NewBookingService(
		db,
		repository.NewBookingRepo(db),
		repository.NewShowtimeRepo(db),
		repository.NewSeatRepo(db),
		repository.NewAvailabilityRepo(db),
		rec,
	)
	return svc, mock, rec
}

const (
	showtimeForUpdateQ = `SELECT id, movie_id, bioskop_id, price FROM showtimes WHERE id = ? FOR UPDATE`
	countSeatsQ        = `SELECT COUNT(*) FROM seats WHERE bioskop_id = ? AND id IN `
	unavailableQ       = `SELECT DISTINCT bs.seat_id`
	codeExistsQ        = `SELECT 1 FROM bookings WHERE booking_code = ?`
	insertBookingQ     = `INSERT INTO bookings (showtime_id, customer_name, customer_email, customer_phone, total_price, status, booking_code)`
	bookingTimesQ      = `SELECT created_at, updated_at FROM bookings WHERE id = ?`
	insertSeatsQ       = `INSERT INTO booking_seats (booking_id, seat_id) VALUES `
	seatNumbersQ       = `SELECT se.seat_number`
	findIDByCodeQ      = `SELECT id FROM bookings WHERE booking_code = ? FOR UPDATE`
	cancelQ            = `UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	bookingByIDQ       = `WHERE bk.id = ?`
)

var bookingJoinColumns = []string{
	"id", "showtime_id", "customer_name", "customer_email", "customer_phone",
	"total_price", "status", "booking_code", "created_at", "updated_at",
	"st_id", "st_movie_id", "st_bioskop_id", "st_show_date", "st_show_time", "st_price", "st_created_at", "st_updated_at",
	"m_id", "m_title", "m_description", "m_duration_min", "m_genre", "m_rating", "m_poster_url", "m_created_at", "m_updated_at",
	"b_id", "b_name", "b_address", "b_created_at", "b_updated_at",
}

func hydratedBookingRow(id uint64, code, status string, total float64, now time.Time) *sqlmock.Rows {
	showDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(bookingJoinColumns).AddRow(
		id, 1, "Budi", "budi@example.com", "0812000111", total, status, code, now, now,
		1, 7, 3, showDate, "19:30", 50000.0, now, now,
		7, "Laskar Pelangi", "desc", 120, "Drama", "PG", "http://poster", now, now,
		3, "Bioskop Merdeka", "Jl. Sudirman 1", now, now,
	)
}

func validInput() service.CreateBookingInput {
	return service.CreateBookingInput{
		ShowtimeID:    1,
		CustomerName:  "Budi",
		CustomerEmail: "budi@example.com",
		CustomerPhone: "0812000111",
		SeatIDs:       []uint64{4, 5},
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	svc, mock, rec := newBookingService(t)
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(showtimeForUpdateQ)).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "bioskop_id", "price"}).AddRow(1, 7, 3, 50000.0))
	mock.ExpectQuery(regexp.QuoteMeta(countSeatsQ)).
		WithArgs(uint64(3), uint64(4), uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(unavailableQ)).
		WithArgs(uint64(1), uint64(4), uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))
	mock.ExpectQuery(regexp.QuoteMeta(codeExistsQ)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta(insertBookingQ)).
		WithArgs(uint64(1), "Budi", "budi@example.com", "0812000111", 100000.0, model.BookingStatusConfirmed, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectQuery(regexp.QuoteMeta(bookingTimesQ)).
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(regexp.QuoteMeta(insertSeatsQ)).
		WithArgs(uint64(10), uint64(4), uint64(10), uint64(5)).
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectQuery(regexp.QuoteMeta(seatNumbersQ)).
		WithArgs(uint64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("A1").AddRow("A2"))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(bookingByIDQ)).
		WithArgs(uint64(10)).
		WillReturnRows(hydratedBookingRow(10, "BK12345678", model.BookingStatusConfirmed, 100000.0, now))

	booking, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, booking)
	assert.Equal(t, uint64(10), booking.ID)
	assert.Equal(t, model.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, 100000.0, booking.TotalPrice)
	require.NotNil(t, booking.Showtime)
	assert.Equal(t, "Laskar Pelangi", booking.Showtime.Movie.Title)
	assert.Equal(t, "Bioskop Merdeka", booking.Showtime.Bioskop.Name)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "BK12345678", rec.events[0].BookingCode)
	assert.Equal(t, []string{"A1", "A2"}, rec.events[0].SeatNumbers)
	assert.Equal(t, 100000.0, rec.events[0].TotalPrice)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingSeatConflictRollsBack(t *testing.T) {
	svc, mock, rec := newBookingService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(showtimeForUpdateQ)).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "bioskop_id", "price"}).AddRow(1, 7, 3, 50000.0))
	mock.ExpectQuery(regexp.QuoteMeta(countSeatsQ)).
		WithArgs(uint64(3), uint64(4), uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(unavailableQ)).
		WithArgs(uint64(1), uint64(4), uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(5))
	mock.ExpectRollback()

	booking, err := svc.Create(context.Background(), validInput())
	require.Error(t, err)
	assert.Nil(t, booking)

	var confErr *service.SeatConflictError
	require.ErrorAs(t, err, &confErr)
	assert.Equal(t, []uint64{5}, confErr.SeatIDs)

	// The whole request fails; nothing was inserted and no event left.
	assert.Empty(t, rec.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingShowtimeNotFound(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(showtimeForUpdateQ)).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	in := validInput()
	in.ShowtimeID = 99
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, repository.ErrShowtimeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingSeatFromAnotherBioskop(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(showtimeForUpdateQ)).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "bioskop_id", "price"}).AddRow(1, 7, 3, 50000.0))
	// Only one of the two requested seats belongs to bioskop 3.
	mock.ExpectQuery(regexp.QuoteMeta(countSeatsQ)).
		WithArgs(uint64(3), uint64(4), uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), validInput())
	assert.ErrorIs(t, err, service.ErrSeatNotInBioskop)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingValidation(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	cases := []struct {
		name   string
		mutate func(*service.CreateBookingInput)
		field  string
	}{
		{"missing showtime", func(in *service.CreateBookingInput) { in.ShowtimeID = 0 }, "showtime_id"},
		{"missing name", func(in *service.CreateBookingInput) { in.CustomerName = "  " }, "customer_name"},
		{"missing email", func(in *service.CreateBookingInput) { in.CustomerEmail = "" }, "customer_email"},
		{"missing phone", func(in *service.CreateBookingInput) { in.CustomerPhone = "" }, "customer_phone"},
		{"no seats", func(in *service.CreateBookingInput) { in.SeatIDs = nil }, "seat_ids"},
		{"only zero seats", func(in *service.CreateBookingInput) { in.SeatIDs = []uint64{0, 0} }, "seat_ids"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := svc.Create(context.Background(), in)
			var vErr *service.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
	// Validation failures never touch the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingDeduplicatesSeats(t *testing.T) {
	svc, mock, _ := newBookingService(t)
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(showtimeForUpdateQ)).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "bioskop_id", "price"}).AddRow(1, 7, 3, 50000.0))
	// Seat 4 requested three times counts as one seat everywhere.
	mock.ExpectQuery(regexp.QuoteMeta(countSeatsQ)).
		WithArgs(uint64(3), uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(unavailableQ)).
		WithArgs(uint64(1), uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))
	mock.ExpectQuery(regexp.QuoteMeta(codeExistsQ)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta(insertBookingQ)).
		WithArgs(uint64(1), "Budi", "budi@example.com", "0812000111", 50000.0, model.BookingStatusConfirmed, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(regexp.QuoteMeta(bookingTimesQ)).
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(regexp.QuoteMeta(insertSeatsQ)).
		WithArgs(uint64(11), uint64(4)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta(seatNumbersQ)).
		WithArgs(uint64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("A1"))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(bookingByIDQ)).
		WithArgs(uint64(11)).
		WillReturnRows(hydratedBookingRow(11, "BK00000001", model.BookingStatusConfirmed, 50000.0, now))

	in := validInput()
	in.SeatIDs = []uint64{4, 4, 4}
	booking, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	// One distinct seat: total price is a single seat's price.
	assert.Equal(t, 50000.0, booking.TotalPrice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRetriesCodeCollision(t *testing.T) {
	svc, mock, _ := newBookingService(t)
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(showtimeForUpdateQ)).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "bioskop_id", "price"}).AddRow(1, 7, 3, 50000.0))
	mock.ExpectQuery(regexp.QuoteMeta(countSeatsQ)).
		WithArgs(uint64(3), uint64(4), uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(unavailableQ)).
		WithArgs(uint64(1), uint64(4), uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))
	// First candidate code is taken, the second is free.
	mock.ExpectQuery(regexp.QuoteMeta(codeExistsQ)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(codeExistsQ)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta(insertBookingQ)).
		WithArgs(uint64(1), "Budi", "budi@example.com", "0812000111", 100000.0, model.BookingStatusConfirmed, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectQuery(regexp.QuoteMeta(bookingTimesQ)).
		WithArgs(uint64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(regexp.QuoteMeta(insertSeatsQ)).
		WithArgs(uint64(12), uint64(4), uint64(12), uint64(5)).
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectQuery(regexp.QuoteMeta(seatNumbersQ)).
		WithArgs(uint64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("A1").AddRow("A2"))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(bookingByIDQ)).
		WithArgs(uint64(12)).
		WillReturnRows(hydratedBookingRow(12, "BK99999999", model.BookingStatusConfirmed, 100000.0, now))

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingInsertFailureRollsBack(t *testing.T) {
	svc, mock, rec := newBookingService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(showtimeForUpdateQ)).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "bioskop_id", "price"}).AddRow(1, 7, 3, 50000.0))
	mock.ExpectQuery(regexp.QuoteMeta(countSeatsQ)).
		WithArgs(uint64(3), uint64(4), uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(unavailableQ)).
		WithArgs(uint64(1), uint64(4), uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))
	mock.ExpectQuery(regexp.QuoteMeta(codeExistsQ)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta(insertBookingQ)).
		WithArgs(uint64(1), "Budi", "budi@example.com", "0812000111", 100000.0, model.BookingStatusConfirmed, sqlmock.AnyArg()).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), validInput())
	require.Error(t, err)
	assert.Empty(t, rec.events)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBooking(t *testing.T) {
	svc, mock, _ := newBookingService(t)
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(findIDByCodeQ)).
		WithArgs("BK12345678").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta(cancelQ)).
		WithArgs(model.BookingStatusCancelled, uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(bookingByIDQ)).
		WithArgs(uint64(10)).
		WillReturnRows(hydratedBookingRow(10, "BK12345678", model.BookingStatusCancelled, 100000.0, now))

	booking, err := svc.Cancel(context.Background(), "BK12345678")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBookingNotFound(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(findIDByCodeQ)).
		WithArgs("BKUNKNOWN1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.Cancel(context.Background(), "BKUNKNOWN1")
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Cancelling a booking frees its seats: once the availability query no
// longer reports them (status flipped to cancelled), a new booking for
// the exact same seats goes through.
func TestCreateBookingSucceedsAfterCancellation(t *testing.T) {
	svc, mock, _ := newBookingService(t)
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(findIDByCodeQ)).
		WithArgs("BK12345678").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectExec(regexp.QuoteMeta(cancelQ)).
		WithArgs(model.BookingStatusCancelled, uint64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(bookingByIDQ)).
		WithArgs(uint64(10)).
		WillReturnRows(hydratedBookingRow(10, "BK12345678", model.BookingStatusCancelled, 100000.0, now))

	_, err := svc.Cancel(context.Background(), "BK12345678")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(showtimeForUpdateQ)).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "bioskop_id", "price"}).AddRow(1, 7, 3, 50000.0))
	mock.ExpectQuery(regexp.QuoteMeta(countSeatsQ)).
		WithArgs(uint64(3), uint64(4), uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	// The cancelled booking's seats no longer count as claimed.
	mock.ExpectQuery(regexp.QuoteMeta(unavailableQ)).
		WithArgs(uint64(1), uint64(4), uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))
	mock.ExpectQuery(regexp.QuoteMeta(codeExistsQ)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta(insertBookingQ)).
		WithArgs(uint64(1), "Budi", "budi@example.com", "0812000111", 100000.0, model.BookingStatusConfirmed, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(13, 1))
	mock.ExpectQuery(regexp.QuoteMeta(bookingTimesQ)).
		WithArgs(uint64(13)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(regexp.QuoteMeta(insertSeatsQ)).
		WithArgs(uint64(13), uint64(4), uint64(13), uint64(5)).
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectQuery(regexp.QuoteMeta(seatNumbersQ)).
		WithArgs(uint64(13)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("A1").AddRow("A2"))
	mock.ExpectCommit()
	mock.ExpectQuery(regexp.QuoteMeta(bookingByIDQ)).
		WithArgs(uint64(13)).
		WillReturnRows(hydratedBookingRow(13, "BK55555555", model.BookingStatusConfirmed, 100000.0, now))

	booking, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, uint64(13), booking.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatsForShowtime(t *testing.T) {
	svc, mock, _ := newBookingService(t)
	now := time.Now().UTC().Truncate(time.Second)
	showDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	showtimeRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{
			"id", "movie_id", "bioskop_id", "show_date", "show_time", "price", "created_at", "updated_at",
			"m_id", "m_title", "m_description", "m_duration_min", "m_genre", "m_rating", "m_poster_url", "m_created_at", "m_updated_at",
			"b_id", "b_name", "b_address", "b_created_at", "b_updated_at",
		}).AddRow(
			1, 7, 3, showDate, "19:30", 50000.0, now, now,
			7, "Laskar Pelangi", "desc", 120, "Drama", "PG", "http://poster", now, now,
			3, "Bioskop Merdeka", "Jl. Sudirman 1", now, now,
		)
	}
	seatRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "bioskop_id", "seat_number", "row_label", "col_number", "seat_type"}).
			AddRow(4, 3, "A1", "A", 1, "regular").
			AddRow(5, 3, "A2", "A", 2, "regular").
			AddRow(6, 3, "A3", "A", 3, "premium")
	}
	expectView := func(claimed *sqlmock.Rows) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM showtimes st`)).
			WithArgs(uint64(1)).
			WillReturnRows(showtimeRows())
		mock.ExpectQuery(regexp.QuoteMeta(`FROM seats WHERE bioskop_id = ?`)).
			WithArgs(uint64(3)).
			WillReturnRows(seatRows())
		mock.ExpectQuery(regexp.QuoteMeta(unavailableQ)).
			WithArgs(uint64(1)).
			WillReturnRows(claimed)
	}

	expectView(sqlmock.NewRows([]string{"seat_id"}).AddRow(5))
	view, err := svc.SeatsForShowtime(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, view, 3)
	assert.True(t, view[0].IsAvailable)
	assert.False(t, view[1].IsAvailable) // seat 5 held by an active booking
	assert.True(t, view[2].IsAvailable)

	// Identical call with unchanged bookings yields identical flags.
	expectView(sqlmock.NewRows([]string{"seat_id"}).AddRow(5))
	again, err := svc.SeatsForShowtime(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, view, again)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatsForShowtimeUnknownShowtime(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM showtimes st`)).
		WithArgs(uint64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.SeatsForShowtime(context.Background(), 42)
	assert.ErrorIs(t, err, repository.ErrShowtimeNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
