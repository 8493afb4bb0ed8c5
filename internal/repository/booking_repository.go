package repository // repository defines data access for bookings and their seats

import (
	"context"
	"database/sql"
	"errors"

	"github.com/farhanridho/bioskop-booking/internal/model"
)

// BookingRepo provides CRUD operations for bookings and the
// booking_seats join records.  Bookings and their seat links are
// always written together inside one transaction supplied by the
// caller; the Tx-suffixed methods never commit or roll back.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// CreateTx inserts a new booking within the scope of an existing
// transaction.  It populates the generated ID and the DB-default
// timestamps on the provided record.  The caller must commit or roll
// back the transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (showtime_id, customer_name, customer_email, customer_phone, total_price, status, booking_code)
               VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.ShowtimeID, b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.TotalPrice, b.Status, b.BookingCode)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the row to populate timestamps assigned by the DB.
	const sel = `SELECT created_at, updated_at FROM bookings WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt)
}

// CreateSeatsBulkTx inserts one booking_seats row per seat in a single
// statement, all linked to the same booking.  Passing an empty slice
// has no effect and returns nil.
func (r *BookingRepo) CreateSeatsBulkTx(ctx context.Context, tx *sql.Tx, bookingID uint64, seatIDs []uint64) error {
	if len(seatIDs) == 0 {
		return nil
	}
	query := `INSERT INTO booking_seats (booking_id, seat_id) VALUES `
	args := make([]any, 0, len(seatIDs)*2)
	for i, sid := range seatIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?)"
		args = append(args, bookingID, sid)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// CodeExistsTx reports whether a booking code is already taken, inside
// the caller's transaction.  The booking path retries code generation
// while this returns true; the UNIQUE constraint on booking_code backs
// it up should two transactions race on the same code.
func (r *BookingRepo) CodeExistsTx(ctx context.Context, tx *sql.Tx, code string) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM bookings WHERE booking_code = ?`, code).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// bookingJoin selects a booking together with its showtime, movie and
// bioskop display columns for confirmation output.
const bookingJoin = `SELECT bk.id, bk.showtime_id, bk.customer_name, bk.customer_email, bk.customer_phone,
       bk.total_price, bk.status, bk.booking_code, bk.created_at, bk.updated_at,
       st.id, st.movie_id, st.bioskop_id, st.show_date, st.show_time, st.price, st.created_at, st.updated_at,
       m.id, m.title, m.description, m.duration_min, m.genre, m.rating, m.poster_url, m.created_at, m.updated_at,
       b.id, b.name, b.address, b.created_at, b.updated_at
       FROM bookings bk
       JOIN showtimes st ON st.id = bk.showtime_id
       JOIN movies m ON m.id = st.movie_id
       JOIN bioskops b ON b.id = st.bioskop_id`

func scanBookingJoin(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var bk model.Booking
	var st model.Showtime
	var m model.Movie
	var b model.Bioskop
	err := row.Scan(
		&bk.ID, &bk.ShowtimeID, &bk.CustomerName, &bk.CustomerEmail, &bk.CustomerPhone,
		&bk.TotalPrice, &bk.Status, &bk.BookingCode, &bk.CreatedAt, &bk.UpdatedAt,
		&st.ID, &st.MovieID, &st.BioskopID, &st.ShowDate, &st.ShowTime, &st.Price, &st.CreatedAt, &st.UpdatedAt,
		&m.ID, &m.Title, &m.Description, &m.DurationMin, &m.Genre, &m.Rating, &m.PosterURL, &m.CreatedAt, &m.UpdatedAt,
		&b.ID, &b.Name, &b.Address, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	st.Movie = &m
	st.Bioskop = &b
	bk.Showtime = &st
	return &bk, nil
}

// GetByCode returns the booking with the given public code, hydrated
// with showtime, movie and bioskop display data.  It returns
// ErrBookingNotFound when no row matches.  Lookup is always by code;
// the numeric ID is internal.
func (r *BookingRepo) GetByCode(ctx context.Context, code string) (*model.Booking, error) {
	bk, err := scanBookingJoin(r.db.QueryRowContext(ctx, bookingJoin+` WHERE bk.booking_code = ?`, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return bk, nil
}

// GetByID is the internal-ID variant of GetByCode, used to hydrate a
// booking immediately after its creating transaction commits.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	bk, err := scanBookingJoin(r.db.QueryRowContext(ctx, bookingJoin+` WHERE bk.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return bk, nil
}

// List returns all bookings hydrated with display data, newest first.
func (r *BookingRepo) List(ctx context.Context) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, bookingJoin+` ORDER BY bk.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Booking, 0)
	for rows.Next() {
		bk, err := scanBookingJoin(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *bk)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SeatsForBooking returns the seats linked to a booking ordered by row
// and column.  Cancelled bookings keep their seat links, so this works
// for historical bookings too.
func (r *BookingRepo) SeatsForBooking(ctx context.Context, bookingID uint64) ([]model.Seat, error) {
	const q = `SELECT se.id, se.bioskop_id, se.seat_number, se.row_label, se.col_number, se.seat_type
               FROM booking_seats bs
               JOIN seats se ON se.id = bs.seat_id
               WHERE bs.booking_id = ?
               ORDER BY se.row_label ASC, se.col_number ASC`
	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]model.Seat, 0)
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.BioskopID, &s.SeatNumber, &s.RowLabel, &s.ColNumber, &s.SeatType); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// SeatNumbersForBookingTx returns the seat labels of a booking inside
// the caller's transaction.  The booking path uses it to build the
// confirmation event without a second round trip after commit.
func (r *BookingRepo) SeatNumbersForBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) ([]string, error) {
	const q = `SELECT se.seat_number
               FROM booking_seats bs
               JOIN seats se ON se.id = bs.seat_id
               WHERE bs.booking_id = ?
               ORDER BY se.row_label ASC, se.col_number ASC`
	rows, err := tx.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var labels []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return labels, nil
}

// FindIDByCodeTx resolves a booking code to its internal ID inside the
// caller's transaction, taking a row lock so a concurrent cancellation
// of the same booking serializes behind it.  Returns
// ErrBookingNotFound when no row matches.
func (r *BookingRepo) FindIDByCodeTx(ctx context.Context, tx *sql.Tx, code string) (uint64, error) {
	var id uint64
	err := tx.QueryRowContext(ctx, `SELECT id FROM bookings WHERE booking_code = ? FOR UPDATE`, code).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrBookingNotFound
		}
		return 0, err
	}
	return id, nil
}

// MarkCancelledTx flips a booking's status to cancelled inside the
// caller's transaction.  Re-cancelling simply re-applies the status;
// seat links are never deleted, availability is derived.
func (r *BookingRepo) MarkCancelledTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	const q = `UPDATE bookings SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := tx.ExecContext(ctx, q, model.BookingStatusCancelled, id)
	return err
}
