package service

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"time"

	"github.com/farhanridho/bioskop-booking/internal/model"
	"github.com/farhanridho/bioskop-booking/internal/queue"
	"github.com/farhanridho/bioskop-booking/internal/repository"
)

// maxCodeAttempts bounds booking-code regeneration within one
// transaction attempt before giving up with ErrCodeGeneration.
const maxCodeAttempts = 5

// EventPublisher publishes booking events after a transaction commits.
// queue.Publisher satisfies it; tests substitute a recorder.
type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, event queue.BookingCreatedEvent) error
}

// BookingService orchestrates the atomic read-check-write sequence that
// turns a reservation request into a durable booking.  Every write
// path runs inside a single transaction against the injected DB
// handle: the availability recheck, the code uniqueness check and the
// inserts either all commit or all roll back.  The service holds no
// state of its own beyond the handle and repositories, so any number
// of request handlers may call it concurrently; isolation between
// overlapping requests comes from the store's transaction boundary,
// never from in-process caching.
type BookingService struct {
	db        *sql.DB
	bookings  *repository.BookingRepo
	showtimes *repository.ShowtimeRepo
	seats     *repository.SeatRepo
	avail     *repository.AvailabilityRepo
	publisher EventPublisher // may be nil; events are best effort
}

// NewBookingService constructs a BookingService.  The publisher may be
// nil to disable event publishing.
func NewBookingService(db *sql.DB, bookings *repository.BookingRepo, showtimes *repository.ShowtimeRepo, seats *repository.SeatRepo, avail *repository.AvailabilityRepo, publisher EventPublisher) *BookingService {
	if db == nil || bookings == nil || showtimes == nil || seats == nil || avail == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{
		db:        db,
		bookings:  bookings,
		showtimes: showtimes,
		seats:     seats,
		avail:     avail,
		publisher: publisher,
	}
}

// CreateBookingInput carries a reservation request into the service.
type CreateBookingInput struct {
	ShowtimeID    uint64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	SeatIDs       []uint64
}

func (in *CreateBookingInput) validate() error {
	if in.ShowtimeID == 0 {
		return &ValidationError{Field: "showtime_id"}
	}
	if strings.TrimSpace(in.CustomerName) == "" {
		return &ValidationError{Field: "customer_name"}
	}
	if strings.TrimSpace(in.CustomerEmail) == "" {
		return &ValidationError{Field: "customer_email"}
	}
	if strings.TrimSpace(in.CustomerPhone) == "" {
		return &ValidationError{Field: "customer_phone"}
	}
	if len(repository.DedupeSeatIDs(in.SeatIDs)) == 0 {
		return &ValidationError{Field: "seat_ids"}
	}
	return nil
}

// Create reserves the requested seats for the showtime and returns the
// hydrated booking for confirmation display.
//
// The sequence runs as one isolated unit of work:
//  1. lock the showtime row (serialization point for this showtime),
//  2. verify every seat belongs to the showtime's bioskop,
//  3. recheck availability against committed bookings,
//  4. generate a unique booking code,
//  5. insert the booking and one seat link per seat,
//  6. commit; on any failure before that, roll back with no partial
//     writes.
//
// Step 3 is mandatory even when the caller checked availability
// moments earlier: another transaction may have committed in between.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	seatIDs := repository.DedupeSeatIDs(in.SeatIDs)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Resolve the showtime under a row lock.  Concurrent bookings for
	// the same showtime queue up here, so the availability check below
	// always sees the winner's committed rows.
	showtime, err := s.showtimes.GetForUpdateTx(ctx, tx, in.ShowtimeID)
	if err != nil {
		return nil, err
	}

	// Every requested seat must belong to the showtime's bioskop.
	n, err := s.seats.CountInBioskopTx(ctx, tx, showtime.BioskopID, seatIDs)
	if err != nil {
		return nil, err
	}
	if n != len(seatIDs) {
		return nil, ErrSeatNotInBioskop
	}

	conflicting, err := s.avail.UnavailableAmongTx(ctx, tx, in.ShowtimeID, seatIDs)
	if err != nil {
		return nil, err
	}
	if len(conflicting) > 0 {
		return nil, &SeatConflictError{SeatIDs: conflicting}
	}

	code, err := s.uniqueCodeTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	booking := &model.Booking{
		ShowtimeID:    in.ShowtimeID,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CustomerPhone: in.CustomerPhone,
		TotalPrice:    showtime.Price * float64(len(seatIDs)),
		Status:        model.BookingStatusConfirmed,
		BookingCode:   code,
	}
	if err := s.bookings.CreateTx(ctx, tx, booking); err != nil {
		return nil, err
	}
	if err := s.bookings.CreateSeatsBulkTx(ctx, tx, booking.ID, seatIDs); err != nil {
		return nil, err
	}
	seatNumbers, err := s.bookings.SeatNumbersForBookingTx(ctx, tx, booking.ID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	hydrated, err := s.bookings.GetByID(ctx, booking.ID)
	if err != nil {
		// The booking exists; return the unhydrated record rather than
		// reporting failure for a committed reservation.
		log.Printf("booking: hydrate after commit failed for %s: %v", booking.BookingCode, err)
		hydrated = booking
	}

	s.publishCreated(ctx, hydrated, seatNumbers)
	return hydrated, nil
}

// uniqueCodeTx generates a booking code and retries generation while
// the code is already taken, all within the current transaction
// attempt.  The UNIQUE constraint on bookings.booking_code remains as
// backstop for two transactions racing on the same candidate.
func (s *BookingService) uniqueCodeTx(ctx context.Context, tx *sql.Tx) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := NewBookingCode()
		if err != nil {
			return "", err
		}
		taken, err := s.bookings.CodeExistsTx(ctx, tx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeGeneration
}

func (s *BookingService) publishCreated(ctx context.Context, b *model.Booking, seatNumbers []string) {
	if s.publisher == nil {
		return
	}
	ev := queue.BookingCreatedEvent{
		BookingID:    b.ID,
		BookingCode:  b.BookingCode,
		ShowtimeID:   b.ShowtimeID,
		CustomerName: b.CustomerName,
		SeatNumbers:  seatNumbers,
		TotalPrice:   b.TotalPrice,
		CreatedAt:    b.CreatedAt.UTC().Format(time.RFC3339),
	}
	if st := b.Showtime; st != nil {
		ev.ShowDate = st.ShowDate.Format("2006-01-02")
		ev.ShowTime = st.ShowTime
		if st.Movie != nil {
			ev.MovieTitle = st.Movie.Title
		}
		if st.Bioskop != nil {
			ev.BioskopName = st.Bioskop.Name
		}
	}
	// Best effort: the booking is already durable, so a broker outage
	// must not fail the request.
	if err := s.publisher.PublishBookingCreated(ctx, ev); err != nil {
		log.Printf("booking: publish created event for %s failed: %v", b.BookingCode, err)
	}
}

// Get returns the hydrated booking for the given public code together
// with its seats.
func (s *BookingService) Get(ctx context.Context, code string) (*model.Booking, []model.Seat, error) {
	booking, err := s.bookings.GetByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	seats, err := s.bookings.SeatsForBooking(ctx, booking.ID)
	if err != nil {
		return nil, nil, err
	}
	return booking, seats, nil
}

// List returns all bookings hydrated with display data, newest first.
func (s *BookingService) List(ctx context.Context) ([]model.Booking, error) {
	return s.bookings.List(ctx)
}

// Cancel flips the booking's status to cancelled and returns the
// updated booking.  Cancelling an unknown code fails with
// repository.ErrBookingNotFound; re-cancelling an already-cancelled
// booking simply re-applies the status.  Seat links are kept, which
// makes the booking's seats implicitly available again because
// availability is derived from active bookings only.
func (s *BookingService) Cancel(ctx context.Context, code string) (*model.Booking, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	id, err := s.bookings.FindIDByCodeTx(ctx, tx, code)
	if err != nil {
		return nil, err
	}
	if err := s.bookings.MarkCancelledTx(ctx, tx, id); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return s.bookings.GetByID(ctx, id)
}

// SeatsForShowtime returns every seat of the showtime's bioskop
// annotated with its derived availability.  Two calls with no booking
// activity in between return identical flags because nothing is cached
// or stored per call.
func (s *BookingService) SeatsForShowtime(ctx context.Context, showtimeID uint64) ([]model.SeatAvailability, error) {
	showtime, err := s.showtimes.GetByID(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	seats, err := s.seats.ListByBioskop(ctx, showtime.BioskopID)
	if err != nil {
		return nil, err
	}
	claimed, err := s.avail.ClaimedSeatIDs(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	view := make([]model.SeatAvailability, 0, len(seats))
	for _, seat := range seats {
		_, taken := claimed[seat.ID]
		view = append(view, model.SeatAvailability{Seat: seat, IsAvailable: !taken})
	}
	return view, nil
}
