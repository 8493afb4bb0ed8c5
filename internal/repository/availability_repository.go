package repository // repository implements the seat availability predicate

import (
	"context"
	"database/sql"
	"strings"
)

// AvailabilityRepo answers the one question the whole subsystem exists
// for: which seats of a showtime are already claimed by an active
// booking.  A seat is unavailable for a showtime iff a booking_seats
// row exists whose owning booking has the same showtime and a status
// other than cancelled.  All methods are read-only.
type AvailabilityRepo struct {
	db *sql.DB
}

// NewAvailabilityRepo constructs an AvailabilityRepo with the given DB
// handle.
func NewAvailabilityRepo(db *sql.DB) *AvailabilityRepo {
	return &AvailabilityRepo{db: db}
}

// unavailableAmongQuery returns the conflicting subset of seatIDs for
// the showtime using the provided queryer (plain DB or transaction).
func unavailableAmong(ctx context.Context, q queryer, showtimeID uint64, seatIDs []uint64) ([]uint64, error) {
	unique := DedupeSeatIDs(seatIDs)
	if len(unique) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(unique))
	args := make([]any, 0, len(unique)+1)
	args = append(args, showtimeID)
	for i, id := range unique {
		placeholders[i] = "?"
		args = append(args, id)
	}
	query := `SELECT DISTINCT bs.seat_id
              FROM booking_seats bs
              JOIN bookings b ON b.id = bs.booking_id
              WHERE b.showtime_id = ? AND b.status <> 'cancelled'
                AND bs.seat_id IN (` + strings.Join(placeholders, ",") + `)`
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var conflicting []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		conflicting = append(conflicting, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return conflicting, nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Check reports whether every requested seat is free for the showtime.
// Duplicate seat IDs in the input refer to the same seat and are
// collapsed before querying.  The returned slice holds the conflicting
// seat IDs; it is empty when available is true.
func (r *AvailabilityRepo) Check(ctx context.Context, showtimeID uint64, seatIDs []uint64) (bool, []uint64, error) {
	conflicting, err := unavailableAmong(ctx, r.db, showtimeID, seatIDs)
	if err != nil {
		return false, nil, err
	}
	return len(conflicting) == 0, conflicting, nil
}

// UnavailableAmongTx is the transactional variant of Check used by the
// booking path.  Running the predicate inside the same transaction
// that performs the insert is mandatory: an earlier check outside the
// transaction may be stale by the time the write happens.
func (r *AvailabilityRepo) UnavailableAmongTx(ctx context.Context, tx *sql.Tx, showtimeID uint64, seatIDs []uint64) ([]uint64, error) {
	return unavailableAmong(ctx, tx, showtimeID, seatIDs)
}

// ClaimedSeatIDs returns the set of every seat currently claimed by an
// active booking for the showtime.  Applying this set to the full seat
// list of the showtime's bioskop produces the seat-map availability
// view.
func (r *AvailabilityRepo) ClaimedSeatIDs(ctx context.Context, showtimeID uint64) (map[uint64]struct{}, error) {
	const q = `SELECT DISTINCT bs.seat_id
               FROM booking_seats bs
               JOIN bookings b ON b.id = bs.booking_id
               WHERE b.showtime_id = ? AND b.status <> 'cancelled'`
	rows, err := r.db.QueryContext(ctx, q, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	claimed := make(map[uint64]struct{})
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		claimed[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return claimed, nil
}

// DedupeSeatIDs collapses duplicate seat IDs preserving first-seen
// order and dropping zeros.  Duplicates in a booking request refer to
// the same physical seat, so the caller must never double-count them
// when pricing or inserting.
func DedupeSeatIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	unique := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}
	return unique
}
