package repository // repository defines data access for seats

import (
	"context"
	"database/sql"
	"strings"

	"github.com/farhanridho/bioskop-booking/internal/model"
)

// SeatRepo provides methods to work with seats in the database.  Seats
// are static layout data; availability for a showtime is derived by
// AvailabilityRepo, never stored on the seat row.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// CreateBulk inserts multiple seats in a single statement.  Passing an
// empty slice has no effect and returns nil.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (bioskop_id, seat_number, row_label, col_number, seat_type) VALUES `
	args := make([]any, 0, len(seats)*5)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?)"
		args = append(args, s.BioskopID, s.SeatNumber, s.RowLabel, s.ColNumber, s.SeatType)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// ListByBioskop returns every seat of a bioskop ordered by row label
// and column so seat maps render deterministically.
func (r *SeatRepo) ListByBioskop(ctx context.Context, bioskopID uint64) ([]model.Seat, error) {
	const q = `SELECT id, bioskop_id, seat_number, row_label, col_number, seat_type
               FROM seats WHERE bioskop_id = ?
               ORDER BY row_label ASC, col_number ASC`
	rows, err := r.db.QueryContext(ctx, q, bioskopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Seat, 0)
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.BioskopID, &s.SeatNumber, &s.RowLabel, &s.ColNumber, &s.SeatType); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CountInBioskopTx counts how many of the given seat IDs belong to the
// bioskop, inside the caller's transaction.  The booking path compares
// the count against the requested seat set to reject seats from another
// venue before any write happens.
func (r *SeatRepo) CountInBioskopTx(ctx context.Context, tx *sql.Tx, bioskopID uint64, seatIDs []uint64) (int, error) {
	if len(seatIDs) == 0 {
		return 0, nil
	}
	placeholders := make([]string, len(seatIDs))
	args := make([]any, 0, len(seatIDs)+1)
	args = append(args, bioskopID)
	for i, id := range seatIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	q := `SELECT COUNT(*) FROM seats WHERE bioskop_id = ? AND id IN (` + strings.Join(placeholders, ",") + `)`
	var n int
	if err := tx.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
