package repository // repository defines data access for showtimes

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/farhanridho/bioskop-booking/internal/model"
)

// ShowtimeRepo manages persistence for showtimes.  A showtime binds a
// movie to a bioskop at a specific date and time with a flat per-seat
// price.  The booking core reads showtimes; it never mutates them.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo constructs a ShowtimeRepo with the given DB handle.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo {
	return &ShowtimeRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *ShowtimeRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a showtime and populates the generated ID and the
// DB-default timestamps.  The referenced movie and bioskop must exist;
// FK violations are surfaced as driver errors.
func (r *ShowtimeRepo) Create(ctx context.Context, s *model.Showtime) error {
	const q = `INSERT INTO showtimes (movie_id, bioskop_id, show_date, show_time, price) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.BioskopID, s.ShowDate, s.ShowTime, s.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT id, movie_id, bioskop_id, show_date, show_time, price, created_at, updated_at
                 FROM showtimes WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, s.ID).Scan(
		&s.ID, &s.MovieID, &s.BioskopID, &s.ShowDate, &s.ShowTime, &s.Price, &s.CreatedAt, &s.UpdatedAt,
	)
}

// showtimeJoin selects a showtime together with its movie and bioskop
// display columns.  The result is scanned by scanShowtimeJoin.
const showtimeJoin = `SELECT st.id, st.movie_id, st.bioskop_id, st.show_date, st.show_time, st.price, st.created_at, st.updated_at,
       m.id, m.title, m.description, m.duration_min, m.genre, m.rating, m.poster_url, m.created_at, m.updated_at,
       b.id, b.name, b.address, b.created_at, b.updated_at
       FROM showtimes st
       JOIN movies m ON m.id = st.movie_id
       JOIN bioskops b ON b.id = st.bioskop_id`

func scanShowtimeJoin(row interface{ Scan(...any) error }) (*model.Showtime, error) {
	var s model.Showtime
	var m model.Movie
	var b model.Bioskop
	err := row.Scan(
		&s.ID, &s.MovieID, &s.BioskopID, &s.ShowDate, &s.ShowTime, &s.Price, &s.CreatedAt, &s.UpdatedAt,
		&m.ID, &m.Title, &m.Description, &m.DurationMin, &m.Genre, &m.Rating, &m.PosterURL, &m.CreatedAt, &m.UpdatedAt,
		&b.ID, &b.Name, &b.Address, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Movie = &m
	s.Bioskop = &b
	return &s, nil
}

// GetByID retrieves a showtime by ID with its movie and bioskop display
// data attached.  It returns ErrShowtimeNotFound when there is no
// matching row.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (*model.Showtime, error) {
	s, err := scanShowtimeJoin(r.db.QueryRowContext(ctx, showtimeJoin+` WHERE st.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return s, nil
}

// ShowtimeFilter narrows List results.  Zero values disable the
// corresponding predicate.
type ShowtimeFilter struct {
	MovieID   uint64
	BioskopID uint64
	Date      time.Time // matched on the calendar date only
}

// List returns showtimes matching the filter, hydrated with movie and
// bioskop data and ordered by date then start time.
func (r *ShowtimeRepo) List(ctx context.Context, f ShowtimeFilter) ([]model.Showtime, error) {
	var conds []string
	var args []any
	if f.MovieID != 0 {
		conds = append(conds, "st.movie_id = ?")
		args = append(args, f.MovieID)
	}
	if f.BioskopID != 0 {
		conds = append(conds, "st.bioskop_id = ?")
		args = append(args, f.BioskopID)
	}
	if !f.Date.IsZero() {
		conds = append(conds, "st.show_date = ?")
		args = append(args, f.Date.Format("2006-01-02"))
	}
	q := showtimeJoin
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY st.show_date ASC, st.show_time ASC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Showtime, 0)
	for rows.Next() {
		s, err := scanShowtimeJoin(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetForUpdateTx loads the pricing fields of a showtime inside the
// caller's transaction, taking a row lock.  The lock serializes
// concurrent bookings for the same showtime: the second transaction
// blocks here until the first commits, so its availability recheck
// observes the committed seats.  Returns ErrShowtimeNotFound when no
// row matches.
func (r *ShowtimeRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Showtime, error) {
	const q = `SELECT id, movie_id, bioskop_id, price FROM showtimes WHERE id = ? FOR UPDATE`
	var s model.Showtime
	err := tx.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.MovieID, &s.BioskopID, &s.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return &s, nil
}
