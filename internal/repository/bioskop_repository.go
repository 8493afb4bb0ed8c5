package repository // repository defines data access for bioskops

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparisons

	"github.com/farhanridho/bioskop-booking/internal/model"
)

// BioskopRepo provides persistence for cinema venues.  The booking
// core never writes bioskops; these methods exist for the catalog
// boundary that seeds venues and their seats.
type BioskopRepo struct {
	db *sql.DB
}

// NewBioskopRepo constructs a BioskopRepo with the given DB handle.
func NewBioskopRepo(db *sql.DB) *BioskopRepo {
	return &BioskopRepo{db: db}
}

// Create inserts a bioskop and populates the generated ID and the
// DB-default timestamps on the given model.
func (r *BioskopRepo) Create(ctx context.Context, b *model.Bioskop) error {
	const q = `INSERT INTO bioskops (name, address) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, b.Name, b.Address)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	const sel = `SELECT id, name, address, created_at, updated_at FROM bioskops WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.ID, &b.Name, &b.Address, &b.CreatedAt, &b.UpdatedAt)
}

// GetByID retrieves a bioskop by its ID.  It returns ErrBioskopNotFound
// when there is no matching row.
func (r *BioskopRepo) GetByID(ctx context.Context, id uint64) (*model.Bioskop, error) {
	const q = `SELECT id, name, address, created_at, updated_at FROM bioskops WHERE id = ?`
	var b model.Bioskop
	err := r.db.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.Name, &b.Address, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBioskopNotFound
		}
		return nil, err
	}
	return &b, nil
}

// List returns all bioskops ordered by name.  An empty slice and nil
// error are returned when none exist.
func (r *BioskopRepo) List(ctx context.Context) ([]model.Bioskop, error) {
	const q = `SELECT id, name, address, created_at, updated_at FROM bioskops ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make([]model.Bioskop, 0)
	for rows.Next() {
		var b model.Bioskop
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites the name and address of a bioskop.  It returns
// ErrBioskopNotFound when the row does not exist.
func (r *BioskopRepo) Update(ctx context.Context, b *model.Bioskop) error {
	const q = `UPDATE bioskops SET name = ?, address = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, b.Name, b.Address, b.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Distinguish "missing row" from "identical values".
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM bioskops WHERE id = ?`, b.ID).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrBioskopNotFound
			}
			return err
		}
	}
	const sel = `SELECT id, name, address, created_at, updated_at FROM bioskops WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.ID, &b.Name, &b.Address, &b.CreatedAt, &b.UpdatedAt)
}

// Delete removes a bioskop.  It returns ErrBioskopNotFound when no row
// matched.  Deleting a bioskop whose seats are referenced by bookings
// is rejected by the FK constraints at the storage layer.
func (r *BioskopRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bioskops WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBioskopNotFound
	}
	return nil
}
