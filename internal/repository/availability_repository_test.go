package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhanridho/bioskop-booking/internal/repository"
)

// The availability predicate: seats claimed by non-cancelled bookings
// of the same showtime.  Cancelled bookings are filtered out by the
// status condition in the query itself.
const availabilityQ = `SELECT DISTINCT bs.seat_id`

func newAvailabilityRepo(t *testing.T) (*repository.AvailabilityRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewAvailabilityRepo(db), mock
}

func TestCheckAllSeatsFree(t *testing.T) {
	repo, mock := newAvailabilityRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(availabilityQ)).
		WithArgs(uint64(1), uint64(4), uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))

	available, conflicting, err := repo.Check(context.Background(), 1, []uint64{4, 5})
	require.NoError(t, err)
	assert.True(t, available)
	assert.Empty(t, conflicting)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckReportsConflictingSubset(t *testing.T) {
	repo, mock := newAvailabilityRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(availabilityQ)).
		WithArgs(uint64(1), uint64(4), uint64(5), uint64(6)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(5).AddRow(6))

	available, conflicting, err := repo.Check(context.Background(), 1, []uint64{4, 5, 6})
	require.NoError(t, err)
	assert.False(t, available)
	assert.Equal(t, []uint64{5, 6}, conflicting)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckCollapsesDuplicateIDs(t *testing.T) {
	repo, mock := newAvailabilityRepo(t)

	// Duplicates and zeros in the request collapse to a single bound
	// parameter for the one real seat.
	mock.ExpectQuery(regexp.QuoteMeta(availabilityQ)).
		WithArgs(uint64(1), uint64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))

	available, _, err := repo.Check(context.Background(), 1, []uint64{4, 4, 0, 4})
	require.NoError(t, err)
	assert.True(t, available)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckEmptyRequestHitsNothing(t *testing.T) {
	repo, mock := newAvailabilityRepo(t)

	// No real seat IDs, no query at all.
	available, conflicting, err := repo.Check(context.Background(), 1, []uint64{0})
	require.NoError(t, err)
	assert.True(t, available)
	assert.Empty(t, conflicting)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimedSeatIDs(t *testing.T) {
	repo, mock := newAvailabilityRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(availabilityQ)).
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(2).AddRow(9))

	claimed, err := repo.ClaimedSeatIDs(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, map[uint64]struct{}{2: {}, 9: {}}, claimed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDedupeSeatIDs(t *testing.T) {
	cases := []struct {
		name string
		in   []uint64
		want []uint64
	}{
		{"keeps order", []uint64{5, 3, 5, 3, 8}, []uint64{5, 3, 8}},
		{"drops zeros", []uint64{0, 1, 0}, []uint64{1}},
		{"empty", nil, []uint64{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, repository.DedupeSeatIDs(tc.in))
		})
	}
}
