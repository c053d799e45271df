package subscription

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

var subCols = []string{"id", "athlete_id", "tariff_id", "status", "sessions_remaining", "valid_from", "valid_until", "created_at", "updated_at"}

func TestCreateSubscription(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	limit := 8

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO subscriptions (athlete_id, tariff_id, status, sessions_remaining, valid_from, valid_until) VALUES ($1, $2, 'active', $3, $4, $5) RETURNING id, athlete_id, tariff_id, status, sessions_remaining, valid_from, valid_until, created_at, updated_at")).
		WithArgs(1, 2, 8, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(subCols).AddRow(10, 1, 2, "active", 8, now, now.AddDate(0, 1, 0), now, now))

	tariff := &Tariff{ID: 2, Name: "monthly_8", PriceCents: 10000, SessionLimit: &limit}
	sub, err := repo.CreateSubscription(context.Background(), 1, tariff)
	require.NoError(t, err)
	require.Equal(t, 10, sub.ID)
	require.NotNil(t, sub.SessionsRemaining)
	require.Equal(t, 8, *sub.SessionsRemaining)
}

func TestGetActiveForAthlete(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	cols := append(append([]string{}, subCols...), "tariff_name", "session_limit")

	mock.ExpectQuery("SELECT(.|\n)+FROM subscriptions s(.|\n)+JOIN tariffs t ON s.tariff_id = t.id").
		WithArgs(1, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(10, 1, 2, "active", 3, now, now.AddDate(0, 1, 0), now, now, "monthly_8", 8))

	sub, err := repo.GetActiveForAthlete(context.Background(), 1, now)
	require.NoError(t, err)
	require.Equal(t, 10, sub.ID)
	require.False(t, sub.Unlimited())
}

func TestGetActiveForAthleteUnlimited(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()
	cols := append(append([]string{}, subCols...), "tariff_name", "session_limit")

	mock.ExpectQuery("SELECT(.|\n)+FROM subscriptions s(.|\n)+JOIN tariffs t ON s.tariff_id = t.id").
		WithArgs(2, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(11, 2, 3, "active", nil, now, now.AddDate(0, 1, 0), now, now, "unlimited", nil))

	sub, err := repo.GetActiveForAthlete(context.Background(), 2, now)
	require.NoError(t, err)
	require.True(t, sub.Unlimited())
	require.Nil(t, sub.SessionsRemaining)
}

func TestIncrementSessions(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE subscriptions SET sessions_remaining = sessions_remaining + 1, updated_at = NOW() WHERE id = $1")).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementSessions(context.Background(), 10)
	require.NoError(t, err)
}

func TestListTariffs(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	rows := sqlmock.NewRows([]string{"id", "name", "price_cents", "session_limit"}).
		AddRow(1, "monthly_8", 10000, 8).
		AddRow(2, "unlimited", 25000, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, price_cents, session_limit FROM tariffs ORDER BY price_cents ASC")).
		WillReturnRows(rows)

	tariffs, err := repo.ListTariffs(context.Background())
	require.NoError(t, err)
	require.Len(t, tariffs, 2)
	require.Nil(t, tariffs[1].SessionLimit)
}
