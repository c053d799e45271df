package subscription

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateSubscription(ctx context.Context, athleteID int, tariff *Tariff) (*Subscription, error) {
	now := time.Now()
	validUntil := now.AddDate(0, 1, 0)

	query := `
		INSERT INTO subscriptions (athlete_id, tariff_id, status, sessions_remaining, valid_from, valid_until)
		VALUES ($1, $2, 'active', $3, $4, $5)
		RETURNING id, athlete_id, tariff_id, status, sessions_remaining, valid_from, valid_until, created_at, updated_at
	`

	var sub Subscription
	err := r.db.GetContext(ctx, &sub, query, athleteID, tariff.ID, tariff.SessionLimit, now, validUntil)
	if err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *repository) GetActiveForAthlete(ctx context.Context, athleteID int, onDate time.Time) (*SubscriptionWithTariff, error) {
	query := `
		SELECT
			s.id,
			s.athlete_id,
			s.tariff_id,
			s.status,
			s.sessions_remaining,
			s.valid_from,
			s.valid_until,
			s.created_at,
			s.updated_at,
			t.name AS tariff_name,
			t.session_limit
		FROM subscriptions s
		JOIN tariffs t ON s.tariff_id = t.id
		WHERE s.athlete_id = $1
		  AND s.status = 'active'
		  AND s.valid_until >= $2
		ORDER BY s.valid_until DESC
		LIMIT 1
	`

	var sub SubscriptionWithTariff
	err := r.db.GetContext(ctx, &sub, query, athleteID, onDate)
	if err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *repository) IncrementSessions(ctx context.Context, subscriptionID int) error {
	query := `
		UPDATE subscriptions
		SET sessions_remaining = sessions_remaining + 1,
		    updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, subscriptionID)
	return err
}

func (r *repository) ListByAthlete(ctx context.Context, athleteID int) ([]Subscription, error) {
	query := `
		SELECT id, athlete_id, tariff_id, status, sessions_remaining, valid_from, valid_until, created_at, updated_at
		FROM subscriptions
		WHERE athlete_id = $1
		ORDER BY created_at DESC
	`

	var subs []Subscription
	err := r.db.SelectContext(ctx, &subs, query, athleteID)
	if err != nil {
		return nil, err
	}

	return subs, nil
}

func (r *repository) GetTariffByID(ctx context.Context, id int) (*Tariff, error) {
	query := `
		SELECT id, name, price_cents, session_limit
		FROM tariffs
		WHERE id = $1
	`

	var tariff Tariff
	err := r.db.GetContext(ctx, &tariff, query, id)
	if err != nil {
		return nil, err
	}

	return &tariff, nil
}

func (r *repository) ListTariffs(ctx context.Context) ([]Tariff, error) {
	query := `
		SELECT id, name, price_cents, session_limit
		FROM tariffs
		ORDER BY price_cents ASC
	`

	var tariffs []Tariff
	err := r.db.SelectContext(ctx, &tariffs, query)
	if err != nil {
		return nil, err
	}

	return tariffs, nil
}
