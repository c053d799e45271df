package subscription

import (
	"context"
	"time"
)

type Repository interface {
	CreateSubscription(ctx context.Context, athleteID int, tariff *Tariff) (*Subscription, error)
	GetActiveForAthlete(ctx context.Context, athleteID int, onDate time.Time) (*SubscriptionWithTariff, error)
	IncrementSessions(ctx context.Context, subscriptionID int) error
	ListByAthlete(ctx context.Context, athleteID int) ([]Subscription, error)
	GetTariffByID(ctx context.Context, id int) (*Tariff, error)
	ListTariffs(ctx context.Context) ([]Tariff, error)
}
