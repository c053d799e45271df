package subscription

import "time"

type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"
)

type Tariff struct {
	ID           int    `db:"id" json:"id"`
	Name         string `db:"name" json:"name"`
	PriceCents   int64  `db:"price_cents" json:"price_cents"`
	SessionLimit *int   `db:"session_limit" json:"session_limit,omitempty"`
}

type Subscription struct {
	ID                int       `db:"id" json:"id"`
	AthleteID         int       `db:"athlete_id" json:"athlete_id"`
	TariffID          int       `db:"tariff_id" json:"tariff_id"`
	Status            Status    `db:"status" json:"status"`
	SessionsRemaining *int      `db:"sessions_remaining" json:"sessions_remaining,omitempty"`
	ValidFrom         time.Time `db:"valid_from" json:"valid_from"`
	ValidUntil        time.Time `db:"valid_until" json:"valid_until"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// SubscriptionWithTariff carries the joined tariff columns needed by the
// session refund on cancellation.
type SubscriptionWithTariff struct {
	Subscription
	TariffName   string `db:"tariff_name" json:"tariff_name"`
	SessionLimit *int   `db:"session_limit" json:"session_limit,omitempty"`
}

func (s *SubscriptionWithTariff) Unlimited() bool {
	return s.SessionLimit == nil
}
