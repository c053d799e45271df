package reservation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/javaqber/wodup-backend/internal/class"
	"github.com/javaqber/wodup-backend/internal/logger"
	"github.com/javaqber/wodup-backend/internal/metrics"
	"github.com/javaqber/wodup-backend/internal/subscription"
	"github.com/javaqber/wodup-backend/internal/timeutil"
	"github.com/javaqber/wodup-backend/internal/user"
)

var (
	ErrAthleteNotFound     = errors.New("athlete not found")
	ErrClassNotFound       = errors.New("class not found")
	ErrInvalidTime         = errors.New("invalid time format")
	ErrClassHasNoTimes     = errors.New("class has no defined times")
	ErrInvalidTimeRange    = errors.New("end time must be after start time")
	ErrAlreadyReserved     = errors.New("athlete already has an active reservation for this class")
	ErrSlotCancelledBefore = errors.New("this slot was cancelled before and cannot be re-booked")
	ErrClassFull           = errors.New("class is full")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotOwner            = errors.New("reservation belongs to another athlete")
	ErrAlreadyCancelled    = errors.New("reservation is already cancelled")
	ErrCutoffPassed        = errors.New("too close to class start to cancel")
)

// Policy gates the historically disabled checks. Zero values reproduce the
// original behavior: capacity is counted but never enforced, and cancellation
// has no cutoff.
type Policy struct {
	EnforceCapacity           bool
	CancellationCutoffMinutes int
}

// AthleteResolver maps an authenticated email to an athlete record. The user
// repository satisfies it.
type AthleteResolver interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

type Service interface {
	ListForAthlete(ctx context.Context, athleteID int) ([]Reservation, error)
	Create(ctx context.Context, athleteEmail string, req CreateReservationRequest) (*Reservation, error)
	Cancel(ctx context.Context, reservationID, athleteID int) error
}

type service struct {
	repo      Repository
	classRepo class.Repository
	subRepo   subscription.Repository
	athletes  AthleteResolver
	policy    Policy
	now       func() time.Time
}

func NewService(
	repo Repository,
	classRepo class.Repository,
	subRepo subscription.Repository,
	athletes AthleteResolver,
	policy Policy,
) Service {
	return &service{
		repo:      repo,
		classRepo: classRepo,
		subRepo:   subRepo,
		athletes:  athletes,
		policy:    policy,
		now:       time.Now,
	}
}

func (s *service) ListForAthlete(ctx context.Context, athleteID int) ([]Reservation, error) {
	return s.repo.ListByAthlete(ctx, athleteID)
}

func (s *service) Create(ctx context.Context, athleteEmail string, req CreateReservationRequest) (*Reservation, error) {
	athlete, err := s.athletes.FindByEmail(ctx, athleteEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}

	cls, err := s.classRepo.GetClassByID(ctx, req.ClassID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	startStr, endStr, err := s.resolveSlot(req, cls)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.ListByAthlete(ctx, athlete.ID)
	if err != nil {
		return nil, err
	}

	// Rule A: one active reservation per class, whatever the slot. Changing
	// slot requires cancelling first.
	for _, r := range history {
		if r.ClassID == cls.ID && r.Active() {
			return nil, ErrAlreadyReserved
		}
	}

	// Rule B: a cancelled slot stays blocked for this athlete.
	for _, r := range history {
		if r.ClassID == cls.ID && r.StartTime == startStr && r.Status == StatusCancelled {
			return nil, ErrSlotCancelledBefore
		}
	}

	count, err := s.repo.CountForClassSlot(ctx, cls.ID, startStr)
	if err != nil {
		return nil, err
	}
	if s.policy.EnforceCapacity && count >= cls.Capacity {
		return nil, ErrClassFull
	}

	reservation, err := s.repo.CreateReservation(ctx, athlete.ID, cls.ID, startStr, endStr, s.now())
	if err != nil {
		if errors.Is(err, ErrDuplicateActiveReservation) {
			return nil, ErrAlreadyReserved
		}
		return nil, err
	}

	logger.Info("reservation created",
		"reservation_id", reservation.ID,
		"athlete_id", athlete.ID,
		"class_id", cls.ID,
		"start_time", startStr,
	)
	metrics.RecordReservation(string(reservation.Status))

	return reservation, nil
}

// resolveSlot picks the effective time window: the requested one when both
// ends are supplied, the class's own otherwise.
func (s *service) resolveSlot(req CreateReservationRequest, cls *class.Class) (string, string, error) {
	startRaw, endRaw := req.StartTime, req.EndTime
	if startRaw == "" || endRaw == "" {
		if cls.StartTime == "" || cls.EndTime == "" {
			return "", "", ErrClassHasNoTimes
		}
		startRaw, endRaw = cls.StartTime, cls.EndTime
	}

	start, err := timeutil.ParseTimeOfDay(startRaw)
	if err != nil {
		return "", "", ErrInvalidTime
	}
	end, err := timeutil.ParseTimeOfDay(endRaw)
	if err != nil {
		return "", "", ErrInvalidTime
	}

	if !end.After(start) {
		return "", "", ErrInvalidTimeRange
	}

	return timeutil.FormatTimeOfDay(start), timeutil.FormatTimeOfDay(end), nil
}

func (s *service) Cancel(ctx context.Context, reservationID, athleteID int) error {
	reservation, err := s.repo.GetReservationByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrReservationNotFound
		}
		return err
	}

	if reservation.AthleteID != athleteID {
		return ErrNotOwner
	}

	if reservation.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}

	if err := s.checkCutoff(ctx, reservation); err != nil {
		return err
	}

	if err := s.repo.CancelReservation(ctx, reservationID); err != nil {
		if errors.Is(err, ErrReservationNotFoundOrCancelled) {
			return ErrAlreadyCancelled
		}
		return err
	}

	metrics.RecordCancellation()
	logger.Info("reservation cancelled", "reservation_id", reservationID, "athlete_id", athleteID)

	s.refundSession(ctx, athleteID)

	return nil
}

// checkCutoff rejects cancellations inside the configured window before class
// start. Disabled (cutoff == 0) by default.
func (s *service) checkCutoff(ctx context.Context, reservation *Reservation) error {
	if s.policy.CancellationCutoffMinutes <= 0 {
		return nil
	}

	cls, err := s.classRepo.GetClassByID(ctx, reservation.ClassID)
	if err != nil {
		// The class is gone; nothing left to protect.
		return nil
	}

	classStart, err := timeutil.Combine(cls.Date, reservation.StartTime)
	if err != nil {
		return nil
	}

	cutoff := classStart.Add(-time.Duration(s.policy.CancellationCutoffMinutes) * time.Minute)
	if s.now().After(cutoff) {
		return ErrCutoffPassed
	}

	return nil
}

// refundSession returns one session to the athlete's active subscription, if
// one exists and its tariff is not unlimited. Best-effort: a missing
// subscription is not an error.
func (s *service) refundSession(ctx context.Context, athleteID int) {
	today := timeutil.DateOnly(s.now())

	sub, err := s.subRepo.GetActiveForAthlete(ctx, athleteID, today)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.Errorf("failed to look up subscription for athlete %d: %v", athleteID, err)
		}
		return
	}

	if sub.Unlimited() {
		return
	}

	if err := s.subRepo.IncrementSessions(ctx, sub.ID); err != nil {
		logger.Errorf("failed to return session to subscription %d: %v", sub.ID, err)
		return
	}

	metrics.RecordSessionRefund()
	logger.Info("session returned", "subscription_id", sub.ID, "athlete_id", athleteID)
}
