package class

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/javaqber/wodup-backend/internal/logger"
	"github.com/javaqber/wodup-backend/internal/metrics"
	"github.com/javaqber/wodup-backend/internal/timeutil"
	"github.com/javaqber/wodup-backend/internal/user"
)

var (
	ErrClassNotFound        = errors.New("class not found")
	ErrCoachNotFound        = errors.New("coach not found")
	ErrDateTaken            = errors.New("a class already exists on this date")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidTime          = errors.New("invalid time of day")
	ErrInvalidTimeRange     = errors.New("end time must be after start time")
	ErrClassHasReservations = errors.New("class has active reservations")
)

type Service interface {
	ListUpcoming(ctx context.Context) ([]Class, error)
	ListToday(ctx context.Context) ([]Class, error)
	Create(ctx context.Context, req CreateClassRequest, coachID int) (*Class, error)
	Update(ctx context.Context, id int, req UpdateClassRequest) (*Class, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo     Repository
	userRepo user.Repository
	cache    *Cache
	now      func() time.Time
}

// NewService builds the class scheduling service. cache may be nil, in which
// case every listing hits the database.
func NewService(repo Repository, userRepo user.Repository, cache *Cache) Service {
	return &service{
		repo:     repo,
		userRepo: userRepo,
		cache:    cache,
		now:      time.Now,
	}
}

func (s *service) ListUpcoming(ctx context.Context) ([]Class, error) {
	today := timeutil.DateOnly(s.now())

	if s.cache != nil {
		if classes, ok := s.cache.GetUpcoming(ctx, today); ok {
			return classes, nil
		}
	}

	classes, err := s.repo.ListUpcoming(ctx, today)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetUpcoming(ctx, today, classes)
	}

	return classes, nil
}

func (s *service) ListToday(ctx context.Context) ([]Class, error) {
	today := timeutil.DateOnly(s.now())

	if s.cache != nil {
		if classes, ok := s.cache.GetToday(ctx, today); ok {
			return classes, nil
		}
	}

	classes, err := s.repo.ListByDate(ctx, today)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetToday(ctx, today, classes)
	}

	return classes, nil
}

func (s *service) Create(ctx context.Context, req CreateClassRequest, coachID int) (*Class, error) {
	coach, err := s.userRepo.FindByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCoachNotFound
		}
		return nil, err
	}

	date, err := timeutil.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	// One class per calendar date, across all coaches.
	taken, err := s.repo.ExistsOnDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDateTaken
	}

	start, err := timeutil.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	end, err := timeutil.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}

	class, err := s.repo.CreateClass(
		ctx,
		req.Name,
		date,
		timeutil.FormatTimeOfDay(start),
		timeutil.FormatTimeOfDay(end),
		req.Capacity,
		coach.ID,
	)
	if err != nil {
		if errors.Is(err, ErrDuplicateClassDate) {
			return nil, ErrDateTaken
		}
		return nil, err
	}

	logger.Info("class created", "class_id", class.ID, "date", req.Date, "coach_id", coach.ID)
	metrics.RecordClassCreated()
	s.invalidateCache(ctx)

	return class, nil
}

// Update overwrites everything but the coach. The one-per-date and time-order
// rules are not re-checked here, matching the original scheduling behavior.
func (s *service) Update(ctx context.Context, id int, req UpdateClassRequest) (*Class, error) {
	existing, err := s.repo.GetClassByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	date, err := timeutil.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	start, err := timeutil.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	end, err := timeutil.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	class, err := s.repo.UpdateClass(
		ctx,
		existing.ID,
		req.Name,
		date,
		timeutil.FormatTimeOfDay(start),
		timeutil.FormatTimeOfDay(end),
		req.Capacity,
	)
	if err != nil {
		if errors.Is(err, ErrDuplicateClassDate) {
			return nil, ErrDateTaken
		}
		return nil, err
	}

	s.invalidateCache(ctx)

	return class, nil
}

func (s *service) Delete(ctx context.Context, id int) error {
	if _, err := s.repo.GetClassByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrClassNotFound
		}
		return err
	}

	// Deleting a class under active reservations would leave them dangling.
	inUse, err := s.repo.HasActiveReservations(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrClassHasReservations
	}

	if err := s.repo.DeleteClass(ctx, id); err != nil {
		if errors.Is(err, ErrClassNotFoundInStore) {
			return ErrClassNotFound
		}
		// Cancelled reservations are kept forever and still reference the
		// class, so history alone blocks deletion.
		if errors.Is(err, ErrClassReferenced) {
			return ErrClassHasReservations
		}
		return err
	}

	logger.Info("class deleted", "class_id", id)
	s.invalidateCache(ctx)

	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, timeutil.DateOnly(s.now()))
	}
}
