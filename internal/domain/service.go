package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Service orchestrates user and exercise workflows.
type Service struct {
	repo  Repository
	clock clockwork.Clock
}

// NewService constructs a Service. The clock supplies "now" when an exercise
// is logged without an explicit date.
func NewService(repo Repository, clock clockwork.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

// CreateUser persists a new user and returns it. Username validation happens
// at the API layer; duplicates are allowed.
func (s *Service) CreateUser(ctx context.Context, username string) (*User, error) {
	user := User{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns every user in insertion order.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// LogExerciseInput captures the payload from the API layer. Date nil means
// "default to the current date".
type LogExerciseInput struct {
	UserID      string
	Description string
	DurationMin int
	Date        *time.Time
}

// LogExercise verifies the user exists, resolves the exercise date, and
// persists a new exercise. Returns the stored exercise together with the
// owning user for response shaping.
func (s *Service) LogExercise(ctx context.Context, input LogExerciseInput) (*Exercise, *User, error) {
	user, err := s.repo.GetUser(ctx, input.UserID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	date := s.clock.Now().UTC()
	if input.Date != nil {
		date = *input.Date
	}
	date = midnightUTC(date)

	exercise := Exercise{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		Description: input.Description,
		DurationMin: input.DurationMin,
		Date:        date,
		CreatedAt:   s.clock.Now().UTC(),
	}

	if err := s.repo.CreateExercise(ctx, exercise); err != nil {
		return nil, nil, err
	}

	return &exercise, user, nil
}

// GetLogs verifies the user exists and returns the filtered exercise log in
// ascending date order.
func (s *Service) GetLogs(ctx context.Context, userID string, filter LogFilter) (*User, []Exercise, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	exercises, err := s.repo.ListExercises(ctx, user.ID, filter)
	if err != nil {
		return nil, nil, err
	}
	return user, exercises, nil
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
