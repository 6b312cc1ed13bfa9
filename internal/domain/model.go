// Package domain defines the business logic for the exercise log service.
package domain

import (
	"context"
	"errors"
	"time"
)

// ErrUserNotFound is returned when the referenced user does not exist.
var ErrUserNotFound = errors.New("user not found")

// User is an account that exercises are recorded against. Users are created
// once and never updated or deleted. Usernames are not unique.
type User struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

// Exercise is a single immutable log entry linked to a User. Date is a
// calendar date normalized to midnight UTC; rendering happens at the API
// boundary.
type Exercise struct {
	ID          string
	UserID      string
	Description string
	DurationMin int
	Date        time.Time
	CreatedAt   time.Time
}

// LogFilter narrows a user's exercise log. From and To are inclusive calendar
// date bounds; Limit <= 0 means no truncation.
type LogFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

// Repository captures persistence operations for users and exercises.
type Repository interface {
	CreateUser(ctx context.Context, user User) error
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, userID string) (*User, error)
	CreateExercise(ctx context.Context, exercise Exercise) error
	ListExercises(ctx context.Context, userID string, filter LogFilter) ([]Exercise, error)
}
