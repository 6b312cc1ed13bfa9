//go:build integration

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"example.com/exerciselog/internal/domain"
)

func TestRepositoryUserLifecycle(t *testing.T) {
	ctx := context.Background()
	pool := setupPool(t, ctx)
	repo := NewRepository(pool)

	alice := domain.User{ID: uuid.NewString(), Username: "alice", CreatedAt: time.Now().UTC()}
	bob := domain.User{ID: uuid.NewString(), Username: "bob", CreatedAt: time.Now().UTC().Add(time.Millisecond)}

	require.NoError(t, repo.CreateUser(ctx, alice))
	require.NoError(t, repo.CreateUser(ctx, bob))

	stored, err := repo.GetUser(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, "alice", stored.Username)

	missing, err := repo.GetUser(ctx, uuid.NewString())
	require.NoError(t, err)
	require.Nil(t, missing)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, alice.ID, users[0].ID, "insertion order preserved")

	var outboxRows int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox WHERE event_type='user.created'`).Scan(&outboxRows))
	require.Equal(t, 2, outboxRows)
}

func TestRepositoryExerciseFilterAndLimit(t *testing.T) {
	ctx := context.Background()
	pool := setupPool(t, ctx)
	repo := NewRepository(pool)

	user := domain.User{ID: uuid.NewString(), Username: "alice", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateUser(ctx, user))

	dates := []time.Time{
		time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	for i, date := range dates {
		require.NoError(t, repo.CreateExercise(ctx, domain.Exercise{
			ID:          uuid.NewString(),
			UserID:      user.ID,
			Description: "run",
			DurationMin: 30 + i,
			Date:        date,
			CreatedAt:   time.Now().UTC(),
		}))
	}

	all, err := repo.ListExercises(ctx, user.ID, domain.LogFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, dates[0], all[0].Date.UTC(), "ascending by date")

	from := time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2023, time.February, 15, 0, 0, 0, 0, time.UTC)
	filtered, err := repo.ListExercises(ctx, user.ID, domain.LogFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, dates[1], filtered[0].Date.UTC())

	limited, err := repo.ListExercises(ctx, user.ID, domain.LogFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	require.Equal(t, dates[0], limited[0].Date.UTC())

	var outboxRows int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM outbox WHERE event_type='exercise.logged'`).Scan(&outboxRows))
	require.Equal(t, 3, outboxRows)
}

func setupPool(t *testing.T, ctx context.Context) *pgxpool.Pool {
	t.Helper()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("exerciselog"),
		postgrescontainer.WithUsername("exerciselog"),
		postgrescontainer.WithPassword("exerciselog"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))
	runMigrations(t, ctx, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return pool
}

func runMigrations(t *testing.T, ctx context.Context, connStr string) {
	t.Helper()

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	path := resolvePath(t, "../../../db/postgres/migrations/0001_init.up.sql")
	contents, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = pool.Exec(ctx, string(contents))
	require.NoError(t, err)
}

func resolvePath(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), rel)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}
