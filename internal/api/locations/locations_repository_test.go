package locations

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-geomapper/internal/types"
)

func TestRepositoryImpl_SaveInteraction(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	interaction := types.LocationInteraction{
		SessionID:  "session-1",
		Prompt:     "salsa",
		PromptHash: hashPrompt("salsa"),
		IsRoute:    true,
		ModelUsed:  "gemini-2.5-flash",
		Outcome:    types.OutcomeOK,
		PointCount: 4,
		LatencyMs:  812,
		CreatedAt:  time.Date(2024, 6, 10, 15, 4, 5, 0, time.UTC),
	}

	t.Run("inserts one row", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer pool.Close()

		pool.ExpectExec("INSERT INTO location_interactions").
			WithArgs(pgxmock.AnyArg(), "session-1", "salsa", interaction.PromptHash, true,
				"gemini-2.5-flash", "ok", 4, 812, interaction.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := NewRepositoryImpl(pool, logger)
		id, err := repo.SaveInteraction(context.Background(), interaction)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("keeps a caller supplied id", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer pool.Close()

		withID := interaction
		withID.ID = uuid.New()
		pool.ExpectExec("INSERT INTO location_interactions").
			WithArgs(withID.ID, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := NewRepositoryImpl(pool, logger)
		id, err := repo.SaveInteraction(context.Background(), withID)

		require.NoError(t, err)
		assert.Equal(t, withID.ID, id)
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("insert error is wrapped", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer pool.Close()

		dbErr := errors.New("relation does not exist")
		pool.ExpectExec("INSERT INTO location_interactions").
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
				pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
			WillReturnError(dbErr)

		repo := NewRepositoryImpl(pool, logger)
		id, err := repo.SaveInteraction(context.Background(), interaction)

		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		assert.Equal(t, uuid.Nil, id)
		assert.NoError(t, pool.ExpectationsWereMet())
	})
}

func TestRepositoryImpl_Ping(t *testing.T) {
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer pool.Close()

	pool.ExpectPing().WillReturnError(errors.New("connection refused"))

	repo := NewRepositoryImpl(pool, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, repo.Ping(context.Background()))
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestNoopRepository(t *testing.T) {
	id, err := NoopRepository{}.SaveInteraction(context.Background(), types.LocationInteraction{})
	assert.NoError(t, err)
	assert.Equal(t, uuid.Nil, id)
	assert.NoError(t, NoopRepository{}.Ping(context.Background()))
}
