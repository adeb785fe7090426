package database

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-geomapper/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewDatabaseConfig(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		var cfg config.Config
		_, err := NewDatabaseConfig(&cfg, discardLogger())
		assert.ErrorIs(t, err, ErrPostgresDisabled)
	})

	t.Run("builds a postgresql url", func(t *testing.T) {
		var cfg config.Config
		pg := &cfg.Repositories.Postgres
		pg.Enabled = true
		pg.Host = "db"
		pg.Port = "5432"
		pg.Username = "geo"
		pg.Password = "p@ss"
		pg.DB = "geomapper"
		pg.MAXCONWAITINGTIME = 10

		dbCfg, err := NewDatabaseConfig(&cfg, discardLogger())
		require.NoError(t, err)

		u, err := url.Parse(dbCfg.ConnectionURL)
		require.NoError(t, err)
		assert.Equal(t, "postgresql", u.Scheme)
		assert.Equal(t, "db:5432", u.Host)
		assert.Equal(t, "/geomapper", u.Path)
		assert.Equal(t, "disable", u.Query().Get("sslmode"))
		pw, _ := u.User.Password()
		assert.Equal(t, "p@ss", pw)
		assert.Equal(t, 10*time.Second, dbCfg.MaxWait)
	})
}

func TestWaitForDB(t *testing.T) {
	t.Run("ready on second ping", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer pool.Close()

		pool.ExpectPing().WillReturnError(errors.New("starting up"))
		pool.ExpectPing()

		assert.True(t, WaitForDB(context.Background(), pool, discardLogger()))
		assert.NoError(t, pool.ExpectationsWereMet())
	})

	t.Run("gives up when the context ends", func(t *testing.T) {
		pool, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer pool.Close()

		pool.ExpectPing().WillReturnError(errors.New("down"))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.False(t, WaitForDB(ctx, pool, discardLogger()))
	})
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRunMigrations_RejectsBadScheme(t *testing.T) {
	err := RunMigrations("mysql://localhost/db", discardLogger())
	assert.Error(t, err)
}
