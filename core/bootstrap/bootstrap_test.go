package bootstrap

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/portfoliobot/core/config"
	coredatabase "github.com/m3rciful/portfoliobot/core/database"
	"github.com/m3rciful/portfoliobot/core/telegram/state"
)

type item struct {
	Step string `json:"step"`
}

func noLogger(*coreconfig.Config) error { return nil }

func TestRunMemoryBackend(t *testing.T) {
	cfg := &coreconfig.Config{Session: coreconfig.SessionConfig{Backend: coreconfig.SessionMemory}}
	res, err := Run(context.Background(), Options[item]{Config: cfg, LoggerInit: noLogger})
	require.NoError(t, err)
	defer res.Close()

	_, ok := res.Store.(*state.MemoryStore[item])
	assert.True(t, ok)
	assert.Nil(t, res.DB)
	assert.Nil(t, res.Redis)
}

func TestRunRedisBackend(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := &coreconfig.Config{
		Session: coreconfig.SessionConfig{Backend: coreconfig.SessionRedis, KeyPrefix: "s:"},
		Redis:   coreconfig.RedisConfig{Addresses: []string{mr.Addr()}},
	}
	res, err := Run(context.Background(), Options[item]{Config: cfg, LoggerInit: noLogger, Codec: state.JSONCodec[item]{}})
	require.NoError(t, err)
	defer res.Close()

	require.NoError(t, res.Store.Set(context.Background(), 11, item{Step: "name"}))
	assert.True(t, mr.Exists("s:11"))
}

func TestRunSQLiteBackend(t *testing.T) {
	cfg := &coreconfig.Config{Session: coreconfig.SessionConfig{Backend: coreconfig.SessionSQLite}}
	res, err := Run(context.Background(), Options[item]{
		Config:     cfg,
		Database:   coredatabase.Config{Path: filepath.Join(t.TempDir(), "s.db")},
		LoggerInit: noLogger,
		Codec:      state.JSONCodec[item]{},
	})
	require.NoError(t, err)
	defer res.Close()

	ctx := context.Background()
	require.NoError(t, res.Store.Set(ctx, 4, item{Step: "tasks"}))
	got, ok, err := res.Store.Get(ctx, 4)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tasks", got.Step)
}

func TestRunFailures(t *testing.T) {
	_, err := Run[item](context.Background(), Options[item]{})
	assert.Error(t, err)

	cfg := &coreconfig.Config{Session: coreconfig.SessionConfig{Backend: coreconfig.SessionPostgres}}
	_, err = Run(context.Background(), Options[item]{Config: cfg, LoggerInit: noLogger})
	assert.ErrorContains(t, err, "codec")

	migrateErr := errors.New("locked")
	opened := false
	_, err = Run(context.Background(), Options[item]{
		Config:     cfg,
		Database:   coredatabase.Config{Host: "db", Name: "bot"},
		LoggerInit: noLogger,
		Codec:      state.JSONCodec[item]{},
		Connect: func(coredatabase.Config) (*sqlx.DB, error) {
			db, err := sqlx.Open("sqlite", ":memory:")
			if err == nil {
				opened = true
			}
			return db, err
		},
		Migrate: func(coredatabase.Config) error { return migrateErr },
	})
	assert.ErrorIs(t, err, migrateErr)
	assert.True(t, opened)

	loggerErr := errors.New("no sink")
	_, err = Run(context.Background(), Options[item]{Config: cfg, LoggerInit: func(*coreconfig.Config) error { return loggerErr }})
	assert.ErrorIs(t, err, loggerErr)
}
