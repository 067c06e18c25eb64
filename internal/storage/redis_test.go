package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"

	"github.com/jwebster45206/dream-market/pkg/storage"
)

func setupTestRedis(t *testing.T) *RedisStorage {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	rs, err := NewRedisStorage(mr.Addr(), testLogger())
	if err != nil {
		t.Fatalf("NewRedisStorage: %v", err)
	}
	t.Cleanup(func() { _ = rs.Close() })
	return rs
}

func TestRedisStorage_SaveAndLoadGameState(t *testing.T) {
	rs := setupTestRedis(t)
	ctx := context.Background()

	if err := rs.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	gs := testGameState(t)
	gs.CurrentStage = "hollow_atrium"
	gs.Player.SetFlag("warden_defeated")

	if err := rs.SaveGameState(ctx, gs.ID, gs); err != nil {
		t.Fatalf("SaveGameState: %v", err)
	}

	loaded, err := rs.LoadGameState(ctx, gs.ID)
	if err != nil {
		t.Fatalf("LoadGameState: %v", err)
	}
	if loaded.ID != gs.ID || loaded.CurrentStage != "hollow_atrium" {
		t.Errorf("loaded %v at %q, want %v at hollow_atrium", loaded.ID, loaded.CurrentStage, gs.ID)
	}
	if !loaded.Player.HasFlag("warden_defeated") {
		t.Error("player flags did not survive the round trip")
	}
}

func TestRedisStorage_LoadMissing(t *testing.T) {
	rs := setupTestRedis(t)

	_, err := rs.LoadGameState(context.Background(), uuid.New())
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want storage.ErrNotFound", err)
	}
}

func TestRedisStorage_DeleteGameState(t *testing.T) {
	rs := setupTestRedis(t)
	ctx := context.Background()

	gs := testGameState(t)
	if err := rs.SaveGameState(ctx, gs.ID, gs); err != nil {
		t.Fatalf("SaveGameState: %v", err)
	}
	if err := rs.DeleteGameState(ctx, gs.ID); err != nil {
		t.Fatalf("DeleteGameState: %v", err)
	}
	if _, err := rs.LoadGameState(ctx, gs.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err after delete = %v, want storage.ErrNotFound", err)
	}
}

func TestRedisStorage_ListGameStates(t *testing.T) {
	rs := setupTestRedis(t)
	ctx := context.Background()

	a := testGameState(t)
	b := testGameState(t)
	if err := rs.SaveGameState(ctx, a.ID, a); err != nil {
		t.Fatalf("SaveGameState: %v", err)
	}
	if err := rs.SaveGameState(ctx, b.ID, b); err != nil {
		t.Fatalf("SaveGameState: %v", err)
	}

	ids, err := rs.ListGameStates(ctx)
	if err != nil {
		t.Fatalf("ListGameStates: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("listed %d saves, want 2", len(ids))
	}
}
