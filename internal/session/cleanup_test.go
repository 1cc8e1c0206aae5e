package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func addExpired(t *testing.T, store *MemoryStore, n int) {
	t.Helper()
	past := time.Now().Add(-time.Minute)
	for i := 0; i < n; i++ {
		id := uuid.NewString()
		store.Set(context.Background(), id, &Session{ID: id, CreatedAt: past, ExpiresAt: past})
	}
}

func TestCleanupService_StartStop(t *testing.T) {
	manager, _ := newTestManager(t, time.Hour, nil)
	service := NewCleanupService(manager, CleanupConfig{CleanupInterval: time.Second}, zerolog.Nop())

	if service.IsRunning() {
		t.Error("Service should not be running initially")
	}

	service.Start(context.Background())
	if !service.IsRunning() {
		t.Error("Service should be running after start")
	}

	// Starting again is a no-op
	service.Start(context.Background())

	service.Stop()
	if service.IsRunning() {
		t.Error("Service should not be running after stop")
	}

	// Stopping again is a no-op
	service.Stop()
}

func TestCleanupService_RunOnce(t *testing.T) {
	manager, store := newTestManager(t, time.Hour, nil)
	service := NewCleanupService(manager, CleanupConfig{CleanupInterval: time.Hour}, zerolog.Nop())
	ctx := context.Background()

	if _, err := manager.CreateSession(ctx, testClient, ""); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	addExpired(t, store, 2)

	deleted, err := service.RunOnce(ctx)
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if deleted != 2 {
		t.Errorf("Expected 2 deleted sessions, got %d", deleted)
	}
	if count, _ := store.Count(ctx); count != 1 {
		t.Errorf("Expected 1 remaining session, got %d", count)
	}
}

func TestCleanupService_AutomaticCleanup(t *testing.T) {
	manager, store := newTestManager(t, time.Hour, nil)
	service := NewCleanupService(manager, CleanupConfig{CleanupInterval: 10 * time.Millisecond}, zerolog.Nop())
	ctx := context.Background()

	addExpired(t, store, 3)

	service.Start(ctx)
	defer service.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if count, _ := store.Count(ctx); count == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("Expired sessions were not cleaned up automatically")
}

func TestCleanupService_RunStopsOnContextCancel(t *testing.T) {
	manager, _ := newTestManager(t, time.Hour, nil)
	service := NewCleanupService(manager, CleanupConfig{CleanupInterval: 10 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- service.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run should return nil on cancellation, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancellation")
	}
}
