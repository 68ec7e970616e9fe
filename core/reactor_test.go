package core

import (
	"context"
	"testing"
	"time"
)

func TestInMemoryReactor_PostAndRunFor(t *testing.T) {
	r := NewInMemoryReactor()
	ran := make(chan struct{}, 1)
	r.Post(func(ctx context.Context) { ran <- struct{}{} })

	if err := r.RunFor(context.Background(), 50*time.Millisecond); err != nil {
		t.Fatalf("RunFor returned error: %v", err)
	}
	select {
	case <-ran:
	default:
		t.Fatal("posted task did not run")
	}
}

func TestInMemoryReactor_RunForReturnsEarlyWithoutGuardOrWork(t *testing.T) {
	r := NewInMemoryReactor()
	start := time.Now()
	if err := r.RunFor(context.Background(), 200*time.Millisecond); err != nil {
		t.Fatalf("RunFor returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("RunFor with no work and no guard took %v, want near-immediate return", elapsed)
	}
}

func TestInMemoryReactor_WorkGuardPreventsEarlyReturn(t *testing.T) {
	r := NewInMemoryReactor()
	guard := r.AcquireWorkGuard()
	defer guard.Release()

	start := time.Now()
	if err := r.RunFor(context.Background(), 30*time.Millisecond); err != nil {
		t.Fatalf("RunFor returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Errorf("RunFor with a held guard returned early after %v", elapsed)
	}
}

func TestInMemoryReactor_RunOneForRunsExactlyOne(t *testing.T) {
	r := NewInMemoryReactor()
	var count int
	r.Post(func(ctx context.Context) { count++ })
	r.Post(func(ctx context.Context) { count++ })

	if err := r.RunOneFor(context.Background(), 50*time.Millisecond); err != nil {
		t.Fatalf("RunOneFor returned error: %v", err)
	}
	if count != 1 {
		t.Errorf("RunOneFor executed %d tasks, want 1", count)
	}
}

func TestInMemoryReactor_DispatchInlineWhenDriving(t *testing.T) {
	r := NewInMemoryReactor()
	var ranInline bool

	r.Post(func(ctx context.Context) {
		r.Dispatch(ctx, func(ctx context.Context) { ranInline = true })
		// If Dispatch had merely posted, ranInline would still be false here.
		if !ranInline {
			t.Error("Dispatch did not run inline while the reactor was driving this goroutine")
		}
	})

	if err := r.RunFor(context.Background(), 50*time.Millisecond); err != nil {
		t.Fatalf("RunFor returned error: %v", err)
	}
}

func TestInMemoryReactor_DispatchPostsWhenNotDriving(t *testing.T) {
	r := NewInMemoryReactor()
	ran := make(chan struct{}, 1)

	r.Dispatch(context.Background(), func(ctx context.Context) { ran <- struct{}{} })

	select {
	case <-ran:
		t.Fatal("Dispatch ran the task inline outside of any RunFor call")
	default:
	}

	if err := r.RunFor(context.Background(), 50*time.Millisecond); err != nil {
		t.Fatalf("RunFor returned error: %v", err)
	}
	select {
	case <-ran:
	default:
		t.Fatal("Dispatch never posted the task")
	}
}

func TestInMemoryReactor_StopStopsRunForAndRestartResumes(t *testing.T) {
	r := NewInMemoryReactor()
	guard := r.AcquireWorkGuard()
	defer guard.Release()

	r.Stop()
	if !r.Stopped() {
		t.Fatal("Stopped() = false after Stop()")
	}

	start := time.Now()
	if err := r.RunFor(context.Background(), 200*time.Millisecond); err != nil {
		t.Fatalf("RunFor returned error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("RunFor on a stopped reactor took %v, want near-immediate return", elapsed)
	}

	r.Restart()
	if r.Stopped() {
		t.Fatal("Stopped() = true after Restart()")
	}

	ran := make(chan struct{}, 1)
	r.Post(func(ctx context.Context) { ran <- struct{}{} })
	if err := r.RunFor(context.Background(), 50*time.Millisecond); err != nil {
		t.Fatalf("RunFor returned error: %v", err)
	}
	select {
	case <-ran:
	default:
		t.Fatal("reactor did not resume running tasks after Restart")
	}
}

func TestInMemoryReactor_IdempotentStop(t *testing.T) {
	r := NewInMemoryReactor()
	r.Stop()
	r.Stop() // must not panic on a double close
	if !r.Stopped() {
		t.Fatal("expected reactor to remain stopped")
	}
}
