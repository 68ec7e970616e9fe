package executor

import (
	"context"
	"sync"
	"testing"
	"time"
)

func resetGlobalExecutor() {
	globalMu.Lock()
	globalExecutor = nil
	globalMu.Unlock()
}

func TestGetGlobalExecutor_PanicsBeforeInit(t *testing.T) {
	resetGlobalExecutor()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling GetGlobalExecutor before InitGlobalExecutor")
		}
	}()
	GetGlobalExecutor()
}

func TestInitGlobalExecutor_RunsScheduledTasks(t *testing.T) {
	resetGlobalExecutor()
	InitGlobalExecutor(NewInMemoryReactor(), DefaultOptions())
	defer ShutdownGlobalExecutor(time.Second)

	var wg sync.WaitGroup
	wg.Add(1)
	if err := GetGlobalExecutor().Schedule(context.Background(), func(ctx context.Context) {
		wg.Done()
	}, 0); err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("global executor never ran the scheduled task")
	}
}

func TestInitGlobalExecutor_SecondCallIsNoop(t *testing.T) {
	resetGlobalExecutor()
	InitGlobalExecutor(NewInMemoryReactor(), DefaultOptions())
	first := GetGlobalExecutor()
	defer ShutdownGlobalExecutor(time.Second)

	InitGlobalExecutor(NewInMemoryReactor(), DefaultOptions())
	if second := GetGlobalExecutor(); second != first {
		t.Error("second InitGlobalExecutor call replaced the existing global executor")
	}
}

func TestShutdownGlobalExecutor_AllowsReinit(t *testing.T) {
	resetGlobalExecutor()
	InitGlobalExecutor(NewInMemoryReactor(), DefaultOptions())
	if err := ShutdownGlobalExecutor(time.Second); err != nil {
		t.Fatalf("ShutdownGlobalExecutor() error = %v", err)
	}

	InitGlobalExecutor(NewInMemoryReactor(), DefaultOptions())
	defer ShutdownGlobalExecutor(time.Second)
	GetGlobalExecutor() // must not panic
}
