package executor

import (
	"sync"
	"time"
)

// =============================================================================
// Global Executor Helper (Singleton)
// =============================================================================

var (
	globalExecutor *Executor
	globalMu       sync.Mutex
)

// InitGlobalExecutor initializes and starts the process-wide executor. A
// second call while one is already initialized is a no-op; call
// ShutdownGlobalExecutor first to replace it.
func InitGlobalExecutor(reactor Reactor, options Options) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalExecutor != nil {
		return
	}

	globalExecutor = New(reactor, options, nil, nil)
	globalExecutor.Start()
}

// GetGlobalExecutor returns the process-wide executor. It panics if
// InitGlobalExecutor has not been called.
func GetGlobalExecutor() *Executor {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalExecutor == nil {
		panic("adaptive executor: GlobalExecutor not initialized, call InitGlobalExecutor() first")
	}
	return globalExecutor
}

// ShutdownGlobalExecutor stops the process-wide executor, if any, and
// clears it so a later InitGlobalExecutor call can replace it.
func ShutdownGlobalExecutor(timeout time.Duration) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if globalExecutor == nil {
		return nil
	}
	err := globalExecutor.Shutdown(timeout)
	globalExecutor = nil
	return err
}
