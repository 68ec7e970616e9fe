package core

import "errors"

// ErrShutdownInProgress is returned by Schedule once the executor has
// been asked to shut down. The eager pending-counter increment that
// precedes this check is not rolled back; see Executor.Schedule.
var ErrShutdownInProgress = errors.New("adaptive executor: shutdown in progress")

// ErrExceededTimeLimit is returned by Executor.Shutdown when workers fail
// to drain within the requested timeout.
var ErrExceededTimeLimit = errors.New("adaptive executor: exceeded shutdown time limit")
