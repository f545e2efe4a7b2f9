package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// Logs is the read side of an observed logger, for asserting on emitted
// entries in tests.
type Logs interface {
	Len() int
	All() []observer.LoggedEntry

	// TakeAll drains the observed entries.
	TakeAll() []observer.LoggedEntry
}

var _ Logs = (*observer.ObservedLogs)(nil)

// NewObserverLogger returns a Logger that records entries at or above the
// given level instead of writing them anywhere. Unparseable levels fall back
// to debug so a test never silently observes nothing.
func NewObserverLogger(level string) (Logger, Logs) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	core, logs := observer.New(lvl)
	return &ZapLogger{zap.New(core)}, logs
}
