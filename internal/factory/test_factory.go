package factory

import (
	"github.com/chessdb/chessdb/internal/storage/memory"
	"github.com/chessdb/chessdb/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Direct handle for asserting on stored state
	Memory *memory.Storage
}

// NewTestApp creates an App backed by in-memory storage
func NewTestApp() *TestApp {
	store := memory.New()
	app := newWithStorage(store, testutil.NopLogger())

	return &TestApp{
		App:    app,
		Memory: store,
	}
}
