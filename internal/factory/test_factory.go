package factory

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/vocabquiz/internal/dependencies/mocks"
	"github.com/mcoot/vocabquiz/internal/services/auth"
	"github.com/mcoot/vocabquiz/internal/storage/memory"
	"github.com/mcoot/vocabquiz/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Backing stores, for assertions on what was written
	MemoryStorage  *memory.Storage
	MemorySessions *memory.SessionStore

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	sessions := memory.NewSessionStore()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	authCfg := auth.DefaultConfig()
	authCfg.BcryptCost = bcrypt.MinCost

	app := newWithDependencies(store, sessions, mockClock, mockRandom, authCfg, testutil.NopLogger())

	return &TestApp{
		App:            app,
		MemoryStorage:  store,
		MemorySessions: sessions,
		MockClock:      mockClock,
		MockRandom:     mockRandom,
	}
}
