package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/vstmap"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default value.
type Mock struct {
	ClientFunc  func(...vstmap.Option) (vstmap.Client, error)
	LoggerFunc  func() *zerolog.Logger
	DBPathValue string
	NoColorFlag bool
}

var _ Interface = (*Mock)(nil)

// Client returns a client using the mock function or a real client.
func (m *Mock) Client(opts ...vstmap.Option) (vstmap.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc(opts...)
	}
	return vstmap.New(opts...)
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// DBPath returns the configured database path.
func (m *Mock) DBPath() string {
	return m.DBPathValue
}

// NoColor returns the configured color setting.
func (m *Mock) NoColor() bool {
	return m.NoColorFlag
}

// Version returns "dev".
func (m *Mock) Version() string { return "dev" }

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }
