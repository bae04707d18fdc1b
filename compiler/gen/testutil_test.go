package gen

import (
	"log/slog"
	"testing"
)

// newTestLogger returns a logger that writes to t.Log().
// Logs only appear on test failure or when running with -v.
func newTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type testWriter struct {
	t testing.TB
}

func (w testWriter) Write(p []byte) (n int, err error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// memEmitter collects emitted files in memory.
type memEmitter struct {
	files map[string]string
	order []string
	fail  map[string]error
}

func newMemEmitter() *memEmitter {
	return &memEmitter{files: make(map[string]string), fail: make(map[string]error)}
}

func (m *memEmitter) Emit(name string, data []byte) error {
	if err := m.fail[name]; err != nil {
		return err
	}
	m.files[name] = string(data)
	m.order = append(m.order, name)
	return nil
}
