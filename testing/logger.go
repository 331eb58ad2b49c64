package testing

import (
	"fmt"
	"strings"
	"testing"

	"github.com/andysmith26/groupwheel-sub002/types"
)

// NewTestLogger creates a logger that writes through t.Logf, so engine and
// saver output shows up interleaved with test output during failed or
// verbose runs. Key-value pairs render as key=value.
func NewTestLogger(t *testing.T) types.Logger {
	return &testLogger{t: t}
}

type testLogger struct {
	t *testing.T
}

var _ types.Logger = (*testLogger)(nil)

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.t.Logf("DEBUG %s%s", msg, formatPairs(keysAndValues))
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.t.Logf("INFO %s%s", msg, formatPairs(keysAndValues))
}

func (l *testLogger) Warn(msg string, keysAndValues ...any) {
	l.t.Logf("WARN %s%s", msg, formatPairs(keysAndValues))
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.t.Logf("ERROR %s%s", msg, formatPairs(keysAndValues))
}

func (l *testLogger) Fatal(msg string, keysAndValues ...any) {
	l.t.Fatalf("FATAL %s%s", msg, formatPairs(keysAndValues))
}

// formatPairs renders key-value pairs as " k=v k=v"; a dangling key without
// a value renders alone.
func formatPairs(keysAndValues []any) string {
	if len(keysAndValues) == 0 {
		return ""
	}

	var b strings.Builder
	i := 0
	for ; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	if i < len(keysAndValues) {
		fmt.Fprintf(&b, " %v", keysAndValues[i])
	}

	return b.String()
}
