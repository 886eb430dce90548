package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "debug")

	ctx := IntoContext(context.Background(), logger)
	got := FromContext(ctx)
	got.Info().Str("participant", "Ana").Msg("hello")

	if !strings.Contains(buf.String(), `"participant":"Ana"`) {
		t.Fatalf("expected structured field in output, got %s", buf.String())
	}
}

func TestFromContextWithoutLoggerIsNop(t *testing.T) {
	logger := FromContext(context.Background())
	// Must not panic.
	logger.Info().Msg("dropped")
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "chatty")
	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output: %s", buf.String())
	}
}
