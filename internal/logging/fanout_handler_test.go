package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNewFanoutHandlerNilHandlers(t *testing.T) {
	h := newFanoutHandler(nil, nil)
	if _, ok := h.(NoopHandler); !ok {
		t.Fatalf("expected NoopHandler for all nil handlers, got %T", h)
	}
}

func TestNewFanoutHandlerFiltersNil(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)

	if h := newFanoutHandler(nil, inner, nil); h != inner {
		t.Fatal("expected single non-nil handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRespectsPerHandlerLevels(t *testing.T) {
	var info, debug bytes.Buffer
	h1 := slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo})
	h2 := slog.NewJSONHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug})

	h := newFanoutHandler(h1, h2)
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("expected fanout to be enabled for debug")
	}

	logger := slog.New(h).With("component", "speech")
	logger.Debug("only debug")
	logger.Info("both")

	if strings.Contains(info.String(), "only debug") {
		t.Fatalf("info handler received debug record: %s", info.String())
	}
	if !strings.Contains(debug.String(), "only debug") || !strings.Contains(debug.String(), "both") {
		t.Fatalf("debug handler missing records: %s", debug.String())
	}
	if !strings.Contains(info.String(), `"component":"speech"`) {
		t.Fatalf("expected attrs to propagate: %s", info.String())
	}
}

func TestTeeLoggerWithNilBase(t *testing.T) {
	var buf bytes.Buffer
	logger := TeeLogger(nil, slog.NewTextHandler(&buf, nil))
	logger.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("expected output, got %q", buf.String())
	}
}
