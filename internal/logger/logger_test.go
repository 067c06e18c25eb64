package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	WithError(base, errors.New("redis unreachable")).Error("Save failed")

	out := buf.String()
	if !strings.Contains(out, `"error":"redis unreachable"`) {
		t.Errorf("log output missing error attribute: %s", out)
	}
	if !strings.Contains(out, `"msg":"Save failed"`) {
		t.Errorf("log output missing message: %s", out)
	}
}
