package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func newBufferedSecurityLogger() (*SecurityLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewSecurityLogger(NewWithWriter(&buf, Config{Level: "debug", Format: "json"})), &buf
}

func TestSecurityLogger_MaskURL(t *testing.T) {
	sl, _ := newBufferedSecurityLogger()

	masked := sl.MaskURL("https://gnews.io/api/v4/top-headlines?lang=pt&apikey=super-secret&q=noticias")

	if strings.Contains(masked, "super-secret") {
		t.Errorf("Expected API key to be masked, got %s", masked)
	}
	if !strings.HasPrefix(masked, "https://gnews.io/api/v4/top-headlines?") {
		t.Errorf("Expected host and path to be kept, got %s", masked)
	}
	if !strings.Contains(masked, "q=noticias") {
		t.Errorf("Expected non-sensitive params to be kept, got %s", masked)
	}
}

func TestSecurityLogger_MaskSecret(t *testing.T) {
	sl, _ := newBufferedSecurityLogger()

	if got := sl.MaskSecret(""); got != "unset" {
		t.Errorf("Expected unset, got %s", got)
	}

	got := sl.MaskSecret("sk-very-secret")
	if !strings.HasPrefix(got, "set#") || strings.Contains(got, "sk-very-secret") {
		t.Errorf("Expected fingerprint, got %s", got)
	}
}

func TestSecurityLogger_MaskLogMessage(t *testing.T) {
	sl, _ := newBufferedSecurityLogger()

	msg := sl.MaskLogMessage("request to https://gnews.io/api/v4/top-headlines?apikey=abc123 failed; token=xyz789")

	if strings.Contains(msg, "abc123") || strings.Contains(msg, "xyz789") {
		t.Errorf("Expected credentials to be masked, got %s", msg)
	}
}

func TestSecurityLogger_SafeErrorMasksFields(t *testing.T) {
	sl, buf := newBufferedSecurityLogger()

	sl.SafeError("upstream failed", errors.New("bad key apikey=abc123"), map[string]interface{}{
		"news_api_key": "abc123",
		"news_url":     "https://gnews.io/api/v4?apikey=abc123",
		"attempt":      1,
	})

	out := buf.String()
	if strings.Contains(out, "abc123") {
		t.Errorf("Expected no secret in log output, got %s", out)
	}
	if !strings.Contains(out, `"attempt":1`) {
		t.Errorf("Expected plain fields to be kept, got %s", out)
	}
}
