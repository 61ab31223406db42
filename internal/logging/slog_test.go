package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "route", "splash")
	log.Info(ctx, "inf", "route", "home")
	log.Warn(ctx, "wrn", "key", "dark_mode")
	log.Error(ctx, "err", "op", "insert")

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "msg=dbg", "route=splash",
		"level=INFO", "msg=inf", "route=home",
		"level=WARN", "msg=wrn", "key=dark_mode",
		"level=ERROR", "msg=err", "op=insert",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("module", "navigation").Info(context.Background(), "hello", "k", "v")

	out := buf.String()
	for _, want := range []string{"level=INFO", "msg=hello", "module=navigation", "k=v"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestNew_RedactsCredentials(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(FormatJSON, "debug", &buf)
	if err != nil {
		t.Fatal(err)
	}

	l.With("token", "eyJhbGci").Info(context.Background(), "otp issued", "code", "123456", "Password", "secret1", "username", "ari")

	out := buf.String()
	for _, leaked := range []string{"eyJhbGci", "123456", "secret1"} {
		if strings.Contains(out, leaked) {
			t.Fatalf("%q leaked into output:\n%s", leaked, out)
		}
	}
	if !strings.Contains(out, `"username":"ari"`) || !strings.Contains(out, `"code":"[redacted]"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
