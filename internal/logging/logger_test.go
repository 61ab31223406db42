package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Formats(t *testing.T) {
	ctx := context.Background()

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New(FormatText, "info", &buf)
		require.NoError(t, err)
		l.Debug(ctx, "hidden")
		l.Info(ctx, "shown", "user", "ari")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "msg=shown")
		assert.Contains(t, buf.String(), "user=ari")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New(FormatJSON, "debug", &buf)
		require.NoError(t, err)
		l.Debug(ctx, "dbg")
		assert.Contains(t, buf.String(), `"msg":"dbg"`)
	})

	t.Run("zap", func(t *testing.T) {
		var buf bytes.Buffer
		l, err := New(FormatZap, "warn", &buf)
		require.NoError(t, err)
		l.Info(ctx, "hidden")
		l.With("module", "otp").Warn(ctx, "too many attempts", "attempts", 5)
		require.NoError(t, l.(*ZapLogger).Sync())
		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, `"msg":"too many attempts"`)
		assert.Contains(t, out, `"module":"otp"`)
		assert.Contains(t, out, `"attempts":5`)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := New("xml", "info", &bytes.Buffer{})
		require.Error(t, err)
	})

	t.Run("bad level", func(t *testing.T) {
		_, err := New(FormatText, "loud", &bytes.Buffer{})
		require.Error(t, err)
		_, err = New(FormatZap, "loud", &bytes.Buffer{})
		require.Error(t, err)
	})
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Error(context.Background(), "nothing happens")
	l.With("a", 1).Info(context.Background(), "still nothing")
}
