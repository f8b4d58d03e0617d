package observe

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blueprint/pkg/logger"
)

type capturedEvents struct {
	mu     sync.Mutex
	events []*sentry.Event
}

func (c *capturedEvents) beforeSend(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func newTestHook(t *testing.T) (*SentryHook, *capturedEvents) {
	t.Helper()

	captured := &capturedEvents{}
	hook, err := newSentryHook("test", "blueprint", sentry.ClientOptions{
		Dsn:        "https://public@sentry.example.com/1",
		BeforeSend: captured.beforeSend,
	})
	require.NoError(t, err)

	return hook, captured
}

func TestNewSentryHook_RequiresDSN(t *testing.T) {
	hook, err := NewSentryHook("test", "blueprint", false, "")
	assert.Error(t, err)
	assert.Nil(t, hook)
}

func TestSentryHook_ForwardsErrorEntries(t *testing.T) {
	hook, captured := newTestHook(t)
	l := logger.NewZapLogger("blueprint", "test", "debug", hook)

	l.Info("ignored")
	l.Warning("ignored as well")
	l.Error(errors.New("decode failed"), map[string]any{"kind": "type_mismatch"})

	require.Len(t, captured.events, 1)
	event := captured.events[0]
	assert.Equal(t, "decode failed", event.Message)
	assert.Equal(t, sentry.LevelError, event.Level)
	assert.Equal(t, "blueprint", event.Extra["AppName"])
	assert.Equal(t, "decode failed", event.Extra["Error"])
}

func TestSentryHook_WriteToleratesGarbage(t *testing.T) {
	hook, captured := newTestHook(t)

	var buf bytes.Buffer
	hook.SetLogger(logger.NewZapLogger("blueprint", "test", "debug", &buf))

	payload := []byte("not json")
	n, err := hook.Write(payload)
	require.NoError(t, err)
	assert.Equal(t, len(payload), n)
	assert.Empty(t, captured.events)
	assert.Contains(t, buf.String(), "SentryHook")
}
