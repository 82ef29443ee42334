package lognotify

import (
	"bytes"
	"testing"

	"github.com/bnema/appearance-snapshots/internal/logging"
	"github.com/bnema/appearance-snapshots/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyLogsAtMatchingLevel(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger, err := logging.New(&logs, "warn")
	require.NoError(t, err)

	n := New(logger, nil)
	n.Notify(ports.NotifyInfo, "reverted 2 sessions")
	n.Notify(ports.NotifyError, "revert failed")

	assert.NotContains(t, logs.String(), "reverted 2 sessions")
	assert.Contains(t, logs.String(), "revert failed")
	assert.Contains(t, logs.String(), "notification=true")
}

func TestNotifyPrintsToTerminal(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	n := New(nil, &out)
	n.Notify(ports.NotifyWarning, "bone scaling unavailable")
	n.Notify(ports.NotificationLevel("loud"), "unknown level")

	assert.Contains(t, out.String(), "[warning] bone scaling unavailable")
	assert.Contains(t, out.String(), "[info] unknown level")
}
