package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewCommand_PrintsFrame(t *testing.T) {
	path, _ := useConfig(t, batteryConfig)
	fullBattery(t)

	var buf bytes.Buffer
	require.NoError(t, previewCommand(context.Background(), &buf, false, 2))

	out := buf.String()
	assert.Contains(t, out, "LED matrix preview")
	assert.Contains(t, out, path)
	assert.Contains(t, out, "██", "lit LEDs are drawn as full blocks")
	assert.Contains(t, out, "battery")
	assert.Contains(t, out, "100.0%")
}

func TestPreviewCommand_WatchNeedsTerminal(t *testing.T) {
	useConfig(t, batteryConfig)
	fullBattery(t)
	useTerminal(t, false)

	err := previewCommand(context.Background(), &bytes.Buffer{}, true, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}
