package logs

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialize_QuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	Initialize(&buf, false)
	t.Cleanup(func() { Initialize(nil, false) })

	Logger.Debug("hidden")
	Logger.Info("hidden too")
	Logger.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "hyprconf")
}

func TestInitialize_Verbose(t *testing.T) {
	var buf bytes.Buffer
	Initialize(&buf, true)
	t.Cleanup(func() { Initialize(nil, false) })

	Logger.Debug("scanning", "root", "/tmp/hypr")

	assert.Contains(t, buf.String(), "scanning")
	assert.Contains(t, buf.String(), "/tmp/hypr")
}
