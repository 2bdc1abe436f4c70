package notify_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wms-platform/wms-web/pkg/logging"
	"github.com/wms-platform/wms-web/pkg/notify"
)

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	cfg := logging.DefaultConfig("wmsctl")
	cfg.Output = &buf
	sink := notify.NewLogSink(logging.New(cfg))

	sink.Error("stock is locked")
	sink.Success("warehouse created")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first, second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "ERROR", first["level"])
	assert.Equal(t, "stock is locked", first["msg"])
	assert.Equal(t, notify.LevelError, first["notice"])
	assert.Equal(t, "notify", first["component"])

	assert.Equal(t, "INFO", second["level"])
	assert.Equal(t, notify.LevelSuccess, second["notice"])
}
