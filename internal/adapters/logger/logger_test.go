package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"listing-service/internal/core/port"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogAdapter_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelDebug, IsJSON: true})

	logger.WithFields(port.Fields{"component": "test"}).Error("request failed", errors.New("boom"), port.Fields{"page": 2})

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "request failed", record["msg"])
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "test", record["component"])
	assert.Equal(t, 2.0, record["page"])
	assert.Equal(t, "boom", record["err"])
}

func TestSlogAdapter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelWarn})

	logger.Debug("hidden", nil)
	logger.Info("hidden", nil)
	assert.Zero(t, buf.Len())

	logger.Warn("visible", port.Fields{"k": "v"})
	assert.Contains(t, buf.String(), "visible")
}

func TestSlogAdapter_TintOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelInfo, UseColor: true})

	logger.Info("catalog ready", port.Fields{"objects_count": 3})

	assert.Contains(t, buf.String(), "catalog ready")
	assert.Contains(t, buf.String(), "objects_count")
}

type recordingLogger struct {
	messages *[]string
	fields   port.Fields
}

func (r recordingLogger) Info(msg string, _ port.Fields) {
	*r.messages = append(*r.messages, "info:"+msg)
}
func (r recordingLogger) Warn(msg string, _ port.Fields) {
	*r.messages = append(*r.messages, "warn:"+msg)
}
func (r recordingLogger) Error(msg string, _ error, _ port.Fields) {
	*r.messages = append(*r.messages, "error:"+msg)
}
func (r recordingLogger) Debug(msg string, _ port.Fields) {
	*r.messages = append(*r.messages, "debug:"+msg)
}
func (r recordingLogger) WithFields(fields port.Fields) port.LoggerPort {
	return recordingLogger{messages: r.messages, fields: fields}
}

func TestMultiloggerAdapter(t *testing.T) {
	var first, second []string
	multi, err := NewMultiloggerAdapter(recordingLogger{messages: &first}, nil, recordingLogger{messages: &second})
	require.NoError(t, err)

	multi.WithFields(port.Fields{"a": 1}).Warn("slow", nil)
	multi.Error("failed", errors.New("x"), nil)

	assert.Equal(t, []string{"warn:slow", "error:failed"}, first)
	assert.Equal(t, first, second)
}

func TestMultiloggerAdapter_Edges(t *testing.T) {
	_, err := NewMultiloggerAdapter()
	assert.Error(t, err)

	var messages []string
	single := recordingLogger{messages: &messages}
	logger, err := NewMultiloggerAdapter(nil, single)
	require.NoError(t, err)
	assert.Equal(t, single, logger)
}

func TestMsgpackSafe(t *testing.T) {
	assert.Equal(t, "boom", msgpackSafe(errors.New("boom")))
	assert.Equal(t, "WARN", msgpackSafe(slog.LevelWarn))
	assert.Equal(t, 42, msgpackSafe(42))
}

func TestNewFluentLoggerAdapter_NilClient(t *testing.T) {
	_, err := NewFluentLoggerAdapter(nil, slog.LevelInfo)
	assert.Error(t, err)
}
