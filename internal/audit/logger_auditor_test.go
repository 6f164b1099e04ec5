// filepath: internal/audit/logger_auditor_test.go
package audit

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerAuditor_Log(t *testing.T) {
	logger, hook := test.NewNullLogger()
	auditor := NewLoggerAuditorWith(logger, true)

	ctx := WithRequestID(context.Background(), "req-1")
	auditor.Log(ctx, "gallery.save_image", "camera-app", "gallery/Trips", map[string]interface{}{
		"success": true,
		"bytes":   42,
	})

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "AUDIT EVENT", entry.Message)
	assert.Equal(t, "gallery.save_image", entry.Data["audit_action"])
	assert.Equal(t, "camera-app", entry.Data["audit_actor"])
	assert.Equal(t, "gallery/Trips", entry.Data["audit_resource"])
	assert.Equal(t, "req-1", entry.Data["request_id"])
	assert.Equal(t, true, entry.Data["detail.success"])
	assert.Equal(t, 42, entry.Data["detail.bytes"])
}

func TestLoggerAuditor_Disabled(t *testing.T) {
	logger, hook := test.NewNullLogger()
	NewLoggerAuditorWith(logger, false).Log(context.Background(), "x", "y", "z", nil)
	assert.Empty(t, hook.AllEntries())

	var nilAuditor *LoggerAuditor
	assert.NotPanics(t, func() { nilAuditor.Log(context.Background(), "x", "y", "z", nil) })
}

func TestRequestID(t *testing.T) {
	assert.Empty(t, RequestID(context.Background()))
	assert.Equal(t, "abc", RequestID(WithRequestID(context.Background(), "abc")))
}
