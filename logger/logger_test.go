package logger

import (
	"testing"

	"github.com/gookit/slog"
	"github.com/stretchr/testify/assert"
)

func TestInitFallsBackToInfo(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	Init("  ")

	_, ok := Log.(*slog.Logger)
	assert.True(t, ok, "expected gookit slog logger, got %T", Log)
}

func TestWithServiceName(t *testing.T) {
	t.Setenv("SERVICE_NAME", "blog-api")

	fields := withServiceName(nil)
	assert.Equal(t, "blog-api", fields["service_name"])

	fields = withServiceName(Fields{"service_name": "custom"})
	assert.Equal(t, "custom", fields["service_name"])
}

func TestWithServiceNameUnset(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")

	fields := withServiceName(Fields{"request_id": "abc"})
	_, ok := fields["service_name"]
	assert.False(t, ok)
	assert.Equal(t, "abc", fields["request_id"])
}

type recordingLogger struct {
	Logger
	lines []string
}

func (r *recordingLogger) Debug(args ...any) { r.lines = append(r.lines, "debug:"+args[0].(string)) }
func (r *recordingLogger) Info(args ...any)  { r.lines = append(r.lines, "info:"+args[0].(string)) }
func (r *recordingLogger) Warn(args ...any)  { r.lines = append(r.lines, "warn:"+args[0].(string)) }
func (r *recordingLogger) Error(args ...any) { r.lines = append(r.lines, "error:"+args[0].(string)) }

func TestWithFieldsHelpersFallBackToPlainLogger(t *testing.T) {
	prev := Log
	rec := &recordingLogger{}
	Log = rec
	t.Cleanup(func() { Log = prev })

	DebugWithFields("post created", Fields{"post_id": "1"})
	InfoWithFields("completed request", nil)
	WarnWithFields("dropping database", Fields{"database": "blog"})
	ErrorWithFields("failed to publish post event", nil)

	assert.Equal(t, []string{
		"debug:post created",
		"info:completed request",
		"warn:dropping database",
		"error:failed to publish post event",
	}, rec.lines)
}

func TestWithFieldsHelpersOnSlogLogger(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })
	Init("debug")

	assert.NotPanics(t, func() {
		DebugWithFields("post updated", Fields{"post_id": "1"})
		WarnWithFields("failed to ensure topic", Fields{"topic": "blog.post.events"})
	})
}
