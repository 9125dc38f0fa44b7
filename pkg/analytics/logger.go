package analytics

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// LogHandler writes every event to a structured logger. It is useful during
// development and as a local backend in environments without a vendor.
type LogHandler struct {
	ParameterStore
	logger logrus.FieldLogger
	level  logrus.Level
}

// LogHandlerOption configures a LogHandler.
type LogHandlerOption func(*LogHandler)

// WithLogLevel sets the level events are logged at. The default is Info.
func WithLogLevel(level logrus.Level) LogHandlerOption {
	return func(h *LogHandler) { h.level = level }
}

// NewLogHandler creates a handler logging to logger.
func NewLogHandler(logger logrus.FieldLogger, opts ...LogHandlerOption) *LogHandler {
	h := &LogHandler{logger: logger, level: logrus.InfoLevel}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Send logs the event with its parameters as structured fields.
func (h *LogHandler) Send(ctx context.Context, event Event, source SourceMetadata) error {
	fields := logrus.Fields{
		"event": event.Name,
	}
	if source.File != "" {
		fields["source"] = fmt.Sprintf("%s:%d", source.File, source.Line)
	}
	for k, v := range event.Parameters {
		fields["param."+k] = v.AsPlain()
	}
	h.logger.WithFields(fields).Log(h.level, "analytics event")
	return nil
}
