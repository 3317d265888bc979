package bootstrap

import (
	"context"
	"maps"
	"slices"

	"go-hrms/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutAuditLogger emits audit entries as structured zap lines on the
// "audit" logger. Meta keys become top-level fields prefixed with "meta.".
type StdoutAuditLogger struct {
	logger *zap.Logger
}

func NewStdoutAuditLogger(logger ...*zap.Logger) *StdoutAuditLogger {
	base := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		base = logger[0]
	}
	return &StdoutAuditLogger{logger: base.Named("audit")}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	meta := contextutil.ExtractMetadata(ctx)

	fields := make([]zap.Field, 0, 4+len(entry.Meta))
	fields = append(fields, zap.String("action", entry.Action))
	if meta.RequestID != "" {
		fields = append(fields, zap.String("request_id", meta.RequestID))
	}
	if meta.UserID != "" {
		fields = append(fields, zap.String("user_id", meta.UserID), zap.String("role", meta.Role))
	}
	for _, k := range slices.Sorted(maps.Keys(entry.Meta)) {
		fields = append(fields, zap.Any("meta."+k, entry.Meta[k]))
	}

	l.logger.Info(entry.Message, fields...)
}
