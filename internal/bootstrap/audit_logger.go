package bootstrap

import "context"

// AuditLog is a single audit trail entry.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records audit events such as server lifecycle transitions.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
