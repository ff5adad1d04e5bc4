package models

import "time"

// CollectionAuditLogs keeps a trail of admin writes.
const CollectionAuditLogs = "auditLogs"

const (
	AuditActionLogin  = "LOGIN"
	AuditActionCreate = "CREATE"
	AuditActionUpdate = "UPDATE"
	AuditActionDelete = "DELETE"
	AuditActionUpload = "UPLOAD"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string    `json:"id"`
	Actor      string    `json:"actor,omitempty"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resourceId,omitempty"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Status     int       `json:"status"`
	IPAddress  string    `json:"ipAddress"`
	UserAgent  string    `json:"userAgent"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (a AuditLog) Fields() map[string]interface{} {
	return map[string]interface{}{
		"actor":      a.Actor,
		"action":     a.Action,
		"resource":   a.Resource,
		"resourceId": a.ResourceID,
		"method":     a.Method,
		"path":       a.Path,
		"status":     a.Status,
		"ipAddress":  a.IPAddress,
		"userAgent":  a.UserAgent,
		"createdAt":  a.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
