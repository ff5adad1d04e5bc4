package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ec-club-bing/website/internal/models"
)

const auditResourceIDKey = "audit_resource_id"

// AuditRecorder persists audit entries.
type AuditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// SetAuditResource names the document a handler created so the audit entry can point at it.
func SetAuditResource(c *gin.Context, id string) {
	c.Set(auditResourceIDKey, id)
}

// Audit records successful admin writes. Entries are logged and, when repo is set, stored.
func Audit(repo AuditRecorder, logger *zap.Logger, action, resource string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		entry := &models.AuditLog{
			Action:     action,
			Resource:   resource,
			ResourceID: c.Param("id"),
			Method:     c.Request.Method,
			Path:       c.FullPath(),
			Status:     c.Writer.Status(),
			IPAddress:  c.ClientIP(),
			UserAgent:  c.GetHeader("User-Agent"),
			CreatedAt:  start,
		}
		if id := c.GetString(auditResourceIDKey); id != "" {
			entry.ResourceID = id
		}
		if claims, ok := CurrentClaims(c); ok {
			entry.Actor = claims.Email
		}

		logger.Info("admin_audit",
			zap.String("actor", entry.Actor),
			zap.String("action", entry.Action),
			zap.String("resource", entry.Resource),
			zap.String("resource_id", entry.ResourceID),
			zap.Int("status", entry.Status),
			zap.Duration("latency", time.Since(start)),
		)

		if repo == nil {
			return
		}
		if err := repo.CreateAuditLog(context.WithoutCancel(c.Request.Context()), entry); err != nil {
			logger.Warn("failed to store audit log", zap.String("resource", resource), zap.Error(err))
		}
	}
}
