package service

import "github.com/astroconsulta/platform-api/internal/core/domain"

// AuditRecorder accepts audit entries fire-and-forget. Recording must never
// block or fail a use case; the queue-backed implementation drains entries in
// the background.
type AuditRecorder interface {
	Record(entry domain.AuditLog)
}

// NopAudit discards entries. Used in tests and when auditing is disabled.
type NopAudit struct{}

func (NopAudit) Record(domain.AuditLog) {}
