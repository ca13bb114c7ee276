package domain

import (
	"encoding/json"
	"time"
)

// AuditLog records one ledger operation for the operational audit path.
// Rows are written in the same atomic unit as the operation they describe.
type AuditLog struct {
	ID           string
	Action       AuditAction
	ResourceType string
	ResourceID   string
	BeforeState  JSON
	AfterState   JSON
	CreatedAt    time.Time
}

// JSON is a type alias for JSON data
type JSON map[string]any

// AuditAction represents different types of auditable ledger actions
type AuditAction string

const (
	AuditActionLineItemApply   AuditAction = "lineitem.apply"
	AuditActionLineItemReverse AuditAction = "lineitem.reverse"
	AuditActionLineItemReapply AuditAction = "lineitem.reapply"
)

// MarshalState converts a domain object to JSON for audit logging
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var result JSON
	if err := json.Unmarshal(data, &result); err != nil {
		return JSON{"error": "failed to unmarshal state"}
	}

	return result
}
