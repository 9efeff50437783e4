package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLoginSucceeded  EventType = "login_succeeded"
	EventLoginFailed     EventType = "login_failed"
	EventEmployeeCreated EventType = "employee_created"
	EventEmployeeUpdated EventType = "employee_updated"
	EventEmployeeDeleted EventType = "employee_deleted"
)

// Event represents an audit event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EmpID     int64       `json:"emp_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// LoginFailedPayload carries the failure category for the audit trail.
// It is internal only and never reaches the HTTP response.
type LoginFailedPayload struct {
	Reason string `json:"reason"`
}

// EmployeeChangedPayload notes who performed a record change.
type EmployeeChangedPayload struct {
	Actor string `json:"actor"`
}
