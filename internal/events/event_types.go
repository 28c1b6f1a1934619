package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventEmployeeCreated EventType = "employee_created"
	EventEmployeeDeleted EventType = "employee_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	CPF       string      `json:"cpf"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// EmployeeCreatedPayload payload.
type EmployeeCreatedPayload struct {
	EmployeeID int64  `json:"employee_id"`
	Name       string `json:"name"`
}

// EmployeeDeletedPayload payload.
type EmployeeDeletedPayload struct {
	Name string `json:"name"`
}
