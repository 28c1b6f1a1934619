package domain

import "time"

// Employee is a registered employee record keyed by CPF.
type Employee struct {
	ID        *int64
	CPF       string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewEmployee builds an unpersisted record; ID stays nil until the
// repository assigns one.
func NewEmployee(cpf, name string) *Employee {
	return &Employee{CPF: cpf, Name: name}
}
