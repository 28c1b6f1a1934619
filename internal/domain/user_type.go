package domain

// UserType differentiates customer vs employee tokens.
type UserType string

const (
	UserTypeCustomer UserType = "cliente"
	UserTypeEmployee UserType = "funcionario"
)

// ClientSubjectPrefix prefixes generated subjects for anonymous customers.
const ClientSubjectPrefix = "client_"
