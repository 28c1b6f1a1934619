package dto

// CreateEmployeeRequest payload for employee registration.
type CreateEmployeeRequest struct {
	CPF  string `json:"cpf"`
	Name string `json:"name"`
}

// EmployeeResponse envelope for a created employee.
type EmployeeResponse struct {
	Success bool   `json:"success"`
	ID      int64  `json:"id"`
	Message string `json:"message"`
	CPF     string `json:"cpf"`
	Name    string `json:"name"`
}

// DeleteEmployeeResponse envelope for deletions.
type DeleteEmployeeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// EmployeeSummary is one row in a listing.
type EmployeeSummary struct {
	ID   int64  `json:"id"`
	CPF  string `json:"cpf"`
	Name string `json:"name"`
}

// EmployeeListResponse envelope for listings.
type EmployeeListResponse struct {
	Success   bool              `json:"success"`
	Employees []EmployeeSummary `json:"employees"`
}
