package dto

import "time"

// EmployeeRequest is the payload for creating or updating a record. The
// password is only read on creation and never echoed back.
type EmployeeRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// EmployeeResponse is the outward shape of an employee record.
type EmployeeResponse struct {
	EmpID     int64     `json:"empId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
