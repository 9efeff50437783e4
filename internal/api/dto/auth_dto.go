package dto

// LoginRequest is the credentials payload for POST /auth/login.
type LoginRequest struct {
	EmpID    int64  `json:"empId"`
	Password string `json:"password"`
}

// EmployeeSummary is the identity block returned alongside a token.
type EmployeeSummary struct {
	EmpID    int64  `json:"empId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// LoginResponse carries the issued token and the identity it represents.
type LoginResponse struct {
	Token    string          `json:"token"`
	Employee EmployeeSummary `json:"employee"`
}
