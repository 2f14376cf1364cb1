package identity

// UserResponse is the profile payload the presentation layer renders from.
type UserResponse struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	EmployeeID string   `json:"employee_id"`
	JobTitle   string   `json:"job_title,omitempty"`
	SystemRole string   `json:"system_role"`
	Surfaces   []string `json:"accessible_surfaces"`
}

func (u *User) ToResponse(surfaces []string) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.FullName(),
		EmployeeID: u.EmployeeID,
		JobTitle:   u.JobTitle,
		SystemRole: string(u.SystemRole),
		Surfaces:   surfaces,
	}
}
