package identity

import (
	"strings"
	"time"

	userDatamodel "github.com/skillbridge/skillbridge/internal/core/datamodel/user"
)

// SystemRole is the closed set of stored roles. Anything else a record may
// carry ("teamLead" job titles included) is resolved dynamically, never here.
type SystemRole string

const (
	SystemRoleNone     SystemRole = "none"
	SystemRoleEmployee SystemRole = "employee"
	SystemRoleAdmin    SystemRole = "systemAdmin"
)

// ParseSystemRole normalizes the raw stored value once at the boundary.
// Legacy records carry variant casing; unknown values degrade to none.
func ParseSystemRole(raw string) SystemRole {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "systemadmin", "system_admin":
		return SystemRoleAdmin
	case "employee":
		return SystemRoleEmployee
	default:
		return SystemRoleNone
	}
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type User struct {
	ID           string     `json:"id"`
	ExternalID   *string    `json:"external_id,omitempty"`
	Email        string     `json:"email"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	EmployeeID   string     `json:"employee_id"`
	JobTitle     string     `json:"job_title"`
	DepartmentID string     `json:"department_id"`
	TeamLeadID   *string    `json:"team_lead_id,omitempty"`
	SystemRole   SystemRole `json:"system_role"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (u *User) IsActiveUser() bool {
	return u.Status == StatusActive
}

func (u *User) IsLinked() bool {
	return u.ExternalID != nil && *u.ExternalID != ""
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		ExternalID:   u.ExternalID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		EmployeeID:   u.EmployeeID,
		JobTitle:     u.JobTitle,
		DepartmentID: u.DepartmentID,
		TeamLeadID:   u.TeamLeadID,
		SystemRole:   string(u.SystemRole),
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.User) *User {
	return &User{
		ID:           u.ID,
		ExternalID:   u.ExternalID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		EmployeeID:   u.EmployeeID,
		JobTitle:     u.JobTitle,
		DepartmentID: u.DepartmentID,
		TeamLeadID:   u.TeamLeadID,
		SystemRole:   ParseSystemRole(u.SystemRole),
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModelSlice(users []*userDatamodel.User) []*User {
	result := make([]*User, len(users))
	for i, u := range users {
		result[i] = FromDataModel(u)
	}
	return result
}
