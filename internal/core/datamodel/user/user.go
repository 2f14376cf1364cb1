package user

import "time"

type User struct {
	ID           string    `gorm:"primaryKey"`
	ExternalID   *string   `gorm:"column:external_id;uniqueIndex"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	EmployeeID   string    `gorm:"column:employee_id;uniqueIndex"`
	JobTitle     string    `gorm:"column:job_title"`
	DepartmentID string    `gorm:"column:department_id"`
	TeamLeadID   *string   `gorm:"column:team_lead_id"`
	SystemRole   string    `gorm:"column:system_role"`
	Status       string    `gorm:"column:status;default:active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
