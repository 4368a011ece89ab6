package models

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
	RoleAdmin   UserRole = "admin"
)

// RoleForEmail derives the account role from the email domain. The role is
// never client-supplied: @student.ehb.be maps to student, @ehb.be to teacher.
// Any other domain is rejected (ok == false). Admin accounts are provisioned
// out of band.
func RoleForEmail(email string) (UserRole, bool) {
	switch {
	case strings.HasSuffix(email, "@student.ehb.be"):
		return RoleStudent, true
	case strings.HasSuffix(email, "@ehb.be"):
		return RoleTeacher, true
	}
	return "", false
}

// User is a forum account. The password column holds a bcrypt hash and is
// excluded from every JSON response.
type User struct {
	UserID   uint     `json:"user_id" gorm:"column:user_id;primaryKey"`
	Username string   `json:"username" gorm:"not null;size:50"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:50"`
	Password string   `json:"-" gorm:"not null;size:255"`
	Role     UserRole `json:"role" gorm:"type:user_role;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
