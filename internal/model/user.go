package model

import "time"

type UserRole string

const (
	Student    UserRole = "student"
	Instructor UserRole = "instructor"
	Admin      UserRole = "admin"
)

type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Role     UserRole `gorm:"type:enum('student','instructor','admin');default:'student'" json:"role"`
	// LTI identity established by the external launch handshake
	LTIUserID string    `gorm:"size:255;index" json:"-"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
