package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User represents the users table
type User struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Username         string         `gorm:"not null" json:"username"`
	Email            string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash     string         `gorm:"not null" json:"-"`
	MatricNumber     string         `gorm:"uniqueIndex;not null" json:"matric_number"`
	State            sql.NullString `json:"state,omitempty"`
	Country          sql.NullString `json:"country,omitempty"`
	ProfilePicture   sql.NullString `json:"profile_picture,omitempty"`
	ResetToken       sql.NullString `json:"-"`
	ResetTokenExpiry sql.NullTime   `json:"-"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
