package models

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID                int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email             string    `gorm:"column:email;type:text;uniqueIndex" json:"email"`
	HashedPassword    *string   `gorm:"column:hashed_password;type:text" json:"-"`
	FullName          string    `gorm:"column:full_name;type:text" json:"full_name"`
	FirebaseUID       *string   `gorm:"column:firebase_uid;type:text;uniqueIndex" json:"firebase_uid,omitempty"`
	Role              UserRole  `gorm:"column:role;type:text;default:user" json:"role"`
	IsActive          bool      `gorm:"column:is_active;default:true" json:"is_active"`
	IsVerified        bool      `gorm:"column:is_verified;default:false" json:"is_verified"`
	PhoneNumber       *string   `gorm:"column:phone_number;type:text" json:"phone_number,omitempty"`
	ProfilePictureURL *string   `gorm:"column:profile_picture_url;type:text" json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time `gorm:"column:created_at;type:timestamptz" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;type:timestamptz" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// PublicProfile is what other users may see.
type PublicProfile struct {
	ID                int64   `json:"id"`
	FullName          string  `json:"full_name"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty"`
}

func (u *User) Public() PublicProfile {
	return PublicProfile{ID: u.ID, FullName: u.FullName, ProfilePictureURL: u.ProfilePictureURL}
}
