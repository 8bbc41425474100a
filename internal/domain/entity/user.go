package entity

import (
	"time"
)

const (
	RoleCitizen = "citizen"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

func ValidRole(role string) bool {
	switch role {
	case RoleCitizen, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        string    `json:"id" firestore:"id"`
	Email     string    `json:"email" firestore:"email"`
	FullName  string    `json:"full_name" firestore:"fullName"`
	Role      string    `json:"role" firestore:"role"`
	Phone     string    `json:"phone,omitempty" firestore:"phone,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty" firestore:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

func (u *User) IsStaff() bool {
	return u.Role == RoleStaff || u.Role == RoleAdmin
}

// ProfileSummary is the slice of a user the triage views embed next to a
// complaint.
type ProfileSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func (u *User) Summary() *ProfileSummary {
	return &ProfileSummary{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
	}
}
