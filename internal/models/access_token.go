package models

import "time"

// AccessToken is an opaque bearer token issued by POST /auth/token.
type AccessToken struct {
	Token     string    `gorm:"primarykey;type:varchar(64)" json:"-"`
	UserID    string    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// Expired reports whether the token is no longer usable at now.
func (t AccessToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
