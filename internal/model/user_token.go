package model

import "time"

// UserToken holds the single live bearer token for a user. Reissuing
// overwrites Token and ExpiresAt in place, so at most one row exists
// per user; the unique index on UserID is the storage backstop.
type UserToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"userId"`
	Token     string    `gorm:"size:64;not null;uniqueIndex" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (UserToken) TableName() string {
	return "user_tokens"
}
