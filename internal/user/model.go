package user

import (
	"time"
)

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

type Subscription string

const (
	SubFree       Subscription = "free"
	SubPremium    Subscription = "premium"
	SubEnterprise Subscription = "enterprise"
)

type User struct {
	ID                    uint         `gorm:"primaryKey" json:"id"`
	Username              string       `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email                 string       `gorm:"uniqueIndex;size:100" json:"email"`
	PasswordHash          string       `gorm:"size:255;not null"`
	Role                  Role         `gorm:"type:varchar(10);not null;default:'user'" json:"role"`
	IsActive              bool         `gorm:"not null;default:true" json:"isActive"`
	Subscription          Subscription `gorm:"type:varchar(20);not null;default:'free'" json:"subscription"`
	SubscriptionExpiresAt *time.Time   `json:"subscriptionExpiresAt,omitempty"`
	LastLoginAt           *time.Time   `json:"lastLoginAt,omitempty"`
	CreatedAt             time.Time    `json:"createdAt"`
	UpdatedAt             time.Time    `json:"updatedAt"`
}
