package entities

import "time"

type AccessLevel string

const (
	AccessLevelAdmin    AccessLevel = "admin"
	AccessLevelStandard AccessLevel = "standard"
)

func (a AccessLevel) Valid() bool {
	return a == AccessLevelAdmin || a == AccessLevelStandard
}

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusInactive
}

// User is an operator of the system. PasswordHash is a bcrypt hash and never
// leaves the persistence/auth layers.
type User struct {
	ID           string
	Username     string
	Email        string
	AccessLevel  AccessLevel
	Status       UserStatus
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) IsAdmin() bool {
	return u.AccessLevel == AccessLevelAdmin
}

func (u User) IsActive() bool {
	return u.Status == UserStatusActive
}
