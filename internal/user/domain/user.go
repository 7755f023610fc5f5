package domain

import "time"

type ID string

type User struct {
	ID                 ID
	Name               string
	Email              string
	PasswordHash       string
	Streak             int
	LastCompletionDate *time.Time
}

// Profile is the user as exposed to its owner; the password hash never leaves
// the store.
type Profile struct {
	ID                 ID
	Name               string
	Email              string
	Streak             int
	LastCompletionDate *time.Time
}

func (u User) Profile() Profile {
	return Profile{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Streak:             u.Streak,
		LastCompletionDate: u.LastCompletionDate,
	}
}
