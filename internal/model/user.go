package model

import "time"

type Credential struct {
	UUID          string    `db:"uuid" json:"uuid"`
	EmailAddress  string    `db:"email_address" json:"email_address"`
	PasswordHash  string    `db:"password_hash" json:"-"`
	VerifiedEmail bool      `db:"verified_email" json:"verified_email"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	LastLoginAt   time.Time `db:"last_login_at" json:"last_login_at"`
}
