// Package domain contains entity without logic, just meta-data
package domain

import "errors"

const MaxDisplayNameLen = 72

var ErrDisplayNameTooLong = errors.New("display name too long")

// UserRef is an opaque reference to an identity owned by the external
// account service. The coordinator never interprets it.
type UserRef string

type User struct {
	Ref         UserRef `json:"user_id"`
	DisplayName string  `json:"display_name"`
}

// NewUser is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewUser(ref UserRef, displayName string) (*User, error) {
	if len(displayName) > MaxDisplayNameLen {
		return nil, ErrDisplayNameTooLong
	}
	return &User{Ref: ref, DisplayName: displayName}, nil
}
