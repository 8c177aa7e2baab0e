// Package models defines the account and agent-submission records owned by
// the session and catalog stores, and their persisted JSON shapes.
package models

import (
	"fmt"
	"strings"
)

// Role decides which parts of the marketplace a user may open.
type Role string

const (
	RoleUser    Role = "user"
	RoleBuilder Role = "builder"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleBuilder
}

// User is the public projection of an Account. It is the only account shape
// that crosses the persistence boundary.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	Company   string `json:"company,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// Account is a directory entry. Secret is plaintext and never serialized.
type Account struct {
	User
	Secret string `json:"-"`
}

// Public strips the secret.
func (a Account) Public() User {
	return a.User
}

const avatarPlaceholder = "/placeholder.svg?height=40&width=40&text=%s"

// AvatarFor builds the placeholder avatar URI from the initials of name,
// e.g. "Jane Builder" -> ".../text=JB".
func AvatarFor(name string) string {
	var initials strings.Builder
	for _, part := range strings.Split(name, " ") {
		for _, r := range part {
			initials.WriteRune(r)
			break
		}
	}
	return fmt.Sprintf(avatarPlaceholder, initials.String())
}
