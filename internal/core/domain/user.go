package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role represents the kind of account a user holds.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// User represents an identity in the wallet system. The ledger reads role and
// status flags; identity lifecycle (registration, activation) is managed by
// the auth and admin services.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	IsApproved   bool      `json:"is_approved"` // Agents only; meaningless for other roles
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CanTransact returns true if the account may participate in ledger
// operations at all.
func (u *User) CanTransact() bool {
	return u.IsActive
}

// IsEligibleRecipient returns true if the user can be the receiving side of a
// transfer or cash-in. Only active plain users receive money.
func (u *User) IsEligibleRecipient() bool {
	return u.Role == RoleUser && u.IsActive
}

// IsOperationalAgent returns true if the user can initiate cash-in/cash-out
// on behalf of others.
func (u *User) IsOperationalAgent() bool {
	return u.Role == RoleAgent && u.IsActive && u.IsApproved
}

// IsAdmin returns true for administrator accounts.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
