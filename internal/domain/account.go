// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrCategoryNotFound indicates that the referenced category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrAccountHasBalances indicates that the account still owns balance entries.
	ErrAccountHasBalances = errors.New("account still has balance entries")
)

// Account holds a tracked financial account.
//
// An account has no balance of its own. Its value at any point in time is
// derived from its balance entries via the carry-forward rule.
type Account struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Bank      string    `json:"bank"`
	Category  string    `json:"category"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAccountParams holds the attributes of a new account.
type CreateAccountParams struct {
	Name     string
	Bank     string
	Category string
	Owner    string
}

// UpdateAccountParams holds the mutable attributes of an account.
// Nil fields are left unchanged.
type UpdateAccountParams struct {
	ID       int32
	Name     *string
	Bank     *string
	Category *string
	Owner    *string
}
