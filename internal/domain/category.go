package domain

import "errors"

var (
	// ErrCategoryAlreadyExists indicates that a category with the given key already exists.
	ErrCategoryAlreadyExists = errors.New("category already exists")
	// ErrCategoryInUse indicates that accounts still reference the category.
	ErrCategoryInUse = errors.New("category is referenced by accounts")
)

// Kind classifies a category as an asset or a liability.
type Kind string

// Supported category kinds.
const (
	KindAsset     Kind = "asset"
	KindLiability Kind = "liability"
)

// Valid reports whether k is a supported kind.
func (k Kind) Valid() bool {
	return k == KindAsset || k == KindLiability
}

// Category groups accounts and determines their kind.
// An account's asset/liability classification is inherited from its category.
type Category struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}
