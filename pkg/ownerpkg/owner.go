// Package ownerpkg provides common owner tier related functionality for apps.
package ownerpkg

import (
	"github.com/go-playground/validator/v10"
)

// Constants for all supported owner tiers.
const (
	Me     = "me"
	Spouse = "spouse"
	Joint  = "joint"
)

// SupportedOwners holds all the supported owner tiers.
var SupportedOwners = []string{
	Me,
	Spouse,
	Joint,
}

// IsSupportedOwner returns true if the owner tier is supported.
func IsSupportedOwner(owner string) bool {
	for _, o := range SupportedOwners {
		if o == owner {
			return true
		}
	}

	return false
}

// ValidOwner validates the owner tier of a binding request field.
var ValidOwner validator.Func = func(fieldLevel validator.FieldLevel) bool {
	if owner, ok := fieldLevel.Field().Interface().(string); ok {
		return IsSupportedOwner(owner)
	}

	return false
}
