// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package config

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// PasswordPolicy defines requirements for viewer account passwords.
type PasswordPolicy struct {
	// MinLength is the minimum password length in characters
	MinLength int

	// RequireUppercase requires at least one uppercase letter
	RequireUppercase bool

	// RequireLowercase requires at least one lowercase letter
	RequireLowercase bool

	// RequireDigit requires at least one digit
	RequireDigit bool
}

// DefaultPasswordPolicy returns the policy applied at registration and on admin resets.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:        8,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireDigit:     true,
	}
}

// charClasses holds the results of character class analysis.
type charClasses struct {
	hasUpper bool
	hasLower bool
	hasDigit bool
}

// analyzeCharClasses examines a password and returns which character classes are present.
func analyzeCharClasses(password string) charClasses {
	var cc charClasses
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			cc.hasUpper = true
		case unicode.IsLower(r):
			cc.hasLower = true
		case unicode.IsDigit(r):
			cc.hasDigit = true
		}
	}
	return cc
}

// Validate checks password against the policy and returns the message for the
// first violated rule, in the order length, uppercase, lowercase, digit.
// It returns ok=true and an empty message when the password is acceptable.
func (p PasswordPolicy) Validate(password string) (ok bool, message string) {
	if utf8.RuneCountInString(password) < p.MinLength {
		return false, fmt.Sprintf("Password must be at least %d characters", p.MinLength)
	}

	cc := analyzeCharClasses(password)
	switch {
	case p.RequireUppercase && !cc.hasUpper:
		return false, "Password must contain at least one uppercase letter"
	case p.RequireLowercase && !cc.hasLower:
		return false, "Password must contain at least one lowercase letter"
	case p.RequireDigit && !cc.hasDigit:
		return false, "Password must contain at least one digit"
	}
	return true, ""
}

// ValidateWithError is a convenience method that returns an error if validation fails.
func (p PasswordPolicy) ValidateWithError(password string) error {
	if ok, msg := p.Validate(password); !ok {
		return errors.New(msg)
	}
	return nil
}
