// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

/*
roles.go - Account Roles

Roles are stored in viewer_account.account_type. There is no hierarchy:
each route lists the roles it admits (see internal/authz/policy.csv), so an
Admin is not implicitly granted what an Employee may do.
*/

package models

const (
	// RoleCustomer is assigned at self-registration.
	RoleCustomer = "Customer"

	// RoleEmployee manages catalog content.
	RoleEmployee = "Employee"

	// RoleAdmin manages accounts, countries, the cache and deletions.
	RoleAdmin = "Admin"
)

// ValidRoles contains all valid role names for validation.
var ValidRoles = []string{RoleCustomer, RoleEmployee, RoleAdmin}

// IsValidRole checks if a role name is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
