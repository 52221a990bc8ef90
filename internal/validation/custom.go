// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package validation

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/reelhouse/internal/config"
	"github.com/tomtom215/reelhouse/internal/models"
)

// passwordPolicy backs the "password" tag.
var passwordPolicy = config.DefaultPasswordPolicy()

// registerCustomValidators adds the application tags:
//
//	notblank        string is not empty after trimming
//	trimmax=n       string has at most n characters after trimming
//	password        string satisfies config.DefaultPasswordPolicy
//	role            one of Customer, Employee, Admin
//	yn              "Y" or "N"
//	date            YYYY-MM-DD
//	datetime_local  YYYY-MM-DDTHH:MM
func registerCustomValidators(v *validator.Validate) {
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "trimmax", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) <= limit
	})
	mustRegister(v, "password", func(fl validator.FieldLevel) bool {
		ok, _ := passwordPolicy.Validate(fl.Field().String())
		return ok
	})
	mustRegister(v, "role", func(fl validator.FieldLevel) bool {
		return models.IsValidRole(fl.Field().String())
	})
	mustRegister(v, "yn", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "Y" || s == "N"
	})
	mustRegister(v, "date", layoutValidator(models.DateLayout))
	mustRegister(v, "datetime_local", layoutValidator(models.DateTimeLocalLayout))
}

func layoutValidator(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := time.Parse(layout, fl.Field().String())
		return err == nil
	}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("validation: register " + tag + ": " + err.Error())
	}
}
