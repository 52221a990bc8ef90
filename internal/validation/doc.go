// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

// Package validation validates request bodies and sanitizes free text.
//
// Validation wraps go-playground/validator v10 in a thread-safe singleton.
// Field names in messages are the JSON names, so a missing title reports
// "title is required". Some field and tag pairs carry fixed messages, for
// example any rating outside [1,5] reports "Rating must be between 1 and 5".
//
// # Custom Tags
//
//	notblank        rejects strings that are empty after trimming
//	trimmax=n       length limit measured after trimming
//	password        the shared config.PasswordPolicy; the message names the first violated rule
//	role            Customer, Employee or Admin
//	yn              "Y" or "N"
//	date            YYYY-MM-DD
//	datetime_local  YYYY-MM-DDTHH:MM
//
// # Sanitization
//
// Sanitize HTML-escapes its input and then strips any remaining
// <script>...</script> span. Handlers apply it to names, addresses, titles
// and feedback text before persisting. Email addresses are validated by the
// email tag and stored as given.
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    writeJSON(w, http.StatusBadRequest, map[string]string{"error": apiErr.Message, "field": apiErr.Field})
//	    return
//	}
//	validation.SanitizeAll(&req.FirstName, &req.LastName, req.MiddleName)
package validation
