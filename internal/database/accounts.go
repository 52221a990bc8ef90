// Reelhouse - Web Series Catalog and Viewer Administration API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelhouse

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tomtom215/reelhouse/internal/database/query"
	"github.com/tomtom215/reelhouse/internal/models"
)

const accountColumns = `a.account_id, a.first_name, a.middle_name, a.last_name, a.email, a.password_hash,
	a.street, a.city, a.state, a.country_name, a.account_type, a.is_active, a.open_date,
	a.monthly_service_charge::float8, a.created_at`

func scanAccount(row pgx.CollectableRow) (models.Account, error) {
	var a models.Account
	err := row.Scan(&a.AccountID, &a.FirstName, &a.MiddleName, &a.LastName, &a.Email, &a.PasswordHash,
		&a.Street, &a.City, &a.State, &a.CountryName, &a.AccountType, &a.IsActive, &a.OpenDate,
		&a.MonthlyServiceCharge, &a.CreatedAt)
	return a, err
}

// CreateAccount inserts a viewer account, creating its country first when
// needed. Both writes share one transaction.
func (db *DB) CreateAccount(ctx context.Context, a *models.Account) (err error) {
	defer observe("insert", "viewer_account", time.Now(), &err)

	if a.AccountID == "" {
		a.AccountID = models.NewID(models.PrefixAccount, models.AccountIDDigits)
	}
	if a.OpenDate.IsZero() {
		a.OpenDate = models.Today()
	}

	err = db.withTx(ctx, func(tx pgx.Tx) error {
		if a.CountryName != nil && *a.CountryName != "" {
			if err := ensureCountry(ctx, tx, *a.CountryName); err != nil {
				return fmt.Errorf("ensure country: %w", err)
			}
		}
		return tx.QueryRow(ctx, `
			INSERT INTO viewer_account (account_id, first_name, middle_name, last_name, email, password_hash,
				street, city, state, country_name, open_date, monthly_service_charge, account_type, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			RETURNING created_at`,
			a.AccountID, a.FirstName, a.MiddleName, a.LastName, a.Email, a.PasswordHash,
			a.Street, a.City, a.State, a.CountryName, a.OpenDate, a.MonthlyServiceCharge, a.AccountType, a.IsActive,
		).Scan(&a.CreatedAt)
	})
	if err != nil {
		return fmt.Errorf("create account: %w", mapWriteError(err))
	}
	return nil
}

// GetAccount returns the account with the given ID.
func (db *DB) GetAccount(ctx context.Context, accountID string) (_ *models.Account, err error) {
	defer observe("select", "viewer_account", time.Now(), &err)
	return db.getAccountWhere(ctx, "a.account_id = $1", accountID)
}

// GetAccountByEmail returns the account registered with email.
func (db *DB) GetAccountByEmail(ctx context.Context, email string) (_ *models.Account, err error) {
	defer observe("select", "viewer_account", time.Now(), &err)
	return db.getAccountWhere(ctx, "a.email = $1", email)
}

func (db *DB) getAccountWhere(ctx context.Context, cond string, arg string) (*models.Account, error) {
	rows, err := db.pool.Query(ctx, `SELECT `+accountColumns+` FROM viewer_account a WHERE `+cond, arg)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	a, err := pgx.CollectExactlyOneRow(rows, scanAccount)
	if err != nil {
		return nil, mapNoRows(err)
	}
	return &a, nil
}

// EmailExists reports whether an account already uses email.
func (db *DB) EmailExists(ctx context.Context, email string) (exists bool, err error) {
	defer observe("select", "viewer_account", time.Now(), &err)
	err = db.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM viewer_account WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

// ListAccounts returns a page of accounts. Search matches first name, last
// name, email and account ID.
func (db *DB) ListAccounts(ctx context.Context, f models.AccountFilter, page models.Page) (_ models.Paged[models.Account], err error) {
	defer observe("list", "viewer_account", time.Now(), &err)

	wb := query.NewWhereBuilder().
		AddSearch(f.Search, "a.first_name", "a.last_name", "a.email", "a.account_id").
		AddEquals("a.account_type", f.AccountType).
		AddBool("a.is_active", f.IsActive)

	res, err := listPaged(ctx, db, listQuery{
		From:    "viewer_account a",
		Columns: accountColumns,
		OrderBy: "a.created_at DESC, a.account_id",
	}, wb, page, scanAccount)
	if err != nil {
		return res, fmt.Errorf("list accounts: %w", err)
	}
	return res, nil
}

// SetAccountRole changes the account type and returns the updated account.
func (db *DB) SetAccountRole(ctx context.Context, accountID, role string) (*models.Account, error) {
	return db.updateAccount(ctx, "account_type = $2", accountID, role)
}

// SetAccountActive activates or deactivates an account.
func (db *DB) SetAccountActive(ctx context.Context, accountID string, active bool) (*models.Account, error) {
	return db.updateAccount(ctx, "is_active = $2", accountID, active)
}

// SetAccountPassword replaces the password hash.
func (db *DB) SetAccountPassword(ctx context.Context, accountID, passwordHash string) error {
	_, err := db.updateAccount(ctx, "password_hash = $2", accountID, passwordHash)
	return err
}

func (db *DB) updateAccount(ctx context.Context, set string, accountID string, value interface{}) (_ *models.Account, err error) {
	defer observe("update", "viewer_account", time.Now(), &err)

	rows, err := db.pool.Query(ctx, `
		UPDATE viewer_account a SET `+set+`, updated_at = now()
		WHERE a.account_id = $1
		RETURNING `+accountColumns, accountID, value)
	if err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	a, err := pgx.CollectExactlyOneRow(rows, scanAccount)
	if err != nil {
		return nil, mapNoRows(mapWriteError(err))
	}
	return &a, nil
}

// DeleteAccount removes an account; its feedback is removed by cascade.
func (db *DB) DeleteAccount(ctx context.Context, accountID string) (err error) {
	defer observe("delete", "viewer_account", time.Now(), &err)

	if err = db.execAffected(ctx, `DELETE FROM viewer_account WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("delete account: %w", mapDeleteError(err))
	}
	return nil
}

// CountAccountsByCountry returns how many accounts reference country.
func (db *DB) CountAccountsByCountry(ctx context.Context, country string) (n int64, err error) {
	defer observe("count", "viewer_account", time.Now(), &err)
	err = db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM viewer_account WHERE country_name = $1`, country).Scan(&n)
	return n, err
}
