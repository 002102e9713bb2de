// Package admin holds the single privileged identity of the contract.
package admin

import (
	"context"
	"encoding/json"

	"github.com/dhiraj-inti/aml-application/internal/platform/db"
	"github.com/dhiraj-inti/aml-application/internal/platform/host"
	"github.com/dhiraj-inti/aml-application/internal/rejection"

	"github.com/pkg/errors"
)

const storageKey = "contract/admin"

var (
	// ErrNotInitialized is returned when the contract has no admin yet.
	ErrNotInitialized = errors.Wrap(rejection.ErrConfiguration, "contract not initialized")

	// ErrAlreadyInitialized is returned by a second Initialize.
	ErrAlreadyInitialized = errors.Wrap(rejection.ErrConfiguration, "contract already initialized")

	// ErrUnauthorized is returned when the caller is not the admin.
	ErrUnauthorized = errors.Wrap(rejection.ErrAuthorization, "unauthorized")

	// ErrEmptyAdmin is returned when initializing with an empty identity.
	ErrEmptyAdmin = errors.Wrap(rejection.ErrValidation, "empty admin")
)

// Initialize stores the admin identity. It can only succeed once.
func Initialize(ctx context.Context, dbConn db.Conn, adminAddress host.Address) error {
	if adminAddress.IsEmpty() {
		return ErrEmptyAdmin
	}

	_, err := Fetch(ctx, dbConn)
	if err == nil {
		return ErrAlreadyInitialized
	}
	if err != ErrNotInitialized {
		return err
	}

	b, err := json.Marshal(adminAddress)
	if err != nil {
		return errors.Wrap(err, "marshal admin")
	}

	return dbConn.Put(ctx, storageKey, b)
}

// Fetch returns the admin identity.
func Fetch(ctx context.Context, dbConn db.Conn) (host.Address, error) {
	b, err := dbConn.Fetch(ctx, storageKey)
	if err != nil {
		if err == db.ErrNotFound {
			return "", ErrNotInitialized
		}

		return "", errors.Wrap(err, "fetch admin")
	}

	var result host.Address
	if err := json.Unmarshal(b, &result); err != nil {
		return "", errors.Wrapf(rejection.ErrConfiguration, "stored admin : %s", err)
	}

	return result, nil
}

// Authorize returns nil only when caller is exactly the admin identity.
func Authorize(ctx context.Context, dbConn db.Conn, caller host.Address) error {
	adminAddress, err := Fetch(ctx, dbConn)
	if err != nil {
		return err
	}

	if caller != adminAddress {
		return errors.Wrapf(ErrUnauthorized, "caller %s", caller)
	}

	return nil
}
