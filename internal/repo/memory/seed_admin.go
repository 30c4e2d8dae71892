package memory

import (
	"context"
	"errors"

	"github.com/teetime/campusride/internal/config"
	"github.com/teetime/campusride/internal/domain/user"
	"github.com/teetime/campusride/internal/security"
)

// EnsureAdminUser seeds the fixture admin account on startup. The store is
// in-memory and lost on restart, so this runs on every boot.
func EnsureAdminUser(ctx context.Context, users *UsersRepo, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	// check if the user exists

	_, err := users.GetByEmail(ctx, cfg.AdminEmail)

	if err == nil {
		return nil
	}

	if !errors.Is(err, user.ErrNotFound) {
		return err
	}

	hash := security.HashPassword(cfg.AdminPassword)

	_, err = users.Create(ctx, cfg.AdminName, cfg.AdminEmail, hash, cfg.AdminRole)

	return err
}
