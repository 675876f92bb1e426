package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"prunderground/core/fio"
	"prunderground/core/reconcile"

	"gorm.io/gorm"
)

// ErrUserNotFound is returned when no user has the requested FIO username.
var ErrUserNotFound = errors.New("user not found")

// CredentialStore hands out decrypted FIO credentials.
type CredentialStore interface {
	// Credential returns the user's API key or *fio.NotConfiguredError.
	Credential(ctx context.Context, username string) (string, error)
	// ClearCredential forgets a key the upstream rejected.
	ClearCredential(ctx context.Context, username string) error
}

// Store persists users and their offers.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func byUsername(db *gorm.DB, username string) *gorm.DB {
	return db.Where("LOWER(fio_username) = ?", strings.ToLower(username))
}

// User loads a user by FIO username, case-insensitively.
func (s *Store) User(ctx context.Context, username string) (*User, error) {
	var user User
	err := byUsername(s.db.WithContext(ctx), username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", username, err)
	}
	return &user, nil
}

// Offers loads a user's listings and bundles with their items.
func (s *Store) Offers(ctx context.Context, userID uint) ([]Listing, []Bundle, error) {
	db := s.db.WithContext(ctx)

	var listings []Listing
	if err := db.Where("user_id = ?", userID).Order("id ASC").Find(&listings).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load listings: %w", err)
	}

	var bundles []Bundle
	if err := db.Preload("Items").Where("user_id = ?", userID).Order("id ASC").Find(&bundles).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load bundles: %w", err)
	}
	return listings, bundles, nil
}

// ApplySync writes a reconciliation plan and the sync timestamp in one
// transaction. Nothing is written when any statement fails.
func (s *Store) ApplySync(ctx context.Context, userID uint, plan *reconcile.Plan, syncedAt time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, action := range plan.Actions {
			if !action.Changed() {
				continue
			}

			var model any
			switch action.Type {
			case reconcile.ActionUpdateListing:
				model = &Listing{}
			case reconcile.ActionUpdateBundle:
				model = &Bundle{}
			default:
				return fmt.Errorf("unknown action type %q", action.Type)
			}

			err := tx.Model(model).
				Where("id = ? AND user_id = ?", action.ID, userID).
				Update("available_quantity", action.Available).Error
			if err != nil {
				return fmt.Errorf("failed to apply %s %d: %w", action.Type, action.ID, err)
			}
		}

		err := tx.Model(&User{}).
			Where("id = ?", userID).
			Update("fio_last_synced", syncedAt).Error
		if err != nil {
			return fmt.Errorf("failed to record sync time: %w", err)
		}
		return nil
	})
}

// Credential returns the stored API key for username.
func (s *Store) Credential(ctx context.Context, username string) (string, error) {
	user, err := s.User(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return "", &fio.NotConfiguredError{Username: username}
	}
	if err != nil {
		return "", err
	}
	if user.FIOAPIKey == nil || *user.FIOAPIKey == "" {
		return "", &fio.NotConfiguredError{Username: user.FIOUsername}
	}
	return *user.FIOAPIKey, nil
}

// ClearCredential removes the stored API key for username.
func (s *Store) ClearCredential(ctx context.Context, username string) error {
	err := byUsername(s.db.WithContext(ctx).Model(&User{}), username).
		Update("fio_api_key", nil).Error
	if err != nil {
		return fmt.Errorf("failed to clear credential for %s: %w", username, err)
	}
	return nil
}

// SaveCredential stores a verified key and the account details, creating the
// user when needed.
func (s *Store) SaveCredential(ctx context.Context, key string, account *fio.Account) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := byUsername(tx, account.Username).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = User{FIOUsername: account.Username}
		} else if err != nil {
			return err
		}

		user.FIOAPIKey = &key
		if account.CompanyCode != "" {
			code := account.CompanyCode
			user.CompanyCode = &code
		}
		if account.CompanyName != "" {
			name := account.CompanyName
			user.CompanyName = &name
		}
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save credential for %s: %w", account.Username, err)
	}
	return &user, nil
}
