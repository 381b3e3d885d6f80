// Package services contains the server-side workflows. UserService registers
// users across the relational store and the blob store and looks them up
// again.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/profilekeeper/internal/common"
	"github.com/dmitrijs2005/profilekeeper/internal/dbx"
	"github.com/dmitrijs2005/profilekeeper/internal/server/blobstore"
	"github.com/dmitrijs2005/profilekeeper/internal/server/config"
	"github.com/dmitrijs2005/profilekeeper/internal/server/models"
	"github.com/dmitrijs2005/profilekeeper/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	newUserID = func() string { return uuid.NewString() }

	hashPassword = func(password string) (string, error) {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", err
		}
		return string(h), nil
	}
)

// RegisterRequest carries the submitted registration form.
type RegisterRequest struct {
	FullName string
	Email    string
	Password string
	Phone    string
	Picture  []byte
}

// UserService runs the registration and lookup workflows. It keeps no
// mutable state and is safe for concurrent use.
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	blobs         blobstore.Store
	storeTimeout  time.Duration
	hashPasswords bool
}

// NewUserService wires the service to its two stores.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, blobs blobstore.Store, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		blobs:         blobs,
		storeTimeout:  cfg.StoreTimeout,
		hashPasswords: cfg.HashPasswords,
	}
}

// FirstName returns the first whitespace-separated token of fullName.
func FirstName(fullName string) (string, error) {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return "", common.ErrInvalidName
	}
	return fields[0], nil
}

// Register stores a new user and its profile picture and returns the
// generated user id.
//
// The email check and the insert share one transaction; a concurrent insert
// of the same email still surfaces as ErrDuplicateEmail through the unique
// index. A taken email is reported before the name or password are looked
// at. The picture is written after the row is committed and is not rolled
// back if that write fails, leaving an orphaned row.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (string, error) {
	var user *models.User

	err := s.withStoreTimeout(ctx, func(ctx context.Context) error {
		return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			repo := s.repomanager.Users(tx)

			_, err := repo.GetByEmail(ctx, req.Email)
			if err == nil {
				return common.ErrDuplicateEmail
			}
			if !errors.Is(err, common.ErrorNotFound) {
				return err
			}

			user, err = s.newUser(req)
			if err != nil {
				return err
			}

			if err := repo.Create(ctx, user); err != nil {
				if errors.Is(err, common.ErrorAlreadyExists) {
					return common.ErrDuplicateEmail
				}
				return err
			}
			return nil
		})
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrDuplicateEmail),
			errors.Is(err, common.ErrInvalidName),
			errors.Is(err, common.ErrInvalidPassword):
			return "", err
		}
		return "", fmt.Errorf("%w: error creating user: %w", common.ErrStoreUnavailable, err)
	}

	err = s.withStoreTimeout(ctx, func(ctx context.Context) error {
		return s.blobs.Put(ctx, user.ID, req.Picture)
	})
	if err != nil {
		return "", fmt.Errorf("%w: error storing profile picture of %s: %w", common.ErrStoreUnavailable, user.ID, err)
	}

	return user.ID, nil
}

// newUser builds the row for req under a fresh id. The password is kept as
// submitted unless hashing is enabled.
func (s *UserService) newUser(req RegisterRequest) (*models.User, error) {
	firstName, err := FirstName(req.FullName)
	if err != nil {
		return nil, err
	}

	password := req.Password
	if s.hashPasswords {
		password, err = hashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrInvalidPassword, err)
		}
	}

	return &models.User{
		ID:        newUserID(),
		FirstName: firstName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  password,
	}, nil
}

// Lookup joins the user row with its profile picture. A missing picture is
// not an error: the profile comes back with a nil Picture.
func (s *UserService) Lookup(ctx context.Context, id string) (*models.Profile, error) {
	var user *models.User
	err := s.withStoreTimeout(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.repomanager.Users(s.db).GetByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: error fetching user: %w", common.ErrStoreUnavailable, err)
	}

	var picture []byte
	err = s.withStoreTimeout(ctx, func(ctx context.Context) error {
		var err error
		picture, err = s.blobs.Get(ctx, id)
		return err
	})
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("%w: error fetching profile picture: %w", common.ErrStoreUnavailable, err)
	}

	return &models.Profile{
		UserID:    user.ID,
		FirstName: user.FirstName,
		Email:     user.Email,
		Phone:     user.Phone,
		Picture:   picture,
	}, nil
}

func (s *UserService) withStoreTimeout(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.storeTimeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	return fn(ctx)
}
