package users

import (
	"context"
	"database/sql"
	"slices"
	"strings"
	"time"

	"github.com/mallobois/woodstock/pkg/auth"
	"github.com/mallobois/woodstock/pkg/errcodes"
	"github.com/mallobois/woodstock/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Service handles operator accounts.
type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db: db}
}

type CreateUserOptions struct {
	Username    string
	PIN         string
	DisplayName string
	Initials    string
	Role        string
	Stations    []string
}

type UpdateUserOptions struct {
	Columns []string
	// PIN replaces the user's PIN when set.
	PIN *string
}

// Create adds a user. Usernames are unique regardless of case.
func (svc *Service) Create(ctx context.Context, opts CreateUserOptions) (*models.User, error) {
	username := strings.ToLower(strings.TrimSpace(opts.Username))

	exists, err := svc.db.
		NewSelect().
		Model((*models.User)(nil)).
		Where("username = ? COLLATE NOCASE", username).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if exists {
		return nil, errcodes.Conflict("Identifiant déjà utilisé")
	}

	hash, err := auth.HashPIN(opts.PIN)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		CreatedAt:   now,
		UpdatedAt:   now,
		Username:    username,
		PinHash:     hash,
		DisplayName: opts.DisplayName,
		Initials:    opts.Initials,
		Role:        opts.Role,
		Stations:    opts.Stations,
	}
	if user.Role == "" {
		user.Role = models.RoleOperator
	}
	if user.Initials == "" {
		user.Initials = DefaultInitials(user.DisplayName)
	}
	if user.Stations == nil {
		user.Stations = []string{}
	}

	_, err = svc.db.
		NewInsert().
		Model(user).
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

func (svc *Service) Retrieve(ctx context.Context, id int) (*models.User, error) {
	user := &models.User{}
	err := svc.db.
		NewSelect().
		Model(user).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("User")
		}
		return nil, errors.WithStack(err)
	}
	return user, nil
}

func (svc *Service) List(ctx context.Context) ([]*models.User, error) {
	users := []*models.User{}
	err := svc.db.
		NewSelect().
		Model(&users).
		Order("u.username ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return users, nil
}

func (svc *Service) Update(ctx context.Context, user *models.User, opts UpdateUserOptions) error {
	columns := slices.Clone(opts.Columns)

	if opts.PIN != nil {
		hash, err := auth.HashPIN(*opts.PIN)
		if err != nil {
			return err
		}
		user.PinHash = hash
		columns = append(columns, "pin_hash")
	}

	if len(columns) == 0 {
		return nil
	}

	if slices.Contains(columns, "role") && user.Role != models.RoleAdmin {
		if err := svc.ensureAnotherAdmin(ctx, svc.db, user.ID); err != nil {
			return err
		}
	}

	user.UpdatedAt = time.Now()
	columns = append(columns, "updated_at")

	_, err := svc.db.
		NewUpdate().
		Model(user).
		Column(columns...).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

// Delete removes a user. The last administrator can't be removed or the
// configuration screens would become unreachable.
func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := svc.ensureAnotherAdmin(ctx, tx, id); err != nil {
			return err
		}

		res, err := tx.
			NewDelete().
			Model((*models.User)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return errcodes.NotFound("User")
		}
		return nil
	})
}

// ensureAnotherAdmin fails when the user is the only administrator left.
func (svc *Service) ensureAnotherAdmin(ctx context.Context, db bun.IDB, userID int) error {
	count, err := db.
		NewSelect().
		Model((*models.User)(nil)).
		Where("role = ?", models.RoleAdmin).
		Where("id != ?", userID).
		Count(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	if count == 0 {
		isAdmin, err := db.
			NewSelect().
			Model((*models.User)(nil)).
			Where("role = ?", models.RoleAdmin).
			Where("id = ?", userID).
			Exists(ctx)
		if err != nil {
			return errors.WithStack(err)
		}
		if isAdmin {
			return errcodes.Conflict("Au moins un administrateur requis")
		}
	}
	return nil
}

// DefaultInitials takes the first letter of the first two words of a name,
// or the first two letters of a single word.
func DefaultInitials(name string) string {
	words := strings.Fields(name)
	switch len(words) {
	case 0:
		return ""
	case 1:
		r := []rune(words[0])
		return strings.ToUpper(string(r[:min(2, len(r))]))
	default:
		return strings.ToUpper(string([]rune(words[0])[0]) + string([]rune(words[1])[0]))
	}
}
