package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vidtube/vidtube_backend/internal/apperrors"
	"github.com/vidtube/vidtube_backend/internal/core/domain"
	portsrepo "github.com/vidtube/vidtube_backend/internal/core/ports/repositories"
)

const uniqueViolationCode = "23505"

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure UserRepository implements portsrepo.UserRepository
var _ portsrepo.UserRepository = (*UserRepository)(nil)

const userColumns = `user_id, username, email, full_name, password_hash, avatar_url,
       COALESCE(cover_image_url, ''), COALESCE(refresh_token_hash, ''), created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.AvatarURL,
		&user.CoverImageURL,
		&user.RefreshTokenHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user row: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
        INSERT INTO users (user_id, username, email, full_name, password_hash, avatar_url, cover_image_url, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9);
    `
	_, err := r.db.Exec(ctx, query,
		user.UserID,
		strings.ToLower(user.Username),
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.AvatarURL,
		user.CoverImageURL,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	user, err := scanUser(r.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

func (r *UserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = lower($1);`
	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user by username %s: %w", username, err)
	}
	return user, nil
}

func (r *UserRepository) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE (username = lower($1) AND $1 <> '') OR (lower(email) = lower($2) AND $2 <> '')
        LIMIT 1;
    `
	user, err := scanUser(r.db.QueryRow(ctx, query, username, email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find user by username or email: %w", err)
	}
	return user, nil
}

// updateColumn runs a targeted single-column (plus updated_at) update,
// returning apperrors.ErrNotFound when no row matched.
func (r *UserRepository) updateColumn(ctx context.Context, query string, args ...any) error {
	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to execute user update: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateAccountDetails(ctx context.Context, userID, fullName, email string) error {
	query := `UPDATE users SET full_name = $1, email = $2, updated_at = now() WHERE user_id = $3;`
	err := r.updateColumn(ctx, query, fullName, email, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = now() WHERE user_id = $2;`
	return r.updateColumn(ctx, query, passwordHash, userID)
}

func (r *UserRepository) UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error {
	query := `UPDATE users SET avatar_url = $1, updated_at = now() WHERE user_id = $2;`
	return r.updateColumn(ctx, query, avatarURL, userID)
}

func (r *UserRepository) UpdateCoverImageURL(ctx context.Context, userID, coverImageURL string) error {
	query := `UPDATE users SET cover_image_url = $1, updated_at = now() WHERE user_id = $2;`
	return r.updateColumn(ctx, query, coverImageURL, userID)
}

func (r *UserRepository) UpdateRefreshTokenHash(ctx context.Context, userID, refreshTokenHash string) error {
	query := `UPDATE users SET refresh_token_hash = $1, updated_at = now() WHERE user_id = $2;`
	return r.updateColumn(ctx, query, refreshTokenHash, userID)
}

func (r *UserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `UPDATE users SET refresh_token_hash = NULL, updated_at = now() WHERE user_id = $1;`
	return r.updateColumn(ctx, query, userID)
}
