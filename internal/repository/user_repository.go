package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/freelance-directory/internal/domain"
)

const (
	uniqueViolation = "23505"
	stringTooLong   = "22001"
)

// UserRepository defines persistence access for user profiles.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Activate flips a pending user to active. It returns domain.ErrAlreadyActive
	// when the user exists but was already active.
	Activate(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	IncrementLike(ctx context.Context, id string) (int, error)

	SearchByText(ctx context.Context, query string) ([]domain.User, error)
	FilterBySkill(ctx context.Context, skill string) ([]domain.User, error)
	ListRecent(ctx context.Context, limit, offset int) ([]domain.User, error)
	ListMostLiked(ctx context.Context, limit int) ([]domain.User, error)
	Count(ctx context.Context) (int, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, username, first_name, last_name, email, password_hash, is_active, is_staff, is_superuser,
       skill, area, request_fee, portfolio, self_introduction, twitter, instagram, top_image,
       like_count, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, first_name, last_name, email, password_hash, is_active, is_staff, is_superuser,
                           skill, area, request_fee, portfolio, self_introduction, twitter, instagram, top_image)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
        RETURNING id, like_count, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.IsActive,
		user.IsStaff,
		user.IsSuperuser,
		user.Skill,
		user.Area,
		user.RequestFee,
		user.Portfolio,
		user.SelfIntroduction,
		user.Twitter,
		user.Instagram,
		user.TopImage,
	).Scan(&user.ID, &user.Like, &user.CreatedAt, &user.UpdatedAt)
	return mapWriteError(err)
}

// Update saves profile attributes. Activation, password and likes have dedicated atomic methods.
func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET username=$1, first_name=$2, last_name=$3, email=$4, skill=$5, area=$6, request_fee=$7,
            portfolio=$8, self_introduction=$9, twitter=$10, instagram=$11, top_image=$12, updated_at=NOW()
        WHERE id=$13
        RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Skill,
		user.Area,
		user.RequestFee,
		user.Portfolio,
		user.SelfIntroduction,
		user.Twitter,
		user.Instagram,
		user.TopImage,
		user.ID,
	).Scan(&user.UpdatedAt)
	return mapWriteError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if !validID(id) {
		return nil, domain.ErrUserNotFound
	}
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username)
}

// GetByEmail returns the oldest account using email; emails are not unique.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email)=LOWER($1)
        ORDER BY created_at, id LIMIT 1`, email)
}

func (r *userRepository) Activate(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrUserNotFound
	}
	const query = `
        UPDATE users SET is_active=TRUE, updated_at=NOW()
        WHERE id=$1 AND is_active=FALSE`

	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id=$1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrUserNotFound
	}
	return domain.ErrAlreadyActive
}

func (r *userRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	if !validID(id) {
		return domain.ErrUserNotFound
	}
	const query = `UPDATE users SET password_hash=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) IncrementLike(ctx context.Context, id string) (int, error) {
	if !validID(id) {
		return 0, domain.ErrUserNotFound
	}
	const query = `
        UPDATE users SET like_count = like_count + 1
        WHERE id=$1
        RETURNING like_count`

	var likes int
	if err := r.pool.QueryRow(ctx, query, id).Scan(&likes); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, err
	}
	return likes, nil
}

func (r *userRepository) SearchByText(ctx context.Context, query string) ([]domain.User, error) {
	return r.list(ctx, `SELECT DISTINCT `+userColumns+` FROM users
        WHERE username ILIKE $1 ESCAPE '\' OR self_introduction ILIKE $1 ESCAPE '\'
        ORDER BY created_at, id`, containsPattern(query))
}

func (r *userRepository) FilterBySkill(ctx context.Context, skill string) ([]domain.User, error) {
	return r.list(ctx, `SELECT DISTINCT `+userColumns+` FROM users
        WHERE skill ILIKE $1 ESCAPE '\'
        ORDER BY created_at, id`, containsPattern(skill))
}

func (r *userRepository) ListRecent(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users
        ORDER BY created_at DESC, id DESC
        LIMIT $1 OFFSET $2`, limit, offset)
}

func (r *userRepository) ListMostLiked(ctx context.Context, limit int) ([]domain.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users
        ORDER BY like_count DESC, created_at DESC, id
        LIMIT $1`, limit)
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) list(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.IsActive,
		&user.IsStaff,
		&user.IsSuperuser,
		&user.Skill,
		&user.Area,
		&user.RequestFee,
		&user.Portfolio,
		&user.SelfIntroduction,
		&user.Twitter,
		&user.Instagram,
		&user.TopImage,
		&user.Like,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return domain.ErrUsernameTaken
		case stringTooLong:
			return domain.ErrValueTooLong
		}
	}
	return err
}

// validID filters out ids Postgres would reject as malformed uuids.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term as a literal substring.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
