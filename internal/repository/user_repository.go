package repository

import (
	"auth-session-server/config"
	"auth-session-server/internal/model"
	"auth-session-server/internal/util"
	"context"
	"database/sql"
	"errors"
	"time"
)

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateCredential : сохраняет учётную запись нового пользователя
func (r *UserRepository) CreateCredential(ctx context.Context, credential *model.Credential) (*model.Credential, error) {
	query := `
	INSERT INTO credentials (uuid, email_address, password_hash, verified_email, last_login_at)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING uuid, email_address, verified_email, created_at, last_login_at
	`

	created := &model.Credential{}
	err := r.DB.QueryRowxContext(ctx, query,
		credential.UUID,
		credential.EmailAddress,
		credential.PasswordHash,
		credential.VerifiedEmail,
		credential.LastLoginAt,
	).Scan(
		&created.UUID,
		&created.EmailAddress,
		&created.VerifiedEmail,
		&created.CreatedAt,
		&created.LastLoginAt,
	)

	if err != nil {
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return created, nil
}

// FindByEmail : ищет учётную запись по email
func (r *UserRepository) FindByEmail(ctx context.Context, emailAddress string) (*model.Credential, error) {
	query := `SELECT uuid, email_address, password_hash, verified_email, created_at, last_login_at
				FROM credentials WHERE email_address = $1`

	var credential model.Credential
	err := r.DB.GetContext(ctx, &credential, query, emailAddress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.LogError("[UserRepo] учётная запись не найдена", err)
		}
		return nil, util.LogError("[UserRepo] ошибка при выполнении запроса", err)
	}

	return &credential, nil
}

// ExistsByEmail : проверяет, занят ли email
func (r *UserRepository) ExistsByEmail(ctx context.Context, emailAddress string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM credentials WHERE email_address = $1)`

	var exists bool
	if err := r.DB.GetContext(ctx, &exists, query, emailAddress); err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки email", err)
	}

	return exists, nil
}

// UpdateLastLogin : фиксирует время последнего входа
func (r *UserRepository) UpdateLastLogin(ctx context.Context, uuid string, loginAt time.Time) error {
	query := `UPDATE credentials SET last_login_at = $2 WHERE uuid = $1`

	result, err := r.DB.ExecContext(ctx, query, uuid, loginAt)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить время входа", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[UserRepo] не удалось проверить, обновлена ли запись", err)
	}
	if rowsAffected == 0 {
		return util.LogError("[UserRepo] учётная запись для обновления не найдена", sql.ErrNoRows)
	}

	return nil
}
