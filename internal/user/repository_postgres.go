package user

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gjone124/restaurant-finder-backend/internal/ids"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	getUserByIDQuery = `
		SELECT id, name, avatar, email, password
		FROM users
		WHERE id = $1
	`
	getUserByEmailQuery = `
		SELECT id, name, avatar, email, password
		FROM users
		WHERE email = $1
	`
	insertUserQuery = `
		INSERT INTO users (id, name, avatar, email, password)
		VALUES ($1, $2, $3, $4, $5)
	`
	updateUserQuery = `
		UPDATE users
		SET name = $1,
			avatar = $2
		WHERE id = $3
	`
)

// uniqueViolation is the Postgres error code raised when the users.email
// unique constraint rejects an insert.
const uniqueViolation = "23505"

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id string) (User, error) {
	return scanUser(r.db.QueryRow(getUserByIDQuery, id))
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	return scanUser(r.db.QueryRow(getUserByEmailQuery, email))
}

func (r *PostgresRepository) Create(user User) (User, error) {
	if user.ID == "" {
		user.ID = ids.New()
	}

	avatarVal := sql.NullString{}
	if user.Avatar != nil {
		avatarVal = sql.NullString{String: *user.Avatar, Valid: true}
	}

	_, err := r.db.Exec(insertUserQuery, user.ID, user.Name, avatarVal, user.Email, user.Password)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrEmailExists
		}
		return User{}, err
	}

	return user, nil
}

func (r *PostgresRepository) Update(id string, userUpdate User) (User, error) {
	// avatar may be nil; send raw nil so the column becomes NULL rather than
	// an empty string.
	var avatarArg interface{}
	if userUpdate.Avatar != nil {
		avatarArg = *userUpdate.Avatar
	}

	result, err := r.db.Exec(updateUserQuery, userUpdate.Name, avatarArg, id)
	if err != nil {
		return User{}, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if affected == 0 {
		return User{}, ErrNotFound
	}

	return r.GetByID(id)
}

func scanUser(scanner rowScanner) (User, error) {
	user := User{}
	var avatar sql.NullString

	if err := scanner.Scan(&user.ID, &user.Name, &avatar, &user.Email, &user.Password); err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	if avatar.Valid {
		user.Avatar = &avatar.String
	}

	return user, nil
}
