package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/AhmadXRAUF940/attendance--tracker/core/user"
)

type userRow struct {
	ID            int            `db:"id"`
	InstitutionID string         `db:"institution_id"`
	Role          string         `db:"role"`
	FirstName     string         `db:"first_name"`
	LastName      string         `db:"last_name"`
	Rank          sql.NullString `db:"rank"`
	PasswordHash  []byte         `db:"password_hash"`
	CreatedAt     time.Time      `db:"created_at"`
}

func (row userRow) toUser() user.User {
	return user.User{
		ID:            row.ID,
		InstitutionID: row.InstitutionID,
		Role:          row.Role,
		FirstName:     row.FirstName,
		LastName:      row.LastName,
		Rank:          row.Rank.String,
		PasswordHash:  row.PasswordHash,
		CreatedAt:     row.CreatedAt,
	}
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to user.ErrNotFound
func (repo userRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo userRepository) CheckInstitutionIDUniqueness(ctx context.Context, institutionID string) error {
	var exists bool
	err := repo.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM users WHERE institution_id = $1)`, institutionID)
	if err != nil {
		return errors.Wrap(err, "checking institution ID uniqueness")
	}
	if exists {
		return user.ErrInstitutionIDExists
	}
	return nil
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	err := repo.db.QueryRowContext(ctx,
		`INSERT INTO users (institution_id, password_hash, role, first_name, last_name, rank, created_at)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)
		 RETURNING id`,
		usr.InstitutionID, usr.PasswordHash, usr.Role, usr.FirstName, usr.LastName, usr.Rank, usr.CreatedAt.UTC(),
	).Scan(&usr.ID)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) GetUserByID(ctx context.Context, id int) (user.User, error) {
	var row userRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT id, institution_id, role, first_name, last_name, rank, password_hash, created_at
		 FROM users WHERE id = $1`, id)
	if err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user by ID")
	}
	return row.toUser(), nil
}

func (repo userRepository) GetUserByInstitutionID(ctx context.Context, institutionID string) (user.User, error) {
	var row userRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT id, institution_id, role, first_name, last_name, rank, password_hash, created_at
		 FROM users WHERE institution_id = $1`, institutionID)
	if err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "finding user by institution ID")
	}
	return row.toUser(), nil
}
