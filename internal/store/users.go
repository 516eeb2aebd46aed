package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/unilost/unilost/internal/model"
)

// CreateUser creates a new user. The email is lowercased before insertion;
// a duplicate email surfaces as ErrDuplicateEmail.
func CreateUser(ctx context.Context, db *sql.DB, name, email, phone, passwordHash, role string) (*model.User, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO users (name, email, phone, password_hash, role) VALUES (?, ?, ?, ?, ?)`,
		name, strings.ToLower(email), phone, passwordHash, role,
	)
	if isUniqueViolation(err, "users.email") {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID, or nil if absent.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, password_hash, role, created_at
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetUserByEmail returns a user by email, matched case-insensitively.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, email, phone, password_hash, role, created_at
		 FROM users WHERE email = ?`, strings.ToLower(email),
	).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

// ListUsers returns all users, ordered by display name.
func ListUsers(ctx context.Context, db *sql.DB) ([]model.User, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, name, email, phone, password_hash, role, created_at
		 FROM users ORDER BY name, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser writes a user's name, email, phone and role. Password changes
// are not part of this path. Duplicate email surfaces as ErrDuplicateEmail.
func UpdateUser(ctx context.Context, db *sql.DB, id int64, name, email, phone, role string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, phone = ?, role = ? WHERE id = ?`,
		name, strings.ToLower(email), phone, role, id,
	)
	if isUniqueViolation(err, "users.email") {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return nil
}

// DeleteUser removes a user. Items they reported and claims they submitted
// keep their denormalized display fields; the references are nulled by the
// schema's ON DELETE SET NULL.
func DeleteUser(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

// CountUsersByRole returns the number of users holding the given role.
func CountUsersByRole(ctx context.Context, db *sql.DB, role string) (int64, error) {
	var count int64
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE role = ?`, role,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}
