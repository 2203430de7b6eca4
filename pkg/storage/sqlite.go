package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opskit/adminctl/pkg/domain/user"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteUserRepository implements user record storage using SQLite.
// Backs the lookup, list, import, and export commands.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewSQLiteUserRepository creates a new SQLite-based user repository.
// Database location: ~/.adminctl/adminctl.db
func NewSQLiteUserRepository() (*SQLiteUserRepository, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}

	return NewSQLiteUserRepositoryWithPath(filepath.Join(homeDir, ".adminctl", "adminctl.db"))
}

// NewSQLiteUserRepositoryWithPath creates a repository with a custom
// database path. Useful for testing.
func NewSQLiteUserRepositoryWithPath(dbPath string) (*SQLiteUserRepository, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := InitializeDatabase(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &SQLiteUserRepository{db: db}, nil
}

// Close closes the database connection.
func (r *SQLiteUserRepository) Close() error {
	return r.db.Close()
}

// Save upserts a user record keyed by object ID.
func (r *SQLiteUserRepository) Save(u user.User) error {
	if u.ID == "" {
		return fmt.Errorf("cannot save user without an ID")
	}

	query := `
		INSERT INTO users (id, email, name, role, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			name = excluded.name,
			role = excluded.role,
			created_at = excluded.created_at
	`

	if _, err := r.db.Exec(query, u.ID, u.Email, u.Name, u.Role, u.CreatedAt); err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// Get retrieves a user by object ID. Returns sql.ErrNoRows wrapped when
// no record exists.
func (r *SQLiteUserRepository) Get(id string) (user.User, error) {
	var u user.User

	query := `SELECT id, email, name, role, created_at FROM users WHERE id = ?`
	err := r.db.QueryRow(query, id).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to load user %s: %w", id, err)
	}

	return u, nil
}

// List returns all users ordered by object ID.
func (r *SQLiteUserRepository) List() ([]user.User, error) {
	rows, err := r.db.Query(`SELECT id, email, name, role, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return users, nil
}

// Count returns the number of stored users.
func (r *SQLiteUserRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// Delete removes a user by object ID. Deleting a missing user is not an
// error.
func (r *SQLiteUserRepository) Delete(id string) error {
	if _, err := r.db.Exec(`DELETE FROM users WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}
