package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ============================================================
// Scene Library (SQLite)
// ============================================================

var ErrNotFound = errors.New("scene not found")

// SceneRecord сохраненная сцена. Data — gzip-сжатый JSON документ.
type SceneRecord struct {
	ID        string `json:"id"`
	Owner     string `json:"owner"`
	Name      string `json:"name"`
	Data      []byte `json:"-"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init запускает миграции.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// Save сохраняет сцену под именем; повторное сохранение с тем же
// именем у того же владельца перезаписывает документ.
func (r *Repository) Save(ctx context.Context, owner, name string, data []byte) (string, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id FROM scenes WHERE owner = ? AND name = ?
    `, owner, name)

	var id string
	err := row.Scan(&id)
	switch {
	case err == nil:
		_, err = r.db.ExecContext(ctx, `
            UPDATE scenes SET data = ?, updated_at = datetime('now') WHERE id = ?
        `, data, id)
		if err != nil {
			return "", fmt.Errorf("update scene: %w", err)
		}
		return id, nil
	case errors.Is(err, sql.ErrNoRows):
		id = uuid.NewString()
		_, err = r.db.ExecContext(ctx, `
            INSERT INTO scenes (id, owner, name, data) VALUES (?, ?, ?, ?)
        `, id, owner, name, data)
		if err != nil {
			return "", fmt.Errorf("insert scene: %w", err)
		}
		return id, nil
	default:
		return "", err
	}
}

func (r *Repository) Load(ctx context.Context, id string) (*SceneRecord, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, owner, name, data, created_at, updated_at
        FROM scenes
        WHERE id = ?
    `, id)

	var rec SceneRecord
	if err := row.Scan(&rec.ID, &rec.Owner, &rec.Name, &rec.Data, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// List сцены владельца без блобов.
func (r *Repository) List(ctx context.Context, owner string) ([]SceneRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, owner, name, created_at, updated_at
        FROM scenes
        WHERE owner = ?
        ORDER BY updated_at DESC
    `, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SceneRecord
	for rows.Next() {
		var rec SceneRecord
		if err := rows.Scan(&rec.ID, &rec.Owner, &rec.Name, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM scenes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
