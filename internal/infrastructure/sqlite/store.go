// Package sqlite implementa los repositorios sobre un archivo SQLite (driver puro Go,
// sin cgo). Pensado para instalaciones de una sola instancia.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // driver SQLite

	"github.com/jhoicas/inventario-libros/internal/application/auth"
	"github.com/jhoicas/inventario-libros/internal/domain/repository"
	"github.com/jhoicas/inventario-libros/internal/infrastructure/sqlite/migrations"
)

var _ auth.TxRunner = (*Store)(nil)

// querier operaciones comunes a *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store conexión SQLite con el esquema ya migrado.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore abre (o crea) la base en path y aplica las migraciones pendientes.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("crear directorio de datos: %w", err)
		}
	}

	// WAL para lecturas concurrentes; _txlock=immediate toma el lock de escritura al
	// iniciar la transacción y evita SQLITE_BUSY al pasar de lectura a escritura.
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_txlock=immediate"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abrir base: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("migraciones: %w", err)
	}
	return s, nil
}

// Close cierra la conexión.
func (s *Store) Close() error { return s.db.Close() }

// Path ruta del archivo.
func (s *Store) Path() string { return s.path }

// Ping verifica la conexión (health check).
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Items repositorio de items sobre la conexión principal.
func (s *Store) Items() *ItemRepo { return NewItemRepository(s.db) }

// Users repositorio de usuarios sobre la conexión principal.
func (s *Store) Users() *UserRepo { return NewUserRepository(s.db) }

// RunUsers ejecuta fn dentro de una transacción con el repositorio de usuarios atado a ella.
func (s *Store) RunUsers(ctx context.Context, fn func(users repository.UserRepository) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewUserRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// migrate aplica en orden los archivos NNN_nombre.up.sql con versión mayor a la registrada.
func (s *Store) migrate(fsys fs.FS) error {
	if _, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("crear schema_migrations: %w", err)
	}

	var current int
	if err := s.db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("leer versión actual: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("leer migraciones: %w", err)
	}
	var files []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil || version <= current {
			continue
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("leer %s: %w", name, err)
		}
		if err := s.apply(version, string(content)); err != nil {
			return fmt.Errorf("aplicar %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) apply(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
		return err
	}
	return tx.Commit()
}

// isUniqueViolation detecta SQLITE_CONSTRAINT_UNIQUE por el texto del error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func noRows(err error) bool { return errors.Is(err, sql.ErrNoRows) }
