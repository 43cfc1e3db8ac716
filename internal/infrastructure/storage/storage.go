// Package storage abre el backend de persistencia elegido por configuración
// (SQLite por defecto, PostgreSQL opcional) y lo expone con los puertos del dominio.
package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-libros/internal/application/auth"
	"github.com/jhoicas/inventario-libros/internal/domain/repository"
	"github.com/jhoicas/inventario-libros/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-libros/internal/infrastructure/session"
	"github.com/jhoicas/inventario-libros/internal/infrastructure/sqlite"
	"github.com/jhoicas/inventario-libros/pkg/config"
)

// Backend repositorios y transacciones sobre un mismo store.
type Backend struct {
	Driver string
	Items  repository.ItemRepository
	Users  repository.UserRepository
	Tx     auth.TxRunner

	ping  func(ctx context.Context) error
	close func()
}

// Ping verifica que el store responde.
func (b *Backend) Ping(ctx context.Context) error { return b.ping(ctx) }

// Close libera conexiones.
func (b *Backend) Close() { b.close() }

// Open abre el store de cfg.Driver. Con PostgreSQL crea el esquema si falta; SQLite
// aplica sus migraciones al abrir.
func Open(ctx context.Context, store config.StoreConfig, db config.DBConfig) (*Backend, error) {
	switch store.Driver {
	case config.DriverSQLite:
		s, err := sqlite.NewStore(store.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Driver: store.Driver,
			Items:  s.Items(),
			Users:  s.Users(),
			Tx:     s,
			ping:   s.Ping,
			close:  func() { _ = s.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, db)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Backend{
			Driver: store.Driver,
			Items:  postgres.NewItemRepository(pool),
			Users:  postgres.NewUserRepository(pool),
			Tx:     postgres.NewTxRunner(pool),
			ping:   pool.Ping,
			close:  pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("storage: driver %q no soportado", store.Driver)
}

// Revoker registro de sesiones cerradas: Redis si hay REDIS_ADDR, si no en memoria.
// El cleanup cierra el cliente Redis.
func Revoker(ctx context.Context, cfg config.RedisConfig) (auth.Revoker, func(), error) {
	if cfg.Addr == "" {
		return session.NewMemoryRevoker(), func() {}, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return session.NewRedisRevoker(client), func() { _ = client.Close() }, nil
}
