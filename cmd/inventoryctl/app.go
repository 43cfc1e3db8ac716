package main

import (
	"context"
	"os"

	"github.com/jhoicas/inventario-libros/internal/infrastructure/storage"
	"github.com/jhoicas/inventario-libros/pkg/config"
	"github.com/jhoicas/inventario-libros/pkg/logger"
)

// env configuración, logger y store abiertos para un comando.
type env struct {
	cfg     *config.Config
	log     *logger.Logger
	backend *storage.Backend
}

// openEnv carga la configuración y abre el store configurado (STORE_DRIVER).
func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})
	backend, err := storage.Open(ctx, cfg.Store, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: log, backend: backend}, nil
}

func (e *env) Close() { e.backend.Close() }
