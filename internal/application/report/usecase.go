// Package report orquesta la generación del reporte PDF: snapshot del store,
// composición de bloques y renderizado.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	domainreport "github.com/jhoicas/inventario-libros/internal/domain/report"
	"github.com/jhoicas/inventario-libros/internal/domain/repository"
)

// Renderer convierte la secuencia de bloques en los bytes del documento.
type Renderer interface {
	Render(ctx context.Context, blocks []domainreport.Block) ([]byte, error)
}

// Result documento generado y datos para la respuesta HTTP.
type Result struct {
	PDF         []byte
	Filename    string
	ItemCount   int
	GrandTotal  int
	GeneratedAt time.Time
}

// UseCase genera reportes. No guarda estado entre llamadas.
type UseCase struct {
	items    repository.ItemRepository
	composer *domainreport.Composer
	renderer Renderer
	log      zerolog.Logger
	now      func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(items repository.ItemRepository, composer *domainreport.Composer, renderer Renderer, log zerolog.Logger) *UseCase {
	return &UseCase{items: items, composer: composer, renderer: renderer, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// Compose lee el snapshot actual y lo compone sin renderizar.
func (uc *UseCase) Compose(ctx context.Context) (domainreport.Report, error) {
	items, err := uc.items.ListAll(ctx)
	if err != nil {
		return domainreport.Report{}, fmt.Errorf("reporte: leer inventario: %w", err)
	}
	return uc.composer.Compose(items, uc.now()), nil
}

// Generate produce el PDF del inventario completo. Un inventario vacío genera un
// reporte válido con total cero.
func (uc *UseCase) Generate(ctx context.Context) (*Result, error) {
	start := time.Now()
	rep, err := uc.Compose(ctx)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.renderer.Render(ctx, rep.Blocks)
	if err != nil {
		uc.log.Error().Err(err).Int("items", len(rep.Snapshot.Items)).Msg("reporte: renderizar")
		return nil, fmt.Errorf("reporte: renderizar: %w", err)
	}

	uc.log.Info().
		Int("items", len(rep.Snapshot.Items)).
		Int("categorias", len(rep.Categories)).
		Int("total", rep.Snapshot.GrandTotal).
		Int("bytes", len(pdf)).
		Dur("duracion", time.Since(start)).
		Msg("reporte generado")

	return &Result{
		PDF:         pdf,
		Filename:    uc.composer.Labels().Filename,
		ItemCount:   len(rep.Snapshot.Items),
		GrandTotal:  rep.Snapshot.GrandTotal,
		GeneratedAt: rep.Snapshot.GeneratedAt,
	}, nil
}
