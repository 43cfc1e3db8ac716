package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	appreport "github.com/jhoicas/inventario-libros/internal/application/report"
	domainreport "github.com/jhoicas/inventario-libros/internal/domain/report"
	infrapdf "github.com/jhoicas/inventario-libros/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-libros/pkg/textshape"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Genera el reporte PDF del inventario",
	Long:  `Genera el mismo PDF que GET /api/report y lo escribe en el archivo indicado.`,
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "archivo de salida (por defecto el nombre del reporte)")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	renderer, err := infrapdf.NewMarotoReportRenderer(e.cfg.Report.FontPath, infrapdf.DefaultStyle())
	if err != nil {
		return err
	}
	composer := domainreport.NewComposer(domainreport.DefaultLabels(), textshape.Shape)
	uc := appreport.NewUseCase(e.backend.Items, composer, renderer, e.log.Component("report"))

	res, err := uc.Generate(ctx)
	if err != nil {
		return err
	}
	out := reportOutput
	if out == "" {
		out = res.Filename
	}
	if err := os.WriteFile(out, res.PDF, 0o644); err != nil {
		return fmt.Errorf("escribir %s: %w", out, err)
	}
	cmd.Printf("%s: %d ítems, total %d, %d bytes\n", out, res.ItemCount, res.GrandTotal, len(res.PDF))
	return nil
}
