package main

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jhoicas/inventario-libros/internal/domain/entity"
	domainreport "github.com/jhoicas/inventario-libros/internal/domain/report"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Lista el inventario agrupado por categoría",
	Args:  cobra.NoArgs,
	RunE:  runItems,
}

func init() {
	rootCmd.AddCommand(itemsCmd)
}

func runItems(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	items, err := e.backend.Items.ListAll(ctx)
	if err != nil {
		return err
	}
	renderInventory(cmd.OutOrStdout(), items)
	return nil
}

// renderInventory tabla con un bloque por categoría (en orden de aparición), su subtotal
// y el total general al pie.
func renderInventory(w io.Writer, items []*entity.Item) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Categoría", "Título", "Tamaño", "Riwaya", "Cantidad"})

	grand := 0
	for i, group := range domainreport.GroupByCategory(items) {
		if i > 0 {
			t.AppendSeparator()
		}
		for _, it := range group.Items {
			riwaya := "-"
			if it.Riwaya != nil && strings.TrimSpace(*it.Riwaya) != "" {
				riwaya = *it.Riwaya
			}
			t.AppendRow(table.Row{group.Category, it.Title, it.Size, riwaya, it.Quantity})
		}
		t.AppendRow(table.Row{group.Category, "", "", "subtotal", group.Total})
		grand += group.Total
	}
	t.AppendFooter(table.Row{"", "", "", "Total", grand})
	t.Render()
}
