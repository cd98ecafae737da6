package main

import (
	"context"
	"fmt"
	"log"

	"github.com/asaidimu/go-multiassay/core/assay"
	"github.com/asaidimu/go-multiassay/core/features"
	"github.com/asaidimu/go-multiassay/core/filter"
	"github.com/asaidimu/go-multiassay/core/table"
)

func main() {
	ctx := context.Background()

	// Two assays with overlapping but distinct metadata schemas.
	proteins, err := table.New([]string{"location", "length"}, map[string]table.Column{
		"location": {"Mitochondrion", "Cytoplasm", nil, "Nucleus"},
		"length":   {120, 250, 180, 90},
	})
	if err != nil {
		log.Fatalf("Failed to build protein metadata: %v", err)
	}
	peptides, err := table.New([]string{"location", "charge"}, map[string]table.Column{
		"location": {"Mitochondrion", "Mito-like", "Other"},
		"charge":   {2, 3, 2},
	})
	if err != nil {
		log.Fatalf("Failed to build peptide metadata: %v", err)
	}

	container := assay.NewContainer()
	mustAdd(container, "proteins", newAssay(proteins))
	mustAdd(container, "peptides", newAssay(peptides))

	fmt.Println("Input container:")
	printContainer(container)

	// Structured filter: location == "Mitochondrion". The NA row in the
	// proteins assay is kept, because its comparison outcome is undefined
	// and the default policy keeps undefined rows.
	f, err := filter.NewVariableFilter("location", "Mitochondrion", "", false)
	if err != nil {
		log.Fatalf("Failed to construct filter: %v", err)
	}
	filtered, err := features.FilterFeatures(ctx, container, f, false)
	if err != nil {
		log.Fatalf("Filtering failed: %v", err)
	}
	fmt.Println("\nAfter VariableFilter(location == Mitochondrion), naRemove=false:")
	printContainer(filtered)

	// Same filter with naRemove=true drops the undefined row.
	filtered, err = features.FilterFeatures(ctx, container, f, true)
	if err != nil {
		log.Fatalf("Filtering failed: %v", err)
	}
	fmt.Println("\nAfter VariableFilter(location == Mitochondrion), naRemove=true:")
	printContainer(filtered)

	// Free-form expression over multiple columns. The proteins assay has
	// no charge column, so it degrades to an empty selection while the
	// peptides assay is filtered normally.
	expr := filter.And(
		filter.Col("location").Neq("Other"),
		filter.Col("charge").Lte(2),
	)
	filtered, err = features.FilterFeatures(ctx, container, expr, false)
	if err != nil {
		log.Fatalf("Filtering failed: %v", err)
	}
	fmt.Println("\nAfter expression location != \"Other\" && charge <= 2:")
	printContainer(filtered)
}

func newAssay(rowData *table.Table) *assay.MemoryAssay {
	data := make([][]float64, rowData.NumRows())
	for i := range data {
		data[i] = []float64{float64(i + 1), float64(i+1) * 10}
	}
	a, err := assay.NewAssay(data, []string{"sample1", "sample2"}, rowData)
	if err != nil {
		log.Fatalf("Failed to build assay: %v", err)
	}
	return a
}

func mustAdd(c *assay.MemoryContainer, name string, a *assay.MemoryAssay) {
	if err := c.Add(name, a); err != nil {
		log.Fatalf("Failed to add assay %q: %v", name, err)
	}
}

func printContainer(c assay.Container) {
	for _, name := range c.Names() {
		a, _ := c.Assay(name)
		col, ok := a.RowData().Column("location")
		if !ok {
			fmt.Printf("  %-9s %d rows\n", name, a.NumRows())
			continue
		}
		fmt.Printf("  %-9s %d rows, locations=%v\n", name, a.NumRows(), col)
	}
}
