// Package main provides the CLI entry point for image2excel.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lggomez/image2excel/pkg/image2excel"
	"github.com/lggomez/image2excel/pkg/image2excel/grid"
)

var (
	outputPath   string
	sheetName    string
	workers      int
	reclaimEvery uint64
	maxRows      int
	maxCols      int
	openViewer   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "image2excel [image]",
		Short: "Render an image as colored spreadsheet cells",
		Long: `image2excel renders a raster image (png, jpeg, gif, bmp, tiff, webp)
into an xlsx workbook, approximating each pixel with one cell's fill color.
Images larger than the worksheet grid are scaled down to fit.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Workbook output path (default: input path with .xlsx extension)")
	rootCmd.Flags().StringVar(&sheetName, "sheet", "", "Worksheet name (default: Sheet1)")
	rootCmd.Flags().IntVar(&workers, "workers", 0, "Parallel row producers (default: one per CPU)")
	rootCmd.Flags().Uint64Var(&reclaimEvery, "reclaim-every", 0, "Cell writes between resource reclamation passes (default: 200000)")
	rootCmd.Flags().IntVar(&maxRows, "max-rows", 0, "Grid row limit (default: xlsx maximum)")
	rootCmd.Flags().IntVar(&maxCols, "max-cols", 0, "Grid column limit (default: xlsx maximum)")
	rootCmd.Flags().BoolVar(&openViewer, "open", false, "Open the saved workbook with the default viewer")

	rootCmd.SetOut(os.Stdout)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	opts := image2excel.DefaultOptions()
	opts.OutputPath = outputPath
	opts.Sheet = sheetName
	opts.Workers = workers
	opts.ReclaimThreshold = reclaimEvery
	opts.OpenViewer = &openViewer
	if maxRows > 0 || maxCols > 0 {
		bounds := grid.DefaultBounds
		if maxRows > 0 {
			bounds.MaxRows = maxRows
		}
		if maxCols > 0 {
			bounds.MaxCols = maxCols
		}
		opts.Bounds = bounds
	}

	result, err := image2excel.Convert(cmd.Context(), inputPath, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Converted %s: %d rows x %d columns, %d cells written", inputPath, result.Rows, result.Cols, result.CellsWritten)
	if result.CellsFailed > 0 {
		fmt.Printf(" (%d rejected)", result.CellsFailed)
	}
	fmt.Printf(" in %s\n", result.Elapsed.Round(10*time.Millisecond))
	fmt.Printf("Saved workbook: %s\n", result.OutputPath)
	return nil
}
