package image2excel

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/lggomez/image2excel/pkg/image2excel/grid"
)

func writeTestPNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return path
}

func cellFill(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		t.Fatalf("GetCellStyle(%s) failed: %v", cell, err)
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		t.Fatalf("GetStyle(%d) failed: %v", styleID, err)
	}
	if len(style.Fill.Color) != 1 {
		t.Fatalf("Cell %s has no fill color", cell)
	}
	hex := style.Fill.Color[0]
	if len(hex) == 8 {
		hex = hex[2:]
	}
	return hex
}

func TestConvertSmallImage(t *testing.T) {
	// 3x2 image with six distinct solid colors.
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	colors := map[string]color.NRGBA{
		"A1": {255, 0, 0, 255},
		"B1": {0, 255, 0, 255},
		"C1": {0, 0, 255, 255},
		"A2": {255, 255, 0, 255},
		"B2": {0, 255, 255, 255},
		"C2": {64, 32, 16, 255},
	}
	src.Set(0, 0, colors["A1"])
	src.Set(1, 0, colors["B1"])
	src.Set(2, 0, colors["C1"])
	src.Set(0, 1, colors["A2"])
	src.Set(1, 1, colors["B2"])
	src.Set(2, 1, colors["C2"])

	input := writeTestPNG(t, src)

	var progress bytes.Buffer
	opts := DefaultOptions()
	opts.Progress = &progress
	opts.Workers = 2

	result, err := Convert(context.Background(), input, opts)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	if result.Rows != 2 || result.Cols != 3 {
		t.Errorf("Result grid = %dx%d, expected 2x3", result.Rows, result.Cols)
	}
	if result.CellsWritten != 6 {
		t.Errorf("CellsWritten = %d, expected 6", result.CellsWritten)
	}
	if result.CellsFailed != 0 {
		t.Errorf("CellsFailed = %d, expected 0", result.CellsFailed)
	}
	if result.OutputPath != filepath.Join(filepath.Dir(input), "test.xlsx") {
		t.Errorf("OutputPath = %q, expected test.xlsx next to the input", result.OutputPath)
	}

	f, err := excelize.OpenFile(result.OutputPath)
	if err != nil {
		t.Fatalf("Failed to open output workbook: %v", err)
	}
	defer f.Close()

	expected := map[string]string{
		"A1": "FF0000",
		"B1": "00FF00",
		"C1": "0000FF",
		"A2": "FFFF00",
		"B2": "00FFFF",
		"C2": "402010",
	}
	for cell, hex := range expected {
		if got := cellFill(t, f, "Sheet1", cell); got != hex {
			t.Errorf("Cell %s fill = %s, expected %s", cell, got, hex)
		}
	}
}

func TestConvertScalesOversizedImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 12, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 12; x++ {
			src.Set(x, y, color.NRGBA{128, 64, 32, 255})
		}
	}
	input := writeTestPNG(t, src)

	opts := DefaultOptions()
	opts.Bounds = grid.Bounds{MaxRows: 10, MaxCols: 10}
	opts.Progress = &bytes.Buffer{}

	result, err := Convert(context.Background(), input, opts)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	// Row clamp: 12x40 -> 3x10, within the column limit.
	if result.Rows != 10 || result.Cols != 3 {
		t.Errorf("Result grid = %dx%d, expected 10x3", result.Rows, result.Cols)
	}
	if result.CellsWritten != 30 {
		t.Errorf("CellsWritten = %d, expected 30", result.CellsWritten)
	}
}

func TestConvertMissingFile(t *testing.T) {
	_, err := Convert(context.Background(), filepath.Join(t.TempDir(), "nope.png"), DefaultOptions())
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Convert returned %v, expected ErrFileNotFound", err)
	}
}

func TestConvertUndecodableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := Convert(context.Background(), path, DefaultOptions())
	if err == nil {
		t.Fatal("Convert of garbage succeeded, expected error")
	}
	var convErr *ConversionError
	if !errors.As(err, &convErr) || convErr.Stage != "decode" {
		t.Errorf("Convert returned %v, expected a decode ConversionError", err)
	}
}

func TestConvertCancelled(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 50, 50))
	input := writeTestPNG(t, src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := DefaultOptions()
	opts.Progress = &bytes.Buffer{}
	_, err := Convert(ctx, input, opts)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert returned %v, expected context.Canceled", err)
	}
}

func TestConvertCustomSheetAndOutput(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	input := writeTestPNG(t, src)
	out := filepath.Join(t.TempDir(), "render.xlsx")

	opts := DefaultOptions()
	opts.Sheet = "Pixels"
	opts.OutputPath = out
	opts.Progress = &bytes.Buffer{}

	result, err := Convert(context.Background(), input, opts)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if result.OutputPath != out {
		t.Errorf("OutputPath = %q, expected %q", result.OutputPath, out)
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("Failed to open output workbook: %v", err)
	}
	defer f.Close()
	if list := f.GetSheetList(); len(list) != 1 || list[0] != "Pixels" {
		t.Errorf("Sheets = %v, expected [Pixels]", list)
	}
}
