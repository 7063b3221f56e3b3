package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/martin-lopez25/appbrechas/internal/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadCatalog_RenamesFirstTwoColumnsPositionally(t *testing.T) {
	t.Parallel()

	p := writeFile(t, "catalogo_cargo.csv", "CODIGO CNPM,Nombre del puesto,extra\nME01,medico_internista,x\n")
	f, err := LoadCatalog(p)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	want := []string{model.ColJobCode, model.ColJobTitle, "extra"}
	if diff := cmp.Diff(want, f.Header); diff != "" {
		t.Fatalf("header mismatch (-want +got):\n%s", diff)
	}
	if got := f.Cell(0, f.Index(model.ColJobTitle)); got != "medico_internista" {
		t.Fatalf("title=%q", got)
	}
	if f.Hash == "" {
		t.Fatalf("expected content hash")
	}
}

func TestLoadCatalog_TooFewColumns(t *testing.T) {
	t.Parallel()

	p := writeFile(t, "catalogo_cargo.csv", "codigo\nME01\n")
	_, err := LoadCatalog(p)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("want ErrMissingColumn, got %v", err)
	}
}

func TestLoadGap_RequiresKeyColumns(t *testing.T) {
	t.Parallel()

	p := writeFile(t, "brechas.csv", "clues_imb,total_ideal\nX1,3\n")
	_, err := LoadGap(p)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("want ErrMissingColumn, got %v", err)
	}
}

func TestLoadGap_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadGap(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestReadCSV_SniffsSemicolonAndPadsRaggedRows(t *testing.T) {
	t.Parallel()

	p := writeFile(t, "brechas.csv", "\ufeffclues_imb;codigo_cnpm;brecha\nX1;ME01\n\nX2;EN01;3;sobra\n")
	f, err := LoadGap(p)
	if err != nil {
		t.Fatalf("LoadGap: %v", err)
	}
	if f.Header[0] != model.ColFacilityID {
		t.Fatalf("BOM not stripped: %q", f.Header[0])
	}
	want := [][]string{
		{"X1", "ME01", ""},
		{"X2", "EN01", "3"},
	}
	if diff := cmp.Diff(want, f.Records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSV_Empty(t *testing.T) {
	t.Parallel()

	p := writeFile(t, "vacio.csv", "")
	if _, err := Load(p); !errors.Is(err, ErrEmptySource) {
		t.Fatalf("want ErrEmptySource, got %v", err)
	}
}

func TestLoad_XLSX(t *testing.T) {
	t.Parallel()

	wb := excelize.NewFile()
	rows := [][]interface{}{
		{"clues_imb", "codigo_cnpm", "brecha"},
		{"X1", "ME01", 5},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := wb.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	p := filepath.Join(t.TempDir(), "brechas.xlsx")
	if err := wb.SaveAs(p); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	f, err := LoadGap(p)
	if err != nil {
		t.Fatalf("LoadGap: %v", err)
	}
	if f.Len() != 1 {
		t.Fatalf("rows=%d, want 1", f.Len())
	}
	if got := f.Cell(0, f.Index(model.ColGap)); got != "5" {
		t.Fatalf("brecha=%q", got)
	}
}

func TestFrame_Rename(t *testing.T) {
	t.Parallel()

	f := newFrame("mem", []string{"a", "clasificacion_carga"}, [][]string{{"1", "x"}})
	if !f.Rename("clasificacion_carga", model.ColClassification) {
		t.Fatalf("expected rename")
	}
	if f.Index(model.ColClassification) != 1 || f.Has("clasificacion_carga") {
		t.Fatalf("rename not applied: %v", f.Header)
	}
	if f.Rename("missing", "x") {
		t.Fatalf("rename of missing column should be a no-op")
	}
}
