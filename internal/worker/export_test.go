package worker

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"

	"github.com/ppiankov/dxcoder/internal/model"
	"github.com/ppiankov/dxcoder/internal/pipeline"
)

func sampleResults() []*CaseResult {
	coded := model.NewResult("c1", []model.Code{
		{ID: "I13.0", Label: "Hypertensive heart and chronic kidney disease", Rule: "hypertension", Confidence: model.ConfidenceHigh},
		{ID: "N18.4", Rule: "renal", Confidence: model.ConfidenceHigh},
	}, nil, model.Record{})
	empty := model.NewResult("c2", nil, []model.Warning{{Message: "insufficient documentation to code"}}, model.Record{})

	return []*CaseResult{
		{Index: 0, Case: pipeline.Case{ID: "c1"}, Result: coded},
		{Index: 1, Case: pipeline.Case{ID: "c2"}, Result: empty},
		{Index: 2, Case: pipeline.Case{ID: "c3"}, Error: &PhaseError{Phase: PhaseCode, CaseID: "c3", Err: errors.New("boom")}},
	}
}

func TestRows(t *testing.T) {
	rows := Rows(sampleResults())

	if len(rows) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(rows))
	}
	if rows[0].Code == nil || *rows[0].Code != "I13.0" || !rows[0].Principal || rows[0].Position != 1 {
		t.Errorf("expected principal I13.0 at position 1, got %+v", rows[0])
	}
	if rows[1].Principal || rows[1].Position != 2 || rows[1].Label != nil {
		t.Errorf("expected secondary N18.4 without label, got %+v", rows[1])
	}
	if rows[2].Code != nil || rows[2].Status != string(model.StatusInsufficientDocumentation) || rows[2].Warnings != 1 {
		t.Errorf("expected an empty insufficient documentation row, got %+v", rows[2])
	}
	if rows[3].CaseID != "c3" || rows[3].Error == nil {
		t.Errorf("expected an error row for c3, got %+v", rows[3])
	}
}

func TestExportParquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codes.parquet")
	if err := ExportParquet(path, sampleResults()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		t.Fatal(err)
	}
	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		t.Fatalf("open parquet: %v", err)
	}

	reader := parquet.NewGenericReader[CodeRow](pf)
	defer reader.Close()

	if reader.NumRows() != 4 {
		t.Fatalf("expected 4 rows, got %d", reader.NumRows())
	}

	rows := make([]CodeRow, 4)
	n, _ := reader.Read(rows)
	if n != 4 {
		t.Fatalf("expected to read 4 rows, got %d", n)
	}
	if rows[0].CaseID != "c1" || rows[0].Code == nil || *rows[0].Code != "I13.0" {
		t.Errorf("expected first row c1/I13.0, got %+v", rows[0])
	}
}

func TestExportParquet_BadPath(t *testing.T) {
	err := ExportParquet(filepath.Join(t.TempDir(), "missing", "codes.parquet"), nil)

	var pe *PhaseError
	if !errors.As(err, &pe) || pe.Phase != PhaseExport {
		t.Errorf("expected export phase error, got %v", err)
	}
}
