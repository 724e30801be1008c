package worker

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// CodeRow is one exported code. Cases without codes export a single row
// with an empty code so every case appears in the file.
type CodeRow struct {
	CaseID     string  `parquet:"case_id"`
	Status     string  `parquet:"status"`
	Position   int32   `parquet:"position"`
	Principal  bool    `parquet:"principal"`
	Code       *string `parquet:"code,optional"`
	Label      *string `parquet:"label,optional"`
	Rule       *string `parquet:"rule,optional"`
	Guideline  *string `parquet:"guideline,optional"`
	Confidence *string `parquet:"confidence,optional"`
	Score      int32   `parquet:"score"`
	Warnings   int32   `parquet:"warnings"`
	Error      *string `parquet:"error,optional"`
}

// Rows flattens batch results into export rows, in case order.
func Rows(results []*CaseResult) []CodeRow {
	var rows []CodeRow
	for _, cr := range results {
		id := cr.Result.CaseID
		if id == "" {
			id = cr.Case.ID
		}
		base := CodeRow{
			CaseID:   id,
			Status:   string(cr.Result.Status),
			Score:    int32(cr.Result.Score.Index),
			Warnings: int32(len(cr.Result.Warnings)),
		}
		if cr.Error != nil {
			base.Error = ptr(cr.Error.Error())
			rows = append(rows, base)
			continue
		}
		if len(cr.Result.Codes) == 0 {
			rows = append(rows, base)
			continue
		}
		for i, c := range cr.Result.Codes {
			row := base
			row.Position = int32(i + 1)
			row.Principal = i == 0
			row.Code = ptr(c.ID)
			row.Label = optional(c.Label)
			row.Rule = optional(c.Rule)
			row.Guideline = optional(c.Guideline)
			row.Confidence = optional(string(c.Confidence))
			rows = append(rows, row)
		}
	}
	return rows
}

// ExportParquet writes batch results to a Parquet file, one row per code.
func ExportParquet(path string, results []*CaseResult) error {
	f, err := os.Create(path)
	if err != nil {
		return &PhaseError{Phase: PhaseExport, Err: fmt.Errorf("create output: %w", err)}
	}
	defer f.Close()

	writer := parquet.NewGenericWriter[CodeRow](f)
	if _, err := writer.Write(Rows(results)); err != nil {
		return &PhaseError{Phase: PhaseExport, Err: fmt.Errorf("write rows: %w", err)}
	}
	if err := writer.Close(); err != nil {
		return &PhaseError{Phase: PhaseExport, Err: fmt.Errorf("close writer: %w", err)}
	}
	return nil
}

func ptr(s string) *string { return &s }

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
