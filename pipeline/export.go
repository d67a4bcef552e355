package pipeline

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	fitload "github.com/lucasjlepore/fit-load"
)

// Export formats for the performance series.
const (
	FormatCSV     = "csv"
	FormatParquet = "parquet"
	FormatJSON    = "json"
)

const exportDateLayout = "2006-01-02"

var performanceHeader = []string{"date", "tss", "ctl", "atl", "tsb"}

func checkFormat(format string) error {
	switch format {
	case FormatCSV, FormatParquet, FormatJSON:
		return nil
	}
	return fmt.Errorf("unsupported format %q (expected csv|parquet|json)", format)
}

// ExportPerformance writes days to dir/performance.<format> and returns the path.
func ExportPerformance(dir, format string, days []fitload.PerformanceDay) (string, error) {
	data, err := MarshalPerformance(format, days)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, "performance."+format)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// MarshalPerformance encodes days as csv, json or parquet.
func MarshalPerformance(format string, days []fitload.PerformanceDay) ([]byte, error) {
	if err := checkFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case FormatJSON:
		return marshalPerformanceJSON(days)
	case FormatParquet:
		return marshalPerformanceParquet(days)
	default:
		return marshalPerformanceCSV(days)
	}
}

func marshalPerformanceCSV(days []fitload.PerformanceDay) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(performanceHeader); err != nil {
		return nil, err
	}
	for _, d := range days {
		row := []string{
			d.Date.Format(exportDateLayout),
			formatFloat(d.TSS),
			formatFloat(d.CTL),
			formatFloat(d.ATL),
			formatFloat(d.TSB),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type performanceRow struct {
	Date string  `json:"date"`
	TSS  float64 `json:"tss"`
	CTL  float64 `json:"ctl"`
	ATL  float64 `json:"atl"`
	TSB  float64 `json:"tsb"`
}

func performanceRows(days []fitload.PerformanceDay) []performanceRow {
	rows := make([]performanceRow, len(days))
	for i, d := range days {
		rows[i] = performanceRow{Date: d.Date.Format(exportDateLayout), TSS: d.TSS, CTL: d.CTL, ATL: d.ATL, TSB: d.TSB}
	}
	return rows
}

func marshalPerformanceJSON(days []fitload.PerformanceDay) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(performanceRows(days)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
