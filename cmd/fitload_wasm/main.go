//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"syscall/js"
	"time"

	fitload "github.com/lucasjlepore/fit-load"
	"github.com/lucasjlepore/fit-load/fitsource"
	"github.com/lucasjlepore/fit-load/pipeline"
)

func main() {
	js.Global().Set("analyzeWorkout", js.FuncOf(analyzeWorkout))
	select {}
}

// analyzeWorkout(fileBytes Uint8Array, options {ftp_w, lthr_bpm, timezone, source_file_name})
func analyzeWorkout(_ js.Value, args []js.Value) any {
	if len(args) < 2 {
		return failure("expected arguments: fileBytes(Uint8Array), options(object)")
	}
	fileArg := args[0]
	optsArg := args[1]
	if fileArg.IsUndefined() || fileArg.IsNull() || fileArg.Get("length").Int() == 0 {
		return failure("fit file bytes are required")
	}

	fileBytes := make([]byte, fileArg.Get("length").Int())
	if n := js.CopyBytesToGo(fileBytes, fileArg); n == 0 {
		return failure("failed to read FIT bytes from JS input")
	}

	loc, err := time.LoadLocation(getString(optsArg, "timezone", "UTC"))
	if err != nil {
		return failure(fmt.Sprintf("timezone: %v", err))
	}
	cal := fitload.Calibration{
		FTP:  getFloat(optsArg, "ftp_w"),
		LTHR: getFloat(optsArg, "lthr_bpm"),
	}
	summary, err := pipeline.AnalyzeBytes(getString(optsArg, "source_file_name", "input.fit"), fileBytes, cal,
		fitsource.WithLocation(loc))
	if err != nil {
		return failure(err.Error())
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return failure(fmt.Sprintf("encode summary: %v", err))
	}
	warnings := make([]any, len(summary.Metrics.Warnings))
	for i, w := range summary.Metrics.Warnings {
		warnings[i] = w.Error()
	}
	return map[string]any{
		"ok":       true,
		"summary":  string(payload),
		"notes":    summary.Notes,
		"warnings": warnings,
	}
}

func failure(msg string) map[string]any {
	return map[string]any{
		"ok":    false,
		"error": msg,
	}
}

func getString(v js.Value, key, fallback string) string {
	if v.IsUndefined() || v.IsNull() {
		return fallback
	}
	out := v.Get(key)
	if out.IsUndefined() || out.IsNull() {
		return fallback
	}
	s := out.String()
	if s == "" || s == "undefined" || s == "null" {
		return fallback
	}
	return s
}

func getFloat(v js.Value, key string) float64 {
	if v.IsUndefined() || v.IsNull() {
		return 0
	}
	out := v.Get(key)
	if out.IsUndefined() || out.IsNull() || out.Type() != js.TypeNumber {
		return 0
	}
	return out.Float()
}
