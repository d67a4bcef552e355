//go:build js

package pipeline

import (
	"errors"

	fitload "github.com/lucasjlepore/fit-load"
)

func marshalPerformanceParquet([]fitload.PerformanceDay) ([]byte, error) {
	return nil, errors.New("parquet export is not available in js builds")
}
