package fitload

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCalibration reports a non-positive FTP or LTHR.
	ErrMissingCalibration = errors.New("missing calibration")

	// ErrInsufficientData reports a workout that cannot produce a load value.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrUnzoneableSample is carried as a warning when heart rate samples fall outside
	// every zone.
	ErrUnzoneableSample = errors.New("unzoneable heart rate sample")
)

// CalibrationError names the calibration value that was rejected.
type CalibrationError struct {
	Name  string
	Value float64
}

func (e *CalibrationError) Error() string {
	return fmt.Sprintf("%s: %s must be positive, got %g", ErrMissingCalibration, e.Name, e.Value)
}

func (e *CalibrationError) Is(target error) bool {
	return target == ErrMissingCalibration
}

func checkCalibration(name string, v float64) error {
	if !(v > 0) || !isFinite(v) {
		return &CalibrationError{Name: name, Value: v}
	}
	return nil
}
