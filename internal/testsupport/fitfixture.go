// Package testsupport builds FIT fixtures for tests.
package testsupport

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"
	"time"

	"github.com/tormoder/fit"
)

// RecordFunc fills record i of a synthetic activity.
type RecordFunc func(i int, rec *fit.RecordMsg)

// EncodeActivity encodes an activity with n records at 1 Hz starting at start.
// Records carry only the timestamp unless fill sets more fields.
func EncodeActivity(t *testing.T, start time.Time, n int, fill RecordFunc) []byte {
	t.Helper()

	header := fit.NewHeader(fit.V20, true)
	file, err := fit.NewFile(fit.FileTypeActivity, header)
	if err != nil {
		t.Fatalf("new fit file: %v", err)
	}
	file.FileId.TimeCreated = start

	activity, err := file.Activity()
	if err != nil {
		t.Fatalf("activity accessor: %v", err)
	}

	event := fit.NewEventMsg()
	event.Timestamp = start
	event.Event = fit.EventTimer
	event.EventType = fit.EventTypeStart
	activity.Events = append(activity.Events, event)

	for i := 0; i < n; i++ {
		rec := fit.NewRecordMsg()
		rec.Timestamp = start.Add(time.Duration(i) * time.Second)
		if fill != nil {
			fill(i, rec)
		}
		activity.Records = append(activity.Records, rec)
	}

	stop := fit.NewEventMsg()
	stop.Timestamp = start.Add(time.Duration(n) * time.Second)
	stop.Event = fit.EventTimer
	stop.EventType = fit.EventTypeStop
	activity.Events = append(activity.Events, stop)

	var buf bytes.Buffer
	if err := fit.Encode(&buf, file, binary.LittleEndian); err != nil {
		t.Fatalf("encode fit: %v", err)
	}
	return buf.Bytes()
}

// WriteActivity encodes an activity and writes it to path.
func WriteActivity(t *testing.T, path string, start time.Time, n int, fill RecordFunc) {
	t.Helper()
	if err := os.WriteFile(path, EncodeActivity(t, start, n, fill), 0o644); err != nil {
		t.Fatalf("write fit fixture: %v", err)
	}
}

// ConstantPower sets every record's power to watts.
func ConstantPower(watts uint16) RecordFunc {
	return func(_ int, rec *fit.RecordMsg) {
		rec.Power = watts
	}
}

// ConstantHeartRate sets every record's heart rate to bpm.
func ConstantHeartRate(bpm uint8) RecordFunc {
	return func(_ int, rec *fit.RecordMsg) {
		rec.HeartRate = bpm
	}
}
