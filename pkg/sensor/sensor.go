// Package sensor reads gaze samples from the tab-delimited sensor export of a
// recording session.
//
// The export starts with a variable amount of preamble. The first row with at
// least three fields is the column header; every later row with at least three
// fields is a sample. Shorter rows are treated as noise and skipped.
package sensor

import (
	"errors"
	"strconv"
)

// Required sensor columns
const (
	ColumnTimeSignal = "TimeSignal"
	ColumnGazeX      = "GazeX"
	ColumnGazeY      = "GazeY"
	ColumnTimestamp  = "Timestamp"
)

// minFields is the smallest row that is not considered noise
const minFields = 3

var (
	// ErrMalformedHeader is returned when the header lacks a required column
	ErrMalformedHeader = errors.New("malformed sensor header")
	// ErrNoHeader is returned when the stream contains no qualifying row at all
	ErrNoHeader = errors.New("sensor data has no header row")
)

// NoData is the coordinate value some trackers write instead of leaving the field empty
const NoData = -1

// OptionalInt is an integer that may be absent
type OptionalInt struct {
	Value int
	Valid bool
}

// Int returns a present OptionalInt
func Int(v int) OptionalInt {
	return OptionalInt{Value: v, Valid: true}
}

// String formats the value, or the empty string when absent
func (o OptionalInt) String() string {
	if !o.Valid {
		return ""
	}
	return strconv.Itoa(o.Value)
}

// Known reports whether the value is present and not the NoData sentinel
func (o OptionalInt) Known() bool {
	return o.Valid && o.Value != NoData
}

// Sample is one row of the sensor stream
type Sample struct {
	TimeSignal  float64     // Raw session clock in milliseconds
	SessionTime float64     // TimeSignal in seconds
	GazeX       OptionalInt // Horizontal gaze position in screen pixels
	GazeY       OptionalInt // Vertical gaze position in screen pixels
	Timestamp   string      // Wall clock field, kept verbatim
}

// HasGaze reports whether both gaze coordinates are usable
func (s Sample) HasGaze() bool {
	return s.GazeX.Known() && s.GazeY.Known()
}
