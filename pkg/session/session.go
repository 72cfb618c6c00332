// Package session describes one recorded reading session: where its files live
// and which segments (parts) the recording was divided into.
//
// A session directory holds a session.yml metadata file:
//
//	sensor_data_file: eyetracking.tsv
//	segments:
//	  - part: digital reading
//	    start_time: 120.5
//	    end_time: 610
//	    transitions: [121, 245, 390]
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MetadataFile is the name of the metadata file inside a session directory
const MetadataFile = "session.yml"

// DigitalReading is the segment label of the on-screen reading part
const DigitalReading = "digital reading"

var (
	// ErrSegmentNotFound is returned when no segment carries the requested label
	ErrSegmentNotFound = errors.New("segment not found")
	// ErrAmbiguousSegment is returned when several segments carry the requested label
	ErrAmbiguousSegment = errors.New("more than one segment")
	// ErrUnorderedTransitions is returned when transition times are not ascending
	ErrUnorderedTransitions = errors.New("transitions are not in ascending order")
)

// Segment is one labelled part of a session, times in seconds since session start
type Segment struct {
	Part        string    `yaml:"part"`
	StartTime   float64   `yaml:"start_time"`
	EndTime     float64   `yaml:"end_time"`
	Transitions []float64 `yaml:"transitions"`
}

// Session is the handle the pairing needs: directory, sensor file and segments
type Session struct {
	Name           string
	Dir            string
	SensorDataPath string
	Metadata       []Segment
}

type metadataFile struct {
	SensorDataFile string    `yaml:"sensor_data_file"`
	Segments       []Segment `yaml:"segments"`
}

// Load reads <dataDir>/<name>/session.yml
func Load(dataDir, name string) (*Session, error) {
	dir := filepath.Join(dataDir, name)
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read session %s: %w", name, err)
	}

	var mf metadataFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("failed to parse %s metadata: %w", name, err)
	}
	if mf.SensorDataFile == "" {
		return nil, fmt.Errorf("session %s: sensor_data_file is not set", name)
	}

	sensorPath := mf.SensorDataFile
	if !filepath.IsAbs(sensorPath) {
		sensorPath = filepath.Join(dir, sensorPath)
	}

	return &Session{
		Name:           name,
		Dir:            dir,
		SensorDataPath: sensorPath,
		Metadata:       mf.Segments,
	}, nil
}

// Segment returns the single segment labelled part.
// Zero or several matching segments are an error, as are unordered transitions.
func (s *Session) Segment(part string) (Segment, error) {
	var found []Segment
	for _, seg := range s.Metadata {
		if seg.Part == part {
			found = append(found, seg)
		}
	}

	switch len(found) {
	case 0:
		return Segment{}, fmt.Errorf("session %s: %w: %q", s.Name, ErrSegmentNotFound, part)
	case 1:
	default:
		return Segment{}, fmt.Errorf("session %s: %w labelled %q (%d)", s.Name, ErrAmbiguousSegment, part, len(found))
	}

	seg := found[0]
	for i := 1; i < len(seg.Transitions); i++ {
		if seg.Transitions[i] < seg.Transitions[i-1] {
			return Segment{}, fmt.Errorf("session %s: %w at index %d", s.Name, ErrUnorderedTransitions, i)
		}
	}
	return seg, nil
}
