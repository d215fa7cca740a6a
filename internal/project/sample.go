package project

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Attribute names with reserved meaning in the sample table.
const (
	// SampleNameAttr is the column holding the unique sample name.
	SampleNameAttr = "sample_name"

	// ProtocolAttr is the column holding the assay/protocol label.
	ProtocolAttr = "protocol"
)

// Sample is a single named record from a project's sample table.
// Attributes holds every column of the sample's row; well-known attributes
// are exposed through accessors so that absence is a first-class miss
// rather than a zero-value ambiguity.
type Sample struct {
	// Name is the unique sample name.
	Name string

	// Attributes maps attribute names to values, including the name itself.
	Attributes map[string]string
}

// NewSample creates a sample with the given name and optional attributes.
func NewSample(name string, attrs map[string]string) *Sample {
	s := &Sample{Name: name, Attributes: map[string]string{SampleNameAttr: name}}
	for k, v := range attrs {
		s.Attributes[k] = v
	}
	return s
}

// Protocol returns the sample's protocol label and whether one is set.
// An empty or missing protocol attribute counts as unset.
func (s *Sample) Protocol() (string, bool) {
	p, ok := s.Attributes[ProtocolAttr]
	if !ok || p == "" {
		return "", false
	}
	return p, true
}

// Attr returns the named attribute value and whether it is present.
func (s *Sample) Attr(name string) (string, bool) {
	v, ok := s.Attributes[name]
	return v, ok
}

func (s *Sample) String() string { return s.Name }

// readSampleTable parses a CSV sample table into samples.
// The header must contain a sample_name column; every other column becomes
// a sample attribute. Empty cells are omitted from Attributes entirely so
// accessors report them as absent.
func readSampleTable(r io.Reader) ([]*Sample, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("sample table is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sample table header: %w", err)
	}

	nameCol := -1
	for i, col := range header {
		if strings.TrimSpace(col) == SampleNameAttr {
			nameCol = i
			break
		}
	}
	if nameCol < 0 {
		return nil, fmt.Errorf("sample table lacks required column %q", SampleNameAttr)
	}

	var samples []*Sample
	seen := make(map[string]bool)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read sample table row: %w", err)
		}

		name := strings.TrimSpace(record[nameCol])
		if name == "" {
			return nil, fmt.Errorf("sample table row %d has an empty %s", len(samples)+1, SampleNameAttr)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate sample name %q in sample table", name)
		}
		seen[name] = true

		attrs := make(map[string]string)
		for i, col := range header {
			if i >= len(record) {
				break
			}
			val := strings.TrimSpace(record[i])
			if val == "" {
				continue
			}
			attrs[strings.TrimSpace(col)] = val
		}
		samples = append(samples, NewSample(name, attrs))
	}

	return samples, nil
}

// loadSampleTable reads a CSV sample table from disk.
func loadSampleTable(path string) ([]*Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample table %s: %w", path, err)
	}
	defer f.Close()
	return readSampleTable(f)
}
