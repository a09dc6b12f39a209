package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/vitae/internal/domain"
)

// CurrentVersion is written by Encode. Files without a version are read as
// version 1.
const CurrentVersion = 1

// ResumeFile is the on-disk form of a document for import and export.
type ResumeFile struct {
	Version  int                   `json:"version,omitempty" yaml:"version,omitempty"`
	Name     string                `json:"name" yaml:"name"`
	Basic    domain.BasicInfo      `json:"basic" yaml:"basic"`
	Settings domain.GlobalSettings `json:"settings,omitempty" yaml:"settings,omitempty"`
	Sections []SectionFile         `json:"sections,omitempty" yaml:"sections,omitempty"`
}

type SectionFile struct {
	Kind    string     `json:"kind" yaml:"kind"`
	Title   string     `json:"title,omitempty" yaml:"title,omitempty"`
	Visible *bool      `json:"visible,omitempty" yaml:"visible,omitempty"`
	Items   []ItemFile `json:"items,omitempty" yaml:"items,omitempty"`
}

// ItemFile carries either scalar seeds or an education block, plus an
// optional authored field list which wins over both.
type ItemFile struct {
	Title       string               `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle    string               `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	DateRange   string               `json:"dateRange,omitempty" yaml:"dateRange,omitempty"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Visible     *bool                `json:"visible,omitempty" yaml:"visible,omitempty"`
	Education   *EducationFile       `json:"education,omitempty" yaml:"education,omitempty"`
	Fields      []domain.HeaderField `json:"fields,omitempty" yaml:"fields,omitempty"`
}

type EducationFile struct {
	School    string `json:"school" yaml:"school"`
	Major     string `json:"major,omitempty" yaml:"major,omitempty"`
	Degree    string `json:"degree,omitempty" yaml:"degree,omitempty"`
	GPA       string `json:"gpa,omitempty" yaml:"gpa,omitempty"`
	StartDate string `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty" yaml:"endDate,omitempty"`
}

// Format selects the encoding of a resume file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts yaml, yml and json; empty means yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected yaml or json)", s)
	}
}

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	return ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// LoadResumeFile reads a YAML or JSON resume, chosen by extension.
func LoadResumeFile(path string) (*ResumeFile, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, format)
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*ResumeFile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("parsing resume file: empty input")
	}
	var f ResumeFile
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("parsing resume file: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("parsing resume file: %w", err)
		}
	}
	if f.Version == 0 {
		f.Version = 1
	}
	return &f, nil
}

// Encode writes f to w.
func Encode(w io.Writer, f *ResumeFile, format Format) error {
	out := *f
	out.Version = CurrentVersion
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(&out)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(&out); err != nil {
			return err
		}
		return enc.Close()
	}
}
