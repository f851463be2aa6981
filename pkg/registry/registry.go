// Package registry maps the initials printed in a timetable grid to the teacher
// and subject they stand for, and knows which room numbers exist.
package registry

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Literal text written in place of values the registry could not provide.
const (
	UnknownTeacher = "Unknown teacher"
	UnknownSubject = "Unknown subject"
	MultipleMarker = "Multiple"
)

//go:embed registry.yaml
var defaultRegistryYAML []byte

// Status tells how a Lookup was obtained.
type Status int

const (
	// Unresolved means the code is not in the registry.
	Unresolved Status = iota
	// Resolved means the code was found.
	Resolved
	// Multiple means the cell names alternate teachers ("MR / ZE") and no lookup was done.
	Multiple
)

func (s Status) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case Multiple:
		return "multiple"
	default:
		return "unresolved"
	}
}

// Lookup is the result of resolving a code. Teacher and Subject are only set
// when Status is Resolved.
type Lookup struct {
	Status  Status
	Teacher string
	Subject string
}

// TeacherName returns the teacher, or the literal marker for unresolved and multiple lookups.
func (l Lookup) TeacherName() string {
	switch l.Status {
	case Resolved:
		return l.Teacher
	case Multiple:
		return MultipleMarker
	default:
		return UnknownTeacher
	}
}

// SubjectName returns the subject, or the literal marker for unresolved and multiple lookups.
func (l Lookup) SubjectName() string {
	switch l.Status {
	case Resolved:
		return l.Subject
	case Multiple:
		return MultipleMarker
	default:
		return UnknownSubject
	}
}

// Entry is one registry record.
type Entry struct {
	Teacher string `yaml:"teacher"`
	Subject string `yaml:"subject"`
}

// RoomRange is the inclusive range of valid room numbers.
type RoomRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type file struct {
	Rooms RoomRange        `yaml:"rooms"`
	Codes map[string]Entry `yaml:"codes"`
}

// Registry is immutable once built and safe for concurrent use.
type Registry struct {
	codes map[string]Entry
	rooms RoomRange
}

// New builds a registry from the given codes. The map is copied.
func New(codes map[string]Entry, rooms RoomRange) *Registry {
	r := &Registry{
		codes: make(map[string]Entry, len(codes)),
		rooms: rooms,
	}
	for code, e := range codes {
		r.codes[norm.NFC.String(code)] = e
	}
	return r
}

// Parse reads a registry from YAML.
func Parse(data []byte) (*Registry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse registry YAML: %w", err)
	}
	if len(f.Codes) == 0 {
		return nil, fmt.Errorf("registry defines no codes")
	}
	if f.Rooms.Min > f.Rooms.Max {
		return nil, fmt.Errorf("invalid room range %d..%d", f.Rooms.Min, f.Rooms.Max)
	}
	return New(f.Codes, f.Rooms), nil
}

// Load reads a registry from a YAML file on disk.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file: %w", err)
	}
	return Parse(data)
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the built-in registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Parse(defaultRegistryYAML)
		if err != nil {
			panic(fmt.Sprintf("embedded registry is invalid: %v", err))
		}
		defaultReg = r
	})
	return defaultReg
}

// Resolve looks up a code. Missing codes are not an error; they yield an Unresolved lookup.
func (r *Registry) Resolve(code string) Lookup {
	e, ok := r.codes[norm.NFC.String(code)]
	if !ok {
		return Lookup{Status: Unresolved}
	}
	return Lookup{Status: Resolved, Teacher: e.Teacher, Subject: e.Subject}
}

// Contains reports whether code is a known code.
func (r *Registry) Contains(code string) bool {
	_, ok := r.codes[norm.NFC.String(code)]
	return ok
}

// IsValidRoom reports whether n is an existing room number.
func (r *Registry) IsValidRoom(n int) bool {
	return n >= r.rooms.Min && n <= r.rooms.Max
}

// Codes returns all known codes, sorted.
func (r *Registry) Codes() []string {
	codes := make([]string, 0, len(r.codes))
	for c := range r.codes {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
