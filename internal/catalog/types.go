package catalog

import (
	"errors"
	"strings"
)

// Field names a free-text attribute of an Entry.
type Field string

const (
	FieldYear         Field = "year"
	FieldDescription  Field = "description"
	FieldManufacturer Field = "manufacturer"
	FieldComment      Field = "comment"
)

// Entry is one game (or machine) record of a dat file.
type Entry struct {
	Name         string
	CloneOf      string
	RomOf        string
	SampleOf     string
	IsBIOS       bool
	Year         string
	Description  string
	Manufacturer string
	Comment      string
	Samples      []string

	// has records which optional child elements were present, so an empty
	// <comment/> is distinguishable from a missing one.
	has map[Field]bool
}

// HasSample reports whether the record owns at least one <sample> element.
func (e Entry) HasSample() bool { return len(e.Samples) > 0 }

// HasParent reports whether any of cloneof, romof or sampleof is set.
func (e Entry) HasParent() bool {
	return e.CloneOf != "" || e.RomOf != "" || e.SampleOf != ""
}

// Attribute returns the value of field and whether the element was present.
func (e Entry) Attribute(f Field) (string, bool) {
	var v string
	switch f {
	case FieldYear:
		v = e.Year
	case FieldDescription:
		v = e.Description
	case FieldManufacturer:
		v = e.Manufacturer
	case FieldComment:
		v = e.Comment
	default:
		return "", false
	}
	if e.has != nil {
		return v, e.has[f]
	}
	return v, v != ""
}

func (e *Entry) set(f Field, v string) {
	if e.has == nil {
		e.has = make(map[Field]bool)
	}
	if e.has[f] {
		return
	}
	e.has[f] = true
	switch f {
	case FieldYear:
		e.Year = v
	case FieldDescription:
		e.Description = v
	case FieldManufacturer:
		e.Manufacturer = v
	case FieldComment:
		e.Comment = v
	}
}

// ErrNotFound is returned when a dat file or cache does not exist.
var ErrNotFound = errors.New("not found")

// ErrCycle matches every *CycleError.
var ErrCycle = errors.New("ancestry cycle")

// CycleError reports a clone/rom/sample chain that revisits a name.
type CycleError struct {
	Chain []string
}

func (e *CycleError) Error() string {
	return "ancestry cycle: " + strings.Join(e.Chain, " -> ")
}

// Is lets errors.Is(err, ErrCycle) match.
func (e *CycleError) Is(target error) bool { return target == ErrCycle }
