package catalog

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

type xmlSample struct {
	Name string `xml:"name,attr"`
}

// xmlGame mirrors both <game> (Logiqx/FBNeo) and <machine> (MAME) records.
// Child text elements are slices so presence can be told apart from empty.
type xmlGame struct {
	Name         string      `xml:"name,attr"`
	CloneOf      string      `xml:"cloneof,attr"`
	RomOf        string      `xml:"romof,attr"`
	SampleOf     string      `xml:"sampleof,attr"`
	IsBIOS       string      `xml:"isbios,attr"`
	Year         []string    `xml:"year"`
	Description  []string    `xml:"description"`
	Manufacturer []string    `xml:"manufacturer"`
	Comment      []string    `xml:"comment"`
	Samples      []xmlSample `xml:"sample"`
}

// Parse reads a dat document. Records may appear at any depth.
func Parse(r io.Reader) (*Catalog, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	var entries []Entry
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse dat: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "game", "machine":
		default:
			continue
		}
		var g xmlGame
		if err := dec.DecodeElement(&g, &start); err != nil {
			return nil, fmt.Errorf("parse dat %s: %w", start.Name.Local, err)
		}
		if g.Name == "" {
			continue
		}
		entries = append(entries, g.entry())
	}
	return New(entries), nil
}

// Load parses the dat file at path.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("dat file %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("open dat: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func (g xmlGame) entry() Entry {
	e := Entry{
		Name:     g.Name,
		CloneOf:  strings.TrimSpace(g.CloneOf),
		RomOf:    strings.TrimSpace(g.RomOf),
		SampleOf: strings.TrimSpace(g.SampleOf),
		IsBIOS:   parseBool(g.IsBIOS),
	}
	for _, f := range []struct {
		field Field
		vals  []string
	}{
		{FieldYear, g.Year},
		{FieldDescription, g.Description},
		{FieldManufacturer, g.Manufacturer},
		{FieldComment, g.Comment},
	} {
		if len(f.vals) > 0 {
			e.set(f.field, strings.TrimSpace(f.vals[0]))
		}
	}
	for _, s := range g.Samples {
		if s.Name != "" {
			e.Samples = append(e.Samples, s.Name)
		}
	}
	return e
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true
	}
	return false
}
