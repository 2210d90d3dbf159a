package catalog

// Index is the query contract the cleaning rules consume. Implementations
// must be safe for repeated reads and must never be mutated by a rule.
type Index interface {
	// Lookup returns the record named exactly name.
	Lookup(name string) (Entry, bool)
	// Attribute returns a free-text field of the record named name.
	Attribute(name string, field Field) (string, bool)
	// TitlesWithSamples returns the names of records owning a <sample>.
	TitlesWithSamples() map[string]struct{}
	// Len returns the number of distinct names.
	Len() int
}

var _ Index = (*Catalog)(nil)

// Catalog is the in-memory Index.
type Catalog struct {
	entries    []Entry // declaration order, duplicates included
	byName     map[string]int
	samples    map[string]struct{}
	duplicates []string
}

// New indexes entries in declaration order. For duplicated names the first
// record wins; the later names are reported by Duplicates.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: entries,
		byName:  make(map[string]int, len(entries)),
		samples: make(map[string]struct{}),
	}
	for i, e := range entries {
		if _, dup := c.byName[e.Name]; dup {
			c.duplicates = append(c.duplicates, e.Name)
			continue
		}
		c.byName[e.Name] = i
		if e.HasSample() {
			c.samples[e.Name] = struct{}{}
		}
	}
	return c
}

// Lookup implements Index.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Attribute implements Index.
func (c *Catalog) Attribute(name string, field Field) (string, bool) {
	e, ok := c.Lookup(name)
	if !ok {
		return "", false
	}
	return e.Attribute(field)
}

// TitlesWithSamples implements Index. The returned set is a copy.
func (c *Catalog) TitlesWithSamples() map[string]struct{} {
	out := make(map[string]struct{}, len(c.samples))
	for k := range c.samples {
		out[k] = struct{}{}
	}
	return out
}

// Len implements Index.
func (c *Catalog) Len() int { return len(c.byName) }

// Entries returns every record in declaration order, duplicates included.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Duplicates returns the names that appeared more than once, once per
// extra occurrence.
func (c *Catalog) Duplicates() []string { return c.duplicates }
