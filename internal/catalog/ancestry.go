package catalog

// Ancestry is the terminal record reached by following parent links.
// Root is empty when the chain ends at a name missing from the catalog.
type Ancestry struct {
	Root   string
	IsBIOS bool
}

// Parent returns the next link to follow: cloneof, else romof, else
// sampleof.
func (e Entry) Parent() string {
	switch {
	case e.CloneOf != "":
		return e.CloneOf
	case e.RomOf != "":
		return e.RomOf
	default:
		return e.SampleOf
	}
}

// ResolveRoot walks from name to its root ancestor. A chain that revisits a
// name fails with *CycleError instead of looping.
func ResolveRoot(idx Index, name string) (Ancestry, error) {
	seen := make(map[string]bool)
	var chain []string
	current := name
	for {
		e, ok := idx.Lookup(current)
		if !ok {
			return Ancestry{}, nil
		}
		chain = append(chain, current)
		if seen[current] {
			return Ancestry{}, &CycleError{Chain: chain}
		}
		seen[current] = true
		if !e.HasParent() {
			return Ancestry{Root: e.Name, IsBIOS: e.IsBIOS}, nil
		}
		current = e.Parent()
	}
}
