package core

// The comparison protocol has four levels: shape or shape+value, each either
// one-directional (Covers) or in both directions (SameAs). Table names must
// always match exactly.

// ShapeCovers reports whether every column and link of s has a same-named,
// structurally equal counterpart in o. Extra members of o are ignored.
func (s *Schema) ShapeCovers(o *Schema) bool {
	return s.covers(o, false)
}

// Covers is ShapeCovers that also requires equal stored values.
func (s *Schema) Covers(o *Schema) bool {
	return s.covers(o, true)
}

// SameShapeAs reports full structural equality: same table name, same column
// set with equal constraints, same link set. Values are ignored.
func (s *Schema) SameShapeAs(o *Schema) bool {
	return s.covers(o, false) && o.covers(s, false)
}

// SameAs is SameShapeAs plus equal stored values in every column.
func (s *Schema) SameAs(o *Schema) bool {
	return s.covers(o, true) && o.covers(s, true)
}

func (s *Schema) covers(o *Schema, values bool) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.name != o.name {
		return false
	}
	for _, c := range s.columns {
		other := o.find(c.name)
		if other == nil {
			return false
		}
		if values && !c.SameAs(other) || !values && !c.SameShapeAs(other) {
			return false
		}
	}
	for _, l := range s.links {
		if !o.hasLink(l) {
			return false
		}
	}
	return true
}

func (s *Schema) hasLink(l ReferenceLink) bool {
	for _, ol := range s.links {
		if ol.SameAs(l) {
			return true
		}
	}
	return false
}

// Mismatches lists human-readable structural differences between s and o, in
// both directions. It is empty exactly when s.SameShapeAs(o).
func (s *Schema) Mismatches(o *Schema) []string {
	if s == nil || o == nil {
		if s == o {
			return nil
		}
		return []string{"schema missing"}
	}
	var out []string
	if s.name != o.name {
		out = append(out, "table name "+s.name+" != "+o.name)
	}
	for _, c := range s.columns {
		other := o.find(c.name)
		switch {
		case other == nil:
			out = append(out, "column "+c.name+" missing")
		case !c.SameShapeAs(other):
			out = append(out, "column "+c.name+": "+c.Definition()+" != "+other.Definition())
		}
	}
	for _, c := range o.columns {
		if s.find(c.name) == nil {
			out = append(out, "unexpected column "+c.name)
		}
	}
	for _, l := range s.links {
		if !o.hasLink(l) {
			out = append(out, "reference "+l.String()+" missing")
		}
	}
	for _, l := range o.links {
		if !s.hasLink(l) {
			out = append(out, "unexpected reference "+l.String())
		}
	}
	return out
}
