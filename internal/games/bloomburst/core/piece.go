package core

import (
	"fmt"
	"sort"
)

// Category tags a piece type independently of its name or display glyph.
type Category uint8

const (
	CategoryFlower Category = iota
	CategorySpecialty
)

// String returns the string representation of a category.
func (c Category) String() string {
	switch c {
	case CategoryFlower:
		return "flower"
	case CategorySpecialty:
		return "specialty"
	default:
		return "unknown"
	}
}

// ParseCategory converts a string to a Category.
// An empty string maps to CategoryFlower.
func ParseCategory(s string) (Category, bool) {
	switch s {
	case "", "flower":
		return CategoryFlower, true
	case "specialty":
		return CategorySpecialty, true
	default:
		return CategoryFlower, false
	}
}

// PieceType is an immutable piece descriptor.
// Attribute values are copied in at construction and only exposed by lookup.
type PieceType struct {
	ID       string
	Name     string
	Category Category
	attrs    map[string]string
}

// NewPieceType creates a piece type with a private copy of attrs.
func NewPieceType(id, name string, category Category, attrs map[string]string) PieceType {
	copied := make(map[string]string, len(attrs))
	for k, v := range attrs {
		copied[k] = v
	}
	return PieceType{ID: id, Name: name, Category: category, attrs: copied}
}

// Attr returns the value of the named attribute and whether the piece has it.
func (p PieceType) Attr(name string) (string, bool) {
	v, ok := p.attrs[name]
	return v, ok
}

// Attributes returns a copy of the piece's attribute map.
func (p PieceType) Attributes() map[string]string {
	out := make(map[string]string, len(p.attrs))
	for k, v := range p.attrs {
		out[k] = v
	}
	return out
}

// String renders the piece as "Name (v1, v2)" with values in attribute-name order.
func (p PieceType) String() string {
	names := make([]string, 0, len(p.attrs))
	for k := range p.attrs {
		names = append(names, k)
	}
	sort.Strings(names)
	s := p.Name + " ("
	for i, k := range names {
		if i > 0 {
			s += ", "
		}
		s += p.attrs[k]
	}
	return s + ")"
}

// Catalog is the set of piece types available in a game, together with the
// closed list of attribute names every piece must declare.
type Catalog struct {
	attributes []string
	pieces     []PieceType
	byID       map[string]int
}

// NewCatalog validates pieces against the declared attribute names.
// Every piece must carry exactly the declared attributes, and IDs must be unique.
func NewCatalog(attributes []string, pieces []PieceType) (*Catalog, error) {
	declared := make(map[string]bool, len(attributes))
	for _, a := range attributes {
		if declared[a] {
			return nil, fmt.Errorf("catalog: duplicate attribute %q", a)
		}
		declared[a] = true
	}

	cat := &Catalog{
		attributes: append([]string(nil), attributes...),
		pieces:     make([]PieceType, 0, len(pieces)),
		byID:       make(map[string]int, len(pieces)),
	}
	sort.Strings(cat.attributes)

	for _, p := range pieces {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: piece %q has no id", p.Name)
		}
		if _, dup := cat.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate piece id %q", p.ID)
		}
		for a := range p.attrs {
			if !declared[a] {
				return nil, fmt.Errorf("catalog: piece %q has undeclared attribute %q", p.ID, a)
			}
		}
		for _, a := range cat.attributes {
			if _, ok := p.attrs[a]; !ok {
				return nil, fmt.Errorf("catalog: piece %q is missing attribute %q", p.ID, a)
			}
		}
		cat.byID[p.ID] = len(cat.pieces)
		cat.pieces = append(cat.pieces, p)
	}

	return cat, nil
}

// Attributes returns the declared attribute names, sorted.
func (c *Catalog) Attributes() []string {
	return append([]string(nil), c.attributes...)
}

// Pieces returns the piece types in declaration order.
func (c *Catalog) Pieces() []PieceType {
	return append([]PieceType(nil), c.pieces...)
}

// Len returns the number of piece types.
func (c *Catalog) Len() int {
	return len(c.pieces)
}

// Lookup returns the piece type with the given ID.
func (c *Catalog) Lookup(id string) (PieceType, error) {
	i, ok := c.byID[id]
	if !ok {
		return PieceType{}, fmt.Errorf("piece %q: %w", id, ErrUnknownPieceType)
	}
	return c.pieces[i], nil
}

// At returns the piece type at the given catalog index.
func (c *Catalog) At(index int) (PieceType, error) {
	if index < 0 || index >= len(c.pieces) {
		return PieceType{}, fmt.Errorf("piece index %d: %w", index, ErrUnknownPieceType)
	}
	return c.pieces[index], nil
}

// AttributeDomains returns, for each declared attribute, the sorted set of
// values observed across the catalog.
func (c *Catalog) AttributeDomains() map[string][]string {
	domains := make(map[string][]string, len(c.attributes))
	for _, a := range c.attributes {
		seen := make(map[string]bool)
		values := make([]string, 0)
		for _, p := range c.pieces {
			v := p.attrs[a]
			if !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}
		sort.Strings(values)
		domains[a] = values
	}
	return domains
}

// DefaultCatalog returns the standard flower set.
func DefaultCatalog() *Catalog {
	flower := func(id, name, color, size string) PieceType {
		return NewPieceType(id, name, CategoryFlower, map[string]string{"color": color, "size": size})
	}
	pieces := []PieceType{
		flower("rose", "Rose", "red", "small"),
		flower("tulip", "Tulip", "yellow", "medium"),
		flower("daisy", "Daisy", "white", "small"),
		flower("sunflower", "Sunflower", "yellow", "large"),
		flower("lavender", "Lavender", "purple", "small"),
		flower("crimson_rose", "Crimson Rose", "red", "medium"),
		NewPieceType("white_lily", "White Lily", CategorySpecialty,
			map[string]string{"color": "white", "size": "large"}),
	}
	cat, err := NewCatalog([]string{"color", "size"}, pieces)
	if err != nil {
		panic(err) // static data
	}
	return cat
}
