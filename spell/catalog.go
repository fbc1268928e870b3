package spell

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// catalogFile is the YAML document layout
type catalogFile struct {
	Spells []*Descriptor `yaml:"spells"`
}

// Catalog is the loaded, immutable spell table
type Catalog struct {
	spells []*Descriptor // Index = ID-1
	byName map[string]*Descriptor
}

// LoadCatalog decodes a YAML catalog, rejecting unknown fields
// IDs follow document order starting at 1
func LoadCatalog(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f catalogFile
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("catalog: empty document")
		}
		return nil, fmt.Errorf("catalog: %w", err)
	}

	c := &Catalog{
		spells: make([]*Descriptor, 0, len(f.Spells)),
		byName: make(map[string]*Descriptor, len(f.Spells)),
	}
	for i, d := range f.Spells {
		if d == nil {
			return nil, fmt.Errorf("catalog: entry %d: %w: empty entry", i+1, ErrInvalidSpell)
		}
		d.applyDefaults()
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("catalog: entry %d: %w", i+1, err)
		}
		key := strings.ToLower(d.Name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("catalog: %w: %s", ErrDuplicateSpell, d.Name)
		}
		d.ID = ID(len(c.spells) + 1)
		c.spells = append(c.spells, d)
		c.byName[key] = d
	}
	return c, nil
}

// LoadCatalogFile reads a catalog from path
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// DefaultCatalog returns the built-in spell table
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(bytes.NewReader(defaultCatalog))
}

// ByID returns the spell with id
func (c *Catalog) ByID(id ID) (*Descriptor, error) {
	if id < 1 || int(id) > len(c.spells) {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownSpell, id)
	}
	return c.spells[id-1], nil
}

// Lookup finds a spell by name, ignoring case and surrounding space
// Used for voice and text selection
func (c *Catalog) Lookup(name string) (*Descriptor, error) {
	if d, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSpell, name)
}

// All returns spells in ID order
func (c *Catalog) All() []*Descriptor {
	out := make([]*Descriptor, len(c.spells))
	copy(out, c.spells)
	return out
}

// Len returns the number of spells
func (c *Catalog) Len() int {
	return len(c.spells)
}
