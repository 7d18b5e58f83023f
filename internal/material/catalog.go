package material

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Catalog is a registry of species keyed by name, ordered by index.
type Catalog struct {
	byName   map[string]*Species
	ordered  []*Species
	validate *validator.Validate
}

func NewCatalog() *Catalog {
	return &Catalog{
		byName:   make(map[string]*Species),
		ordered:  make([]*Species, 0),
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Define validates d and registers it. The index must be the next
// contiguous index in the catalog.
func (c *Catalog) Define(d Definition) (*Species, error) {
	if err := c.check(d); err != nil {
		return nil, err
	}
	s := newSpecies(d)
	c.byName[s.name] = s
	c.ordered = append(c.ordered, s)
	return s, nil
}

func (c *Catalog) check(d Definition) error {
	if err := c.validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &DefinitionError{
				Species: d.Name,
				Field:   verrs[0].Namespace(),
				Wrapped: fmt.Errorf("%w: failed %q", ErrInvalidConstant, verrs[0].Tag()),
			}
		}
		return &DefinitionError{Species: d.Name, Wrapped: err}
	}
	if _, ok := c.byName[d.Name]; ok {
		return &DefinitionError{Species: d.Name, Wrapped: ErrDuplicateSpecies}
	}
	if d.Index != len(c.ordered) {
		return &DefinitionError{
			Species: d.Name,
			Field:   "index",
			Wrapped: fmt.Errorf("%w: got %d, want %d", ErrIndexConflict, d.Index, len(c.ordered)),
		}
	}
	if d.Solute && d.Solvent {
		return &DefinitionError{Species: d.Name, Wrapped: ErrRoleConflict}
	}
	if d.Volatile && d.BoilingPoint == nil {
		return &DefinitionError{Species: d.Name, Field: "boiling_point", Wrapped: ErrMissingConstant}
	}
	return nil
}

func (c *Catalog) mustDefine(d Definition) {
	if _, err := c.Define(d); err != nil {
		panic(err)
	}
}

// Verify checks that every dissociation fragment names a species in the catalog.
func (c *Catalog) Verify() error {
	for _, s := range c.ordered {
		for _, f := range s.dissociation {
			if _, ok := c.byName[f.Species]; !ok {
				return &DefinitionError{
					Species: s.name,
					Field:   "dissociation",
					Wrapped: fmt.Errorf("%w: %s", ErrUnknownSpecies, f.Species),
				}
			}
		}
	}
	return nil
}

func (c *Catalog) Len() int { return len(c.ordered) }

// Lookup returns the species registered under name.
func (c *Catalog) Lookup(name string) (*Species, error) {
	s, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSpecies, name)
	}
	return s, nil
}

// ByIndex returns the species at catalog index i.
func (c *Catalog) ByIndex(i int) (*Species, error) {
	if i < 0 || i >= len(c.ordered) {
		return nil, fmt.Errorf("%w: index %d", ErrUnknownSpecies, i)
	}
	return c.ordered[i], nil
}

// Enumerate returns every registered species keyed by name.
func (c *Catalog) Enumerate() map[string]*Species {
	out := make(map[string]*Species, len(c.byName))
	for k, v := range c.byName {
		out[k] = v
	}
	return out
}

// Names lists species names in index order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.ordered))
	for i, s := range c.ordered {
		names[i] = s.name
	}
	return names
}

// New creates a fresh instance of the named species.
func (c *Catalog) New(name string) (*Material, error) {
	s, err := c.Lookup(name)
	if err != nil {
		return nil, err
	}
	return NewMaterial(s), nil
}
