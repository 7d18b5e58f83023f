package material

import (
	"errors"
	"fmt"
)

// Catalog and species errors.
var (
	// ErrDuplicateSpecies indicates a definition reuses an existing name.
	ErrDuplicateSpecies = errors.New("material: duplicate species name")

	// ErrIndexConflict indicates a definition index is not the next contiguous index.
	ErrIndexConflict = errors.New("material: species index is not contiguous")

	// ErrMissingConstant indicates a definition omits a constant its role requires.
	ErrMissingConstant = errors.New("material: required constant missing")

	// ErrInvalidConstant indicates a constant failed validation.
	ErrInvalidConstant = errors.New("material: invalid constant")

	// ErrRoleConflict indicates a species declared both solute and solvent.
	ErrRoleConflict = errors.New("material: species cannot be both solute and solvent")

	// ErrUnsetConstant indicates a read of an optional constant that was never set.
	ErrUnsetConstant = errors.New("material: constant not set")

	// ErrUnknownSpecies indicates a lookup of a name absent from the catalog.
	ErrUnknownSpecies = errors.New("material: unknown species")

	// ErrNotDissociable indicates the species declares no dissociation products.
	ErrNotDissociable = errors.New("material: species does not dissociate")
)

// DefinitionError wraps a catalog error with the species and field involved.
type DefinitionError struct {
	Species string
	Field   string
	Wrapped error
}

func (e *DefinitionError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Species, e.Wrapped)
	}
	return fmt.Sprintf("%s.%s: %v", e.Species, e.Field, e.Wrapped)
}

func (e *DefinitionError) Unwrap() error {
	return e.Wrapped
}
