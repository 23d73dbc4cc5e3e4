package addon

import (
	"fmt"
	"strings"
)

// DuplicateNameError reports addon names that appear more than once in the
// input set. Names holds every duplicated name, each listed once.
type DuplicateNameError struct {
	Names []string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate addon names: %s", strings.Join(e.Names, ", "))
}

// SchemaError reports a missing or invalid required field on one addon.
// Addon is the addon name when known; Index locates the entry in the input
// when the name itself is missing.
type SchemaError struct {
	Addon  string
	Index  int
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Addon == "" {
		return fmt.Sprintf("addon at index %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("addon %q: %s", e.Addon, e.Reason)
}

// UnknownDependencyError reports a dependency declaration referencing a name
// absent from the addon set.
type UnknownDependencyError struct {
	// Addon is the owner of the declaration.
	Addon string

	// Missing is the unresolved name. Equal to Addon when the declaration
	// itself names an unknown addon.
	Missing string
}

func (e *UnknownDependencyError) Error() string {
	if e.Addon == e.Missing {
		return fmt.Sprintf("dependency declared for unknown addon %q", e.Addon)
	}
	return fmt.Sprintf("addon %q depends on unknown addon %q", e.Addon, e.Missing)
}

// CycleError reports a dependency cycle. Addon is the name at which the
// cycle was detected.
type CycleError struct {
	Addon string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected at addon %q", e.Addon)
}
