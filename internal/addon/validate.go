package addon

import (
	"errors"
	"fmt"
)

// validate rejects malformed inputs before any side effect occurs. Checks
// run in three stages, each aborting on failure: duplicate names, per-addon
// structural checks, then referential integrity of external dependency
// declarations. Within a stage every violation is collected so one run
// reports everything there is to fix.
func validate(addons []Spec, deps []Dependency) error {
	if err := checkDuplicates(addons); err != nil {
		return err
	}
	if err := checkSchemas(addons); err != nil {
		return err
	}
	return checkDependencyReferences(addons, deps)
}

func checkDuplicates(addons []Spec) error {
	counts := make(map[string]int, len(addons))
	for _, a := range addons {
		counts[a.Name]++
	}

	var dups []string
	seen := make(map[string]bool)
	for _, a := range addons {
		if counts[a.Name] > 1 && a.Name != "" && !seen[a.Name] {
			dups = append(dups, a.Name)
			seen[a.Name] = true
		}
	}
	if len(dups) > 0 {
		return &DuplicateNameError{Names: dups}
	}
	return nil
}

// checkSchemas evaluates every structural check on every addon
// independently; nothing short-circuits across addons.
func checkSchemas(addons []Spec) error {
	var errs []error
	for i, a := range addons {
		if a.Name == "" {
			errs = append(errs, &SchemaError{Index: i, Reason: "missing name"})
		}
		if !knownMethods[a.method()] {
			errs = append(errs, &SchemaError{Addon: a.Name, Index: i,
				Reason: fmt.Sprintf("unknown deployment method %q", a.Method)})
		}
		if a.method() == MethodHelm && a.Helm == nil {
			errs = append(errs, &SchemaError{Addon: a.Name, Index: i,
				Reason: "helm deployment requires a helm chart configuration"})
		}
		if a.Helm != nil && a.Helm.Chart == "" {
			errs = append(errs, &SchemaError{Addon: a.Name, Index: i,
				Reason: "helm configuration is missing the chart name"})
		}
		if sa := a.ServiceAccount; sa != nil {
			if sa.Name == "" {
				errs = append(errs, &SchemaError{Addon: a.Name, Index: i,
					Reason: "service account is missing a name"})
			}
			if sa.Namespace == "" {
				errs = append(errs, &SchemaError{Addon: a.Name, Index: i,
					Reason: "service account is missing a namespace"})
			}
		}
	}
	return errors.Join(errs...)
}

// checkDependencyReferences verifies that external dependency declarations
// only name addons present in the set. Inline DependsOn references are
// deliberately exempt: a spec may reference addons outside the current
// batch, and such edges are dropped during ordering instead.
func checkDependencyReferences(addons []Spec, deps []Dependency) error {
	names := make(map[string]bool, len(addons))
	for _, a := range addons {
		names[a.Name] = true
	}

	var errs []error
	for _, d := range deps {
		if !names[d.Addon] {
			errs = append(errs, &UnknownDependencyError{Addon: d.Addon, Missing: d.Addon})
		}
		for _, ref := range d.DependsOn {
			if !names[ref] {
				errs = append(errs, &UnknownDependencyError{Addon: d.Addon, Missing: ref})
			}
		}
	}
	return errors.Join(errs...)
}
