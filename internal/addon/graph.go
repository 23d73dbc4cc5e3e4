package addon

// mergeDependencies builds the dependency map for ordering: each addon's
// inline DependsOn list unioned with every external declaration naming it.
// Duplicate edges are tolerated; the DFS marks nodes done after the first
// visit.
func mergeDependencies(addons []Spec, deps []Dependency) map[string][]string {
	merged := make(map[string][]string, len(addons))
	for _, a := range addons {
		if len(a.DependsOn) > 0 {
			merged[a.Name] = append(merged[a.Name], a.DependsOn...)
		}
	}
	for _, d := range deps {
		if len(d.DependsOn) > 0 {
			merged[d.Addon] = append(merged[d.Addon], d.DependsOn...)
		}
	}
	return merged
}

// DFS colors: a node is unvisited, on the current stack, or finished.
const (
	colorWhite = iota
	colorGray
	colorBlack
)

// resolveOrder computes a total deployment order over all addon names,
// enabled or not, such that dependencies precede their dependents.
//
// The traversal is a depth-first walk in the input declaration order with
// post-order appends, so addons without relative constraints keep their
// declared order and the result is deterministic for a fixed input.
// Dependency references that do not exist in the set are skipped; a node
// reached while still on the stack is a cycle and aborts resolution.
func resolveOrder(addons []Spec, merged map[string][]string) ([]string, error) {
	inSet := make(map[string]bool, len(addons))
	for _, a := range addons {
		inSet[a.Name] = true
	}

	color := make(map[string]int, len(addons))
	order := make([]string, 0, len(addons))

	var visit func(name string) error
	visit = func(name string) error {
		switch color[name] {
		case colorBlack:
			return nil
		case colorGray:
			return &CycleError{Addon: name}
		}
		color[name] = colorGray
		for _, dep := range merged[name] {
			if !inSet[dep] {
				continue
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		color[name] = colorBlack
		order = append(order, name)
		return nil
	}

	for _, a := range addons {
		if err := visit(a.Name); err != nil {
			return nil, err
		}
	}
	return order, nil
}
