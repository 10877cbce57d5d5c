package engine

import "github.com/terminal-bench/truckconfig/internal/models"

// Hierarchy nests a model's options as System -> Subsystem -> ComponentGroup.
// Option order within each group is preserved as received; callers pre-sort
// (the catalog store orders by cost ascending).
type Hierarchy map[string]SystemNode

// SystemNode groups a system's subsystems.
type SystemNode struct {
	Subsystems map[string]SubsystemNode `json:"subsystems"`
}

// SubsystemNode groups a subsystem's component groups.
type SubsystemNode struct {
	ComponentGroups map[string][]models.Option `json:"componentGroups"`
}

// BuildHierarchy groups a flat option list into the nested hierarchy. It is
// a pure transformation and performs no validation: an option with an empty
// classification field lands under an empty-string key, so callers guarantee
// non-empty classification upstream.
func BuildHierarchy(options []models.Option) Hierarchy {
	h := make(Hierarchy)
	for _, opt := range options {
		sys, ok := h[opt.System]
		if !ok {
			sys = SystemNode{Subsystems: make(map[string]SubsystemNode)}
			h[opt.System] = sys
		}
		sub, ok := sys.Subsystems[opt.Subsystem]
		if !ok {
			sub = SubsystemNode{ComponentGroups: make(map[string][]models.Option)}
			sys.Subsystems[opt.Subsystem] = sub
		}
		sub.ComponentGroups[opt.ComponentGroup] = append(sub.ComponentGroups[opt.ComponentGroup], opt)
	}
	return h
}
