package engine

import (
	"sort"

	"github.com/terminal-bench/truckconfig/internal/models"
)

// Catalog is an indexed, read-only view of one model's options. Engine
// operations take a Catalog rather than reaching into any ambient store.
type Catalog struct {
	options []models.Option
	byID    map[string]models.Option
	byGroup map[models.GroupKey][]models.Option
}

// NewCatalog indexes a flat option list, preserving input order per group.
func NewCatalog(options []models.Option) *Catalog {
	c := &Catalog{
		options: options,
		byID:    make(map[string]models.Option, len(options)),
		byGroup: make(map[models.GroupKey][]models.Option),
	}
	for _, opt := range options {
		c.byID[opt.ID] = opt
		key := opt.GroupKey()
		c.byGroup[key] = append(c.byGroup[key], opt)
	}
	return c
}

// Option looks up an option by id.
func (c *Catalog) Option(id string) (models.Option, bool) {
	opt, ok := c.byID[id]
	return opt, ok
}

// GroupOptions returns the options selectable for one triple, in input order.
func (c *Catalog) GroupOptions(key models.GroupKey) []models.Option {
	return c.byGroup[key]
}

// Options returns the full option list in input order.
func (c *Catalog) Options() []models.Option {
	return c.options
}

// Selection is one configuration in progress: the chosen option id per
// (system, subsystem, componentGroup) triple. The triple is the uniqueness
// key; assigning an option always displaces whatever its own triple held, so
// the at-most-one-per-triple invariant holds by construction.
type Selection struct {
	catalog *Catalog
	chosen  map[models.GroupKey]string
}

// NewSelection builds a selection from an option id list. Ids unknown to the
// catalog are dropped; when the list names two options in the same triple,
// the later one wins.
func NewSelection(catalog *Catalog, optionIDs []string) *Selection {
	s := &Selection{
		catalog: catalog,
		chosen:  make(map[models.GroupKey]string),
	}
	for _, id := range optionIDs {
		if opt, ok := catalog.Option(id); ok {
			s.chosen[opt.GroupKey()] = id
		}
	}
	return s
}

// Len returns the number of selected options.
func (s *Selection) Len() int {
	return len(s.chosen)
}

// Contains reports whether the option id is currently selected.
func (s *Selection) Contains(optionID string) bool {
	opt, ok := s.catalog.Option(optionID)
	if !ok {
		return false
	}
	return s.chosen[opt.GroupKey()] == optionID
}

// SelectedForGroup returns the option id chosen for a triple, if any.
func (s *Selection) SelectedForGroup(key models.GroupKey) (string, bool) {
	id, ok := s.chosen[key]
	return id, ok
}

// OptionIDs returns the selected ids in a deterministic order.
func (s *Selection) OptionIDs() []string {
	ids := make([]string, 0, len(s.chosen))
	for _, id := range s.chosen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Toggle applies the configurator click semantics to an option. Clicking an
// option that is not the triple's active choice selects it, displacing the
// previous choice. Clicking the active option reverts the triple to its
// zero-cost base option when one exists and differs from the clicked one;
// otherwise the triple becomes unselected.
func (s *Selection) Toggle(optionID string) error {
	opt, ok := s.catalog.Option(optionID)
	if !ok {
		return &NotFoundError{Kind: "option", ID: optionID}
	}
	key := opt.GroupKey()

	if s.chosen[key] != optionID {
		s.chosen[key] = optionID
		return nil
	}

	for _, candidate := range s.catalog.GroupOptions(key) {
		if candidate.Cost == 0 && candidate.ID != optionID {
			s.chosen[key] = candidate.ID
			return nil
		}
	}
	delete(s.chosen, key)
	return nil
}

// Apply swaps the fix plan's removals for its additions, leaving other
// triples untouched. The result should be re-validated: an added option can
// itself be the linked option of further rules.
func (s *Selection) Apply(plan *models.FixPlan) {
	for _, id := range plan.Remove {
		if opt, ok := s.catalog.Option(id); ok {
			key := opt.GroupKey()
			if s.chosen[key] == id {
				delete(s.chosen, key)
			}
		}
	}
	for _, id := range plan.Add {
		if opt, ok := s.catalog.Option(id); ok {
			s.chosen[opt.GroupKey()] = id
		}
	}
}
