package xbrl

import "fmt"

// Result is the outcome of a structural validation pass. Errors are
// advisory: callers may serialize the instance regardless.
type Result struct {
	Valid  bool     `json:"isValid"`
	Errors []string `json:"errors"`
}

// Validate checks the cross-referential integrity of a built instance:
// every fact's context reference resolves, every unit reference (when
// present) resolves, and context ids are unique. It is read-only and
// never modifies the instance.
func Validate(inst *Instance) Result {
	var errs []string

	if len(inst.Contexts) == 0 {
		errs = append(errs, "at least one context is required")
	}

	contextIDs := make(map[string]int, len(inst.Contexts))
	for _, ctx := range inst.Contexts {
		contextIDs[ctx.ID]++
	}
	for id, count := range contextIDs {
		if count > 1 {
			errs = append(errs, fmt.Sprintf("duplicate context ID: %s", id))
		}
	}

	unitIDs := make(map[string]bool, len(inst.Units))
	for _, unit := range inst.Units {
		unitIDs[unit.ID] = true
	}

	for _, fact := range inst.Facts {
		if _, ok := contextIDs[fact.ContextRef]; !ok {
			errs = append(errs, fmt.Sprintf("fact %s references non-existent context %s", fact.Tag(), fact.ContextRef))
		}
		if fact.UnitRef != "" && !unitIDs[fact.UnitRef] {
			errs = append(errs, fmt.Sprintf("fact %s references non-existent unit %s", fact.Tag(), fact.UnitRef))
		}
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}
