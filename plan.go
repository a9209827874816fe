package evolve

import "sort"

// PlannedStep is one executable unit of a migration plan: either the
// synthesized creation of a table at its introduction version, or one of
// the table's declared steps.
type PlannedStep struct {
	TableName string
	Version   Version

	// CreateTable marks the synthesized introduction step; Step is unused
	// when it is set and the executor renders dialect DDL from the table
	// descriptor instead.
	CreateTable bool
	Step        Step

	table *Table
}

// Plan computes the ordered step sequence that advances a database at
// persisted to the schema's target version. It is pure: identical inputs
// yield identical plans, and nothing is read from or written to the
// database.
//
// Versions are the outer sort key, so a revision spanning several tables
// lands as one contiguous block before anything newer. Within one version
// tables contribute in registration order, each first its CREATE TABLE
// (when the version is its introduction) and then its declared steps.
// Only versions v with persisted < v <= target run; the target is a hard
// upper bound, never a source of work by itself.
func (s *Schema) Plan(persisted Version) []PlannedStep {
	s.freeze()
	if !s.versioned || s.target.Compare(persisted) <= 0 {
		return nil
	}

	pending := pendingVersions(s, persisted)

	var plan []PlannedStep
	for _, v := range pending {
		for _, t := range s.tables {
			if t.Since.Equal(v) {
				plan = append(plan, PlannedStep{
					TableName:   t.Name,
					Version:     v,
					CreateTable: true,
					table:       t,
				})
			}
			for _, step := range t.StepsAt(v) {
				plan = append(plan, PlannedStep{
					TableName: t.Name,
					Version:   v,
					Step:      step,
					table:     t,
				})
			}
		}
	}
	return plan
}

// pendingVersions gathers every interesting version (table introductions
// and migration keys) inside the (persisted, target] window, deduplicated
// and sorted ascending.
func pendingVersions(s *Schema, persisted Version) []Version {
	var candidates []Version
	for _, t := range s.tables {
		candidates = append(candidates, t.Since)
		candidates = append(candidates, t.MigrationVersions()...)
	}

	var pending []Version
	for _, v := range candidates {
		if persisted.Compare(v) >= 0 || v.Compare(s.target) > 0 {
			continue
		}
		dup := false
		for _, p := range pending {
			if p.Equal(v) {
				dup = true
				break
			}
		}
		if !dup {
			pending = append(pending, v)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Less(pending[j]) })
	return pending
}
