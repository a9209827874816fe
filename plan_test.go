package evolve

import (
	"reflect"
	"testing"
)

// planSummary flattens a plan into strings for readable comparisons.
func planSummary(plan []PlannedStep) []string {
	var out []string
	for _, ps := range plan {
		kind := "step:" + ps.Step.SQL
		if ps.CreateTable {
			kind = "create"
		}
		out = append(out, ps.TableName+"@"+ps.Version.String()+" "+kind)
	}
	return out
}

func TestPlanEmptyRegistry(t *testing.T) {
	s := NewVersionedSchema(V(1, 0, 0))
	if plan := s.Plan(nil); len(plan) != 0 {
		t.Fatalf("expected empty plan, got %v", planSummary(plan))
	}
}

func TestPlanPersistedAtOrAboveTarget(t *testing.T) {
	s := NewVersionedSchema(V(1, 0, 0))
	if _, err := s.Declare("users", userFields(), Since(V(1, 0, 0))); err != nil {
		t.Fatalf("Declare failed: %v", err)
	}
	if plan := s.Plan(V(1, 0, 0)); len(plan) != 0 {
		t.Fatalf("persisted == target: expected empty plan, got %v", planSummary(plan))
	}
	if plan := s.Plan(V(2, 0, 0)); len(plan) != 0 {
		t.Fatalf("persisted > target: expected empty plan, got %v", planSummary(plan))
	}
}

// The window is strict below, inclusive above: persisted < v <= target.
func TestPlanVersionWindow(t *testing.T) {
	s := NewVersionedSchema(V(3, 0, 0))
	_, err := s.Declare("users", userFields(),
		Since(V(1, 0, 0)),
		Migrate(V(2, 0, 0), Exec("m2")),
		Migrate(V(3, 0, 0), Exec("m3")),
		Migrate(V(4, 0, 0), Exec("m4")), // above target, must never run
	)
	if err != nil {
		t.Fatalf("Declare failed: %v", err)
	}

	got := planSummary(s.Plan(V(1, 0, 0)))
	want := []string{
		"users@2.0.0 step:m2",
		"users@3.0.0 step:m3",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("plan = %v, want %v", got, want)
	}
}

// A persisted version above every declared key but below the target plans
// nothing: pending work is driven by actual since/migration keys, never by
// the target alone.
func TestPlanNothingPendingBelowTarget(t *testing.T) {
	s := NewVersionedSchema(V(5, 0, 0))
	_, err := s.Declare("users", userFields(),
		Since(V(1, 0, 0)),
		Migrate(V(2, 0, 0), Exec("m2")),
	)
	if err != nil {
		t.Fatalf("Declare failed: %v", err)
	}
	if plan := s.Plan(V(3, 0, 0)); len(plan) != 0 {
		t.Fatalf("expected empty plan, got %v", planSummary(plan))
	}
}

// Versions are the outer sort key and declaration order the tie-break, so
// a revision spanning tables lands as one contiguous block.
func TestPlanCrossTableInterleaving(t *testing.T) {
	s := NewVersionedSchema(V(1, 2, 0))
	_, err := s.Declare("a", userFields(),
		Since(V(1, 0, 0)),
		Migrate(V(1, 2, 0), Exec("a-alter")),
	)
	if err != nil {
		t.Fatalf("Declare a failed: %v", err)
	}
	_, err = s.Declare("b", userFields(), Since(V(1, 2, 0)))
	if err != nil {
		t.Fatalf("Declare b failed: %v", err)
	}

	got := planSummary(s.Plan(nil))
	want := []string{
		"a@1.0.0 create",
		"a@1.2.0 step:a-alter", // a declared first, so its work leads within 1.2.0
		"b@1.2.0 create",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("plan = %v, want %v", got, want)
	}
}

func TestPlanDeterminism(t *testing.T) {
	s := NewVersionedSchema(V(2, 0, 0))
	_, err := s.Declare("a", userFields(),
		Since(V(1, 0, 0)),
		Migrate(V(1, 5, 0), Exec("a1"), Exec("a2")),
	)
	if err != nil {
		t.Fatalf("Declare a failed: %v", err)
	}
	_, err = s.Declare("b", userFields(),
		Since(V(1, 5, 0)),
		Migrate(V(2, 0, 0), Exec("b1")),
	)
	if err != nil {
		t.Fatalf("Declare b failed: %v", err)
	}

	first := planSummary(s.Plan(V(0, 9)))
	second := planSummary(s.Plan(V(0, 9)))
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("plan not deterministic:\n%v\n%v", first, second)
	}
}

// Steps declared for one version run in their declared order, after the
// table's create when both land in the same plan.
func TestPlanStepOrderWithinVersion(t *testing.T) {
	s := NewVersionedSchema(V(2, 0, 0))
	_, err := s.Declare("users", userFields(),
		Since(V(1, 0, 0)),
		Migrate(V(2, 0, 0), Exec("one"), Exec("two"), Exec("three")),
	)
	if err != nil {
		t.Fatalf("Declare failed: %v", err)
	}
	got := planSummary(s.Plan(nil))
	want := []string{
		"users@1.0.0 create",
		"users@2.0.0 step:one",
		"users@2.0.0 step:two",
		"users@2.0.0 step:three",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("plan = %v, want %v", got, want)
	}
}

func TestPlanStaticSchemaIsEmpty(t *testing.T) {
	s := NewSchema()
	if _, err := s.Declare("users", userFields()); err != nil {
		t.Fatalf("Declare failed: %v", err)
	}
	if plan := s.Plan(nil); plan != nil {
		t.Fatalf("static schema plan = %v, want nil", planSummary(plan))
	}
}
