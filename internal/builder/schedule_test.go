package builder

import (
	"testing"
	"time"
)

func stepIDs(b *ScheduleBuilder) []string {
	steps := b.Schedule().Steps
	ids := make([]string, len(steps))
	for i, s := range steps {
		ids[i] = s.SymbolID
	}
	return ids
}

func TestScheduleReorder(t *testing.T) {
	b := NewScheduleBuilder("Morning")
	for _, id := range []string{"routine-wake-up", "routine-brush", "routine-uniform"} {
		if err := b.AddStep(id); err != nil {
			t.Fatalf("AddStep(%s): %v", id, err)
		}
	}

	b.MoveUp(2)
	got := stepIDs(b)
	want := []string{"routine-wake-up", "routine-uniform", "routine-brush"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after MoveUp(2): step %d = %s, want %s", i, got[i], want[i])
		}
	}

	b.MoveDown(0)
	got = stepIDs(b)
	want = []string{"routine-uniform", "routine-wake-up", "routine-brush"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("after MoveDown(0): step %d = %s, want %s", i, got[i], want[i])
		}
	}

	// Order fields track positions.
	for i, step := range b.Schedule().Steps {
		if step.Order != i {
			t.Errorf("step %d has order %d", i, step.Order)
		}
	}
}

func TestScheduleOutOfRangeMovesAreNoOps(t *testing.T) {
	b := NewScheduleBuilder("Morning")
	for _, id := range []string{"routine-wake-up", "routine-brush"} {
		if err := b.AddStep(id); err != nil {
			t.Fatalf("AddStep: %v", err)
		}
	}

	before := stepIDs(b)
	b.MoveUp(0)     // first step up
	b.MoveDown(1)   // last step down
	b.MoveUp(-1)    // nonsense indexes
	b.MoveDown(99)
	after := stepIDs(b)

	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("step order changed by out-of-range move: %v -> %v", before, after)
		}
	}
}

func TestScheduleRemoveStepRenumbers(t *testing.T) {
	b := NewScheduleBuilder("Morning")
	for _, id := range []string{"routine-wake-up", "routine-brush", "routine-uniform"} {
		if err := b.AddStep(id); err != nil {
			t.Fatalf("AddStep: %v", err)
		}
	}

	if err := b.RemoveStep(1); err != nil {
		t.Fatalf("RemoveStep: %v", err)
	}

	steps := b.Schedule().Steps
	if len(steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(steps))
	}
	if steps[0].SymbolID != "routine-wake-up" || steps[1].SymbolID != "routine-uniform" {
		t.Errorf("unexpected steps after remove: %s, %s", steps[0].SymbolID, steps[1].SymbolID)
	}
	if steps[0].Order != 0 || steps[1].Order != 1 {
		t.Errorf("orders not renumbered: %d, %d", steps[0].Order, steps[1].Order)
	}
}

func TestScheduleStepDefaultsLabel(t *testing.T) {
	b := NewScheduleBuilder("Morning")
	if err := b.AddStep("routine-brush"); err != nil {
		t.Fatalf("AddStep: %v", err)
	}
	if got := b.Schedule().Steps[0].Label; got != "Brush Teeth" {
		t.Errorf("label = %q, want Brush Teeth", got)
	}
}

func TestScheduleFinalizeRequiresSteps(t *testing.T) {
	b := NewScheduleBuilder("Morning")
	if _, err := b.Finalize(time.Now()); err == nil {
		t.Fatal("expected error for empty schedule")
	}

	if err := b.AddStep("routine-wake-up"); err != nil {
		t.Fatalf("AddStep: %v", err)
	}
	if _, err := b.Finalize(time.Now()); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
}

func TestScheduleUnknownSymbolRejected(t *testing.T) {
	b := NewScheduleBuilder("Morning")
	if err := b.AddStep("not-a-symbol"); err == nil {
		t.Fatal("expected error for unknown symbol")
	}
}
