package gameplay

import (
	"reflect"
	"testing"
	"time"

	"github.com/tidwall/sjson"

	"wintercard/pkg/game/rooms"
	"wintercard/pkg/game/state"
)

func TestIntro_BeginNeedsLastPage(t *testing.T) {
	h := newHarness(t, testCat(t))
	if h.g.Begin() {
		t.Fatal("Begin() on page 1 = true")
	}
	if !h.g.NextPage() || h.g.NextPage() {
		t.Fatal("NextPage() did not stop at the last page")
	}
	if !h.g.Begin() {
		t.Fatal("Begin() on last page = false")
	}
	if got := h.g.Stage(); got != state.StageUnwrap {
		t.Errorf("Stage() = %q, want unwrap", got)
	}
}

func TestUnwrap_Threshold(t *testing.T) {
	h := newHarness(t, testCat(t))
	h.g.NextPage()
	h.g.Begin()
	if h.g.Unwrap() {
		t.Fatal("first tap opened the present")
	}
	if taps, need := h.g.UnwrapProgress(); taps != 1 || need != 2 {
		t.Errorf("UnwrapProgress() = %d, %d, want 1, 2", taps, need)
	}
	if !h.g.Unwrap() {
		t.Fatal("second tap did not open the present")
	}
	if e, ok := h.last(EventRoomEntered); !ok || e.Room != "room1" {
		t.Errorf("roomEntered = %+v, %v", e, ok)
	}
}

func TestUnwrap_ReduceMotionOneTap(t *testing.T) {
	h := newHarness(t, testCat(t))
	h.g.ToggleReduceMotion()
	h.g.NextPage()
	h.g.Begin()
	if !h.g.Unwrap() {
		t.Fatal("Unwrap() with reduce motion needs more than one tap")
	}
	h.g.ToggleReduceMotion()
	reloaded := newHarnessOn(t, h.cat, h.backend)
	if got := reloaded.g.Stage(); got != state.StagePuzzles {
		t.Errorf("reloaded Stage() = %q, want puzzles", got)
	}
}

func TestHold_AutoAdvance(t *testing.T) {
	h := newHarness(t, testCat(t))
	h.toPuzzles(t)
	if got := h.g.Confirm(); got != OutcomeCorrect {
		t.Fatalf("Confirm() = %v, want correct", got)
	}
	if !h.g.View().Holding {
		t.Error("View().Holding = false during the hold")
	}
	h.clock.Advance(2999 * time.Millisecond)
	if h.current() != "room1" {
		t.Fatalf("advanced before the hold ended")
	}
	h.clock.Advance(time.Millisecond)
	if h.current() != "room2" {
		t.Errorf("current = %s, want room2", h.current())
	}
}

func TestHold_ReduceMotionShortens(t *testing.T) {
	h := newHarness(t, testCat(t))
	h.g.ToggleReduceMotion()
	h.toPuzzles(t)
	h.g.Confirm()
	h.clock.Advance(500 * time.Millisecond)
	if h.current() != "room2" {
		t.Errorf("current = %s, want room2", h.current())
	}
}

func TestHold_IgnoresInputWhileHolding(t *testing.T) {
	h := newHarness(t, testCat(t))
	h.toPuzzles(t)
	h.g.Confirm()
	if got := h.g.Confirm(); got != OutcomeIgnored {
		t.Errorf("second Confirm() = %v, want ignored", got)
	}
	h.g.Continue()
	h.g.Submit("snow")
	if got := h.g.Submit("snow"); got != OutcomeIgnored {
		t.Errorf("double submit = %v, want ignored", got)
	}
	h.clock.Advance(time.Minute)
	if h.current() != "room3" {
		t.Errorf("current = %s, want room3", h.current())
	}
}

func TestContinue_CancelsTimer(t *testing.T) {
	h := newHarness(t, testCat(t))
	h.toPuzzles(t)
	entered := h.count(EventRoomEntered)
	h.g.Confirm()
	if !h.g.Continue() {
		t.Fatal("Continue() = false during the hold")
	}
	if h.current() != "room2" {
		t.Fatalf("current = %s, want room2", h.current())
	}
	if h.g.Continue() {
		t.Error("second Continue() = true")
	}
	h.clock.Advance(time.Minute)
	if h.current() != "room2" {
		t.Errorf("current = %s after the stale deadline, want room2", h.current())
	}
	if n := h.count(EventRoomEntered) - entered; n != 1 {
		t.Errorf("rooms entered = %d, want exactly 1", n)
	}
}

func TestPauseAfter_WaitsForContinue(t *testing.T) {
	h := newHarness(t, testCat(t))
	h.toPuzzles(t)
	h.g.Confirm()
	h.g.Continue()
	h.g.Submit("snow")
	h.g.Continue()
	h.g.Pick(1)
	h.clock.Advance(time.Hour)
	if h.current() != "room3" {
		t.Fatalf("pause room advanced on its own to %s", h.current())
	}
	if v := h.g.View(); !v.Paused {
		t.Error("View().Paused = false")
	}
	h.g.Continue()
	if h.current() != "room4" {
		t.Errorf("current = %s, want room4", h.current())
	}
}

func solveTestCard(t *testing.T, h *harness) {
	t.Helper()
	h.toPuzzles(t)
	steps := []func() Outcome{
		h.g.Confirm,
		func() Outcome { return h.g.Submit("Snow") },
		func() Outcome { return h.g.Pick(1) },
		func() Outcome { return h.g.Submit("END") },
	}
	for i, step := range steps {
		if got := step(); got != OutcomeCorrect {
			t.Fatalf("step %d = %v, want correct", i, got)
		}
		if i < len(steps)-1 {
			h.g.Continue()
		}
	}
}

func TestCelebration_AutoFinal(t *testing.T) {
	h := newHarness(t, testCat(t))
	solveTestCard(t, h)
	if got := h.g.Stage(); got != state.StageCelebration {
		t.Fatalf("Stage() = %q, want celebration", got)
	}
	e, ok := h.last(EventAllSolved)
	if !ok || e.Code != "AAAAA-BBBBB" {
		t.Errorf("allSolved = %+v, %v", e, ok)
	}
	h.clock.Advance(7 * time.Second)
	if got := h.g.Stage(); got != state.StageFinal {
		t.Errorf("Stage() = %q, want final", got)
	}
	if got := h.g.View().Code; got != "AAAAA-BBBBB" {
		t.Errorf("View().Code = %q", got)
	}
}

func TestCelebration_Skip(t *testing.T) {
	h := newHarness(t, testCat(t))
	solveTestCard(t, h)
	if !h.g.Skip() {
		t.Fatal("Skip() = false in celebration")
	}
	changes := h.count(EventStageChanged)
	h.clock.Advance(time.Minute)
	if got := h.g.Stage(); got != state.StageFinal {
		t.Errorf("Stage() = %q, want final", got)
	}
	if n := h.count(EventStageChanged); n != changes {
		t.Errorf("stale win timer changed the stage again")
	}
	if h.g.Skip() {
		t.Error("Skip() in final = true")
	}
}

func TestReset_RestoresDefaults(t *testing.T) {
	h := newHarness(t, testCat(t))
	h.toPuzzles(t)
	h.g.Confirm()
	h.g.Continue()
	h.g.Submit("snow")
	h.g.ToggleHighContrast()
	h.g.Reset()

	if got, want := h.g.Document(), state.Defaults(h.cat); !reflect.DeepEqual(got, want) {
		t.Errorf("Document() after reset = %+v, want defaults", got)
	}
	unlocked := h.g.UnlockedRooms()
	if unlocked.Size() != 1 || !unlocked.Has("room1") {
		t.Errorf("UnlockedRooms() size = %d, want only room1", unlocked.Size())
	}
	h.clock.Advance(time.Hour)
	if got := h.g.Stage(); got != state.StageIntro {
		t.Errorf("Stage() = %q after stale timers, want intro", got)
	}
	if got := h.store.Load(); !reflect.DeepEqual(got, state.Defaults(h.cat)) {
		t.Error("stored document is not the defaults")
	}
}

func TestScenario_SanitizeOnlyForcesFalse(t *testing.T) {
	h := newHarness(t, testCat(t))
	h.toPuzzles(t)
	h.g.MarkSolved("room1")
	if !h.g.UnlockedRooms().Has("room2") {
		t.Fatal("room2 not unlocked after solving room1")
	}
	if !h.g.TrySetCurrentRoom("room2") {
		t.Fatal("TrySetCurrentRoom(room2) = false")
	}
	if got := h.g.Submit("snow"); got != OutcomeCorrect {
		t.Fatalf("Submit(snow) = %v", got)
	}
	if !h.g.Document().FragmentsUnlocked["f1"] {
		t.Fatal("f1 not unlocked by room2")
	}

	raw, err := h.backend.Read(h.store.Key())
	if err != nil {
		t.Fatal(err)
	}
	raw, err = sjson.SetBytes(raw, "fragmentsUnlocked.f1", false)
	if err != nil {
		t.Fatal(err)
	}
	_ = h.backend.Write(h.store.Key(), raw)

	reloaded := newHarnessOn(t, h.cat, h.backend)
	doc := reloaded.g.Document()
	if doc.FragmentsUnlocked["f1"] {
		t.Error("f1 forced back to true")
	}
	if !doc.Solved["room2"] {
		t.Error("solved[room2] lost")
	}
}

func TestResume_AdvancesPastSolvedRoom(t *testing.T) {
	h := newHarness(t, testCat(t))
	h.toPuzzles(t)
	h.g.Confirm()

	reloaded := newHarnessOn(t, h.cat, h.backend)
	if got := reloaded.current(); got != "room2" {
		t.Errorf("resumed in %s, want room2", got)
	}
}

func TestResume_Celebration(t *testing.T) {
	h := newHarness(t, testCat(t))
	solveTestCard(t, h)

	reloaded := newHarnessOn(t, h.cat, h.backend)
	if got := reloaded.g.Stage(); got != state.StageCelebration {
		t.Fatalf("Stage() = %q, want celebration", got)
	}
	reloaded.clock.Advance(7 * time.Second)
	if got := reloaded.g.Stage(); got != state.StageFinal {
		t.Errorf("Stage() = %q, want final", got)
	}
}

func TestResume_TamperedStageFinal(t *testing.T) {
	h := newHarness(t, testCat(t))
	h.toPuzzles(t)
	raw, _ := h.backend.Read(h.store.Key())
	raw, _ = sjson.SetBytes(raw, "stage", "final")
	raw, _ = sjson.SetBytes(raw, "currentRoomId", "room4")
	_ = h.backend.Write(h.store.Key(), raw)

	reloaded := newHarnessOn(t, h.cat, h.backend)
	if got := reloaded.g.Stage(); got != state.StagePuzzles {
		t.Errorf("Stage() = %q, want puzzles", got)
	}
	if got := reloaded.current(); got != "room1" {
		t.Errorf("current = %s, want room1", got)
	}
}

func TestIdleNudge(t *testing.T) {
	h := newHarness(t, testCat(t))
	solveUpTo(t, h, "room4")
	h.clock.Advance(54 * time.Second)
	h.g.Submit("nope")
	h.clock.Advance(54 * time.Second)
	if n := h.count(EventIdleNudge); n != 0 {
		t.Fatalf("nudged %d times before going idle", n)
	}
	h.clock.Advance(time.Second)
	e, ok := h.last(EventIdleNudge)
	if !ok || e.Room != "room4" {
		t.Errorf("idleNudge = %+v, %v", e, ok)
	}
}

func TestIdleNudge_OnlyMarkedRooms(t *testing.T) {
	h := newHarness(t, testCat(t))
	h.toPuzzles(t)
	h.clock.Advance(time.Hour)
	if n := h.count(EventIdleNudge); n != 0 {
		t.Errorf("room1 nudged %d times", n)
	}
}

func solveUpTo(t *testing.T, h *harness, target rooms.ID) {
	t.Helper()
	h.toPuzzles(t)
	for h.current() != target {
		h.g.MarkSolved(h.current())
		next, ok := h.cat.Next(h.current())
		if !ok {
			t.Fatalf("ran out of rooms before %s", target)
		}
		h.g.TrySetCurrentRoom(next)
	}
}

func TestPersistFailure_KeepsPlaying(t *testing.T) {
	cat := testCat(t)
	fs := &failingStore{doc: state.Defaults(cat)}
	g := New(cat, fs, &fakeClock{})
	g.NextPage()
	g.Begin()
	g.Unwrap()
	g.Unwrap()
	if got := g.Confirm(); got != OutcomeCorrect {
		t.Errorf("Confirm() = %v with a failing store, want correct", got)
	}
	g.Reset()
	if got := g.Stage(); got != state.StageIntro {
		t.Errorf("Stage() = %q after reset, want intro", got)
	}
}
