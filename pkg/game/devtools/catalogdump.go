// Package devtools provides developer tools for writing and checking cards.
package devtools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"wintercard/pkg/game/gameplay"
	"wintercard/pkg/game/rooms"
)

const dumpFilename = "catalog.txt"

// DumpToFile writes Dump into dir and returns the file's absolute path.
func DumpToFile(dir string, cat *rooms.Catalog, v gameplay.View) (string, error) {
	absPath, err := filepath.Abs(filepath.Join(dir, dumpFilename))
	if err != nil {
		return "", err
	}
	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := Dump(f, cat, v); err != nil {
		return "", err
	}
	return absPath, nil
}

// Dump writes a plain text walkthrough of cat with every answer spelled out,
// followed by the progress recorded in v. Sections are "--- name ---" headed
// and fields are "key: value" so the file diffs cleanly between edits.
func Dump(w io.Writer, cat *rooms.Catalog, v gameplay.View) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "=== CATALOG DUMP ===")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "--- Metadata ---")
	fmt.Fprintf(bw, "name: %s\n", cat.Name)
	fmt.Fprintf(bw, "title: %q\n", cat.Title)
	fmt.Fprintf(bw, "storage_key: %s\n", cat.StorageKey)
	fmt.Fprintf(bw, "letter_pages: %d\n", len(cat.Letter))
	fmt.Fprintf(bw, "unwrap_taps: %d\n", cat.UnwrapTaps)
	fmt.Fprintf(bw, "rooms: %d\n", cat.Len())
	fmt.Fprintf(bw, "code: %s\n", cat.Code())
	fmt.Fprintf(bw, "room_hold: %s (reduced %s)\n", cat.Timing.RoomHold, cat.Timing.ReducedRoomHold)
	fmt.Fprintf(bw, "win_hold: %s (reduced %s)\n", cat.Timing.WinHold, cat.Timing.ReducedWinHold)
	fmt.Fprintf(bw, "idle_nudge: %s\n", cat.Timing.IdleNudge)
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "--- Fragments ---")
	for _, f := range cat.Fragments {
		fmt.Fprintf(bw, "  id: %s label: %q value: %s gate: %s\n", f.ID, f.Label, f.Value, cat.Gate(f.ID))
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "--- Rooms (in order, with solutions) ---")
	for i := range cat.Rooms {
		r := &cat.Rooms[i]
		fmt.Fprintf(bw, "%d. id: %s kind: %s title: %q\n", i+1, r.ID, r.Kind, r.Title)
		fmt.Fprintf(bw, "   solution: %s\n", solution(cat, r))
		if r.Reveals != "" {
			fmt.Fprintf(bw, "   reveals: %s\n", r.Reveals)
		}
		if len(r.Hints) > 0 {
			fmt.Fprintf(bw, "   hints: %d (policy %s)\n", len(r.Hints), r.HintPolicy)
		}
		var flags []string
		if r.Nudge {
			flags = append(flags, "nudge")
		}
		if r.PauseAfter {
			flags = append(flags, "pause_after")
		}
		if len(flags) > 0 {
			fmt.Fprintf(bw, "   flags: %s\n", strings.Join(flags, " "))
		}
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "--- Progress ---")
	fmt.Fprintf(bw, "stage: %s\n", v.Stage)
	fmt.Fprintf(bw, "solved: %d/%d\n", v.Solved, v.RoomCount)
	fmt.Fprintf(bw, "partial: %s\n", v.Partial)
	for _, e := range v.Map {
		fmt.Fprintf(bw, "  room: %s solved: %v unlocked: %v current: %v\n", e.ID, e.Solved, e.Unlocked, e.Current)
	}
	fmt.Fprintf(bw, "settings: sound=%v reduce_motion=%v high_contrast=%v\n",
		v.Settings.Sound, v.Settings.ReduceMotion, v.Settings.HighContrast)

	return bw.Flush()
}

func solution(cat *rooms.Catalog, r *rooms.Room) string {
	switch r.Kind {
	case rooms.KindText:
		return strings.Join(quoteAll(r.Answers), " | ")
	case rooms.KindChoice:
		if r.Answer >= 0 && r.Answer < len(r.Options) {
			return fmt.Sprintf("%d) %s", r.Answer+1, r.Options[r.Answer])
		}
		return "?"
	case rooms.KindSequence:
		labels := make([]string, len(r.Sequence))
		for i, id := range r.Sequence {
			labels[i] = r.ItemLabel(id)
		}
		return strings.Join(labels, " -> ")
	case rooms.KindAssembly:
		return strings.Join(cat.FragmentValues(), " ")
	default:
		if r.Action != "" {
			return fmt.Sprintf("confirm %q", r.Action)
		}
		return "confirm"
	}
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
