package renderer

import (
	"strings"
	"testing"

	"wintercard/pkg/game/rooms"
)

func loadEnglish(t *testing.T) {
	t.Helper()
	if err := LoadLocale(DefaultLanguage); err != nil {
		t.Fatalf("LoadLocale: %v", err)
	}
}

func estate(t *testing.T) *rooms.Catalog {
	t.Helper()
	cat, err := rooms.Load("estate")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cat
}

func estateRoom(t *testing.T, cat *rooms.Catalog, id rooms.ID) *rooms.Room {
	t.Helper()
	r, ok := cat.Room(id)
	if !ok {
		t.Fatalf("room %s missing", id)
	}
	return r
}

// plain strips markup from every line and joins them for substring checks.
func plain(lines []string) string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = PlainText(l)
	}
	return strings.Join(out, "\n")
}
