package store

import (
	"path/filepath"
	"testing"

	"pgregory.net/rapid"
)

func genRecord(t *rapid.T, i int) testRecord {
	return testRecord{
		ID:   NextSeqID("R", i),
		Note: rapid.StringMatching(`[a-z ]{0,40}`).Draw(t, "note"),
	}
}

// Round-tripping any collection through Save and Load preserves order,
// length, and content.
func TestCollectionRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(rt, "n")
		doc := testDoc{LastUpdated: "2025-01-01T00:00:00"}
		for i := 0; i < n; i++ {
			doc.Entries.Append(genRecord(rt, i))
		}

		path := filepath.Join(t.TempDir(), "doc.json")
		if err := Save(path, &doc); err != nil {
			rt.Fatalf("Save: %v", err)
		}
		var got testDoc
		if err := Load(path, &got); err != nil {
			rt.Fatalf("Load: %v", err)
		}

		if got.Entries.Len() != n {
			rt.Fatalf("length %d, want %d", got.Entries.Len(), n)
		}
		for i, item := range got.Entries.Items() {
			want := doc.Entries.Items()[i]
			if item != want {
				rt.Fatalf("item %d = %+v, want %+v", i, item, want)
			}
		}
	})
}

// Sequential IDs never collide for distinct counts.
func TestNextSeqIDUniqueProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(0, 10000).Draw(rt, "a")
		b := rapid.IntRange(0, 10000).Draw(rt, "b")
		if a != b && NextSeqID("RISK", a) == NextSeqID("RISK", b) {
			rt.Fatalf("collision: %q for counts %d and %d", NextSeqID("RISK", a), a, b)
		}
	})
}
