package uuid

import (
	"testing"

	googleuuid "github.com/google/uuid"
)

func TestNewIsVersion7(t *testing.T) {
	parsed, err := googleuuid.Parse(New())
	if err != nil {
		t.Fatalf("New returned an unparsable id: %v", err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
	if parsed.Variant() != googleuuid.RFC4122 {
		t.Errorf("expected RFC 4122 variant, got %s", parsed.Variant())
	}
}

func TestNewSortsInCreationOrder(t *testing.T) {
	const n = 2000
	prev := New()
	for i := 1; i < n; i++ {
		id := New()
		if id <= prev {
			t.Fatalf("id %d (%s) does not sort after the previous id (%s)", i, id, prev)
		}
		prev = id
	}
}
