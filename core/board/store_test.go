package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreReplace(t *testing.T) {
	store := NewStore()
	store.Replace([]Question{{ID: "1", Text: "old"}, {ID: "2", Text: "older"}})

	newSet := []Question{{ID: "3", Text: "new"}}
	store.Replace(newSet)

	// full overwrite: no merge with prior contents
	assert.Equal(t, newSet, store.Questions())
	assert.Equal(t, 1, store.Len())
}

func TestStoreClear(t *testing.T) {
	store := NewStore()
	store.Replace([]Question{{ID: "1"}})
	store.Clear()
	if store.Len() != 0 {
		t.Errorf("Len() = %d after Clear(); want 0", store.Len())
	}
}

func TestStoreSnapshotIsolation(t *testing.T) {
	store := NewStore()
	store.Replace([]Question{{ID: "1", Text: "original"}})

	snapshot := store.Questions()
	snapshot[0].Text = "mutated"

	if got := store.Questions()[0].Text; got != "original" {
		t.Errorf("store content = %q after snapshot mutation; want %q", got, "original")
	}
}

func TestStoreReplaceCopiesInput(t *testing.T) {
	store := NewStore()
	in := []Question{{ID: "1", Text: "original"}}
	store.Replace(in)
	in[0].Text = "mutated"

	if got := store.Questions()[0].Text; got != "original" {
		t.Errorf("store content = %q after input mutation; want %q", got, "original")
	}
}
