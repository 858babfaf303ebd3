package persist

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/darasahq/ubao/core"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	conf := &core.Config{StateDir: t.TempDir()}
	store, err := NewFileStore(conf)
	if err != nil {
		t.Fatalf("NewFileStore() = %v; want nil", err)
	}
	return store
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestFileStore(t)

	sel := core.Selection{ClassID: "cls1", LectureID: "lec1"}
	if err := store.Save(core.RoleStudent, sel); err != nil {
		t.Fatalf("Save() = %v; want nil", err)
	}

	got, err := store.Load(core.RoleStudent)
	if err != nil {
		t.Fatalf("Load() = %v; want nil", err)
	}
	assert.Equal(t, sel, got)
}

func TestFileStorePerRole(t *testing.T) {
	store := newTestFileStore(t)

	studentSel := core.Selection{ClassID: "cls1", LectureID: "lec1"}
	taSel := core.Selection{ClassID: "cls2", LectureID: "lec9"}
	if err := store.Save(core.RoleStudent, studentSel); err != nil {
		t.Fatalf("Save(student) = %v; want nil", err)
	}
	if err := store.Save(core.RoleTA, taSel); err != nil {
		t.Fatalf("Save(ta) = %v; want nil", err)
	}

	got, _ := store.Load(core.RoleStudent)
	assert.Equal(t, studentSel, got)
	got, _ = store.Load(core.RoleTA)
	assert.Equal(t, taSel, got)
}

func TestFileStoreMissingFile(t *testing.T) {
	store := newTestFileStore(t)

	got, err := store.Load(core.RoleTA)
	if err != nil {
		t.Fatalf("Load() = %v; want nil", err)
	}
	assert.Equal(t, core.Selection{}, got)
}

func TestFileStoreMangledFile(t *testing.T) {
	dir := t.TempDir()
	conf := &core.Config{StateDir: dir}
	store, err := NewFileStore(conf)
	if err != nil {
		t.Fatalf("NewFileStore() = %v; want nil", err)
	}
	if err := ioutil.WriteFile(filepath.Join(dir, "selection.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	// a mangled file resets instead of erroring
	got, err := store.Load(core.RoleStudent)
	if err != nil {
		t.Fatalf("Load() = %v; want nil", err)
	}
	assert.Equal(t, core.Selection{}, got)

	sel := core.Selection{ClassID: "cls1"}
	if err := store.Save(core.RoleStudent, sel); err != nil {
		t.Fatalf("Save() = %v; want nil", err)
	}
	got, _ = store.Load(core.RoleStudent)
	assert.Equal(t, sel, got)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	got, err := store.Load(core.RoleStudent)
	if err != nil {
		t.Fatalf("Load() = %v; want nil", err)
	}
	assert.Equal(t, core.Selection{}, got)

	sel := core.Selection{ClassID: "cls1", LectureID: "lec1"}
	if err := store.Save(core.RoleStudent, sel); err != nil {
		t.Fatalf("Save() = %v; want nil", err)
	}
	got, _ = store.Load(core.RoleStudent)
	assert.Equal(t, sel, got)
}
