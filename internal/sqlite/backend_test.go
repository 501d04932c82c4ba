// Tests for the SQLite save store.
package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/chests/pkg/types"
)

func attachTemp(t *testing.T) (*Backend, string) {
	t.Helper()
	tmpDir := t.TempDir()
	b := NewBackend()
	if err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: tmpDir}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	t.Cleanup(func() { b.Detach() })
	return b, tmpDir
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer b.Detach()

	if _, err := os.Stat(filepath.Join(tmpDir, dbFile)); os.IsNotExist(err) {
		t.Errorf("%s not created", dbFile)
	}

	if err := b.Attach(config); err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: "postgres", DataDir: t.TempDir()})
	if err != types.ErrBackendUnknown {
		t.Errorf("expected ErrBackendUnknown, got %v", err)
	}
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend()
	b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}

	if _, err := b.GetEntity("x"); err != types.ErrSaveDetached {
		t.Errorf("GetEntity: expected ErrSaveDetached, got %v", err)
	}
	if _, err := b.PutEntity(&types.EntityRecord{Kind: types.KindChest}); err != types.ErrSaveDetached {
		t.Errorf("PutEntity: expected ErrSaveDetached, got %v", err)
	}
	if _, err := b.FetchEntities(types.EntityFilter{}); err != types.ErrSaveDetached {
		t.Errorf("FetchEntities: expected ErrSaveDetached, got %v", err)
	}
	if err := b.DeleteEntity("x"); err != types.ErrSaveDetached {
		t.Errorf("DeleteEntity: expected ErrSaveDetached, got %v", err)
	}
}

func TestEntity_CRUD(t *testing.T) {
	b, _ := attachTemp(t)

	hat := &types.Item{Name: "Cowboy Hat", Category: types.CategoryHat, Stack: 1, Price: 50}
	parsnip := &types.Item{Name: "Parsnip", Category: types.CategoryVegetable, Stack: 12, Price: 35}
	rec := &types.EntityRecord{
		Kind:     types.KindChest,
		Location: "Farm",
		Label:    "Chest",
		Capacity: 36,
		ModData:  types.ModData{"chests/name": "Hats", "other-mod/flag": "on"},
		Items:    []*types.Item{hat, nil, parsnip},
	}

	id, err := b.PutEntity(rec)
	if err != nil {
		t.Fatalf("PutEntity failed: %v", err)
	}
	if id == "" || rec.EntityID != id {
		t.Fatalf("expected generated ID on record, got %q / %q", id, rec.EntityID)
	}
	if hat.ItemID == "" || parsnip.ItemID == "" {
		t.Error("expected item IDs to be assigned")
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := b.GetEntity(id)
	if err != nil {
		t.Fatalf("GetEntity failed: %v", err)
	}
	if got.Kind != types.KindChest || got.Location != "Farm" || got.Capacity != 36 {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.ModData["chests/name"] != "Hats" || got.ModData["other-mod/flag"] != "on" {
		t.Errorf("mod data not preserved: %v", got.ModData)
	}
	if len(got.Items) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(got.Items))
	}
	if got.Items[1] != nil {
		t.Errorf("expected empty slot 1, got %+v", got.Items[1])
	}
	if got.Items[2].Name != "Parsnip" || got.Items[2].Category != types.CategoryVegetable || got.Items[2].Stack != 12 {
		t.Errorf("unexpected item in slot 2: %+v", got.Items[2])
	}

	// Update replaces metadata and items.
	rec.ModData = types.ModData{"other-mod/flag": "on"}
	rec.Items = []*types.Item{parsnip}
	if _, err := b.PutEntity(rec); err != nil {
		t.Fatalf("PutEntity update failed: %v", err)
	}
	got, _ = b.GetEntity(id)
	if _, ok := got.ModData["chests/name"]; ok {
		t.Error("expected removed key to be gone")
	}
	if len(got.Items) != 1 || got.Items[0].ItemID != parsnip.ItemID {
		t.Errorf("unexpected items after update: %+v", got.Items)
	}

	if err := b.DeleteEntity(id); err != nil {
		t.Fatalf("DeleteEntity failed: %v", err)
	}
	if _, err := b.GetEntity(id); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := b.DeleteEntity(id); err != types.ErrNotFound {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestEntity_InvalidData(t *testing.T) {
	b, _ := attachTemp(t)

	if _, err := b.PutEntity(nil); err != types.ErrInvalidData {
		t.Errorf("nil record: expected ErrInvalidData, got %v", err)
	}
	if _, err := b.PutEntity(&types.EntityRecord{Kind: "barrel"}); !errors.Is(err, types.ErrInvalidData) {
		t.Errorf("unknown kind: expected ErrInvalidData, got %v", err)
	}
	if _, err := b.PutEntity(&types.EntityRecord{Kind: types.KindChest, Capacity: -1}); !errors.Is(err, types.ErrInvalidData) {
		t.Errorf("negative capacity: expected ErrInvalidData, got %v", err)
	}
	if _, err := b.GetEntity(""); err != types.ErrInvalidID {
		t.Errorf("empty ID: expected ErrInvalidID, got %v", err)
	}
}

func TestEntity_MovedItemFollowsOwner(t *testing.T) {
	b, _ := attachTemp(t)

	gem := &types.Item{Name: "Emerald", Category: types.CategoryGem, Stack: 1}
	from := &types.EntityRecord{Kind: types.KindChest, Items: []*types.Item{gem}}
	to := &types.EntityRecord{Kind: types.KindChest}
	b.PutEntity(from)
	b.PutEntity(to)

	from.Items = nil
	to.Items = []*types.Item{gem}
	if _, err := b.PutEntity(to); err != nil {
		t.Fatalf("PutEntity failed: %v", err)
	}
	if _, err := b.PutEntity(from); err != nil {
		t.Fatalf("PutEntity failed: %v", err)
	}

	got, _ := b.GetEntity(to.EntityID)
	if len(got.Items) != 1 || got.Items[0].ItemID != gem.ItemID {
		t.Errorf("expected gem in destination, got %+v", got.Items)
	}
	got, _ = b.GetEntity(from.EntityID)
	if len(got.Items) != 0 {
		t.Errorf("expected empty source, got %+v", got.Items)
	}
}

func TestEntity_Fetch(t *testing.T) {
	b, _ := attachTemp(t)

	for _, rec := range []*types.EntityRecord{
		{Kind: types.KindChest, Location: "Farm", Label: "a"},
		{Kind: types.KindShippingBin, Location: "Farm", Label: "b"},
		{Kind: types.KindChest, Location: "Cellar", Label: "c"},
		{Kind: types.KindStorageFurniture, Location: "FarmHouse", Label: "d"},
	} {
		if _, err := b.PutEntity(rec); err != nil {
			t.Fatalf("PutEntity failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter types.EntityFilter
		want   []string
	}{
		{"all ordered by location", types.EntityFilter{}, []string{"c", "a", "b", "d"}},
		{"by kind", types.EntityFilter{Kind: types.KindChest}, []string{"c", "a"}},
		{"by location", types.EntityFilter{Location: "Farm"}, []string{"a", "b"}},
		{"kind and location", types.EntityFilter{Kind: types.KindShippingBin, Location: "Farm"}, []string{"b"}},
		{"no match", types.EntityFilter{Location: "Mines"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := b.FetchEntities(tt.filter)
			if err != nil {
				t.Fatalf("FetchEntities failed: %v", err)
			}
			var labels []string
			for _, r := range recs {
				labels = append(labels, r.Label)
			}
			if len(labels) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, labels)
			}
			for i := range labels {
				if labels[i] != tt.want[i] {
					t.Errorf("expected %v, got %v", tt.want, labels)
					break
				}
			}
		})
	}
}

func TestEntity_TimestampPersistence(t *testing.T) {
	b, _ := attachTemp(t)

	rec := &types.EntityRecord{Kind: types.KindShippingBin}
	id, _ := b.PutEntity(rec)
	created := rec.CreatedAt

	rec.Label = "renamed"
	b.PutEntity(rec)

	got, _ := b.GetEntity(id)
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created_at changed: %v -> %v", created, got.CreatedAt)
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Errorf("updated_at %v before created_at %v", got.UpdatedAt, got.CreatedAt)
	}
}
