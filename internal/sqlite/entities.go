// This file implements entity record reads and writes.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/chests/pkg/types"
)

// GetEntity returns the record with the given ID.
func (b *Backend) GetEntity(id string) (*types.EntityRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrSaveDetached
	}
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := b.db.QueryRow(`SELECT entity_id, kind, location, label, capacity, created_at, updated_at
		FROM entities WHERE entity_id = ?`, id)
	rec, err := scanEntity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying entity %s: %w", id, err)
	}
	if err := b.hydrate(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// PutEntity creates or updates a record, replacing its metadata and items.
// Items without an ID are assigned one. rec is updated in place with the
// generated ID and timestamps.
func (b *Backend) PutEntity(rec *types.EntityRecord) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", types.ErrSaveDetached
	}
	if rec == nil {
		return "", types.ErrInvalidData
	}
	if !types.ValidKind(rec.Kind) {
		return "", fmt.Errorf("%w: kind %q", types.ErrInvalidData, rec.Kind)
	}
	if rec.Capacity < 0 {
		return "", fmt.Errorf("%w: negative capacity", types.ErrInvalidData)
	}

	now := time.Now().UTC()
	if rec.EntityID == "" {
		rec.EntityID = generateUUID()
	}
	if rec.CreatedAt.IsZero() {
		var created string
		err := b.db.QueryRow(`SELECT created_at FROM entities WHERE entity_id = ?`, rec.EntityID).Scan(&created)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			rec.CreatedAt = now
		case err != nil:
			return "", fmt.Errorf("checking entity %s: %w", rec.EntityID, err)
		default:
			rec.CreatedAt = parseTime(created)
		}
	}
	rec.UpdatedAt = now

	if err := b.writeEntity(rec); err != nil {
		return "", err
	}
	if err := b.persistLocked(); err != nil {
		return "", err
	}
	return rec.EntityID, nil
}

// writeEntity replaces the SQLite rows for rec in one transaction.
func (b *Backend) writeEntity(rec *types.EntityRecord) error {
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO entities (entity_id, kind, location, label, capacity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(entity_id) DO UPDATE SET
			kind = excluded.kind,
			location = excluded.location,
			label = excluded.label,
			capacity = excluded.capacity,
			updated_at = excluded.updated_at`,
		rec.EntityID, string(rec.Kind), rec.Location, rec.Label, rec.Capacity,
		formatTime(rec.CreatedAt), formatTime(rec.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving entity %s: %w", rec.EntityID, err)
	}

	if _, err := tx.Exec(`DELETE FROM mod_data WHERE entity_id = ?`, rec.EntityID); err != nil {
		return fmt.Errorf("clearing mod data: %w", err)
	}
	for k, v := range rec.ModData {
		if _, err := tx.Exec(`INSERT INTO mod_data (entity_id, key, value) VALUES (?, ?, ?)`,
			rec.EntityID, k, v); err != nil {
			return fmt.Errorf("saving mod data %q: %w", k, err)
		}
	}

	if _, err := tx.Exec(`DELETE FROM items WHERE entity_id = ?`, rec.EntityID); err != nil {
		return fmt.Errorf("clearing items: %w", err)
	}
	for slot, it := range rec.Items {
		if it == nil {
			continue
		}
		if it.ItemID == "" {
			it.ItemID = generateUUID()
		}
		// An item moved from another entity takes its row along.
		_, err := tx.Exec(`INSERT OR REPLACE INTO items (item_id, entity_id, slot, name, category, stack, price)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			it.ItemID, rec.EntityID, slot, it.Name, int(it.Category), it.Stack, it.Price)
		if err != nil {
			return fmt.Errorf("saving item %s: %w", it.ItemID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing entity %s: %w", rec.EntityID, err)
	}
	return nil
}

// DeleteEntity removes a record together with its metadata and items.
func (b *Backend) DeleteEntity(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrSaveDetached
	}
	if id == "" {
		return types.ErrInvalidID
	}

	res, err := b.db.Exec(`DELETE FROM entities WHERE entity_id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting entity %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting entity %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return b.persistLocked()
}

// FetchEntities returns the records matching filter, ordered by location,
// creation time and ID.
func (b *Backend) FetchEntities(filter types.EntityFilter) ([]*types.EntityRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrSaveDetached
	}

	var (
		where []string
		args  []any
	)
	if filter.Kind != "" {
		where = append(where, "kind = ?")
		args = append(args, string(filter.Kind))
	}
	if filter.Location != "" {
		where = append(where, "location = ?")
		args = append(args, filter.Location)
	}
	query := `SELECT entity_id, kind, location, label, capacity, created_at, updated_at FROM entities`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY location, created_at, entity_id"

	rows, err := b.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entities: %w", err)
	}
	var recs []*types.EntityRecord
	for rows.Next() {
		rec, err := scanEntity(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating entities: %w", err)
	}
	rows.Close()

	for _, rec := range recs {
		if err := b.hydrate(rec); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntity(s rowScanner) (*types.EntityRecord, error) {
	var (
		rec              types.EntityRecord
		kind             string
		created, updated string
	)
	if err := s.Scan(&rec.EntityID, &kind, &rec.Location, &rec.Label, &rec.Capacity, &created, &updated); err != nil {
		return nil, err
	}
	rec.Kind = types.Kind(kind)
	rec.CreatedAt = parseTime(created)
	rec.UpdatedAt = parseTime(updated)
	return &rec, nil
}

// hydrate loads the metadata and items of rec. Items land at their saved
// slot; gaps stay nil.
func (b *Backend) hydrate(rec *types.EntityRecord) error {
	rec.ModData = types.ModData{}
	rows, err := b.db.Query(`SELECT key, value FROM mod_data WHERE entity_id = ?`, rec.EntityID)
	if err != nil {
		return fmt.Errorf("querying mod data for %s: %w", rec.EntityID, err)
	}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			rows.Close()
			return fmt.Errorf("scanning mod data: %w", err)
		}
		rec.ModData[k] = v
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating mod data: %w", err)
	}
	rows.Close()

	rows, err = b.db.Query(`SELECT item_id, slot, name, category, stack, price
		FROM items WHERE entity_id = ? ORDER BY slot`, rec.EntityID)
	if err != nil {
		return fmt.Errorf("querying items for %s: %w", rec.EntityID, err)
	}
	defer rows.Close()

	rec.Items = nil
	for rows.Next() {
		var (
			it       types.Item
			slot     int
			category int
		)
		if err := rows.Scan(&it.ItemID, &slot, &it.Name, &category, &it.Stack, &it.Price); err != nil {
			return fmt.Errorf("scanning item: %w", err)
		}
		if slot < 0 {
			continue
		}
		it.Category = types.Category(category)
		for len(rec.Items) <= slot {
			rec.Items = append(rec.Items, nil)
		}
		rec.Items[slot] = &it
	}
	return rows.Err()
}

// persistLocked rewrites both JSONL files from the current SQLite state.
// The caller must hold b.mu.
func (b *Backend) persistLocked() error {
	if err := b.persistEntitiesJSONL(); err != nil {
		return err
	}
	return b.persistItemsJSONL()
}

func (b *Backend) persistEntitiesJSONL() error {
	rows, err := b.db.Query(`SELECT entity_id, kind, location, label, capacity, created_at, updated_at
		FROM entities ORDER BY created_at, entity_id`)
	if err != nil {
		return fmt.Errorf("querying entities for persist: %w", err)
	}
	var ents []*entityJSONLRecord
	for rows.Next() {
		var e entityJSONLRecord
		if err := rows.Scan(&e.EntityID, &e.Kind, &e.Location, &e.Label, &e.Capacity, &e.CreatedAt, &e.UpdatedAt); err != nil {
			rows.Close()
			return fmt.Errorf("scanning entity for persist: %w", err)
		}
		ents = append(ents, &e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating entities for persist: %w", err)
	}
	rows.Close()

	byID := make(map[string]*entityJSONLRecord, len(ents))
	for _, e := range ents {
		byID[e.EntityID] = e
	}
	rows, err = b.db.Query(`SELECT entity_id, key, value FROM mod_data`)
	if err != nil {
		return fmt.Errorf("querying mod data for persist: %w", err)
	}
	for rows.Next() {
		var id, k, v string
		if err := rows.Scan(&id, &k, &v); err != nil {
			rows.Close()
			return fmt.Errorf("scanning mod data for persist: %w", err)
		}
		if e, ok := byID[id]; ok {
			if e.ModData == nil {
				e.ModData = make(map[string]string)
			}
			e.ModData[k] = v
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("iterating mod data for persist: %w", err)
	}
	rows.Close()

	records := make([]json.RawMessage, 0, len(ents))
	for _, e := range ents {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshaling entity %s: %w", e.EntityID, err)
		}
		records = append(records, data)
	}
	return writeJSONL(filepath.Join(b.config.DataDir, entitiesJSONL), records)
}

func (b *Backend) persistItemsJSONL() error {
	rows, err := b.db.Query(`SELECT item_id, entity_id, slot, name, category, stack, price
		FROM items ORDER BY entity_id, slot`)
	if err != nil {
		return fmt.Errorf("querying items for persist: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var it itemJSONLRecord
		if err := rows.Scan(&it.ItemID, &it.EntityID, &it.Slot, &it.Name, &it.Category, &it.Stack, &it.Price); err != nil {
			return fmt.Errorf("scanning item for persist: %w", err)
		}
		data, err := json.Marshal(it)
		if err != nil {
			return fmt.Errorf("marshaling item %s: %w", it.ItemID, err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating items for persist: %w", err)
	}
	return writeJSONL(filepath.Join(b.config.DataDir, itemsJSONL), records)
}

// timeLayout is fixed width so stored timestamps sort as strings.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime parses a stored timestamp; unparseable values yield the zero time.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
