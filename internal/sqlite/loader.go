// This file implements JSONL loading for startup.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// jsonlTableMapping maps JSONL files to their SQLite tables and column lists.
// Tables with foreign keys load after the tables they reference.
var jsonlTableMapping = []struct {
	file    string
	table   string
	columns []string
}{
	{entitiesJSONL, "entities", []string{"entity_id", "kind", "location", "label", "capacity", "created_at", "updated_at"}},
	{itemsJSONL, "items", []string{"item_id", "entity_id", "slot", "name", "category", "stack", "price"}},
}

// loadAllJSONL reads each JSONL file from dataDir and inserts its records
// into the matching table. Loading runs in one transaction. Malformed lines,
// records that violate constraints and unknown fields are skipped.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, mapping := range jsonlTableMapping {
		path := filepath.Join(dataDir, mapping.file)
		records, err := readJSONL(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", mapping.file, err)
		}
		if len(records) == 0 {
			continue
		}
		if err := insertRecords(tx, mapping.table, mapping.columns, records); err != nil {
			return fmt.Errorf("loading %s into %s: %w", mapping.file, mapping.table, err)
		}
		if mapping.table == "entities" {
			if err := insertModData(tx, records); err != nil {
				return fmt.Errorf("loading mod data from %s: %w", mapping.file, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// insertRecords inserts parsed JSONL records into a table. Only the listed
// columns are extracted; extra fields are ignored.
func insertRecords(tx *sql.Tx, table string, columns []string, records []json.RawMessage) error {
	placeholders := make([]string, len(columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertSQL := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)

	stmt, err := tx.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("preparing insert for %s: %w", table, err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var obj map[string]any
		if err := json.Unmarshal(rec, &obj); err != nil {
			continue
		}

		args := make([]any, len(columns))
		for i, col := range columns {
			args[i] = obj[col]
		}

		if _, err := stmt.Exec(args...); err != nil {
			continue
		}
	}
	return nil
}

// insertModData copies the embedded mod_data object of each entity record
// into the mod_data table. Entities that failed to load are skipped by the
// foreign key.
func insertModData(tx *sql.Tx, records []json.RawMessage) error {
	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO mod_data (entity_id, key, value) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing mod data insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var ent entityJSONLRecord
		if err := json.Unmarshal(rec, &ent); err != nil {
			continue
		}
		for k, v := range ent.ModData {
			if _, err := stmt.Exec(ent.EntityID, k, v); err != nil {
				continue
			}
		}
	}
	return nil
}
