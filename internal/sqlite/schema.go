// This file holds the schema DDL.
package sqlite

// Schema DDL for all tables.
const (
	createEntities = `CREATE TABLE entities (
    entity_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    location TEXT NOT NULL,
    label TEXT NOT NULL,
    capacity INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createModData = `CREATE TABLE mod_data (
    entity_id TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (entity_id, key),
    FOREIGN KEY (entity_id) REFERENCES entities(entity_id) ON DELETE CASCADE
);`

	createItems = `CREATE TABLE items (
    item_id TEXT PRIMARY KEY,
    entity_id TEXT NOT NULL,
    slot INTEGER NOT NULL,
    name TEXT NOT NULL,
    category INTEGER NOT NULL,
    stack INTEGER NOT NULL,
    price INTEGER NOT NULL,
    FOREIGN KEY (entity_id) REFERENCES entities(entity_id) ON DELETE CASCADE
);`
)

// Index DDL for common queries.
const (
	idxEntitiesKind     = `CREATE INDEX idx_entities_kind ON entities(kind);`
	idxEntitiesLocation = `CREATE INDEX idx_entities_location ON entities(location);`
	idxItemsEntity      = `CREATE INDEX idx_items_entity ON items(entity_id, slot);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createEntities,
	createModData,
	createItems,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxEntitiesKind,
	idxEntitiesLocation,
	idxItemsEntity,
}
