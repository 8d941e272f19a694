package store

// Patch log statements. The relay runs on Postgres only, so these are plain
// SQL with positional placeholders; reads go through the squirrel builder.
const (
	selectHead = `SELECT version, snapshot_mac, key_id
		FROM sync_heads
		WHERE account_id = $1 AND collection = $2;`

	lockHeadVersion = `SELECT version
		FROM sync_heads
		WHERE account_id = $1 AND collection = $2
		FOR UPDATE;`

	insertPatch = `INSERT INTO sync_patches (account_id, collection, version, patch, device_id)
		VALUES ($1, $2, $3, $4, $5);`

	upsertRecord = `INSERT INTO sync_records (account_id, collection, index_mac, value_blob, key_id, version)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (account_id, collection, index_mac)
		DO UPDATE SET value_blob = EXCLUDED.value_blob, key_id = EXCLUDED.key_id, version = EXCLUDED.version;`

	deleteRecord = `DELETE FROM sync_records
		WHERE account_id = $1 AND collection = $2 AND index_mac = $3;`

	upsertHead = `INSERT INTO sync_heads (account_id, collection, version, snapshot_mac, key_id, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (account_id, collection)
		DO UPDATE SET version = EXCLUDED.version, snapshot_mac = EXCLUDED.snapshot_mac,
			key_id = EXCLUDED.key_id, updated_at = NOW();`
)
