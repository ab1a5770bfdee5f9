package history

// SchemaVersion is the current history schema version
const SchemaVersion = 2

const schema = `
CREATE TABLE IF NOT EXISTS schema_info (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS mutations (
    id TEXT PRIMARY KEY,
    timestamp INTEGER NOT NULL, -- unix nanoseconds
    action TEXT NOT NULL,
    row_id TEXT NOT NULL DEFAULT '',
    detail TEXT NOT NULL DEFAULT '',
    ok INTEGER NOT NULL DEFAULT 1,
    error TEXT NOT NULL DEFAULT ''
);
`

// migration is one forward-only schema change
type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 2,
		sql: `CREATE INDEX IF NOT EXISTS idx_mutations_timestamp ON mutations(timestamp);
CREATE INDEX IF NOT EXISTS idx_mutations_row ON mutations(row_id);`,
	},
}
