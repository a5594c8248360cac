package mysql

// Table comes from migrations/001_kv_entries.sql.
const getSQL = `SELECT v FROM kv_entries WHERE k = ?`

const upsertSQL = `
INSERT INTO kv_entries
  (k, v)
VALUES
  (?, ?)
ON DUPLICATE KEY UPDATE
  v          = VALUES(v),
  updated_at = CURRENT_TIMESTAMP
`

const deleteSQL = `DELETE FROM kv_entries WHERE k = ?`
