package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"rulewatch/pkg/httperr"
	"rulewatch/pkg/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS statuses(
	rule_id TEXT NOT NULL,
	status TEXT NOT NULL,
	message TEXT,
	gap TEXT,
	search_ms INTEGER,
	index_ms INTEGER,
	ts INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_statuses_rule_ts ON statuses(rule_id, ts DESC);
CREATE TABLE IF NOT EXISTS annotations(
	id TEXT PRIMARY KEY,
	job_id TEXT NOT NULL,
	body TEXT NOT NULL,
	event TEXT,
	start_ms INTEGER NOT NULL,
	end_ms INTEGER,
	created_by TEXT,
	modified_by TEXT,
	created_at INTEGER,
	modified_at INTEGER
);
CREATE INDEX IF NOT EXISTS idx_annotations_job ON annotations(job_id);
CREATE TABLE IF NOT EXISTS audit(
	actor TEXT,
	action TEXT,
	target TEXT,
	detail TEXT,
	ts INTEGER NOT NULL
);`

// SQLiteStore persists records in a local sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and
// bootstraps the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite mkdir: %w", err)
		}
	}
	dsn := "file:" + path + "?_pragma=busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) AppendStatus(r model.StatusRecord) error {
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO statuses(rule_id, status, message, gap, search_ms, index_ms, ts) VALUES(?,?,?,?,?,?,?)`,
		r.RuleID, r.Status, r.Message, r.Gap, r.SearchDurationMs, r.IndexDurationMs, r.Timestamp.UnixMilli())
	return err
}

func (s *SQLiteStore) TopStatuses(ruleID string, limit int) ([]model.StatusRecord, error) {
	if limit <= 0 {
		limit = statusHistoryCap
	}
	rows, err := s.db.Query(
		`SELECT rule_id, status, message, gap, search_ms, index_ms, ts FROM statuses WHERE rule_id = ? ORDER BY ts DESC LIMIT ?`,
		ruleID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.StatusRecord
	for rows.Next() {
		var r model.StatusRecord
		var ts int64
		if err := rows.Scan(&r.RuleID, &r.Status, &r.Message, &r.Gap, &r.SearchDurationMs, &r.IndexDurationMs, &ts); err != nil {
			return nil, err
		}
		r.Timestamp = time.UnixMilli(ts)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) SearchAnnotations(q model.AnnotationSearch) ([]model.Annotation, error) {
	query := `SELECT id, job_id, body, event, start_ms, end_ms, created_by, modified_by, created_at, modified_at FROM annotations`
	var conds []string
	var args []interface{}
	if len(q.JobIDs) > 0 {
		conds = append(conds, `job_id IN (?`+strings.Repeat(",?", len(q.JobIDs)-1)+`)`)
		for _, id := range q.JobIDs {
			args = append(args, id)
		}
	}
	if q.EarliestMs > 0 {
		conds = append(conds, `start_ms >= ?`)
		args = append(args, q.EarliestMs)
	}
	if q.LatestMs > 0 {
		conds = append(conds, `start_ms <= ?`)
		args = append(args, q.LatestMs)
	}
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, ` AND `)
	}
	query += ` ORDER BY start_ms ASC`
	if q.MaxAnnotations > 0 {
		query += ` LIMIT ?`
		args = append(args, q.MaxAnnotations)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Annotation
	for rows.Next() {
		a, err := scanAnnotation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetAnnotation(id string) (model.Annotation, bool, error) {
	row := s.db.QueryRow(
		`SELECT id, job_id, body, event, start_ms, end_ms, created_by, modified_by, created_at, modified_at FROM annotations WHERE id = ?`, id)
	a, err := scanAnnotation(row)
	if err == sql.ErrNoRows {
		return model.Annotation{}, false, nil
	}
	if err != nil {
		return model.Annotation{}, false, err
	}
	return a, true, nil
}

func (s *SQLiteStore) UpsertAnnotation(a model.Annotation) (model.Annotation, error) {
	_, err := s.db.Exec(
		`INSERT INTO annotations(id, job_id, body, event, start_ms, end_ms, created_by, modified_by, created_at, modified_at)
		 VALUES(?,?,?,?,?,?,?,?,?,?)
		 ON CONFLICT(id) DO UPDATE SET job_id=excluded.job_id, body=excluded.body, event=excluded.event,
		 start_ms=excluded.start_ms, end_ms=excluded.end_ms, modified_by=excluded.modified_by, modified_at=excluded.modified_at`,
		a.ID, a.JobID, a.Text, a.Event, a.StartTime, a.EndTime, a.CreatedBy, a.ModifiedBy,
		a.CreatedAt.UnixMilli(), a.ModifiedAt.UnixMilli())
	return a, err
}

func (s *SQLiteStore) DeleteAnnotation(id string) error {
	res, err := s.db.Exec(`DELETE FROM annotations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

// AnnotationsReady verifies the annotations table exists and is queryable.
func (s *SQLiteStore) AnnotationsReady() (bool, error) {
	var name string
	err := s.db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='annotations'`).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) AppendAudit(entry model.AuditEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO audit(actor, action, target, detail, ts) VALUES(?,?,?,?,?)`,
		entry.Actor, entry.Action, entry.Target, entry.Detail, entry.Timestamp.UnixMilli())
	return err
}

func (s *SQLiteStore) ListAudit(limit int) ([]model.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`SELECT actor, action, target, detail, ts FROM audit ORDER BY ts DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		var ts int64
		if err := rows.Scan(&e.Actor, &e.Action, &e.Target, &e.Detail, &ts); err != nil {
			return nil, err
		}
		e.Timestamp = time.UnixMilli(ts)
		out = append(out, e)
	}
	// oldest first, matching the memory store
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Ping() error { return s.db.Ping() }

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnnotation(row rowScanner) (model.Annotation, error) {
	var a model.Annotation
	var created, modified int64
	err := row.Scan(&a.ID, &a.JobID, &a.Text, &a.Event, &a.StartTime, &a.EndTime,
		&a.CreatedBy, &a.ModifiedBy, &created, &modified)
	if err != nil {
		return a, err
	}
	a.CreatedAt = time.UnixMilli(created)
	a.ModifiedAt = time.UnixMilli(modified)
	return a, nil
}
