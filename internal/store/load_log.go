package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// 加载状态
const (
	LoadStatusOK     = "ok"
	LoadStatusFailed = "failed"
)

// LoadLog 一次启动加载的记录
type LoadLog struct {
	ID               string    `json:"id"`
	GapSource        string    `json:"gapSource"`
	GapHash          string    `json:"gapHash"`
	GapRows          int       `json:"gapRows"`
	CatalogSource    string    `json:"catalogSource"`
	CatalogHash      string    `json:"catalogHash"`
	CatalogRows      int       `json:"catalogRows"`
	Facilities       int       `json:"facilities"`
	UnmatchedTitles  int       `json:"unmatchedTitles"`
	DuplicateCodes   int       `json:"duplicateCodes"`
	Unclassified     int       `json:"unclassified"`
	NumericFallbacks int       `json:"numericFallbacks"`
	Status           string    `json:"status"`
	ErrorMessage     string    `json:"errorMessage"`
	CreatedAt        time.Time `json:"createdAt"`
}

// CreateLoadLog 写入加载记录，返回记录 ID
func (s *Store) CreateLoadLog(l LoadLog) (string, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = LoadStatusOK
	}
	_, err := s.db.Exec(`
		INSERT INTO load_logs (
			id, gap_source, gap_hash, gap_rows,
			catalog_source, catalog_hash, catalog_rows,
			facilities, unmatched_titles, duplicate_codes, unclassified, numeric_fallbacks,
			status, error_message
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		l.ID, l.GapSource, l.GapHash, l.GapRows,
		l.CatalogSource, l.CatalogHash, l.CatalogRows,
		l.Facilities, l.UnmatchedTitles, l.DuplicateCodes, l.Unclassified, l.NumericFallbacks,
		l.Status, l.ErrorMessage,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create load log: %w", err)
	}
	return l.ID, nil
}

// LatestLoadLog 最近一次加载记录；没有记录时返回 (nil, nil)
func (s *Store) LatestLoadLog() (*LoadLog, error) {
	logs, err := s.ListLoadLogs(1)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		return nil, nil
	}
	return &logs[0], nil
}

// ListLoadLogs 按时间倒序列出加载记录
func (s *Store) ListLoadLogs(limit int) ([]LoadLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, gap_source, gap_hash, gap_rows,
			catalog_source, catalog_hash, catalog_rows,
			facilities, unmatched_titles, duplicate_codes, unclassified, numeric_fallbacks,
			status, error_message, created_at
		FROM load_logs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query load logs failed: %w", err)
	}
	defer rows.Close()

	var out []LoadLog
	for rows.Next() {
		var l LoadLog
		if err := rows.Scan(
			&l.ID, &l.GapSource, &l.GapHash, &l.GapRows,
			&l.CatalogSource, &l.CatalogHash, &l.CatalogRows,
			&l.Facilities, &l.UnmatchedTitles, &l.DuplicateCodes, &l.Unclassified, &l.NumericFallbacks,
			&l.Status, &l.ErrorMessage, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan load log failed: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate load logs failed: %w", err)
	}
	return out, nil
}
