package store

import (
	"fmt"
	"time"
)

// 导出渠道
const (
	ChannelHTTP   = "http"
	ChannelStream = "stream"
	ChannelCLI    = "cli"
)

// ExportLog 一次导出的记录
type ExportLog struct {
	ID          int64     `json:"id"`
	FacilityID  string    `json:"facilityId"`
	FileName    string    `json:"fileName"`
	FileSize    int       `json:"fileSize"`
	SummaryRows int       `json:"summaryRows"`
	DetailRows  int       `json:"detailRows"`
	Channel     string    `json:"channel"`
	CreatedAt   time.Time `json:"createdAt"`
}

// InsertExportLog 写入导出记录
func (s *Store) InsertExportLog(l ExportLog) (int64, error) {
	if l.Channel == "" {
		l.Channel = ChannelHTTP
	}
	res, err := s.db.Exec(`
		INSERT INTO export_logs (facility_id, file_name, file_size, summary_rows, detail_rows, channel)
		VALUES (?, ?, ?, ?, ?, ?)
	`, l.FacilityID, l.FileName, l.FileSize, l.SummaryRows, l.DetailRows, l.Channel)
	if err != nil {
		return 0, fmt.Errorf("failed to insert export log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get export log id: %w", err)
	}
	return id, nil
}

// CountExports 统计导出次数；facilityID 为空时统计全部
func (s *Store) CountExports(facilityID string) (int, error) {
	query := "SELECT COUNT(1) FROM export_logs"
	args := []interface{}{}
	if facilityID != "" {
		query += " WHERE facility_id = ?"
		args = append(args, facilityID)
	}
	var n int
	if err := s.db.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count export logs failed: %w", err)
	}
	return n, nil
}

// ListExportLogs 按时间倒序列出导出记录
func (s *Store) ListExportLogs(limit int) ([]ExportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, facility_id, file_name, file_size, summary_rows, detail_rows, channel, created_at
		FROM export_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query export logs failed: %w", err)
	}
	defer rows.Close()

	var out []ExportLog
	for rows.Next() {
		var l ExportLog
		if err := rows.Scan(&l.ID, &l.FacilityID, &l.FileName, &l.FileSize, &l.SummaryRows, &l.DetailRows, &l.Channel, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan export log failed: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate export logs failed: %w", err)
	}
	return out, nil
}
