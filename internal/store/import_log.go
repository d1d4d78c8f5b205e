package store

import (
	"fmt"
	"time"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/model"
)

// InsertImportLog 记录一次已确认的导入
func (s *Store) InsertImportLog(l *model.ImportLog) error {
	_, err := s.db.Exec(`
		INSERT INTO import_logs (filename, clients_created, equipments_created,
			equipments_updated, jobs_created, error_count, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, l.Filename, l.ClientsCreated, l.EquipmentsCreated,
		l.EquipmentsUpdated, l.JobsCreated, l.ErrorCount, l.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("failed to insert import log: %w", err)
	}
	return nil
}

// ListImportLogs 导入历史，按时间倒序
func (s *Store) ListImportLogs(limit int) ([]*model.ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, filename, clients_created, equipments_created,
			equipments_updated, jobs_created, error_count, duration_ms, created_at
		FROM import_logs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query import logs: %w", err)
	}
	defer rows.Close()

	var results []*model.ImportLog
	for rows.Next() {
		l := &model.ImportLog{}
		var durationMs int64
		err := rows.Scan(&l.ID, &l.Filename, &l.ClientsCreated, &l.EquipmentsCreated,
			&l.EquipmentsUpdated, &l.JobsCreated, &l.ErrorCount, &durationMs, &l.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		l.Duration = time.Duration(durationMs) * time.Millisecond
		results = append(results, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}
