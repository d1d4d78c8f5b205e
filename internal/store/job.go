package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/model"
)

// dateLayout 日期列统一按 ISO 文本存储，保证 (equipment, date) 精确匹配
const dateLayout = "2006-01-02"

const jobColumns = `
	id, equipment_id, date_done, description, amount,
	next_service_days, next_service_date, notes, created_at, updated_at
`

// CreateJob 创建工单，返回新 ID
func (s *Store) CreateJob(j *model.Job) (int64, error) {
	var nextDate interface{}
	if j.NextServiceDate != nil {
		nextDate = j.NextServiceDate.Format(dateLayout)
	}

	res, err := s.db.Exec(`
		INSERT INTO jobs (equipment_id, date_done, description, amount,
			next_service_days, next_service_date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, j.EquipmentID, j.DateDone.Format(dateLayout), j.Description, j.Amount,
		j.NextServiceDays, nextDate, nullStr(j.Notes))
	if err != nil {
		return 0, fmt.Errorf("failed to insert job: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}
	j.ID = id
	return id, nil
}

// GetJobByEquipmentAndDate 按 (设备, 完成日期) 精确查找工单（导入去重键）
// 同键多条时返回 ID 最小的一条
func (s *Store) GetJobByEquipmentAndDate(equipmentID int64, date time.Time) (*model.Job, error) {
	row := s.db.QueryRow(`
		SELECT `+jobColumns+` FROM jobs
		WHERE equipment_id = ? AND date_done = ?
		ORDER BY id LIMIT 1
	`, equipmentID, date.Format(dateLayout))
	return s.scanJobRow(row)
}

// GetJobByID 根据 ID 获取工单
func (s *Store) GetJobByID(id int64) (*model.Job, error) {
	row := s.db.QueryRow("SELECT "+jobColumns+" FROM jobs WHERE id = ?", id)
	return s.scanJobRow(row)
}

// JobQueryOptions 工单查询选项
type JobQueryOptions struct {
	Search      string // 匹配描述
	EquipmentID *int64
	From        *time.Time
	To          *time.Time
}

// ListJobs 工单列表，按完成日期倒序
func (s *Store) ListJobs(opts JobQueryOptions) ([]*model.Job, error) {
	query := "SELECT " + jobColumns + " FROM jobs WHERE 1=1"
	args := []interface{}{}

	if opts.Search != "" {
		query += " AND description LIKE ?"
		args = append(args, "%"+opts.Search+"%")
	}
	if opts.EquipmentID != nil {
		query += " AND equipment_id = ?"
		args = append(args, *opts.EquipmentID)
	}
	if opts.From != nil {
		query += " AND date_done >= ?"
		args = append(args, opts.From.Format(dateLayout))
	}
	if opts.To != nil {
		query += " AND date_done <= ?"
		args = append(args, opts.To.Format(dateLayout))
	}

	query += " ORDER BY date_done DESC, id DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	return s.scanJobRows(rows)
}

// ListJobsOrdered 全量工单，按 (设备, 完成日期, ID) 升序
// 去重清理依赖这个稳定顺序：每组键第一条为保留项
func (s *Store) ListJobsOrdered() ([]*model.Job, error) {
	rows, err := s.db.Query("SELECT " + jobColumns + " FROM jobs ORDER BY equipment_id, date_done, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	return s.scanJobRows(rows)
}

// UpdateJob 更新工单
func (s *Store) UpdateJob(j *model.Job) error {
	var nextDate interface{}
	if j.NextServiceDate != nil {
		nextDate = j.NextServiceDate.Format(dateLayout)
	}

	_, err := s.db.Exec(`
		UPDATE jobs SET
			date_done = ?, description = ?, amount = ?,
			next_service_days = ?, next_service_date = ?, notes = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, j.DateDone.Format(dateLayout), j.Description, j.Amount,
		j.NextServiceDays, nextDate, nullStr(j.Notes), j.ID)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	return nil
}

// UpdateJobDescription 只刷新描述与备注（导入时视为对既有工单的更正）
func (s *Store) UpdateJobDescription(id int64, description, notes string) error {
	_, err := s.db.Exec(`
		UPDATE jobs SET description = ?, notes = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, description, nullStr(notes), id)
	if err != nil {
		return fmt.Errorf("failed to update job description: %w", err)
	}
	return nil
}

// DeleteJob 删除工单
func (s *Store) DeleteJob(id int64) error {
	if _, err := s.db.Exec("DELETE FROM jobs WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

// CountJobs 工单总数
func (s *Store) CountJobs() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM jobs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

// scanJobRow 扫描单行工单数据
func (s *Store) scanJobRow(row *sql.Row) (*model.Job, error) {
	j := &model.Job{}
	var nextDays sql.NullInt64
	var nextDate sql.NullTime
	var notes sql.NullString
	err := row.Scan(&j.ID, &j.EquipmentID, &j.DateDone, &j.Description, &j.Amount,
		&nextDays, &nextDate, &notes, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}
	fillJobNullables(j, nextDays, nextDate, notes)
	return j, nil
}

// scanJobRows 扫描多行工单数据
func (s *Store) scanJobRows(rows *sql.Rows) ([]*model.Job, error) {
	var results []*model.Job

	for rows.Next() {
		j := &model.Job{}
		var nextDays sql.NullInt64
		var nextDate sql.NullTime
		var notes sql.NullString
		err := rows.Scan(&j.ID, &j.EquipmentID, &j.DateDone, &j.Description, &j.Amount,
			&nextDays, &nextDate, &notes, &j.CreatedAt, &j.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		fillJobNullables(j, nextDays, nextDate, notes)
		results = append(results, j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}

func fillJobNullables(j *model.Job, nextDays sql.NullInt64, nextDate sql.NullTime, notes sql.NullString) {
	if nextDays.Valid {
		d := int(nextDays.Int64)
		j.NextServiceDays = &d
	}
	if nextDate.Valid {
		t := nextDate.Time
		j.NextServiceDate = &t
	}
	j.Notes = notes.String
}
