package store

import (
	"database/sql"
	"fmt"
	"time"
)

// UpcomingService 某台设备的下一次保养（取最近一张带保养日期的工单）
type UpcomingService struct {
	EquipmentID   int64     `json:"equipmentId"`
	Equipment     string    `json:"equipment"` // 品牌 型号 (年份)
	Owner         string    `json:"owner"`     // 关联客户名，缺省回落到历史所有者文本
	NextService   time.Time `json:"nextService"`
	LastJobAmount float64   `json:"lastJobAmount"`
}

// ListUpcomingServices 各设备最近一张工单的保养计划
// 只取每台设备按日期最新的工单，且其 next_service_date 非空
func (s *Store) ListUpcomingServices() ([]*UpcomingService, error) {
	rows, err := s.db.Query(`
		SELECT e.id, e.brand, e.model, e.year,
			COALESCE(c.name, e.owner, '') AS owner,
			j.next_service_date, j.amount
		FROM equipments e
		JOIN jobs j ON j.equipment_id = e.id
		LEFT JOIN clients c ON c.id = e.client_id
		WHERE j.id = (
			SELECT j2.id FROM jobs j2
			WHERE j2.equipment_id = e.id
			ORDER BY j2.date_done DESC, j2.id DESC LIMIT 1
		)
		AND j.next_service_date IS NOT NULL
		ORDER BY j.next_service_date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming services: %w", err)
	}
	defer rows.Close()

	var results []*UpcomingService
	for rows.Next() {
		u := &UpcomingService{}
		var brand, model string
		var year int
		err := rows.Scan(&u.EquipmentID, &brand, &model, &year, &u.Owner, &u.NextService, &u.LastJobAmount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan upcoming service: %w", err)
		}
		u.Equipment = fmt.Sprintf("%s %s (%d)", brand, model, year)
		results = append(results, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}

// EquipmentJobStats 设备维度的工单统计
type EquipmentJobStats struct {
	JobCount   int     `json:"jobCount"`
	TotalSpent float64 `json:"totalSpent"`
}

// GetEquipmentJobStats 单台设备的工单数与累计金额
func (s *Store) GetEquipmentJobStats(equipmentID int64) (*EquipmentJobStats, error) {
	st := &EquipmentJobStats{}
	err := s.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM jobs WHERE equipment_id = ?
	`, equipmentID).Scan(&st.JobCount, &st.TotalSpent)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipment job stats: %w", err)
	}
	return st, nil
}

// TopEquipment 累计支出排名条目
type TopEquipment struct {
	Name  string  `json:"name"` // 品牌 型号
	Jobs  int     `json:"jobs"`
	Total float64 `json:"total"`
}

// ListTopEquipments 按累计支出排序的设备（至少一张工单）
func (s *Store) ListTopEquipments(limit int) ([]*TopEquipment, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT e.brand || ' ' || e.model, COUNT(j.id), COALESCE(SUM(j.amount), 0) AS total
		FROM equipments e
		JOIN jobs j ON j.equipment_id = e.id
		GROUP BY e.id
		ORDER BY total DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top equipments: %w", err)
	}
	defer rows.Close()

	var results []*TopEquipment
	for rows.Next() {
		t := &TopEquipment{}
		if err := rows.Scan(&t.Name, &t.Jobs, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan top equipment: %w", err)
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}

// SumJobAmounts 指定日期范围内的工单金额合计
func (s *Store) SumJobAmounts(from, to time.Time) (float64, error) {
	var total sql.NullFloat64
	err := s.db.QueryRow(`
		SELECT SUM(amount) FROM jobs WHERE date_done >= ? AND date_done <= ?
	`, from.Format(dateLayout), to.Format(dateLayout)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum job amounts: %w", err)
	}
	return total.Float64, nil
}

// SumAllJobAmounts 全部工单金额合计
func (s *Store) SumAllJobAmounts() (float64, error) {
	var total sql.NullFloat64
	if err := s.db.QueryRow("SELECT SUM(amount) FROM jobs").Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum job amounts: %w", err)
	}
	return total.Float64, nil
}

// BrandCount 品牌分布条目
type BrandCount struct {
	Brand string `json:"brand"`
	Count int    `json:"count"`
}

// ListBrandDistribution 按品牌统计设备数量
func (s *Store) ListBrandDistribution() ([]*BrandCount, error) {
	rows, err := s.db.Query(`
		SELECT brand, COUNT(*) FROM equipments GROUP BY brand ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query brand distribution: %w", err)
	}
	defer rows.Close()

	var results []*BrandCount
	for rows.Next() {
		b := &BrandCount{}
		if err := rows.Scan(&b.Brand, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan brand count: %w", err)
		}
		results = append(results, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}
