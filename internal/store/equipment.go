package store

import (
	"database/sql"
	"fmt"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/model"
)

const equipmentColumns = `
	id, client_id, brand, model, year, serial, owner, vehicle, plate, notes,
	created_at, updated_at
`

// CreateEquipment 创建设备，返回新 ID
func (s *Store) CreateEquipment(e *model.Equipment) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO equipments (client_id, brand, model, year, serial, owner, vehicle, plate, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ClientID, e.Brand, e.Model, e.Year, e.Serial,
		nullStr(e.Owner), nullStr(e.Vehicle), nullStr(e.Plate), nullStr(e.Notes))
	if err != nil {
		return 0, fmt.Errorf("failed to insert equipment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}
	e.ID = id
	return id, nil
}

// GetEquipmentBySerial 按序列号精确查找设备（导入解析用的自然键）
func (s *Store) GetEquipmentBySerial(serial string) (*model.Equipment, error) {
	row := s.db.QueryRow("SELECT "+equipmentColumns+" FROM equipments WHERE serial = ?", serial)
	return s.scanEquipmentRow(row)
}

// GetEquipmentByID 根据 ID 获取设备
func (s *Store) GetEquipmentByID(id int64) (*model.Equipment, error) {
	row := s.db.QueryRow("SELECT "+equipmentColumns+" FROM equipments WHERE id = ?", id)
	return s.scanEquipmentRow(row)
}

// EquipmentQueryOptions 设备查询选项
type EquipmentQueryOptions struct {
	Search   string // 匹配品牌/型号/序列号/所有者/牌照
	ClientID *int64
}

// ListEquipments 设备列表
func (s *Store) ListEquipments(opts EquipmentQueryOptions) ([]*model.Equipment, error) {
	query := "SELECT " + equipmentColumns + " FROM equipments WHERE 1=1"
	args := []interface{}{}

	if opts.Search != "" {
		query += ` AND (brand LIKE ? OR model LIKE ? OR serial LIKE ?
			OR owner LIKE ? OR plate LIKE ?)`
		like := "%" + opts.Search + "%"
		args = append(args, like, like, like, like, like)
	}
	if opts.ClientID != nil {
		query += " AND client_id = ?"
		args = append(args, *opts.ClientID)
	}

	query += " ORDER BY brand, model"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipments: %w", err)
	}
	defer rows.Close()

	var results []*model.Equipment
	for rows.Next() {
		e, err := s.scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}

// UpdateEquipment 更新设备
func (s *Store) UpdateEquipment(e *model.Equipment) error {
	_, err := s.db.Exec(`
		UPDATE equipments SET
			client_id = ?, brand = ?, model = ?, year = ?, serial = ?,
			owner = ?, vehicle = ?, plate = ?, notes = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, e.ClientID, e.Brand, e.Model, e.Year, e.Serial,
		nullStr(e.Owner), nullStr(e.Vehicle), nullStr(e.Plate), nullStr(e.Notes), e.ID)
	if err != nil {
		return fmt.Errorf("failed to update equipment: %w", err)
	}
	return nil
}

// LinkEquipmentClient 为缺少客户关联的设备补链（导入回填历史数据）
func (s *Store) LinkEquipmentClient(equipmentID, clientID int64) error {
	_, err := s.db.Exec(`
		UPDATE equipments SET client_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, clientID, equipmentID)
	if err != nil {
		return fmt.Errorf("failed to link equipment to client: %w", err)
	}
	return nil
}

// DeleteEquipment 删除设备及其全部工单（级联）
func (s *Store) DeleteEquipment(id int64) error {
	if _, err := s.db.Exec("DELETE FROM equipments WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}
	return nil
}

// CountEquipments 设备总数
func (s *Store) CountEquipments() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM equipments").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count equipments: %w", err)
	}
	return count, nil
}

// scanEquipmentRow 扫描单行设备数据
func (s *Store) scanEquipmentRow(row *sql.Row) (*model.Equipment, error) {
	e := &model.Equipment{}
	var clientID sql.NullInt64
	var owner, vehicle, plate, notes sql.NullString
	err := row.Scan(&e.ID, &clientID, &e.Brand, &e.Model, &e.Year, &e.Serial,
		&owner, &vehicle, &plate, &notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan equipment: %w", err)
	}
	if clientID.Valid {
		e.ClientID = &clientID.Int64
	}
	e.Owner = owner.String
	e.Vehicle = vehicle.String
	e.Plate = plate.String
	e.Notes = notes.String
	return e, nil
}

// scanEquipment 扫描多行结果中的一条设备数据
func (s *Store) scanEquipment(rows *sql.Rows) (*model.Equipment, error) {
	e := &model.Equipment{}
	var clientID sql.NullInt64
	var owner, vehicle, plate, notes sql.NullString
	err := rows.Scan(&e.ID, &clientID, &e.Brand, &e.Model, &e.Year, &e.Serial,
		&owner, &vehicle, &plate, &notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan equipment: %w", err)
	}
	if clientID.Valid {
		e.ClientID = &clientID.Int64
	}
	e.Owner = owner.String
	e.Vehicle = vehicle.String
	e.Plate = plate.String
	e.Notes = notes.String
	return e, nil
}
