package store

import (
	"database/sql"
	"fmt"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/model"
)

// CreateClient 创建客户，返回新 ID
func (s *Store) CreateClient(c *model.Client) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO clients (name, phone, address, tax_id, email, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`, c.Name, nullStr(c.Phone), nullStr(c.Address), nullStr(c.TaxID), nullStr(c.Email), nullStr(c.Notes))
	if err != nil {
		return 0, fmt.Errorf("failed to insert client: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get insert id: %w", err)
	}
	c.ID = id
	return id, nil
}

// GetClientByName 按名称精确查找客户（导入解析用的自然键）
func (s *Store) GetClientByName(name string) (*model.Client, error) {
	row := s.db.QueryRow(`
		SELECT id, name, phone, address, tax_id, email, notes, created_at
		FROM clients WHERE name = ?
	`, name)
	return s.scanClientRow(row)
}

// GetClientByID 根据 ID 获取客户
func (s *Store) GetClientByID(id int64) (*model.Client, error) {
	row := s.db.QueryRow(`
		SELECT id, name, phone, address, tax_id, email, notes, created_at
		FROM clients WHERE id = ?
	`, id)
	return s.scanClientRow(row)
}

// ListClients 客户列表，可按名称/电话/税号模糊搜索
func (s *Store) ListClients(search string) ([]*model.Client, error) {
	query := `
		SELECT id, name, phone, address, tax_id, email, notes, created_at
		FROM clients WHERE 1=1
	`
	args := []interface{}{}

	if search != "" {
		query += " AND (name LIKE ? OR phone LIKE ? OR tax_id LIKE ?)"
		like := "%" + search + "%"
		args = append(args, like, like, like)
	}

	query += " ORDER BY name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	var results []*model.Client
	for rows.Next() {
		c, err := s.scanClient(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return results, nil
}

// UpdateClient 更新客户
func (s *Store) UpdateClient(c *model.Client) error {
	_, err := s.db.Exec(`
		UPDATE clients SET name = ?, phone = ?, address = ?, tax_id = ?, email = ?, notes = ?
		WHERE id = ?
	`, c.Name, nullStr(c.Phone), nullStr(c.Address), nullStr(c.TaxID), nullStr(c.Email), nullStr(c.Notes), c.ID)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return nil
}

// DeleteClient 删除客户，其设备保留但解除关联
func (s *Store) DeleteClient(id int64) error {
	if _, err := s.db.Exec("DELETE FROM clients WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	return nil
}

// scanClientRow 扫描单行客户数据
func (s *Store) scanClientRow(row *sql.Row) (*model.Client, error) {
	c := &model.Client{}
	var phone, address, taxID, email, notes sql.NullString
	err := row.Scan(&c.ID, &c.Name, &phone, &address, &taxID, &email, &notes, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan client: %w", err)
	}
	c.Phone = phone.String
	c.Address = address.String
	c.TaxID = taxID.String
	c.Email = email.String
	c.Notes = notes.String
	return c, nil
}

// scanClient 扫描多行结果中的一条客户数据
func (s *Store) scanClient(rows *sql.Rows) (*model.Client, error) {
	c := &model.Client{}
	var phone, address, taxID, email, notes sql.NullString
	err := rows.Scan(&c.ID, &c.Name, &phone, &address, &taxID, &email, &notes, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan client: %w", err)
	}
	c.Phone = phone.String
	c.Address = address.String
	c.TaxID = taxID.String
	c.Email = email.String
	c.Notes = notes.String
	return c, nil
}

// nullStr 空串按 NULL 写入
func nullStr(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
