package model

import "time"

// Client 客户（车间的设备所有者）
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"` // 自然键：导入时按名称精确匹配
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	TaxID     string    `json:"taxId"`
	Email     string    `json:"email"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Equipment 设备
type Equipment struct {
	ID       int64  `json:"id"`
	ClientID *int64 `json:"clientId"` // 可为空：历史数据可能只有自由文本的所有者
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Serial   string `json:"serial"` // 自然键：导入时按序列号精确匹配
	Owner    string `json:"owner"`  // 历史遗留的自由文本所有者名称
	Vehicle  string `json:"vehicle"`
	Plate    string `json:"plate"`
	Notes    string `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Job 维修/保养工单
type Job struct {
	ID              int64      `json:"id"`
	EquipmentID     int64      `json:"equipmentId"`
	DateDone        time.Time  `json:"dateDone"`
	Description     string     `json:"description"`
	Amount          float64    `json:"amount"`
	NextServiceDays *int       `json:"nextServiceDays"`
	NextServiceDate *time.Time `json:"nextServiceDate"`
	Notes           string     `json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SetNextService 设置下次保养周期并派生下次保养日期
// next_service_date = date_done + next_service_days；未设置周期时两者均为空
func (j *Job) SetNextService(days *int) {
	j.NextServiceDays = days
	if days == nil {
		j.NextServiceDate = nil
		return
	}
	d := j.DateDone.AddDate(0, 0, *days)
	j.NextServiceDate = &d
}
