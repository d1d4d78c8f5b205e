package importer

import (
	"errors"
	"fmt"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/model"
	"github.com/Aguus1610/EAD-ServicesManagement/internal/store"
)

// jobImportNote 导入创建的工单统一备注
const jobImportNote = "Importado desde Excel"

// Materializer 按 (设备, 完成日期) 幂等落库工单
type Materializer struct {
	store *store.Store
}

// NewMaterializer 创建工单落库器
func NewMaterializer(st *store.Store) *Materializer {
	return &Materializer{store: st}
}

// Materialize 为解析后的记录创建或更正工单
// 已存在同 (设备, 日期) 的工单且描述有变化时原地更新（视为更正，不算新建）；
// 不存在时创建新工单，金额为 0（导入数据不含报价）
func (m *Materializer) Materialize(equipment *model.Equipment, rec model.ImportRecord) (created bool, refreshed bool, err error) {
	existing, err := m.store.GetJobByEquipmentAndDate(equipment.ID, rec.Date)
	if err == nil {
		if existing.Description != rec.Description {
			if err := m.store.UpdateJobDescription(existing.ID, rec.Description, jobImportNote); err != nil {
				return false, false, err
			}
			return false, true, nil
		}
		return false, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return false, false, fmt.Errorf("failed to look up job: %w", err)
	}

	job := &model.Job{
		EquipmentID: equipment.ID,
		DateDone:    rec.Date,
		Description: rec.Description,
		Amount:      0,
		Notes:       jobImportNote,
	}
	if _, err := m.store.CreateJob(job); err != nil {
		return false, false, err
	}
	return true, false, nil
}
