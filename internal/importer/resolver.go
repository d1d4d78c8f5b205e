package importer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/model"
	"github.com/Aguus1610/EAD-ServicesManagement/internal/store"
)

// unspecifiedField 设备标签拆不出品牌/型号时的占位值
const unspecifiedField = "Sin especificar"

// ResolveOutcome 一次实体解析过程中发生的创建/回填
type ResolveOutcome struct {
	ClientCreated    bool
	EquipmentCreated bool
	EquipmentUpdated bool
}

// Resolver 实体解析器：按自然键把导入记录映射到 (客户, 设备)
type Resolver struct {
	store *store.Store
}

// NewResolver 创建实体解析器
func NewResolver(st *store.Store) *Resolver {
	return &Resolver{store: st}
}

// ResolveClient 按名称精确查找客户，未命中时创建
// 空白名称解析为 nil，不创建任何实体
func (r *Resolver) ResolveClient(name string) (*model.Client, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, nil
	}

	client, err := r.store.GetClientByName(name)
	if err == nil {
		return client, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up client: %w", err)
	}

	client = &model.Client{
		Name:  name,
		Notes: "Creado automáticamente durante la importación de Excel",
	}
	if _, err := r.store.CreateClient(client); err != nil {
		return nil, false, err
	}
	return client, true, nil
}

// ResolveEquipment 把导入记录解析为设备实体（客户随之一并解析）
// 按序列号 = 设备标签精确查找；命中但尚无客户关联时回填；未命中则创建
func (r *Resolver) ResolveEquipment(rec model.ImportRecord) (*model.Equipment, ResolveOutcome, error) {
	var outcome ResolveOutcome

	client, clientCreated, err := r.ResolveClient(rec.ClientLabel)
	if err != nil {
		return nil, outcome, err
	}
	outcome.ClientCreated = clientCreated

	equipment, err := r.store.GetEquipmentBySerial(rec.EquipmentLabel)
	if err == nil {
		// 回填历史数据的客户关联，不覆盖品牌/型号/备注
		if equipment.ClientID == nil && client != nil {
			if err := r.store.LinkEquipmentClient(equipment.ID, client.ID); err != nil {
				return nil, outcome, err
			}
			equipment.ClientID = &client.ID
			outcome.EquipmentUpdated = true
		}
		return equipment, outcome, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, outcome, fmt.Errorf("failed to look up equipment: %w", err)
	}

	brand, eqModel := splitEquipmentLabel(rec.EquipmentLabel)
	equipment = &model.Equipment{
		Brand:  brand,
		Model:  eqModel,
		Year:   time.Now().Year(), // 源数据不含年份
		Serial: rec.EquipmentLabel,
		Notes:  fmt.Sprintf("Importado desde Excel (hoja %s)", rec.ClientLabel),
	}
	if client != nil {
		equipment.ClientID = &client.ID
	}
	if _, err := r.store.CreateEquipment(equipment); err != nil {
		return nil, outcome, err
	}
	outcome.EquipmentCreated = true
	return equipment, outcome, nil
}

// splitEquipmentLabel 从自由文本设备标签启发式拆分品牌与型号
// 第一个空白分隔的词作为品牌，其余作为型号
func splitEquipmentLabel(label string) (brand, model string) {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return unspecifiedField, unspecifiedField
	}
	brand = fields[0]
	if len(fields) == 1 {
		return brand, unspecifiedField
	}
	return brand, strings.Join(fields[1:], " ")
}
