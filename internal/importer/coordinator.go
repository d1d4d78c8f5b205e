package importer

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/model"
	"github.com/Aguus1610/EAD-ServicesManagement/internal/store"
)

// progressEvery 每处理多少条记录发送一次进度事件
const progressEvery = 25

// Coordinator 导入协调器：把解析出的记录批量落库并汇总结果
// 单进程内同一时刻只允许一个批次执行（单操作员假设）
type Coordinator struct {
	store *store.Store
	mu    sync.Mutex
}

// NewCoordinator 创建导入协调器
func NewCoordinator(st *store.Store) *Coordinator {
	return &Coordinator{store: st}
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`    // start/progress/warning/done
	Message   string      `json:"message"` // 事件消息
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// Run 同步执行导入批次
// 每条记录独立解析与落库；单条失败只追加到错误列表，批次继续
func (c *Coordinator) Run(records []model.ImportRecord, filename string) *model.ImportSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	summary := &model.ImportSummary{Errors: []string{}}

	c.runRecords(records, summary)
	c.finish(filename, len(records), summary, time.Since(start))

	return summary
}

// runRecords 批次核心：逐条解析与落库，结果累加到 summary
func (c *Coordinator) runRecords(records []model.ImportRecord, summary *model.ImportSummary) {
	resolver := NewResolver(c.store)
	materializer := NewMaterializer(c.store)

	for _, rec := range records {
		equipment, outcome, err := resolver.ResolveEquipment(rec)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", rec.EquipmentLabel, err))
			continue
		}
		if outcome.ClientCreated {
			summary.ClientsCreated++
		}
		if outcome.EquipmentCreated {
			summary.EquipmentsCreated++
		}
		if outcome.EquipmentUpdated {
			summary.EquipmentsUpdated++
		}

		created, refreshed, err := materializer.Materialize(equipment, rec)
		if err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", rec.EquipmentLabel, err))
			continue
		}
		if created {
			summary.JobsCreated++
		}
		if refreshed {
			// 描述更正不计入汇总（与设备回填的计数不对称，保持源系统口径）
			log.WithFields(log.Fields{
				"equipment": rec.EquipmentLabel,
				"date":      rec.Date.Format("2006-01-02"),
			}).Debug("job description refreshed")
		}
	}
}

// finish 批次收尾：记录日志并落库导入历史
func (c *Coordinator) finish(filename string, total int, summary *model.ImportSummary, duration time.Duration) {
	log.WithFields(log.Fields{
		"file":               filename,
		"records":            total,
		"clients_created":    summary.ClientsCreated,
		"equipments_created": summary.EquipmentsCreated,
		"equipments_updated": summary.EquipmentsUpdated,
		"jobs_created":       summary.JobsCreated,
		"errors":             len(summary.Errors),
	}).Info("import finished")

	if err := c.store.InsertImportLog(&model.ImportLog{
		Filename:          filename,
		ClientsCreated:    summary.ClientsCreated,
		EquipmentsCreated: summary.EquipmentsCreated,
		EquipmentsUpdated: summary.EquipmentsUpdated,
		JobsCreated:       summary.JobsCreated,
		ErrorCount:        len(summary.Errors),
		Duration:          duration,
	}); err != nil {
		log.WithError(err).Warn("failed to record import log")
	}
}

// Import 异步执行导入，返回进度通道
func (c *Coordinator) Import(records []model.ImportRecord, filename string) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(records, filename, progressChan)
	}()

	return progressChan
}

// doImport 执行导入并逐步发送进度
func (c *Coordinator) doImport(records []model.ImportRecord, filename string, ch chan ProgressEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()

	c.sendProgress(ch, ProgressEvent{
		Type:      "start",
		Message:   fmt.Sprintf("Importando %d registros de %s", len(records), filename),
		Timestamp: time.Now(),
	})

	// 分段执行，段间上报进度
	summary := &model.ImportSummary{Errors: []string{}}
	for offset := 0; offset < len(records); offset += progressEvery {
		end := offset + progressEvery
		if end > len(records) {
			end = len(records)
		}

		c.runRecords(records[offset:end], summary)

		c.sendProgress(ch, ProgressEvent{
			Type:    "progress",
			Message: fmt.Sprintf("%d/%d registros procesados", end, len(records)),
			Data: map[string]int{
				"processed": end,
				"total":     len(records),
			},
			Timestamp: time.Now(),
		})
	}

	c.finish(filename, len(records), summary, time.Since(start))

	for _, e := range summary.Errors {
		c.sendProgress(ch, ProgressEvent{
			Type:      "warning",
			Message:   e,
			Timestamp: time.Now(),
		})
	}

	c.sendProgress(ch, ProgressEvent{
		Type:      "done",
		Message:   "Importación finalizada",
		Data:      summary,
		Timestamp: time.Now(),
	})
}

// sendProgress 发送进度事件，通道满时丢弃
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}
