package importer

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/store"
)

// Reconciler 去重维护器：清理共享 (设备, 完成日期) 键的冗余工单
// 用于修复落库幂等逻辑出现之前导入的数据，或绕过它写入的数据
type Reconciler struct {
	store *store.Store
}

// NewReconciler 创建去重维护器
func NewReconciler(st *store.Store) *Reconciler {
	return &Reconciler{store: st}
}

// CleanDuplicates 按 (设备, 完成日期, ID) 升序扫描全部工单
// 每组键第一条视为正本保留，其余删除；返回删除数量
func (r *Reconciler) CleanDuplicates() (int, error) {
	jobs, err := r.store.ListJobsOrdered()
	if err != nil {
		return 0, fmt.Errorf("failed to scan jobs: %w", err)
	}

	seen := make(map[string]struct{}, len(jobs))
	deleted := 0

	for _, job := range jobs {
		key := fmt.Sprintf("%d|%s", job.EquipmentID, job.DateDone.Format("2006-01-02"))
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			continue
		}
		if err := r.store.DeleteJob(job.ID); err != nil {
			return deleted, fmt.Errorf("failed to delete duplicate job %d: %w", job.ID, err)
		}
		deleted++
	}

	if deleted > 0 {
		log.WithField("deleted", deleted).Info("duplicate jobs removed")
	}
	return deleted, nil
}
