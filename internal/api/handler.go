package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/config"
	"github.com/Aguus1610/EAD-ServicesManagement/internal/importer"
	"github.com/Aguus1610/EAD-ServicesManagement/internal/store"
)

// Handler API 处理器
type Handler struct {
	store       *store.Store
	cfg         *config.AppConfig
	uploads     *uploadSessionStore
	coordinator *importer.Coordinator
}

// NewHandler 创建 API 处理器
func NewHandler(st *store.Store, cfg *config.AppConfig) *Handler {
	return &Handler{
		store:       st,
		cfg:         cfg,
		uploads:     newUploadSessionStore(),
		coordinator: importer.NewCoordinator(st),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 客户
	router.GET("/clients", h.ListClients)
	router.POST("/clients", h.CreateClient)
	router.GET("/clients/:id", h.GetClient)
	router.PUT("/clients/:id", h.UpdateClient)
	router.DELETE("/clients/:id", h.DeleteClient)

	// 设备
	router.GET("/equipments", h.ListEquipments)
	router.POST("/equipments", h.CreateEquipment)
	router.GET("/equipments/:id", h.GetEquipment)
	router.PUT("/equipments/:id", h.UpdateEquipment)
	router.DELETE("/equipments/:id", h.DeleteEquipment)

	// 工单
	router.GET("/jobs", h.ListJobs)
	router.POST("/jobs", h.CreateJob)
	router.GET("/jobs/:id", h.GetJob)
	router.PUT("/jobs/:id", h.UpdateJob)
	router.DELETE("/jobs/:id", h.DeleteJob)

	// Excel 导入（两阶段：上传预览 + 确认落库）
	router.POST("/import", h.UploadWorkbook)
	router.GET("/import/logs", h.ListImportLogs)
	router.POST("/import/:token/confirm", h.ConfirmImport)
	router.DELETE("/import/:token", h.DiscardImport)

	// 维护
	router.POST("/maintenance/clean-duplicates", h.CleanDuplicates)

	// 汇总视图
	router.GET("/dashboard", h.GetDashboard)
	router.GET("/statistics", h.GetStatistics)

	// 导出与备份
	router.GET("/export/equipments", h.ExportEquipments)
	router.GET("/export/jobs", h.ExportJobs)
	router.GET("/backup", h.DownloadBackup)
}

// GetStatus 系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	equipments, err := h.store.CountEquipments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	jobs, err := h.store.CountJobs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"equipments": equipments,
		"jobs":       jobs,
		"time":       time.Now(),
	})
}
