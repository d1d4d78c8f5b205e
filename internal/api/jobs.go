package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/model"
	"github.com/Aguus1610/EAD-ServicesManagement/internal/store"
)

// JobRequest 工单创建/更新请求
type JobRequest struct {
	EquipmentID     int64   `json:"equipmentId" binding:"required"`
	DateDone        string  `json:"dateDone" binding:"required"` // YYYY-MM-DD
	Description     string  `json:"description" binding:"required"`
	Amount          float64 `json:"amount"`
	NextServiceDays *int    `json:"nextServiceDays"`
	Notes           string  `json:"notes"`
}

// ListJobs 工单列表
// GET /api/jobs?search=&equipmentId=&from=&to=
func (h *Handler) ListJobs(c *gin.Context) {
	opts := store.JobQueryOptions{Search: c.Query("search")}

	if v := c.Query("equipmentId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的设备 ID"})
			return
		}
		opts.EquipmentID = &id
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的起始日期"})
			return
		}
		opts.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的结束日期"})
			return
		}
		opts.To = &t
	}

	jobs, err := h.store.ListJobs(opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var total float64
	for _, j := range jobs {
		total += j.Amount
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":        jobs,
		"totalAmount": total,
	})
}

// CreateJob 创建工单
// POST /api/jobs
func (h *Handler) CreateJob(c *gin.Context) {
	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	dateDone, err := time.Parse("2006-01-02", req.DateDone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的完成日期"})
		return
	}

	if _, err := h.store.GetEquipmentByID(req.EquipmentID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "设备不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	job := &model.Job{
		EquipmentID: req.EquipmentID,
		DateDone:    dateDone,
		Description: req.Description,
		Amount:      req.Amount,
		Notes:       req.Notes,
	}
	job.SetNextService(req.NextServiceDays)

	if _, err := h.store.CreateJob(job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, job)
}

// GetJob 工单详情
// GET /api/jobs/:id
func (h *Handler) GetJob(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 ID"})
		return
	}

	job, err := h.store.GetJobByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "工单不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, job)
}

// UpdateJob 更新工单，重新派生下次保养日期
// PUT /api/jobs/:id
func (h *Handler) UpdateJob(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 ID"})
		return
	}

	job, err := h.store.GetJobByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "工单不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	dateDone, err := time.Parse("2006-01-02", req.DateDone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的完成日期"})
		return
	}

	job.DateDone = dateDone
	job.Description = req.Description
	job.Amount = req.Amount
	job.Notes = req.Notes
	job.SetNextService(req.NextServiceDays)

	if err := h.store.UpdateJob(job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, job)
}

// DeleteJob 删除工单
// DELETE /api/jobs/:id
func (h *Handler) DeleteJob(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 ID"})
		return
	}

	if err := h.store.DeleteJob(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
