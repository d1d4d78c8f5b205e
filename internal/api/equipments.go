package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/model"
	"github.com/Aguus1610/EAD-ServicesManagement/internal/store"
)

// EquipmentRequest 设备创建/更新请求
type EquipmentRequest struct {
	ClientID *int64 `json:"clientId"`
	Brand    string `json:"brand" binding:"required"`
	Model    string `json:"model" binding:"required"`
	Year     int    `json:"year" binding:"required"`
	Serial   string `json:"serial" binding:"required"`
	Owner    string `json:"owner"`
	Vehicle  string `json:"vehicle"`
	Plate    string `json:"plate"`
	Notes    string `json:"notes"`
}

// equipmentView 设备列表条目（附工单统计）
type equipmentView struct {
	*model.Equipment
	JobCount   int     `json:"jobCount"`
	TotalSpent float64 `json:"totalSpent"`
}

// ListEquipments 设备列表（含每台的工单数与累计金额）
// GET /api/equipments?search=
func (h *Handler) ListEquipments(c *gin.Context) {
	equipments, err := h.store.ListEquipments(store.EquipmentQueryOptions{Search: c.Query("search")})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	views := make([]equipmentView, 0, len(equipments))
	for _, e := range equipments {
		stats, err := h.store.GetEquipmentJobStats(e.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		views = append(views, equipmentView{
			Equipment:  e,
			JobCount:   stats.JobCount,
			TotalSpent: stats.TotalSpent,
		})
	}

	c.JSON(http.StatusOK, gin.H{"equipments": views})
}

// CreateEquipment 创建设备
// POST /api/equipments
func (h *Handler) CreateEquipment(c *gin.Context) {
	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	equipment := &model.Equipment{
		ClientID: req.ClientID,
		Brand:    req.Brand,
		Model:    req.Model,
		Year:     req.Year,
		Serial:   req.Serial,
		Owner:    req.Owner,
		Vehicle:  req.Vehicle,
		Plate:    req.Plate,
		Notes:    req.Notes,
	}
	if _, err := h.store.CreateEquipment(equipment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, equipment)
}

// GetEquipment 设备详情（含工单历史与合计）
// GET /api/equipments/:id
func (h *Handler) GetEquipment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 ID"})
		return
	}

	equipment, err := h.store.GetEquipmentByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "设备不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	jobs, err := h.store.ListJobs(store.JobQueryOptions{EquipmentID: &id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var total float64
	for _, j := range jobs {
		total += j.Amount
	}
	var average float64
	if len(jobs) > 0 {
		average = total / float64(len(jobs))
	}

	c.JSON(http.StatusOK, gin.H{
		"equipment":  equipment,
		"jobs":       jobs,
		"totalSpent": total,
		"average":    average,
	})
}

// UpdateEquipment 更新设备
// PUT /api/equipments/:id
func (h *Handler) UpdateEquipment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 ID"})
		return
	}

	equipment, err := h.store.GetEquipmentByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "设备不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	equipment.ClientID = req.ClientID
	equipment.Brand = req.Brand
	equipment.Model = req.Model
	equipment.Year = req.Year
	equipment.Serial = req.Serial
	equipment.Owner = req.Owner
	equipment.Vehicle = req.Vehicle
	equipment.Plate = req.Plate
	equipment.Notes = req.Notes

	if err := h.store.UpdateEquipment(equipment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, equipment)
}

// DeleteEquipment 删除设备及其工单
// DELETE /api/equipments/:id
func (h *Handler) DeleteEquipment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的 ID"})
		return
	}

	if err := h.store.DeleteEquipment(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
