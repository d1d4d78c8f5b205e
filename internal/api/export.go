package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/store"
)

// ExportEquipments 导出设备清单为 CSV
// GET /api/export/equipments
func (h *Handler) ExportEquipments(c *gin.Context) {
	equipments, err := h.store.ListEquipments(store.EquipmentQueryOptions{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"ID", "Marca", "Modelo", "Año", "N° Serie", "Propietario", "Vehículo", "Dominio", "Notas"})
	for _, e := range equipments {
		owner := e.Owner
		if e.ClientID != nil {
			if client, err := h.store.GetClientByID(*e.ClientID); err == nil {
				owner = client.Name
			}
		}
		_ = w.Write([]string{
			strconv.FormatInt(e.ID, 10),
			e.Brand,
			e.Model,
			strconv.Itoa(e.Year),
			e.Serial,
			owner,
			e.Vehicle,
			e.Plate,
			e.Notes,
		})
	}
	w.Flush()

	filename := fmt.Sprintf("equipos_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// ExportJobs 导出工单清单为 CSV
// GET /api/export/jobs
func (h *Handler) ExportJobs(c *gin.Context) {
	jobs, err := h.store.ListJobs(store.JobQueryOptions{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"ID", "Fecha", "Equipo", "Descripción", "Importe", "Próximo Service", "Días para Service", "Notas"})
	for _, j := range jobs {
		equipmentName := ""
		if e, err := h.store.GetEquipmentByID(j.EquipmentID); err == nil {
			equipmentName = fmt.Sprintf("%s %s", e.Brand, e.Model)
		}

		nextService := ""
		if j.NextServiceDate != nil {
			nextService = j.NextServiceDate.Format("02/01/2006")
		}
		nextDays := ""
		if j.NextServiceDays != nil {
			nextDays = strconv.Itoa(*j.NextServiceDays)
		}

		_ = w.Write([]string{
			strconv.FormatInt(j.ID, 10),
			j.DateDone.Format("02/01/2006"),
			equipmentName,
			j.Description,
			strconv.FormatFloat(j.Amount, 'f', 2, 64),
			nextService,
			nextDays,
			j.Notes,
		})
	}
	w.Flush()

	filename := fmt.Sprintf("trabajos_%s.csv", time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

// DownloadBackup 下载数据库备份
// GET /api/backup
func (h *Handler) DownloadBackup(c *gin.Context) {
	filename := fmt.Sprintf("backup_ead_%s.db", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/x-sqlite3")
	c.File(h.store.Path())
}
