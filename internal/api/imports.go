package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/Aguus1610/EAD-ServicesManagement/internal/importer"
	"github.com/Aguus1610/EAD-ServicesManagement/internal/parser"
)

// UploadWorkbook 上传工作簿，解析为预览并开启确认会话
// POST /api/import
func (h *Handler) UploadWorkbook(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}

	maxBytes := int64(h.cfg.Import.MaxUploadSizeMB) << 20
	if maxBytes > 0 && fileHeader.Size > maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("文件超出大小限制 (%d MB)", h.cfg.Import.MaxUploadSizeMB),
		})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取文件失败"})
		return
	}
	defer src.Close()

	// 工作簿级解析失败：终止整个导入，不产生部分结果
	file, err := excelize.OpenReader(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("无法读取工作簿: %v", err)})
		return
	}
	defer file.Close()

	result := parser.ParseWorkbook(file)
	preview := importer.BuildPreview(result.Records, h.cfg.Import.PreviewRows)

	ttl := time.Duration(h.cfg.Import.SessionTTLMin) * time.Minute
	token := h.uploads.put(fileHeader.Filename, result.Records, ttl)

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"preview": preview,
		"sheets":  result.Sheets,
	})
}

// ConfirmImport 确认会话并落库 (SSE 流式响应)
// POST /api/import/:token/confirm
func (h *Handler) ConfirmImport(c *gin.Context) {
	token := c.Param("token")

	session, ok := h.uploads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "会话不存在或已过期"})
		return
	}
	// 单次有效：确认即消费
	h.uploads.delete(token)

	// 设置 SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	progressChan := h.coordinator.Import(session.records, session.filename)

	for event := range progressChan {
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}

		// SSE 格式: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}

// DiscardImport 丢弃未确认的上传会话
// DELETE /api/import/:token
func (h *Handler) DiscardImport(c *gin.Context) {
	token := c.Param("token")

	if _, ok := h.uploads.get(token); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "会话不存在或已过期"})
		return
	}
	h.uploads.delete(token)

	c.JSON(http.StatusOK, gin.H{"discarded": true})
}

// ListImportLogs 导入历史
// GET /api/import/logs
func (h *Handler) ListImportLogs(c *gin.Context) {
	logs, err := h.store.ListImportLogs(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// CleanDuplicates 清理重复工单
// POST /api/maintenance/clean-duplicates
func (h *Handler) CleanDuplicates(c *gin.Context) {
	reconciler := importer.NewReconciler(h.store)
	deleted, err := reconciler.CleanDuplicates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
