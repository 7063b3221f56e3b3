package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/martin-lopez25/appbrechas/internal/exporter"
	"github.com/martin-lopez25/appbrechas/internal/store"
)

// 下载链接有效期
const downloadTTL = 10 * time.Minute

type exportProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// ExportStream 导出 Excel（SSE 进度 + 完成后提供一次性下载地址）
// POST /api/facilities/:clues/export/stream
func (h *Handler) ExportStream(c *gin.Context) {
	facilityID := strings.TrimSpace(c.Param("clues"))

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	send := func(event exportProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	send(exportProgressEvent{
		Type:      "start",
		Message:   "Iniciando exportación",
		Data:      map[string]any{"clues": facilityID},
		Timestamp: time.Now(),
	})

	progressFn := func(p exporter.ProgressEvent) {
		send(exportProgressEvent{
			Type:      "progress",
			Message:   p.Stage,
			Data:      map[string]any{"percent": p.Percent},
			Timestamp: time.Now(),
		})
	}

	art, err := h.exporter.Export(exporter.ExportOptions{
		FacilityID: facilityID,
		Progress:   progressFn,
	})
	if err != nil {
		_ = c.Error(err)
		send(exportProgressEvent{
			Type:      "error",
			Message:   "Error al exportar: " + err.Error(),
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
		return
	}
	if art == nil {
		send(exportProgressEvent{
			Type:      "empty",
			Message:   MsgSelectFacility,
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
		return
	}
	h.recordExport(art, facilityID, store.ChannelStream)

	token := h.downloads.put(art.Name, art.Bytes, facilityID, downloadTTL)
	downloadURL := fmt.Sprintf("/api/export/download/%s", token)

	send(exportProgressEvent{
		Type:    "done",
		Message: "Exportación lista",
		Data: map[string]any{
			"percent":     100,
			"downloadUrl": downloadURL,
			"fileName":    art.Name,
		},
		Timestamp: time.Now(),
	})
}

// DownloadExport 下载流式导出的 Excel 文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	item, ok := h.downloads.take(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "El enlace de descarga expiró"})
		return
	}

	h.logger.Info("export downloaded",
		zap.String("clues", item.facilityID),
		zap.String("file", item.name),
		zap.Int("bytes", len(item.data)),
	)
	c.Header("Content-Disposition", buildExportContentDisposition(item.name))
	c.Data(http.StatusOK, exporter.ContentType, item.data)
}
