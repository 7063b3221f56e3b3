package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Rows       int      `json:"rows"`       // 规范表行数
	Facilities int      `json:"facilities"` // CLUES 数
	Columns    []string `json:"columns"`    // 规范表列
	Sources    []string `json:"sources"`    // 源文件
	LoadedAt   string   `json:"loadedAt"`   // 构建时间
	LoadID     string   `json:"loadId"`     // 加载记录 ID
	Exports    int      `json:"exports"`    // 累计导出次数（未启用日志时为 0）
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Rows:       h.table.Len(),
		Facilities: len(h.table.Facilities()),
		Columns:    h.table.Columns,
		Sources:    h.opts.Sources,
		LoadID:     h.opts.LoadID,
	}
	if !h.opts.LoadedAt.IsZero() {
		resp.LoadedAt = h.opts.LoadedAt.Format("2006-01-02 15:04:05")
	}
	if h.store != nil {
		if n, err := h.store.CountExports(""); err == nil {
			resp.Exports = n
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ListExports 最近的导出记录
// GET /api/exports
func (h *Handler) ListExports(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"items": []any{}})
		return
	}
	logs, err := h.store.ListExportLogs(50)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo leer el historial de exportaciones"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": logs})
}
