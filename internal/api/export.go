package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/martin-lopez25/appbrechas/internal/exporter"
	"github.com/martin-lopez25/appbrechas/internal/store"
)

// Export 导出 Excel
// GET /api/facilities/:clues/export
func (h *Handler) Export(c *gin.Context) {
	facilityID := strings.TrimSpace(c.Param("clues"))

	art, err := h.exporter.Export(exporter.ExportOptions{FacilityID: facilityID})
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al exportar: " + err.Error()})
		return
	}
	// 未选择 CLUES：没有可下载的内容
	if art == nil {
		c.Status(http.StatusNoContent)
		return
	}
	h.recordExport(art, facilityID, store.ChannelHTTP)

	c.Header("Content-Disposition", buildExportContentDisposition(art.Name))
	c.Data(http.StatusOK, exporter.ContentType, art.Bytes)
}

// buildExportContentDisposition ASCII 文件名 + RFC 5987 编码的原始文件名
func buildExportContentDisposition(name string) string {
	ascii := make([]rune, 0, len(name))
	for _, r := range name {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			r = '_'
		}
		ascii = append(ascii, r)
	}
	return "attachment; filename=\"" + string(ascii) + "\"; filename*=UTF-8''" + url.PathEscape(name)
}
