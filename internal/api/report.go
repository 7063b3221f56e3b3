package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/martin-lopez25/appbrechas/internal/report"
)

// 看板提示文案
const (
	MsgSelectFacility = "Selecciona un CLUES para ver los resultados"
	msgNotFoundFormat = "No se encontró información para CLUES: %s"
)

// facilityOption 下拉框选项
type facilityOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ListFacilities CLUES 列表（按 CLUES 升序）
// GET /api/facilities
func (h *Handler) ListFacilities(c *gin.Context) {
	facilities := h.table.Facilities()
	out := make([]facilityOption, 0, len(facilities))
	for _, f := range facilities {
		out = append(out, facilityOption{Value: f.ID, Label: f.Label()})
	}
	c.JSON(http.StatusOK, gin.H{
		"items": out,
		"total": len(out),
	})
}

// GetReport 单个 CLUES 的看板
// GET /api/facilities/:clues/report
func (h *Handler) GetReport(c *gin.Context) {
	h.writeReport(c, c.Param("clues"))
}

// QueryReport 与 GetReport 相同，CLUES 来自查询参数；未选择时返回提示
// GET /api/report?clues=
func (h *Handler) QueryReport(c *gin.Context) {
	h.writeReport(c, c.Query("clues"))
}

func (h *Handler) writeReport(c *gin.Context, facilityID string) {
	facilityID = strings.TrimSpace(facilityID)
	rep, err := report.Build(h.table, facilityID, h.reportOptions())
	switch {
	case errors.Is(err, report.ErrNoFacility):
		c.JSON(http.StatusBadRequest, gin.H{"error": MsgSelectFacility, "code": "no_selection"})
		return
	case errors.Is(err, report.ErrFacilityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": NotFoundMessage(facilityID), "code": "not_found"})
		return
	case err != nil:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al generar el reporte"})
		return
	}
	c.JSON(http.StatusOK, rep)
}

// NotFoundMessage CLUES 不存在时的提示
func NotFoundMessage(facilityID string) string {
	return fmt.Sprintf(msgNotFoundFormat, facilityID)
}
