package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/martin-lopez25/appbrechas/internal/exporter"
	"github.com/martin-lopez25/appbrechas/internal/model"
	"github.com/martin-lopez25/appbrechas/internal/report"
	"github.com/martin-lopez25/appbrechas/internal/store"
)

// Options 处理器选项
type Options struct {
	TopN       int
	DateLayout string
	Sources    []string  // 加载的源文件
	LoadedAt   time.Time // 规范表构建时间
	LoadID     string    // 对应 load_logs.id
}

// Handler API 处理器
//
// table 只读共享，各请求之间无需加锁。
type Handler struct {
	table     *model.Table
	exporter  *exporter.Exporter
	store     *store.Store // 可为 nil
	logger    *zap.Logger
	opts      Options
	downloads *exportDownloadStore
	now       func() time.Time
}

// NewHandler 创建 API 处理器
func NewHandler(table *model.Table, st *store.Store, logger *zap.Logger, opts Options) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		table:     table,
		exporter:  exporter.NewExporter(table),
		store:     st,
		logger:    logger,
		opts:      opts,
		downloads: newExportDownloadStore(),
		now:       time.Now,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// CLUES 下拉框
	router.GET("/facilities", h.ListFacilities)

	// 看板
	router.GET("/report", h.QueryReport)
	router.GET("/facilities/:clues/report", h.GetReport)

	// 导出
	router.GET("/facilities/:clues/export", h.Export)
	router.POST("/facilities/:clues/export/stream", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)
	router.GET("/exports", h.ListExports)
}

func (h *Handler) reportOptions() report.Options {
	return report.Options{
		TopN:       h.opts.TopN,
		DateLayout: h.opts.DateLayout,
		Now:        h.now(),
	}
}

// recordExport 写入导出记录；store 不可用时只打日志
func (h *Handler) recordExport(art *exporter.Artifact, facilityID, channel string) {
	h.logger.Info("export generated",
		zap.String("clues", facilityID),
		zap.String("file", art.Name),
		zap.Int("bytes", len(art.Bytes)),
		zap.Int("detail_rows", art.DetailRows),
		zap.String("channel", channel),
	)
	if h.store == nil {
		return
	}
	if _, err := h.store.InsertExportLog(store.ExportLog{
		FacilityID:  facilityID,
		FileName:    art.Name,
		FileSize:    len(art.Bytes),
		SummaryRows: art.SummaryRows,
		DetailRows:  art.DetailRows,
		Channel:     channel,
	}); err != nil {
		h.logger.Warn("failed to record export", zap.Error(err))
	}
}
