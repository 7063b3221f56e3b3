package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/martin-lopez25/appbrechas/internal/config"
	"github.com/martin-lopez25/appbrechas/internal/loader"
	"github.com/martin-lopez25/appbrechas/internal/logging"
	"github.com/martin-lopez25/appbrechas/internal/model"
	"github.com/martin-lopez25/appbrechas/internal/normalizer"
	"github.com/martin-lopez25/appbrechas/internal/store"
)

// app 启动后共享的只读状态
type app struct {
	cfg      *config.AppConfig
	info     config.LoadConfigInfo
	logger   *zap.Logger
	store    *store.Store // LogDB 为空时为 nil
	table    *model.Table
	stats    normalizer.Stats
	sources  []string
	loadID   string
	loadedAt time.Time
}

func (a *app) Close() {
	if a.store != nil {
		_ = a.store.Close()
	}
	_ = a.logger.Sync()
}

// loadConfig 读取配置并应用命令行覆盖
func loadConfig() (*config.AppConfig, config.LoadConfigInfo, error) {
	path := configPath
	if path == "" {
		path = config.FindConfigPath()
	}
	cfg, info, err := config.LoadConfigFrom(path)
	if err != nil {
		return nil, info, err
	}
	if dataDir != "" {
		cfg.Data.DataDir = dataDir
	}
	if devMode {
		cfg.Server.DevMode = true
	}
	config.ResolvePaths(cfg)
	return cfg, info, nil
}

// bootstrap 加载配置、日志、记录库与规范表；任何一步失败都终止启动
func bootstrap() (*app, error) {
	cfg, info, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Server.DevMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if info.Path != "" {
		logger.Info("config loaded", zap.String("path", info.Path))
	}

	a, err := loadApp(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}
	a.info = info
	return a, nil
}

// loadApp 打开记录库并构建规范表
func loadApp(cfg *config.AppConfig, logger *zap.Logger) (*app, error) {
	if _, err := config.EnsureDataDir(cfg); err != nil {
		logger.Warn("failed to create data dir", zap.String("dir", cfg.Data.DataDir), zap.Error(err))
	}

	a := &app{cfg: cfg, logger: logger}
	if cfg.Data.LogDB != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Data.LogDB), 0755); err != nil {
			return nil, fmt.Errorf("create log db dir: %w", err)
		}
		st, err := store.New(cfg.Data.LogDB)
		if err != nil {
			return nil, fmt.Errorf("open log db: %w", err)
		}
		a.store = st
	}

	if err := a.loadTable(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) loadTable() error {
	cfg := a.cfg
	entry := store.LoadLog{
		GapSource:     cfg.Data.GapFile,
		CatalogSource: cfg.Data.CatalogFile,
	}

	table, err := a.buildTable(&entry)
	if err != nil {
		entry.Status = store.LoadStatusFailed
		entry.ErrorMessage = err.Error()
		a.recordLoad(entry)
		a.logger.Error("failed to load data",
			zap.String("gap_file", cfg.Data.GapFile),
			zap.String("catalog_file", cfg.Data.CatalogFile),
			zap.Error(err),
		)
		return err
	}

	a.table = table
	a.loadedAt = time.Now()
	a.sources = []string{cfg.Data.GapFile, cfg.Data.CatalogFile}
	entry.Status = store.LoadStatusOK
	a.loadID = a.recordLoad(entry)

	a.logger.Info("data loaded",
		zap.Int("rows", a.stats.Rows),
		zap.Int("facilities", a.stats.Facilities),
		zap.Int("catalog_rows", entry.CatalogRows),
		zap.Int("unmatched_titles", a.stats.UnmatchedTitles),
		zap.Int("duplicate_codes", a.stats.DuplicateCodes),
		zap.Int("unclassified", a.stats.Unclassified),
		zap.Int("numeric_fallbacks", a.stats.NumericFallbacks),
	)
	return nil
}

func (a *app) buildTable(entry *store.LoadLog) (*model.Table, error) {
	gap, err := loader.LoadGap(a.cfg.Data.GapFile)
	if err != nil {
		return nil, fmt.Errorf("load gap dataset: %w", err)
	}
	entry.GapHash = gap.Hash
	entry.GapRows = gap.Len()

	catalog, err := loader.LoadCatalog(a.cfg.Data.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	entry.CatalogHash = catalog.Hash
	entry.CatalogRows = catalog.Len()

	table, stats, err := normalizer.Normalize(gap, catalog, normalizer.Options{})
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	a.stats = stats
	entry.Facilities = stats.Facilities
	entry.UnmatchedTitles = stats.UnmatchedTitles
	entry.DuplicateCodes = stats.DuplicateCodes
	entry.Unclassified = stats.Unclassified
	entry.NumericFallbacks = stats.NumericFallbacks
	return table, nil
}

// recordLoad 写入加载记录，返回记录 ID；记录库不可用时返回空串
func (a *app) recordLoad(entry store.LoadLog) string {
	if a.store == nil {
		return ""
	}
	id, err := a.store.CreateLoadLog(entry)
	if err != nil {
		a.logger.Warn("failed to record load", zap.Error(err))
		return ""
	}
	return id
}
