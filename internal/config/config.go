package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName 配置文件名
const ConfigFileName = "config.toml"

// 环境变量覆盖（可写在 .env 中）
const (
	EnvGapFile     = "APPBRECHAS_GAP_FILE"
	EnvCatalogFile = "APPBRECHAS_CATALOG_FILE"
	EnvPort        = "APPBRECHAS_PORT"
	EnvLogDB       = "APPBRECHAS_LOG_DB"
)

// AppConfig 应用配置
type AppConfig struct {
	Server ServerConfig `toml:"server"`
	Data   DataConfig   `toml:"data"`
	Report ReportConfig `toml:"report"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port" validate:"min=1,max=65535"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
//
// 相对路径均相对 DataDir 解析（见 ResolvePaths）。
type DataConfig struct {
	DataDir     string `toml:"data_dir" validate:"required"`
	GapFile     string `toml:"gap_file" validate:"required"`
	CatalogFile string `toml:"catalog_file" validate:"required"`
	// LogDB 为空时不记录加载/导出日志
	LogDB string `toml:"log_db"`
}

// ReportConfig 看板配置
type ReportConfig struct {
	TopN       int    `toml:"top_n" validate:"min=1,max=100"`
	DateLayout string `toml:"date_layout" validate:"required"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    8050,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir:     "data",
			GapFile:     "brechas_unificadas.csv",
			CatalogFile: "catalogo_cargo.csv",
			LogDB:       "appbrechas.db",
		},
		Report: ReportConfig{
			TopN:       5,
			DateLayout: "02/01/2006",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// FindConfigPath 依次查找当前目录、可执行文件目录下的 config.toml；都不存在时返回空串
func FindConfigPath() string {
	candidates := []string{ConfigFileName}
	if exeDir, err := GetExeDir(); err == nil {
		candidates = append(candidates, filepath.Join(exeDir, ConfigFileName))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadConfigWithInfo 查找并加载 config.toml，返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return LoadConfigFrom(FindConfigPath())
}

// LoadConfigFrom 从指定路径加载配置；path 为空或文件不存在时使用默认配置
// 环境变量覆盖在文件之后生效，最后做校验
func LoadConfigFrom(path string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			info.PortSpecified = isPortSpecifiedInToml(data)
			if err := toml.Unmarshal(data, config); err != nil {
				return nil, info, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// 配置文件不存在，使用默认配置
			info.Path = ""
		default:
			return nil, info, err
		}
	}

	if err := applyEnv(config, &info); err != nil {
		return nil, info, err
	}
	if err := Validate(config); err != nil {
		return nil, info, err
	}
	return config, info, nil
}

// applyEnv 环境变量中的路径按当前目录转为绝对路径，不受 data_dir 影响
func applyEnv(config *AppConfig, info *LoadConfigInfo) error {
	if v := os.Getenv(EnvGapFile); v != "" {
		config.Data.GapFile = absPath(v)
	}
	if v := os.Getenv(EnvCatalogFile); v != "" {
		config.Data.CatalogFile = absPath(v)
	}
	if v, ok := os.LookupEnv(EnvLogDB); ok {
		config.Data.LogDB = absPath(v)
	}
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", EnvPort, v, err)
		}
		config.Server.Port = port
		info.PortSpecified = true
	}
	return nil
}

func absPath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// ResolvePaths 将 gap_file / catalog_file / log_db 中的相对路径拼到 data_dir 下
// 需在 data_dir 最终确定（含命令行覆盖）之后调用
func ResolvePaths(config *AppConfig) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(config.Data.DataDir, p)
	}
	config.Data.GapFile = resolve(config.Data.GapFile)
	config.Data.CatalogFile = resolve(config.Data.CatalogFile)
	config.Data.LogDB = resolve(config.Data.LogDB)
}

// Validate 校验配置
func Validate(config *AppConfig) error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SaveConfig 保存配置到指定路径
func SaveConfig(config *AppConfig, path string) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// EnsureDataDir 确保数据目录及 exports 子目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if err := os.MkdirAll(filepath.Join(dataDir, "exports"), 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// ExportDir 命令行导出的默认目录
func ExportDir(config *AppConfig) string {
	return filepath.Join(config.Data.DataDir, "exports")
}
