package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Catalog CatalogConfig `toml:"catalog"`
	Report  ReportConfig  `toml:"report"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// CatalogConfig 料金マスター配置，Path 为空时只提供简易模式
type CatalogConfig struct {
	Path string `toml:"path"`
}

// ReportConfig 报表配置
type ReportConfig struct {
	Name             string `toml:"name"`
	IncentiveDisplay bool   `toml:"incentive_display"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
	Path          string
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Catalog: CatalogConfig{
			Path: "",
		},
		Report: ReportConfig{
			Name:             "電力削減診断",
			IncentiveDisplay: false,
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

// DefaultConfigPath 可执行文件同目录下的 config.toml
func DefaultConfigPath() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}
	return filepath.Join(exeDir, "config.toml")
}

// LoadConfigWithInfo 从 config.toml 加载配置并返回元信息
// path 为空时使用 DefaultConfigPath
func LoadConfigWithInfo(path string) (*AppConfig, LoadConfigInfo, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// 配置文件不存在，使用默认配置
			applyEnv(config)
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	applyEnv(config)
	return config, info, nil
}

// 环境变量覆盖（用于部署 / 本地运行）
func applyEnv(config *AppConfig) {
	if v := os.Getenv("DENNKI_CATALOG_PATH"); v != "" {
		config.Catalog.Path = v
	}
	if v := os.Getenv("DENNKI_REPORT_NAME"); v != "" {
		config.Report.Name = v
	}
}

// SaveConfig 保存配置到 path
func SaveConfig(path string, config *AppConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ResolvePath 相对路径按可执行文件目录解析
func ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if _, err := os.Stat(p); err == nil {
		return p
	}
	exeDir, err := GetExeDir()
	if err != nil {
		return p
	}
	return filepath.Join(exeDir, p)
}

// DefaultCatalogFile data_dir 下默认的料金マスター文件名
const DefaultCatalogFile = "master_prices.csv"

// CatalogPath 实际使用的料金マスター路径
// 未配置 [catalog] path 时，data_dir 下存在 master_prices.csv 则使用它；都没有时返回空
func (c *AppConfig) CatalogPath() string {
	if c.Catalog.Path != "" {
		return ResolvePath(c.Catalog.Path)
	}
	if c.Data.DataDir == "" {
		return ""
	}
	candidate := ResolvePath(filepath.Join(c.Data.DataDir, DefaultCatalogFile))
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	return candidate
}
