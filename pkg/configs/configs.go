// Package configs 提供应用程序配置管理功能
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Version string       `mapstructure:"version" json:"version" yaml:"version" toml:"version"`
	Log     LogConfig    `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
	App     AppConfig    `mapstructure:"app" json:"app" yaml:"app" toml:"app"`
	Scan    ScanConfig   `mapstructure:"scan" json:"scan" yaml:"scan" toml:"scan"`
	Report  ReportConfig `mapstructure:"report" json:"report" yaml:"report" toml:"report"`
}

// setDefaults 设置所有配置段的默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "1.0")
	setLogConfigDefaults(v)
	setAppConfigDefaults(v)
	setScanConfigDefaults(v)
	setReportConfigDefaults(v)
}

var globalConfig *Config

// tryLoadConfigFiles 按搜索路径尝试不同格式的配置文件，找到即返回 true
func tryLoadConfigFiles(v *viper.Viper) bool {
	searchPaths := []string{
		".",
		"./configs",
		"$HOME",
		"$HOME/.config",
		"$HOME/.config/jdoccov",
	}

	if runtime.GOOS == "windows" {
		searchPaths = append(searchPaths, "$USERPROFILE", "$APPDATA/jdoccov")
	} else {
		searchPaths = append(searchPaths, "/etc/jdoccov")
	}

	configNames := []string{".jdoccov", "jdoccov"}
	extensions := []string{"yaml", "yml", "json", "toml"}

	for _, path := range searchPaths {
		for _, name := range configNames {
			for _, ext := range extensions {
				configFile := filepath.Join(path, name+"."+ext)
				if strings.Contains(configFile, "$") {
					configFile = os.ExpandEnv(configFile)
				}
				if _, err := os.Stat(configFile); err == nil {
					v.SetConfigFile(configFile)
					return true
				}
			}
		}
	}

	return false
}

// LoadConfig 加载配置文件；configPath 为空时按搜索路径查找，找不到则只使用默认值
func LoadConfig(configPath string) (*Config, *viper.Viper, error) {
	v := viper.New()
	found := true
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		found = tryLoadConfigFiles(v)
	}

	// 环境变量，例如 JDOCCOV_SCAN_LOOKBACK=25
	v.SetEnvPrefix("JDOCCOV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if found {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, nil, fmt.Errorf("读取配置文件失败: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 文件日志需要目录存在
	if config.Log.Mode == "file" || config.Log.Mode == "both" {
		if err := os.MkdirAll(filepath.Dir(config.Log.FilePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("创建日志目录失败: %w", err)
		}
	}

	globalConfig = &config
	return &config, v, nil
}

// GetConfig 获取全局配置，未加载时使用默认搜索路径加载
func GetConfig() *Config {
	if globalConfig == nil {
		config, _, err := LoadConfig("")
		if err != nil {
			panic(fmt.Sprintf("无法加载配置: %v", err))
		}
		return config
	}
	return globalConfig
}
