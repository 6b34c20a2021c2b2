package configs

import "github.com/spf13/viper"

// ScanConfig 扫描配置，对应 javadoc.Options
type ScanConfig struct {
	Extensions       []string `mapstructure:"extensions" json:"extensions" yaml:"extensions" toml:"extensions"`                     // 扫描的文件后缀
	Exclude          []string `mapstructure:"exclude" json:"exclude" yaml:"exclude" toml:"exclude"`                                 // 排除的 glob 模式
	RespectGitignore bool     `mapstructure:"respect_gitignore" json:"respect_gitignore" yaml:"respect_gitignore" toml:"respect_gitignore"` // 是否遵循 .gitignore
	MaxFileSize      int64    `mapstructure:"max_file_size" json:"max_file_size" yaml:"max_file_size" toml:"max_file_size"`         // 字节，0 表示不限制
	Lookback         int      `mapstructure:"lookback" json:"lookback" yaml:"lookback" toml:"lookback"`                             // Javadoc 回溯窗口
	Concurrency      int      `mapstructure:"concurrency" json:"concurrency" yaml:"concurrency" toml:"concurrency"`                 // <=1 表示串行
}

// ReportConfig 报告输出配置
type ReportConfig struct {
	Output string `mapstructure:"output" json:"output" yaml:"output" toml:"output"` // 报告文件名（写入当前目录）
	Title  string `mapstructure:"title" json:"title" yaml:"title" toml:"title"`
	Theme  string `mapstructure:"theme" json:"theme" yaml:"theme" toml:"theme"` // --preview 使用的 glamour 主题
	Width  int    `mapstructure:"width" json:"width" yaml:"width" toml:"width"` // 终端渲染宽度，0 表示自动探测
}

func setScanConfigDefaults(v *viper.Viper) {
	v.SetDefault("scan.extensions", []string{".java"})
	v.SetDefault("scan.exclude", []string{})
	v.SetDefault("scan.respect_gitignore", false)
	v.SetDefault("scan.max_file_size", 0)
	v.SetDefault("scan.lookback", 19)
	v.SetDefault("scan.concurrency", 1)
}

func setReportConfigDefaults(v *viper.Viper) {
	v.SetDefault("report.output", "javadoc_coverage_detailed.md")
	v.SetDefault("report.title", "Javadoc Coverage Report")
	v.SetDefault("report.theme", "dark")
	v.SetDefault("report.width", 0)
}
