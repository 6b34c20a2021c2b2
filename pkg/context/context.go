// Package context 组装一次命令执行所需的配置、viper 实例与日志记录器
package context

import (
	"context"

	"github.com/spf13/viper"

	"github.com/yeisme/jdoccov/pkg/configs"
	"github.com/yeisme/jdoccov/pkg/utils/log"
)

// JdoccovContext 命令执行上下文
type JdoccovContext struct {
	context.Context
	Config *configs.Config // 应用配置
	Viper  *viper.Viper    // 配置来源，config list 使用
	Logger log.Logger      // 日志记录器
}

// Flags 影响日志初始化的全局命令行参数
type Flags struct {
	ConfigPath string
	Debug      bool
	Verbose    bool
	Quiet      bool
}

// InitJdoccovContext 加载配置并初始化日志；命令行参数优先于配置文件
func InitJdoccovContext(parent context.Context, flags Flags) (*JdoccovContext, error) {
	if parent == nil {
		parent = context.Background()
	}
	config, v, err := configs.LoadConfig(flags.ConfigPath)
	if err != nil {
		return nil, err
	}

	if flags.Debug {
		config.App.Debug = true
	}
	if flags.Verbose {
		config.App.Verbose = true
	}
	if flags.Quiet {
		config.App.Quiet = true
	}

	logger := log.InitLogger(parent, &config.Log, &config.App)

	return &JdoccovContext{
		Context: parent,
		Config:  config,
		Viper:   v,
		Logger:  logger,
	}, nil
}
