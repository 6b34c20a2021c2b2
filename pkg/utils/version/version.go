// Package version 提供 jdoccov 的构建信息，字段由 -ldflags 在构建时注入
package version

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

var (
	// Version 发布版本号，例如 v0.3.1；开发构建为 dev
	Version = "dev"
	// GitCommit 构建时的提交哈希
	GitCommit = "unknown"
	// BuildDate 构建时间（RFC3339）
	BuildDate = "unknown"
	// GoVersion 构建所用的 Go 版本
	GoVersion = runtime.Version()
	// Platform 目标平台
	Platform = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
)

// Info 版本信息
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetVersion 返回规范化后的版本信息
func GetVersion() Info {
	return Info{
		Version:   Normalize(Version),
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  Platform,
	}
}

// Normalize 把 "1.2.3" 这类标签统一为 "v1.2.3"；不是合法语义化版本时原样返回
func Normalize(tag string) string {
	tag = strings.TrimSpace(tag)
	switch {
	case semver.IsValid(tag):
		return semver.Canonical(tag)
	case semver.IsValid("v" + tag):
		return semver.Canonical("v" + tag)
	default:
		return tag
	}
}

// IsRelease 判断版本是否为正式发布版（合法且不带预发布后缀）
func IsRelease(tag string) bool {
	v := Normalize(tag)
	return semver.IsValid(v) && semver.Prerelease(v) == ""
}

// GetVersionString 详细版本字符串
func GetVersionString() string {
	info := GetVersion()
	return fmt.Sprintf("jdoccov has version %s built with %s from %s (%s) on %s",
		info.Version, info.GoVersion, info.GitCommit, info.Platform, info.BuildDate)
}

// GetShortVersionString 简短版本字符串，正式版附带发布页链接
func GetShortVersionString() string {
	info := GetVersion()

	dateStr := info.BuildDate
	if t, err := time.Parse(time.RFC3339, info.BuildDate); err == nil {
		dateStr = t.Format("2006-01-02")
	}

	out := fmt.Sprintf("jdoccov version %s (%s)", info.Version, dateStr)
	if IsRelease(info.Version) {
		out += "\nhttps://github.com/yeisme/jdoccov/releases/tag/" + info.Version
	}
	return out
}
