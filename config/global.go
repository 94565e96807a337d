// Copyright (c) 2019,CAOHONGJU All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	cfg "github.com/cnotch/loader"
	"github.com/cnotch/xlog"
)

// 工具名
const (
	Vendor  = "CAOHONGJU"
	Name    = "h264dump"
	Version = "V1.0.0"
)

var globalC *config

// InitConfig 初始化 Config
func InitConfig() {
	exe, err := os.Executable()
	if err != nil {
		xlog.Panic(err.Error())
	}

	configPath := filepath.Join(filepath.Dir(exe), Name+".conf")

	globalC = new(config)
	globalC.initFlags()

	// 加载配置文件、环境变量和命令行参数
	if err := cfg.Load(globalC,
		&cfg.JSONLoader{Path: configPath, CreatedIfNonExsit: true},
		&cfg.EnvLoader{Prefix: strings.ToUpper(Name)},
		&cfg.FlagLoader{}); err != nil {
		// 异常，直接退出
		xlog.Panic(err.Error())
	}

	// 初始化日志
	globalC.Log.initLogger()
}

// InputPath 输入文件路径（第一个位置参数）
func InputPath() string {
	return flag.Arg(0)
}

// Short 是否只输出单元类型名
func Short() bool {
	if globalC == nil {
		return false
	}
	return globalC.Short
}

// SDP 输入是否为 SDP 会话描述
func SDP() bool {
	if globalC == nil {
		return false
	}
	return globalC.SDP
}

// Unescape 解析前是否移除竞争防止字节
func Unescape() bool {
	if globalC == nil {
		return true
	}
	return globalC.Unescape
}

// MaxFileSize 输入文件大小上限（字节）
func MaxFileSize() int64 {
	if globalC == nil || globalC.MaxSize <= 0 {
		return 10 << 20
	}
	return int64(globalC.MaxSize) << 20
}
