// Copyright (c) 2019,CAOHONGJU All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"flag"
)

// config 工具配置
type config struct {
	Short    bool      `json:"short"`    // 只输出每个 NAL 单元的类型名
	SDP      bool      `json:"sdp"`      // 输入为 SDP 会话描述，解析其中的 sprop-parameter-sets
	Unescape bool      `json:"unescape"` // 解析前移除 0x03 竞争防止字节
	MaxSize  int       `json:"maxsize"`  // 输入文件大小上限（MiB）
	Log      LogConfig `json:"log"`      // 日志配置
}

func (c *config) initFlags() {
	flag.BoolVar(&c.Short, "short", false,
		"Print only the type name of each NAL unit")
	flag.BoolVar(&c.SDP, "sdp", false,
		"Treat the input as an SDP session description and trace its sprop-parameter-sets")
	flag.BoolVar(&c.Unescape, "unescape", true,
		"Remove 0x03 emulation prevention bytes before parsing")
	flag.IntVar(&c.MaxSize, "max-size", 10,
		"Set the maximum input file size in megabytes")

	// 初始化日志配置
	c.Log.initFlags()
}
