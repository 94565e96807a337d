// Copyright (c) 2019,CAOHONGJU All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/cnotch/h264dump/av/format/sdp"
	"github.com/cnotch/h264dump/av/h264"
	"github.com/cnotch/h264dump/config"
	"github.com/cnotch/xlog"
)

func main() {
	// 初始化配置
	config.InitConfig()

	path := config.InputPath()
	if path == "" {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file>\n", config.Name)
		os.Exit(2)
	}

	if config.SDP() {
		dumpSDP(path)
		return
	}
	dumpStream(path)
}

// readInput 读取整个输入文件，超过配置的上限时退出
func readInput(path string) []byte {
	info, err := os.Stat(path)
	if err != nil {
		xlog.Panic(err.Error())
	}
	if info.Size() > config.MaxFileSize() {
		xlog.Panic(fmt.Sprintf("input file too large: %d bytes (limit %d)",
			info.Size(), config.MaxFileSize()))
	}

	data, err := ioutil.ReadFile(path)
	if err != nil {
		xlog.Panic(err.Error())
	}
	return data
}

func dumpStream(path string) {
	data := readInput(path)

	nalus := h264.SplitAnnexB(data)
	if len(nalus) == 0 {
		xlog.Warnf("%s: no start code found", path)
		return
	}

	for _, nalu := range nalus {
		unit := nalu.Data
		if config.Unescape() {
			unit = h264.Unescape(unit)
		}

		trace, err := h264.TraceNALU(unit)

		if config.Short() {
			fmt.Println(h264.TypeName(trace.Type))
			continue
		}

		fmt.Printf("NAL unit @0x%08x (%d bytes): %s\n",
			nalu.Offset, len(nalu.Data), h264.TypeName(trace.Type))
		printTrace(trace)

		if err != nil {
			reportError(trace, err)
		} else if trace.Type == h264.NalSps {
			fmt.Printf("  => %dx%d", trace.Width(), trace.Height())
			if fr := trace.FrameRate(); fr > 0 {
				fmt.Printf(" @ %.3f fps", fr)
			}
			fmt.Println()
		}
		fmt.Println()
	}
}

func dumpSDP(path string) {
	data := readInput(path)

	sets, err := sdp.ParameterSets(string(data))
	if err != nil {
		xlog.Panic(err.Error())
	}

	for _, b64 := range sets {
		trace, err := h264.TraceBase64(b64)
		if err != nil && trace == nil {
			xlog.Errorf("%s: %v", b64, err)
			continue
		}

		fmt.Printf("Parameter set %s: %s\n", b64, h264.TypeName(trace.Type))
		if !config.Short() {
			printTrace(trace)
			if err != nil {
				reportError(trace, err)
			}
		}
		fmt.Println()
	}
}

// printTrace 逐行输出跟踪记录：
// <位偏移> <语法元素名> <编码方式> <原始位> = <解码值>
func printTrace(trace *h264.Trace) {
	nameW, codeW := 0, 0
	for _, f := range trace.Fields {
		if len(f.Name) > nameW {
			nameW = len(f.Name)
		}
		if len(f.Code()) > codeW {
			codeW = len(f.Code())
		}
	}

	for _, f := range trace.Fields {
		fmt.Printf("  %4d %-*s %-*s %0*b = %d\n",
			f.Offset, nameW, f.Name, codeW, f.Code(), f.Bits, f.Raw, f.Value)
	}
}

func reportError(trace *h264.Trace, err error) {
	if errors.Is(err, h264.ErrUnsupportedFeature) {
		fmt.Printf("  decoded %d fields, then stopped: %v\n", len(trace.Fields), err)
		return
	}
	fmt.Printf("  decoded %d fields, then failed: %v\n", len(trace.Fields), err)
}
