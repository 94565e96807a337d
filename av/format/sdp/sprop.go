// Copyright (c) 2019,CAOHONGJU All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sdp

import (
	"errors"
	"strings"

	"github.com/cnotch/h264dump/utils/scan"
	"github.com/pixelbender/go-sdp/sdp"
)

// ErrNoParameterSets SDP 中没有 H264 视频媒体或没有 sprop-parameter-sets 属性
var ErrNoParameterSets = errors.New("sdp: no H264 sprop-parameter-sets")

// ParameterSets 从 SDP 会话描述中提取 H264 视频的 sprop-parameter-sets。
// 返回 base64 形式的参数集（按出现顺序，通常为 SPS、PPS）。
func ParameterSets(rawsdp string) ([]string, error) {
	session, err := sdp.ParseString(rawsdp)
	if err != nil {
		return nil, err
	}

	for _, media := range session.Media {
		if media.Type != "video" || len(media.Format) == 0 {
			continue
		}

		format := media.Format[0]
		if !strings.EqualFold(format.Name, "H264") {
			continue
		}

		for _, p := range format.Params {
			i := strings.Index(p, "sprop-parameter-sets=")
			if i < 0 {
				continue
			}
			p = p[i+len("sprop-parameter-sets="):]

			if endi := strings.IndexByte(p, ';'); endi > -1 {
				p = p[:endi]
			}
			return splitParameterSets(p), nil
		}
	}

	return nil, ErrNoParameterSets
}

// sprop-parameter-sets 的值是逗号分割的 base64 参数集列表
func splitParameterSets(s string) []string {
	var sets []string
	advance := s
	continueScan := true
	for continueScan {
		var token string
		advance, token, continueScan = scan.Comma.Scan(advance)
		if token != "" {
			sets = append(sets, token)
		}
	}
	return sets
}
