// Copyright (c) 2019,CAOHONGJU All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package h264

import "bytes"

var startCode = []byte{0x00, 0x00, 0x01}

// NALU Annex-B 字节流中的一个 NAL 单元。
// Data 含 3 字节起始码，借用输入缓冲区，不复制。
type NALU struct {
	Offset int // 起始码在输入缓冲区中的字节偏移
	Data   []byte
}

// SplitAnnexB 按 00 00 01 起始码切分 Annex-B 字节流。
// 返回的单元范围连续且不重叠；起始码之前的字节被忽略。
func SplitAnnexB(buf []byte) []NALU {
	var nalus []NALU

	start := bytes.Index(buf, startCode)
	if start < 0 {
		return nil
	}

	for start >= 0 {
		next := bytes.Index(buf[start+len(startCode):], startCode)
		if next < 0 {
			nalus = append(nalus, NALU{Offset: start, Data: buf[start:]})
			break
		}
		end := start + len(startCode) + next
		nalus = append(nalus, NALU{Offset: start, Data: buf[start:end]})
		start = end
	}

	return nalus
}

// RemoveStartCode 移除 NALU 前的 0x00000001 或 0x000001 起始码
func RemoveStartCode(nalu []byte) []byte {
	if bytes.HasPrefix(nalu, []byte{0x0, 0x0, 0x0, 0x1}) {
		return nalu[4:]
	}
	if bytes.HasPrefix(nalu, startCode) {
		return nalu[3:]
	}
	return nalu
}

// Unescape A general routine for making a copy of a NAL unit,
// removing 'emulation' bytes from the copy
// copy from live555
func Unescape(from []byte) []byte {
	from = RemoveStartCode(from)
	to := make([]byte, len(from))
	toMaxSize := len(to)
	fromSize := len(from)
	toSize := 0
	i := 0
	for i < fromSize && toSize+1 < toMaxSize {
		if i+2 < fromSize && from[i] == 0 && from[i+1] == 0 && from[i+2] == 3 {
			to[toSize] = 0
			to[toSize+1] = 0
			toSize += 2
			i += 3
		} else {
			to[toSize] = from[i]
			toSize++
			i++
		}
	}

	// 如果剩余最后一个字节，拷贝它
	if i < fromSize && toSize < toMaxSize {
		to[toSize] = from[i]
		toSize++
		i++
	}

	return to[:toSize]
}
