// Copyright (c) 2019,CAOHONGJU All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package h264

import "fmt"

/*
 * Table 7-1 – NAL unit type codes, syntax element categories, and NAL unit type classes in
 * T-REC-H.264-201704
 */
// H264 NAL 单元类型
const (
	NalUnspecified     = 0
	NalSlice           = 1  // 不分区非IDR图像的片
	NalDpa             = 2  // 片分区A
	NalDpb             = 3  // 片分区B
	NalDpc             = 4  // 片分区C
	NalIdrSlice        = 5  // IDR图像中的片（I帧）
	NalSei             = 6  // 补充增强信息单元
	NalSps             = 7  // 序列参数集
	NalPps             = 8  // 图像参数集
	NalAud             = 9  // 分界符
	NalEndSequence     = 10 // 序列结束
	NalEndStream       = 11 // 码流结束
	NalFillerData      = 12 // 填充
	NalSpsExt          = 13 // 序列参数集扩展
	NalPrefix          = 14
	NalSubSps          = 15
	NalAuxiliarySlice  = 19
	NalExtenSlice      = 20
	NalDepthExtenSlice = 21

	NalTypeBitmask = 0x1F
)

// 其他常量
const (
	// 7.4.2.1.1: seq_parameter_set_id is in [0, 31].
	MaxSpsCount = 32

	// A.3: MaxDpbFrames is bounded above by 16.
	MaxDpbFrames = 16

	// E.2.2: cpb_cnt_minus1 is in [0, 31].
	MaxCpbCnt = 32
)

// Table 7-1 中定义了名称的 NAL 单元类型。
// 16-18、22-31 为保留或未指定，不在表内。
var typeNames = map[uint8]string{
	NalUnspecified:     "Unspecified",
	NalSlice:           "Non-IDR slice",
	NalDpa:             "Partition A",
	NalDpb:             "Partition B",
	NalDpc:             "Partition C",
	NalIdrSlice:        "IDR slice",
	NalSei:             "SEI",
	NalSps:             "SPS",
	NalPps:             "PPS",
	NalAud:             "Access unit delimiter",
	NalEndSequence:     "End of sequence",
	NalEndStream:       "End of stream",
	NalFillerData:      "Filler data",
	NalSpsExt:          "SPS extension",
	NalPrefix:          "Prefix NAL unit",
	NalSubSps:          "Subset SPS",
	NalAuxiliarySlice:  "Auxiliary coded slice without partitioning",
	NalExtenSlice:      "Coded slice extension",
	NalDepthExtenSlice: "Coded slice extension for depth views",
}

// TypeName 返回 NAL 单元类型的显示名称。
// 保留和未指定的类型返回通用标签，不会越界。
func TypeName(nt uint8) string {
	if name, ok := typeNames[nt&NalTypeBitmask]; ok {
		return name
	}
	return fmt.Sprintf("Reserved/Unspecified (%d)", nt&NalTypeBitmask)
}

// NulType .
func NulType(nt byte) byte {
	return nt & NalTypeBitmask
}

// IsSps .
func IsSps(nt byte) bool {
	return nt&NalTypeBitmask == NalSps
}

// IsPps .
func IsPps(nt byte) bool {
	return nt&NalTypeBitmask == NalPps
}

// IsIdrSlice .
func IsIdrSlice(nt byte) bool {
	return nt&NalTypeBitmask == NalIdrSlice
}
