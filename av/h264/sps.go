// Copyright (c) 2019,CAOHONGJU All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
//
// Grammar follows T-REC-H.264-201704 7.3.2.1.1, E.1.1 and E.1.2;
// field order as in FFmpeg cbs_h264_syntax_template.c
//
package h264

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/cnotch/h264dump/utils/bits"
)

// ErrUnsupportedFeature 语法到达了工具有意不解码的结构（缩放列表等）。
// 与坏流错误区分开，调用方可报告“未完全解码”而非“损坏”。
var ErrUnsupportedFeature = errors.New("h264: unsupported feature")

// A.2: 含 chroma_format_idc 等扩展字段的 profile_idc 集合
var highProfiles = map[uint32]bool{
	100: true, 110: true, 122: true, 244: true,
	44: true, 83: true, 86: true, 118: true,
	128: true, 138: true, 139: true, 134: true,
}

// TraceNALU 解码一个 NAL 单元并返回其语法跟踪。
// unit 可以带 00 00 01 或 00 00 00 01 起始码，也可以直接以 NAL 头开始。
// SPS 单元解码完整的 SPS/VUI/HRD 语法，其它类型只解码 NAL 头。
// 解析失败时返回已解码的部分跟踪和错误。
func TraceNALU(unit []byte) (*Trace, error) {
	data := RemoveStartCode(unit)

	d := &fieldDecoder{r: bits.NewReader(data)}
	trace := &Trace{}
	err := traceUnit(d, trace)

	trace.Fields = d.fields
	trace.Bits = d.r.Offset()
	return trace, err
}

// TraceBase64 解码 base64 形式的参数集（如 SDP sprop-parameter-sets）。
func TraceBase64(b64 string) (*Trace, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("h264: decode base64 parameter set: %w", err)
	}
	return TraceNALU(Unescape(data))
}

func traceUnit(d *fieldDecoder, trace *Trace) error {
	if _, err := d.flag("forbidden_zero_bit"); err != nil {
		return err
	}
	if _, err := d.u("nal_ref_idc", 2); err != nil {
		return err
	}
	nut, err := d.u("nal_unit_type", 5)
	if err != nil {
		return err
	}
	trace.Type = uint8(nut)

	if nut == NalSps {
		return traceSPS(d)
	}
	return nil
}

func traceSPS(d *fieldDecoder) error {
	profileIdc, err := d.u("profile_idc", 8)
	if err != nil {
		return err
	}

	for i := 0; i < 6; i++ {
		if _, err := d.flag(fmt.Sprintf("constraint_set%d_flag", i)); err != nil {
			return err
		}
	}
	if _, err := d.u("reserved_zero_2bits", 2); err != nil {
		return err
	}
	if _, err := d.u("level_idc", 8); err != nil {
		return err
	}
	if _, err := d.ue("seq_parameter_set_id"); err != nil {
		return err
	}

	// 其余字段只出现在扩展 profile 中
	if !highProfiles[profileIdc] {
		return nil
	}

	chromaFormatIdc, err := d.ue("chroma_format_idc")
	if err != nil {
		return err
	}
	if chromaFormatIdc == 3 {
		if _, err := d.flag("separate_colour_plane_flag"); err != nil {
			return err
		}
	}
	if _, err := d.ue("bit_depth_luma_minus8"); err != nil {
		return err
	}
	if _, err := d.ue("bit_depth_chroma_minus8"); err != nil {
		return err
	}
	if _, err := d.flag("qpprime_y_zero_transform_bypass_flag"); err != nil {
		return err
	}

	scalingMatrix, err := d.flag("seq_scaling_matrix_present_flag")
	if err != nil {
		return err
	}
	if scalingMatrix != 0 {
		// 缩放列表的位长依赖数据本身，部分解码会使后续所有字段失步
		return fmt.Errorf("%w: seq_scaling_matrix", ErrUnsupportedFeature)
	}

	if _, err := d.ue("log2_max_frame_num_minus4"); err != nil {
		return err
	}

	picOrderCntType, err := d.ue("pic_order_cnt_type")
	if err != nil {
		return err
	}
	switch picOrderCntType {
	case 0:
		if _, err := d.ue("log2_max_pic_order_cnt_lsb_minus4"); err != nil {
			return err
		}
	case 1:
		if _, err := d.flag("delta_pic_order_always_zero_flag"); err != nil {
			return err
		}
		if _, err := d.se("offset_for_non_ref_pic"); err != nil {
			return err
		}
		if _, err := d.se("offset_for_top_to_bottom_field"); err != nil {
			return err
		}
		cycle, err := d.ue("num_ref_frames_in_pic_order_cnt_cycle")
		if err != nil {
			return err
		}
		for i := uint32(0); i < cycle; i++ {
			if _, err := d.se(fmt.Sprintf("offset_for_ref_frame[%d]", i)); err != nil {
				return err
			}
		}
	}

	if _, err := d.ue("max_num_ref_frames"); err != nil {
		return err
	}
	if _, err := d.flag("gaps_in_frame_num_value_allowed_flag"); err != nil {
		return err
	}
	if _, err := d.ue("pic_width_in_mbs_minus1"); err != nil {
		return err
	}
	if _, err := d.ue("pic_height_in_map_units_minus1"); err != nil {
		return err
	}

	frameMbsOnly, err := d.flag("frame_mbs_only_flag")
	if err != nil {
		return err
	}
	if frameMbsOnly != 1 {
		if _, err := d.flag("mb_adaptive_frame_field_flag"); err != nil {
			return err
		}
	}
	if _, err := d.flag("direct_8x8_inference_flag"); err != nil {
		return err
	}

	cropping, err := d.flag("frame_cropping_flag")
	if err != nil {
		return err
	}
	if cropping == 1 {
		if _, err := d.ue("frame_crop_left_offset"); err != nil {
			return err
		}
		if _, err := d.ue("frame_crop_right_offset"); err != nil {
			return err
		}
		if _, err := d.ue("frame_crop_top_offset"); err != nil {
			return err
		}
		if _, err := d.ue("frame_crop_bottom_offset"); err != nil {
			return err
		}
	}

	vui, err := d.flag("vui_parameters_present_flag")
	if err != nil {
		return err
	}
	if vui == 1 {
		return traceVUI(d)
	}
	return nil
}

func traceVUI(d *fieldDecoder) error {
	aspectRatio, err := d.flag("aspect_ratio_info_present_flag")
	if err != nil {
		return err
	}
	if aspectRatio == 1 {
		idc, err := d.u("aspect_ratio_idc", 8)
		if err != nil {
			return err
		}
		if idc == 255 { // Extended_SAR
			if _, err := d.u("sar_width", 16); err != nil {
				return err
			}
			if _, err := d.u("sar_height", 16); err != nil {
				return err
			}
		}
	}

	overscan, err := d.flag("overscan_info_present_flag")
	if err != nil {
		return err
	}
	if overscan == 1 {
		if _, err := d.flag("overscan_appropriate_flag"); err != nil {
			return err
		}
	}

	videoSignal, err := d.flag("video_signal_type_present_flag")
	if err != nil {
		return err
	}
	if videoSignal == 1 {
		if _, err := d.u("video_format", 3); err != nil {
			return err
		}
		if _, err := d.flag("video_full_range_flag"); err != nil {
			return err
		}
		colour, err := d.flag("colour_description_present_flag")
		if err != nil {
			return err
		}
		if colour == 1 {
			if _, err := d.u("colour_primaries", 8); err != nil {
				return err
			}
			if _, err := d.u("transfer_characteristics", 8); err != nil {
				return err
			}
			if _, err := d.u("matrix_coefficients", 8); err != nil {
				return err
			}
		}
	}

	chromaLoc, err := d.flag("chroma_loc_info_present_flag")
	if err != nil {
		return err
	}
	if chromaLoc == 1 {
		if _, err := d.ue("chroma_sample_loc_type_top_field"); err != nil {
			return err
		}
		if _, err := d.ue("chroma_sample_loc_type_bottom_field"); err != nil {
			return err
		}
	}

	timing, err := d.flag("timing_info_present_flag")
	if err != nil {
		return err
	}
	if timing == 1 {
		if _, err := d.u("num_units_in_tick", 32); err != nil {
			return err
		}
		if _, err := d.u("time_scale", 32); err != nil {
			return err
		}
		if _, err := d.flag("fixed_frame_rate_flag"); err != nil {
			return err
		}
	}

	nalHrd, err := d.flag("nal_hrd_parameters_present_flag")
	if err != nil {
		return err
	}
	if nalHrd == 1 {
		if err := traceHRD(d); err != nil {
			return err
		}
	}

	vclHrd, err := d.flag("vcl_hrd_parameters_present_flag")
	if err != nil {
		return err
	}
	if vclHrd == 1 {
		if err := traceHRD(d); err != nil {
			return err
		}
	}

	if nalHrd == 1 || vclHrd == 1 {
		if _, err := d.flag("low_delay_hrd_flag"); err != nil {
			return err
		}
	}

	if _, err := d.flag("pic_struct_present_flag"); err != nil {
		return err
	}

	restriction, err := d.flag("bitstream_restriction_flag")
	if err != nil {
		return err
	}
	if restriction == 1 {
		if _, err := d.flag("motion_vectors_over_pic_boundaries_flag"); err != nil {
			return err
		}
		if _, err := d.ue("max_bytes_per_pic_denom"); err != nil {
			return err
		}
		if _, err := d.ue("max_bits_per_mb_denom"); err != nil {
			return err
		}
		if _, err := d.ue("log2_max_mv_length_horizontal"); err != nil {
			return err
		}
		if _, err := d.ue("log2_max_mv_length_vertical"); err != nil {
			return err
		}
		if _, err := d.ue("max_num_reorder_frames"); err != nil {
			return err
		}
		if _, err := d.ue("max_dec_frame_buffering"); err != nil {
			return err
		}
	}

	return nil
}

func traceHRD(d *fieldDecoder) error {
	cpbCnt, err := d.ue("cpb_cnt_minus1")
	if err != nil {
		return err
	}
	if _, err := d.u("bit_rate_scale", 4); err != nil {
		return err
	}
	if _, err := d.u("cpb_size_scale", 4); err != nil {
		return err
	}

	for i := uint32(0); i <= cpbCnt; i++ {
		if _, err := d.ue(fmt.Sprintf("bit_rate_value_minus1[%d]", i)); err != nil {
			return err
		}
		if _, err := d.ue(fmt.Sprintf("cpb_size_value_minus1[%d]", i)); err != nil {
			return err
		}
		if _, err := d.flag(fmt.Sprintf("cbr_flag[%d]", i)); err != nil {
			return err
		}
	}

	if _, err := d.u("initial_cpb_removal_delay_length_minus1", 5); err != nil {
		return err
	}
	if _, err := d.u("cpb_removal_delay_length_minus1", 5); err != nil {
		return err
	}
	if _, err := d.u("dpb_output_delay_length_minus1", 5); err != nil {
		return err
	}
	if _, err := d.u("time_offset_length", 5); err != nil {
		return err
	}
	return nil
}

// Width 从 SPS 跟踪计算视频宽度（像素）
func (t *Trace) Width() int {
	w := (t.Value("pic_width_in_mbs_minus1")+1)*16 -
		t.Value("frame_crop_left_offset")*2 - t.Value("frame_crop_right_offset")*2
	return int(w)
}

// Height 从 SPS 跟踪计算视频高度（像素）
func (t *Trace) Height() int {
	h := (2-t.Value("frame_mbs_only_flag"))*(t.Value("pic_height_in_map_units_minus1")+1)*16 -
		t.Value("frame_crop_top_offset")*2 - t.Value("frame_crop_bottom_offset")*2
	return int(h)
}

// FrameRate 从 SPS 跟踪计算帧率，无 timing 信息时返回 0。
func (t *Trace) FrameRate() float64 {
	numUnits := t.Value("num_units_in_tick")
	if numUnits == 0 {
		return 0.0
	}
	return float64(t.Value("time_scale")) / float64(numUnits*2)
}
