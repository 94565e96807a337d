// Copyright (c) 2019,CAOHONGJU All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package h264

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitAnnexB(t *testing.T) {
	stream := []byte{
		0x00, 0x00, 0x01, 0x67, 0x64, 0x00, 0x1f,
		0x00, 0x00, 0x01, 0x68, 0xce,
		0x00, 0x00, 0x01, 0x65, 0x88, 0x80,
	}

	nalus := SplitAnnexB(stream)
	require.Len(t, nalus, 3)

	assert.Equal(t, 0, nalus[0].Offset)
	assert.Equal(t, 7, nalus[1].Offset)
	assert.Equal(t, 12, nalus[2].Offset)

	// 单元范围连续、不重叠，且都以起始码开头
	total := 0
	for i, n := range nalus {
		assert.True(t, bytes.HasPrefix(n.Data, startCode), "nalu %d", i)
		assert.Equal(t, total, n.Offset, "nalu %d", i)
		total += len(n.Data)
	}
	assert.Equal(t, len(stream), total)
}

func TestSplitAnnexBLeadingGarbage(t *testing.T) {
	stream := []byte{
		0xab, 0xcd,
		0x00, 0x00, 0x01, 0x67, 0x64,
	}
	nalus := SplitAnnexB(stream)
	require.Len(t, nalus, 1)
	assert.Equal(t, 2, nalus[0].Offset)
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x67, 0x64}, nalus[0].Data)
}

func TestSplitAnnexBNoStartCode(t *testing.T) {
	assert.Nil(t, SplitAnnexB([]byte{0x67, 0x64, 0x00}))
	assert.Nil(t, SplitAnnexB(nil))
	assert.Nil(t, SplitAnnexB([]byte{0x00, 0x00}))
}

func TestSplitAnnexBStartCodeOnly(t *testing.T) {
	// 只有起始码的单元要保留，由解析方报告截断
	nalus := SplitAnnexB([]byte{0x00, 0x00, 0x01})
	require.Len(t, nalus, 1)
	assert.Equal(t, []byte{0x00, 0x00, 0x01}, nalus[0].Data)
}

func TestRemoveStartCode(t *testing.T) {
	assert.Equal(t, []byte{0x67}, RemoveStartCode([]byte{0x00, 0x00, 0x01, 0x67}))
	assert.Equal(t, []byte{0x67}, RemoveStartCode([]byte{0x00, 0x00, 0x00, 0x01, 0x67}))
	assert.Equal(t, []byte{0x67}, RemoveStartCode([]byte{0x67}))
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{
			"emulation",
			[]byte{0x67, 0x00, 0x00, 0x03, 0x01, 0x42},
			[]byte{0x67, 0x00, 0x00, 0x01, 0x42},
		},
		{
			"with_start_code",
			[]byte{0x00, 0x00, 0x01, 0x67, 0x00, 0x00, 0x03, 0x00},
			[]byte{0x67, 0x00, 0x00, 0x00},
		},
		{
			"no_emulation",
			[]byte{0x67, 0x64, 0x00, 0x1f},
			[]byte{0x67, 0x64, 0x00, 0x1f},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Unescape(tt.in))
		})
	}
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "SPS", TypeName(NalSps))
	assert.Equal(t, "IDR slice", TypeName(NalIdrSlice))
	assert.Equal(t, "Unspecified", TypeName(NalUnspecified))
	assert.Equal(t, "Coded slice extension for depth views", TypeName(21))

	// 16-18 与 22-31 没有目录名，返回通用标签
	for _, nt := range []uint8{16, 17, 18, 22, 25, 31} {
		assert.Contains(t, TypeName(nt), "Reserved/Unspecified")
	}
}
