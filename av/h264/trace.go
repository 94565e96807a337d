// Copyright (c) 2019,CAOHONGJU All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package h264

import (
	"fmt"

	"github.com/cnotch/h264dump/utils/bits"
)

// Kind 语法元素的编码方式
type Kind uint8

// 语法元素编码方式
const (
	KindU  Kind = iota // u(n) 定长无符号
	KindUe             // ue(v) 无符号 Exp-Golomb
	KindSe             // se(v) 有符号 Exp-Golomb
)

// Field 一条解码跟踪记录，对应码流中的一个语法元素。
type Field struct {
	Name   string // 语法元素名，如 profile_idc
	Kind   Kind
	Offset int    // 相对 NAL 头首字节的位偏移
	Bits   int    // 编码占用的位数
	Raw    uint64 // 编码的原始位
	Value  int64  // 解码值，se(v) 为有符号
}

// Code 返回编码方式的显示形式，如 u(8)、ue(5)、se(3)。
func (f Field) Code() string {
	switch f.Kind {
	case KindUe:
		return fmt.Sprintf("ue(%d)", f.Bits)
	case KindSe:
		return fmt.Sprintf("se(%d)", f.Bits)
	default:
		return fmt.Sprintf("u(%d)", f.Bits)
	}
}

// Trace 一个 NAL 单元的有序解码跟踪。
// 解析失败时 Fields 保留已成功解码的记录。
type Trace struct {
	Type   uint8 // nal_unit_type
	Fields []Field
	Bits   int // 语法解析消耗的总位数
}

// Field 按名称查找记录；同名记录（两个 HRD 块）返回第一条。
func (t *Trace) Field(name string) (Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Value 返回指定记录的解码值，记录不存在时返回 0。
func (t *Trace) Value(name string) int64 {
	f, _ := t.Field(name)
	return f.Value
}

// fieldDecoder 在位读取器上解码语法元素并逐条记录跟踪。
type fieldDecoder struct {
	r      *bits.Reader
	fields []Field
}

func (d *fieldDecoder) u(name string, n int) (uint32, error) {
	off := d.r.Offset()
	v, err := d.r.Read(n)
	if err != nil {
		return 0, err
	}
	d.fields = append(d.fields, Field{
		Name:   name,
		Kind:   KindU,
		Offset: off,
		Bits:   n,
		Raw:    uint64(v),
		Value:  int64(v),
	})
	return v, nil
}

func (d *fieldDecoder) flag(name string) (uint8, error) {
	v, err := d.u(name, 1)
	return uint8(v), err
}

func (d *fieldDecoder) ue(name string) (uint32, error) {
	off := d.r.Offset()
	v, err := d.r.ReadUe()
	if err != nil {
		return 0, err
	}
	// ue 编码的位模式在数值上等于 value+1
	d.fields = append(d.fields, Field{
		Name:   name,
		Kind:   KindUe,
		Offset: off,
		Bits:   d.r.Offset() - off,
		Raw:    uint64(v) + 1,
		Value:  int64(v),
	})
	return v, nil
}

func (d *fieldDecoder) se(name string) (int32, error) {
	off := d.r.Offset()
	v, err := d.r.ReadSe()
	if err != nil {
		return 0, err
	}

	// 还原映射前的 ue 值以得到原始位模式
	var k uint64
	if v > 0 {
		k = uint64(v)*2 - 1
	} else {
		k = uint64(-v) * 2
	}

	d.fields = append(d.fields, Field{
		Name:   name,
		Kind:   KindSe,
		Offset: off,
		Bits:   d.r.Offset() - off,
		Raw:    k + 1,
		Value:  int64(v),
	})
	return v, nil
}
