// Copyright (c) 2019,CAOHONGJU All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bits

import "errors"

// 读取错误
var (
	// ErrOutOfData 要求读取的位数超出剩余数据
	ErrOutOfData = errors.New("bits: out of data")
	// ErrInvalidCode 无效的读取宽度，或 Exp-Golomb 编码前导 0 太长无法用 uint32 表示
	ErrInvalidCode = errors.New("bits: invalid code")
)

// Reader 前向只读的位读取器，MSB 优先。
type Reader struct {
	buf    []byte
	offset int // bit base
}

// NewReader retruns a new Reader.
func NewReader(buf []byte) *Reader {
	return &Reader{
		buf: buf,
	}
}

// Offset returns the offset of bits.
func (r *Reader) Offset() int {
	return r.offset
}

// BitsLeft returns the number of left bits.
func (r *Reader) BitsLeft() int {
	return len(r.buf)<<3 - r.offset
}

// ReadBit read a bit.
func (r *Reader) ReadBit() (uint8, error) {
	if r.BitsLeft() < 1 {
		return 0, ErrOutOfData
	}

	tmp := (r.buf[r.offset>>3] >> (7 - r.offset&0x7)) & 1
	r.offset++
	return tmp, nil
}

var bitsMask = [9]byte{
	0x00,
	0x01, 0x03, 0x07, 0x0f,
	0x1f, 0x3f, 0x7f, 0xff,
}

// Read read the uint32 of n bits, 1 <= n <= 32.
func (r *Reader) Read(n int) (uint32, error) {
	if n <= 0 || n > 32 {
		return 0, ErrInvalidCode
	}
	if r.BitsLeft() < n {
		return 0, ErrOutOfData
	}

	idx := r.offset >> 3
	validBits := 8 - r.offset&0x7
	r.offset += n

	var tmp uint32
	for n >= validBits {
		n -= validBits
		tmp |= uint32(r.buf[idx]&bitsMask[validBits]) << n
		idx++
		validBits = 8
	}

	if n > 0 {
		tmp |= uint32((r.buf[idx] >> (validBits - n)) & bitsMask[n])
	}
	return tmp, nil
}

// ReadUe read the UE(v) GolombCode.
//
// 前导 0 计数 z，跳过终止位 1 后再读 z 位 suffix：
// value = 1<<z - 1 + suffix，共消耗 2*z+1 位。
func (r *Reader) ReadUe() (uint32, error) {
	zeros := 0
	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit != 0 {
			break
		}
		zeros++
		// 超过 31 个前导 0 时 value 无法用 uint32 表示，按坏流处理
		if zeros > 31 {
			return 0, ErrInvalidCode
		}
	}

	if zeros == 0 {
		return 0, nil
	}

	suffix, err := r.Read(zeros)
	if err != nil {
		return 0, err
	}
	return 1<<uint(zeros) - 1 + suffix, nil
}

// ReadSe read the SE(v) GolombCode.
//
// k=0→0, k=1→1, k=2→-1, k=3→2, k=4→-2 ...
// 即 (-1)^(k+1) * ceil(k/2)，只用整数运算。
func (r *Reader) ReadSe() (int32, error) {
	k, err := r.ReadUe()
	if err != nil {
		return 0, err
	}
	if k&0x01 != 0 {
		return int32(k>>1) + 1, nil
	}
	return -int32(k >> 1), nil
}
