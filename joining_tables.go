// Copyright 2026 The idnakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idna

import "unicode"

// Code generated by gen.go; DO NOT EDIT.

var joinRightTable = unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0622, Hi: 0x0625, Stride: 1},
		{Lo: 0x0627, Hi: 0x0627, Stride: 1},
		{Lo: 0x0629, Hi: 0x0629, Stride: 1},
		{Lo: 0x062F, Hi: 0x0632, Stride: 1},
		{Lo: 0x0648, Hi: 0x0648, Stride: 1},
		{Lo: 0x0671, Hi: 0x0673, Stride: 1},
		{Lo: 0x0675, Hi: 0x0677, Stride: 1},
		{Lo: 0x0688, Hi: 0x0699, Stride: 1},
		{Lo: 0x06C0, Hi: 0x06C0, Stride: 1},
		{Lo: 0x06C3, Hi: 0x06CB, Stride: 1},
		{Lo: 0x06CD, Hi: 0x06CD, Stride: 1},
		{Lo: 0x06CF, Hi: 0x06CF, Stride: 1},
		{Lo: 0x06D2, Hi: 0x06D3, Stride: 1},
		{Lo: 0x06D5, Hi: 0x06D5, Stride: 1},
		{Lo: 0x06EE, Hi: 0x06EF, Stride: 1},
		{Lo: 0x0710, Hi: 0x0710, Stride: 1},
		{Lo: 0x0715, Hi: 0x0719, Stride: 1},
		{Lo: 0x071E, Hi: 0x071E, Stride: 1},
		{Lo: 0x0728, Hi: 0x0728, Stride: 1},
		{Lo: 0x072A, Hi: 0x072A, Stride: 1},
		{Lo: 0x072C, Hi: 0x072C, Stride: 1},
		{Lo: 0x072F, Hi: 0x072F, Stride: 1},
		{Lo: 0x074D, Hi: 0x074D, Stride: 1},
		{Lo: 0x0759, Hi: 0x075B, Stride: 1},
		{Lo: 0x076B, Hi: 0x076C, Stride: 1},
		{Lo: 0x0771, Hi: 0x0771, Stride: 1},
		{Lo: 0x0773, Hi: 0x0774, Stride: 1},
		{Lo: 0x0778, Hi: 0x0779, Stride: 1},
		{Lo: 0x08AA, Hi: 0x08AC, Stride: 1},
		{Lo: 0x08AE, Hi: 0x08AE, Stride: 1},
		{Lo: 0x08B1, Hi: 0x08B2, Stride: 1},
	},
}

var joinDualTable = unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0620, Hi: 0x0620, Stride: 1},
		{Lo: 0x0626, Hi: 0x0626, Stride: 1},
		{Lo: 0x0628, Hi: 0x0628, Stride: 1},
		{Lo: 0x062A, Hi: 0x062E, Stride: 1},
		{Lo: 0x0633, Hi: 0x0647, Stride: 1},
		{Lo: 0x0649, Hi: 0x064A, Stride: 1},
		{Lo: 0x066E, Hi: 0x066F, Stride: 1},
		{Lo: 0x0678, Hi: 0x0687, Stride: 1},
		{Lo: 0x069A, Hi: 0x06BF, Stride: 1},
		{Lo: 0x06C1, Hi: 0x06C2, Stride: 1},
		{Lo: 0x06CC, Hi: 0x06CC, Stride: 1},
		{Lo: 0x06CE, Hi: 0x06CE, Stride: 1},
		{Lo: 0x06D0, Hi: 0x06D1, Stride: 1},
		{Lo: 0x06FA, Hi: 0x06FC, Stride: 1},
		{Lo: 0x06FF, Hi: 0x06FF, Stride: 1},
		{Lo: 0x0712, Hi: 0x0714, Stride: 1},
		{Lo: 0x071A, Hi: 0x071D, Stride: 1},
		{Lo: 0x071F, Hi: 0x0727, Stride: 1},
		{Lo: 0x0729, Hi: 0x0729, Stride: 1},
		{Lo: 0x072B, Hi: 0x072B, Stride: 1},
		{Lo: 0x072D, Hi: 0x072E, Stride: 1},
		{Lo: 0x074E, Hi: 0x0758, Stride: 1},
		{Lo: 0x075C, Hi: 0x076A, Stride: 1},
		{Lo: 0x076D, Hi: 0x0770, Stride: 1},
		{Lo: 0x0772, Hi: 0x0772, Stride: 1},
		{Lo: 0x0775, Hi: 0x0777, Stride: 1},
		{Lo: 0x077A, Hi: 0x077F, Stride: 1},
		{Lo: 0x07CA, Hi: 0x07EA, Stride: 1},
		{Lo: 0x1807, Hi: 0x1807, Stride: 1},
		{Lo: 0x1820, Hi: 0x1878, Stride: 1},
		{Lo: 0x1887, Hi: 0x18A8, Stride: 1},
		{Lo: 0x18AA, Hi: 0x18AA, Stride: 1},
		{Lo: 0xA840, Hi: 0xA871, Stride: 1},
	},
}

var joinLeftTable = unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0xA872, Hi: 0xA872, Stride: 1},
	},
}
