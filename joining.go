// Copyright 2026 The idnakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idna

import "unicode"

// Joining types per the Unicode ArabicShaping data, as needed by the
// CONTEXTJ rules. Transparent is fully derived from the general
// categories; the left/right/dual tables in joining_tables.go list the
// joining scripts and are regenerated by gen.go. Join-causing characters
// are folded into the dual class, which is equivalent for the CONTEXTJ
// regular expression.

type joiningType uint8

const (
	joinNone joiningType = iota
	joinLeft
	joinRight
	joinDual
	joinTransparent
)

func joinType(r rune) joiningType {
	switch r {
	case zwnj:
		return joinNone
	case zwj:
		return joinDual // join causing
	}
	if unicode.In(r, unicode.Mn, unicode.Me, unicode.Cf) {
		return joinTransparent
	}
	switch {
	case unicode.Is(&joinRightTable, r):
		return joinRight
	case unicode.Is(&joinDualTable, r):
		return joinDual
	case unicode.Is(&joinLeftTable, r):
		return joinLeft
	}
	return joinNone
}
