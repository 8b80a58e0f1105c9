// Copyright 2026 The idnakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idna

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"
)

const (
	zwnj = 0x200C
	zwj  = 0x200D

	cccVirama = 9
)

// validateLabel applies the structural and contextual checks to one
// non-empty label in its Unicode form. All applicable checks run; flags
// are additive and never short-circuit each other.
func (p *Processor) validateLabel(label string, st *state) {
	if strings.ContainsRune(label, '.') {
		st.errors.record(ErrLabelHasDot)
	}
	if first, _ := utf8.DecodeRuneInString(label); unicode.Is(unicode.M, first) {
		st.errors.record(ErrLeadingCombiningMark)
	}
	if label[0] == '-' {
		st.errors.record(ErrLeadingHyphen)
	}
	if label[len(label)-1] == '-' {
		st.errors.record(ErrTrailingHyphen)
	}
	if len(label) >= 4 && label[2] == '-' && label[3] == '-' {
		st.errors.record(ErrHyphen34)
	}
	// Disallowed input was replaced by U+FFFD during mapping; anything
	// else disallowed cannot survive it.
	if strings.ContainsRune(label, utf8.RuneError) {
		st.errors.record(ErrDisallowed)
	}
	if p.options&CheckContextJ != 0 {
		p.checkContextJ(label, st)
	}
	if p.options&CheckBidi != 0 {
		p.checkBidi(label, st)
	}
}

// checkContextJ applies the RFC 5892 appendix A.1 and A.2 rules: ZWNJ is
// legal after a virama or inside a cursive join, ZWJ only after a virama.
func (p *Processor) checkContextJ(label string, st *state) {
	rs := []rune(label)
	for i, r := range rs {
		switch r {
		case zwnj:
			if i > 0 && ccc(rs[i-1]) == cccVirama {
				continue
			}
			if !validJoinRun(rs, i) {
				st.errors.record(ErrContextJ)
			}
		case zwj:
			if i == 0 || ccc(rs[i-1]) != cccVirama {
				st.errors.record(ErrContextJ)
			}
		}
	}
}

// validJoinRun reports whether the ZWNJ at rs[i] matches
// (L|D)(T)*ZWNJ(T)*(R|D).
func validJoinRun(rs []rune, i int) bool {
	j := i - 1
	for j >= 0 && joinType(rs[j]) == joinTransparent {
		j--
	}
	if j < 0 {
		return false
	}
	if t := joinType(rs[j]); t != joinLeft && t != joinDual {
		return false
	}
	k := i + 1
	for k < len(rs) && joinType(rs[k]) == joinTransparent {
		k++
	}
	if k >= len(rs) {
		return false
	}
	t := joinType(rs[k])
	return t == joinRight || t == joinDual
}

func ccc(r rune) uint8 {
	return norm.NFC.PropertiesString(string(r)).CCC()
}

func bidiClass(r rune) bidi.Class {
	props, _ := bidi.LookupRune(r)
	return props.Class()
}

// checkBidi evaluates the six conditions of the RFC 5893 Bidi Rule for one
// label and updates the call's Bidi domain name bookkeeping. The ErrBidi
// flag itself is raised at the end of the operation, once it is known
// whether the input is a Bidi domain name.
func (p *Processor) checkBidi(label string, st *state) {
	classes := make([]bidi.Class, 0, len(label))
	for _, r := range label {
		c := bidiClass(r)
		if c == bidi.R || c == bidi.AL || c == bidi.AN {
			st.isBidi = true
		}
		classes = append(classes, c)
	}
	if !bidiRuleHolds(classes) {
		st.bidiFail = true
	}
}

func bidiRuleHolds(classes []bidi.Class) bool {
	if len(classes) == 0 {
		return true
	}
	// Condition 3/6: the last character before any trailing NSM run must
	// carry an allowed ending class.
	last := len(classes) - 1
	for last >= 0 && classes[last] == bidi.NSM {
		last--
	}
	if last < 0 {
		return false
	}
	switch classes[0] {
	case bidi.R, bidi.AL:
		hasEN, hasAN := false, false
		for _, c := range classes[1:] {
			switch c {
			case bidi.R, bidi.AL, bidi.AN, bidi.EN, bidi.ES, bidi.CS, bidi.ET, bidi.ON, bidi.BN, bidi.NSM:
				if c == bidi.EN {
					hasEN = true
				}
				if c == bidi.AN {
					hasAN = true
				}
			default:
				return false
			}
		}
		switch classes[last] {
		case bidi.R, bidi.AL, bidi.EN, bidi.AN:
		default:
			return false
		}
		return !(hasEN && hasAN)
	case bidi.L:
		for _, c := range classes[1:] {
			switch c {
			case bidi.L, bidi.EN, bidi.ES, bidi.CS, bidi.ET, bidi.ON, bidi.BN, bidi.NSM:
			default:
				return false
			}
		}
		switch classes[last] {
		case bidi.L, bidi.EN:
		default:
			return false
		}
		return true
	}
	// Condition 1: the first character must be L, R or AL.
	return false
}
