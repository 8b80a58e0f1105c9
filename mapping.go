// Copyright 2026 The idnakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idna

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/norm"
)

// category is the UTS #46 disposition of a code point before options are
// applied. The STD3 variants resolve to their lenient form unless
// UseSTD3Rules is set.
type category uint8

const (
	valid category = iota
	validSTD3
	mapped
	mappedSTD3
	deviation
	ignored
	disallowed
)

// disposition pairs a category with its mapping value, which may be empty
// (a character can map to nothing) or several characters long.
type disposition struct {
	cat     category
	mapping string
}

// deviations are the characters whose treatment differs between
// transitional and nontransitional processing, with their transitional
// mapping values.
var deviations = map[rune]string{
	0x00DF: "ss",     // LATIN SMALL LETTER SHARP S
	0x03C2: "σ", // GREEK SMALL LETTER FINAL SIGMA
	0x200C: "",       // ZERO WIDTH NON-JOINER
	0x200D: "",       // ZERO WIDTH JOINER
}

// dotMapping maps the label separator variants to full stop. The
// fullwidth form also decomposes under NFKC, but the ideographic and
// halfwidth forms do not and must be mapped here.
var dotMapping = map[rune]string{
	0x3002: ".", // IDEOGRAPHIC FULL STOP
	0xFF0E: ".", // FULLWIDTH FULL STOP
	0xFF61: ".", // HALFWIDTH IDEOGRAPHIC FULL STOP
}

// ignoredTable holds the characters UTS #46 maps to nothing. The set is
// carried over from the IDNA2003 map-to-nothing list (RFC 3454 table B.1)
// minus the joiner characters, which are deviations.
var ignoredTable = unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x00AD, Hi: 0x00AD, Stride: 1}, // SOFT HYPHEN
		{Lo: 0x034F, Hi: 0x034F, Stride: 1}, // COMBINING GRAPHEME JOINER
		{Lo: 0x1806, Hi: 0x1806, Stride: 1}, // MONGOLIAN TODO SOFT HYPHEN
		{Lo: 0x180B, Hi: 0x180D, Stride: 1}, // MONGOLIAN FREE VARIATION SELECTORS
		{Lo: 0x200B, Hi: 0x200B, Stride: 1}, // ZERO WIDTH SPACE
		{Lo: 0x2060, Hi: 0x2060, Stride: 1}, // WORD JOINER
		{Lo: 0xFE00, Hi: 0xFE0F, Stride: 1}, // VARIATION SELECTORS
		{Lo: 0xFEFF, Hi: 0xFEFF, Stride: 1}, // ZERO WIDTH NO-BREAK SPACE
	},
	R32: []unicode.Range32{
		{Lo: 0xE0100, Hi: 0xE01EF, Stride: 1}, // VARIATION SELECTORS SUPPLEMENT
	},
}

// disallowedTable holds assigned characters that are stable under mapping
// and carry an otherwise permitted general category, but that UTS #46
// nevertheless disallows.
var disallowedTable = unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x115F, Hi: 0x1160, Stride: 1}, // HANGUL FILLERS
		{Lo: 0x17B4, Hi: 0x17B5, Stride: 1}, // KHMER INHERENT VOWELS
		{Lo: 0x3164, Hi: 0x3164, Stride: 1}, // HANGUL FILLER
		{Lo: 0xFFA0, Hi: 0xFFA0, Stride: 1}, // HALFWIDTH HANGUL FILLER
		{Lo: 0xFFF9, Hi: 0xFFFD, Stride: 1}, // INTERLINEAR ANNOTATION, OBJ/REPLACEMENT
	},
}

var (
	ignoredSet    = runes.In(&ignoredTable)
	disallowedSet = runes.In(&disallowedTable)
)

// classCache memoizes dispositions per rune. Classification is a pure
// function, so a process-wide cache is safe.
var classCache sync.Map // rune -> disposition

func classify(r rune) disposition {
	if v, ok := classCache.Load(r); ok {
		return v.(disposition)
	}
	d := classifyRune(r)
	classCache.Store(r, d)
	return d
}

// classifyRune derives the UTS #46 disposition of r from the Unicode
// character database: deviation and separator sets, the map-to-nothing
// set, case-fold/NFKC stability, and general category rules.
func classifyRune(r rune) disposition {
	if r < utf8.RuneSelf {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9', r == '-', r == '.':
			return disposition{cat: valid}
		case 'A' <= r && r <= 'Z':
			return disposition{cat: mapped, mapping: string(r + 'a' - 'A')}
		default:
			// All other ASCII is permitted by default and disallowed only
			// under STD3 rules.
			return disposition{cat: validSTD3}
		}
	}
	if m, ok := deviations[r]; ok {
		return disposition{cat: deviation, mapping: m}
	}
	if m, ok := dotMapping[r]; ok {
		return disposition{cat: mapped, mapping: m}
	}
	if ignoredSet.Contains(r) {
		return disposition{cat: ignored}
	}
	if !utf8.ValidRune(r) || isNoncharacter(r) || disallowedSet.Contains(r) {
		return disposition{cat: disallowed}
	}
	if m := foldMap(r); m != string(r) {
		// Mapped. The image determines the exact category: it must not
		// introduce a label separator, a disallowed character, or (outside
		// STD3-lenient mode) a restricted ASCII character.
		cat := mapped
		for _, ir := range m {
			if ir == '.' {
				return disposition{cat: disallowed}
			}
			switch classify(ir).cat {
			case valid, deviation, ignored:
			case validSTD3:
				cat = mappedSTD3
			default:
				return disposition{cat: disallowed}
			}
		}
		return disposition{cat: cat, mapping: m}
	}
	// Stable characters are valid unless unassigned or in a control,
	// format, surrogate, private use or separator category.
	if !unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S) {
		return disposition{cat: disallowed}
	}
	return disposition{cat: valid}
}

// foldMap returns the case-fold/NFKC fixed point of r.
func foldMap(r rune) string {
	fold := cases.Fold()
	s := string(r)
	for i := 0; i < 4; i++ {
		t := norm.NFKC.String(fold.String(s))
		if t == s {
			break
		}
		s = t
	}
	return s
}

func isNoncharacter(r rune) bool {
	return (0xFDD0 <= r && r <= 0xFDEF) || r&0xFFFE == 0xFFFE
}

// simplify resolves the conditional categories against the processor's
// options and the mapping mode.
func (p *Processor) simplify(d disposition, transitional bool) disposition {
	switch d.cat {
	case validSTD3:
		if p.options&UseSTD3Rules != 0 {
			d.cat = disallowed
		} else {
			d.cat = valid
		}
	case mappedSTD3:
		if p.options&UseSTD3Rules != 0 {
			d.cat = disallowed
		} else {
			d.cat = mapped
		}
	case deviation:
		if transitional {
			d.cat = mapped
		} else {
			d.cat = valid
		}
	}
	return d
}

// mapString applies the UTS #46 mapping table to s and normalizes the
// result to NFC. Disallowed characters are replaced by U+FFFD and
// recorded; mapping never fails.
func (p *Processor) mapString(s string, transitional bool, e *Errors) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch d := p.simplify(classify(r), transitional); d.cat {
		case valid:
			b.WriteRune(r)
		case mapped:
			b.WriteString(d.mapping)
		case ignored:
			// Mapped to nothing.
		default:
			e.record(ErrDisallowed)
			b.WriteRune(utf8.RuneError)
		}
	}
	return nfc(b.String())
}
