// Copyright 2026 The idnakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:generate go run gen.go

// Package idna converts internationalized domain names between their
// Unicode and ASCII-Compatible-Encoding (ACE) forms using the
// compatibility processing defined by UTS (Unicode Technical Standard)
// #46, which defines a standard to deal with the transition from IDNA2003
// to IDNA2008.
//
// IDNA2008 (Internationalized Domain Names for Applications) is defined in
// RFC 5890, RFC 5891, RFC 5892, RFC 5893 and RFC 5894.
// UTS #46 is defined in https://www.unicode.org/reports/tr46.
//
// Unlike error-on-first-failure APIs, every operation returns a best-effort
// result together with an Errors bit set describing all violations found.
// ToUnicode operations never fail: they always return usable text, falling
// back to the input when an ACE label cannot be decoded.
package idna

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// acePrefix is the ASCII Compatible Encoding prefix.
const acePrefix = "xn--"

// Options is a bit set configuring a Processor. The bit values match the
// UIDNA option constants used by other UTS #46 implementations.
type Options uint32

const (
	// AllowUnassigned is accepted for compatibility with pre-UTS #46 APIs
	// and has no effect on processing.
	AllowUnassigned Options = 1 << iota

	// UseSTD3Rules restricts ASCII characters to letters, digits, hyphen
	// and full stop, and enables the label and domain name length checks.
	UseSTD3Rules

	// CheckBidi applies the RFC 5893 Bidi Rule to the labels of Bidi domain
	// names.
	CheckBidi

	// CheckContextJ applies the RFC 5892 CONTEXTJ rules to joiner
	// characters (ZERO WIDTH JOINER and ZERO WIDTH NON-JOINER).
	CheckContextJ

	// NontransitionalToASCII passes deviation characters through unchanged
	// in ToASCII operations. ToUnicode operations are always
	// nontransitional.
	NontransitionalToASCII
)

// A Processor converts domain names and labels per UTS #46. It is
// immutable after construction and safe for concurrent use; all state of a
// conversion is owned by the call.
type Processor struct {
	options Options
}

// New returns a Processor applying UTS #46 processing with the given
// options.
func New(options Options) *Processor {
	return &Processor{options: options}
}

var (
	// Default applies transitional processing with no optional checks.
	Default = New(0)

	// Lookup is the recommended processor for resolving domain names.
	Lookup = New(CheckBidi | CheckContextJ)

	// Strict additionally restricts ASCII to STD3 letter-digit-hyphen form
	// and enforces the DNS length limits.
	Strict = New(UseSTD3Rules | CheckBidi | CheckContextJ)
)

// String reports a description of the processor's configuration for
// debugging purposes. The format may change between versions.
func (p *Processor) String() string {
	s := "NonTransitional"
	if p.options&NontransitionalToASCII == 0 {
		s = "Transitional"
	}
	if p.options&UseSTD3Rules != 0 {
		s += ":STD3Rules"
	}
	if p.options&CheckBidi != 0 {
		s += ":CheckBidi"
	}
	if p.options&CheckContextJ != 0 {
		s += ":CheckContextJ"
	}
	return s
}

// NameToASCII converts a whole domain name into its ASCII form for DNS
// lookup. The result is always populated; if errs.HasErrors() the result
// must not be used for lookup. The error result is non-nil only for
// resource-style failures (Punycode integer overflow) and is then returned
// with an empty result.
func (p *Processor) NameToASCII(name string) (result string, errs Errors, err error) {
	return p.process(name, true, false)
}

// NameToUnicode converts a whole domain name into its Unicode form for
// human-readable display. It never fails: the result is always populated,
// with labels that cannot be decoded carried over verbatim.
func (p *Processor) NameToUnicode(name string) (result string, errs Errors) {
	result, errs, _ = p.process(name, false, false)
	return result, errs
}

// LabelToASCII converts a single label into its ASCII form. The input is
// not split: a dot in the label is reported as ErrLabelHasDot.
func (p *Processor) LabelToASCII(label string) (result string, errs Errors, err error) {
	return p.process(label, true, true)
}

// LabelToUnicode converts a single label into its Unicode form. Like
// NameToUnicode it never fails.
func (p *Processor) LabelToUnicode(label string) (result string, errs Errors) {
	result, errs, _ = p.process(label, false, true)
	return result, errs
}

// state is the per-call mutable state: the error accumulator and the
// Bidi domain name bookkeeping. A fresh value is allocated for every
// operation.
type state struct {
	errors Errors

	// The Bidi Rule is evaluated per label, but a violation counts only if
	// the input as a whole is a Bidi domain name (some label contains an
	// R, AL or AN character). RFC 5893, section 1.4.
	isBidi   bool
	bidiFail bool
}

// process implements the processing algorithm of section 4 of UTS #46.
func (p *Processor) process(s string, toASCII, singleLabel bool) (string, Errors, error) {
	var st state

	// ToUnicode is always nontransitional.
	transitional := toASCII && p.options&NontransitionalToASCII == 0
	mapped := p.mapString(s, transitional, &st.errors)

	var labels []string
	if singleLabel {
		labels = []string{mapped}
	} else {
		labels = strings.Split(mapped, ".")
	}

	out := make([]string, len(labels))
	for i, label := range labels {
		if label == "" {
			// A single trailing empty label is the root; any other empty
			// label, and the empty name itself, is an error.
			if singleLabel || len(labels) == 1 || i != len(labels)-1 {
				st.errors.record(ErrEmptyLabel)
			}
			continue
		}
		res, err := p.processLabel(label, toASCII, &st)
		if err != nil {
			return "", st.errors, err
		}
		out[i] = res
	}

	if p.options&CheckBidi != 0 && st.isBidi && st.bidiFail {
		st.errors.record(ErrBidi)
	}

	result := strings.Join(out, ".")
	if toASCII && !singleLabel && p.options&UseSTD3Rules != 0 && len(result) > 255 {
		st.errors.record(ErrDomainNameTooLong)
	}
	return result, st.errors, nil
}

// processLabel converts and validates one non-empty label. ACE labels are
// decoded for validation in both directions; the decoded form becomes the
// ToUnicode output while ToASCII keeps the ACE form.
func (p *Processor) processLabel(label string, toASCII bool, st *state) (string, error) {
	if strings.HasPrefix(label, acePrefix) {
		decoded, err := decodePunycode(label[len(acePrefix):])
		if err != nil || label == acePrefix {
			st.errors.record(ErrPunycode | ErrInvalidACELabel)
			return label, nil
		}
		if !p.validACE(decoded, label) {
			st.errors.record(ErrInvalidACELabel)
			return label, nil
		}
		p.validateLabel(decoded, st)
		if toASCII {
			if p.options&UseSTD3Rules != 0 && len(label) > 63 {
				st.errors.record(ErrLabelTooLong)
			}
			return label, nil
		}
		return decoded, nil
	}

	p.validateLabel(label, st)
	if !toASCII {
		return label, nil
	}
	a := label
	if !ascii(label) {
		body, err := encodePunycode(label)
		if err != nil {
			// Overflow is a resource failure, not a validity finding; it
			// aborts the whole call without partial output.
			return "", err
		}
		a = acePrefix + body
	}
	if p.options&UseSTD3Rules != 0 && len(a) > 63 {
		st.errors.record(ErrLabelTooLong)
	}
	return a, nil
}

// validACE reports whether decoded is a fully processed form of the ACE
// label it was decoded from: remapping and renormalizing must be a no-op,
// the text must contain a non-ASCII rune, and re-encoding must reproduce
// the original label.
func (p *Processor) validACE(decoded, label string) bool {
	var scratch Errors
	if p.mapString(decoded, false, &scratch) != decoded {
		return false
	}
	if ascii(decoded) {
		return false
	}
	body, err := encodePunycode(decoded)
	return err == nil && acePrefix+body == label
}

func ascii(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// nfc normalizes s to Unicode Normalization Form C.
func nfc(s string) string {
	if norm.NFC.QuickSpanString(s) == len(s) {
		return s
	}
	return norm.NFC.String(s)
}
