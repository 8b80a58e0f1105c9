// Copyright 2026 The idnakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idna

import "strings"

// Errors is a bit set of the validity violations found during one
// conversion. The bit values match the UIDNA_ERROR_* constants used by
// other UTS #46 implementations and are stable across releases.
//
// Every operation starts from an empty set and accumulates a bit for each
// independent violation; bits are never cleared within a call and never
// shared between calls.
type Errors uint32

const (
	// ErrEmptyLabel indicates that a non-final domain name label, or the
	// whole domain name, is empty.
	ErrEmptyLabel Errors = 1 << iota

	// ErrLabelTooLong indicates that a label is longer than 63 bytes in its
	// ASCII form. This is only checked in ToASCII operations, and only if
	// UseSTD3Rules is set.
	ErrLabelTooLong

	// ErrDomainNameTooLong indicates that the domain name is longer than 255
	// bytes in its rendered ASCII form. This is only checked in ToASCII
	// operations, and only if UseSTD3Rules is set.
	ErrDomainNameTooLong

	// ErrLeadingHyphen indicates that a label starts with a hyphen-minus.
	ErrLeadingHyphen

	// ErrTrailingHyphen indicates that a label ends with a hyphen-minus.
	ErrTrailingHyphen

	// ErrHyphen34 indicates that a label contains hyphen-minus in the third
	// and fourth positions without being a valid ACE label.
	ErrHyphen34

	// ErrLeadingCombiningMark indicates that a label starts with a combining
	// mark.
	ErrLeadingCombiningMark

	// ErrDisallowed indicates that the input contains disallowed characters.
	// Each such character is replaced by U+FFFD in the output.
	ErrDisallowed

	// ErrPunycode indicates that a label starts with "xn--" but does not
	// contain valid Punycode.
	ErrPunycode

	// ErrLabelHasDot indicates that a label contains a dot. This can occur
	// in a decoded ACE label, and in the input of a single-label operation.
	ErrLabelHasDot

	// ErrInvalidACELabel indicates that an ACE label is not valid: its
	// Punycode does not decode, the decoded form is not fully mapped and
	// normalized, or re-encoding does not reproduce the label.
	ErrInvalidACELabel

	// ErrBidi indicates that a label does not meet the requirements of the
	// RFC 5893 Bidi Rule. Only reported if CheckBidi is set and the input is
	// a Bidi domain name.
	ErrBidi

	// ErrContextJ indicates that a joiner character appears without the
	// joining context required by RFC 5892. Only reported if CheckContextJ
	// is set.
	ErrContextJ
)

var errorNames = []string{
	"empty label",
	"label too long",
	"domain name too long",
	"leading hyphen",
	"trailing hyphen",
	"hyphen in positions 3 and 4",
	"leading combining mark",
	"disallowed character",
	"invalid punycode",
	"label has dot",
	"invalid ACE label",
	"bidi rule violation",
	"contextj rule violation",
}

// HasErrors reports whether e contains any error bit.
func (e Errors) HasErrors() bool { return e != 0 }

// Has reports whether e contains any of the bits in f.
func (e Errors) Has(f Errors) bool { return e&f != 0 }

// String returns a readable list of the set error bits.
func (e Errors) String() string {
	if e == 0 {
		return "idna: no errors"
	}
	var names []string
	for i, name := range errorNames {
		if e&(1<<uint(i)) != 0 {
			names = append(names, name)
		}
	}
	return "idna: [" + strings.Join(names, ", ") + "]"
}

// record accumulates f into e. Bits are only ever added.
func (e *Errors) record(f Errors) { *e |= f }
