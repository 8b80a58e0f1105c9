// Copyright 2026 The idnakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idna

// Punycode (RFC 3492) codec for the body of an ACE label, the part after
// the "xn--" prefix.

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	base        int32 = 36
	tmin        int32 = 1
	tmax        int32 = 26
	skew        int32 = 38
	damp        int32 = 700
	initialBias int32 = 72
	initialN    int32 = 128

	maxInt32 int32 = 1<<31 - 1
)

var (
	errPunycodeInvalid  = errors.New("idna: invalid punycode")
	errPunycodeOverflow = errors.New("idna: punycode overflow")
)

// adaptBias is the bias adaptation function of RFC 3492, section 6.1.
func adaptBias(delta, numPoints int32, firstTime bool) int32 {
	if firstTime {
		delta /= damp
	} else {
		delta /= 2
	}
	delta += delta / numPoints
	k := int32(0)
	for delta > ((base-tmin)*tmax)/2 {
		delta /= base - tmin
		k += base
	}
	return k + ((base-tmin+1)*delta)/(delta+skew)
}

// digitVal returns the value of an extended digit, case-insensitively.
func digitVal(b byte) (int32, bool) {
	switch {
	case '0' <= b && b <= '9':
		return int32(b - '0' + 26), true
	case 'A' <= b && b <= 'Z':
		return int32(b - 'A'), true
	case 'a' <= b && b <= 'z':
		return int32(b - 'a'), true
	}
	return 0, false
}

// digitChar returns the lowercase basic code point for digit d < base.
func digitChar(d int32) byte {
	if d < 26 {
		return 'a' + byte(d)
	}
	return '0' + byte(d-26)
}

// decodePunycode converts the ACE body encoded to the code point sequence
// it represents. It fails on non-ASCII input, invalid digits, truncated
// variable-length integers and overflow.
func decodePunycode(encoded string) (string, error) {
	var output []rune
	pos := 0
	if i := strings.LastIndexByte(encoded, '-'); i >= 0 {
		for j := 0; j < i; j++ {
			b := encoded[j]
			if b >= 0x80 {
				return "", errPunycodeInvalid
			}
			output = append(output, rune(b))
		}
		pos = i + 1
	}
	n, i, bias := initialN, int32(0), initialBias
	for pos < len(encoded) {
		oldi, w := i, int32(1)
		for k := base; ; k += base {
			if pos == len(encoded) {
				return "", errPunycodeInvalid
			}
			digit, ok := digitVal(encoded[pos])
			pos++
			if !ok {
				return "", errPunycodeInvalid
			}
			if digit > (maxInt32-i)/w {
				return "", errPunycodeOverflow
			}
			i += digit * w
			var t int32
			switch {
			case k <= bias:
				t = tmin
			case k >= bias+tmax:
				t = tmax
			default:
				t = k - bias
			}
			if digit < t {
				break
			}
			if w > maxInt32/(base-t) {
				return "", errPunycodeOverflow
			}
			w *= base - t
		}
		x := int32(len(output) + 1)
		bias = adaptBias(i-oldi, x, oldi == 0)
		if i/x > maxInt32-n {
			return "", errPunycodeOverflow
		}
		n += i / x
		i %= x
		if !utf8.ValidRune(rune(n)) {
			return "", errPunycodeInvalid
		}
		output = append(output, 0)
		copy(output[i+1:], output[i:])
		output[i] = rune(n)
		i++
	}
	return string(output), nil
}

// encodePunycode converts a code point sequence with at least one
// non-basic code point to an ACE body. It fails only on 32-bit overflow,
// which requires pathologically long input.
func encodePunycode(s string) (string, error) {
	var b strings.Builder
	basic := int32(0)
	for _, r := range s {
		if r < initialN {
			b.WriteByte(byte(r))
			basic++
		}
	}
	total := int32(utf8.RuneCountInString(s))
	if basic > 0 {
		b.WriteByte('-')
	}
	n, delta, bias := initialN, int32(0), initialBias
	for h := basic; h < total; {
		m := maxInt32
		for _, r := range s {
			if c := int32(r); c >= n && c < m {
				m = c
			}
		}
		if m-n > (maxInt32-delta)/(h+1) {
			return "", errPunycodeOverflow
		}
		delta += (m - n) * (h + 1)
		n = m
		for _, r := range s {
			c := int32(r)
			if c < n {
				if delta == maxInt32 {
					return "", errPunycodeOverflow
				}
				delta++
			}
			if c != n {
				continue
			}
			q := delta
			for k := base; ; k += base {
				var t int32
				switch {
				case k <= bias:
					t = tmin
				case k >= bias+tmax:
					t = tmax
				default:
					t = k - bias
				}
				if q < t {
					break
				}
				b.WriteByte(digitChar(t + (q-t)%(base-t)))
				q = (q - t) / (base - t)
			}
			b.WriteByte(digitChar(q))
			bias = adaptBias(delta, h+1, h == basic)
			delta = 0
			h++
		}
		delta++
		n++
	}
	return b.String(), nil
}
