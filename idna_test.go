// Copyright 2026 The idnakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idna

import (
	"strings"
	"testing"
)

func TestNameToASCII(t *testing.T) {
	tests := []struct {
		name string
		p    *Processor
		in   string
		want string
		errs Errors
	}{
		{"ascii", Default, "example.com", "example.com", 0},
		{"case folding", Default, "Example.COM", "example.com", 0},
		{"transitional deviation", Default, "faß.de", "fass.de", 0},
		{"nontransitional deviation", New(NontransitionalToASCII), "faß.de", "xn--fa-hia.de", 0},
		{"umlaut", Default, "bücher.de", "xn--bcher-kva.de", 0},
		{"symbol", Default, "☃.net", "xn--n3h.net", 0},
		{"munich", Default, "münchen.de", "xn--mnchen-3ya.de", 0},
		{"trailing dot", New(NontransitionalToASCII), "faß.de.", "xn--fa-hia.de.", 0},
		{"ideographic separator", Default, "日本。jp", "xn--wgv71a.jp", 0},
		{"ace passthrough", Default, "xn--bcher-kva.example", "xn--bcher-kva.example", 0},
		{"uppercase ace", Default, "XN--BCHER-KVA.example", "xn--bcher-kva.example", 0},
		{"empty interior label", Default, "a..b", "a..b", ErrEmptyLabel},
		{"empty name", Default, "", "", ErrEmptyLabel},
		{"leading empty label", Default, ".example", ".example", ErrEmptyLabel},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, errs, err := tc.p.NameToASCII(tc.in)
			if err != nil {
				t.Fatalf("NameToASCII(%+q): unexpected hard failure %v", tc.in, err)
			}
			if got != tc.want || errs != tc.errs {
				t.Errorf("NameToASCII(%+q) = %+q, %v; want %+q, %v",
					tc.in, got, errs, tc.want, tc.errs)
			}
		})
	}
}

func TestNameToUnicode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		errs Errors
	}{
		{"ascii", "example.com", "example.com", 0},
		{"ace", "xn--bcher-kva.de", "bücher.de", 0},
		{"deviation ace", "xn--fa-hia.de", "faß.de", 0},
		{"deviation passthrough", "faß.de", "faß.de", 0},
		{"uppercase ace", "XN--FA-HIA.DE", "faß.de", 0},
		{"bad punycode", "xn--invalid!!", "xn--invalid!!", ErrPunycode | ErrInvalidACELabel},
		{"bare prefix", "xn--.de", "xn--.de", ErrPunycode | ErrInvalidACELabel},
		{"ascii-only ace", "xn--abc-.de", "xn--abc-.de", ErrInvalidACELabel},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, errs := Default.NameToUnicode(tc.in)
			if got != tc.want || errs != tc.errs {
				t.Errorf("NameToUnicode(%+q) = %+q, %v; want %+q, %v",
					tc.in, got, errs, tc.want, tc.errs)
			}
		})
	}
}

func TestLabelToASCII(t *testing.T) {
	tests := []struct {
		name string
		p    *Processor
		in   string
		want string
		errs Errors
	}{
		{"leading hyphen", Default, "-abc", "-abc", ErrLeadingHyphen},
		{"trailing hyphen", Default, "abc-", "abc-", ErrTrailingHyphen},
		{"both hyphens", Default, "-abc-", "-abc-", ErrLeadingHyphen | ErrTrailingHyphen},
		{"hyphen 3-4", Default, "ab--cd", "ab--cd", ErrHyphen34},
		{"label has dot", Default, "a.b", "a.b", ErrLabelHasDot},
		{"empty", Default, "", "", ErrEmptyLabel},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, errs, err := tc.p.LabelToASCII(tc.in)
			if err != nil {
				t.Fatalf("LabelToASCII(%+q): unexpected hard failure %v", tc.in, err)
			}
			if got != tc.want || errs != tc.errs {
				t.Errorf("LabelToASCII(%+q) = %+q, %v; want %+q, %v",
					tc.in, got, errs, tc.want, tc.errs)
			}
		})
	}
}

func TestSTD3Disallowed(t *testing.T) {
	// Under STD3 rules an underscore becomes U+FFFD, which in turn forces
	// the best-effort ASCII output into ACE form.
	got, errs, err := New(UseSTD3Rules).LabelToASCII("a_b")
	if err != nil {
		t.Fatal(err)
	}
	if !errs.Has(ErrDisallowed) {
		t.Errorf("got %v; want ErrDisallowed set", errs)
	}
	if !strings.HasPrefix(got, acePrefix) {
		t.Errorf("got %q; want an %q label", got, acePrefix)
	}
}

func TestLengthChecks(t *testing.T) {
	std3 := New(UseSTD3Rules)
	l63 := strings.Repeat("a", 63)
	l64 := strings.Repeat("a", 64)

	if _, errs, _ := std3.LabelToASCII(l63); errs != 0 {
		t.Errorf("63-byte label: got %v; want no errors", errs)
	}
	if _, errs, _ := std3.LabelToASCII(l64); errs != ErrLabelTooLong {
		t.Errorf("64-byte label: got %v; want ErrLabelTooLong", errs)
	}
	// Without STD3 rules the limits are not enforced.
	if _, errs, _ := Default.LabelToASCII(l64); errs != 0 {
		t.Errorf("64-byte label without STD3: got %v; want no errors", errs)
	}

	// Four 63-byte labels render as 255 bytes with their separators.
	name255 := strings.Join([]string{l63, l63, l63, l63}, ".")
	if _, errs, _ := std3.NameToASCII(name255); errs != 0 {
		t.Errorf("255-byte name: got %v; want no errors", errs)
	}
	name256 := strings.Join([]string{l63, l63, l63, l64}, ".")
	if _, errs, _ := std3.NameToASCII(name256); errs != ErrDomainNameTooLong|ErrLabelTooLong {
		t.Errorf("256-byte name: got %v; want ErrDomainNameTooLong|ErrLabelTooLong", errs)
	}
}

func TestErrorMonotonicity(t *testing.T) {
	// Independent violations in one label must all be reported together.
	_, errs, _ := Default.LabelToASCII("-a\u2028b-")
	want := ErrLeadingHyphen | ErrTrailingHyphen | ErrDisallowed
	if errs != want {
		t.Errorf("got %v; want %v", errs, want)
	}
}

func TestErrorsResetPerCall(t *testing.T) {
	p := New(0)
	if _, errs, _ := p.LabelToASCII("-bad-"); !errs.HasErrors() {
		t.Fatal("expected errors for -bad-")
	}
	if _, errs, _ := p.LabelToASCII("good"); errs.HasErrors() {
		t.Errorf("errors leaked into a clean call: %v", errs)
	}
}

func TestIdempotence(t *testing.T) {
	for _, in := range []string{
		"example.com",
		"faß.de",
		"bücher.de",
		"xn--bcher-kva.de",
		"日本。jp",
	} {
		first, errs, err := Default.NameToASCII(in)
		if err != nil || errs.HasErrors() {
			t.Fatalf("NameToASCII(%+q) = %v, %v", in, errs, err)
		}
		second, errs, err := Default.NameToASCII(first)
		if err != nil || errs.HasErrors() {
			t.Fatalf("NameToASCII(%+q) = %v, %v", first, errs, err)
		}
		if second != first {
			t.Errorf("NameToASCII not idempotent on %+q: %+q != %+q", in, second, first)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	p := New(NontransitionalToASCII)
	for _, label := range []string{"example", "bücher", "faß", "münchen"} {
		a, errs, err := p.LabelToASCII(label)
		if err != nil || errs.HasErrors() {
			t.Fatalf("LabelToASCII(%+q) = %v, %v", label, errs, err)
		}
		u, errs := p.LabelToUnicode(a)
		if errs.HasErrors() {
			t.Fatalf("LabelToUnicode(%+q) = %v", a, errs)
		}
		direct, _ := p.LabelToUnicode(label)
		if u != direct {
			t.Errorf("round trip of %+q: %+q != %+q", label, u, direct)
		}
	}
}

func TestToUnicodeNeverFails(t *testing.T) {
	for _, in := range []string{
		"",
		"xn--",
		"xn--invalid!!",
		"\x80\x80",
		"a�b",
		strings.Repeat("\u2028", 10),
		"-.-.-",
	} {
		// The result must always be populated and the call must not panic,
		// whatever the error bits say.
		if got, _ := Default.NameToUnicode(in); got == "" && in != "" {
			t.Errorf("NameToUnicode(%+q) returned an empty result", in)
		}
		if got, _ := Default.LabelToUnicode(in); got == "" && in != "" {
			t.Errorf("LabelToUnicode(%+q) returned an empty result", in)
		}
	}
}

func TestProcessorString(t *testing.T) {
	if got := Default.String(); got != "Transitional" {
		t.Errorf("Default.String() = %q", got)
	}
	if got := Strict.String(); got != "Transitional:STD3Rules:CheckBidi:CheckContextJ" {
		t.Errorf("Strict.String() = %q", got)
	}
}
