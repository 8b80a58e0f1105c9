// Copyright 2026 The idnakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build ignore

// Command gen regenerates joining_tables.go from the Unicode
// ArabicShaping data file. Transparent entries are skipped; the runtime
// derives them from the general categories. Join-causing entries are
// folded into the dual class.
//
// Usage: go run gen.go [-url URL]
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"log"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
)

var url = flag.String("url",
	"https://www.unicode.org/Public/UCD/latest/ucd/ArabicShaping.txt",
	"location of the ArabicShaping data file")

const header = `// Copyright 2026 The idnakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package idna

import "unicode"

// Code generated by gen.go; DO NOT EDIT.

`

func main() {
	flag.Parse()
	log.SetPrefix("gen: ")
	log.SetFlags(0)

	resp, err := http.Get(*url)
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("GET %s: %s", *url, resp.Status)
	}

	types := map[rune]byte{}
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) < 3 {
			continue
		}
		r, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 16, 32)
		if err != nil {
			log.Fatalf("bad code point in %q: %v", line, err)
		}
		switch t := strings.TrimSpace(fields[2]); t {
		case "L", "R", "D":
			types[rune(r)] = t[0]
		case "C":
			types[rune(r)] = 'D' // join causing
		case "T", "U":
			// T is derived from the general categories at runtime.
		default:
			log.Fatalf("unknown joining type %q in %q", t, line)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	for _, class := range []struct {
		name string
		t    byte
	}{
		{"joinLeftTable", 'L'},
		{"joinRightTable", 'R'},
		{"joinDualTable", 'D'},
	} {
		var rs []rune
		for r, t := range types {
			if t == class.t {
				rs = append(rs, r)
			}
		}
		sort.Slice(rs, func(i, j int) bool { return rs[i] < rs[j] })
		writeTable(&buf, class.name, rs)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile("joining_tables.go", src, 0o644); err != nil {
		log.Fatal(err)
	}
}

func writeTable(buf *bytes.Buffer, name string, rs []rune) {
	fmt.Fprintf(buf, "var %s = unicode.RangeTable{\n", name)
	var r16, r32 []string
	for i := 0; i < len(rs); {
		j := i
		for j+1 < len(rs) && rs[j+1] == rs[j]+1 {
			j++
		}
		entry := fmt.Sprintf("{Lo: %#04x, Hi: %#04x, Stride: 1},", rs[i], rs[j])
		if rs[j] <= 0xFFFF {
			r16 = append(r16, entry)
		} else {
			r32 = append(r32, entry)
		}
		i = j + 1
	}
	if len(r16) > 0 {
		fmt.Fprintf(buf, "R16: []unicode.Range16{\n%s\n},\n", strings.Join(r16, "\n"))
	}
	if len(r32) > 0 {
		fmt.Fprintf(buf, "R32: []unicode.Range32{\n%s\n},\n", strings.Join(r32, "\n"))
	}
	buf.WriteString("}\n\n")
}
