// Copyright 2026 The idnakit Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command idna converts internationalized domain names between their
// Unicode and ASCII (ACE) forms.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/idnakit/idna"
)

type options struct {
	checkBidi       bool
	checkContextJ   bool
	nontransitional bool
	std3            bool
}

func (o *options) processor() *idna.Processor {
	var opts idna.Options
	if o.checkBidi {
		opts |= idna.CheckBidi
	}
	if o.checkContextJ {
		opts |= idna.CheckContextJ
	}
	if o.nontransitional {
		opts |= idna.NontransitionalToASCII
	}
	if o.std3 {
		opts |= idna.UseSTD3Rules
	}
	return idna.New(opts)
}

func main() {
	o := &options{checkBidi: true, checkContextJ: true}

	root := &cobra.Command{
		Use:           "idna",
		Short:         "Convert internationalized domain names per UTS #46",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.BoolVar(&o.checkBidi, "check-bidi", o.checkBidi, "apply the RFC 5893 Bidi Rule")
	pf.BoolVar(&o.checkContextJ, "check-contextj", o.checkContextJ, "apply the RFC 5892 CONTEXTJ rules")
	pf.BoolVar(&o.nontransitional, "nontransitional", false, "nontransitional ToASCII processing")
	pf.BoolVar(&o.std3, "std3", false, "apply STD3 ASCII rules and length limits")

	root.AddCommand(
		&cobra.Command{
			Use:   "ascii [name...]",
			Short: "Convert names to their ASCII (ACE) form",
			RunE: func(cmd *cobra.Command, args []string) error {
				return convert(args, func(name string) (string, idna.Errors, error) {
					return o.processor().NameToASCII(name)
				})
			},
		},
		&cobra.Command{
			Use:   "unicode [name...]",
			Short: "Convert names to their Unicode form",
			RunE: func(cmd *cobra.Command, args []string) error {
				return convert(args, func(name string) (string, idna.Errors, error) {
					result, errs := o.processor().NameToUnicode(name)
					return result, errs, nil
				})
			},
		},
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "idna:", err)
		os.Exit(1)
	}
}

// convert applies f to each argument, or to each line of stdin when no
// arguments are given. Validity findings go to stderr and make the
// command exit nonzero, but never suppress the best-effort output.
func convert(args []string, f func(string) (string, idna.Errors, error)) error {
	if len(args) == 0 {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			args = append(args, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return err
		}
	}
	bad := false
	for _, name := range args {
		result, errs, err := f(name)
		if err != nil {
			return err
		}
		fmt.Println(result)
		if errs.HasErrors() {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, errs)
			bad = true
		}
	}
	if bad {
		return fmt.Errorf("some names did not convert cleanly")
	}
	return nil
}
