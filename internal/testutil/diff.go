// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

// Package testutil reimports the go-cmp package, as the name 'cmp' is easily
// confused with the comparison opcodes of the IR.
package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func Diff(a, b interface{}, opts ...cmp.Option) string {
	return cmp.Diff(a, b, opts...)
}

// ExpectNoDiff tests to see if the two interfaces have no diff.
// If there is a diff, the test fails and the diff is reported.
func ExpectNoDiff(tb testing.TB, want, got interface{}, opts ...cmp.Option) bool {
	tb.Helper()
	if diff := Diff(want, got, opts...); diff != "" {
		tb.Errorf("Unexpected diff, -want +got:\n%s", diff)
		tb.Logf("want:\n%v", want)
		tb.Logf("got:\n%v", got)
		return false
	}
	return true
}

func IgnoreFields(typ interface{}, names ...string) cmp.Option {
	return cmpopts.IgnoreFields(typ, names...)
}

func EquateEmpty() cmp.Option {
	return cmpopts.EquateEmpty()
}
