// Copyright 2026 The quadc Authors. All Rights Reserved.
// This file is available under the Apache license.

package position_test

import (
	"testing"

	"github.com/quadc/quadc/internal/compiler/position"
	"github.com/quadc/quadc/internal/testutil"
)

func TestMerge(t *testing.T) {
	a := position.Position{Filename: "f", Line: 2, Startcol: 4, Endcol: 4}
	b := position.Position{Filename: "f", Line: 2, Startcol: 8, Endcol: 10}
	c := position.Position{Filename: "f", Line: 3, Startcol: 0, Endcol: 1}

	for _, tc := range []struct {
		name string
		a, b *position.Position
		want *position.Position
	}{
		{"left nil", nil, &b, &b},
		{"right nil", &a, nil, &a},
		{"same line", &a, &b, &position.Position{Filename: "f", Line: 2, Startcol: 4, Endcol: 10}},
		{"reversed", &b, &a, &position.Position{Filename: "f", Line: 2, Startcol: 4, Endcol: 10}},
		{"other line", &a, &c, &a},
	} {
		testutil.ExpectNoDiff(t, tc.want, position.Merge(tc.a, tc.b))
	}
}

func TestString(t *testing.T) {
	testutil.ExpectNoDiff(t, "f:3:5", position.Position{Filename: "f", Line: 2, Startcol: 4, Endcol: 4}.String())
	testutil.ExpectNoDiff(t, "f:3:5-11", position.Position{Filename: "f", Line: 2, Startcol: 4, Endcol: 10}.String())
}
