// Copyright ©2024 The ppe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package align

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	for _, test := range []struct {
		line string
		want Set
	}{
		{"", NewSet()},
		{"   ", NewSet()},
		{"0-0 1-1 2-2", NewSet(Point{0, 0}, Point{1, 1}, Point{2, 2})},
		{"0-0 0-0", NewSet(Point{0, 0})},
		{"9-0 9-1 10-2", NewSet(Point{9, 0}, Point{9, 1}, Point{10, 2})},
	} {
		got, err := Parse(test.line)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", test.line, err)
			continue
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("Parse(%q) = %v, want %v", test.line, got, test.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		line string
		kind ErrKind
	}{
		{"0_0", Malformed},
		{"a-b", Malformed},
		{"0-1-2", Malformed},
		{"-1-2", OutOfRange},
		{"1--2", OutOfRange},
	} {
		_, err := Parse(test.line)
		if err == nil {
			t.Errorf("Parse(%q): expected error", test.line)
			continue
		}
		ae, ok := err.(*Error)
		if !ok {
			t.Errorf("Parse(%q): error is not *Error: %v", test.line, err)
			continue
		}
		if ae.Kind != test.kind {
			t.Errorf("Parse(%q): got kind %v, want %v", test.line, ae.Kind, test.kind)
		}
	}
}

func TestValidate(t *testing.T) {
	s := NewSet(Point{0, 0}, Point{1, 2})
	if err := Validate(s, 2, 3); err != nil {
		t.Errorf("Validate: unexpected error: %v", err)
	}
	if err := Validate(s, 2, 2); err == nil {
		t.Error("Validate: expected an error for a target index at the sentence length")
	} else if ae, ok := err.(*Error); !ok || ae.Kind != OutOfRange {
		t.Errorf("Validate: got %v, want kind OutOfRange", err)
	}
	if err := Validate(s, 1, 3); err == nil {
		t.Error("Validate: expected an error for a source index at the sentence length")
	}
}

func TestRoundTrip(t *testing.T) {
	for _, line := range []string{
		"0-0 1-1 2-2",
		"9-0 9-1 10-2 11-3",
		"",
	} {
		s, err := Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q): %v", line, err)
		}
		s2, err := Parse(s.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", s.String(), err)
		}
		if !reflect.DeepEqual(s, s2) {
			t.Errorf("round trip of %q: got %v, want %v", line, s2, s)
		}
	}
}

func TestPartialIn(t *testing.T) {
	r := Rect{IMin: 0, JMin: 0, IMax: 1, JMax: 1}
	for _, test := range []struct {
		p    Point
		want bool
	}{
		{Point{0, 0}, false},
		{Point{1, 1}, false},
		{Point{0, 2}, true},
		{Point{2, 0}, true},
		{Point{2, 2}, false},
	} {
		got := PartialIn(test.p, r)
		if got != test.want {
			t.Errorf("PartialIn(%v, %v) = %v, want %v", test.p, r, got, test.want)
		}
	}
}

func TestCombine(t *testing.T) {
	a := Rect{IMin: 0, JMin: 0, IMax: 1, JMax: 1}
	b := Rect{IMin: 2, JMin: 2, IMax: 3, JMax: 3}
	got := Combine(a, b)
	want := Rect{IMin: 0, JMin: 0, IMax: 3, JMax: 3}
	if got != want {
		t.Errorf("Combine(%v, %v) = %v, want %v", a, b, got, want)
	}
}

func TestRange(t *testing.T) {
	pts := NewSet(Point{2, 5}, Point{0, 1}, Point{4, 3})
	got := Range(pts)
	want := Rect{IMin: 0, JMin: 1, IMax: 4, JMax: 5}
	if got != want {
		t.Errorf("Range(%v) = %v, want %v", pts, got, want)
	}
}

func TestRangePanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Range(empty set) did not panic")
		}
	}()
	Range(NewSet())
}
