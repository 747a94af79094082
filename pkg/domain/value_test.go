package domain

import (
	"testing"
	"time"
)

func TestParseValue(t *testing.T) {
	cases := []struct {
		kind    Kind
		in      string
		want    string
		wantErr bool
	}{
		{KindString, "hello", "hello", false},
		{KindNumber, "42", "42", false},
		{KindNumber, "3.5", "3.5", false},
		{KindNumber, "forty-two", "", true},
		{KindBool, "true", "true", false},
		{KindBool, "yes please", "", true},
		{KindTime, "2024-06-01T10:00:00Z", "2024-06-01T10:00:00Z", false},
		{KindTime, "2024-06-01", "2024-06-01T00:00:00Z", false},
		{KindTime, "soon", "", true},
		{KindSet, "bug, ui, bug", "bug,ui", false},
		{KindSet, "", "", false},
		{Kind("vector"), "1;2", "", true},
	}

	for _, tc := range cases {
		got, err := ParseValue(tc.kind, tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseValue(%s, %q): expected error, got %v", tc.kind, tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseValue(%s, %q): unexpected error: %v", tc.kind, tc.in, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("ParseValue(%s, %q) = %q, want %q", tc.kind, tc.in, got.String(), tc.want)
		}
	}
}

func TestTruthiness(t *testing.T) {
	cases := []struct {
		val  Value
		want bool
	}{
		{StringValue(""), false},
		{StringValue("x"), true},
		{NumberValue(0), false},
		{NumberValue(-1), true},
		{BoolValue(false), false},
		{BoolValue(true), true},
		{TimeValue(time.Time{}), false},
		{TimeValue(time.Now()), true},
		{SetValue{}, false},
		{NewSet("bug"), true},
	}

	for _, tc := range cases {
		if got := tc.val.Truthy(); got != tc.want {
			t.Errorf("%s value %q: Truthy() = %v, want %v", tc.val.Kind(), tc.val.String(), got, tc.want)
		}
	}
}

func TestFromAny(t *testing.T) {
	val, err := FromAny([]any{"bug", "ui"})
	if err != nil {
		t.Fatalf("FromAny slice: %v", err)
	}
	if val.Kind() != KindSet {
		t.Errorf("FromAny slice kind = %s, want set", val.Kind())
	}

	if _, err := FromAny(nil); err == nil {
		t.Error("FromAny(nil) should fail")
	}
	if _, err := FromAny(struct{}{}); err == nil {
		t.Error("FromAny(struct) should fail")
	}

	num, err := FromAny(float64(7))
	if err != nil {
		t.Fatalf("FromAny float: %v", err)
	}
	if num.String() != "7" {
		t.Errorf("FromAny(7).String() = %q, want 7", num.String())
	}
}
