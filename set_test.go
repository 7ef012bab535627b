package paspale

import (
	"reflect"
	"testing"
)

func TestStringSet(t *testing.T) {
	s := NewStringSet()
	if !s.Add("b") || !s.Add("a") || s.Add("b") {
		t.Errorf("Add reported wrong novelty")
	}
	if !reflect.DeepEqual(s.Elements(), []string{"a", "b"}) {
		t.Errorf("Got s = %v", s.Elements())
	}
	if !s.Contains("a") || s.Contains("c") {
		t.Errorf("Contains mismatch on %v", s.Elements())
	}

	if t2 := NewStringSetFrom([]string{"b", "c", "b"}); !reflect.DeepEqual(t2.Elements(), []string{"b", "c"}) {
		t.Errorf("Got t2 = %v", t2.Elements())
	}
	if len(NewStringSet().Elements()) != 0 {
		t.Errorf("new set not empty")
	}
}

func TestDuplicates(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{nil, nil},
		{[]string{"a", "b"}, nil},
		{[]string{"a", "b", "a", "c", "b", "a"}, []string{"a", "b"}},
	}
	for _, tc := range tests {
		if got := Duplicates(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Duplicates(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
