package paspale

import "sort"

// StringSet is a set of string values, used for column names and
// scheme names.
type StringSet map[string]struct{}

func NewStringSet() StringSet {
	return make(StringSet)
}

func NewStringSetFrom(init []string) StringSet {
	s := NewStringSet()
	for _, v := range init {
		s.Add(v)
	}
	return s
}

// Add adds x to s and reports whether x was new.
func (s StringSet) Add(x string) bool {
	if _, ok := s[x]; ok {
		return false
	}
	s[x] = struct{}{}
	return true
}

// Contains reports membership of x in s.
func (s StringSet) Contains(x string) bool {
	_, ok := s[x]
	return ok
}

// Elements returns the members of s in sorted order.
func (s StringSet) Elements() []string {
	elems := make([]string, 0, len(s))
	for x := range s {
		elems = append(elems, x)
	}
	sort.Strings(elems)
	return elems
}

// Duplicates returns the entries of list occurring more than once, in
// order of their second occurrence.
func Duplicates(list []string) []string {
	seen, dups := NewStringSet(), NewStringSet()
	var out []string
	for _, x := range list {
		if !seen.Add(x) && dups.Add(x) {
			out = append(out, x)
		}
	}
	return out
}
