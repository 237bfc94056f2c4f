package models

import "strings"

// Tags is a free-form label set on a menu item.
type Tags []string

// Has reports whether the tag set contains tag, ignoring case.
func (t Tags) Has(tag string) bool {
	for _, v := range t {
		if strings.EqualFold(v, tag) {
			return true
		}
	}
	return false
}

// Match reports whether any tag contains sub, ignoring case.
func (t Tags) Match(sub string) bool {
	sub = strings.ToLower(sub)
	for _, v := range t {
		if strings.Contains(strings.ToLower(v), sub) {
			return true
		}
	}
	return false
}
