package query

import "strings"

// StringFilter constrains a textual field. A nil filter, or a filter with
// neither operator set, matches everything. When both operators are set they
// must both hold.
type StringFilter struct {
	EqualTo *string `json:"equalTo,omitempty"`
	Like    *string `json:"like,omitempty"`
}

// Matches reports whether v satisfies the filter. Both operators compare
// case-insensitively; Like is a substring match.
func (f *StringFilter) Matches(v string) bool {
	if f == nil {
		return true
	}
	lower := strings.ToLower(v)
	if f.EqualTo != nil && lower != strings.ToLower(*f.EqualTo) {
		return false
	}
	if f.Like != nil && !strings.Contains(lower, strings.ToLower(*f.Like)) {
		return false
	}
	return true
}

// EqualFilter constrains an enumerated field to an exact value.
type EqualFilter[E comparable] struct {
	EqualTo *E `json:"equalTo,omitempty"`
}

// Matches reports whether v satisfies the filter. A nil filter or unset
// operator matches everything.
func (f *EqualFilter[E]) Matches(v E) bool {
	if f == nil || f.EqualTo == nil {
		return true
	}
	return v == *f.EqualTo
}

// BoolFilter constrains a flag field.
type BoolFilter = EqualFilter[bool]
