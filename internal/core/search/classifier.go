// Package search turns a free-text search box value into a single
// transaction/user filter.
package search

import (
	"net/url"
	"strconv"
	"strings"
)

// Kind names the query parameter a search term is sent as
type Kind string

const (
	KindNone     Kind = ""
	KindUserID   Kind = "userId"
	KindIDNumber Kind = "idNumber"
	KindEmail    Kind = "email"
)

// DefaultUserIDMaxDigits is the longest numeric term treated as a user id
const DefaultUserIDMaxDigits = 3

// userIDUpperBound caps the numeric value of a short user id
const userIDUpperBound = 10000

// Filter is exactly one filter parameter, or none
type Filter struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value"`
}

// Classifier infers the filter kind of a search term
type Classifier struct {
	userIDMaxDigits int
}

// NewClassifier creates a classifier. maxDigits below 1 falls back to the default.
func NewClassifier(maxDigits int) *Classifier {
	if maxDigits < 1 {
		maxDigits = DefaultUserIDMaxDigits
	}
	return &Classifier{userIDMaxDigits: maxDigits}
}

// Classify maps a term to email when it contains '@', to userId when it is a
// short positive number, and to idNumber otherwise.
func (c *Classifier) Classify(term string) Filter {
	term = strings.TrimSpace(term)
	if term == "" {
		return Filter{}
	}

	if strings.Contains(term, "@") {
		return Filter{Kind: KindEmail, Value: term}
	}

	if c.isShortUserID(term) {
		return Filter{Kind: KindUserID, Value: term}
	}

	return Filter{Kind: KindIDNumber, Value: term}
}

func (c *Classifier) isShortUserID(term string) bool {
	if len(term) > c.userIDMaxDigits {
		return false
	}
	for i := 0; i < len(term); i++ {
		if term[i] < '0' || term[i] > '9' {
			return false
		}
	}
	n, err := strconv.Atoi(term)
	if err != nil {
		return false
	}
	return n > 0 && n < userIDUpperBound
}

// Explicit builds a filter from explicitly named parameters.
// The first non-empty of userId, idNumber, email wins.
func Explicit(userID, idNumber, email string) (Filter, bool) {
	switch {
	case strings.TrimSpace(userID) != "":
		return Filter{Kind: KindUserID, Value: strings.TrimSpace(userID)}, true
	case strings.TrimSpace(idNumber) != "":
		return Filter{Kind: KindIDNumber, Value: strings.TrimSpace(idNumber)}, true
	case strings.TrimSpace(email) != "":
		return Filter{Kind: KindEmail, Value: strings.TrimSpace(email)}, true
	}
	return Filter{}, false
}

// IsEmpty reports whether the filter matches everything
func (f Filter) IsEmpty() bool {
	return f.Kind == KindNone || f.Value == ""
}

// Apply sets the filter's query parameter on q
func (f Filter) Apply(q url.Values) {
	if f.IsEmpty() {
		return
	}
	q.Set(string(f.Kind), f.Value)
}

// Target is the subset of fields a locally held row can be matched on
type Target struct {
	UserID   int64
	IDNumber string
	Email    string
	Name     string
	Nickname string
}

// Matches applies the filter to a row already held in memory
func (f Filter) Matches(t Target) bool {
	if f.IsEmpty() {
		return true
	}

	needle := strings.ToLower(f.Value)
	switch f.Kind {
	case KindEmail:
		return strings.Contains(strings.ToLower(t.Email), needle)
	case KindUserID:
		return strconv.FormatInt(t.UserID, 10) == f.Value
	case KindIDNumber:
		return strings.Contains(strings.ToLower(t.IDNumber), needle) ||
			strings.Contains(strings.ToLower(t.Name), needle) ||
			strings.Contains(strings.ToLower(t.Nickname), needle)
	}
	return false
}
