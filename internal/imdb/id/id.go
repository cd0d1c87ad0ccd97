// Package id models IMDb identifiers and the canonical links built from
// them. Identifier kinds are closed: titles (tt), lists (ls), companies
// (co), persons (nm) and users (ur).
package id

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind tags an identifier with what it names.
type Kind string

const (
	KindTitle   Kind = "title"
	KindList    Kind = "list"
	KindCompany Kind = "company"
	KindPerson  Kind = "person"
	KindUser    Kind = "user"
	KindUnknown Kind = "unknown"
)

var kindPrefix = map[Kind]string{
	KindTitle:   "tt",
	KindList:    "ls",
	KindCompany: "co",
	KindPerson:  "nm",
	KindUser:    "ur",
}

var kindPattern = map[Kind]*regexp.Regexp{
	KindTitle:   regexp.MustCompile(`^tt\d+$`),
	KindList:    regexp.MustCompile(`^ls\d+$`),
	KindCompany: regexp.MustCompile(`^co\d+$`),
	KindPerson:  regexp.MustCompile(`^nm\d+$`),
	KindUser:    regexp.MustCompile(`^ur\d+$`),
}

var digits = regexp.MustCompile(`^\d+$`)

// ID is a validated IMDb identifier.
type ID struct {
	kind  Kind
	value string
}

// String returns the canonical form, prefix included.
func (i ID) String() string { return i.value }

// Kind returns the identifier's kind.
func (i ID) Kind() Kind { return i.kind }

// Zero reports whether the identifier is the zero value.
func (i ID) Zero() bool { return i.value == "" }

// Classify determines an identifier's kind from its prefix. Unparseable
// values classify as KindUnknown.
func Classify(raw string) Kind {
	raw = strings.TrimSpace(strings.ToLower(raw))
	for kind, pattern := range kindPattern {
		if pattern.MatchString(raw) {
			return kind
		}
	}
	return KindUnknown
}

// Normalize validates raw against the given kind and returns the
// canonical identifier. Bare digit runs are accepted and prefixed. When
// kind is KindUnknown the prefix decides. Normalize is idempotent.
func Normalize(raw string, kind Kind) (ID, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ID{}, fmt.Errorf("empty identifier")
	}

	if kind == KindUnknown || kind == "" {
		if got := Classify(raw); got != KindUnknown {
			return ID{kind: got, value: raw}, nil
		}
		return ID{}, fmt.Errorf("cannot classify identifier %q", raw)
	}

	if digits.MatchString(raw) {
		raw = kindPrefix[kind] + raw
	}
	pattern, ok := kindPattern[kind]
	if !ok {
		return ID{}, fmt.Errorf("unknown identifier kind %q", kind)
	}
	if !pattern.MatchString(raw) {
		return ID{}, fmt.Errorf("%q is not a valid %s identifier", raw, kind)
	}
	return ID{kind: kind, value: raw}, nil
}

// MustTitle panics unless raw is a valid title id. Intended for tests
// and static tables.
func MustTitle(raw string) ID {
	i, err := Normalize(raw, KindTitle)
	if err != nil {
		panic(err)
	}
	return i
}

// Title normalizes raw as a title identifier.
func Title(raw string) (ID, error) { return Normalize(raw, KindTitle) }

// List normalizes raw as a list identifier.
func List(raw string) (ID, error) { return Normalize(raw, KindList) }

// Company normalizes raw as a company identifier.
func Company(raw string) (ID, error) { return Normalize(raw, KindCompany) }

// Person normalizes raw as a person identifier.
func Person(raw string) (ID, error) { return Normalize(raw, KindPerson) }

// User normalizes raw as a user identifier.
func User(raw string) (ID, error) { return Normalize(raw, KindUser) }

// ExtractTitle pulls the first title id out of arbitrary text, such as
// an href or the [link=…] markup found in CSV descriptions.
func ExtractTitle(text string) (ID, bool) {
	m := extractTitlePattern.FindString(text)
	if m == "" {
		return ID{}, false
	}
	return ID{kind: KindTitle, value: strings.ToLower(m)}, true
}

// ExtractPerson pulls the first person id out of arbitrary text.
func ExtractPerson(text string) (ID, bool) {
	m := extractPersonPattern.FindString(text)
	if m == "" {
		return ID{}, false
	}
	return ID{kind: KindPerson, value: strings.ToLower(m)}, true
}

var (
	extractTitlePattern  = regexp.MustCompile(`tt\d{5,}`)
	extractPersonPattern = regexp.MustCompile(`nm\d{5,}`)
)
