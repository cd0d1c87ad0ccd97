// Package extract turns raw IMDb payloads into normalized results.
// The same page family ships in up to three forms (JSON embedded in
// the new layouts, CSV exports, the old HTML listers) and the router
// picks the right decoder by sniffing the payload.
package extract

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Form is the detected payload shape.
type Form int

const (
	FormUnknown Form = iota
	FormJSON
	FormCSV
	FormHTML
)

var errNoPageState = errors.New("no embedded page state")

// Sniff detects the payload form. CSV exports start with their header
// row; new layouts carry an application/json island with page props;
// everything else with markup is old HTML.
func Sniff(payload []byte) Form {
	trimmed := bytes.TrimLeft(payload, " \t\r\n\ufeff")
	if len(trimmed) == 0 {
		return FormUnknown
	}
	if bytes.HasPrefix(trimmed, []byte("Position,")) || bytes.HasPrefix(trimmed, []byte("Const,")) {
		return FormCSV
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return FormJSON
	}
	if bytes.Contains(payload, []byte(`type="application/json"`)) &&
		bytes.Contains(payload, []byte(`"props"`)) {
		return FormJSON
	}
	if trimmed[0] == '<' {
		return FormHTML
	}
	return FormUnknown
}

// pageState pulls the embedded page state out of a new-layout page: it
// parses every application/json script island and keeps the one with a
// top-level props key. A bare JSON payload is accepted as-is.
func parsePageState(payload []byte) (*pageProps, error) {
	trimmed := bytes.TrimLeft(payload, " \t\r\n\ufeff")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var state pageState
		if err := json.Unmarshal(trimmed, &state); err == nil && !emptyProps(state.Props.PageProps) {
			return &state.Props.PageProps, nil
		}
		return nil, errNoPageState
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}

	var props *pageProps
	doc.Find(`script[type="application/json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		raw := strings.TrimSpace(sel.Text())
		if raw == "" || !strings.Contains(raw, `"props"`) {
			return true
		}
		var state pageState
		if err := json.Unmarshal([]byte(raw), &state); err != nil {
			return true
		}
		if emptyProps(state.Props.PageProps) {
			return true
		}
		props = &state.Props.PageProps
		return false
	})
	if props == nil {
		return nil, errNoPageState
	}
	return props, nil
}

func emptyProps(p pageProps) bool {
	return len(p.MainColumnData) == 0 && len(p.AboveTheFoldData) == 0 &&
		len(p.ContentData) == 0 && len(p.SearchResults) == 0
}
