// Package company carries the hand-curated originals knowledge base:
// per-company studio/network/vendor id lists and the recipes that
// approximate "X Originals" menus IMDb does not expose. The knowledge
// base is data, not code; it ships as an embedded YAML table so rules
// can be maintained without touching the resolver.
package company

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/reeldex/reeldex/internal/imdb/types"
)

//go:embed companies.yaml
var embeddedTable []byte

// Bucket names an id list inside a company entry.
type Bucket string

const (
	BucketStudio  Bucket = "studio"
	BucketNetwork Bucket = "network"
	BucketVendor  Bucket = "vendor"
)

// Ref points at ids: either a literal company id, one of this company's
// buckets, or another company's bucket. In YAML a literal is a plain
// "co…" string, a self bucket is "studio"/"network"/"vendor", and a
// cross reference is a one-entry map {company: bucket}.
type Ref struct {
	ID      string
	Bucket  Bucket
	Company string // empty for self references
}

// UnmarshalYAML implements the three accepted shapes.
func (r *Ref) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		v := strings.TrimSpace(node.Value)
		switch Bucket(v) {
		case BucketStudio, BucketNetwork, BucketVendor:
			r.Bucket = Bucket(v)
			return nil
		}
		if !strings.HasPrefix(v, "co") {
			return fmt.Errorf("company ref %q is neither an id nor a bucket", v)
		}
		r.ID = v
		return nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("cross-company ref must have exactly one entry")
		}
		r.Company = strings.TrimSpace(node.Content[0].Value)
		bucket := Bucket(strings.TrimSpace(node.Content[1].Value))
		switch bucket {
		case BucketStudio, BucketNetwork, BucketVendor:
			r.Bucket = bucket
			return nil
		}
		return fmt.Errorf("cross-company ref %q names unknown bucket %q", r.Company, node.Content[1].Value)
	}
	return fmt.Errorf("unsupported company ref node")
}

// LanguageRule gates ids on the request language: a matching language
// adds Include; any other language routes them to disallow.
type LanguageRule struct {
	Include  []Ref `yaml:"include"`
	Disallow []Ref `yaml:"disallow"`
}

// Recipe is the per-media rule set.
type Recipe struct {
	Fixed    []Ref `yaml:"fixed"`
	Include  []Ref `yaml:"include"`
	Exclude  []Ref `yaml:"exclude"`
	Allow    []Ref `yaml:"allow"`
	Disallow []Ref `yaml:"disallow"`

	Language map[string]LanguageRule `yaml:"language"`

	// Disabled preserves rules the curator switched off after observing
	// regressions. The resolver never reads it; it exists so the table
	// keeps the full maintenance history.
	Disabled map[string][]Ref `yaml:"disabled"`
}

// Recipes holds the per-media recipes. Default applies when no
// media-specific recipe exists.
type Recipes struct {
	Film    *Recipe `yaml:"film"`
	Show    *Recipe `yaml:"show"`
	Default *Recipe `yaml:"default"`
}

// ForMedia picks the recipe for a media kind, falling back to Default.
func (r *Recipes) ForMedia(media types.Media) *Recipe {
	if r == nil {
		return nil
	}
	switch media {
	case types.MediaMovie:
		if r.Film != nil {
			return r.Film
		}
	case types.MediaShow, types.MediaSeason, types.MediaEpisode:
		if r.Show != nil {
			return r.Show
		}
	}
	return r.Default
}

// Entry is one company's bundle.
type Entry struct {
	Studios   []string `yaml:"studios"`
	Networks  []string `yaml:"networks"`
	Vendors   []string `yaml:"vendors"`
	Originals *Recipes `yaml:"originals"`
}

func (e *Entry) bucket(b Bucket) []string {
	switch b {
	case BucketStudio:
		return e.Studios
	case BucketNetwork:
		return e.Networks
	case BucketVendor:
		return e.Vendors
	}
	return nil
}

// KB is the loaded knowledge base.
type KB struct {
	entries map[string]*Entry
}

var (
	loadOnce sync.Once
	loaded   *KB
	loadErr  error
)

// Load parses the embedded table on first use and returns the shared,
// read-only knowledge base.
func Load() (*KB, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(embeddedTable)
	})
	return loaded, loadErr
}

// Parse builds a knowledge base from YAML and validates every cross
// reference target exists.
func Parse(data []byte) (*KB, error) {
	entries := map[string]*Entry{}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse company table: %w", err)
	}
	kb := &KB{entries: entries}
	if err := kb.validate(); err != nil {
		return nil, err
	}
	return kb, nil
}

// Names returns the known company keys.
func (kb *KB) Names() []string {
	out := make([]string, 0, len(kb.entries))
	for name := range kb.entries {
		out = append(out, name)
	}
	return out
}

// Entry looks up a company by canonical key.
func (kb *KB) Entry(name string) (*Entry, bool) {
	e, ok := kb.entries[Canonical(name)]
	return e, ok
}

// Canonical normalizes a company name into the table key.
func Canonical(name string) string {
	k := strings.ToLower(strings.TrimSpace(name))
	k = strings.ReplaceAll(k, " ", "")
	k = strings.ReplaceAll(k, "+", "plus")
	k = strings.ReplaceAll(k, "-", "")
	return k
}

func (kb *KB) validate() error {
	check := func(owner string, refs []Ref) error {
		for _, ref := range refs {
			if ref.Company == "" {
				continue
			}
			if _, ok := kb.entries[ref.Company]; !ok {
				return fmt.Errorf("company %q references unknown company %q", owner, ref.Company)
			}
		}
		return nil
	}
	for name, entry := range kb.entries {
		if entry.Originals == nil {
			continue
		}
		for _, recipe := range []*Recipe{entry.Originals.Film, entry.Originals.Show, entry.Originals.Default} {
			if recipe == nil {
				continue
			}
			for _, refs := range [][]Ref{recipe.Fixed, recipe.Include, recipe.Exclude, recipe.Allow, recipe.Disallow} {
				if err := check(name, refs); err != nil {
					return err
				}
			}
			for _, rule := range recipe.Language {
				if err := check(name, rule.Include); err != nil {
					return err
				}
				if err := check(name, rule.Disallow); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
