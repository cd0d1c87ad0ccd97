package company

import (
	"fmt"
	"strings"

	"github.com/reeldex/reeldex/internal/imdb/taxonomy"
	"github.com/reeldex/reeldex/internal/imdb/types"
)

// Resolution is the outcome of applying an originals recipe: the ids a
// request must include and the ids it must exclude. Include is ordered
// by priority (studios, networks, vendors, then everything else) so the
// tail can be truncated against the URL budget.
type Resolution struct {
	Include []string
	Exclude []string
}

// Empty reports whether the resolution constrains nothing.
func (r Resolution) Empty() bool {
	return len(r.Include) == 0 && len(r.Exclude) == 0
}

// Resolve applies the originals recipe of the named company for the
// given media and request language. When the company has no recipe the
// resolution is the plain union of its studio and network ids.
func (kb *KB) Resolve(name string, media types.Media, language string) (Resolution, error) {
	entry, ok := kb.Entry(name)
	if !ok {
		return Resolution{}, fmt.Errorf("unknown company %q", name)
	}

	recipe := entry.Originals.ForMedia(media)

	include := newIDSet()
	exclude := newIDSet()

	// Base set: the fixed override when present, otherwise studios and
	// networks together.
	if recipe != nil && len(recipe.Fixed) > 0 {
		include.add(kb.expand(entry, recipe.Fixed)...)
	} else {
		include.add(entry.Studios...)
		include.add(entry.Networks...)
	}

	if recipe != nil {
		include.add(kb.expand(entry, recipe.Include)...)
		exclude.add(kb.expand(entry, recipe.Exclude)...)

		for _, a := range kb.expand(entry, recipe.Allow) {
			exclude.remove(a)
		}
		for _, d := range kb.expand(entry, recipe.Disallow) {
			include.remove(d)
		}

		lang := languageKey(language)
		for key, rule := range recipe.Language {
			if key == lang {
				include.add(kb.expand(entry, rule.Include)...)
				for _, d := range kb.expand(entry, rule.Disallow) {
					include.remove(d)
				}
			} else {
				for _, d := range kb.expand(entry, rule.Include) {
					include.remove(d)
				}
			}
		}
	}

	// An id on both sides is a contradiction; include wins.
	for _, in := range include.order {
		exclude.remove(in)
	}

	return Resolution{
		Include: kb.prioritize(entry, include.order),
		Exclude: exclude.order,
	}, nil
}

// Compose joins a resolution into the wire value for a companies
// parameter, negation-prefixed excludes last, truncated so the value
// never exceeds budget characters. Truncation drops the lowest-priority
// tail first.
func (r Resolution) Compose(budget int) string {
	parts := make([]string, 0, len(r.Include)+len(r.Exclude))
	parts = append(parts, r.Include...)
	for _, ex := range r.Exclude {
		parts = append(parts, taxonomy.PrefixNegate+ex)
	}

	if budget <= 0 {
		return strings.Join(parts, ",")
	}

	total := 0
	kept := 0
	for _, p := range parts {
		cost := len(p)
		if kept > 0 {
			cost++ // comma
		}
		if total+cost > budget {
			break
		}
		total += cost
		kept++
	}
	return strings.Join(parts[:kept], ",")
}

// expand resolves refs to concrete ids: literals pass through, bucket
// names read from the owning entry, cross references read from the
// named company.
func (kb *KB) expand(self *Entry, refs []Ref) []string {
	var out []string
	for _, ref := range refs {
		switch {
		case ref.ID != "":
			out = append(out, ref.ID)
		case ref.Company != "":
			if other, ok := kb.entries[ref.Company]; ok {
				out = append(out, other.bucket(ref.Bucket)...)
			}
		default:
			out = append(out, self.bucket(ref.Bucket)...)
		}
	}
	return out
}

// prioritize orders ids so the URL-budget truncation drops the least
// valuable tail: the company's own studios first, then networks, then
// vendors, then foreign ids.
func (kb *KB) prioritize(entry *Entry, ids []string) []string {
	rank := func(id string) int {
		for _, s := range entry.Studios {
			if s == id {
				return 0
			}
		}
		for _, n := range entry.Networks {
			if n == id {
				return 1
			}
		}
		for _, v := range entry.Vendors {
			if v == id {
				return 2
			}
		}
		return 3
	}

	out := make([]string, 0, len(ids))
	for tier := 0; tier <= 3; tier++ {
		for _, id := range ids {
			if rank(id) == tier {
				out = append(out, id)
			}
		}
	}
	return out
}

func languageKey(language string) string {
	l := strings.ToLower(strings.TrimSpace(language))
	l = strings.TrimPrefix(l, taxonomy.PrefixPrimary)
	if i := strings.IndexAny(l, "-_"); i > 0 {
		l = l[:i]
	}
	return l
}

// idSet is an insertion-ordered set.
type idSet struct {
	seen  map[string]bool
	order []string
}

func newIDSet() *idSet {
	return &idSet{seen: map[string]bool{}}
}

func (s *idSet) add(ids ...string) {
	for _, id := range ids {
		if id == "" || s.seen[id] {
			continue
		}
		s.seen[id] = true
		s.order = append(s.order, id)
	}
}

func (s *idSet) remove(id string) {
	if !s.seen[id] {
		return
	}
	delete(s.seen, id)
	for i, have := range s.order {
		if have == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
