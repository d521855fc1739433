package resolver

import (
	"context"
	"errors"
	"slices"

	"github.com/oshokin/get-version/internal/domain/release"
)

// graph is an in-memory commit graph answering the Repository queries.
type graph struct {
	// parents maps a commit to its parents, first parent first.
	parents map[string][]string
	// refs maps branch names as listed by git to their tip commit.
	refs map[string]string
	// listing is what `git branch --all` prints.
	listing []string
}

func newGraph() *graph {
	return &graph{
		parents: make(map[string][]string),
		refs:    make(map[string]string),
	}
}

// commit adds a commit with the given parents.
func (g *graph) commit(id string, parents ...string) *graph {
	g.parents[id] = parents
	return g
}

// chain adds commits each having the previous one as its only parent.
func (g *graph) chain(parent string, ids ...string) *graph {
	for _, id := range ids {
		g.commit(id, parent)
		parent = id
	}

	return g
}

// branch points a listed branch at a commit.
func (g *graph) branch(listed, name, tip string) *graph {
	g.refs[name] = tip
	g.listing = append(g.listing, listed)

	return g
}

func (g *graph) resolve(rev string) (string, error) {
	if tip, ok := g.refs[rev]; ok {
		return tip, nil
	}

	if _, ok := g.parents[rev]; ok {
		return rev, nil
	}

	return "", errors.Join(release.ErrCommandFailed, errors.New("unknown revision "+rev))
}

func (g *graph) ancestors(id string) map[string]struct{} {
	seen := map[string]struct{}{}
	queue := []string{id}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		if _, ok := seen[c]; ok {
			continue
		}

		seen[c] = struct{}{}
		queue = append(queue, g.parents[c]...)
	}

	return seen
}

func (g *graph) RevParse(_ context.Context, rev string) (string, error) {
	return g.resolve(rev)
}

func (g *graph) ShortHash(_ context.Context, rev string) (string, error) {
	id, err := g.resolve(rev)
	if err != nil {
		return "", err
	}

	return "h" + id, nil
}

func (g *graph) Branches(_ context.Context) ([]string, error) {
	return slices.Clone(g.listing), nil
}

func (g *graph) MergeBase(_ context.Context, a, b string) (string, error) {
	ca, err := g.resolve(a)
	if err != nil {
		return "", err
	}

	cb, err := g.resolve(b)
	if err != nil {
		return "", err
	}

	ancA, ancB := g.ancestors(ca), g.ancestors(cb)

	var common []string

	for c := range ancA {
		if _, ok := ancB[c]; ok {
			common = append(common, c)
		}
	}

	slices.Sort(common)

	for _, c := range common {
		best := true

		for _, d := range common {
			if d == c {
				continue
			}

			if _, ok := g.ancestors(d)[c]; ok {
				best = false
				break
			}
		}

		if best {
			return c, nil
		}
	}

	return "", errors.Join(release.ErrCommandFailed, errors.New("no merge base for "+a+" "+b))
}

func (g *graph) CountFirstParent(_ context.Context, from, to string) (int, error) {
	cf, err := g.resolve(from)
	if err != nil {
		return 0, err
	}

	ct, err := g.resolve(to)
	if err != nil {
		return 0, err
	}

	excluded := g.ancestors(cf)
	count := 0

	for c := ct; c != ""; {
		if _, ok := excluded[c]; ok {
			break
		}

		count++

		parents := g.parents[c]
		if len(parents) == 0 {
			break
		}

		c = parents[0]
	}

	return count, nil
}
