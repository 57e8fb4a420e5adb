package ast

import "sort"

// Canonicalize rebuilds a PipeList's elements, de-duplicated by
// structural match (§4.2) and sorted by kind ordinal (§3's
// canonicalization invariant), then collapses a singleton result to
// its sole element. Any two semantically equal unions produce
// identical output regardless of the order their alternatives were
// discovered in (return-type inference, explicit annotations, ...).
func Canonicalize(pipe *Node) *Node {
	if pipe.Kind != PipeList {
		return pipe
	}
	var uniq []*Node
	for _, cand := range pipe.Elements {
		dup := false
		for _, kept := range uniq {
			if ok, _ := Match(kept, cand, MatchOptions{}); ok {
				if ok2, _ := Match(cand, kept, MatchOptions{}); ok2 {
					dup = true
					break
				}
			}
		}
		if !dup {
			uniq = append(uniq, cand)
		}
	}
	sort.SliceStable(uniq, func(i, j int) bool {
		return kindOrdinal(uniq[i]) < kindOrdinal(uniq[j])
	})
	if len(uniq) == 1 {
		return uniq[0]
	}
	pipe.Elements = uniq
	return pipe
}

// Union builds a canonicalized PipeList from alternatives, collapsing
// to a single Node when only one distinct alternative survives.
func Union(pos Pos, alternatives ...*Node) *Node {
	var flat []*Node
	for _, alt := range alternatives {
		if alt == nil {
			continue
		}
		if alt.Kind == PipeList {
			flat = append(flat, alt.Elements...)
		} else {
			flat = append(flat, alt)
		}
	}
	if len(flat) == 0 {
		return MakeEmpty(pos)
	}
	return Canonicalize(MakePipeList(pos, flat))
}
