package reducer

import (
	"github.com/lambdapi-match/pimatch/pkg/term"
)

// FlattenAC returns the list of AC-components of t under head symbol sym,
// normalising inner occurrences via snf as needed. A term whose head is not
// sym (after snf) is a single-element flattening of itself.
func FlattenAC(snf func(term.Term) term.Term, sym string, t term.Term) []term.Term {
	normalized := snf(t)

	node, ok := normalized.(term.ACNode)
	if !ok || node.Symbol != sym {
		return []term.Term{normalized}
	}

	var out []term.Term
	for _, sub := range node.Terms {
		out = append(out, FlattenAC(snf, sym, sub)...)
	}
	return out
}

// UnflattenAC is the inverse of FlattenAC: it builds a single term
// representing the AC-combination of ts under ident. An empty ts unflattens
// to the neutral element for ACU idents; callers must not call this with an
// empty ts for plain AC idents, which have no neutral element to fall back on.
func UnflattenAC(ident ACIdent, ts []term.Term) term.Term {
	if len(ts) == 0 {
		if ident.Flavour.IsACU() {
			return ident.Flavour.Neutral
		}
		return term.ACNode{Symbol: ident.Symbol, Terms: nil}
	}
	if len(ts) == 1 {
		return ts[0]
	}
	flat := make([]term.Term, len(ts))
	copy(flat, ts)
	return term.ACNode{Symbol: ident.Symbol, Terms: flat}
}

// RemoveOneConvertible removes the first element of ts for which match
// returns true, returning the shortened slice plus whether an element was
// removed. This is the multiset-subtraction splice AC bookkeeping performs
// against an AC problem's RHS terms; it is generic over the element type so
// callers can match against either a plain term.Term or, by closing over a
// reducer and forcing on demand inside match, a term.Lazy without forcing
// elements the scan never reaches.
func RemoveOneConvertible[T any](ts []T, match func(T) bool) ([]T, bool) {
	for i, t := range ts {
		if match(t) {
			out := make([]T, 0, len(ts)-1)
			out = append(out, ts[:i]...)
			out = append(out, ts[i+1:]...)
			return out, true
		}
	}
	return ts, false
}
