package reducer

import (
	"context"

	"github.com/lambdapi-match/pimatch/pkg/term"
)

// Reference is a minimal Reducer sufficient to exercise and test the
// matching engine. It performs no beta/delta reduction (WHNF/SNF are the
// identity) and AreConvertible is AC-aware structural equality — adequate
// because the matching engine only ever asks the reducer to normalize
// already-closed, already-constructed substituted terms and to compare
// them for equality. A production signature providing real reduction to
// weak-head or strong normal form is a separate, out-of-scope collaborator.
type Reference struct {
	Idents map[string]ACIdent
}

// NewReference creates a Reference reducer over the given AC/ACU symbol
// declarations.
func NewReference(idents ...ACIdent) *Reference {
	m := make(map[string]ACIdent, len(idents))
	for _, id := range idents {
		m[id.Symbol] = id
	}
	return &Reference{Idents: m}
}

func (r *Reference) WHNF(ctx context.Context, t term.Term) term.Term { return t }
func (r *Reference) SNF(ctx context.Context, t term.Term) term.Term  { return t }

// AreConvertible compares t1 and t2 structurally, treating any ACNode whose
// symbol is a declared AC/ACU symbol as a multiset (order-insensitive,
// duplicates significant) rather than a positional list.
func (r *Reference) AreConvertible(ctx context.Context, t1, t2 term.Term) bool {
	return r.convertible(t1, t2)
}

func (r *Reference) convertible(t1, t2 term.Term) bool {
	switch a := t1.(type) {
	case term.DB:
		b, ok := t2.(term.DB)
		return ok && a.Index == b.Index
	case term.Const:
		b, ok := t2.(term.Const)
		return ok && a.Name == b.Name
	case term.Lambda:
		b, ok := t2.(term.Lambda)
		return ok && r.convertible(a.Body, b.Body)
	case term.App:
		b, ok := t2.(term.App)
		if !ok || len(a.Args) != len(b.Args) || !r.convertible(a.Head, b.Head) {
			return false
		}
		for i := range a.Args {
			if !r.convertible(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case term.ACNode:
		b, ok := t2.(term.ACNode)
		if !ok || a.Symbol != b.Symbol {
			return false
		}
		if _, declared := r.Idents[a.Symbol]; !declared {
			return len(a.Terms) == len(b.Terms) && allPairwise(r.convertible, a.Terms, b.Terms)
		}
		return multisetEqual(r.convertible, a.Terms, b.Terms)
	default:
		return t1.Equal(t2)
	}
}

func allPairwise(eq func(term.Term, term.Term) bool, a, b []term.Term) bool {
	for i := range a {
		if !eq(a[i], b[i]) {
			return false
		}
	}
	return true
}

// multisetEqual checks that a and b contain the same elements up to eq,
// with multiplicity, regardless of order.
func multisetEqual(eq func(term.Term, term.Term) bool, a, b []term.Term) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, x := range a {
		found := false
		for j, y := range b {
			if used[j] {
				continue
			}
			if eq(x, y) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
