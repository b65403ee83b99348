package term

import "errors"

// ErrNotUnifiable signals that a de Bruijn transform could not map some
// free index — the escape the Miller solver uses to trigger backtracking
//.
var ErrNotUnifiable = errors.New("term: not unifiable")

// SubstFunc rewrites a single de Bruijn occurrence. loc is the term-layer's
// own bookkeeping slot (unused by this package's callers but threaded
// through ApplySubst contract so callers built on a richer
// term representation can use it); x is unused here too and kept for
// signature parity with ("f(loc, x, n, k)"); n is the de Bruijn
// index being rewritten; k is the number of extra binders crossed since
// ApplySubst started walking. Returning an error aborts the walk.
type SubstFunc func(loc, x, n, k int) (Term, error)

// ApplySubst rewrites every de Bruijn index in t by calling f, tracking how
// many extra binders (k) have been crossed since the top of the walk
// (k starts at k0). Per
func ApplySubst(f SubstFunc, k0 int, t Term) (Term, error) {
	switch tt := t.(type) {
	case DB:
		return f(0, tt.Index, tt.Index, k0)
	case Const:
		return tt, nil
	case App:
		newHead, err := ApplySubst(f, k0, tt.Head)
		if err != nil {
			return nil, err
		}
		newArgs := make([]Term, len(tt.Args))
		for i, a := range tt.Args {
			na, err := ApplySubst(f, k0, a)
			if err != nil {
				return nil, err
			}
			newArgs[i] = na
		}
		return NewApp(newHead, newArgs...), nil
	case Lambda:
		newBody, err := ApplySubst(f, k0+1, tt.Body)
		if err != nil {
			return nil, err
		}
		return Lambda{Body: newBody}, nil
	case ACNode:
		newTerms := make([]Term, len(tt.Terms))
		for i, sub := range tt.Terms {
			ns, err := ApplySubst(f, k0, sub)
			if err != nil {
				return nil, err
			}
			newTerms[i] = ns
		}
		return ACNode{Symbol: tt.Symbol, Terms: newTerms}, nil
	default:
		return tt, nil
	}
}

// Shift adds d to every free de Bruijn index in t (indices bound within t
// are left alone). Per
func Shift(d int, t Term) Term {
	if d == 0 {
		return t
	}
	out, _ := ApplySubst(func(_, _, n, k int) (Term, error) {
		if n >= k {
			return DB{Index: n + d}, nil
		}
		return DB{Index: n}, nil
	}, 0, t)
	return out
}

// Unshift subtracts d from every free de Bruijn index in t, failing with
// ErrNotUnifiable if any such index would become negative. Per
func Unshift(d int, t Term) (Term, error) {
	if d == 0 {
		return t, nil
	}
	return ApplySubst(func(_, _, n, k int) (Term, error) {
		if n >= k {
			if n-d < k {
				return nil, ErrNotUnifiable
			}
			return DB{Index: n - d}, nil
		}
		return DB{Index: n}, nil
	}, 0, t)
}
