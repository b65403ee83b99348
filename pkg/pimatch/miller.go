package pimatch

import (
	"context"

	"github.com/lambdapi-match/pimatch/pkg/reducer"
	"github.com/lambdapi-match/pimatch/pkg/term"
)

// Solve implements the Miller higher-order pattern solver.
// Given a descriptor mv = {depth d, arity a, mapping m} and a term t, it
// produces t' such that substituting the unknown X := λ^a. t' and
// beta-reducing λ^d. X DB(mv.Vars[0])...DB(mv.Vars[-1]) yields λ^d. t.
//
// Fast path: when a = 0 (unapplied Miller variable), this is exactly
// Unshift(d, t).
func Solve(mv MillerVar, t term.Term) (term.Term, error) {
	if mv.Arity == 0 {
		return term.Unshift(mv.Depth, t)
	}

	return term.ApplySubst(func(_, _, n, k int) (term.Term, error) {
		if n < k {
			// n is bound by a binder inside t itself: left unchanged.
			return term.DB{Index: n}, nil
		}
		if n >= k+mv.Depth {
			// n is free above the pattern: unshift by depth, shift by arity.
			return term.DB{Index: n - mv.Depth + mv.Arity}, nil
		}
		// n is bound by one of the depth pattern binders.
		idx := n - k
		if idx < 0 || idx >= len(mv.Mapping) || mv.Mapping[idx] == -1 {
			return nil, ErrNotUnifiable
		}
		return term.DB{Index: mv.Mapping[idx] + k}, nil
	}, 0, t)
}

// ForceSolve wraps Solve with the reducer escalation describes:
// on ErrNotUnifiable, retry once against the strong normal form of t; a
// second failure propagates as a branch failure. t is an already-forced
// term.Term rather than a term.Lazy, so callers force their own Lazy copy
// exactly once and can reuse that same Term for logging or bookkeeping
// instead of forcing a second, independently-memoized copy.
func ForceSolve(ctx context.Context, r reducer.Reducer, mv MillerVar, t term.Term) (term.Term, error) {
	sol, err := Solve(mv, t)
	if err == nil {
		return sol, nil
	}

	normalized := r.SNF(ctx, t)
	return Solve(mv, normalized)
}
