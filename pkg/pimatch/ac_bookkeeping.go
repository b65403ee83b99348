package pimatch

import (
	"context"

	"github.com/lambdapi-match/pimatch/pkg/reducer"
	"github.com/lambdapi-match/pimatch/pkg/term"
)

// setUnsolved marks variable i as Solved(sol) and propagates that solution
// through every AC problem mentioning i. It returns the
// updated problem, or ErrNotSolvable if any expected term the propagation
// produces is not present (with multiplicity) in that equation's RHS
// multiset. Callers in the search driver treat that error as an ordinary
// branch failure; the top-level orchestrator's seeding phase treats it as
// the NotSolvable escape that aborts matching outright.
func setUnsolved(ctx context.Context, r reducer.Reducer, pb *MatchingProblem, i int, sol term.Term) (*MatchingProblem, error) {
	next := pb.clone()
	next.Status[i] = Solved(sol)
	return propagateSolved(ctx, r, next, i, sol)
}

// propagateSolved performs the AC-problem side of setUnsolved without
// touching status[i] itself, so the top-level orchestrator's bulk seeding
// can reuse it for variables that were already marked Solved by the
// equational seeding pass.
func propagateSolved(ctx context.Context, r reducer.Reducer, pb *MatchingProblem, i int, sol term.Term) (*MatchingProblem, error) {
	next := pb.clone()
	arity := pb.Arities[i]
	newProbs := make([]ACProblem, len(pb.ACProblems))

	for pi, p := range pb.ACProblems {
		var matching []ACVarOcc
		newVars := make([]ACVarOcc, 0, len(p.Vars))
		for _, occ := range p.Vars {
			if occ.VarIndex == i {
				matching = append(matching, occ)
			} else {
				newVars = append(newVars, occ)
			}
		}
		if len(matching) == 0 {
			newProbs[pi] = p
			continue
		}

		// i may occur more than once in the same AC equation (e.g. X + X +
		// Y); each occurrence demands its own copy of sol's flattened
		// components be removed from terms, since the fully-expanded
		// pattern repeats sol's contribution once per occurrence.
		terms := p.Terms
		for _, occ := range matching {
			flattened := flattenForProblem(ctx, r, p.Ident, sol)
			for _, s := range flattened {
				expected := term.Shift(p.Depth, term.ApplyToDBList(term.AddNLambdas(arity, s), occ.MVar.Vars))
				shortened, removed := removeExpectedLazy(ctx, r, terms, expected)
				if !removed {
					return nil, ErrNotSolvable
				}
				terms = shortened
			}
		}

		if len(newVars) == 0 {
			if len(terms) != 0 && p.Jokers <= 0 {
				return nil, ErrNotSolvable
			}
		}

		newProbs[pi] = ACProblem{Depth: p.Depth, Ident: p.Ident, Jokers: p.Jokers, Vars: newVars, Terms: terms}
	}

	next.ACProblems = newProbs
	return next, nil
}

// flattenForProblem computes the list of AC-components sol contributes to
// an AC problem over ident: sol is WHNF-reduced, and if its head matches
// ident's symbol it is flattened (dropping any component convertible to the
// ACU neutral element); otherwise sol contributes itself as a single
// component.
func flattenForProblem(ctx context.Context, r reducer.Reducer, ident reducer.ACIdent, sol term.Term) []term.Term {
	whnf := r.WHNF(ctx, sol)

	node, ok := whnf.(term.ACNode)
	if !ok || node.Symbol != ident.Symbol {
		return []term.Term{whnf}
	}

	snf := func(t term.Term) term.Term { return r.SNF(ctx, t) }
	flat := reducer.FlattenAC(snf, ident.Symbol, whnf)

	if !ident.Flavour.IsACU() {
		return flat
	}

	out := flat[:0:0]
	for _, t := range flat {
		if !r.AreConvertible(ctx, t, ident.Flavour.Neutral) {
			out = append(out, t)
		}
	}
	return out
}

// removeExpectedLazy removes (forcing at most the elements it inspects) the
// first element of terms convertible to expected, returning the shortened
// slice and whether a match was found.
func removeExpectedLazy(ctx context.Context, r reducer.Reducer, terms []term.Lazy, expected term.Term) ([]term.Lazy, bool) {
	return reducer.RemoveOneConvertible(terms, func(t term.Lazy) bool {
		return r.AreConvertible(ctx, t.Force(), expected)
	})
}

// setPartly opens a Partly state for variable i under AC identifier aci.
// Precondition (caller-enforced): status[i] is Unsolved.
func setPartly(pb *MatchingProblem, i int, aci reducer.ACIdent) *MatchingProblem {
	next := pb.clone()
	next.Status[i] = Partly(aci, nil)
	return next
}

// addPartly extends variable i's partial AC bag with sol. For
// every AC problem with a matching ac_ident that mentions i, it subtracts
// shift(depth, lamb(arity_i, sol)) applied to the occurrence's vars from
// that problem's RHS terms; on any missing subtraction it fails. The
// variable remains in the problem's vars list (more terms may still
// accumulate).
func addPartly(ctx context.Context, r reducer.Reducer, pb *MatchingProblem, i int, sol term.Term) (*MatchingProblem, error) {
	aci, bag, ok := AsPartly(pb.Status[i])
	if !ok {
		return nil, ErrNotSolvable
	}

	arity := pb.Arities[i]
	newProbs := make([]ACProblem, len(pb.ACProblems))

	for pi, p := range pb.ACProblems {
		if !p.Ident.Equal(aci) {
			newProbs[pi] = p
			continue
		}
		var matching []ACVarOcc
		for _, occ := range p.Vars {
			if occ.VarIndex == i {
				matching = append(matching, occ)
			}
		}
		if len(matching) == 0 {
			newProbs[pi] = p
			continue
		}

		// As in propagateSolved: one subtraction per occurrence of i, since
		// a repeated variable's new bag element contributes once per place
		// it occurs in the flattened pattern.
		terms := p.Terms
		for _, occ := range matching {
			expected := term.Shift(p.Depth, term.ApplyToDBList(term.AddNLambdas(arity, sol), occ.MVar.Vars))
			shortened, removed := removeExpectedLazy(ctx, r, terms, expected)
			if !removed {
				return nil, ErrNotSolvable
			}
			terms = shortened
		}

		newProbs[pi] = ACProblem{Depth: p.Depth, Ident: p.Ident, Jokers: p.Jokers, Vars: p.Vars, Terms: terms}
	}

	next := pb.clone()
	next.ACProblems = newProbs
	newBag := make([]term.Term, len(bag)+1)
	copy(newBag, bag)
	newBag[len(bag)] = sol
	next.Status[i] = Partly(aci, newBag)
	return next, nil
}

// closePartly commits variable i's Partly state to Solved, then propagates
// that solution. An empty bag under a plain AC identifier has
// no neutral element to fall back on and fails; under ACU it resolves to
// the neutral element. A non-empty bag unflattens to the AC-combination of
// its accumulated terms. Remaining occurrences of i in AC problems sharing
// this ac_ident are dropped first (accepting or failing each such problem
// step 4), then setUnsolved re-propagates the committed
// value through every other problem mentioning i.
func closePartly(ctx context.Context, r reducer.Reducer, pb *MatchingProblem, i int) (*MatchingProblem, error) {
	aci, bag, ok := AsPartly(pb.Status[i])
	if !ok {
		return nil, ErrNotSolvable
	}

	var v term.Term
	if len(bag) == 0 {
		if !aci.Flavour.IsACU() {
			return nil, ErrNotSolvable
		}
		v = aci.Flavour.Neutral
	} else {
		v = reducer.UnflattenAC(aci, bag)
	}

	newProbs := make([]ACProblem, len(pb.ACProblems))
	for pi, p := range pb.ACProblems {
		if !p.Ident.Equal(aci) {
			newProbs[pi] = p
			continue
		}
		newVars := make([]ACVarOcc, 0, len(p.Vars))
		removedAny := false
		for _, occ := range p.Vars {
			if occ.VarIndex == i {
				removedAny = true
				continue
			}
			newVars = append(newVars, occ)
		}
		if removedAny && len(newVars) == 0 {
			if len(p.Terms) != 0 && p.Jokers <= 0 {
				return nil, ErrNotSolvable
			}
		}
		newProbs[pi] = ACProblem{Depth: p.Depth, Ident: p.Ident, Jokers: p.Jokers, Vars: newVars, Terms: p.Terms}
	}

	next := pb.clone()
	next.ACProblems = newProbs
	return setUnsolved(ctx, r, next, i, v)
}
