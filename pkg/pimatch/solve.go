package pimatch

import (
	"context"

	"github.com/lambdapi-match/pimatch/pkg/reducer"
	"github.com/lambdapi-match/pimatch/pkg/term"
)

// SolveProblem is the engine's sole entry point. It seeds
// every variable's equational slot, and — unless the problem is purely
// equational — folds in the AC problems and runs the search driver. The
// result is a dense lazy substitution of length len(pb.Arities), or ok=false
// if no solution exists.
func SolveProblem(ctx context.Context, r reducer.Reducer, pb PreMatchingProblem) ([]term.Lazy, bool) {
	if len(pb.ACProblems) == 0 {
		return solveEquational(ctx, r, pb)
	}
	return solveGeneral(ctx, r, pb)
}

// solveEquational is the fast path: every variable must be pinned down by
// its own equational slot, with no AC problem to fall back on for
// variables left Unsolved.
func solveEquational(ctx context.Context, r reducer.Reducer, pb PreMatchingProblem) ([]term.Lazy, bool) {
	sols := make([]term.Term, len(pb.Arities))
	for i, arity := range pb.Arities {
		sol, err := seedEquationalSlot(ctx, r, arity, pb.EqProblems[i])
		if err != nil || sol == nil {
			return nil, false
		}
		sols[i] = sol
	}
	return materializeSubstitution(pb.Arities, sols), true
}

// solveGeneral is step 2: seed every equational slot (leaving
// genuinely unconstrained variables Unsolved), convert the AC problems,
// bulk-propagate the variables the equational pass already pinned down,
// reorder, and hand off to the search driver.
func solveGeneral(ctx context.Context, r reducer.Reducer, pb PreMatchingProblem) ([]term.Lazy, bool) {
	n := len(pb.Arities)
	status := make([]Status, n)
	presolved := make([]int, 0, n)

	for i, arity := range pb.Arities {
		sol, err := seedEquationalSlot(ctx, r, arity, pb.EqProblems[i])
		if err != nil {
			return nil, false
		}
		if sol == nil {
			status[i] = Unsolved()
			continue
		}
		status[i] = Solved(sol)
		presolved = append(presolved, i)
	}

	acProbs := make([]ACProblem, len(pb.ACProblems))
	for i, p := range pb.ACProblems {
		terms := make([]term.Lazy, len(p.Terms))
		for j, t := range p.Terms {
			terms[j] = term.Strict(t)
		}
		acProbs[i] = ACProblem{Depth: p.Depth, Ident: p.Ident, Jokers: p.Jokers, Vars: p.Vars, Terms: terms}
	}

	mp := &MatchingProblem{
		EqProblems: pb.EqProblems,
		ACProblems: acProbs,
		Status:     status,
		Arities:    pb.Arities,
	}

	for _, i := range presolved {
		sol, _ := AsSolved(mp.Status[i])
		next, err := propagateSolved(ctx, r, mp, i, sol)
		if err != nil {
			return nil, false
		}
		mp = next
	}

	mp = mp.withACProblems(acRearrange(mp.ACProblems))

	result, ok := solveACProblem(ctx, r, mp)
	if !ok {
		return nil, false
	}

	sols := make([]term.Term, n)
	for i := range sols {
		sol, solved := AsSolved(result.Status[i])
		if !solved {
			return nil, false
		}
		sols[i] = sol
	}
	return materializeSubstitution(pb.Arities, sols), true
}

// seedEquationalSlot solves a variable's first equation, then cross-checks
// every subsequent equation against the same solution. A nil, nil result
// means the slot is empty (no equations at all) and the
// variable is left Unsolved for the AC phase, if any, to resolve.
func seedEquationalSlot(ctx context.Context, r reducer.Reducer, arity int, eqs []EqEquation) (term.Term, error) {
	if len(eqs) == 0 {
		return nil, nil
	}

	sol, err := ForceSolve(ctx, r, eqs[0].MVar, eqs[0].RHS.Force())
	if err != nil {
		return nil, ErrNotSolvable
	}

	for _, eq := range eqs[1:] {
		expected := term.Shift(eq.MVar.Depth, term.ApplyToDBList(term.AddNLambdas(arity, sol), eq.MVar.Vars))
		if !r.AreConvertible(ctx, expected, eq.RHS.Force()) {
			return nil, ErrNotSolvable
		}
	}
	return sol, nil
}

// materializeSubstitution wraps each variable's solved body as the lazy
// abstraction λ^arity_i. sol_i the caller's substitution expects.
func materializeSubstitution(arities []int, sols []term.Term) []term.Lazy {
	out := make([]term.Lazy, len(sols))
	for i, sol := range sols {
		out[i] = term.Strict(term.AddNLambdas(arities[i], sol))
	}
	return out
}
