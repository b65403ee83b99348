package pimatch

import (
	"context"
	"math"
	"sort"

	"github.com/lambdapi-match/pimatch/internal/trace"
	"github.com/lambdapi-match/pimatch/pkg/reducer"
)

// acRearrange sorts AC problems ascending by (len(vars), -len(terms),
// jokers > 0): fewer variables means tighter branching;
// among those, more RHS terms means more constraint (so problems with more
// terms are tried first among equal-vars problems); jokers make a problem
// strictly easier, so they are pushed later to avoid spuriously absorbing
// evidence other equations need. The sort is stable, preserving the input's
// relative order among problems with identical keys.
func acRearrange(probs []ACProblem) []ACProblem {
	out := make([]ACProblem, len(probs))
	copy(out, probs)
	sort.SliceStable(out, func(a, b int) bool {
		ka := rearrangeKey(out[a])
		kb := rearrangeKey(out[b])
		if ka[0] != kb[0] {
			return ka[0] < kb[0]
		}
		if ka[1] != kb[1] {
			return ka[1] < kb[1]
		}
		return ka[2] < kb[2]
	})
	return out
}

func rearrangeKey(p ACProblem) [3]int {
	jokerKey := 0
	if p.Jokers > 0 {
		jokerKey = 1
	}
	return [3]int{len(p.Vars), -len(p.Terms), jokerKey}
}

type budgetKey struct{}

// backtrackBudget is the mutable counter a context carries when a caller of
// WithBacktrackBudget wants to cap how many candidate terms the search
// driver may try before giving up. cmd/pimatch does not install one.
type backtrackBudget struct {
	remaining int // negative means unbounded
}

// WithBacktrackBudget returns a context that makes solveACProblem give up
// (as an ordinary failure, not a panic) once it has tried max candidate
// terms across the whole search. max <= 0 means unbounded.
func WithBacktrackBudget(ctx context.Context, max int) context.Context {
	if max <= 0 {
		return ctx
	}
	return context.WithValue(ctx, budgetKey{}, &backtrackBudget{remaining: max})
}

// takeBacktrack reports whether another candidate attempt is allowed; it
// decrements the budget if one is installed.
func takeBacktrack(ctx context.Context) bool {
	b, ok := ctx.Value(budgetKey{}).(*backtrackBudget)
	if !ok {
		return true
	}
	if b.remaining <= 0 {
		return false
	}
	b.remaining--
	return true
}

// fetchVar scores every (i, mvar) occurrence in p.Vars and returns the one
// with minimum score. Unsolved variables score 0 (most
// preferred); a variable already Partly-solved under the *same* AC symbol
// as p scores 1+len(accumulated terms) (prefer the variable with fewer
// terms accumulated so far); a variable Partly-solved under a *different*
// AC symbol scores MaxInt-1, not MaxInt — a deliberate off-by-one kept to
// preserve a specific search order over cross-symbol Partly variables.
func fetchVar(pb *MatchingProblem, p ACProblem) (int, MillerVar) {
	bestScore := math.MaxInt
	bestIdx := -1

	for _, occ := range p.Vars {
		score := 0
		switch st := pb.Status[occ.VarIndex].(type) {
		case statusUnsolved:
			score = 0
		case statusPartly:
			if st.ident.Equal(p.Ident) {
				score = 1 + len(st.terms)
			} else {
				score = math.MaxInt - 1
			}
		default:
			// A Solved variable must never appear in ac_problems.vars;
			// reaching here is a mis-built problem.
			panic("pimatch: solved variable found in ac_problems.vars")
		}
		if score < bestScore {
			bestScore = score
			bestIdx = occ.VarIndex
		}
	}

	for _, occ := range p.Vars {
		if occ.VarIndex == bestIdx {
			return occ.VarIndex, occ.MVar
		}
	}
	return -1, MillerVar{}
}

// solveACProblem is the search driver's main loop: a
// deterministic depth-first search over AC problems, trying each candidate
// RHS term for the chosen variable, recursing, and backtracking to the next
// candidate on failure. When every AC problem is resolved it returns the
// final (fully persistent, copy-on-write) MatchingProblem with ok=true;
// any dead end returns ok=false.
func solveACProblem(ctx context.Context, r reducer.Reducer, pb *MatchingProblem) (*MatchingProblem, bool) {
	return solveACProblemAt(ctx, r, pb, 0)
}

func solveACProblemAt(ctx context.Context, r reducer.Reducer, pb *MatchingProblem, idx int) (*MatchingProblem, bool) {
	if len(pb.ACProblems) == 0 {
		return pb, true
	}

	p := pb.ACProblems[0]
	rest := pb.ACProblems[1:]

	if len(p.Vars) == 0 {
		if len(p.Terms) == 0 || p.Jokers > 0 {
			return solveACProblemAt(ctx, r, pb.withACProblems(rest), idx+1)
		}
		return nil, false
	}

	i, mvar := fetchVar(pb, p)

	switch pb.Status[i].(type) {
	case statusPartly:
		for _, t := range p.Terms {
			if !takeBacktrack(ctx) {
				return nil, false
			}
			forced := t.Force()
			sol, err := ForceSolve(ctx, r, mvar, forced)
			if err != nil {
				trace.Backtrack(ctx, idx, i, forced.String(), false)
				continue
			}
			next, err := addPartly(ctx, r, pb, i, sol)
			if err != nil {
				trace.Backtrack(ctx, idx, i, sol.String(), false)
				continue
			}
			trace.Backtrack(ctx, idx, i, sol.String(), true)
			if result, ok := solveACProblemAt(ctx, r, next, idx); ok {
				return result, true
			}
		}
		closed, err := closePartly(ctx, r, pb, i)
		if err != nil {
			return nil, false
		}
		return solveACProblemAt(ctx, r, closed, idx)

	case statusUnsolved:
		for _, t := range p.Terms {
			if !takeBacktrack(ctx) {
				return nil, false
			}
			forced := t.Force()
			sol, err := ForceSolve(ctx, r, mvar, forced)
			if err != nil {
				trace.Backtrack(ctx, idx, i, forced.String(), false)
				continue
			}
			next, err := setUnsolved(ctx, r, pb, i, sol)
			if err != nil {
				trace.Backtrack(ctx, idx, i, sol.String(), false)
				continue
			}
			trace.Backtrack(ctx, idx, i, sol.String(), true)
			if result, ok := solveACProblemAt(ctx, r, next, idx); ok {
				return result, true
			}
		}
		return solveACProblemAt(ctx, r, setPartly(pb, i, p.Ident), idx)

	default:
		panic("pimatch: solved variable found in ac_problems.vars")
	}
}
