package parallel

import (
	"context"
	"testing"

	"github.com/lambdapi-match/pimatch/pkg/pimatch"
	"github.com/lambdapi-match/pimatch/pkg/reducer"
	"github.com/lambdapi-match/pimatch/pkg/term"
)

func TestPoolSolveAllRunsIndependentAttempts(t *testing.T) {
	mkAttempt := func(name term.Term, mismatch bool) Attempt {
		mv := pimatch.MillerVar{}
		rhs := name
		if mismatch {
			rhs = term.Const{Name: "mismatch"}
		}
		return Attempt{
			Problem: pimatch.PreMatchingProblem{
				Arities: []int{0},
				EqProblems: [][]pimatch.EqEquation{
					{{MVar: mv, RHS: term.Strict(rhs)}},
				},
			},
			NewReducer: func() reducer.Reducer { return reducer.NewReference() },
		}
	}

	pool := NewPool(2)
	defer pool.Shutdown()

	attempts := []Attempt{
		mkAttempt(term.Const{Name: "a"}, false),
		mkAttempt(term.Const{Name: "b"}, false),
	}

	results, err := pool.SolveAll(context.Background(), attempts)
	if err != nil {
		t.Fatalf("SolveAll returned error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	for i, r := range results {
		if !r.Ok {
			t.Errorf("results[%d].Ok = false, want true", i)
		}
	}
	if got := results[0].Substs[0].Force(); !got.Equal(term.Const{Name: "a"}) {
		t.Errorf("results[0] σ(X) = %v, want a", got)
	}
	if got := results[1].Substs[0].Force(); !got.Equal(term.Const{Name: "b"}) {
		t.Errorf("results[1] σ(X) = %v, want b", got)
	}
}

func TestPoolSubmitAfterShutdown(t *testing.T) {
	pool := NewPool(1)
	pool.Shutdown()

	results := make(chan Result, 1)
	_, err := pool.Submit(context.Background(), Attempt{
		NewReducer: func() reducer.Reducer { return reducer.NewReference() },
	}, results)
	if err != ErrPoolShutdown {
		t.Errorf("Submit after shutdown returned %v, want ErrPoolShutdown", err)
	}
}
