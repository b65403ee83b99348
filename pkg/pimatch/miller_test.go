package pimatch

import (
	"context"
	"errors"
	"testing"

	"github.com/lambdapi-match/pimatch/pkg/reducer"
	"github.com/lambdapi-match/pimatch/pkg/term"
)

func TestSolveFastPathArityZero(t *testing.T) {
	mv := MillerVar{Arity: 0, Depth: 1}
	got, err := Solve(mv, term.Const{Name: "a"})
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	if !got.Equal(term.Const{Name: "a"}) {
		t.Errorf("Solve = %v, want a", got)
	}
}

func TestSolveIdentityMapping(t *testing.T) {
	// λx. X x vs f x x: mvar = {arity=1, depth=1, mapping=[0], vars=[0]}.
	mv := MillerVar{Arity: 1, Depth: 1, Mapping: []int{0}, Vars: []int{0}}
	rhs := term.NewApp(term.Const{Name: "f"}, term.DB{Index: 0}, term.DB{Index: 0})

	got, err := Solve(mv, rhs)
	if err != nil {
		t.Fatalf("Solve returned error: %v", err)
	}
	want := term.NewApp(term.Const{Name: "f"}, term.DB{Index: 0}, term.DB{Index: 0})
	if !got.Equal(want) {
		t.Errorf("Solve = %v, want %v", got, want)
	}

	sol := term.AddNLambdas(mv.Arity, got)
	wantLambda := term.Lambda{Body: term.NewApp(term.Const{Name: "f"}, term.DB{Index: 0}, term.DB{Index: 0})}
	if !sol.Equal(wantLambda) {
		t.Errorf("lambda-wrapped solution = %v, want %v", sol, wantLambda)
	}
}

func TestSolveFailsOnUncapturedFreeIndex(t *testing.T) {
	// X applied to nothing (arity 0... use arity>0 but mapping has -1 for
	// the index actually occurring) so the bound variable isn't captured.
	mv := MillerVar{Arity: 1, Depth: 1, Mapping: []int{-1}, Vars: []int{}}
	_, err := Solve(mv, term.DB{Index: 0})
	if !errors.Is(err, ErrNotUnifiable) {
		t.Errorf("Solve error = %v, want ErrNotUnifiable", err)
	}
}

func TestForceSolveRetriesAgainstSNF(t *testing.T) {
	// t itself is not solvable (an uncaptured free index), but its SNF is.
	mv := MillerVar{Arity: 0, Depth: 1}
	r := stubReducer{snf: term.Const{Name: "a"}}
	rhs := term.DB{Index: 0}

	got, err := ForceSolve(context.Background(), r, mv, rhs)
	if err != nil {
		t.Fatalf("ForceSolve returned error: %v", err)
	}
	if !got.Equal(term.Const{Name: "a"}) {
		t.Errorf("ForceSolve = %v, want a", got)
	}
}

// stubReducer is a minimal reducer.Reducer for unit-testing the Miller
// solver's SNF escalation in isolation from pkg/reducer's Reference.
type stubReducer struct {
	snf term.Term
}

func (s stubReducer) WHNF(ctx context.Context, t term.Term) term.Term { return t }
func (s stubReducer) SNF(ctx context.Context, t term.Term) term.Term  { return s.snf }
func (s stubReducer) AreConvertible(ctx context.Context, a, b term.Term) bool {
	return a.Equal(b)
}

var _ reducer.Reducer = stubReducer{}
