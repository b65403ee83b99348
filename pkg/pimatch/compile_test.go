package pimatch

import (
	"context"
	"testing"

	"github.com/lambdapi-match/pimatch/pkg/reducer"
	"github.com/lambdapi-match/pimatch/pkg/term"
)

func TestCompileRulePureMiller(t *testing.T) {
	// λx. X x vs λx. f x x, built through the compiler instead of by hand.
	rhs := term.NewApp(term.Const{Name: "f"}, term.DB{Index: 0}, term.DB{Index: 0})

	pb, err := CompileRule(1, []int{1},
		[]struct {
			Pattern Pattern
			RHS     term.Term
		}{
			{Pattern: Pattern{VarIndex: 0, Depth: 1, Vars: []int{0}}, RHS: rhs},
		},
		nil,
	)
	if err != nil {
		t.Fatalf("CompileRule returned error: %v", err)
	}

	got, ok := SolveProblem(context.Background(), reducer.NewReference(), pb)
	if !ok {
		t.Fatal("SolveProblem failed, want success")
	}
	want := term.Lambda{Body: rhs}
	if x := got[0].Force(); !x.Equal(want) {
		t.Errorf("σ(X) = %v, want %v", x, want)
	}
}

func TestCompileRuleRejectsArityMismatch(t *testing.T) {
	_, err := CompileRule(2, []int{1}, nil, nil)
	if err == nil {
		t.Fatal("CompileRule accepted mismatched arities slice")
	}
}

func TestCompileRuleACEquation(t *testing.T) {
	a, b := term.Const{Name: "a"}, term.Const{Name: "b"}
	pb, err := CompileRule(2, []int{0, 0}, nil,
		[]struct {
			Depth  int
			Ident  reducer.ACIdent
			Jokers int
			Vars   []Pattern
			Terms  []term.Term
		}{
			{
				Ident: reducer.ACIdent{Symbol: "+"},
				Vars: []Pattern{
					{VarIndex: 0},
					{VarIndex: 1},
				},
				Terms: []term.Term{a, b},
			},
		},
	)
	if err != nil {
		t.Fatalf("CompileRule returned error: %v", err)
	}

	got, ok := SolveProblem(context.Background(), reducer.NewReference(reducer.ACIdent{Symbol: "+"}), pb)
	if !ok {
		t.Fatal("SolveProblem failed, want success")
	}
	if x := got[0].Force(); !x.Equal(a) {
		t.Errorf("σ(X) = %v, want a", x)
	}
	if y := got[1].Force(); !y.Equal(b) {
		t.Errorf("σ(Y) = %v, want b", y)
	}
}
