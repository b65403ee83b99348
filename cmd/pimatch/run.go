package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lambdapi-match/pimatch/pkg/pimatch"
	"github.com/lambdapi-match/pimatch/pkg/reducer"
	"github.com/lambdapi-match/pimatch/pkg/term"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a handful of worked matching examples",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("=== pimatch examples ===")
		fmt.Println()

		pureMiller()
		acSmall()
		acJoker()
		acuNeutral()
		return nil
	},
}

func pureMiller() {
	fmt.Println("1. Pure Miller pattern (λx. X x vs λx. f x x):")

	mv := pimatch.MillerVar{Arity: 1, Depth: 1, Mapping: []int{0}, Vars: []int{0}}
	rhs := term.NewApp(term.Const{Name: "f"}, term.DB{Index: 0}, term.DB{Index: 0})

	pb := pimatch.PreMatchingProblem{
		Arities:    []int{1},
		EqProblems: [][]pimatch.EqEquation{{{MVar: mv, RHS: term.Strict(rhs)}}},
	}

	printResult(pb, reducer.NewReference())
}

func acSmall() {
	fmt.Println("2. AC matching (X + Y vs a + b):")

	plus := reducer.ACIdent{Symbol: "+"}
	a, b := term.Const{Name: "a"}, term.Const{Name: "b"}

	pb := pimatch.PreMatchingProblem{
		Arities:    []int{0, 0},
		EqProblems: [][]pimatch.EqEquation{nil, nil},
		ACProblems: []pimatch.PreACProblem{{
			Ident: plus,
			Vars: []pimatch.ACVarOcc{
				{VarIndex: 0, MVar: pimatch.MillerVar{}},
				{VarIndex: 1, MVar: pimatch.MillerVar{}},
			},
			Terms: []term.Term{a, b},
		}},
	}

	printResult(pb, reducer.NewReference(plus))
}

func acJoker() {
	fmt.Println("3. AC matching with a joker (X + J vs a + b + c):")

	plus := reducer.ACIdent{Symbol: "+"}
	a, b, c := term.Const{Name: "a"}, term.Const{Name: "b"}, term.Const{Name: "c"}

	pb := pimatch.PreMatchingProblem{
		Arities:    []int{0},
		EqProblems: [][]pimatch.EqEquation{nil},
		ACProblems: []pimatch.PreACProblem{{
			Ident:  plus,
			Jokers: 1,
			Vars:   []pimatch.ACVarOcc{{VarIndex: 0, MVar: pimatch.MillerVar{}}},
			Terms:  []term.Term{a, b, c},
		}},
	}

	printResult(pb, reducer.NewReference(plus))
}

func acuNeutral() {
	fmt.Println("4. ACU matching with a neutral element (X ⊕ Y vs a):")

	plusU := reducer.ACIdent{Symbol: "⊕", Flavour: reducer.ACFlavour{Neutral: term.Const{Name: "0"}}}
	a := term.Const{Name: "a"}

	pb := pimatch.PreMatchingProblem{
		Arities:    []int{0, 0},
		EqProblems: [][]pimatch.EqEquation{nil, nil},
		ACProblems: []pimatch.PreACProblem{{
			Ident: plusU,
			Vars: []pimatch.ACVarOcc{
				{VarIndex: 0, MVar: pimatch.MillerVar{}},
				{VarIndex: 1, MVar: pimatch.MillerVar{}},
			},
			Terms: []term.Term{a},
		}},
	}

	printResult(pb, reducer.NewReference(plusU))
}

func printResult(pb pimatch.PreMatchingProblem, r reducer.Reducer) {
	subst, ok := pimatch.SolveProblem(context.Background(), r, pb)
	if !ok {
		fmt.Println("   no solution")
		fmt.Println()
		return
	}
	for i, s := range subst {
		fmt.Printf("   sigma(X%d) = %s\n", i, s.Force().String())
	}
	fmt.Println()
}
