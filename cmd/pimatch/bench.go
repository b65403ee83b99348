package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lambdapi-match/pimatch/pkg/pimatch"
	"github.com/lambdapi-match/pimatch/pkg/reducer"
	"github.com/lambdapi-match/pimatch/pkg/term"
)

var benchIterations int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time repeated solves of a fixed AC matching problem",
	RunE: func(cmd *cobra.Command, args []string) error {
		plus := reducer.ACIdent{Symbol: "+"}
		a, b, c := term.Const{Name: "a"}, term.Const{Name: "b"}, term.Const{Name: "c"}

		pb := pimatch.PreMatchingProblem{
			Arities:    []int{0, 0, 0},
			EqProblems: [][]pimatch.EqEquation{nil, nil, nil},
			ACProblems: []pimatch.PreACProblem{{
				Ident: plus,
				Vars: []pimatch.ACVarOcc{
					{VarIndex: 0, MVar: pimatch.MillerVar{}},
					{VarIndex: 1, MVar: pimatch.MillerVar{}},
					{VarIndex: 2, MVar: pimatch.MillerVar{}},
				},
				Terms: []term.Term{a, b, c},
			}},
		}

		start := time.Now()
		for i := 0; i < benchIterations; i++ {
			if _, ok := pimatch.SolveProblem(context.Background(), reducer.NewReference(plus), pb); !ok {
				return fmt.Errorf("pimatch bench: unexpected solve failure on iteration %d", i)
			}
		}
		elapsed := time.Since(start)

		fmt.Printf("%d solves in %s (%.2f us/solve)\n", benchIterations, elapsed, float64(elapsed.Microseconds())/float64(benchIterations))
		return nil
	},
}

func init() {
	benchCmd.Flags().IntVar(&benchIterations, "n", 10000, "number of solves to time")
}
