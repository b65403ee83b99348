package pimatch

import (
	"fmt"

	"github.com/lambdapi-match/pimatch/pkg/reducer"
	"github.com/lambdapi-match/pimatch/pkg/term"
)

// Pattern describes one unknown's binding site in a closed-form rule LHS, as
// a rule compiler would record it while walking the pattern under its
// enclosing binders: which global variable it is, the binders it sits
// under (depth), and which of those binders it is actually applied to
// (vars, which also fixes arity).
type Pattern struct {
	VarIndex int
	Depth    int
	Vars     []int
}

// CompileRule builds the PreMatchingProblem a rule LHS/RHS pair reduces to
// against a concrete RHS term. It is
// deliberately minimal: callers hand it the AC problems and equational
// patterns directly rather than parsing a surface syntax, since parsing a
// rewrite-rule language is out of scope for the matching engine itself.
//
// numVars is the number of distinct unknowns in the rule. eqPatterns maps
// each occurrence of a Miller variable outside any AC problem to its
// Pattern and the RHS subterm it must solve against. acPatterns maps each
// AC equation to its identifier, jokers, the unknowns occurring in it (with
// their Patterns), and the flattened RHS multiset.
func CompileRule(
	numVars int,
	arities []int,
	eqPatterns []struct {
		Pattern Pattern
		RHS     term.Term
	},
	acPatterns []struct {
		Depth  int
		Ident  reducer.ACIdent
		Jokers int
		Vars   []Pattern
		Terms  []term.Term
	},
) (PreMatchingProblem, error) {
	if len(arities) != numVars {
		return PreMatchingProblem{}, fmt.Errorf("pimatch: CompileRule: %d arities for %d variables", len(arities), numVars)
	}

	eqProblems := make([][]EqEquation, numVars)
	for _, ep := range eqPatterns {
		i := ep.Pattern.VarIndex
		if i < 0 || i >= numVars {
			return PreMatchingProblem{}, fmt.Errorf("pimatch: CompileRule: variable index %d out of range", i)
		}
		mvar := millerVarFor(ep.Pattern, arities[i])
		eqProblems[i] = append(eqProblems[i], EqEquation{MVar: mvar, RHS: term.Strict(ep.RHS)})
	}

	acProblems := make([]PreACProblem, 0, len(acPatterns))
	for _, ap := range acPatterns {
		vars := make([]ACVarOcc, 0, len(ap.Vars))
		for _, pat := range ap.Vars {
			if pat.VarIndex < 0 || pat.VarIndex >= numVars {
				return PreMatchingProblem{}, fmt.Errorf("pimatch: CompileRule: variable index %d out of range", pat.VarIndex)
			}
			vars = append(vars, ACVarOcc{VarIndex: pat.VarIndex, MVar: millerVarFor(pat, arities[pat.VarIndex])})
		}
		acProblems = append(acProblems, PreACProblem{
			Depth:  ap.Depth,
			Ident:  ap.Ident,
			Jokers: ap.Jokers,
			Vars:   vars,
			Terms:  append([]term.Term(nil), ap.Terms...),
		})
	}

	return PreMatchingProblem{Arities: arities, EqProblems: eqProblems, ACProblems: acProblems}, nil
}

// millerVarFor builds the Miller descriptor a Pattern implies: the mapping
// from local de Bruijn positions to captured-argument positions is the
// inverse of Vars.
func millerVarFor(p Pattern, arity int) MillerVar {
	mapping := make([]int, p.Depth)
	for i := range mapping {
		mapping[i] = -1
	}
	for argPos, localPos := range p.Vars {
		mapping[localPos] = argPos
	}
	return MillerVar{Arity: arity, Depth: p.Depth, Mapping: mapping, Vars: p.Vars}
}
