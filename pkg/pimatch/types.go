package pimatch

import (
	"github.com/lambdapi-match/pimatch/pkg/reducer"
	"github.com/lambdapi-match/pimatch/pkg/term"
)

// MillerVar describes a higher-order unknown applied to a tuple of distinct
// bound variables.
type MillerVar struct {
	// Arity is the number of arguments the unknown expects.
	Arity int
	// Depth is the number of enclosing binders between the unknown's
	// occurrence and the rule's root.
	Depth int
	// Mapping injects local de Bruijn positions (0..Depth) into the
	// unknown's captured argument positions; -1 marks "not captured".
	Mapping []int
	// Vars lists the de Bruijn indices of the bound variables actually
	// applied to the unknown in the pattern.
	Vars []int
}

// Status is the tagged union a matching variable's state can be in:
// Unsolved, Solved(t), or Partly(ac_ident, terms).
// Kept as a narrow closed interface since a plain const-enum cannot carry
// per-variant payloads.
type Status interface {
	isStatus()
}

type statusUnsolved struct{}

func (statusUnsolved) isStatus() {}

// Unsolved is the initial state: no information yet about the variable.
func Unsolved() Status { return statusUnsolved{} }

// IsUnsolved reports whether s is the Unsolved state.
func IsUnsolved(s Status) bool {
	_, ok := s.(statusUnsolved)
	return ok
}

type statusSolved struct {
	term term.Term
}

func (statusSolved) isStatus() {}

// Solved fixes the variable to t.
func Solved(t term.Term) Status { return statusSolved{term: t} }

// AsSolved returns the solved term and true if s is Solved.
func AsSolved(s Status) (term.Term, bool) {
	ss, ok := s.(statusSolved)
	if !ok {
		return nil, false
	}
	return ss.term, true
}

type statusPartly struct {
	ident reducer.ACIdent
	terms []term.Term
}

func (statusPartly) isStatus() {}

// Partly marks the variable as known to equal an AC-combination of ident
// whose components so far are terms, with more possibly still to append.
func Partly(ident reducer.ACIdent, terms []term.Term) Status {
	return statusPartly{ident: ident, terms: terms}
}

// AsPartly returns the AC identifier and accumulated terms if s is Partly.
func AsPartly(s Status) (reducer.ACIdent, []term.Term, bool) {
	sp, ok := s.(statusPartly)
	if !ok {
		return reducer.ACIdent{}, nil, false
	}
	return sp.ident, sp.terms, true
}

// ACVarOcc pairs an unknown's global variable index with its Miller
// descriptor as it occurs on the LHS of one AC equation.
type ACVarOcc struct {
	VarIndex int
	MVar     MillerVar
}

// ACProblem is one AC equation
// f^depth{X1 y1, ..., Xk yk, J_jokers} ≡ f{t1, ..., tn}.
type ACProblem struct {
	Depth  int
	Ident  reducer.ACIdent
	Jokers int
	Vars   []ACVarOcc
	Terms  []term.Lazy
}

// EqEquation is one equation in a variable's equational slot: the Miller
// descriptor at this occurrence, and the RHS term it must solve against.
type EqEquation struct {
	MVar MillerVar
	RHS  term.Lazy
}

// MatchingProblem is the mutable-during-search record. Every transition
// (set_unsolved, set_partly, add_partly, close_partly) returns a *new*
// MatchingProblem; none of Arities, EqProblems, or the *contents* of a
// retained ACProblem/Status are ever mutated in place once shared with a
// search branch — a persistent, copy-on-write discipline, never mutate in
// place across branches.
type MatchingProblem struct {
	EqProblems [][]EqEquation
	ACProblems []ACProblem
	Status     []Status
	Arities    []int
}

// clone returns a shallow copy of pb suitable as the base for a transition
// that will replace Status and/or ACProblems. Arities is never copied
// further and EqProblems is immutable once seeding finishes, so both are
// shared by reference.
func (pb *MatchingProblem) clone() *MatchingProblem {
	newStatus := make([]Status, len(pb.Status))
	copy(newStatus, pb.Status)
	return &MatchingProblem{
		EqProblems: pb.EqProblems,
		ACProblems: pb.ACProblems,
		Status:     newStatus,
		Arities:    pb.Arities,
	}
}

// withACProblems returns a copy of pb with ACProblems replaced.
func (pb *MatchingProblem) withACProblems(probs []ACProblem) *MatchingProblem {
	next := pb.clone()
	next.ACProblems = probs
	return next
}

// PreACProblem is the AC-equation shape as handed in by the rule compiler,
// before RHS terms have been converted to term.Lazy.
type PreACProblem struct {
	Depth  int
	Ident  reducer.ACIdent
	Jokers int
	Vars   []ACVarOcc
	Terms  []term.Term
}

// PreMatchingProblem is the engine's sole input. EqProblems holds one slot
// per variable; an empty
// slot means the variable has no equation and remains Unsolved until the AC
// phase. Slots and AC problems are already built by a rule compiler — out
// of scope for this package; pkg/pimatch/compile.go provides a
// minimal one so tests have something to drive SolveProblem with.
type PreMatchingProblem struct {
	Arities    []int
	EqProblems [][]EqEquation
	ACProblems []PreACProblem
}
