package pimatch

import (
	"errors"

	"github.com/lambdapi-match/pimatch/pkg/term"
)

// ErrNotUnifiable signals that a Miller solve could not map some free de
// Bruijn index. It is caught internally and triggers one
// SNF retry; a second failure becomes a branch failure. It is the same
// sentinel pkg/term's Unshift uses, so a failure from either layer is
// recognized uniformly by errors.Is at every catch point in this package.
var ErrNotUnifiable = term.ErrNotUnifiable

// ErrNotSolvable signals that an equational cross-check failed, or an AC
// subtraction failed. Inside the search driver it is an ordinary branch
// failure; during seeding it aborts matching, and SolveProblem turns it
// into a plain failed match.
var ErrNotSolvable = errors.New("pimatch: not solvable")
