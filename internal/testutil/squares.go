package testutil

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lgbarn/gamehub-go/internal/chess"
)

// Squares builds a square list from (file, rank) pairs in grid coordinates.
func Squares(coords ...[2]int) []chess.Square {
	out := make([]chess.Square, 0, len(coords))
	for _, c := range coords {
		out = append(out, chess.Sq(c[0], c[1]))
	}
	return out
}

// MustSquare parses an algebraic square such as "e4", failing the test on error.
func MustSquare(t testing.TB, s string) chess.Square {
	t.Helper()
	sq, err := chess.ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q) error = %v", s, err)
	}
	return sq
}

func squareLess(a, b chess.Square) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.File < b.File
}

// AssertSquareSet compares two square lists ignoring order. Nil and empty
// lists are equal.
func AssertSquareSet(t testing.TB, got, want []chess.Square, msgAndArgs ...interface{}) {
	t.Helper()
	diff := cmp.Diff(want, got, cmpopts.SortSlices(squareLess), cmpopts.EquateEmpty())
	if diff != "" {
		fail(t, msgAndArgs, "square set mismatch (-want +got):\n%s", diff)
	}
}

// AssertErrorIs fails unless errors.Is(err, target).
func AssertErrorIs(t testing.TB, err, target error, msgAndArgs ...interface{}) {
	t.Helper()
	if !errors.Is(err, target) {
		fail(t, msgAndArgs, "error = %v; want %v", err, target)
	}
}
