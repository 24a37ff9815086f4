package testutil

import (
	"fmt"
	"testing"

	"github.com/lgbarn/gamehub-go/internal/chess"
	chesserrors "github.com/lgbarn/gamehub-go/internal/errors"
)

func TestSquares(t *testing.T) {
	got := Squares([2]int{4, 6}, [2]int{4, 4})
	want := []chess.Square{chess.Sq(4, 6), chess.Sq(4, 4)}
	AssertEqual(t, got, want)
}

func TestSquaresEmpty(t *testing.T) {
	got := Squares()
	if got == nil || len(got) != 0 {
		t.Errorf("Squares() = %#v; want empty non-nil slice", got)
	}
}

func TestMustSquare(t *testing.T) {
	tests := []struct {
		in   string
		want chess.Square
	}{
		{"a8", chess.Sq(0, 0)},
		{"e2", chess.Sq(4, 6)},
		{"h1", chess.Sq(7, 7)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			AssertEqual(t, MustSquare(t, tt.in), tt.want)
		})
	}
}

func TestAssertSquareSet_IgnoresOrder(t *testing.T) {
	AssertSquareSet(t,
		Squares([2]int{1, 2}, [2]int{0, 0}, [2]int{7, 7}),
		Squares([2]int{7, 7}, [2]int{1, 2}, [2]int{0, 0}))
}

func TestAssertSquareSet_NilEqualsEmpty(t *testing.T) {
	AssertSquareSet(t, nil, []chess.Square{})
	AssertSquareSet(t, []chess.Square{}, nil, "empty against nil")
}

func TestAssertErrorIs_Success(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", chesserrors.ErrIllegalMove)
	AssertErrorIs(t, err, chesserrors.ErrIllegalMove)
	AssertErrorIs(t, chesserrors.ErrGameOver, chesserrors.ErrGameOver, "sentinel %s", "itself")
}
