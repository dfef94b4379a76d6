package chessengine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanStillMateLoneKingCannot(t *testing.T) {
	pieces := []Piece{{Type: King, Color: White}, {Type: King, Color: Black}}
	require.False(t, CanStillMate(pieces, White))
}

func TestCanStillMateSingleMinorCannot(t *testing.T) {
	pieces := []Piece{{Type: King, Color: White}, {Type: Bishop, Color: White}, {Type: King, Color: Black}}
	require.False(t, CanStillMate(pieces, White))
}

func TestCanStillMateTwoMinorsCan(t *testing.T) {
	pieces := []Piece{
		{Type: King, Color: White},
		{Type: Bishop, Color: White},
		{Type: Knight, Color: White},
		{Type: King, Color: Black},
	}
	require.True(t, CanStillMate(pieces, White))
}

func TestCanStillMateWithPawnCan(t *testing.T) {
	pieces := []Piece{{Type: King, Color: White}, {Type: Pawn, Color: White}, {Type: King, Color: Black}}
	require.True(t, CanStillMate(pieces, White))
}

func TestCanStillMateWithRookOrQueenCan(t *testing.T) {
	require.True(t, CanStillMate([]Piece{{Type: Rook, Color: Black}}, Black))
	require.True(t, CanStillMate([]Piece{{Type: Queen, Color: Black}}, Black))
}

func TestCanStillMateIgnoresOtherSidesMaterial(t *testing.T) {
	pieces := []Piece{{Type: Queen, Color: Black}, {Type: King, Color: White}}
	require.False(t, CanStillMate(pieces, White))
}
