// Package chessengine wraps github.com/corentings/chess behind the narrow
// interface the room package needs: construct from FEN or default, attempt
// a move, read the current FEN, list pieces, and ask terminal-state
// predicates. The room state machine never imports the chess library
// directly, matching the api server's own practice of keeping all
// chess-rules knowledge inside one package (server/game) and the rest of
// the server touching only its exported surface.
package chessengine

import (
	"fmt"

	"github.com/corentings/chess"
)

// Color mirrors the two playable sides, kept as a small string-backed type
// so the room package doesn't need to import the chess library's Color
// type just to compare sides.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

// PieceType identifies a piece kind, ignoring color.
type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Piece is one occupied square's contents.
type Piece struct {
	Type  PieceType
	Color Color
}

// Outcome summarizes why a game ended.
type Outcome string

const (
	OutcomeNone                 Outcome = ""
	OutcomeCheckmate            Outcome = "checkmate"
	OutcomeStalemate            Outcome = "stalemate"
	OutcomeInsufficientMaterial Outcome = "insufficient_material"
	OutcomeThreefoldRepetition  Outcome = "threefold_repetition"
	OutcomeFiftyMoveRule        Outcome = "fifty_move_rule"
	OutcomeDraw                 Outcome = "draw"
)

// Engine is a single game's mutable chess position plus its move history,
// backed by *chess.Game.
type Engine struct {
	game *chess.Game
}

// New starts a fresh game from the standard starting position.
func New() *Engine {
	return &Engine{game: chess.NewGame()}
}

// NewFromFEN reconstructs a game from a previously-saved FEN snapshot.
func NewFromFEN(fen string) (*Engine, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("chessengine: parse fen: %w", err)
	}
	return &Engine{game: chess.NewGame(opt)}, nil
}

// FEN returns the current position snapshot.
func (e *Engine) FEN() string {
	return e.game.FEN()
}

// Turn reports the color to move.
func (e *Engine) Turn() Color {
	if e.game.Position().Turn() == chess.White {
		return White
	}
	return Black
}

// AttemptMove tries to play a move given in UCI notation (e.g. "e2e4" or
// "e7e8q"). It returns ok=false without mutating the position if the move
// is illegal.
func (e *Engine) AttemptMove(uci string) (ok bool) {
	move, err := chess.UCINotation{}.Decode(e.game.Position(), uci)
	if err != nil {
		return false
	}
	if err := e.game.Move(move); err != nil {
		return false
	}
	return true
}

// Pieces lists every occupied square's piece, ignoring position.
func (e *Engine) Pieces() []Piece {
	board := e.game.Position().Board()
	squareMap := board.SquareMap()
	pieces := make([]Piece, 0, len(squareMap))
	for _, p := range squareMap {
		pieces = append(pieces, convertPiece(p))
	}
	return pieces
}

func convertPiece(p chess.Piece) Piece {
	var color Color
	if p.Color() == chess.White {
		color = White
	} else {
		color = Black
	}
	var typ PieceType
	switch p.Type() {
	case chess.King:
		typ = King
	case chess.Queen:
		typ = Queen
	case chess.Rook:
		typ = Rook
	case chess.Bishop:
		typ = Bishop
	case chess.Knight:
		typ = Knight
	case chess.Pawn:
		typ = Pawn
	}
	return Piece{Type: typ, Color: color}
}

// Outcome reports whether the game has ended and, if so, how.
func (e *Engine) Outcome() (done bool, outcome Outcome, winner Color) {
	o := e.game.Outcome()
	if o == chess.NoOutcome {
		return false, OutcomeNone, ""
	}
	method := e.game.Method()
	switch method {
	case chess.Checkmate:
		outcome = OutcomeCheckmate
	case chess.Stalemate:
		outcome = OutcomeStalemate
	case chess.InsufficientMaterial:
		outcome = OutcomeInsufficientMaterial
	case chess.ThreefoldRepetition:
		outcome = OutcomeThreefoldRepetition
	case chess.FiftyMoveRule:
		outcome = OutcomeFiftyMoveRule
	default:
		outcome = OutcomeDraw
	}
	switch o {
	case chess.WhiteWon:
		winner = White
	case chess.BlackWon:
		winner = Black
	default:
		winner = ""
	}
	return true, outcome, winner
}
