// Package room implements the RoomActor: the per-room phase machine that
// runs the bid-for-color auction, the color pick, the chess clock with
// flag-fall handling, and the rematch lifecycle. Every exported method on
// *Actor posts a command onto a single mailbox goroutine so that all
// mutation of one room is strictly serialized, the same single-writer
// guarantee the api server got for free from its match's sync.Mutex, made
// explicit here as a channel handoff instead of a lock.
package room

import (
	"time"

	"github.com/bena618/Armageddon-Chess-Backend/chessengine"
)

// Phase is the room's current lifecycle stage.
type Phase string

const (
	Lobby     Phase = "LOBBY"
	Bidding   Phase = "BIDDING"
	ColorPick Phase = "COLOR_PICK"
	Playing   Phase = "PLAYING"
	Finished  Phase = "FINISHED"
)

// Color is a chosen side. Re-exported from chessengine so callers outside
// this package don't need to import it just to compare colors.
type Color = chessengine.Color

const (
	White = chessengine.White
	Black = chessengine.Black
)

// Player is one seated participant.
type Player struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Bid is one player's sealed bid: the amount of their own clock, in
// milliseconds, they are willing to give up for the right to choose color.
type Bid struct {
	AmountMs    int64     `json:"amountMs"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Clocks is the live chess-clock state while PLAYING.
type Clocks struct {
	WhiteRemainingMs int64      `json:"whiteRemainingMs"`
	BlackRemainingMs int64      `json:"blackRemainingMs"`
	LastTickAt       time.Time  `json:"lastTickAt"`
	Turn             Color      `json:"turn"`
	FrozenAt         *time.Time `json:"frozenAt,omitempty"`
}

// Move is one played half-move.
type Move struct {
	By   string    `json:"by"`
	Move string    `json:"move"`
	At   time.Time `json:"at"`
}

// Config seeds a new room at init time.
type Config struct {
	RoomID           string
	MaxPlayers       int
	BidDurationMs    int64
	ChoiceDurationMs int64
	MainTimeMs       int64
	Private          bool
	// DisconnectTimeoutMs defaults to 45000 when zero.
	DisconnectTimeoutMs int64
	// SeedPlayers lets the Router pre-seat players when the room
	// is created directly from a matchmaking match, instead of requiring
	// two separate join calls.
	SeedPlayers []Player
}

// State is the full externally-visible snapshot of a Room, returned by
// GetState and broadcast to subscribers. Rather than a discriminated union,
// it is one flat record with nullable fields gated by Phase, annotated
// below with which phase populates them.
type State struct {
	RoomID  string `json:"roomId"`
	Phase   Phase  `json:"phase"`
	Private bool   `json:"private"`

	Players []Player `json:"players"`

	MainTimeMs       int64 `json:"mainTimeMs"`
	BidDurationMs    int64 `json:"bidDurationMs"`
	ChoiceDurationMs int64 `json:"choiceDurationMs"`

	// BIDDING
	Bids        map[string]Bid `json:"bids,omitempty"`
	BidDeadline *time.Time     `json:"bidDeadline,omitempty"`

	// pending two-step start, LOBBY only
	StartRequestedBy     string     `json:"startRequestedBy,omitempty"`
	StartConfirmDeadline *time.Time `json:"startConfirmDeadline,omitempty"`

	// set once bidding resolves
	WinnerID     string `json:"winnerId,omitempty"`
	LoserID      string `json:"loserId,omitempty"`
	WinningBidMs int64  `json:"winningBidMs,omitempty"`
	LosingBidMs  int64  `json:"losingBidMs,omitempty"`

	// COLOR_PICK
	CurrentPicker  string     `json:"currentPicker,omitempty"`
	ChoiceAttempts int        `json:"choiceAttempts"`
	ChoiceDeadline *time.Time `json:"choiceDeadline,omitempty"`

	Colors       map[string]Color `json:"colors,omitempty"`
	DrawOddsSide string           `json:"drawOddsSide,omitempty"`

	// PLAYING
	Clocks   *Clocks `json:"clocks,omitempty"`
	Moves    []Move  `json:"moves,omitempty"`
	GameFEN  string  `json:"gameFen,omitempty"`

	// FINISHED
	Result string `json:"result,omitempty"`
	Reason string `json:"reason,omitempty"`

	RematchWindowEnds *time.Time      `json:"rematchWindowEnds,omitempty"`
	RematchVotes      map[string]bool `json:"rematchVotes,omitempty"`

	DisconnectedPlayerID string     `json:"disconnectedPlayerId,omitempty"`
	DisconnectStart      *time.Time `json:"disconnectStart,omitempty"`
	DisconnectTimeoutMs  int64      `json:"disconnectTimeoutMs"`

	Closed      bool       `json:"closed"`
	CloseReason string     `json:"closeReason,omitempty"`
	ClosedAt    *time.Time `json:"closedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// room is the actor's private mutable state. snapshot() copies it into the
// exported, JSON-friendly State type.
type room struct {
	roomID  string
	phase   Phase
	private bool

	maxPlayers int
	players    []Player

	mainTimeMs       int64
	bidDurationMs    int64
	choiceDurationMs int64

	bids        map[string]Bid
	bidDeadline *time.Time

	startRequestedBy     string
	startConfirmDeadline *time.Time

	winnerID     string
	loserID      string
	winningBidMs int64
	losingBidMs  int64

	currentPicker  string // "winner" or "loser"
	choiceAttempts int
	choiceDeadline *time.Time

	colors       map[string]Color
	drawOddsSide string

	clocks  *Clocks
	moves   []Move
	gameFEN string

	result string
	reason string

	rematchWindowEnds *time.Time
	rematchVotes      map[string]bool

	disconnectedPlayerID string
	disconnectStart      *time.Time
	disconnectTimeoutMs  int64

	closed      bool
	closeReason string
	closedAt    *time.Time

	createdAt time.Time
	updatedAt time.Time

	engine *chessengine.Engine
}

func (r *room) snapshot() State {
	s := State{
		RoomID:               r.roomID,
		Phase:                r.phase,
		Private:              r.private,
		Players:              append([]Player{}, r.players...),
		MainTimeMs:           r.mainTimeMs,
		BidDurationMs:        r.bidDurationMs,
		ChoiceDurationMs:     r.choiceDurationMs,
		BidDeadline:          r.bidDeadline,
		StartRequestedBy:     r.startRequestedBy,
		StartConfirmDeadline: r.startConfirmDeadline,
		WinnerID:             r.winnerID,
		LoserID:              r.loserID,
		WinningBidMs:         r.winningBidMs,
		LosingBidMs:          r.losingBidMs,
		CurrentPicker:        r.currentPicker,
		ChoiceAttempts:       r.choiceAttempts,
		ChoiceDeadline:       r.choiceDeadline,
		DrawOddsSide:         r.drawOddsSide,
		Moves:                append([]Move{}, r.moves...),
		GameFEN:              r.gameFEN,
		Result:               r.result,
		Reason:               r.reason,
		RematchWindowEnds:    r.rematchWindowEnds,
		DisconnectedPlayerID: r.disconnectedPlayerID,
		DisconnectStart:      r.disconnectStart,
		DisconnectTimeoutMs:  r.disconnectTimeoutMs,
		Closed:               r.closed,
		CloseReason:          r.closeReason,
		ClosedAt:             r.closedAt,
		CreatedAt:            r.createdAt,
		UpdatedAt:            r.updatedAt,
	}
	if len(r.bids) > 0 {
		s.Bids = map[string]Bid{}
		for k, v := range r.bids {
			s.Bids[k] = v
		}
	}
	if len(r.colors) > 0 {
		s.Colors = map[string]Color{}
		for k, v := range r.colors {
			s.Colors[k] = v
		}
	}
	if len(r.rematchVotes) > 0 {
		s.RematchVotes = map[string]bool{}
		for k, v := range r.rematchVotes {
			s.RematchVotes[k] = v
		}
	}
	if r.clocks != nil {
		clocksCopy := *r.clocks
		s.Clocks = &clocksCopy
	}
	return s
}
