// Package errs generalizes the api server's ErrorReason/Reason pattern into a
// typed error kind that carries its own HTTP status, so every room/index
// operation can return a plain Go error and the transport layer never needs
// a separate lookup table to pick a status code.
package errs

import "net/http"

// Kind is one of the error codes surfaced verbatim in the `error` field of a
// JSON response.
type Kind string

const (
	// phase errors
	NotInLobby      Kind = "not_in_lobby"
	NotBidding      Kind = "not_bidding"
	NotInColorPick  Kind = "not_in_color_pick"
	NotPlaying      Kind = "not_playing"
	NotFinished     Kind = "not_finished"
	InvalidPhase    Kind = "invalid_phase"

	// input validation
	PlayerIDRequired       Kind = "playerId_required"
	PlayerIDAndAmountReq   Kind = "playerId_and_amount_required"
	InvalidBidAmount       Kind = "invalid_bid_amount"
	InvalidColor           Kind = "invalid_color"
	InvalidMoveFormat      Kind = "invalid_move_format"

	// authorization
	NotAllowedToChoose  Kind = "not_allowed_to_choose"
	NotYourTurn         Kind = "not_your_turn"
	UnknownPlayer       Kind = "unknown_player"
	UnknownPlayerColor  Kind = "unknown_player_color"

	// resource state
	AlreadyInitialized Kind = "already_initialized"
	AlreadyBid         Kind = "already_bid"
	AlreadyVoted       Kind = "already_voted"
	AlreadyRequested   Kind = "already_requested"
	RoomFull           Kind = "room_full"
	RoomClosed         Kind = "room_closed"
	RoomExpired        Kind = "room_expired"
	RoomTooOld         Kind = "room_too_old"

	// deadlines
	BiddingClosed        Kind = "bidding_closed"
	ChoiceDeadlinePassed Kind = "choice_deadline_passed"
	StartRequestExpired  Kind = "start_request_expired"
	RematchWindowClosed  Kind = "rematch_window_closed"

	// rules
	IllegalMove     Kind = "illegal_move"
	ClockNotExpired Kind = "clock_not_expired"

	// need more players to start bidding
	NeedMorePlayers Kind = "need_more_players"

	// transport/routing
	NotFound          Kind = "not_found"
	JSONSyntaxError   Kind = "json_syntax_error"
	InternalError     Kind = "internal_error"
)

// statuses maps each Kind to the HTTP status it should render as. Kinds not
// listed here default to 400.
var statuses = map[Kind]int{
	RoomTooOld:    http.StatusGone,
	RoomExpired:   http.StatusGone,
	RoomClosed:    http.StatusGone,
	NotFound:      http.StatusNotFound,
	InternalError: http.StatusInternalServerError,
}

// Error is the concrete error type every room/index operation returns on
// failure. It is never panicked; callers check `errors.As` or compare Kind
// directly.
type Error struct {
	Kind Kind
}

func (e *Error) Error() string {
	return string(e.Kind)
}

// Status returns the HTTP status code this error should be rendered with.
func (e *Error) Status() int {
	if status, ok := statuses[e.Kind]; ok {
		return status
	}
	return http.StatusBadRequest
}

// New builds an *Error for the given kind.
func New(kind Kind) *Error {
	return &Error{Kind: kind}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
