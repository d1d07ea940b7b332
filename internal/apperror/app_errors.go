package apperror

import "errors"

var (
	ErrRoomNotFound           = errors.New("room not found")
	ErrRoomFull               = errors.New("room is full")
	ErrRoomNotJoinable        = errors.New("room is not accepting new players")
	ErrNotInRoom              = errors.New("you are not in a room")
	ErrNotHost                = errors.New("only the host can start a round")
	ErrInsufficientPlayers    = errors.New("need at least 2 players to start a round")
	ErrRoundAlreadyInProgress = errors.New("round is already in progress")
	ErrNoActiveRound          = errors.New("no active round")
	ErrDrawerCannotGuess      = errors.New("the drawer cannot guess")
	ErrOnlyDrawerCanDraw      = errors.New("only the current drawer can draw")
	ErrDrawerNotFound         = errors.New("drawer is no longer in the room")
	ErrMalformedPayload       = errors.New("malformed payload")
)
