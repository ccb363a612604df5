package room

import "errors"

var (
	ErrValidation      = errors.New("invalid request")
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomExists      = errors.New("room already exists")
	ErrRoomFull        = errors.New("room is full")
	ErrDuplicateTeam   = errors.New("team name already taken")
	ErrAuctionEnded    = errors.New("auction has ended")
	ErrBidConflict     = errors.New("bid changed since it was observed")
	ErrNotHost         = errors.New("device is not the room host")
	ErrJumpBidDisabled = errors.New("jump bids are disabled in this room")
	ErrWrongMode       = errors.New("operation not allowed in current auction mode")
)
