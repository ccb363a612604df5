package models

// DeviceSession is the identity a device carries across reconnects: which
// room and team it represents. Persisted through the session storage rather
// than held as ambient global state.
type DeviceSession struct {
	DeviceID string `json:"deviceId"`
	RoomID   string `json:"roomId,omitempty"`
	TeamName string `json:"teamName,omitempty"`
}

// Joined reports whether the device currently represents a team in a room.
func (s DeviceSession) Joined() bool {
	return s.RoomID != "" && s.TeamName != ""
}
