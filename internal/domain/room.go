package domain

type RoomName string

// Options are fixed when a room name is handed out. Capacity and password
// are dropped once the room empties; tags stick to the name until it is
// configured again.
type Options struct {
	MaxUsers int
	Password string
	Tags     []string
}
