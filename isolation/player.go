package isolation

import "fmt"

type Player int8

const (
	NoPlayer Player = -1
	Player1  Player = 0
	Player2  Player = 1
)

func (p Player) Flip() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return NoPlayer
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	case NoPlayer:
		return "none"
	}
	return fmt.Sprintf("Player(%d)", int8(p))
}

// Cell is a board coordinate. (0,0) is the bottom-left corner.
type Cell struct {
	X, Y int
}

// NoCell is the location of a player that has not yet been placed.
var NoCell = Cell{-1, -1}
