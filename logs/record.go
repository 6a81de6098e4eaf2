package logs

import (
	"errors"

	"github.com/nelhage/isolation/isolation"
	"github.com/nelhage/isolation/notation"
)

// FromRecord builds the log entry for a finished game record. The
// caller sets Timestamp.
func FromRecord(rec *notation.Record) (*Game, error) {
	p, err := rec.InitialPosition()
	if err != nil {
		return nil, err
	}
	winner := notation.ParseResult(rec.Result)
	if winner == isolation.NoPlayer {
		return nil, errors.New("record has no result")
	}
	return &Game{
		Size:    notation.FormatSize(p.Config()),
		Player1: rec.FindTag("Player1"),
		Player2: rec.FindTag("Player2"),
		Winner:  winner.String(),
		Result:  rec.Result,
		Forfeit: rec.FindTag("Termination") == "forfeit",
		Moves:   len(rec.Moves),
		Record:  rec.Render(),
	}, nil
}
