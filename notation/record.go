package notation

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/nelhage/isolation/isolation"
)

type Tag struct {
	Name  string
	Value string
}

const (
	ResultPlayer1 = "1-0"
	ResultPlayer2 = "0-1"
)

// Record is a game transcript: tags followed by numbered moves and
// an optional result.
//
//	[Size "11x9"]
//	[Player1 "minimax"]
//
//	1. f5 c2
//	2. g7 d4
//	1-0
type Record struct {
	Tags   []Tag
	Moves  []isolation.Action
	Result string
}

func (r *Record) FindTag(name string) string {
	for _, t := range r.Tags {
		if t.Name == name {
			return t.Value
		}
	}
	return ""
}

func (r *Record) SetTag(name, value string) {
	for i := range r.Tags {
		if r.Tags[i].Name == name {
			r.Tags[i].Value = value
			return
		}
	}
	r.Tags = append(r.Tags, Tag{name, value})
}

func FormatSize(cfg isolation.Config) string {
	return fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)
}

func ParseSize(s string) (isolation.Config, error) {
	bits := strings.Split(s, "x")
	if len(bits) != 2 {
		return isolation.Config{}, fmt.Errorf("bad size: %q", s)
	}
	w, e1 := strconv.Atoi(bits[0])
	h, e2 := strconv.Atoi(bits[1])
	if e1 != nil || e2 != nil {
		return isolation.Config{}, fmt.Errorf("bad size: %q", s)
	}
	cfg := isolation.Config{Width: w, Height: h}
	return cfg, cfg.Validate()
}

// FormatResult records the winner of a finished game.
func FormatResult(winner isolation.Player) string {
	switch winner {
	case isolation.Player1:
		return ResultPlayer1
	case isolation.Player2:
		return ResultPlayer2
	}
	return ""
}

func ParseResult(s string) isolation.Player {
	switch s {
	case ResultPlayer1:
		return isolation.Player1
	case ResultPlayer2:
		return isolation.Player2
	}
	return isolation.NoPlayer
}

// InitialPosition is the position before the first recorded move,
// from the Start tag if present and the Size tag otherwise.
func (r *Record) InitialPosition() (*isolation.Position, error) {
	var cfg isolation.Config
	if size := r.FindTag("Size"); size != "" {
		var err error
		if cfg, err = ParseSize(size); err != nil {
			return nil, err
		}
	}
	start := r.FindTag("Start")
	if start == "" {
		return isolation.New(cfg), nil
	}
	p, err := ParsePosition(start)
	if err != nil {
		return nil, fmt.Errorf("bad Start: %w", err)
	}
	if r.FindTag("Size") != "" && (p.Width() != cfg.Width || p.Height() != cfg.Height) {
		return nil, fmt.Errorf("size mismatch: tag %s != Start %s",
			FormatSize(cfg), FormatSize(p.Config()))
	}
	return p, nil
}

// PositionAt replays the first n moves. n < 0 replays all of them.
func (r *Record) PositionAt(n int) (*isolation.Position, error) {
	p, err := r.InitialPosition()
	if err != nil {
		return nil, err
	}
	if n < 0 || n > len(r.Moves) {
		n = len(r.Moves)
	}
	for i, m := range r.Moves[:n] {
		if p, err = p.Move(m); err != nil {
			return nil, fmt.Errorf("move %d (%s): %w", i+1, FormatMove(m), err)
		}
	}
	return p, nil
}

func ParseFile(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseRecord(f)
}

func ParseRecord(in io.Reader) (*Record, error) {
	buf := bufio.NewReader(in)
	var r Record
	if err := readTags(buf, &r); err != nil && err != io.EOF {
		return nil, err
	}
	if err := readMoves(buf, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func readTags(r *bufio.Reader, rec *Record) error {
	for {
		if e := skipWS(r); e != nil {
			return e
		}
		c, e := r.ReadByte()
		if e != nil {
			return e
		}
		if c != '[' {
			return r.UnreadByte()
		}
		line, e := r.ReadString(']')
		if e != nil {
			return e
		}
		line = line[:len(line)-1]
		bits := strings.SplitN(line, " ", 2)
		if len(bits) != 2 {
			return errors.New("bad tag")
		}
		rec.Tags = append(rec.Tags, Tag{
			Name:  bits[0],
			Value: strings.Trim(bits[1], "\""),
		})
	}
}

func readMoves(r *bufio.Reader, rec *Record) error {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	for s.Scan() {
		tok := s.Text()
		switch {
		case rec.Result != "":
			return fmt.Errorf("moves after result: %q", tok)
		case tok == "...":
		case tok == ResultPlayer1 || tok == ResultPlayer2:
			rec.Result = tok
		case strings.HasSuffix(tok, "."):
			if _, e := strconv.Atoi(tok[:len(tok)-1]); e != nil {
				return fmt.Errorf("bad move number: %q", tok)
			}
		default:
			m, e := ParseMove(tok)
			if e != nil {
				return e
			}
			rec.Moves = append(rec.Moves, m)
		}
	}
	return s.Err()
}

func skipWS(r *bufio.Reader) error {
	for {
		c, e := r.ReadByte()
		if e != nil {
			return e
		}
		if !unicode.IsSpace(rune(c)) {
			return r.UnreadByte()
		}
	}
}

// Render writes the record back out. Move numbers count pairs of
// moves from the start of the game, so a record whose Start position
// has player 2 to move opens with "N. ...".
func (r *Record) Render() string {
	ply := 0
	if p, err := r.InitialPosition(); err == nil {
		ply = p.Ply()
	}
	var out bytes.Buffer
	for _, tag := range r.Tags {
		fmt.Fprintf(&out, "[%s \"%s\"]\n",
			tag.Name, strings.Replace(tag.Value, "\"", "", -1),
		)
	}
	for i, m := range r.Moves {
		switch {
		case ply%2 == 0:
			fmt.Fprintf(&out, "\n%d.", ply/2+1)
		case i == 0:
			fmt.Fprintf(&out, "\n%d. ...", ply/2+1)
		}
		fmt.Fprintf(&out, " %s", FormatMove(m))
		ply++
	}
	out.WriteString("\n")
	if r.Result != "" {
		fmt.Fprintf(&out, "%s\n", r.Result)
	}
	return out.String()
}
