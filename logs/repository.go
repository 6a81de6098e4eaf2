package logs

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // repository assumes sqlite
)

type Repository struct {
	db *sqlx.DB
}

// Game is one finished game. Winner is "player1" or "player2";
// Result and Record are in the notation package's formats.
type Game struct {
	ID        int64     `db:"id"`
	Timestamp time.Time `db:"time"`
	Size      string    `db:"size"`
	Player1   string    `db:"player1"`
	Player2   string    `db:"player2"`
	Winner    string    `db:"winner"`
	Result    string    `db:"result"`
	Forfeit   bool      `db:"forfeit"`
	Moves     int       `db:"moves"`
	Record    string    `db:"record"`
}

type PlayerStats struct {
	Player   string  `db:"player"`
	Games    int     `db:"games"`
	Wins     int     `db:"wins"`
	Forfeits int     `db:"forfeits"`
	Moves    float64 `db:"moves"`
}

func Open(db string) (*Repository, error) {
	sql, err := sqlx.Open("sqlite3", db)
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers anyway, and ":memory:" databases
	// exist per connection.
	sql.SetMaxOpenConns(1)
	if _, err = sql.Exec(createGameTable); err != nil {
		sql.Close()
		return nil, fmt.Errorf("create game table: %w", err)
	}
	if _, err = sql.Exec(createPlayerView); err != nil {
		sql.Close()
		return nil, fmt.Errorf("create player_games view: %w", err)
	}
	return &Repository{db: sql}, nil
}

// InsertGame stores g and sets g.ID.
func (r *Repository) InsertGame(g *Game) error {
	return insert(r.db, g)
}

func insert(ex sqlx.Ext, g *Game) error {
	res, err := sqlx.NamedExec(ex, insertGame, g)
	if err != nil {
		return err
	}
	g.ID, err = res.LastInsertId()
	return err
}

func (r *Repository) InsertGames(gs []*Game) error {
	txn, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer txn.Rollback()
	for _, g := range gs {
		if e := insert(txn, g); e != nil {
			return e
		}
	}
	return txn.Commit()
}

// Games lists stored games in insertion order, limited to those
// player took part in unless player is empty.
func (r *Repository) Games(player string) ([]Game, error) {
	var out []Game
	var err error
	if player == "" {
		err = r.db.Select(&out, selectGames)
	} else {
		err = r.db.Select(&out, selectPlayerGames, player, player)
	}
	return out, err
}

// PlayerStats aggregates results per player name, best record
// first.
func (r *Repository) PlayerStats() ([]PlayerStats, error) {
	var out []PlayerStats
	err := r.db.Select(&out, selectPlayerStats)
	return out, err
}

func (r *Repository) Close() error {
	return r.db.Close()
}
