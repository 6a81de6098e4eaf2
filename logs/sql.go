package logs

const createGameTable = `
CREATE TABLE IF NOT EXISTS games (
  id integer primary key,
  time datetime,
  size varchar not null,
  player1 varchar,
  player2 varchar,
  winner varchar,
  result varchar,
  forfeit boolean not null default 0,
  moves int,
  record text
)`

const createPlayerView = `
CREATE VIEW IF NOT EXISTS player_games (
  id, player, opponent, seat, win, forfeit, size, moves
) AS
SELECT id, player1, player2, 'player1',
       CASE winner WHEN 'player1' THEN 'win' WHEN 'player2' THEN 'lose' ELSE 'none' END,
       forfeit, size, moves
 FROM games
UNION ALL
SELECT id, player2, player1, 'player2',
       CASE winner WHEN 'player2' THEN 'win' WHEN 'player1' THEN 'lose' ELSE 'none' END,
       forfeit, size, moves
 FROM games
`

const insertGame = `
INSERT INTO games (time, size, player1, player2, winner, result, forfeit, moves, record)
VALUES (:time, :size, :player1, :player2, :winner, :result, :forfeit, :moves, :record)
`

const selectGames = `
SELECT * FROM games ORDER BY id
`

const selectPlayerGames = `
SELECT * FROM games WHERE player1 = ? OR player2 = ? ORDER BY id
`

const selectPlayerStats = `
SELECT player,
       COUNT(*) AS games,
       SUM(CASE win WHEN 'win' THEN 1 ELSE 0 END) AS wins,
       SUM(CASE WHEN win = 'lose' AND forfeit THEN 1 ELSE 0 END) AS forfeits,
       AVG(moves) AS moves
FROM player_games
GROUP BY player
ORDER BY wins DESC, player
`
