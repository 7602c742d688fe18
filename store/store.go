// Package store persists players and match results. It is the engine's only
// persistence collaborator: the engine itself never touches the database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/joho/godotenv/autoload"
	_ "github.com/mattn/go-sqlite3"

	"github.com/marianogappa/truco/rewards"
)

// DefaultRating is assigned to players seen for the first time.
const DefaultRating = 1000

// Service wraps the database handle. Set DATABASE_URL for postgres (pgx);
// otherwise a local sqlite file is used (TRUCO_DB, default ./truco.db).
type Service struct {
	db *sql.DB
	m  *sync.Mutex
}

func New() Service {
	var (
		db  *sql.DB
		err error
	)
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err = sql.Open("pgx", dsn)
	} else {
		path := os.Getenv("TRUCO_DB")
		if path == "" {
			path = "./truco.db"
		}
		db, err = sql.Open("sqlite3", path)
	}
	if err != nil {
		panic(err)
	}

	stmts := []string{
		`create table if not exists players (
			id text not null primary key,
			name text,
			rating integer,
			coins integer,
			wins integer,
			losses integer,
			abandons integer
		);`,
		`create table if not exists matches (
			id text not null primary key,
			created_at text,
			team0_players text,
			team1_players text,
			team0_score integer,
			team1_score integer,
			winner_team integer,
			abandoned integer
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}

	return Service{db: db, m: &sync.Mutex{}}
}

func (s *Service) Close() error {
	return s.db.Close()
}

// EnsurePlayer fetches a player row, creating it with defaults if absent.
func (s *Service) EnsurePlayer(id, name string) (PlayerRow, error) {
	s.m.Lock()
	defer s.m.Unlock()

	row, err := s.getPlayer(id)
	if err == nil {
		return row, nil
	}
	if err != sql.ErrNoRows {
		return PlayerRow{}, err
	}

	row = PlayerRow{ID: id, Name: name, Rating: DefaultRating}
	_, err = s.db.Exec(
		"INSERT INTO players (id, name, rating, coins, wins, losses, abandons) VALUES ($1, $2, $3, 0, 0, 0, 0)",
		row.ID, row.Name, row.Rating)
	if err != nil {
		return PlayerRow{}, err
	}
	return row, nil
}

// GetPlayer fetches a player row by id.
func (s *Service) GetPlayer(id string) (PlayerRow, error) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.getPlayer(id)
}

func (s *Service) getPlayer(id string) (PlayerRow, error) {
	var row PlayerRow
	err := s.db.QueryRow(
		"SELECT id, name, rating, coins, wins, losses, abandons FROM players WHERE id = $1", id).Scan(
		&row.ID, &row.Name, &row.Rating, &row.Coins, &row.Wins, &row.Losses, &row.Abandons)
	return row, err
}

// ApplyRewards stores the match row and applies one match's reward batch in a
// single transaction: a failure anywhere rolls back everything, so the caller
// can retry the whole batch.
func (s *Service) ApplyRewards(match MatchResult, batch []rewards.Reward) error {
	s.m.Lock()
	defer s.m.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning reward transaction: %w", err)
	}

	abandoned := 0
	if match.Abandoned {
		abandoned = 1
	}
	_, err = tx.Exec(
		"INSERT INTO matches (id, created_at, team0_players, team1_players, team0_score, team1_score, winner_team, abandoned) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
		match.ID, match.CreatedAt, match.Team0Players, match.Team1Players,
		match.Team0Score, match.Team1Score, match.WinnerTeam, abandoned)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("inserting match %s: %w", match.ID, err)
	}

	for _, reward := range batch {
		res, err := tx.Exec(
			"UPDATE players SET rating = $1, coins = coins + $2, wins = wins + $3, losses = losses + $4, abandons = abandons + $5 WHERE id = $6",
			reward.NewRating, reward.Coins, reward.Wins, reward.Losses, reward.Abandons, reward.PlayerID)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("updating player %s: %w", reward.PlayerID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			tx.Rollback()
			return err
		}
		if n != 1 {
			tx.Rollback()
			return fmt.Errorf("player %s not found while applying rewards", reward.PlayerID)
		}
	}

	return tx.Commit()
}

// GetAllMatches returns every stored match result.
func (s *Service) GetAllMatches() ([]MatchResult, error) {
	s.m.Lock()
	defer s.m.Unlock()

	rows, err := s.db.Query(
		"SELECT id, created_at, team0_players, team1_players, team0_score, team1_score, winner_team, abandoned FROM matches")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMatches(rows)
}

// GetMatchesByPlayer returns every match the given player id took part in.
func (s *Service) GetMatchesByPlayer(playerID string) ([]MatchResult, error) {
	all, err := s.GetAllMatches()
	if err != nil {
		return nil, err
	}

	results := []MatchResult{}
	for _, match := range all {
		for _, id := range append(strings.Split(match.Team0Players, ","), strings.Split(match.Team1Players, ",")...) {
			if id == playerID {
				results = append(results, match)
				break
			}
		}
	}
	if len(results) == 0 {
		return nil, sql.ErrNoRows
	}
	return results, nil
}

// GetMatchByID returns one stored match result.
func (s *Service) GetMatchByID(id string) (MatchResult, error) {
	s.m.Lock()
	defer s.m.Unlock()

	var (
		match     MatchResult
		abandoned int
	)
	err := s.db.QueryRow(
		"SELECT id, created_at, team0_players, team1_players, team0_score, team1_score, winner_team, abandoned FROM matches WHERE id = $1", id).Scan(
		&match.ID, &match.CreatedAt, &match.Team0Players, &match.Team1Players,
		&match.Team0Score, &match.Team1Score, &match.WinnerTeam, &abandoned)
	if err != nil {
		return MatchResult{}, err
	}
	match.Abandoned = abandoned == 1
	return match, nil
}

func scanMatches(rows *sql.Rows) ([]MatchResult, error) {
	results := []MatchResult{}
	for rows.Next() {
		var (
			match     MatchResult
			abandoned int
		)
		if err := rows.Scan(
			&match.ID, &match.CreatedAt, &match.Team0Players, &match.Team1Players,
			&match.Team0Score, &match.Team1Score, &match.WinnerTeam, &abandoned); err != nil {
			return nil, err
		}
		match.Abandoned = abandoned == 1
		results = append(results, match)
	}
	return results, rows.Err()
}
