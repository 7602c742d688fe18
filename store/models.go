package store

// PlayerRow is one row of the players table.
type PlayerRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Rating   int    `json:"rating"`
	Coins    int    `json:"coins"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Abandons int    `json:"abandons"`
}

// MatchResult is one row of the matches table. Team rosters are stored as
// comma-joined player ids to cover the 2/4/6-player variants.
type MatchResult struct {
	ID           string `json:"id"`
	CreatedAt    string `json:"created_at"`
	Team0Players string `json:"team0_players"`
	Team1Players string `json:"team1_players"`
	Team0Score   int    `json:"team0_score"`
	Team1Score   int    `json:"team1_score"`
	WinnerTeam   int    `json:"winner_team"`
	Abandoned    bool   `json:"abandoned"`
}
