package csi

import "time"

type LeagueStanding struct {
	Rank         int    `json:"rank"`
	Team         string `json:"team"`
	Badge        string `json:"logo"`
	Points       int    `json:"points"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"gf"`
	GoalsAgainst int    `json:"gs"`
	GoalDiff     int    `json:"dr"`
}

type TopScorer struct {
	Rank   int    `json:"rank"`
	Player string `json:"player"`
	Goals  int    `json:"goals"`
	Team   string `json:"team"`
}

type NextMatch struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	Opponent string `json:"opponent"`
	Venue    string `json:"location"`
	IsHome   bool   `json:"isHome"`
}

type Result struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type CalendarMatch struct {
	// deterministic identity: iso kickoff date + slugified opponent,
	// stable across repeated extractions of the same fixture.
	Id        string    `json:"id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Kickoff   time.Time `json:"datetime"`
	Opponent  string    `json:"opponent"`
	Venue     string    `json:"location"`
	IsHome    bool      `json:"isHome"`
	Played    bool      `json:"played"`
	Result    *Result   `json:"result,omitempty"`
	DetailUrl string    `json:"csiUrl"`
}

type LeagueData struct {
	Standings  []LeagueStanding `json:"standings"`
	TopScorers []TopScorer      `json:"topScorers"`
	NextMatch  *NextMatch       `json:"nextMatch"`
	Matches    []CalendarMatch  `json:"matches"`
}

func (d LeagueData) Empty() bool {
	return len(d.Standings) == 0 && len(d.TopScorers) == 0 && len(d.Matches) == 0
}

type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

type EventType string

const (
	EventGoal         EventType = "goal"
	EventYellowCard   EventType = "yellow-card"
	EventRedCard      EventType = "red-card"
	EventSubstitution EventType = "sub"
	EventOther        EventType = "other"
)

type MatchEvent struct {
	Time   string    `json:"time"`
	Type   EventType `json:"type"`
	Player string    `json:"player"`
	Side   Side      `json:"team"`
	// score snapshot at the moment of the event, e.g. "2 - 1"
	Score string `json:"score,omitempty"`
}

// MatchDetails carries both the legacy flat scorer list and the rich
// event timeline. For goal events the two views agree: every scorer
// in Events is present in Scorers exactly once.
type MatchDetails struct {
	Scorers []string     `json:"scorers"`
	Events  []MatchEvent `json:"events"`
}

type AggregatedPlayerStats struct {
	// name as first encountered, original casing
	Name        string `json:"name"`
	Goals       int    `json:"goals"`
	YellowCards int    `json:"yellowCards"`
	RedCards    int    `json:"redCards"`
	Appearances int    `json:"matches"`
}
