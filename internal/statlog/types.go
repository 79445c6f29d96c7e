package statlog

import "github.com/afinewinecompany/afinewinedynasty-sub000/internal/mlbstats"

// HittingLine is one per-game hitting row. Natural key: (PlayerID, GameID, Season).
type HittingLine struct {
	PlayerID int64
	GameID   int64
	Season   int
	Level    mlbstats.Level
	GameDate string
	Team     string
	Opponent string

	PlateAppearances int
	AtBats           int
	Hits             int
	Doubles          int
	Triples          int
	HomeRuns         int
	Runs             int
	RBI              int
	Walks            int
	Strikeouts       int
	StolenBases      int
}

// PitchingLine is one per-game pitching row. Natural key: (PlayerID, GameID, Season).
type PitchingLine struct {
	PlayerID int64
	GameID   int64
	Season   int
	Level    mlbstats.Level
	GameDate string
	Team     string
	Opponent string

	OutsRecorded int
	BattersFaced int
	HitsAllowed  int
	EarnedRuns   int
	Walks        int
	Strikeouts   int
	PitchCount   int
}

// Pitch is one per-pitch event row. Natural key: (PlayerID, GameID, EventSeq, Season).
type Pitch struct {
	PlayerID  int64
	GameID    int64
	EventSeq  int
	Season    int
	Level     mlbstats.Level
	Inning    int
	PitchType string
	Velocity  float64
	Result    string
}

// RecordSet is the normalizer output for one task.
type RecordSet struct {
	Hitting  []HittingLine
	Pitching []PitchingLine
	Pitches  []Pitch
}

// Len returns the total number of candidate rows in the set.
func (r RecordSet) Len() int {
	return len(r.Hitting) + len(r.Pitching) + len(r.Pitches)
}

// CommitResult reports how a commit resolved against existing rows.
type CommitResult struct {
	Inserted int
	Skipped  int
}

// Status is the per-(player, season) completeness marker. It distinguishes
// "collected", "probed and genuinely empty" and "attempted but failed" so a
// later run knows whether to skip or retry.
type Status string

const (
	StatusComplete Status = "complete"
	StatusEmpty    Status = "empty"
	StatusFailed   Status = "failed"
)
