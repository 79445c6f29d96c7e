package normalize

import (
	"testing"

	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/mlbstats"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/roster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iptr(v int) *int         { return &v }
func i64ptr(v int64) *int64   { return &v }
func sptr(v string) *string   { return &v }
func fptr(v float64) *float64 { return &v }

func hitter() roster.Player {
	return roster.Player{ID: 10, Name: "Hitter", Role: roster.RoleHitter}
}

func pitcher() roster.Player {
	return roster.Player{ID: 20, Name: "Pitcher", Role: roster.RolePitcher}
}

func wellFormedGame(pk int64) mlbstats.Game {
	return mlbstats.Game{
		GamePk:   i64ptr(pk),
		Date:     "2025-06-15",
		Team:     "NAS",
		Opponent: "IND",
		Stat: mlbstats.StatLine{
			AtBats: iptr(4), Hits: iptr(2), HomeRuns: iptr(1),
			Outs: iptr(18), StrikeOuts: iptr(6),
		},
		Pitches: []mlbstats.RawPitch{
			{Seq: iptr(1), Inning: iptr(1), Type: sptr("FF"), Velocity: fptr(96.3), Result: sptr("called_strike")},
			{Seq: iptr(2), Inning: iptr(1), Type: sptr("CH"), Velocity: fptr(87.0), Result: sptr("ball")},
		},
	}
}

func TestGameLogHitterRows(t *testing.T) {
	payload := &mlbstats.GameLogPayload{
		TotalGames: 2,
		Games:      []mlbstats.Game{wellFormedGame(100), wellFormedGame(101)},
	}

	records, anomalies := GameLog(payload, hitter(), 2025, mlbstats.LevelTripleA)

	assert.Empty(t, anomalies)
	require.Len(t, records.Hitting, 2)
	assert.Empty(t, records.Pitching)
	require.Len(t, records.Pitches, 4)

	line := records.Hitting[0]
	assert.Equal(t, int64(10), line.PlayerID)
	assert.Equal(t, int64(100), line.GameID)
	assert.Equal(t, 2025, line.Season)
	assert.Equal(t, mlbstats.LevelTripleA, line.Level)
	assert.Equal(t, 4, line.AtBats)
	assert.Equal(t, 2, line.Hits)
	assert.Equal(t, 1, line.HomeRuns)
}

func TestGameLogPitcherRows(t *testing.T) {
	payload := &mlbstats.GameLogPayload{TotalGames: 1, Games: []mlbstats.Game{wellFormedGame(200)}}

	records, anomalies := GameLog(payload, pitcher(), 2024, mlbstats.LevelDoubleA)

	assert.Empty(t, anomalies)
	assert.Empty(t, records.Hitting)
	require.Len(t, records.Pitching, 1)
	assert.Equal(t, 18, records.Pitching[0].OutsRecorded)
	assert.Equal(t, 6, records.Pitching[0].Strikeouts)
}

func TestGameLogIsDeterministic(t *testing.T) {
	payload := &mlbstats.GameLogPayload{
		TotalGames: 2,
		Games:      []mlbstats.Game{wellFormedGame(100), wellFormedGame(101)},
	}

	first, _ := GameLog(payload, hitter(), 2025, mlbstats.LevelMLB)
	second, _ := GameLog(payload, hitter(), 2025, mlbstats.LevelMLB)

	assert.Equal(t, first, second)
}

func TestGameLogDropsGameMissingKey(t *testing.T) {
	broken := wellFormedGame(0)
	broken.GamePk = nil
	payload := &mlbstats.GameLogPayload{
		TotalGames: 2,
		Games:      []mlbstats.Game{broken, wellFormedGame(101)},
	}

	records, anomalies := GameLog(payload, hitter(), 2025, mlbstats.LevelTripleA)

	// One bad entry costs one row, never the batch.
	require.Len(t, records.Hitting, 1)
	assert.Equal(t, int64(101), records.Hitting[0].GameID)
	require.Len(t, anomalies, 1)
	assert.Contains(t, anomalies[0].Reason, "gamePk")
}

func TestGameLogDropsPitchMissingSeq(t *testing.T) {
	game := wellFormedGame(100)
	game.Pitches = append(game.Pitches, mlbstats.RawPitch{
		Inning: iptr(2), Type: sptr("SL"), Velocity: fptr(84.5), Result: sptr("foul"),
	})
	payload := &mlbstats.GameLogPayload{TotalGames: 1, Games: []mlbstats.Game{game}}

	records, anomalies := GameLog(payload, hitter(), 2025, mlbstats.LevelTripleA)

	assert.Len(t, records.Pitches, 2, "the unkeyable pitch is dropped, the rest kept")
	require.Len(t, anomalies, 1)
	assert.Contains(t, anomalies[0].Reason, "seq")
}

func TestGameLogRepairsPitchWithSentinels(t *testing.T) {
	game := wellFormedGame(100)
	game.Pitches = []mlbstats.RawPitch{
		{Seq: iptr(7), Inning: iptr(3)},
	}
	payload := &mlbstats.GameLogPayload{TotalGames: 1, Games: []mlbstats.Game{game}}

	records, anomalies := GameLog(payload, hitter(), 2025, mlbstats.LevelHighA)

	require.Len(t, records.Pitches, 1)
	pitch := records.Pitches[0]
	assert.Equal(t, 7, pitch.EventSeq)
	assert.Equal(t, PitchTypeUnknown, pitch.PitchType)
	assert.Equal(t, ResultUnknown, pitch.Result)
	assert.Equal(t, float64(0), pitch.Velocity)
	require.Len(t, anomalies, 1)
	assert.Equal(t, 7, anomalies[0].Seq)
}

func TestGameLogNilPayload(t *testing.T) {
	records, anomalies := GameLog(nil, hitter(), 2025, mlbstats.LevelMLB)
	assert.Equal(t, 0, records.Len())
	assert.Empty(t, anomalies)
}

func TestGameLogMissingStatFieldsDefaultToZero(t *testing.T) {
	game := mlbstats.Game{GamePk: i64ptr(300), Date: "2025-04-01"}
	payload := &mlbstats.GameLogPayload{TotalGames: 1, Games: []mlbstats.Game{game}}

	records, anomalies := GameLog(payload, hitter(), 2025, mlbstats.LevelSingleA)

	assert.Empty(t, anomalies)
	require.Len(t, records.Hitting, 1)
	assert.Equal(t, 0, records.Hitting[0].AtBats)
	assert.Equal(t, 0, records.Hitting[0].Hits)
}
