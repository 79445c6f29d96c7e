package statlog

import (
	"database/sql"
	"testing"

	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/database"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/mlbstats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, cleanup, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return db
}

func sampleRecords() RecordSet {
	return RecordSet{
		Hitting: []HittingLine{
			{PlayerID: 1, GameID: 100, Season: 2025, Level: mlbstats.LevelTripleA, GameDate: "2025-05-01", Team: "NAS", Opponent: "MEM", AtBats: 4, Hits: 2, HomeRuns: 1},
			{PlayerID: 1, GameID: 101, Season: 2025, Level: mlbstats.LevelTripleA, GameDate: "2025-05-02", Team: "NAS", Opponent: "MEM", AtBats: 3, Hits: 0},
		},
		Pitches: []Pitch{
			{PlayerID: 1, GameID: 100, EventSeq: 1, Season: 2025, Level: mlbstats.LevelTripleA, Inning: 1, PitchType: "FF", Velocity: 95.2, Result: "ball"},
			{PlayerID: 1, GameID: 100, EventSeq: 2, Season: 2025, Level: mlbstats.LevelTripleA, Inning: 1, PitchType: "SL", Velocity: 84.1, Result: "swinging_strike"},
		},
	}
}

func TestCommitInsertsAllRows(t *testing.T) {
	store := New(setupTestDB(t))

	result, err := store.Commit(sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, 4, result.Inserted)
	assert.Equal(t, 0, result.Skipped)
}

func TestCommitTwiceIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	store := New(db)

	_, err := store.Commit(sampleRecords())
	require.NoError(t, err)

	// The identical set again: everything resolves to skips, nothing doubles.
	result, err := store.Commit(sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 4, result.Skipped)

	var hitting, pitches int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM hitting_game_logs").Scan(&hitting))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM pitch_events").Scan(&pitches))
	assert.Equal(t, 2, hitting)
	assert.Equal(t, 2, pitches)
}

func TestCommitFirstWriterWins(t *testing.T) {
	db := setupTestDB(t)
	store := New(db)

	first := RecordSet{Hitting: []HittingLine{
		{PlayerID: 1, GameID: 100, Season: 2025, Level: mlbstats.LevelTripleA, Hits: 2},
	}}
	_, err := store.Commit(first)
	require.NoError(t, err)

	conflicting := RecordSet{Hitting: []HittingLine{
		{PlayerID: 1, GameID: 100, Season: 2025, Level: mlbstats.LevelTripleA, Hits: 5},
	}}
	result, err := store.Commit(conflicting)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Skipped)

	var hits int
	require.NoError(t, db.QueryRow(
		"SELECT hits FROM hitting_game_logs WHERE player_id = 1 AND game_id = 100 AND season = 2025",
	).Scan(&hits))
	assert.Equal(t, 2, hits, "existing row must not be clobbered")
}

func TestCommitKeepsLevelsDistinct(t *testing.T) {
	db := setupTestDB(t)
	store := New(db)

	// Same player and season across two levels: distinct games, distinct rows.
	records := RecordSet{Pitching: []PitchingLine{
		{PlayerID: 2, GameID: 200, Season: 2025, Level: mlbstats.LevelDoubleA, OutsRecorded: 18, Strikeouts: 7},
		{PlayerID: 2, GameID: 201, Season: 2025, Level: mlbstats.LevelHighA, OutsRecorded: 15, Strikeouts: 5},
	}}
	result, err := store.Commit(records)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)

	var levels int
	require.NoError(t, db.QueryRow(
		"SELECT COUNT(DISTINCT level) FROM pitching_game_logs WHERE player_id = 2 AND season = 2025",
	).Scan(&levels))
	assert.Equal(t, 2, levels)
}

func TestCommitEmptySetIsNoop(t *testing.T) {
	store := New(setupTestDB(t))

	result, err := store.Commit(RecordSet{})
	require.NoError(t, err)
	assert.Equal(t, CommitResult{}, result)
}

func TestStatusLifecycle(t *testing.T) {
	store := New(setupTestDB(t))

	_, ok, err := store.GetStatus(1, 2025)
	require.NoError(t, err)
	assert.False(t, ok, "unattempted pair has no marker")

	require.NoError(t, store.MarkStatus(1, 2025, StatusFailed, "gamelog fetch: server error"))
	status, ok, err := store.GetStatus(1, 2025)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StatusFailed, status)

	// A later successful run overwrites the failed marker.
	require.NoError(t, store.MarkStatus(1, 2025, StatusComplete, ""))
	status, ok, err = store.GetStatus(1, 2025)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, StatusComplete, status)
}

func TestStatusIsPerSeason(t *testing.T) {
	store := New(setupTestDB(t))

	require.NoError(t, store.MarkStatus(1, 2024, StatusComplete, ""))

	_, ok, err := store.GetStatus(1, 2025)
	require.NoError(t, err)
	assert.False(t, ok, "a marker for one season must not cover another")
}

func TestStatusCounts(t *testing.T) {
	store := New(setupTestDB(t))

	require.NoError(t, store.MarkStatus(1, 2025, StatusComplete, ""))
	require.NoError(t, store.MarkStatus(2, 2025, StatusComplete, ""))
	require.NoError(t, store.MarkStatus(3, 2025, StatusEmpty, ""))
	require.NoError(t, store.MarkStatus(4, 2025, StatusFailed, "timeout"))
	require.NoError(t, store.MarkStatus(1, 2024, StatusComplete, ""))

	counts, err := store.StatusCounts(2025)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[StatusComplete])
	assert.Equal(t, 1, counts[StatusEmpty])
	assert.Equal(t, 1, counts[StatusFailed])
}
