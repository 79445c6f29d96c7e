package statlog

import (
	"database/sql"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

type store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a new StatStore.
func New(db *sql.DB) StatStore {
	return &store{
		db: db,
	}
}

// Commit writes the record set in one transaction. Rows whose natural key
// already exists are left untouched (first writer wins): the normalizer is
// deterministic, so a second identical write carries no new information,
// and a retried partial fetch must never clobber a complete earlier write.
func (s *store) Commit(records RecordSet) (CommitResult, error) {
	var result CommitResult
	if records.Len() == 0 {
		return result, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return result, err
	}

	insertCount := func(res sql.Result) {
		n, err := res.RowsAffected()
		if err != nil {
			return
		}
		result.Inserted += int(n)
		result.Skipped += 1 - int(n)
	}

	if len(records.Hitting) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO hitting_game_logs (
				player_id, game_id, season, level, game_date, team, opponent,
				plate_appearances, at_bats, hits, doubles, triples, home_runs,
				runs, rbi, walks, strikeouts, stolen_bases)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(player_id, game_id, season) DO NOTHING;
		`)
		if err != nil {
			tx.Rollback()
			return CommitResult{}, err
		}
		defer stmt.Close()

		for _, line := range records.Hitting {
			res, err := stmt.Exec(
				line.PlayerID, line.GameID, line.Season, line.Level, line.GameDate, line.Team, line.Opponent,
				line.PlateAppearances, line.AtBats, line.Hits, line.Doubles, line.Triples, line.HomeRuns,
				line.Runs, line.RBI, line.Walks, line.Strikeouts, line.StolenBases,
			)
			if err != nil {
				tx.Rollback()
				return CommitResult{}, err
			}
			insertCount(res)
		}
	}

	if len(records.Pitching) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO pitching_game_logs (
				player_id, game_id, season, level, game_date, team, opponent,
				outs_recorded, batters_faced, hits_allowed, earned_runs,
				walks, strikeouts, pitch_count)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(player_id, game_id, season) DO NOTHING;
		`)
		if err != nil {
			tx.Rollback()
			return CommitResult{}, err
		}
		defer stmt.Close()

		for _, line := range records.Pitching {
			res, err := stmt.Exec(
				line.PlayerID, line.GameID, line.Season, line.Level, line.GameDate, line.Team, line.Opponent,
				line.OutsRecorded, line.BattersFaced, line.HitsAllowed, line.EarnedRuns,
				line.Walks, line.Strikeouts, line.PitchCount,
			)
			if err != nil {
				tx.Rollback()
				return CommitResult{}, err
			}
			insertCount(res)
		}
	}

	if len(records.Pitches) > 0 {
		stmt, err := tx.Prepare(`
			INSERT INTO pitch_events (
				player_id, game_id, event_seq, season, level, inning,
				pitch_type, velocity, result)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(player_id, game_id, event_seq, season) DO NOTHING;
		`)
		if err != nil {
			tx.Rollback()
			return CommitResult{}, err
		}
		defer stmt.Close()

		for _, pitch := range records.Pitches {
			res, err := stmt.Exec(
				pitch.PlayerID, pitch.GameID, pitch.EventSeq, pitch.Season, pitch.Level, pitch.Inning,
				pitch.PitchType, pitch.Velocity, pitch.Result,
			)
			if err != nil {
				tx.Rollback()
				return CommitResult{}, err
			}
			insertCount(res)
		}
	}

	if err := tx.Commit(); err != nil {
		return CommitResult{}, err
	}
	log.Debug("Committed record set", "inserted", result.Inserted, "skipped", result.Skipped)
	return result, nil
}

func (s *store) GetStatus(playerID int64, season int) (Status, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var status Status
	err := s.db.QueryRow(
		"SELECT status FROM collection_status WHERE player_id = ? AND season = ?",
		playerID, season,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return status, true, nil
}

func (s *store) MarkStatus(playerID int64, season int, status Status, lastError string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO collection_status (player_id, season, status, last_error, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(player_id, season) DO UPDATE SET
			status = excluded.status,
			last_error = excluded.last_error,
			updated_at = excluded.updated_at;
	`, playerID, season, status, lastError, time.Now().Unix())
	if err != nil {
		log.Error("Failed to mark collection status", "error", err, "playerID", playerID, "season", season, "status", status)
	}
	return err
}

func (s *store) StatusCounts(season int) (map[Status]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		"SELECT status, COUNT(*) FROM collection_status WHERE season = ? GROUP BY status",
		season,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
