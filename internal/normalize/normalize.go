// Package normalize flattens stats API payloads into persistable rows.
// All transforms are pure: the same payload and task always yield the same
// record set with the same natural keys, which is what makes the
// insert-or-ignore persistence correct under retries.
package normalize

import (
	"fmt"

	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/mlbstats"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/roster"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/statlog"
)

// Sentinels for malformed per-pitch fields. A bad event inside a large
// payload must not lose the rest of the game's data.
const (
	PitchTypeUnknown = "UNK"
	ResultUnknown    = "unknown"
)

// Anomaly describes a payload element that could not be fully normalized.
type Anomaly struct {
	GameID int64
	Seq    int
	Reason string
}

func (a Anomaly) String() string {
	return fmt.Sprintf("game %d seq %d: %s", a.GameID, a.Seq, a.Reason)
}

// GameLog converts the payload for one task into flat candidate rows.
// Rows missing a natural-key field are dropped and reported as anomalies;
// rows missing only stat fields get sentinel values.
func GameLog(payload *mlbstats.GameLogPayload, player roster.Player, season int, level mlbstats.Level) (statlog.RecordSet, []Anomaly) {
	var (
		records   statlog.RecordSet
		anomalies []Anomaly
	)
	if payload == nil {
		return records, anomalies
	}

	for _, game := range payload.Games {
		if game.GamePk == nil {
			anomalies = append(anomalies, Anomaly{Reason: "game entry missing gamePk"})
			continue
		}
		gameID := *game.GamePk

		switch player.Role {
		case roster.RolePitcher:
			records.Pitching = append(records.Pitching, pitchingLine(game, gameID, player.ID, season, level))
		default:
			records.Hitting = append(records.Hitting, hittingLine(game, gameID, player.ID, season, level))
		}

		for _, raw := range game.Pitches {
			pitch, anomaly := pitchEvent(raw, gameID, player.ID, season, level)
			if anomaly != nil {
				anomalies = append(anomalies, *anomaly)
				if pitch == nil {
					continue
				}
			}
			records.Pitches = append(records.Pitches, *pitch)
		}
	}
	return records, anomalies
}

func hittingLine(game mlbstats.Game, gameID, playerID int64, season int, level mlbstats.Level) statlog.HittingLine {
	return statlog.HittingLine{
		PlayerID: playerID,
		GameID:   gameID,
		Season:   season,
		Level:    level,
		GameDate: game.Date,
		Team:     game.Team,
		Opponent: game.Opponent,

		PlateAppearances: intOr(game.Stat.PlateAppearances, 0),
		AtBats:           intOr(game.Stat.AtBats, 0),
		Hits:             intOr(game.Stat.Hits, 0),
		Doubles:          intOr(game.Stat.Doubles, 0),
		Triples:          intOr(game.Stat.Triples, 0),
		HomeRuns:         intOr(game.Stat.HomeRuns, 0),
		Runs:             intOr(game.Stat.Runs, 0),
		RBI:              intOr(game.Stat.RBI, 0),
		Walks:            intOr(game.Stat.BaseOnBalls, 0),
		Strikeouts:       intOr(game.Stat.StrikeOuts, 0),
		StolenBases:      intOr(game.Stat.StolenBases, 0),
	}
}

func pitchingLine(game mlbstats.Game, gameID, playerID int64, season int, level mlbstats.Level) statlog.PitchingLine {
	return statlog.PitchingLine{
		PlayerID: playerID,
		GameID:   gameID,
		Season:   season,
		Level:    level,
		GameDate: game.Date,
		Team:     game.Team,
		Opponent: game.Opponent,

		OutsRecorded: intOr(game.Stat.Outs, 0),
		BattersFaced: intOr(game.Stat.BattersFaced, 0),
		HitsAllowed:  intOr(game.Stat.HitsAllowed, 0),
		EarnedRuns:   intOr(game.Stat.EarnedRuns, 0),
		Walks:        intOr(game.Stat.BaseOnBalls, 0),
		Strikeouts:   intOr(game.Stat.StrikeOuts, 0),
		PitchCount:   intOr(game.Stat.NumberOfPitches, 0),
	}
}

// pitchEvent normalizes one raw pitch. A missing sequence number makes the
// row unkeyable, so it is dropped with an anomaly. Any other missing field
// gets a sentinel and the row is kept, with an anomaly noting the repair.
func pitchEvent(raw mlbstats.RawPitch, gameID, playerID int64, season int, level mlbstats.Level) (*statlog.Pitch, *Anomaly) {
	if raw.Seq == nil {
		return nil, &Anomaly{GameID: gameID, Reason: "pitch event missing seq"}
	}

	pitch := statlog.Pitch{
		PlayerID:  playerID,
		GameID:    gameID,
		EventSeq:  *raw.Seq,
		Season:    season,
		Level:     level,
		Inning:    intOr(raw.Inning, 0),
		PitchType: PitchTypeUnknown,
		Velocity:  0,
		Result:    ResultUnknown,
	}

	repaired := false
	if raw.Type != nil && *raw.Type != "" {
		pitch.PitchType = *raw.Type
	} else {
		repaired = true
	}
	if raw.Velocity != nil {
		pitch.Velocity = *raw.Velocity
	} else {
		repaired = true
	}
	if raw.Result != nil && *raw.Result != "" {
		pitch.Result = *raw.Result
	} else {
		repaired = true
	}

	if repaired {
		return &pitch, &Anomaly{GameID: gameID, Seq: *raw.Seq, Reason: "pitch event had missing fields, sentinels applied"}
	}
	return &pitch, nil
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}
