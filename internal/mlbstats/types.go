package mlbstats

// Level is a competition tier a player can appear at within a season.
type Level string

const (
	LevelMLB     Level = "MLB"
	LevelTripleA Level = "AAA"
	LevelDoubleA Level = "AA"
	LevelHighA   Level = "A+"
	LevelSingleA Level = "A"
)

// AllLevels is the fixed enumeration probed by the enumerator, highest first.
var AllLevels = []Level{LevelMLB, LevelTripleA, LevelDoubleA, LevelHighA, LevelSingleA}

// SportID returns the stats API sport identifier for the level.
func (l Level) SportID() int {
	switch l {
	case LevelMLB:
		return 1
	case LevelTripleA:
		return 11
	case LevelDoubleA:
		return 12
	case LevelHighA:
		return 13
	case LevelSingleA:
		return 14
	default:
		return 0
	}
}

// StatGroup selects which stat payload the API returns.
type StatGroup string

const (
	GroupHitting  StatGroup = "hitting"
	GroupPitching StatGroup = "pitching"
)

// FetchRequest identifies one game log query.
type FetchRequest struct {
	PlayerID int64
	Season   int
	Level    Level
	Group    StatGroup
}

// GameLogPayload is the decoded game log response, all pages merged.
type GameLogPayload struct {
	TotalGames int    `json:"totalGames"`
	Games      []Game `json:"games"`
}

// Game is one game entry in a game log response. Stat fields depend on the
// requested stat group; pitches carry the per-pitch event stream.
type Game struct {
	GamePk   *int64     `json:"gamePk"`
	Date     string     `json:"date"`
	Team     string     `json:"team"`
	Opponent string     `json:"opponent"`
	Stat     StatLine   `json:"stat"`
	Pitches  []RawPitch `json:"pitches"`
}

// StatLine holds both stat group shapes; only the requested group's fields
// are populated by the API. Pointers distinguish absent from zero.
type StatLine struct {
	// Hitting
	PlateAppearances *int `json:"plateAppearances"`
	AtBats           *int `json:"atBats"`
	Hits             *int `json:"hits"`
	Doubles          *int `json:"doubles"`
	Triples          *int `json:"triples"`
	HomeRuns         *int `json:"homeRuns"`
	Runs             *int `json:"runs"`
	RBI              *int `json:"rbi"`
	BaseOnBalls      *int `json:"baseOnBalls"`
	StrikeOuts       *int `json:"strikeOuts"`
	StolenBases      *int `json:"stolenBases"`

	// Pitching
	Outs            *int `json:"outs"`
	BattersFaced    *int `json:"battersFaced"`
	HitsAllowed     *int `json:"hitsAllowed"`
	EarnedRuns      *int `json:"earnedRuns"`
	NumberOfPitches *int `json:"numberOfPitches"`
}

// RawPitch is a single pitch event as reported by the API. Fields are
// pointers so the normalizer can substitute sentinels for missing values.
type RawPitch struct {
	Seq      *int     `json:"seq"`
	Inning   *int     `json:"inning"`
	Type     *string  `json:"type"`
	Velocity *float64 `json:"velocity"`
	Result   *string  `json:"result"`
}
