package roster

import "github.com/afinewinecompany/afinewinedynasty-sub000/internal/mlbstats"

// Role distinguishes the two stat groups a player is collected under.
type Role string

const (
	RoleHitter  Role = "hitter"
	RolePitcher Role = "pitcher"
)

// StatGroup maps the role onto the stats API stat group selector.
func (r Role) StatGroup() mlbstats.StatGroup {
	if r == RolePitcher {
		return mlbstats.GroupPitching
	}
	return mlbstats.GroupHitting
}

// Player is a tracked prospect. Players are input to the collector; the
// collector never creates or mutates them.
type Player struct {
	ID           int64
	Name         string
	Role         Role
	Organization string
	Position     string
}
