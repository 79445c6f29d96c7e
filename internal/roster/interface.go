package roster

// RosterStore defines read access to the tracked player population, plus
// the upsert used by the seeder.
type RosterStore interface {
	Players(role Role, limit int) ([]Player, error)
	UpsertPlayers(players []Player) error
	Count() (int, error)
}
