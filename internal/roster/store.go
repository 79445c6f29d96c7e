package roster

import (
	"database/sql"
	"sync"

	"github.com/charmbracelet/log"
)

type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new RosterStore.
func New(db *sql.DB) RosterStore {
	return &store{
		db: db,
	}
}

// Players returns tracked players, optionally filtered by role. A limit of
// 0 returns the whole roster; a positive limit caps the result for smoke runs.
func (s *store) Players(role Role, limit int) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, name, role, organization, position FROM players"
	args := []any{}
	if role != "" {
		query += " WHERE role = ?"
		args = append(args, role)
	}
	query += " ORDER BY id"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.Organization, &p.Position); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// UpsertPlayers inserts or refreshes a batch of players in one transaction.
func (s *store) UpsertPlayers(players []Player) error {
	if len(players) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, name, role, organization, position)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			role = excluded.role,
			organization = excluded.organization,
			position = excluded.position;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.Exec(p.ID, p.Name, p.Role, p.Organization, p.Position); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *store) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM players").Scan(&count)
	return count, err
}
