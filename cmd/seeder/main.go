// Seeds the players table from a roster JSON file. Expected shape:
//
//	[{"id": 695578, "name": "Jesus Made", "role": "hitter",
//	  "organization": "MIL", "position": "SS"}, ...]
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/config"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/database"
	"github.com/afinewinecompany/afinewinedynasty-sub000/internal/roster"
	"github.com/charmbracelet/log"
)

type rosterEntry struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Organization string `json:"organization"`
	Position     string `json:"position"`
}

func main() {
	file := flag.String("file", "roster.json", "Path to the roster JSON file")
	flag.Parse()

	log.Info("Starting roster seeder...", "file", *file)
	cfg := config.Load()

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read roster file: %s", err)
	}
	var entries []rosterEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Fatalf("Failed to parse roster file: %s", err)
	}
	if len(entries) == 0 {
		log.Fatal("Roster file contains no players")
	}

	players := make([]roster.Player, 0, len(entries))
	for _, e := range entries {
		role := roster.Role(e.Role)
		if role != roster.RoleHitter && role != roster.RolePitcher {
			log.Fatalf("Player %d (%s) has unknown role %q", e.ID, e.Name, e.Role)
		}
		if e.ID == 0 || e.Name == "" {
			log.Fatalf("Player entry missing id or name: %+v", e)
		}
		players = append(players, roster.Player{
			ID:           e.ID,
			Name:         e.Name,
			Role:         role,
			Organization: e.Organization,
			Position:     e.Position,
		})
	}

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := roster.New(db)
	if err := store.UpsertPlayers(players); err != nil {
		log.Fatalf("Failed to upsert players: %s", err)
	}

	count, err := store.Count()
	if err != nil {
		log.Fatalf("Failed to count players: %s", err)
	}
	log.Info("Roster seeded", "upserted", len(players), "total", count)
}
