package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/lcoutinho/valor-explorer/internal/models"
	"github.com/lcoutinho/valor-explorer/pkg/config"
	"github.com/lcoutinho/valor-explorer/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := seedData(db); err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Info("Data seeded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	if err := db.AutoMigrate(&models.SavedSquad{}); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_saved_squads_home_team ON saved_squads(home_team)",
		"CREATE INDEX IF NOT EXISTS idx_saved_squads_created_at ON saved_squads(created_at)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func dropTables(db *database.DB) error {
	if err := db.Exec("DROP TABLE IF EXISTS saved_squads").Error; err != nil {
		return fmt.Errorf("failed to drop table saved_squads: %w", err)
	}
	return nil
}

func seedData(db *database.DB) error {
	// A small demo squad so the saved-squads views are not empty on a fresh
	// install. The starting eleven is fictional but well-formed for 4-3-3.
	entries := models.SquadEntryList{
		{Slot: models.SectorGK, Player: models.Player{Team: "Palmeiras", Pos: "GK", Name: "Weverton", Rating: 87, MarketValue: 150}},
		{Slot: models.SectorDEF, Player: models.Player{Team: "Palmeiras", Pos: "ZG", Name: "Gustavo Gomez", Rating: 86, MarketValue: 140}},
		{Slot: models.SectorDEF, Player: models.Player{Team: "Palmeiras", Pos: "ZG", Name: "Murilo", Rating: 83, MarketValue: 110}},
		{Slot: models.SectorDEF, Player: models.Player{Team: "Palmeiras", Pos: "LD", Name: "Marcos Rocha", Rating: 80, MarketValue: 80}},
		{Slot: models.SectorDEF, Player: models.Player{Team: "Palmeiras", Pos: "LE", Name: "Piquerez", Rating: 84, MarketValue: 120}},
		{Slot: models.SectorMEI, Player: models.Player{Team: "Palmeiras", Pos: "VOL", Name: "Zé Rafael", Rating: 82, MarketValue: 100}},
		{Slot: models.SectorMEI, Player: models.Player{Team: "Palmeiras", Pos: "MLG", Name: "Raphael Veiga", Rating: 86, MarketValue: 160}},
		{Slot: models.SectorMEI, Player: models.Player{Team: "Palmeiras", Pos: "VOL", Name: "Aníbal Moreno", Rating: 83, MarketValue: 115}},
		{Slot: models.SectorATA, Player: models.Player{Team: "Palmeiras", Pos: "PE", Name: "Estêvão", Rating: 88, MarketValue: 300}},
		{Slot: models.SectorATA, Player: models.Player{Team: "Palmeiras", Pos: "PD", Name: "Mauricio", Rating: 81, MarketValue: 95}},
		{Slot: models.SectorATA, Player: models.Player{Team: "Palmeiras", Pos: "CA", Name: "Flaco López", Rating: 84, MarketValue: 130}},
	}

	var totalRating int
	for _, e := range entries {
		totalRating += e.Player.Rating
	}

	squad := &models.SavedSquad{
		Name:      "Palmeiras - Clássico",
		HomeTeam:  "Palmeiras",
		Formation: "4-3-3",
		Entries:   entries,
		// Home-team players are free, so the demo squad spends nothing.
		TotalValue: 0,
		AvgRating:  float64(totalRating) / float64(len(entries)),
	}

	if err := db.Create(squad).Error; err != nil {
		return fmt.Errorf("failed to create demo squad: %w", err)
	}

	logrus.Infof("Seeded demo squad %q with %d players", squad.Name, len(entries))
	return nil
}
