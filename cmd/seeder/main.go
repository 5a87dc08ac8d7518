package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/challenge"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/database"
	"github.com/timrmills-svg/nhh-squash-ladder/internal/scoring"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "ladder.db",
		"MIGRATIONS_DIR": "./migrations",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	config["TURSO_PRIMARY_URL"] = os.Getenv("TURSO_PRIMARY_URL")
	config["TURSO_AUTH_TOKEN"] = os.Getenv("TURSO_AUTH_TOKEN")
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	log.Info("Successfully connected to the database.")

	// Seed a small ladder, top position first.
	names := []string{
		"Seeder Player A",
		"Seeder Player B",
		"Seeder Player C",
		"Seeder Player D",
		"Seeder Player E",
		"Seeder Player F",
	}

	playerIDs := make([]string, len(names))
	now := time.Now()
	for i, name := range names {
		playerIDs[i] = uuid.NewString()
		_, err := db.Exec(`INSERT INTO players (id, name, position, participation_points, wins, losses, join_date, is_active)
			VALUES (?, ?, ?, 0, 0, 0, ?, 1)`,
			playerIDs[i], name, i+1, now.Unix())
		if err != nil {
			log.Fatalf("Failed to insert player %s: %s", name, err)
		}
	}
	log.Info("Seeded ladder players.", "count", len(names))

	// One pending and one accepted challenge so sweeps and reminders have
	// something to chew on.
	pending := &struct {
		id      string
		created time.Time
	}{uuid.NewString(), now.Add(-8 * 24 * time.Hour)}
	_, err = db.Exec(`INSERT INTO challenges (id, challenger_id, challenged_id, status, created_date, expiry_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		pending.id, playerIDs[3], playerIDs[1], challenge.StatusPending,
		pending.created.Unix(), pending.created.Add(challenge.Window).Unix())
	if err != nil {
		log.Fatalf("Failed to insert pending challenge: %s", err)
	}

	acceptedCreated := now.Add(-15 * 24 * time.Hour)
	_, err = db.Exec(`INSERT INTO challenges (id, challenger_id, challenged_id, status, created_date, expiry_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), playerIDs[5], playerIDs[2], challenge.StatusAccepted,
		acceptedCreated.Unix(), acceptedCreated.Add(challenge.Window).Unix())
	if err != nil {
		log.Fatalf("Failed to insert accepted challenge: %s", err)
	}
	log.Info("Seeded open challenges.")

	const batchSize = 100
	const numMatches = 1000

	log.Info("Preparing to insert dummy matches...", "total", numMatches, "batch_size", batchSize)
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	valueStrings := make([]string, 0, batchSize)
	valueArgs := make([]interface{}, 0, batchSize*10) // 10 columns per match

	for i := 0; i < numMatches; i++ {
		playedAt := now.Add(-time.Duration(rand.Intn(365*24)) * time.Hour)
		winner := rand.Intn(len(playerIDs))
		loser := rand.Intn(len(playerIDs))
		for loser == winner {
			loser = rand.Intn(len(playerIDs))
		}

		games := []scoring.Game{
			{ChallengerPoints: 11, ChallengedPoints: rand.Intn(10)},
			{ChallengerPoints: 11, ChallengedPoints: rand.Intn(10)},
			{ChallengerPoints: 11, ChallengedPoints: rand.Intn(10)},
		}
		gamesJSON, _ := json.Marshal(games)

		valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs,
			uuid.NewString(),
			uuid.NewString(), // challenge id of a long-consumed challenge
			playerIDs[winner],
			playerIDs[loser],
			string(gamesJSON),
			false,
			false,
			playedAt.Unix(),
			winner+1,
			loser+1,
		)

		if (i+1)%batchSize == 0 || (i+1) == numMatches {
			stmt := fmt.Sprintf(`
				INSERT INTO matches (id, challenge_id, winner_id, loser_id, games_json,
					is_walkover, suspicious, played_at, winner_prev_position, loser_prev_position)
				VALUES %s;`, strings.Join(valueStrings, ","))

			_, err := tx.Exec(stmt, valueArgs...)
			if err != nil {
				tx.Rollback()
				log.Fatalf("Failed to execute batch insert: %s", err)
			}

			// Reset for the next batch
			valueStrings = make([]string, 0, batchSize)
			valueArgs = make([]interface{}, 0, batchSize*10)
			log.Info("Inserted batch", "completed", i+1, "total", numMatches)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all dummy matches.", "duration", duration)
}
