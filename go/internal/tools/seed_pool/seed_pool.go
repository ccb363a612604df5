package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kpatel744/auctioneer/go/internal/dbconfig"
	"github.com/kpatel744/auctioneer/go/internal/players"
	"github.com/kpatel744/auctioneer/go/internal/store/postgres"
)

func main() {
	roomID := flag.String("room", "", "room whose pool to seed")
	file := flag.String("file", "go/internal/assets/players.json", "JSON file with player entries")
	flag.Parse()

	if *roomID == "" {
		fmt.Fprintln(os.Stderr, "-room is required")
		os.Exit(1)
	}

	ctx := context.Background()

	// 1) Load the player list
	data, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", *file, err)
		os.Exit(1)
	}
	var entries []players.CreatePlayerRequest
	if err := json.Unmarshal(data, &entries); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal players: %v\n", err)
		os.Exit(1)
	}

	// 2) Connect to DB
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	docStore := postgres.NewStore(pool)
	if err := docStore.EnsureSchema(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ensure schema: %v\n", err)
		os.Exit(1)
	}

	// 3) Seed the pool
	app := players.NewApp(docStore.Players())
	created, err := app.CreatePlayers(ctx, *roomID, entries)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed pool: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d of %d players into room %s\n", len(created), len(entries), *roomID)
}
