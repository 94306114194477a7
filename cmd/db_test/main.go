package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go-vagas-automation/internal/database"

	"github.com/joho/godotenv"
)

// Manual connectivity check for the listings database.
func main() {
	if err := godotenv.Load(".env"); err != nil {
		godotenv.Load("../../.env") // Fallback
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set. Please check your .env file.")
	}

	fmt.Println("Attempting to connect to PostgreSQL...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := database.ConnectDB(ctx, dbURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to the database. Error: %v\n(Check your connection string, password, and ensure you have internet access)", err)
	}
	defer repo.Close()

	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("❌ Schema check failed: %v", err)
	}

	stats, err := repo.Stats(ctx)
	if err != nil {
		log.Fatalf("❌ Query failed: %v", err)
	}

	fmt.Println("✅ Successfully connected to the database!")
	fmt.Printf("📦 Stored listings: %d total, %d in the last 24h\n", stats.Total, stats.Last24h)
	for src, n := range stats.BySource {
		fmt.Printf("   %s: %d\n", src, n)
	}
}
