package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		godotenv.Load("../../.env")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set. Please check your .env file.")
	}

	fmt.Println("Attempting to connect to PostgreSQL...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to the database. Error: %v\n(Check your connection string, password, and internet access)", err)
	}
	defer conn.Close(context.Background())

	var version string
	if err := conn.QueryRow(context.Background(), "SELECT version()").Scan(&version); err != nil {
		log.Fatalf("❌ Query failed: %v", err)
	}

	var dbSize string
	if err := conn.QueryRow(context.Background(), "SELECT pg_size_pretty(pg_database_size(current_database()))").Scan(&dbSize); err == nil {
		fmt.Printf("📦 Current Database Size: %s\n", dbSize)
	}

	var jobCount int
	if err := conn.QueryRow(context.Background(), "SELECT count(*) FROM jobs").Scan(&jobCount); err == nil {
		fmt.Printf("🗄️ Stored jobs: %d\n", jobCount)
	}

	fmt.Println("✅ Successfully connected to the database!")
	fmt.Println("🚀 Database Version:", version)
}
