// Command main runs the database seeder for the Nexus marketplace.
package main

import (
	"flag"
	"log"

	"nexus/internal/config"
	"nexus/internal/database"
	"nexus/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numProducts := flag.Int("products", 80, "Number of products to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d products, clean=%v\n", *numUsers, *numProducts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumProducts: *numProducts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
