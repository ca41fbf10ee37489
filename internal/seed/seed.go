// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumProducts int
	ShouldClean bool
}

// Seed populates the database with demo accounts, listings and comments.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d products...", opts.NumUsers, opts.NumProducts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	f := NewFactory(db)

	users, err := f.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	products, err := f.CreateProducts(users, opts.NumProducts)
	if err != nil {
		return fmt.Errorf("failed to create products: %w", err)
	}
	log.Printf("✓ %d products created", len(products))

	comments, err := f.CreateComments(users, products)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", comments)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE comments, products, student_profiles, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
