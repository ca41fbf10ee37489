// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"nexus/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

var colleges = []string{
	"College of Engineering",
	"School of Design",
	"College of Science",
	"School of Management",
	"College of Arts",
}

// productTemplates give each category plausible titles and spec keys instead
// of fully random noise.
var productTemplates = map[string][]string{
	models.CategoryNotebook:   {"ThinkPad T14", "MacBook Air M2", "Dell XPS 13", "HP Pavilion 15", "ASUS Zephyrus G14"},
	models.CategoryGadget:     {"Sony WH-1000XM4", "Kindle Paperwhite", "Raspberry Pi 4", "Logitech MX Master 3", "iPad 9th Gen"},
	models.CategoryStationery: {"Drafting table", "Scientific calculator", "Sketchbook bundle", "Mechanical pencil set", "Whiteboard 60x90"},
	models.CategoryOther:      {"Mini fridge", "Study lamp", "Hostel mattress", "Badminton racket", "Cycle (single speed)"},
}

var conditions = []string{
	models.ConditionBrandNew,
	models.ConditionLikeNew,
	models.ConditionGood,
	models.ConditionFair,
}

func (f *Factory) pastTime(maxDays int) time.Time {
	daysBack := f.r.Intn(maxDays)
	hoursBack := f.r.Intn(24)
	minsBack := f.r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

// CreateUsers persists count accounts, each with a student profile. The first
// few usernames are stable so local logins stay predictable across reseeds.
func (f *Factory) CreateUsers(count int) ([]models.User, error) {
	users := make([]models.User, 0, count)
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	if count >= 2 {
		for _, name := range []string{"aarav", "test"} {
			user := models.User{
				Username:  name,
				FirstName: strings.ToUpper(name[:1]) + name[1:],
				Email:     fmt.Sprintf("%s@example.com", name),
				Password:  string(hashedPassword),
				Profile: &models.StudentProfile{
					College: colleges[0],
					Avatar:  fmt.Sprintf("https://i.pravatar.cc/150?u=%s", name),
					Bio:     "Early adopter.",
				},
			}
			if err := f.db.Create(&user).Error; err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		first := gofakeit.FirstName()
		username := strings.ToLower(fmt.Sprintf("%s%d", first, f.r.Intn(1000)))

		user := models.User{
			Username:  username,
			FirstName: first,
			Email:     fmt.Sprintf("%s@example.com", username),
			Password:  string(hashedPassword),
			Profile: &models.StudentProfile{
				College:    colleges[f.r.Intn(len(colleges))],
				Avatar:     fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
				IsVerified: f.r.Intn(3) == 0,
				Bio:        gofakeit.Sentence(8),
			},
		}
		if err := f.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

// CreateProducts persists count listings spread across the given sellers,
// with distinct created_at values so list ordering is visible in the UI.
func (f *Factory) CreateProducts(users []models.User, count int) ([]models.Product, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("cannot seed products without users")
	}

	categories := make([]string, 0, len(productTemplates))
	for c := range productTemplates {
		categories = append(categories, c)
	}

	products := make([]models.Product, 0, count)
	for i := 0; i < count; i++ {
		seller := users[f.r.Intn(len(users))]
		category := categories[f.r.Intn(len(categories))]
		titles := productTemplates[category]

		price := decimal.NewFromInt(int64(500 + f.r.Intn(40000))).
			Add(decimal.NewFromInt(int64(f.r.Intn(100))).Div(decimal.NewFromInt(100)))

		product := models.Product{
			SellerID:    seller.ID,
			Title:       titles[f.r.Intn(len(titles))],
			Description: gofakeit.Paragraph(1, 3, 8, " "),
			Price:       price,
			Image:       fmt.Sprintf("https://picsum.photos/seed/%s/640/480", uuid.NewString()),
			Category:    category,
			Condition:   conditions[f.r.Intn(len(conditions))],
			Specs: datatypes.JSONMap{
				"color": gofakeit.Color(),
				"age":   fmt.Sprintf("%d months", 1+f.r.Intn(36)),
			},
			CreatedAt: f.pastTime(90),
			IsActive:  f.r.Intn(10) != 0,
		}
		if f.r.Intn(3) == 0 {
			product.CanRent = true
			product.RentPrice = decimal.NewNullDecimal(price.Div(decimal.NewFromInt(20)).Round(2))
		}

		if err := f.db.Create(&product).Error; err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

// CreateComments scatters a few comments over the listings and returns how
// many were written.
func (f *Factory) CreateComments(users []models.User, products []models.Product) (int, error) {
	if len(users) == 0 {
		return 0, nil
	}

	total := 0
	for _, product := range products {
		for i := 0; i < f.r.Intn(4); i++ {
			author := users[f.r.Intn(len(users))]
			comment := models.Comment{
				ProductID: product.ID,
				UserID:    author.ID,
				Text:      gofakeit.Sentence(6 + f.r.Intn(8)),
				Timestamp: product.CreatedAt.Add(time.Duration(1+f.r.Intn(72)) * time.Hour),
			}
			if err := f.db.Create(&comment).Error; err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}
