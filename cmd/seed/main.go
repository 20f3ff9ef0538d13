package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ritualplanner/internal/config"
	"ritualplanner/internal/db"
	"ritualplanner/internal/model"
	"ritualplanner/internal/repository"
)

//go:embed templates.json
var templatesJSON []byte

// SeedTemplateData is one template entry from the embedded fixture.
type SeedTemplateData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Items       []struct {
		ItemName string `json:"itemname"`
		Quantity string `json:"quantity"`
		Unit     string `json:"unit"`
	} `json:"items"`
}

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Template{}, &model.TemplateItem{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	templates, err := parseTemplates(templatesJSON)
	if err != nil {
		log.Fatalf("Failed to parse template fixture: %v", err)
	}
	log.Printf("Loaded %d templates from fixture", len(templates))

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	templateRepo := repository.NewTemplateRepository(gormDB)

	owner, err := resolveOwner(ctx, userRepo)
	if err != nil {
		log.Fatalf("Failed to resolve seed owner: %v", err)
	}
	log.Printf("Seeding templates for user %s (%s)", owner.Username, owner.Email)

	seeded, skipped, err := seedTemplates(ctx, templateRepo, owner, templates)
	if err != nil {
		log.Fatalf("Failed to seed templates: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New templates created: %d", seeded)
	log.Printf("  - Existing templates skipped: %d", skipped)
}

// parseTemplates decodes and validates the embedded fixture.
func parseTemplates(raw []byte) ([]SeedTemplateData, error) {
	var templates []SeedTemplateData
	if err := json.Unmarshal(raw, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	for _, t := range templates {
		if t.Name == "" {
			return nil, fmt.Errorf("template with empty name in fixture")
		}
	}
	return templates, nil
}

// resolveOwner finds the user named by SEED_USER_EMAIL, or creates a demo
// account when none is configured.
func resolveOwner(ctx context.Context, repo repository.UserRepository) (*model.User, error) {
	email := os.Getenv("SEED_USER_EMAIL")
	if email != "" {
		user, err := repo.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("user %s not found: %w", email, err)
		}
		return user, nil
	}

	const demoEmail = "demo@ritualplanner.local"
	user, err := repo.FindByEmail(ctx, demoEmail)
	if err == nil {
		return user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("Demo@1234"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user = &model.User{
		Name:         "Demo Planner",
		Username:     "demo",
		Email:        demoEmail,
		Phone:        "9999999999",
		PasswordHash: string(hash),
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating demo user: %w", err)
	}
	log.Println("Created demo user (password: Demo@1234)")
	return user, nil
}

// seedTemplates inserts fixture templates, skipping names the owner already has.
func seedTemplates(ctx context.Context, repo repository.TemplateRepository, owner *model.User, templates []SeedTemplateData) (seeded int, skipped int, err error) {
	for _, t := range templates {
		probe := &model.Template{UserID: owner.ID, Name: t.Name}
		existing, err := repo.FindMatching(ctx, probe)
		if err != nil && err != gorm.ErrRecordNotFound {
			return seeded, skipped, fmt.Errorf("error checking template %q: %w", t.Name, err)
		}
		if existing != nil {
			skipped++
			continue
		}

		template := &model.Template{
			UserID:      owner.ID,
			Name:        t.Name,
			Description: t.Description,
		}
		for _, item := range t.Items {
			qty, err := decimal.NewFromString(item.Quantity)
			if err != nil {
				return seeded, skipped, fmt.Errorf("template %q has invalid quantity %q: %w", t.Name, item.Quantity, err)
			}
			template.Items = append(template.Items, model.TemplateItem{
				ItemName: item.ItemName,
				Quantity: qty,
				Unit:     item.Unit,
			})
		}
		if err := repo.Create(ctx, template); err != nil {
			return seeded, skipped, fmt.Errorf("error creating template %q: %w", t.Name, err)
		}
		seeded++
	}
	return seeded, skipped, nil
}
