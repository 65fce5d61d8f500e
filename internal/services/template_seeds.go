package services

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"taskora/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"
)

//go:embed template_seeds.yaml
var templateSeedsYAML []byte

// templateSeed is one starter template as declared in template_seeds.yaml
type templateSeed struct {
	Title       string                `yaml:"title"`
	Description string                `yaml:"description"`
	Category    string                `yaml:"category"`
	Priority    models.TaskPriority   `yaml:"priority"`
	Items       []models.TemplateItem `yaml:"items"`
}

// loadTemplateSeeds parses the embedded starter catalog
func loadTemplateSeeds() ([]templateSeed, error) {
	var doc struct {
		Templates []templateSeed `yaml:"templates"`
	}
	if err := yaml.Unmarshal(templateSeedsYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse template seeds: %w", err)
	}
	return doc.Templates, nil
}

// SeedDefaults gives a fresh account the starter templates. Called once at
// registration; failures are reported but the account is already usable.
func (s *TemplateStore) SeedDefaults(ctx context.Context, userID string) error {
	seeds, err := loadTemplateSeeds()
	if err != nil {
		return err
	}
	if len(seeds) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(seeds))
	for _, seed := range seeds {
		priority := seed.Priority
		if priority == "" {
			priority = models.TaskPriorityMedium
		}
		items := seed.Items
		if items == nil {
			items = []models.TemplateItem{}
		}
		docs = append(docs, models.Template{
			ID:          primitive.NewObjectID(),
			UserID:      userID,
			Title:       seed.Title,
			Description: seed.Description,
			Category:    seed.Category,
			Priority:    priority,
			Items:       items,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed templates: %w", err)
	}
	return nil
}
