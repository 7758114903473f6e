package catalog

import (
	"context"
	"log"

	models "Meeple/models/postgres"

	"gorm.io/gorm"
)

// SeedCategories fills the local category table from the upstream category
// endpoint. It only runs when the table is empty; a later change in the
// upstream list requires a manual reseed.
func SeedCategories(ctx context.Context, db *gorm.DB, client *Client) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	entries, err := client.Categories(ctx)
	if err != nil {
		return err
	}

	categories := make([]models.Category, 0, len(entries))
	for _, entry := range entries {
		categories = append(categories, models.Category{ID: entry.ID, Name: entry.Name})
	}
	if len(categories) == 0 {
		return nil
	}

	if err := db.Create(&categories).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d categories", len(categories))
	return nil
}

// CategoryNames maps each game's name to the display names of its
// categories, resolved against the local table. Games without categories
// map to an empty slice; the upstream API is never called here.
func CategoryNames(db *gorm.DB, games []Game) map[string][]string {
	categoryDict := make(map[string][]string, len(games))
	for _, game := range games {
		ids := make([]string, 0, len(game.Categories))
		for _, ref := range game.Categories {
			ids = append(ids, ref.ID)
		}

		names := []string{}
		if len(ids) > 0 {
			if err := db.Model(&models.Category{}).
				Where("id IN (?)", ids).
				Pluck("name", &names).Error; err != nil {
				log.Printf("Error looking up category names: %v", err)
			}
		}
		categoryDict[game.Name] = names
	}
	return categoryDict
}
