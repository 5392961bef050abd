// Package catalog seeds the product catalog with the storefront's
// kimono line.
package catalog

import (
	"context"
	"fmt"

	"github.com/wuwei-shop/storefront/internal/domain"
	"github.com/wuwei-shop/storefront/internal/port"
)

var allSizes = []string{"XS", "S", "M", "L", "XL", "2XL"}

var seedProducts = []domain.Product{
	{
		Name:        "My Brain Has Too Many Tabs Open",
		Description: "Perfect for those with busy minds! This vibrant kimono celebrates the beautiful chaos of neurodivergent thinking.",
		Price:       "89.99",
		Image:       "/api/assets/wuwei-5.png",
		Sizes:       allSizes,
		InStock:     15,
		Category:    "kimono",
		Featured:    true,
	},
	{
		Name:        "My Brain Has Too Many Tabs Open - Rainbow",
		Description: "The rainbow edition of our popular design! Celebrate neurodiversity with this colorful, rainbow-sleeved kimono.",
		Price:       "94.99",
		Image:       "/api/assets/wuwei-6.png",
		Sizes:       allSizes,
		InStock:     12,
		Category:    "kimono",
		Featured:    true,
	},
	{
		Name:        "My Brain Has Too Many Tabs Open - Purple",
		Description: "Bold and beautiful purple kimono perfect for expressing your neurodivergent pride in style.",
		Price:       "92.99",
		Image:       "/api/assets/wuwei-7.png",
		Sizes:       allSizes,
		InStock:     18,
		Category:    "kimono",
		Featured:    true,
	},
	{
		Name:        "Please Hold, Electric Meatball is Malfunctioning",
		Description: "A humorous take on brain fog days! This bright blue kimono is perfect for those challenging moments.",
		Price:       "91.99",
		Image:       "/api/assets/wuwei-8.png",
		Sizes:       allSizes,
		InStock:     20,
		Category:    "kimono",
		Featured:    true,
	},
	{
		Name:        "Please Hold While My Electric Meatball is Malfunctioning",
		Description: "The black edition with colorful accents - perfect for expressing your neurodivergent humor.",
		Price:       "93.99",
		Image:       "/api/assets/wuwei-9.png",
		Sizes:       allSizes,
		InStock:     14,
		Category:    "kimono",
		Featured:    false,
	},
}

// Seed inserts the kimono products unless the catalog already has entries.
func Seed(ctx context.Context, repo port.CatalogRepository) error {
	existing, err := repo.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("repo.ListProducts: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, p := range seedProducts {
		if _, err := repo.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("repo.CreateProduct[%s]: %w", p.Name, err)
		}
	}
	return nil
}
