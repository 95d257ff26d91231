package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/1804coins/storefront-api/internal/models"
	repository "github.com/1804coins/storefront-api/internal/repositories"
	"github.com/google/uuid"
)

func price(v float64) *float64 { return &v }

// catalog is the built-in product set loaded on first boot.
var catalog = []models.Product{
	{
		Name:          "1804 Draped Bust Silver Dollar",
		Subtitle:      "The King of American Coins",
		Description:   "Museum-grade replica of the legendary Class I 1804 dollar, struck in .999 fine silver.",
		Category:      "silver",
		Image:         "/images/products/1804-draped-bust-dollar.jpg",
		Price:         189.00,
		Status:        "in-stock",
		InStock:       true,
		Featured:      true,
		StockQuantity: 25,
	},
	{
		Name:          "1907 Saint-Gaudens Double Eagle",
		Subtitle:      "High Relief Tribute",
		Description:   "Gold-layered tribute to Augustus Saint-Gaudens' masterpiece, widely considered America's most beautiful coin.",
		Category:      "gold",
		Image:         "/images/products/1907-saint-gaudens.jpg",
		Price:         249.00,
		SalePrice:     price(219.00),
		Status:        "in-stock",
		InStock:       true,
		Featured:      true,
		StockQuantity: 18,
	},
	{
		Name:          "1913 Liberty Head Nickel",
		Subtitle:      "Five Known Worldwide",
		Description:   "Faithful recreation of one of the rarest coins in existence, only five originals are known.",
		Category:      "nickel",
		Image:         "/images/products/1913-liberty-nickel.jpg",
		Price:         79.00,
		Status:        "in-stock",
		InStock:       true,
		Featured:      false,
		StockQuantity: 40,
	},
	{
		Name:          "1933 Saint-Gaudens Gold Eagle",
		Subtitle:      "The Forbidden Coin",
		Description:   "Tribute to the coin that was never legally released, the most valuable coin ever sold at auction.",
		Category:      "gold",
		Image:         "/images/products/1933-gold-eagle.jpg",
		Price:         299.00,
		Status:        "limited",
		InStock:       true,
		Featured:      true,
		StockQuantity: 10,
	},
	{
		Name:          "1943 Bronze Lincoln Cent",
		Subtitle:      "The Wartime Mistake",
		Description:   "Replica of the famous wrong-planchet error from the steel cent year.",
		Category:      "copper",
		Image:         "/images/products/1943-bronze-cent.jpg",
		Price:         49.00,
		Status:        "coming-soon",
		InStock:       false,
		Featured:      false,
		StockQuantity: 0,
	},
	{
		Name:          "1794 Flowing Hair Dollar",
		Subtitle:      "America's First Dollar",
		Description:   "Replica of the first silver dollar struck by the United States Mint, in .999 fine silver.",
		Category:      "silver",
		Image:         "/images/products/1794-flowing-hair.jpg",
		Price:         159.00,
		Status:        "pre-order",
		InStock:       true,
		Featured:      false,
		StockQuantity: 30,
	},
}

// EnsureProducts seeds the catalog when the products table is empty, so a
// fresh deployment has something to sell. An already-populated catalog is
// left untouched.
func EnsureProducts(ctx context.Context, repo repository.ProductRepository) error {

	count, err := repo.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("checking product count: %w", err)
	}

	if count > 0 {
		return nil
	}

	for i := range catalog {
		product := catalog[i]
		product.ID = uuid.New()

		if err := repo.CreateProduct(ctx, &product); err != nil {
			return fmt.Errorf("seeding product %q: %w", product.Name, err)
		}
	}

	slog.Info("Seeded product catalog", slog.Int("products", len(catalog)))

	return nil
}
