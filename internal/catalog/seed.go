package catalog

import "github.com/decorvista/ar-backend/internal/models"

// DefaultSeed is the built-in furniture library, served when no remote seed
// source is configured. Asset paths point at the static AR asset bundle.
func DefaultSeed() []models.CatalogEntry {
	return []models.CatalogEntry{
		{
			ModelID:      "modern_sofa_01",
			Name:         "Modern Sofa",
			Category:     "seating",
			AssetURL:     "/static/ar_assets/models/modern_sofa.glb",
			ThumbnailURL: "/static/ar_assets/thumbnails/modern_sofa.jpg",
			Description:  "Contemporary three-seater sofa with clean lines",
			Dimensions:   models.Dimensions{Width: 2.0, Height: 0.85, Depth: 0.95},
		},
		{
			ModelID:      "accent_chair_01",
			Name:         "Accent Chair",
			Category:     "seating",
			AssetURL:     "/static/ar_assets/models/accent_chair.glb",
			ThumbnailURL: "/static/ar_assets/thumbnails/accent_chair.jpg",
			Description:  "Stylish accent chair perfect for reading nooks",
			Dimensions:   models.Dimensions{Width: 0.75, Height: 0.90, Depth: 0.85},
		},
		{
			ModelID:      "coffee_table_01",
			Name:         "Coffee Table",
			Category:     "tables",
			AssetURL:     "/static/ar_assets/models/coffee_table.glb",
			ThumbnailURL: "/static/ar_assets/thumbnails/coffee_table.jpg",
			Description:  "Modern coffee table with storage",
			Dimensions:   models.Dimensions{Width: 1.2, Height: 0.45, Depth: 0.7},
		},
		{
			ModelID:      "bookshelf_01",
			Name:         "Modern Bookshelf",
			Category:     "storage",
			AssetURL:     "/static/ar_assets/models/bookshelf.glb",
			ThumbnailURL: "/static/ar_assets/thumbnails/bookshelf.jpg",
			Description:  "Tall bookshelf with multiple shelves",
			Dimensions:   models.Dimensions{Width: 1.0, Height: 2.0, Depth: 0.35},
		},
		{
			ModelID:      "floor_lamp_01",
			Name:         "Floor Lamp",
			Category:     "lighting",
			AssetURL:     "/static/ar_assets/models/floor_lamp.glb",
			ThumbnailURL: "/static/ar_assets/thumbnails/floor_lamp.jpg",
			Description:  "Elegant floor lamp with fabric shade",
			Dimensions:   models.Dimensions{Width: 0.3, Height: 1.7, Depth: 0.3},
		},
		{
			ModelID:      "dining_table_01",
			Name:         "Dining Table",
			Category:     "tables",
			AssetURL:     "/static/ar_assets/models/dining_table.glb",
			ThumbnailURL: "/static/ar_assets/thumbnails/dining_table.jpg",
			Description:  "Large dining table for 6 people",
			Dimensions:   models.Dimensions{Width: 1.8, Height: 0.75, Depth: 1.0},
		},
		{
			ModelID:      "bed_queen_01",
			Name:         "Queen Bed",
			Category:     "beds",
			AssetURL:     "/static/ar_assets/models/queen_bed.glb",
			ThumbnailURL: "/static/ar_assets/thumbnails/queen_bed.jpg",
			Description:  "Comfortable queen size bed with headboard",
			Dimensions:   models.Dimensions{Width: 1.6, Height: 0.6, Depth: 2.0},
		},
		{
			ModelID:      "nightstand_01",
			Name:         "Nightstand",
			Category:     "storage",
			AssetURL:     "/static/ar_assets/models/nightstand.glb",
			ThumbnailURL: "/static/ar_assets/thumbnails/nightstand.jpg",
			Description:  "Bedside table with drawer",
			Dimensions:   models.Dimensions{Width: 0.5, Height: 0.6, Depth: 0.4},
		},
		{
			ModelID:      "plant_large_01",
			Name:         "Large Plant",
			Category:     "decor",
			AssetURL:     "/static/ar_assets/models/plant_large.glb",
			ThumbnailURL: "/static/ar_assets/thumbnails/plant_large.jpg",
			Description:  "Large decorative plant in ceramic pot",
			Dimensions:   models.Dimensions{Width: 0.4, Height: 1.2, Depth: 0.4},
		},
		{
			ModelID:      "rug_large_01",
			Name:         "Area Rug",
			Category:     "decor",
			AssetURL:     "/static/ar_assets/models/area_rug.glb",
			ThumbnailURL: "/static/ar_assets/thumbnails/area_rug.jpg",
			Description:  "Large area rug with modern pattern",
			Dimensions:   models.Dimensions{Width: 2.4, Height: 0.02, Depth: 1.8},
		},
		{
			ModelID:      "antique_desk_01",
			Name:         "Antique Wooden Desk",
			Category:     "tables",
			AssetURL:     "/static/ar_assets/models/antique_wooden_desk_with_props.glb",
			ThumbnailURL: "/static/ar_assets/thumbnails/antique_desk.jpg",
			Description:  "Antique wooden writing desk with props",
			Dimensions:   models.Dimensions{Width: 1.6, Height: 0.8, Depth: 0.9},
		},
		{
			ModelID:      "mirror_decorative_01",
			Name:         "Decorative Mirror",
			Category:     "decor",
			AssetURL:     "/static/ar_assets/models/mirror.glb",
			ThumbnailURL: "/static/ar_assets/thumbnails/mirror.jpg",
			Description:  "Decorative wall mirror with slim frame",
			Dimensions:   models.Dimensions{Width: 0.8, Height: 1.2, Depth: 0.1},
		},
		{
			ModelID:      "kitchen_setup_01",
			Name:         "Kitchen Setup",
			Category:     "kitchen",
			AssetURL:     "/static/ar_assets/models/kitchen.glb",
			ThumbnailURL: "/static/ar_assets/thumbnails/kitchen.jpg",
			Description:  "Complete kitchen setup with counter and cabinets",
			Dimensions:   models.Dimensions{Width: 3.0, Height: 2.5, Depth: 2.0},
		},
	}
}
