package models

// ProductCategory groups products in the catalog.
type ProductCategory struct {
	CategoryID   int64  `json:"category_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	UsageContext string `json:"usage_context"`
}

// Product is one catalog item.
type Product struct {
	ProductID           int64  `json:"product_id"`
	TypeID              int64  `json:"type_id"`
	CategoryID          int64  `json:"category_id"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	ImageURL            string `json:"image_url"`
	UsageRecommendation string `json:"usage_recommendation"`
	IsActive            bool   `json:"is_active"`
}

// ProductNutrition is the nutrition table for one product serving.
type ProductNutrition struct {
	NutritionID     int64   `json:"nutrition_id"`
	ProductID       int64   `json:"product_id"`
	ServingSize     string  `json:"serving_size"`
	EnergyKcal      float64 `json:"energy_kcal"`
	ProteinG        float64 `json:"protein_g"`
	CarbsG          float64 `json:"carbs_g"`
	SugarsG         float64 `json:"sugars_g"`
	SodiumMg        float64 `json:"sodium_mg"`
	PotassiumMg     float64 `json:"potassium_mg"`
	MagnesiumMg     float64 `json:"magnesium_mg"`
	CaffeineMg      float64 `json:"caffeine_mg"`
	OtherComponents string  `json:"other_components"`
}

// ProductFlavor is one available flavor of a product.
type ProductFlavor struct {
	FlavorID  int64  `json:"flavor_id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
}

// ProductDetail aggregates everything the product screen shows.
type ProductDetail struct {
	Product   Product          `json:"product"`
	Nutrition ProductNutrition `json:"nutrition"`
	Flavors   []ProductFlavor  `json:"flavors"`
}
