package domain

// Universe is the top-level product domain a product belongs to.
type Universe string

const (
	UniverseMode Universe = "mode"
	UniverseTout Universe = "tout"
)

// IsValid reports whether u is one of the two known universes.
func (u Universe) IsValid() bool {
	return u == UniverseMode || u == UniverseTout
}

// Product represents a catalog product. The category field stays free-text;
// it is only mapped onto the display taxonomy when rendering.
type Product struct {
	ID          string              `json:"id"`
	Slug        string              `json:"slug"`
	Name        string              `json:"name"`
	Price       int64               `json:"price"`
	Category    string              `json:"category"`
	Universe    Universe            `json:"universe"`
	Image       string              `json:"image"`
	Images      []string            `json:"images,omitempty"`
	Description string              `json:"description"`
	Color       string              `json:"color,omitempty"`
	ColorImages map[string][]string `json:"colorImages,omitempty"`
	Sizes       []string            `json:"sizes,omitempty"`
}

// ProductInput carries the fields an admin supplies when creating a product.
// ID and slug are generated by the service.
type ProductInput struct {
	Name        string              `json:"name" validate:"required"`
	Price       int64               `json:"price" validate:"gte=0"`
	Category    string              `json:"category" validate:"required"`
	Universe    Universe            `json:"universe" validate:"required,oneof=mode tout"`
	Image       string              `json:"image"`
	Images      []string            `json:"images"`
	Description string              `json:"description" validate:"required"`
	Color       string              `json:"color"`
	ColorImages map[string][]string `json:"colorImages"`
	Sizes       []string            `json:"sizes"`
}

// ProductPatch carries a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Name        *string             `json:"name"`
	Price       *int64              `json:"price"`
	Category    *string             `json:"category"`
	Universe    *Universe           `json:"universe"`
	Image       *string             `json:"image"`
	Images      []string            `json:"images"`
	Description *string             `json:"description"`
	Color       *string             `json:"color"`
	ColorImages map[string][]string `json:"colorImages"`
	Sizes       []string            `json:"sizes"`
}

// CategoryInfo pairs a category name with its current product usage count.
type CategoryInfo struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
