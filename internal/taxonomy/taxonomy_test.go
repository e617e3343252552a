package taxonomy

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Électroménager", "electromenager"},
		{"ELECTROMENAGER", "electromenager"},
		{"  Vêtements  ", "vetements"},
		{"Survêtement", "survetement"},
		{"déco", "deco"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMapUniverseCategory(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Électroménager", "Electromenager"},
		{"electro menager", "Electromenager"},
		{"Luminaire", "Electronique"},
		{"Petite électronique", "Electronique"},
		{"Décoration", "Accessoires maison"},
		{"Ustensiles de cuisine", "Accessoires maison"},
		{"Accessoire maison", "Accessoires maison"},
		{"Montres", "Accessoires & divers"},
		{"", "Accessoires & divers"},
	}

	for _, tt := range tests {
		if got := MapUniverseCategory(tt.input); got != tt.want {
			t.Errorf("MapUniverseCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMapModeCategory(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Vêtements", "Vêtements"},
		{"vetement homme", "Vêtements"},
		{"Chaussures", "Chaussures"},
		{"chaussure de sport", "Chaussures"},
		{"Maroquinerie", "Maroquinerie"},
		{"Mode Femme", "Mode femme"},
		{"Modd femme", "Mode femme"},
		{"Sacs", "Accessoires"},
		{"", "Accessoires"},
		// Clothing subcategories always classify as Vêtements, even when
		// the raw text matches nothing else.
		{"T-Shirt", "Vêtements"},
		{"tshirt oversize", "Vêtements"},
		{"Robe de soirée", "Vêtements"},
	}

	for _, tt := range tests {
		if got := MapModeCategory(tt.input); got != tt.want {
			t.Errorf("MapModeCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestInferModeSubcategory(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"T-Shirt", "Tshirt"},
		{"tee shirt col V", "Tshirt"},
		{"Polo piqué", "Polo"},
		{"Chemise en lin", "Chemise"},
		{"Sweat à capuche", "Pull"},
		{"Blouson cuir", "Veste"},
		{"Doudoune légère", "Manteau"},
		{"Pantalon de jogging", "Survêtement"},
		{"Survêt complet", "Survêtement"},
		{"Pantalon chino", "Pantalon"},
		{"Jean slim", "Jean"},
		{"Robe d'été", "Robe"},
		{"Chaussures", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := InferModeSubcategory(tt.input); got != tt.want {
			t.Errorf("InferModeSubcategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMatchModeSubcategory(t *testing.T) {
	known := []string{"Tshirt", "Polo", "Casquettes"}

	tests := []struct {
		input string
		want  string
	}{
		// Registered names win, accent and case insensitively.
		{"casquettes", "Casquettes"},
		{"CASQUETTES", "Casquettes"},
		{"tshirt", "Tshirt"},
		// Unregistered names fall back to inference.
		{"tee shirt", "Tshirt"},
		{"chemise", "Chemise"},
		{"bonnet", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := MatchModeSubcategory(tt.input, known); got != tt.want {
			t.Errorf("MatchModeSubcategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestProperty_MappingsStayInClosedSets(t *testing.T) {
	properties := gopter.NewProperties(nil)

	inSet := func(value string, set []string) bool {
		for _, s := range set {
			if s == value {
				return true
			}
		}
		return false
	}

	properties.Property("universe mapping lands in UniverseCategories", prop.ForAll(
		func(raw string) bool {
			return inSet(MapUniverseCategory(raw), UniverseCategories)
		},
		gen.AnyString(),
	))

	properties.Property("mode mapping lands in ModeCategories", prop.ForAll(
		func(raw string) bool {
			return inSet(MapModeCategory(raw), ModeCategories)
		},
		gen.AnyString(),
	))

	properties.Property("subcategory inference lands in ModeClothingSubcategories or empty", prop.ForAll(
		func(raw string) bool {
			sub := InferModeSubcategory(raw)
			return sub == "" || inSet(sub, ModeClothingSubcategories)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_NormalizeIsIdempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("normalizing twice equals normalizing once", prop.ForAll(
		func(raw string) bool {
			once := Normalize(raw)
			return Normalize(once) == once
		},
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
