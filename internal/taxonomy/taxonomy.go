// Package taxonomy maps free-text product categories onto the closed display
// taxonomy. Stored categories are never coerced; mapping happens at display
// and filtering time only. Everything here is pure and deterministic.
package taxonomy

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// UniverseCategories is the closed set of display categories for the "tout"
// universe. The last entry is the fallback bucket.
var UniverseCategories = []string{
	"Electronique",
	"Electromenager",
	"Accessoires maison",
	"Accessoires & divers",
}

// ModeCategories is the closed set of top-level display categories for the
// "mode" universe. "Accessoires" is the fallback bucket.
var ModeCategories = []string{
	"Vêtements",
	"Chaussures",
	"Maroquinerie",
	"Accessoires",
	"Mode femme",
}

// ModeClothingSubcategories is the closed set of clothing subcategories under
// "Vêtements".
var ModeClothingSubcategories = []string{
	"Tshirt",
	"Polo",
	"Chemise",
	"Pull",
	"Veste",
	"Manteau",
	"Survêtement",
	"Pantalon",
	"Jean",
	"Short",
	"Robe",
	"Jupe",
}

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, strips diacritics and trims, so "Électroménager" and
// "electromenager" compare equal.
func Normalize(value string) string {
	lowered := strings.ToLower(value)
	stripped, _, err := transform.String(stripDiacritics, lowered)
	if err != nil {
		stripped = lowered
	}
	return strings.TrimSpace(stripped)
}

type rule struct {
	needles []string
	target  string
}

func (r rule) matches(normalized string) bool {
	for _, needle := range r.needles {
		if strings.Contains(normalized, needle) {
			return true
		}
	}
	return false
}

// Rules are ordered; the first match wins.
var universeRules = []rule{
	{[]string{"electromenager", "electro menager"}, "Electromenager"},
	{[]string{"luminaire", "electronique"}, "Electronique"},
	{[]string{"decoration", "cuisine", "accessoire maison"}, "Accessoires maison"},
}

var modeRules = []rule{
	{[]string{"vetement"}, "Vêtements"},
	{[]string{"chaussure"}, "Chaussures"},
	{[]string{"maroquinerie"}, "Maroquinerie"},
	// "modd femme" is a recurring typo in legacy data.
	{[]string{"mode femme", "modd femme"}, "Mode femme"},
}

var clothingRules = []rule{
	{[]string{"t-shirt", "tshirt", "tee shirt", "tee-shirt"}, "Tshirt"},
	{[]string{"polo"}, "Polo"},
	{[]string{"chemise"}, "Chemise"},
	{[]string{"pull", "sweat"}, "Pull"},
	{[]string{"veste", "blouson"}, "Veste"},
	{[]string{"manteau", "doudoune"}, "Manteau"},
	// Before "pantalon" so "pantalon de jogging" stays a tracksuit.
	{[]string{"survet", "jogging"}, "Survêtement"},
	{[]string{"pantalon"}, "Pantalon"},
	{[]string{"jean"}, "Jean"},
	{[]string{"short"}, "Short"},
	{[]string{"robe"}, "Robe"},
	{[]string{"jupe"}, "Jupe"},
}

// MapUniverseCategory buckets a free-text category into UniverseCategories.
func MapUniverseCategory(rawCategory string) string {
	category := Normalize(rawCategory)
	for _, r := range universeRules {
		if r.matches(category) {
			return r.target
		}
	}
	return "Accessoires & divers"
}

// MapModeCategory buckets a free-text category into ModeCategories. A category
// that resolves to a clothing subcategory is always classified "Vêtements",
// whatever else it might also match.
func MapModeCategory(rawCategory string) string {
	if InferModeSubcategory(rawCategory) != "" {
		return "Vêtements"
	}
	category := Normalize(rawCategory)
	for _, r := range modeRules {
		if r.matches(category) {
			return r.target
		}
	}
	return "Accessoires"
}

// InferModeSubcategory resolves a free-text category to a built-in clothing
// subcategory, or "" when none applies.
func InferModeSubcategory(rawCategory string) string {
	category := Normalize(rawCategory)
	for _, r := range clothingRules {
		if r.matches(category) {
			return r.target
		}
	}
	return ""
}

// MatchModeSubcategory resolves a free-text category against the caller's
// registered subcategory names first, so admin-created subcategories take
// precedence over the built-in heuristic, then falls back to inference.
func MatchModeSubcategory(rawCategory string, known []string) string {
	target := Normalize(rawCategory)
	if target != "" {
		for _, name := range known {
			if Normalize(name) == target {
				return name
			}
		}
	}
	return InferModeSubcategory(rawCategory)
}
