package taxonomy

import (
	"fmt"
	"regexp"
	"strings"
)

// Named swatches for the colors that show up in the catalog. Keys are
// normalized color names.
var colorMap = map[string]string{
	"noir":        "#18181b",
	"blanc":       "#f8fafc",
	"gris":        "#6b7280",
	"argent":      "#cbd5e1",
	"anthracite":  "#374151",
	"rouge":       "#dc2626",
	"bordeau":     "#7f1d1d",
	"bordeaux":    "#7f1d1d",
	"bleu":        "#2563eb",
	"bleu marine": "#1e3a8a",
	"marine":      "#1e3a8a",
	"bleu ciel":   "#0ea5e9",
	"vert":        "#16a34a",
	"kaki":        "#4d7c0f",
	"olive":       "#4d7c0f",
	"jaune":       "#facc15",
	"orange":      "#f97316",
	"rose":        "#ec4899",
	"violet":      "#7c3aed",
	"beige":       "#d6b98b",
	"creme":       "#f5f5dc",
	"marron":      "#7c2d12",
	"camel":       "#c07a42",
	"or":          "#f59e0b",
	"dore":        "#f59e0b",
	"cuivre":      "#b45309",
	"transparent": "#ffffff",
}

var (
	colorSplitRe = regexp.MustCompile(`[,;/|]+`)
	hexColorRe   = regexp.MustCompile(`(?i)^#([a-f0-9]{3}|[a-f0-9]{6})$`)
	funcColorRe  = regexp.MustCompile(`(?i)^(rgb|hsl)a?\(`)
)

// ParseColorList splits a free-text multi-value color string on the usual
// delimiters and dedupes the parts, preserving order.
func ParseColorList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, part := range colorSplitRe.Split(raw, -1) {
		value := strings.TrimSpace(part)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}

// ColorToSwatch turns a color name into something a swatch can render:
// explicit hex/rgb/hsl values pass through, known names resolve via the map,
// anything else gets a deterministic hue derived from the name.
func ColorToSwatch(color string) string {
	value := strings.TrimSpace(color)
	if value == "" {
		return "#d1d5db"
	}
	if hexColorRe.MatchString(value) || funcColorRe.MatchString(value) {
		return value
	}
	key := Normalize(value)
	if hex, ok := colorMap[key]; ok {
		return hex
	}
	return colorFromHash(key)
}

func colorFromHash(value string) string {
	var hash int32
	for _, r := range value {
		hash = r + ((hash << 5) - hash)
	}
	hue := hash % 360
	if hue < 0 {
		hue = -hue
	}
	return fmt.Sprintf("hsl(%d 65%% 50%%)", hue)
}

func uniqueImageURLs(values []string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, value := range values {
		url := strings.TrimSpace(value)
		if url == "" {
			continue
		}
		if _, ok := seen[url]; ok {
			continue
		}
		seen[url] = struct{}{}
		out = append(out, url)
	}
	return out
}

// NormalizeColorImages cleans a per-color image map: trims keys, drops empty
// entries, dedupes URLs, and merges keys that only differ by case or accents.
func NormalizeColorImages(input map[string][]string) map[string][]string {
	if len(input) == 0 {
		return nil
	}
	out := make(map[string][]string)
	canonical := make(map[string]string)
	for rawColor, rawImages := range input {
		color := strings.TrimSpace(rawColor)
		if color == "" {
			continue
		}
		images := uniqueImageURLs(rawImages)
		if len(images) == 0 {
			continue
		}
		key := Normalize(color)
		if existing, ok := canonical[key]; ok {
			color = existing
		} else {
			canonical[key] = color
		}
		out[color] = uniqueImageURLs(append(out[color], images...))
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ColorImagesFor looks up the image list for a color, matching keys
// case/accent-insensitively.
func ColorImagesFor(colorImages map[string][]string, color string) []string {
	target := Normalize(color)
	if target == "" {
		return nil
	}
	for key, images := range colorImages {
		if Normalize(key) != target {
			continue
		}
		return uniqueImageURLs(images)
	}
	return nil
}
