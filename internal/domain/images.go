package domain

import "strings"

// NormalizeImages merges the legacy single-image field with the image list,
// trimming and deduplicating. The legacy value, when present, wins position 0
// so older records keep their primary photo.
func NormalizeImages(images []string, legacy string) []string {
	merged := make([]string, 0, len(images)+1)
	if v := strings.TrimSpace(legacy); v != "" {
		merged = append(merged, v)
	}
	merged = append(merged, images...)

	var out []string
	seen := make(map[string]struct{})
	for _, raw := range merged {
		url := strings.TrimSpace(raw)
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

// NormalizeImages re-derives the image/images pair so that images is the
// full deduplicated list and image is its first entry.
func (p *Product) NormalizeImages() {
	images := NormalizeImages(p.Images, p.Image)
	if len(images) == 0 {
		return
	}
	p.Image = images[0]
	p.Images = images
}
