// Package catalog fetches meal records from a TheMealDB-compatible catalog.
package catalog

import (
	"encoding/json"
	"strings"
)

// Meal is one catalog record. It is treated as immutable once fetched.
type Meal struct {
	ID           string   `json:"id"                     yaml:"id"`
	Name         string   `json:"name"                   yaml:"name"`
	Category     string   `json:"category"               yaml:"category"`
	Area         string   `json:"area,omitempty"         yaml:"area,omitempty"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty" yaml:"thumbnail_url,omitempty"`
	Tags         []string `json:"tags,omitempty"         yaml:"tags,omitempty"`
	Instructions string   `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	SourceURL    string   `json:"source_url,omitempty"   yaml:"source_url,omitempty"`
	VideoURL     string   `json:"video_url,omitempty"    yaml:"video_url,omitempty"`
}

// wireMeal mirrors the catalog's JSON field names. Every field is optional.
type wireMeal struct {
	ID           string `json:"idMeal"`
	Name         string `json:"strMeal"`
	Category     string `json:"strCategory"`
	Area         string `json:"strArea"`
	Thumbnail    string `json:"strMealThumb"`
	Tags         string `json:"strTags"`
	Instructions string `json:"strInstructions"`
	Source       string `json:"strSource"`
	Youtube      string `json:"strYoutube"`
}

// searchResponse is the body of a shard request. A null or missing "meals"
// field means the shard has no records.
type searchResponse struct {
	Meals []json.RawMessage `json:"meals"`
}

func (w wireMeal) toMeal() Meal {
	return Meal{
		ID:           w.ID,
		Name:         w.Name,
		Category:     w.Category,
		Area:         w.Area,
		ThumbnailURL: w.Thumbnail,
		Tags:         splitTags(w.Tags),
		Instructions: w.Instructions,
		SourceURL:    w.Source,
		VideoURL:     w.Youtube,
	}
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// decodeShard parses a shard body. Records that fail to decode (e.g. a field
// with an unexpected type) are skipped rather than failing the shard.
func decodeShard(body []byte) ([]Meal, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	meals := make([]Meal, 0, len(resp.Meals))
	for _, raw := range resp.Meals {
		var w wireMeal
		if err := json.Unmarshal(raw, &w); err != nil {
			continue
		}
		meals = append(meals, w.toMeal())
	}
	return meals, nil
}
