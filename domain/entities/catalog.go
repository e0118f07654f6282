package entities

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// MaxAutocompleteChoices is the platform limit on suggestion lists
const MaxAutocompleteChoices = 25

//go:embed catalog.yaml
var catalogYAML []byte

// TierStyle holds the presentation attributes of a tier
type TierStyle struct {
	Name  Tier   `yaml:"name"`
	Color string `yaml:"color"`
	Image string `yaml:"image"`
}

// Catalog is the fixed list of species plus tier styling
type Catalog struct {
	Species []string    `yaml:"species"`
	Tiers   []TierStyle `yaml:"tiers"`

	colors map[Tier]int
	images map[Tier]string
}

var defaultCatalog = mustParseCatalog(catalogYAML)

// DefaultCatalog returns the catalog embedded in the binary
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// ParseCatalog decodes a YAML catalog document
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if len(c.Species) == 0 {
		return nil, fmt.Errorf("catalog has no species")
	}

	c.colors = make(map[Tier]int, len(c.Tiers))
	c.images = make(map[Tier]string, len(c.Tiers))
	for _, style := range c.Tiers {
		if !style.Name.IsValid() {
			return nil, fmt.Errorf("catalog styles unknown tier %q", style.Name)
		}
		color, err := strconv.ParseInt(style.Color, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q for tier %s: %w", style.Color, style.Name, err)
		}
		c.colors[style.Name] = int(color)
		c.images[style.Name] = style.Image
	}
	return &c, nil
}

func mustParseCatalog(data []byte) *Catalog {
	c, err := ParseCatalog(data)
	if err != nil {
		panic(err)
	}
	return c
}

// Catalog returns c itself, so a fixed catalog can be used wherever a
// provider of the current catalog is expected
func (c *Catalog) Catalog() *Catalog {
	return c
}

// FilterSpecies returns catalog species containing query (case-insensitive),
// in catalog order, capped at limit
func (c *Catalog) FilterSpecies(query string, limit int) []string {
	if limit <= 0 || limit > MaxAutocompleteChoices {
		limit = MaxAutocompleteChoices
	}
	needle := strings.ToLower(query)

	matches := make([]string, 0, limit)
	for _, species := range c.Species {
		if !strings.Contains(strings.ToLower(species), needle) {
			continue
		}
		matches = append(matches, species)
		if len(matches) == limit {
			break
		}
	}
	return matches
}

// HasSpecies reports whether the species is in the catalog
func (c *Catalog) HasSpecies(species string) bool {
	for _, s := range c.Species {
		if s == species {
			return true
		}
	}
	return false
}

// TierColor returns the embed color for a tier, or 0 when unstyled
func (c *Catalog) TierColor(t Tier) int {
	return c.colors[t]
}

// TierImage returns the badge image URL for a tier
func (c *Catalog) TierImage(t Tier) string {
	return c.images[t]
}
