// Package content loads the site catalog: copy, hero media and marquee track
// definitions. The catalog is YAML; a default is embedded in the binary and
// may be replaced by a file on disk that is watched for changes.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/scicolab/scico/internal/domain/model"
)

//go:embed site.yaml
var defaultCatalog []byte

// ErrInvalidCatalog wraps every validation failure returned by Parse.
var ErrInvalidCatalog = errors.New("invalid content catalog")

// Catalog is the parsed site content.
type Catalog struct {
	Site     Site      `yaml:"site"`
	Nav      []NavItem `yaml:"nav"`
	Intro    Intro     `yaml:"intro"`
	Hero     Hero      `yaml:"hero"`
	Tracks   []Track   `yaml:"tracks"`
	Podcasts []string  `yaml:"podcasts"`
	Sections []Section `yaml:"sections"`
}

// Site holds the page-level copy.
type Site struct {
	Title       string `yaml:"title"`
	Tagline     string `yaml:"tagline"`
	Description string `yaml:"description"`
}

// NavItem is one link of the navigation pill.
type NavItem struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// Intro tunes the page-level intro handling.
type Intro struct {
	Letters       string        `yaml:"letters"`
	SafetyTimeout time.Duration `yaml:"safety_timeout"`
	Handoff       time.Duration `yaml:"handoff"`
}

// Hero describes the hero media.
type Hero struct {
	Video          string        `yaml:"video"`
	Images         []string      `yaml:"images"`
	Rotation       time.Duration `yaml:"rotation"`
	BaseRadius     float64       `yaml:"base_radius"`
	FrontThreshold float64       `yaml:"front_threshold"`
}

// Track is the YAML form of a marquee track.
type Track struct {
	Name         string        `yaml:"name"`
	Placeholder  string        `yaml:"placeholder"`
	Image        string        `yaml:"image"`
	Items        int           `yaml:"items"`
	ItemWidth    float64       `yaml:"item_width"`
	Period       time.Duration `yaml:"period"`
	Direction    string        `yaml:"direction"`
	PauseOnHover bool          `yaml:"pause_on_hover"`
}

// Model converts t to the domain track.
func (t Track) Model() model.Track {
	return model.Track{
		Name:         t.Name,
		Placeholder:  model.PlaceholderKind(t.Placeholder),
		Items:        t.Items,
		ItemWidth:    t.ItemWidth,
		Period:       t.Period,
		Direction:    model.Direction(t.Direction),
		PauseOnHover: t.PauseOnHover,
	}
}

// ImageURL returns the image of item n (1-based). A "{n}" in the pattern is
// replaced by the item number.
func (t Track) ImageURL(n int) string {
	return strings.ReplaceAll(t.Image, "{n}", strconv.Itoa(n))
}

// Section is one content block of the page. Body is markdown.
type Section struct {
	ID         string `yaml:"id"`
	Eyebrow    string `yaml:"eyebrow"`
	Title      string `yaml:"title"`
	Body       string `yaml:"body"`
	Track      string `yaml:"track"`
	ExtraTrack string `yaml:"extra_track"`
	CTA        string `yaml:"cta"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads and parses the catalog at path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode content catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Track returns the track named name.
func (c *Catalog) Track(name string) (Track, bool) {
	for _, t := range c.Tracks {
		if t.Name == name {
			return t, true
		}
	}
	return Track{}, false
}

// ModelTracks returns every track as a domain track.
func (c *Catalog) ModelTracks() []model.Track {
	out := make([]model.Track, 0, len(c.Tracks))
	for _, t := range c.Tracks {
		out = append(out, t.Model())
	}
	return out
}

func (c *Catalog) validate() error {
	if c.Intro.Letters == "" {
		c.Intro.Letters = "SCICO"
	}
	if c.Hero.Rotation <= 0 {
		c.Hero.Rotation = 7 * time.Second
	}

	seen := make(map[string]bool, len(c.Tracks))
	for i, t := range c.Tracks {
		switch {
		case t.Name == "":
			return fmt.Errorf("%w: track %d has no name", ErrInvalidCatalog, i)
		case seen[t.Name]:
			return fmt.Errorf("%w: duplicate track %q", ErrInvalidCatalog, t.Name)
		case t.Items <= 0 || t.ItemWidth <= 0:
			return fmt.Errorf("%w: track %q needs positive items and item_width", ErrInvalidCatalog, t.Name)
		case t.Period <= 0:
			return fmt.Errorf("%w: track %q needs a positive period", ErrInvalidCatalog, t.Name)
		case t.Direction != string(model.DirectionLeft) && t.Direction != string(model.DirectionRight):
			return fmt.Errorf("%w: track %q direction must be left or right", ErrInvalidCatalog, t.Name)
		}
		if _, ok := model.PlaceholderKind(t.Placeholder).Style(); !ok {
			return fmt.Errorf("%w: track %q has unknown placeholder %q", ErrInvalidCatalog, t.Name, t.Placeholder)
		}
		seen[t.Name] = true
	}

	for _, s := range c.Sections {
		for _, ref := range []string{s.Track, s.ExtraTrack} {
			if ref != "" && !seen[ref] {
				return fmt.Errorf("%w: section %q references unknown track %q", ErrInvalidCatalog, s.ID, ref)
			}
		}
	}
	return nil
}
