package transform

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/seminar-events/internal/event"
)

// Logical source field names understood by the mapper.
const (
	SourceUID         = "uid"
	SourceBegin       = "begin"
	SourceEnd         = "end"
	SourceURL         = "url"
	SourceCategories  = "categories"
	SourceDescription = "description"
	SourceSummary     = "summary"
)

// Config declares how raw entries become output records. Immutable once
// loaded.
type Config struct {
	TargetTimezone     string            `yaml:"target_timezone"`
	TimeFormat         string            `yaml:"time_format"`
	FieldMappings      map[string]string `yaml:"field_mappings"`
	MaskedFields       []string          `yaml:"masked_fields"`
	Placeholders       map[string]string `yaml:"placeholders"`
	Copies             map[string]string `yaml:"copies"`
	JoinCategories     bool              `yaml:"join_categories"`
	CategoryDelimiter  string            `yaml:"category_delimiter"`
	EscapeDescription  bool              `yaml:"escape_description"`
	CollapseWhitespace bool              `yaml:"collapse_whitespace"`
	NewlineMode        string            `yaml:"newline_mode"`
}

// DefaultConfig returns the built-in mapping used when no config document is
// supplied. Summary is intentionally mapped to speaker while title starts as
// a blank placeholder; enrichment and the title fallback fill it later.
func DefaultConfig() Config {
	return Config{
		TargetTimezone: "America/New_York",
		TimeFormat:     "2006-01-02T15:04:05",
		FieldMappings: map[string]string{
			SourceUID:         event.FieldGUID,
			SourceBegin:       event.FieldStartTime,
			SourceEnd:         event.FieldEndTime,
			SourceURL:         event.FieldURLRef,
			SourceCategories:  event.FieldSeries,
			SourceDescription: event.FieldContent,
			SourceSummary:     event.FieldSpeaker,
		},
		MaskedFields: []string{"dtstamp", "sequence", "transp", "class"},
		Placeholders: map[string]string{
			event.FieldTitle:       "",
			event.FieldCancelled:   "",
			event.FieldBannerImage: "",
			event.FieldItemType:    "advertisement",
		},
		Copies:             map[string]string{},
		JoinCategories:     true,
		CategoryDelimiter:  ",",
		EscapeDescription:  true,
		CollapseWhitespace: true,
		NewlineMode:        string(event.NewlineSpace),
	}
}

// Load reads an optional YAML (or JSON, which YAML subsumes) config document.
// An empty path returns the defaults. Keys present in the document override
// the defaults; map-valued keys merge over the default maps.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.CategoryDelimiter == "" {
		cfg.CategoryDelimiter = ","
	}
	if cfg.NewlineMode == "" {
		cfg.NewlineMode = string(event.NewlineSpace)
	}
	return cfg, nil
}

// masked reports whether a logical source field is masked out.
func (c Config) masked(source string) bool {
	for _, m := range c.MaskedFields {
		if m == source {
			return true
		}
	}
	return false
}
