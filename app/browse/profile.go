package browse

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile describes the DOM shape of one listing site: where the rows are,
// where each row keeps its title and age, and which control paginates.
// NextSelector must address the dedicated pagination control, never a
// content link that happens to contain matching text.
type Profile struct {
	Name          string `yaml:"name"`
	RowSelector   string `yaml:"row_selector"`
	TitleSelector string `yaml:"title_selector"`
	AgeSelector   string `yaml:"age_selector"`
	// AgeInNextRow handles table layouts where the age cell lives in the
	// row following the title row.
	AgeInNextRow bool   `yaml:"age_in_next_row"`
	HintAttr     string `yaml:"hint_attr"`
	NextSelector string `yaml:"next_selector"`
}

// DefaultProfile matches the Hacker News "newest" listing, the original
// target of this auditor.
func DefaultProfile() *Profile {
	return &Profile{
		Name:          "hackernews-newest",
		RowSelector:   "tr.athing",
		TitleSelector: "span.titleline > a",
		AgeSelector:   "span.age",
		AgeInNextRow:  true,
		HintAttr:      "title",
		NextSelector:  "a.morelink",
	}
}

// LoadProfile reads a site profile from a YAML file.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	setDefaults(&profile)

	if err := validate(&profile); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	return &profile, nil
}

func setDefaults(profile *Profile) {
	if profile.HintAttr == "" {
		profile.HintAttr = "title"
	}
}

func validate(profile *Profile) error {
	if profile.RowSelector == "" {
		return fmt.Errorf("row_selector is required")
	}
	if profile.TitleSelector == "" {
		return fmt.Errorf("title_selector is required")
	}
	if profile.AgeSelector == "" {
		return fmt.Errorf("age_selector is required")
	}
	if profile.NextSelector == "" {
		return fmt.Errorf("next_selector is required")
	}
	return nil
}
