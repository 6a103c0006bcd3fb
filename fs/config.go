package fs

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/fwojciec/dropwatch"
)

// DefaultConfigPath is where the source configuration lives unless
// configured otherwise.
const DefaultConfigPath = "config/sources.json"

// configFile is the on-disk layout of the source configuration.
type configFile struct {
	Sources []string `json:"sources"`
	Mirrors struct {
		Feed    []dropwatch.Mirror `json:"feed"`
		HTML    []dropwatch.Mirror `json:"html"`
		Listing []dropwatch.Mirror `json:"listing"`
	} `json:"mirrors"`
	Phrases *dropwatch.Phrases `json:"phrases"`
}

// LoadConfig reads the source configuration at path. Mirror lists and
// phrases left out of the file take their defaults.
// Returns ENOTFOUND if the file does not exist and EINVALID if it cannot be
// parsed or lists no sources.
func LoadConfig(path string) (*dropwatch.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, dropwatch.Errorf(dropwatch.ENOTFOUND, "config file %s not found", path)
	} else if err != nil {
		return nil, err
	}

	var file configFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, dropwatch.Errorf(dropwatch.EINVALID, "config file %s: %v", path, err)
	}

	sources, err := dropwatch.ParseSources(file.Sources)
	if err != nil {
		return nil, err
	}

	cfg := dropwatch.NewConfig(sources)
	if len(file.Mirrors.Feed) > 0 {
		cfg.FeedMirrors = file.Mirrors.Feed
	}
	if len(file.Mirrors.HTML) > 0 {
		cfg.HTMLMirrors = file.Mirrors.HTML
	}
	if len(file.Mirrors.Listing) > 0 {
		cfg.ListingMirrors = file.Mirrors.Listing
	}
	if file.Phrases != nil {
		if len(file.Phrases.Dead) > 0 {
			cfg.Phrases.Dead = file.Phrases.Dead
		}
		if len(file.Phrases.Blocked) > 0 {
			cfg.Phrases.Blocked = file.Phrases.Blocked
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
