package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/urfave/cli/v3"

	"github.com/fleetops/fleetscan/pkg/config"
	"github.com/fleetops/fleetscan/pkg/serializer"
)

// suggestionThreshold is the maximum edit distance for a "did you mean"
// preset suggestion.
const suggestionThreshold = 2

// parseOutputFormat extracts and validates the output format from CLI flags.
// Returns the validated format or an error if the format is unknown.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	outFormat := serializer.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: yaml, json, table", outFormat)
	}
	return outFormat, nil
}

// loadConfig loads the config file named by --config, or the defaults
// when the flag is unset.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		return config.Load(path)
	}
	return config.DefaultConfig(), nil
}

// resolveClusterList maps the environment argument to a cluster list
// path and the base identifier used in artifact file names. The
// argument is either a built-in preset name or a literal path; for a
// path the base id is the file name with its extension removed.
func resolveClusterList(arg string, cfg *config.Config) (path, baseID string, err error) {
	if config.IsPreset(arg) {
		path = cfg.ClusterListPath(arg)
		if _, statErr := os.Stat(path); statErr != nil {
			return "", "", fmt.Errorf("cluster list for environment %q not found at %q: %w", arg, path, statErr)
		}
		return path, arg, nil
	}

	if _, statErr := os.Stat(arg); statErr == nil {
		base := strings.TrimSuffix(filepath.Base(arg), filepath.Ext(arg))
		return arg, base, nil
	}

	if suggestion := suggestPreset(arg); suggestion != "" {
		return "", "", fmt.Errorf("unknown environment or cluster list file %q (did you mean %q?)", arg, suggestion)
	}
	return "", "", fmt.Errorf("unknown environment or cluster list file %q (presets: %s)",
		arg, strings.Join(config.Presets, ", "))
}

// suggestPreset returns the preset closest to name within the edit
// distance threshold, or "".
func suggestPreset(name string) string {
	best := ""
	bestDistance := suggestionThreshold + 1
	for _, preset := range config.Presets {
		if d := levenshtein.ComputeDistance(name, preset); d < bestDistance {
			best = preset
			bestDistance = d
		}
	}
	return best
}
