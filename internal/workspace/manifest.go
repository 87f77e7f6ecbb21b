package workspace

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/git-aiadd/internal/fsops"
)

// ManifestFile is the package manifest consulted by the Manifest strategy.
const ManifestFile = "package.json"

// packageManifest is the subset of package.json git-aiadd reads.
type packageManifest struct {
	Workspaces json.RawMessage `json:"workspaces"`
}

// readManifestGlobs returns the workspace globs declared in dir/package.json.
// The field may be an array of globs or an object with a "packages" array.
// A missing manifest or missing field yields no globs and no error.
func readManifestGlobs(fs fsops.FS, dir string) ([]string, error) {
	path := filepath.Join(dir, ManifestFile)
	exists, err := fs.Exists(path)
	if err != nil || !exists {
		return nil, err
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var manifest packageManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return parseWorkspaceField(manifest.Workspaces)
}

// parseWorkspaceField decodes the "workspaces" value of a package manifest.
func parseWorkspaceField(raw json.RawMessage) ([]string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, nil
	}

	var globs []string
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(raw, &globs); err != nil {
			return nil, fmt.Errorf("invalid workspaces array: %w", err)
		}
	} else {
		var obj struct {
			Packages []string `json:"packages"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("invalid workspaces object: %w", err)
		}
		globs = obj.Packages
	}

	out := make([]string, 0, len(globs))
	for _, g := range globs {
		g = strings.TrimSpace(g)
		// Exclusion globs only narrow other globs; they never name a workspace.
		if g == "" || strings.HasPrefix(g, "!") {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}
