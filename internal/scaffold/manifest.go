package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kagworks/kagproj/pkg/types"
)

// ManifestFileName is the project manifest written into every
// scaffolded tree. Tools can locate a project root by walking up until
// they find it.
const ManifestFileName = "kagproj.yaml"

// manifest is the structure written to kagproj.yaml.
type manifest struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Competition string `yaml:"competition,omitempty"`
}

// writeManifest serializes the project manifest into the project root.
func writeManifest(root string, project *types.Project) error {
	m := manifest{
		Name:        project.Name,
		Slug:        project.Slug,
		Competition: project.Competition,
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(root, ManifestFileName), data, 0o644)
}
