package factstore

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pensieveco/pensieve/pkg/dotdir"
)

// DefaultFileName is the fact base document name used when no explicit path
// is configured.
const DefaultFileName = "memories.json"

// ResolvePath decides where the fact base document lives. A non-empty
// configured path wins (callers pass the viper-resolved memory.path, which
// already folds in flags, environment, and config file). Otherwise the
// document lives in the resolved .pensieve/ directory.
func ResolvePath(configured string) (string, error) {
	if p := strings.TrimSpace(configured); p != "" {
		return filepath.Abs(p)
	}

	ddm := dotdir.NewManager()
	target, err := ddm.Target("")
	if err != nil {
		return "", fmt.Errorf("resolving pensieve directory: %w", err)
	}

	return filepath.Join(target, DefaultFileName), nil
}
