package pptx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// maxGeneration bounds the bump-until-free loop so a pathological output
// folder cannot spin forever.
const maxGeneration = 99

// VersionedPath returns a collision-free output path of the form
// {folder}/{name}.{YYYY-MM-DD_HHMM}.g{NN}.pptx, bumping the generation
// counter until it finds a free slot.
func VersionedPath(folder, name string, now time.Time) (string, error) {
	base := strings.TrimSuffix(name, ".pptx")
	stamp := now.Format("2006-01-02_1504")

	for gen := 1; gen <= maxGeneration; gen++ {
		candidate := filepath.Join(folder, fmt.Sprintf("%s.%s.g%02d.pptx", base, stamp, gen))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free output slot for '%s' at %s after %d generations", base, stamp, maxGeneration)
}
