package library

import (
	"os"
	"strings"
	"vincit.fi/gallery-thumbs/common/logger"
)

// ScanNames lists the regular files in dir that end with extension and
// returns their names without the extension, sorted by file name. The
// extension match is case sensitive.
func ScanNames(dir string, extension string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	logger.Info.Printf("Scanning directory '%s'", dir)
	var names []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		fileName := entry.Name()
		if name, found := strings.CutSuffix(fileName, extension); found && name != "" {
			logger.Trace.Printf(" - %s", name)
			names = append(names, name)
		}
	}
	logger.Info.Printf("Found %d images", len(names))
	return names, nil
}
