package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanDir discovers profile documents under the data directory.
// Documents live in <dataDir>/profiles/*.json; the filename minus the
// extension becomes the default profile id. Results are sorted by
// profile id for stable iteration.
func ScanDir(dataDir string) ([]DiscoveredFile, error) {
	profilesDir := filepath.Join(dataDir, "profiles")

	info, err := os.Stat(profilesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, nil
	}

	entries, err := os.ReadDir(profilesDir)
	if err != nil {
		return nil, err
	}

	var files []DiscoveredFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if filepath.Ext(name) != ".json" || strings.HasPrefix(name, ".") {
			continue
		}

		fi, err := e.Info()
		if err != nil {
			continue // skip entries deleted mid-scan
		}

		files = append(files, DiscoveredFile{
			Path:      filepath.Join(profilesDir, name),
			ProfileID: strings.TrimSuffix(name, ".json"),
			MtimeNs:   fi.ModTime().UnixNano(),
			SizeBytes: fi.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ProfileID < files[j].ProfileID
	})
	return files, nil
}
