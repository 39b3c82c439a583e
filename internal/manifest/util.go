package manifest

import (
	"os"
	"sort"
)

func sortStrings(s []string) {
	sort.Strings(s)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
