package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arnavsurve/xcgen/internal/xcerrors"
)

// fileNames maps a manifest Kind to the file names the loader will accept
// in a project directory, in preference order.
var fileNames = map[Kind][]string{
	KindProject:  {"Project.yml", "Project.yaml"},
	KindWorkspace: {"Workspace.yml", "Workspace.yaml"},
	KindConfig:   {"Config.yml", "Config.yaml"},
	KindTemplate: {"Template.yml", "Template.yaml"},
}

func resolveManifestPath(dir string, kind Kind) (string, bool) {
	for _, name := range fileNames[kind] {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, true
		}
	}
	return "", false
}

// LoadProject loads a single Project manifest from the project directory
// at dir.
func LoadProject(dir string) (*Project, string, error) {
	path, ok := resolveManifestPath(dir, KindProject)
	if !ok {
		return nil, "", &xcerrors.ManifestNotFound{Path: filepath.Join(dir, "Project.yml")}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &xcerrors.ManifestNotFound{Path: path}
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, "", fmt.Errorf("parse %s: %w", path, err)
	}
	return &p, path, nil
}

// LoadWorkspace loads a single Workspace manifest from the directory at
// dir.
func LoadWorkspace(dir string) (*Workspace, string, error) {
	path, ok := resolveManifestPath(dir, KindWorkspace)
	if !ok {
		return nil, "", &xcerrors.ManifestNotFound{Path: filepath.Join(dir, "Workspace.yml")}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &xcerrors.ManifestNotFound{Path: path}
	}
	var w Workspace
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, "", fmt.Errorf("parse %s: %w", path, err)
	}
	return &w, path, nil
}

// LoadConfig loads a Config manifest from the directory at dir. Unlike
// Project/Workspace it is optional at the call site — callers that find
// no Config manifest fall back to config.Default().
func LoadConfig(dir string) ([]byte, string, error) {
	path, ok := resolveManifestPath(dir, KindConfig)
	if !ok {
		return nil, "", &xcerrors.ManifestNotFound{Path: filepath.Join(dir, "Config.yml")}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &xcerrors.ManifestNotFound{Path: path}
	}
	return data, path, nil
}

// LoadTemplate loads a Template manifest from the directory at dir.
func LoadTemplate(dir string) (*Template, string, error) {
	path, ok := resolveManifestPath(dir, KindTemplate)
	if !ok {
		return nil, "", &xcerrors.ManifestNotFound{Path: filepath.Join(dir, "Template.yml")}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &xcerrors.ManifestNotFound{Path: path}
	}
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, "", fmt.Errorf("parse %s: %w", path, err)
	}
	return &t, path, nil
}

// ManifestsAt reports which manifest kinds are present in dir.
func ManifestsAt(dir string) map[Kind]struct{} {
	found := map[Kind]struct{}{}
	for kind := range fileNames {
		if _, ok := resolveManifestPath(dir, kind); ok {
			found[kind] = struct{}{}
		}
	}
	return found
}
