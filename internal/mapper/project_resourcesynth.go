package mapper

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arnavsurve/xcgen/internal/model"
)

// resourceSynthKind tags one recognized resource category the
// synthesizer generates an accessor for.
type resourceSynthKind string

const (
	synthAssets           resourceSynthKind = "assets"
	synthStrings          resourceSynthKind = "strings"
	synthFonts            resourceSynthKind = "fonts"
	synthPlists           resourceSynthKind = "plists"
	synthInterfaceBuilder resourceSynthKind = "interface_builder"
)

var resourceSynthExtensions = map[string]resourceSynthKind{
	".xcassets":   synthAssets,
	".strings":    synthStrings,
	".stringsdict": synthStrings,
	".ttf":        synthFonts,
	".otf":        synthFonts,
	".plist":      synthPlists,
	".storyboard": synthInterfaceBuilder,
	".xib":        synthInterfaceBuilder,
}

// SynthesizedResourceInterfaceProjectMapper scans each target's resources
// and, for every recognized kind present, emits one generated Swift
// accessor source file appended to the target's sources (spec.md §4.G
// rule 5).
type SynthesizedResourceInterfaceProjectMapper struct{}

func (SynthesizedResourceInterfaceProjectMapper) Name() string {
	return "SynthesizedResourceInterfaceProjectMapper"
}

func (m SynthesizedResourceInterfaceProjectMapper) Map(p model.Project, ctx *Context) (model.Project, []SideEffect, error) {
	var effects []SideEffect

	for i := range p.Targets {
		t := &p.Targets[i]

		present := map[resourceSynthKind][]string{}
		for _, res := range t.ResolvedResources {
			kind, ok := resourceSynthExtensions[strings.ToLower(filepath.Ext(res))]
			if !ok {
				continue
			}
			if !synthesizerEnabled(p.ResourceSynthesizers, kind) {
				continue
			}
			present[kind] = append(present[kind], res)
		}
		if len(present) == 0 {
			continue
		}

		var kinds []string
		for k := range present {
			kinds = append(kinds, string(k))
		}
		sort.Strings(kinds)

		for _, k := range kinds {
			kind := resourceSynthKind(k)
			contents := renderResourceAccessor(t.Name, kind, present[kind])
			path := filepath.Join(p.Path, "Derived", "Sources", fmt.Sprintf("%s+%s.generated.swift", t.Name, kind))
			effects = append(effects, SideEffect{Kind: SideEffectWriteFile, Path: path, Contents: contents})
			t.ResolvedSources = append(t.ResolvedSources, path)
		}
	}

	return p, effects, nil
}

func synthesizerEnabled(configured []string, kind resourceSynthKind) bool {
	if len(configured) == 0 {
		return true
	}
	for _, c := range configured {
		if c == string(kind) || c == "all" {
			return true
		}
	}
	return false
}

func renderResourceAccessor(targetName string, kind resourceSynthKind, resources []string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "// Generated by xcgen for target %s. Do not edit.\n", targetName)
	fmt.Fprintf(&b, "enum %sResources {\n", strings.Title(string(kind)))
	for _, r := range resources {
		name := strings.TrimSuffix(filepath.Base(r), filepath.Ext(r))
		ident := sanitizeSwiftIdentifier(name)
		fmt.Fprintf(&b, "    static let %s = %q\n", ident, name)
	}
	b.WriteString("}\n")
	return []byte(b.String())
}

func sanitizeSwiftIdentifier(name string) string {
	var b strings.Builder
	for i, r := range name {
		switch {
		case r == '-' || r == ' ' || r == '.':
			continue
		case i == 0 && (r >= '0' && r <= '9'):
			b.WriteByte('_')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return "resource"
	}
	return out
}
