package mapper

import (
	"fmt"

	"github.com/arnavsurve/xcgen/internal/model"
)

// TargetBuildSettingsProjectMapper is the build-configuration computation
// spec.md §1 names as a core component ("merges project, target,
// platform, and product defaults") and §6 fixes the output of: the
// twelve keys PRODUCT_BUNDLE_IDENTIFIER, INFOPLIST_FILE,
// CODE_SIGN_ENTITLEMENTS, SDKROOT, SUPPORTED_PLATFORMS, SWIFT_VERSION,
// MACH_O_TYPE, PRODUCT_NAME, TEST_TARGET_NAME, TEST_HOST, BUNDLE_LOADER,
// and TARGETED_DEVICE_FAMILY. It runs after GenerateInfoPlistProjectMapper
// so a synthesized Info.plist's generated path is already resolved. A key
// a manifest already declared explicitly for a target is left untouched —
// this mapper only fills in the computed default.
type TargetBuildSettingsProjectMapper struct{}

func (TargetBuildSettingsProjectMapper) Name() string {
	return "TargetBuildSettingsProjectMapper"
}

func (m TargetBuildSettingsProjectMapper) Map(p model.Project, ctx *Context) (model.Project, []SideEffect, error) {
	for i := range p.Targets {
		t := &p.Targets[i]
		if t.Settings == nil {
			s := model.NewSettings()
			t.Settings = &s
		}
		for key, value := range m.computedDefaults(p, *t) {
			if _, exists := t.Settings.Base[key]; exists {
				continue
			}
			t.Settings.Base[key] = value
		}
	}
	return p, nil, nil
}

func (m TargetBuildSettingsProjectMapper) computedDefaults(p model.Project, t model.Target) map[string]model.SettingValue {
	settings := map[string]model.SettingValue{
		"PRODUCT_NAME":  model.StringSetting(t.Name),
		"SWIFT_VERSION": model.StringSetting("5.0"),
	}

	if t.BundleID != "" {
		settings["PRODUCT_BUNDLE_IDENTIFIER"] = model.StringSetting(t.BundleID)
	}
	if t.InfoPlist.Path != "" {
		settings["INFOPLIST_FILE"] = model.StringSetting(t.InfoPlist.Path)
	}
	if t.Entitlements != "" {
		settings["CODE_SIGN_ENTITLEMENTS"] = model.StringSetting(t.Entitlements)
	}
	if sdkroot, ok := sdkrootFor(t.Platform); ok {
		settings["SDKROOT"] = model.StringSetting(sdkroot)
	}
	if supported, ok := supportedPlatformsFor(t.Platform); ok {
		settings["SUPPORTED_PLATFORMS"] = model.StringSetting(supported)
	}
	if family, ok := targetedDeviceFamilyFor(t.Platform); ok {
		settings["TARGETED_DEVICE_FAMILY"] = model.StringSetting(family)
	}
	if t.Product == model.ProductStaticFramework {
		settings["MACH_O_TYPE"] = model.StringSetting("staticlib")
	}

	if t.Product.IsTestBundle() {
		if host, ok := hostAppForTestBundle(p, t); ok {
			if t.Product == model.ProductUITests {
				settings["TEST_TARGET_NAME"] = model.StringSetting(host.Name)
			} else {
				settings["TEST_HOST"] = model.StringSetting(testHostExecutable(host))
				settings["BUNDLE_LOADER"] = model.StringSetting("$(TEST_HOST)")
			}
		}
	}

	return settings
}

// testHostExecutable renders the TEST_HOST path for the given host
// target, accounting for macOS's nested Contents/MacOS executable layout.
func testHostExecutable(host model.Target) string {
	if host.Platform == model.PlatformMacOS {
		return fmt.Sprintf("$(BUILT_PRODUCTS_DIR)/%s.app/Contents/MacOS/%s", host.Name, host.Name)
	}
	return fmt.Sprintf("$(BUILT_PRODUCTS_DIR)/%s.app/%s", host.Name, host.Name)
}

// hostAppForTestBundle returns the first target t declares a target()
// dependency on, in manifest order, whose product can host tests
// (spec.md §4.G rule 1's CanHostTests predicate).
func hostAppForTestBundle(p model.Project, t model.Target) (model.Target, bool) {
	for _, d := range t.Dependencies {
		if d.Kind != model.DependencyTarget {
			continue
		}
		for _, candidate := range p.Targets {
			if candidate.Name == d.Name && candidate.Product.CanHostTests() {
				return candidate, true
			}
		}
	}
	return model.Target{}, false
}

func sdkrootFor(p model.Platform) (string, bool) {
	switch p {
	case model.PlatformIOS:
		return "iphoneos", true
	case model.PlatformMacOS:
		return "macosx", true
	case model.PlatformTVOS:
		return "appletvos", true
	case model.PlatformWatchOS:
		return "watchos", true
	default:
		return "", false
	}
}

func supportedPlatformsFor(p model.Platform) (string, bool) {
	switch p {
	case model.PlatformIOS:
		return "iphoneos iphonesimulator", true
	case model.PlatformMacOS:
		return "macosx", true
	case model.PlatformTVOS:
		return "appletvos appletvsimulator", true
	case model.PlatformWatchOS:
		return "watchos watchsimulator", true
	default:
		return "", false
	}
}

func targetedDeviceFamilyFor(p model.Platform) (string, bool) {
	switch p {
	case model.PlatformIOS:
		return "1,2", true
	case model.PlatformTVOS:
		return "3", true
	case model.PlatformWatchOS:
		return "4", true
	default:
		return "", false
	}
}
