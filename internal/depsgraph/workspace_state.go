package depsgraph

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/arnavsurve/xcgen/internal/xcerrors"
)

// decodeWorkspaceState parses workspace-state.json's pinned-dependency list.
// The shape matches what Swift Package Manager's resolved workspace state
// emits: {"object": {"dependencies": [{"packageRef": {"identity", "kind",
// "location"}, ...}]}}.
func decodeWorkspaceState(data []byte) ([]PackageRef, error) {
	root := gjson.ParseBytes(data)
	deps := root.Get("object.dependencies")
	if !deps.Exists() {
		return nil, fmt.Errorf("workspace-state.json: missing object.dependencies")
	}

	var refs []PackageRef
	var decodeErr error
	deps.ForEach(func(_, dep gjson.Result) bool {
		ref := dep.Get("packageRef")
		name := ref.Get("identity").String()
		if name == "" {
			name = ref.Get("name").String()
		}
		kind := ref.Get("kind").String()

		switch PackageRefKind(kind) {
		case PackageRefRemote:
			refs = append(refs, PackageRef{Name: name, Kind: PackageRefRemote})
		case PackageRefLocal:
			refs = append(refs, PackageRef{Name: name, Kind: PackageRefLocal, Path: ref.Get("location").String()})
		default:
			decodeErr = &xcerrors.UnsupportedDependencyKind{Kind: kind}
			return false
		}
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return refs, nil
}
