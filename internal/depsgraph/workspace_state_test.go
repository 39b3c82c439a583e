package depsgraph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeWorkspaceStateRemoteAndLocal(t *testing.T) {
	data := []byte(`{
  "object": {
    "dependencies": [
      {"packageRef": {"identity": "swift-log", "kind": "remote"}},
      {"packageRef": {"identity": "LocalKit", "kind": "local", "location": "/repo/LocalKit"}}
    ]
  }
}`)

	refs, err := decodeWorkspaceState(data)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	require.Equal(t, PackageRefRemote, refs[0].Kind)
	require.Equal(t, "swift-log", refs[0].Name)
	require.Equal(t, PackageRefLocal, refs[1].Kind)
	require.Equal(t, "/repo/LocalKit", refs[1].Path)
}

func TestDecodeWorkspaceStateMissingDependenciesFails(t *testing.T) {
	_, err := decodeWorkspaceState([]byte(`{"object": {}}`))
	require.Error(t, err)
}

func TestDecodeWorkspaceStateUnsupportedKindFails(t *testing.T) {
	_, err := decodeWorkspaceState([]byte(`{
  "object": {
    "dependencies": [
      {"packageRef": {"identity": "weird", "kind": "registry"}}
    ]
  }
}`))
	require.Error(t, err)
}
