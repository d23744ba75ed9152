package manifest

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValidName(t *testing.T) {
	valid := []string{
		"@gh-user/package",
		"@gl-some-user/name",
		"@std/core",
		"@user-name/pkg:2",
	}
	for _, n := range valid {
		assert.Truef(t, IsValidName(n), "IsValidName(%q) = false, want true", n)
	}

	invalid := []string{
		"@user/pkg",      // missing provider prefix, no hyphen in owner
		"@gh-user/pk--g", // double hyphen
		"@gh-user/-pkg",  // name segment starts with hyphen
		"package",        // missing leading @
		"@gh-user/p",     // name segment too short (min 3 chars total incl. edges)
	}
	for _, n := range invalid {
		assert.Falsef(t, IsValidName(n), "IsValidName(%q) = true, want false", n)
	}
}

func TestDefaultManifestGeneration(t *testing.T) {
	m := New("@gh-x/pkg", "an example package")
	m.License = "MIT"
	m.Category = Executable
	m.Version = NewVersion(0, 0, 0)

	data, correctSchema, err := m.ToJSON(false)
	require.NoError(t, err)
	require.Truef(t, correctSchema, "expected correctSchema = true for a freshly constructed manifest, got false:\n%s", data)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))

	wantKeys := []string{
		"format", "name", "description", "license", "category", "version",
		"contacts", "platforms", "optimization", "dependencies", "blockchain",
	}
	for _, k := range wantKeys {
		assert.Containsf(t, generic, k, "missing key %q in serialized manifest", k)
	}

	assert.Equal(t, "1.0", generic["format"])
	assert.Equal(t, "0.1", generic["version"])
	assert.Equal(t, "exe", generic["category"])

	opt := generic["optimization"].(map[string]any)
	req := opt["requirements"].(map[string]any)
	assert.Equal(t, float64(1), req["min-cores"])
	assert.Equal(t, float64(2*1024*1024), req["min-memory"])
	assert.Equal(t, float64(0), req["min-storage"])

	assert.True(t, strings.HasPrefix(string(data), "{\n"), "expected non-minified output to be indented")
}

func TestManifestRoundTrip(t *testing.T) {
	m := New("@gh-x/pkg", "an example package")
	m.Contacts = []Contact{
		{Name: "Jane Doe", Email: "jane@example.com", Roles: []ContactRole{Owner, Maintainer}},
	}
	m.Dependencies = []Dependency{
		{UUID: "01234567-89ab-cdef-0123-456789abcdef", Version: NewVersion(2, 0, 0)},
	}

	data, correctSchema, err := m.ToJSON(true)
	require.NoError(t, err)
	require.True(t, correctSchema)

	got, err := FromJSON(data)
	require.NoError(t, err)

	assert.Equal(t, m.Name, got.Name)
	assert.Equal(t, m.Description, got.Description)
	assert.Equal(t, m.License, got.License)

	require.Len(t, got.Contacts, 1)
	assert.Equal(t, "jane@example.com", got.Contacts[0].Email)

	require.Len(t, got.Dependencies, 1)
	assert.Equal(t, m.Dependencies[0].UUID, got.Dependencies[0].UUID)
}

func TestAddDependencyValidatesUUID(t *testing.T) {
	m := New("@gh-x/y", "")

	err := m.AddDependency("not-a-uuid", NewVersion(1, 0, 0))
	assert.Error(t, err, "expected AddDependency to reject a malformed UUID")

	generated := NewDependencyUUID()
	require.NoError(t, m.AddDependency(generated, NewVersion(1, 0, 0)))
	require.Len(t, m.Dependencies, 1)
	assert.Equal(t, generated, m.Dependencies[0].UUID)
}

func TestFromJSONRejectsInvalidDocument(t *testing.T) {
	cases := map[string]string{
		"not an object":    `"just a string"`,
		"bad format major": `{"format":"2.0","name":"@gh-x/y","description":"","license":"MIT","category":"exe","version":"0.1","contacts":[],"platforms":{"allow":[],"deny":[]},"optimization":{"rapid":{"switch":{"alpha":[],"beta":[],"gamma":[],"llvm":[],"lto":[],"runtime":[]}},"debug":{"switch":{"alpha":[],"beta":[],"gamma":[],"llvm":[],"lto":[],"runtime":[]}},"release":{"switch":{"alpha":[],"beta":[],"gamma":[],"llvm":[],"lto":[],"runtime":[]}},"requirements":{"min-cores":1,"min-memory":2097152,"min-storage":0}},"dependencies":[],"blockchain":[]}`,
		"bad license":      `{"format":"1.0","name":"@gh-x/pkg","description":"","license":"NOT-A-REAL-LICENSE","category":"exe","version":"0.1","contacts":[],"platforms":{"allow":[],"deny":[]},"optimization":{"rapid":{"switch":{"alpha":[],"beta":[],"gamma":[],"llvm":[],"lto":[],"runtime":[]}},"debug":{"switch":{"alpha":[],"beta":[],"gamma":[],"llvm":[],"lto":[],"runtime":[]}},"release":{"switch":{"alpha":[],"beta":[],"gamma":[],"llvm":[],"lto":[],"runtime":[]}},"requirements":{"min-cores":1,"min-memory":2097152,"min-storage":0}},"dependencies":[],"blockchain":[]}`,
	}

	for name, doc := range cases {
		_, err := FromJSON([]byte(doc))
		assert.Errorf(t, err, "%s: expected FromJSON to reject document", name)
	}
}
