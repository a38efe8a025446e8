package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemanticVersion_Bump(t *testing.T) {
	base := SemanticVersion{Major: 1, Minor: 2, Patch: 3}

	bumped, err := base.Bump(BumpMajor)
	require.NoError(t, err)
	assert.Equal(t, SemanticVersion{Major: 2}, bumped)

	bumped, err = base.Bump(BumpMinor)
	require.NoError(t, err)
	assert.Equal(t, SemanticVersion{Major: 1, Minor: 3}, bumped)

	bumped, err = base.Bump(BumpPatch)
	require.NoError(t, err)
	assert.Equal(t, SemanticVersion{Major: 1, Minor: 2, Patch: 4}, bumped)

	_, err = base.Bump(VersionBump("nope"))
	assert.ErrorIs(t, err, BadParameterError)
}

func TestSemanticVersion_BumpIsMonotonic(t *testing.T) {
	versions := []SemanticVersion{
		{},
		{Major: 0, Minor: 0, Patch: 9},
		{Major: 1, Minor: 4, Patch: 2},
		{Major: 3, Minor: 0, Patch: 0, Prerelease: "rc.1"},
	}
	for _, v := range versions {
		for _, bump := range []VersionBump{BumpMajor, BumpMinor, BumpPatch} {
			next, err := v.Bump(bump)
			require.NoError(t, err)
			assert.Equal(t, 1, next.Compare(v),
				"bump %s of %s must produce a strictly greater version, got %s", bump, v, next)
		}
	}
}

func TestSemanticVersion_BumpDropsPrerelease(t *testing.T) {
	v := SemanticVersion{Major: 1, Prerelease: "beta.2"}
	next, err := v.Bump(BumpPatch)
	require.NoError(t, err)
	assert.Empty(t, next.Prerelease)
}

func TestSemanticVersion_Compare(t *testing.T) {
	assert.Equal(t, -1, SemanticVersion{Major: 1}.Compare(SemanticVersion{Major: 2}))
	assert.Equal(t, 1, SemanticVersion{Major: 1, Minor: 1}.Compare(SemanticVersion{Major: 1}))
	assert.Equal(t, 0, SemanticVersion{Major: 1, Minor: 2, Patch: 3}.Compare(SemanticVersion{Major: 1, Minor: 2, Patch: 3}))

	// a prerelease sorts before its release
	release := SemanticVersion{Major: 1}
	prerelease := SemanticVersion{Major: 1, Prerelease: "alpha"}
	assert.Equal(t, -1, prerelease.Compare(release))
	assert.Equal(t, 1, release.Compare(prerelease))
}

func TestParseSemanticVersion(t *testing.T) {
	v, err := ParseSemanticVersion("1.2.3")
	require.NoError(t, err)
	assert.Equal(t, SemanticVersion{Major: 1, Minor: 2, Patch: 3}, v)

	v, err = ParseSemanticVersion("2.0.0-rc.1")
	require.NoError(t, err)
	assert.Equal(t, "rc.1", v.Prerelease)

	_, err = ParseSemanticVersion("not-a-version")
	assert.ErrorIs(t, err, BadParameterError)
}

func TestSemanticVersion_String(t *testing.T) {
	assert.Equal(t, "1.2.3", SemanticVersion{Major: 1, Minor: 2, Patch: 3}.String())
	assert.Equal(t, "1.0.0-beta", SemanticVersion{Major: 1, Prerelease: "beta"}.String())
}
