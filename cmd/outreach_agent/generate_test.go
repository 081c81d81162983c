package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadSenderProfile(t *testing.T) {
	path := writeTempJSON(t, "sender.json", `{
		"headline": "CS student at Columbia University",
		"schools": ["Columbia University"],
		"proof_points": ["Built a course planner used by 200 students"]
	}`)

	profile, err := readSenderProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "CS student at Columbia University", profile.Headline)
	assert.Equal(t, []string{"Columbia University"}, profile.Schools)
	assert.Len(t, profile.ProofPoints, 1)
}

func TestReadSenderProfile_Errors(t *testing.T) {
	_, err := readSenderProfile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := writeTempJSON(t, "bad.json", `{broken`)
	_, err = readSenderProfile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse sender profile JSON")
}

func TestReadTargetProfile(t *testing.T) {
	path := writeTempJSON(t, "target.json", `{
		"name": "Dana Rivera",
		"headline": "Data Analyst at Acme",
		"top_experiences": [{"title": "Data Analyst", "company": "Acme"}],
		"education": [{"school": "Columbia University"}]
	}`)

	profile, err := readTargetProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Dana Rivera", profile.Name)
	require.Len(t, profile.TopExperiences, 1)
	assert.Equal(t, "Acme", profile.TopExperiences[0].Company)
	require.Len(t, profile.Education, 1)
	assert.Equal(t, "Columbia University", profile.Education[0].School)
}

func TestReadTargetProfile_Errors(t *testing.T) {
	_, err := readTargetProfile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := writeTempJSON(t, "bad.json", `[`)
	_, err = readTargetProfile(bad)
	assert.Error(t, err)
}
