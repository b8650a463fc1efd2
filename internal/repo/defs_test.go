package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snowreport/pkg/errors"
)

const samplePlan = `name: sector_summary
title: Sector Summary
fragments:
  - alias: CLEAN
    body: SELECT * FROM POSITION WHERE SHARES IS NOT NULL
  - alias: BY_SECTOR
    body: SELECT SECTOR_NAME, SUM(SHARES) AS TOTAL FROM CLEAN GROUP BY SECTOR_NAME
final: SELECT * FROM BY_SECTOR
chart:
  type: bar
  x: SECTOR_NAME
  y: TOTAL
  top: 10
`

func writePlan(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadPlanFile(t *testing.T) {
	path := writePlan(t, t.TempDir(), "sector.yaml", samplePlan)

	def, err := LoadPlanFile(path)
	require.NoError(t, err)

	assert.Equal(t, "sector_summary", def.Name)
	assert.Equal(t, "Sector Summary", def.Title)
	require.Len(t, def.Fragments, 2)
	assert.Equal(t, "CLEAN", def.Fragments[0].Alias)

	require.NotNil(t, def.Chart)
	assert.Equal(t, "bar", def.Chart.Type)
	assert.Equal(t, 10, def.Chart.Top)

	sql, err := def.SQL()
	require.NoError(t, err)
	assert.Contains(t, sql, "WITH CLEAN AS (")
}

func TestLoadPlanFileNameDefaultsFromFilename(t *testing.T) {
	content := `fragments:
  - alias: A
    body: SELECT 1
final: SELECT * FROM A
`
	path := writePlan(t, t.TempDir(), "adhoc.yaml", content)

	def, err := LoadPlanFile(path)
	require.NoError(t, err)
	assert.Equal(t, "adhoc", def.Name)
	assert.Equal(t, "adhoc", def.Title)
}

func TestLoadPlanFileInvalidPlan(t *testing.T) {
	content := `name: broken
fragments:
  - alias: A
    body: SELECT 1
  - alias: A
    body: SELECT 2
final: SELECT * FROM A
`
	path := writePlan(t, t.TempDir(), "broken.yaml", content)

	_, err := LoadPlanFile(path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDefsInvalid, errors.GetErrorCode(err))
}

func TestLoadPlanFileUnknownChartType(t *testing.T) {
	content := `name: pie
fragments:
  - alias: A
    body: SELECT 1
final: SELECT * FROM A
chart:
  type: pie
`
	path := writePlan(t, t.TempDir(), "pie.yaml", content)

	_, err := LoadPlanFile(path)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDefsInvalid, errors.GetErrorCode(err))
}

func TestLoadPlanFileMissing(t *testing.T) {
	_, err := LoadPlanFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDefsNotFound, errors.GetErrorCode(err))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writePlan(t, dir, "b.yaml", samplePlan)
	writePlan(t, dir, "a.yml", `name: alpha
fragments:
  - alias: A
    body: SELECT 1
final: SELECT * FROM A
`)
	writePlan(t, dir, "notes.txt", "not a plan")

	defs, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "alpha", defs[0].Name)
	assert.Equal(t, "sector_summary", defs[1].Name)
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDefsNotFound, errors.GetErrorCode(err))
}

func TestSyncRequiresURL(t *testing.T) {
	err := Sync("", "main", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeDefsNotFound, errors.GetErrorCode(err))
}
