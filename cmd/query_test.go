package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "snowreport/pkg/errors"
)

func TestPlanFromFlags(t *testing.T) {
	def, err := planFromFlags(
		[]string{"A=SELECT 1", "B=SELECT * FROM A"},
		"SELECT * FROM B",
	)
	require.NoError(t, err)

	assert.Equal(t, "adhoc", def.Name)
	sql, err := def.SQL()
	require.NoError(t, err)
	assert.Equal(t, "WITH A AS (SELECT 1),B AS (SELECT * FROM A) SELECT * FROM B;", sql)
}

func TestPlanFromFlagsMalformedPair(t *testing.T) {
	_, err := planFromFlags([]string{"no-equals-sign"}, "SELECT 1")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidArgument, appErr.Code)
}

func TestPlanFromFlagsDuplicateAlias(t *testing.T) {
	_, err := planFromFlags(
		[]string{"A=SELECT 1", "a=SELECT 2"},
		"SELECT * FROM A",
	)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeInvalidArgument, appErr.Code)
}

func TestPlanFromFlagsMissingFinal(t *testing.T) {
	_, err := planFromFlags([]string{"A=SELECT 1"}, "")
	assert.Error(t, err)
}

func TestResolveDefinitionFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sector.yaml")
	content := `title: Sector summary
fragments:
  - alias: A
    body: SELECT 1
final: SELECT * FROM A
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	def, err := resolveDefinition(path, dir)
	require.NoError(t, err)
	assert.Equal(t, "sector", def.Name)
	assert.Equal(t, "Sector summary", def.Title)
}

func TestResolveDefinitionByName(t *testing.T) {
	dir := t.TempDir()
	content := `name: sector_summary
title: Sector summary
fragments:
  - alias: A
    body: SELECT 1
final: SELECT * FROM A
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "defs.yaml"), []byte(content), 0644))

	def, err := resolveDefinition("sector_summary", dir)
	require.NoError(t, err)
	assert.Equal(t, "Sector summary", def.Title)
}

func TestResolveDefinitionNotFound(t *testing.T) {
	dir := t.TempDir()

	_, err := resolveDefinition("no-such-plan", dir)
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeDefsNotFound, appErr.Code)
}
