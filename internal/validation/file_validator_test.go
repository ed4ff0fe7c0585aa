package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "metadash/internal/errors"
	"metadash/internal/shared/testutil"
)

func TestFileValidator_ValidateCSVFile(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "metadata.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("title\n"), 0644))
	assert.NoError(t, v.ValidateCSVFile(csvPath))

	txtPath := filepath.Join(dir, "metadata.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("title\n"), 0644))
	assert.NoError(t, v.ValidateCSVFile(txtPath))
	assert.True(t, handler.ContainsMessage("Dataset does not have a .csv extension"))

	err := v.ValidateCSVFile(filepath.Join(dir, "absent.csv"))
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInput))

	err = v.ValidateFile(dir)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInput))
	assert.Contains(t, err.Error(), "is a directory")
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	v := NewFileValidator(nil)
	dir := filepath.Join(t.TempDir(), "reports", "nested")

	require.NoError(t, v.ValidateOutputDirectory(dir))
	assert.DirExists(t, dir)
	assert.NoFileExists(t, filepath.Join(dir, ".write_test"))

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	err := v.ValidateOutputDirectory(file)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}
