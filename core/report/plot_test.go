package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCurvePoints(t *testing.T) {
	pts := ErrorCurvePoints([]int{3, 1, 0})
	require.Len(t, pts, 3)
	assert.Equal(t, 2.0, pts[2].X)
	assert.Equal(t, 1.0, pts[1].Y)
}

func TestSaveErrorCurve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.png")
	require.NoError(t, SaveErrorCurve(path, "AND logic gate", []int{2, 3, 1, 0}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	assert.Error(t, SaveErrorCurve(path, "empty", nil))
}
