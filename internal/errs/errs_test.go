package errs

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidWrapsSentinel(t *testing.T) {
	err := Invalid(StageBuild, "width %d must be positive", 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.NotErrorIs(t, err, ErrIO)
	assert.Equal(t, "build: invalid parameter: width 0 must be positive", err.Error())

	stage, ok := StageOf(err)
	require.True(t, ok)
	assert.Equal(t, StageBuild, stage)
}

func TestIOKeepsCause(t *testing.T) {
	err := IO(StageWrite, "create out.bmp", os.ErrPermission)

	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, err.Error(), "write: create out.bmp")
}

func TestStageOfPlainError(t *testing.T) {
	_, ok := StageOf(errors.New("boom"))
	assert.False(t, ok)
}
