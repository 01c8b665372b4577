package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	var testCases = []struct {
		description string
		config      Config
		expect      error
	}{
		{description: "console", config: Config{Console: true}},
		{description: "file without path", config: Config{File: true}, expect: ErrInvalidOutputPath},
		{description: "no output", config: Config{}, expect: ErrNoOutput},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			err := testCase.config.Validate()
			if testCase.expect == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, testCase.expect))
		})
	}
}

func TestNew_File(t *testing.T) {
	location := filepath.Join(t.TempDir(), "dyopen.log")
	logger, err := New(&Config{Level: DebugLevel, Format: JSONFormat, File: true, OutputPath: location})
	require.NoError(t, err)
	logger.Debug("request issued")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"request issued"`)
	assert.Contains(t, string(data), `"level":"DEBUG"`)
}

func TestNew_LevelFilter(t *testing.T) {
	location := filepath.Join(t.TempDir(), "dyopen.log")
	logger, err := New(&Config{Level: WarnLevel, File: true, Format: JSONFormat, OutputPath: location})
	require.NoError(t, err)
	logger.Info("skipped")
	logger.Warn("kept")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "skipped")
	assert.Contains(t, string(data), "kept")
}

func TestNew_Default(t *testing.T) {
	logger, err := New(nil)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
