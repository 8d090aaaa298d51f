package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogStdout(t *testing.T) {
	conf := SetDefaults()
	logger, err := NewLog(conf)
	require.NoError(t, err)
	require.NotNil(t, logger)

	Infof("log initialized for test: %s", t.Name())
}

func TestValidateFileOutput(t *testing.T) {
	conf := &Conf{Output: "file"}
	err := conf.Validate()
	assert.Error(t, err)

	conf.Path = t.TempDir()
	err = conf.Validate()
	assert.NoError(t, err)
	// 未设置的滚动参数回退到默认值
	assert.Equal(t, 100, conf.RotateSize)
	assert.Equal(t, 10, conf.RotateNum)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLogLevel("debug").String())
	assert.Equal(t, "warn", parseLogLevel("WARNING").String())
	assert.Equal(t, "info", parseLogLevel("bogus").String())
}
