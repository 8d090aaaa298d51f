package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 包级 helper 在 MustInit 之前调用时不得崩溃
func TestHelpersSafeBeforeInit(t *testing.T) {
	assert.NotPanics(t, func() {
		Infow("helper before init", "key", "value")
		Errorw("helper before init", "key", "value")
		Warnf("helper before init: %s", "value")
	})
	assert.NotNil(t, GetLogger())
}
