package observability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitSentry_EmptyDSNIsDisabled(t *testing.T) {
	assert.NoError(t, InitSentry("", "test"))
	assert.NotPanics(t, func() {
		CaptureError(errors.New("dropped"))
		CaptureError(nil)
		FlushSentry()
	})
}

func TestInitSentry_InvalidDSN(t *testing.T) {
	assert.Error(t, InitSentry("::not a dsn::", "test"))
}
