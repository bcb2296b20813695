package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	attr := Err(errors.New("boom"))
	assert.Equal(t, KeyError, attr.Key)
	assert.Equal(t, "boom", attr.Value.String())
}

func TestErrNil(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("ok", Err(nil))
	assert.NotContains(t, buf.String(), KeyError)
}

func TestAccount(t *testing.T) {
	attr := Account("6321366409")
	assert.Equal(t, KeyAccount, attr.Key)
	assert.Equal(t, "6321366409", attr.Value.String())
}
