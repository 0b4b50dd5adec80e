package domain_test

import (
	"errors"
	"io"
	"testing"

	"github.com/brafiq/bearmaps/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestWrapErrorf(t *testing.T) {
	err := domain.WrapErrorf(io.EOF, domain.ErrBadParamInput, "lat %f out of range", 91.0)

	assert.Equal(t, "lat 91.000000 out of range", err.Error())
	assert.True(t, errors.Is(err, io.EOF))

	var de *domain.Error
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, domain.ErrBadParamInput, de.Code())
}

func TestWrapErrorfNilOrig(t *testing.T) {
	err := domain.WrapErrorf(nil, domain.ErrNotFound, "no such vertex")

	var de *domain.Error
	assert.True(t, errors.As(err, &de))
	assert.Equal(t, domain.ErrNotFound, de.Code())
	assert.Nil(t, errors.Unwrap(err))
}
