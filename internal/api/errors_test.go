package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorResponse_OmitsEmptyDetail(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(NewError(ErrorCodeNotFound, "quote not found"))
	require.NoError(t, err)

	assert.JSONEq(t, `{"message":"quote not found","code":"not_found"}`, string(b))
}

func TestErrorResponse_WithDetail(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(NewErrorWithDetail(ErrorCodeValidationError, "invalid request", "quotes must be an array"))
	require.NoError(t, err)

	assert.JSONEq(t, `{"message":"invalid request","error":"quotes must be an array","code":"validation_error"}`, string(b))
}
