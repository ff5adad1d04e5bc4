package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	appErrors "github.com/ec-club-bing/website/pkg/errors"
)

func requireAppError(t *testing.T, err error, want *appErrors.Error) *appErrors.Error {
	t.Helper()
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr), "expected *errors.Error, got %T", err)
	require.Equal(t, want.Code, appErr.Code)
	require.Equal(t, want.Status, appErr.Status)
	return appErr
}
