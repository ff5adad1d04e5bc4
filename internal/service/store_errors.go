package service

import (
	"errors"

	"github.com/ec-club-bing/website/internal/docstore"
	appErrors "github.com/ec-club-bing/website/pkg/errors"
)

// fromStoreError maps document store failures onto the API taxonomy: a missing document becomes
// NOT_FOUND with notFoundMsg, anything else STORE_UNAVAILABLE.
func fromStoreError(err error, notFoundMsg string) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return appErrors.Clone(appErrors.ErrNotFound, notFoundMsg)
	}
	return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, appErrors.ErrStoreUnavailable.Message)
}
