package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ec-club-bing/website/internal/middleware"
	appErrors "github.com/ec-club-bing/website/pkg/errors"
	"github.com/ec-club-bing/website/pkg/response"
)

func bindError(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload")
}

// confirmed reports whether the caller acknowledged an irreversible action with ?confirm=true.
func confirmed(c *gin.Context) bool {
	ok, err := strconv.ParseBool(c.Query("confirm"))
	return err == nil && ok
}

// respondError renders err. A missing edit target also tells the client to return to the listing.
func respondError(c *gin.Context, err error, listing string) {
	if listing != "" && errors.Is(err, appErrors.ErrNotFound) {
		middleware.SetRedirect(c, listing)
	}
	response.Error(c, err, middleware.ExtractMeta(c))
}

func respond(c *gin.Context, status int, data interface{}) {
	response.JSON(c, status, data, middleware.ExtractMeta(c))
}
