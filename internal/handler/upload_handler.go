package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ec-club-bing/website/internal/models"
	"github.com/ec-club-bing/website/internal/service"
	appErrors "github.com/ec-club-bing/website/pkg/errors"
	"github.com/ec-club-bing/website/pkg/response"
)

type uploadService interface {
	Upload(ctx context.Context, req service.UploadRequest) (*models.UploadResult, error)
}

// UploadHandler accepts images from admin forms and hands back their hosted URL.
type UploadHandler struct {
	service  uploadService
	maxBytes int64
}

func NewUploadHandler(svc uploadService, maxBytes int64) *UploadHandler {
	return &UploadHandler{service: svc, maxBytes: maxBytes}
}

// Upload godoc
// @Summary Upload an image
// @Description Forwards the image to the image host. Nothing is stored; put the returned secureUrl into the form field.
// @Tags Admin Uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image"
// @Param field formData string false "Form field the URL is meant for"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /admin/uploads [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.maxBytes > 0 {
		// room for the multipart envelope around the file
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+1<<20)
	}
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Validation("invalid upload", []appErrors.FieldError{
			{Field: "file", Message: "Please choose an image to upload."},
		}))
		return
	}
	file, err := header.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer file.Close() //nolint:errcheck

	result, err := h.service.Upload(c.Request.Context(), service.UploadRequest{
		Field:       c.PostForm("field"),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}
