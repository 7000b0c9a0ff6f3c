package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"roomservice/utils"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// formImage opens the optional "image" file of a multipart request. It
// returns (nil, nil) when no file was sent. The caller closes the file.
func formImage(c *gin.Context) (multipart.File, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, utils.BadRequest("invalid image upload")
	}
	if fileHeader.Size > maxImageSize {
		return nil, utils.BadRequest("image is too large")
	}
	contentType := strings.ToLower(fileHeader.Header.Get("Content-Type"))
	if contentType != "" && !allowedImageTypes[contentType] {
		return nil, utils.BadRequest("unsupported image type " + contentType)
	}
	return fileHeader.Open()
}
