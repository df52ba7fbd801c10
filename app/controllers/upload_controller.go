package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/agrisetu/agrisetu/pkg/ctx"
	"github.com/agrisetu/agrisetu/pkg/storage"
)

// maxUploadBytes caps crop image uploads at 5 MB.
const maxUploadBytes = 5 << 20

var allowedImageExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

// UploadController stores crop images on the configured disk.
type UploadController struct{}

func NewUploadController() *UploadController { return &UploadController{} }

// Store accepts a multipart "image" field and returns the public URL.
func (uc *UploadController) Store(c *ctx.Context) {
	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, maxUploadBytes)

	file, header, err := c.FormFile("image")
	if err != nil {
		c.Error(http.StatusBadRequest, "An image file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		c.Error(http.StatusBadRequest, "Only jpg, jpeg, png, and webp images are accepted")
		return
	}

	path := fmt.Sprintf("crops/%s/%d%s", c.UserID(), time.Now().UnixNano(), ext)
	if err := storage.PutStream(path, file); err != nil {
		c.Error(http.StatusInternalServerError, "Could not store the image")
		return
	}

	c.Created(map[string]string{
		"path": path,
		"url":  storage.URL(path),
	})
}
