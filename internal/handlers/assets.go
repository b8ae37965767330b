package handlers

import (
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// AssetHandler exposes the static image directory.
type AssetHandler struct {
	dir string
}

// NewAssetHandler builds an AssetHandler over the given directory.
func NewAssetHandler(dir string) *AssetHandler {
	return &AssetHandler{dir: dir}
}

// ListImages returns a JSON listing of the image files in the asset directory.
func (h *AssetHandler) ListImages(c *gin.Context) {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read asset directory"})
		return
	}

	type imageInfo struct {
		Name        string `json:"name"`
		Size        int64  `json:"size"`
		ContentType string `json:"content_type"`
		URL         string `json:"url"`
	}

	images := make([]imageInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !imageExtensions[ext] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		images = append(images, imageInfo{
			Name:        entry.Name(),
			Size:        info.Size(),
			ContentType: mime.TypeByExtension(ext),
			URL:         "/assets/images/" + entry.Name(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"images": images})
}
