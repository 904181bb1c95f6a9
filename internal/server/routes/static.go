package routes

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/osa911/landing/internal/api/dto/common"

	"github.com/gin-gonic/gin"
)

const msgNotFound = "Recurso no encontrado"

// SetupFallback answers unmatched requests. With a static directory, GET and
// HEAD requests outside /api are served from it and fall back to index.html
// so client-side routes resolve. Everything else gets a JSON 404.
func SetupFallback(router *gin.Engine, staticDir string) {
	index := filepath.Join(staticDir, "index.html")

	router.NoRoute(func(c *gin.Context) {
		reqPath := c.Request.URL.Path
		isRead := c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead

		if staticDir == "" || !isRead || reqPath == "/api" || strings.HasPrefix(reqPath, "/api/") {
			c.JSON(http.StatusNotFound, common.NewErrorResponse(common.ErrCodeNotFound, msgNotFound, ""))
			return
		}

		// Clean against a rooted path so ".." cannot climb out of staticDir
		name := filepath.Join(staticDir, filepath.FromSlash(path.Clean("/"+reqPath)))
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			c.File(name)
			return
		}

		c.File(index)
	})
}
