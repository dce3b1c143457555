package server

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vesaa/sysdash/webui"
)

// RegisterStaticFiles mounts the embedded dashboard shell on the engine.
// API routes registered before this take precedence; every unmatched
// route returns index.html.
func RegisterStaticFiles(r *gin.Engine) {
	webRoot, err := fs.Sub(webui.FS, "web")
	if err != nil {
		panic("embed: web sub-fs failed: " + err.Error())
	}
	staticFS := http.FS(webRoot)

	r.NoRoute(func(c *gin.Context) {
		f, err := staticFS.Open("index.html")
		if err != nil {
			c.String(http.StatusNotFound, "dashboard not found")
			return
		}
		defer f.Close()
		stat, err := f.Stat()
		if err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.DataFromReader(http.StatusOK, stat.Size(), "text/html; charset=utf-8", f, nil)
	})
}
