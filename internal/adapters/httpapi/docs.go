package httpapi

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
	swgui "github.com/swaggest/swgui/v5cdn"
)

//go:embed openapi.yaml
var openapi []byte

func registerDocs(r *gin.Engine) {
	r.GET("/docs/openapi.yaml", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", openapi)
	})
	ui := gin.WrapH(swgui.New("hostelcore", "/docs/openapi.yaml", "/docs/"))
	r.GET("/docs/", ui)
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/docs/")
	})
}
