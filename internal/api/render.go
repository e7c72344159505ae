package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/bloggify-frontend/internal/content"
	"github.com/bloggify-frontend/internal/pagination"
	"github.com/bloggify-frontend/internal/service"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// excerptLength is the number of characters of a post body shown on a card
const excerptLength = 160

var templateFuncs = template.FuncMap{
	"excerpt": func(markup string) string { return content.Excerpt(markup, excerptLength) },
	"add":     func(a, b int) int { return a + b },
	"sub":     func(a, b int) int { return a - b },
	// previewURL marks a data URL built by models.ImageFile.DataURL as safe for src attributes
	"previewURL": func(s string) template.URL { return template.URL(s) },
	"initial": func(name string) string {
		for _, r := range name {
			return string(r)
		}
		return "?"
	},
}

func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"))
}

// renderPage renders a full template with the navbar session and pending flash
func renderPage(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Session"] = currentSession(c)
	data["Flash"] = currentFlash(c)
	data["RequestID"] = c.GetString(ctxKeyRequestID)
	c.HTML(status, name, data)
}

// renderNotFound renders the page shown for unknown routes and forbidden admin routes
func renderNotFound(c *gin.Context) {
	renderPage(c, http.StatusNotFound, "not_found.html", gin.H{"Title": "Page not found"})
}

// listData is the template data shared by the blog and admin lists
func listData(snap service.ListSnapshot, basePath string) gin.H {
	return gin.H{
		"Items":      snap.Items,
		"Pagination": snap.Pagination,
		"Window":     pagination.Compute(snap.Pagination.CurrentPage, snap.Pagination.TotalPages),
		"Loading":    snap.Loading,
		"Loaded":     snap.Loaded,
		"BasePath":   basePath,
	}
}
