package handler

import (
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ogstudio/internal/models"
	"ogstudio/internal/params"
	"ogstudio/internal/service"
)

const (
	ogPath         = "/api/og"
	fallbackHeader = "X-OG-Fallback"
)

type OGHandler struct {
	og           *service.OG
	cacheControl string
	baseURL      string
}

func NewOGHandler(og *service.OG, cacheControl, baseURL string) *OGHandler {
	return &OGHandler{
		og:           og,
		cacheControl: cacheControl,
		baseURL:      strings.TrimRight(baseURL, "/"),
	}
}

// PNG serves the card described by the query string. Parameter problems
// never produce an error status.
func (h *OGHandler) PNG(c *gin.Context) {
	h.render(c, service.FormatPNG)
}

func (h *OGHandler) SVG(c *gin.Context) {
	h.render(c, service.FormatSVG)
}

func (h *OGHandler) render(c *gin.Context, format service.Format) {
	res := h.og.Render(c.Request.Context(), c.Request.URL.Query(), format)

	c.Header("Cache-Control", h.cacheControl)
	if res.Fallback {
		c.Header(fallbackHeader, "1")
	}
	c.Data(http.StatusOK, res.ContentType, res.Body)
}

// Params echoes the normalized card and its canonical query.
func (h *OGHandler) Params(c *gin.Context) {
	card := params.Normalize(c.Request.URL.Query())
	c.JSON(http.StatusOK, gin.H{
		"params": card,
		"query":  params.CanonicalQuery(card),
		"width":  card.Width(),
		"height": card.Height(),
	})
}

type presetResponse struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Params      models.Card `json:"params"`
	Query       string      `json:"query"`
	URL         string      `json:"url"`
}

func (h *OGHandler) Presets(c *gin.Context) {
	presets := params.Presets()
	out := make([]presetResponse, 0, len(presets))
	for _, p := range presets {
		query := params.CanonicalQuery(p.Card)
		out = append(out, presetResponse{
			Name:        p.Name,
			Description: p.Description,
			Params:      p.Card,
			Query:       query,
			URL:         h.imageURL(query),
		})
	}
	c.JSON(http.StatusOK, gin.H{"presets": out})
}

// Meta returns the absolute image URL and the <meta> tags that embed it.
func (h *OGHandler) Meta(c *gin.Context) {
	card := params.Normalize(c.Request.URL.Query())
	imageURL := h.imageURL(params.CanonicalQuery(card))
	c.JSON(http.StatusOK, gin.H{
		"url":    imageURL,
		"width":  card.Width(),
		"height": card.Height(),
		"tags":   MetaTags(imageURL, card.Width(), card.Height()),
	})
}

func (h *OGHandler) imageURL(query string) string {
	return h.baseURL + ogPath + "?" + query
}

// MetaTags renders the Open Graph and Twitter tags for an image.
func MetaTags(imageURL string, width, height int) string {
	u := html.EscapeString(imageURL)
	return fmt.Sprintf(`<meta property="og:image" content="%s" />
<meta property="og:image:width" content="%d" />
<meta property="og:image:height" content="%d" />
<meta name="twitter:image" content="%s" />
<meta name="twitter:card" content="summary_large_image" />`, u, width, height, u)
}
