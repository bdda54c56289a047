package api

import (
	"net/http"

	"mas-astro/nightwatch/internal/astro"
)

// DigestPreview is the JSON shape of an assembled digest.
type DigestPreview struct {
	Content     string            `json:"content"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Fields      []DigestFieldView `json:"fields"`
	ImageURL    string            `json:"imageUrl,omitempty"`
	FooterText  string            `json:"footerText"`
}

type DigestFieldView struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// DigestPreviewHandler handles GET /digest/preview: assembles the digest
// exactly as the scheduler would and returns it as JSON without posting
// anything. Used to sanity-check provider keys and content from a browser.
func DigestPreviewHandler(builder *astro.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if builder == nil {
			respondWithError(w, http.StatusServiceUnavailable, "digest is not configured")
			return
		}

		digest := builder.Build(r.Context())

		preview := DigestPreview{
			Content:     digest.Content,
			Title:       digest.Title,
			Description: digest.Description,
			ImageURL:    digest.ImageURL,
			FooterText:  digest.FooterText,
		}
		for _, f := range digest.Fields {
			preview.Fields = append(preview.Fields, DigestFieldView{Name: f.Name, Value: f.Value})
		}

		respondWithSuccess(w, http.StatusOK, &preview)
	}
}
