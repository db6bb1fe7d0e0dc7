package middleware

import (
	"mime"
	"net/http"

	"github.com/ruthgorge/expedition/internal/api/models"
)

// ContentTypeJSON defaults the response Content-Type to application/json.
// Handlers that write CSV, XLSX or PDF set their own before writing.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "application/json")
		}
		next.ServeHTTP(w, r)
	})
}

// RequireJSON rejects POST, PUT and PATCH bodies that are declared as
// anything other than application/json. Empty bodies and a missing
// Content-Type pass, so action endpoints like toggles need no header.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			ct := r.Header.Get("Content-Type")
			if ct != "" && r.ContentLength != 0 && !isJSON(ct) {
				problem := models.NewUnsupportedMediaType(GetRequestID(r.Context()), ct)
				problem.Instance = r.URL.Path
				problem.Write(w)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}
