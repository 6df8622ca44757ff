package pkg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var ContentType = struct {
	JSON string
	Text string
	HTML string
}{
	JSON: "application/json",
	Text: "text/plain; charset=utf-8",
	HTML: "text/html; charset=utf-8",
}

func WriteResponseBytes(w http.ResponseWriter, contentType string, message []byte, statusCode int) {
	if contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(statusCode)

	if _, err := w.Write(message); err != nil {
		log.Errorf("failed to write response (%d bytes): %s", len(message), err)
	}
}

// WriteJSON answers with v encoded as JSON. When v cannot be encoded the
// answer is a plain 500 and the encoding error is returned.
func WriteJSON(w http.ResponseWriter, v any, statusCode int) error {
	respBytes, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return fmt.Errorf("marshal response: %w", err)
	}
	WriteResponseBytes(w, ContentType.JSON, respBytes, statusCode)
	return nil
}

// WriteTemplate renders the named template before writing anything, so a
// failing template answers a plain 500 instead of half a page.
func WriteTemplate(w http.ResponseWriter, tmpl *template.Template, name string, data any, statusCode int) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return fmt.Errorf("execute template %s: %w", name, err)
	}
	WriteResponseBytes(w, ContentType.HTML, buf.Bytes(), statusCode)
	return nil
}
