// File: internal/handlers/render.go
package handlers

import (
    "bytes"
    "encoding/json"
    "html/template"
    "log"
    "net/http"
    "sync"
    "time"

    "github.com/yuin/goldmark"

    "github.com/salucare/triage-console/internal/services/board"
)

// Template cache to avoid parsing templates on every request
var (
    templateCache     map[string]*template.Template
    templateCacheOnce sync.Once
)

var markdown = goldmark.New()

// renderMarkdown converts backend markdown (bot messages, analysis
// summaries) to HTML for the templates. On a conversion error the raw text
// is shown escaped rather than dropped.
func renderMarkdown(source string) template.HTML {
    var buf bytes.Buffer
    if err := markdown.Convert([]byte(source), &buf); err != nil {
        return template.HTML(template.HTMLEscapeString(source))
    }
    return template.HTML(buf.String())
}

var templateFuncs = template.FuncMap{
    "markdown":      renderMarkdown,
    "deptColor":     board.DepartmentColor,
    "reasonLabel":   board.ReasonLabel,
    "priorityLabel": board.PriorityLabel,
    "waitTime": func(createdAt time.Time) string {
        return board.FormatWaitTime(createdAt, time.Now())
    },
}

// loadTemplateCache creates a separate template set per page.
func loadTemplateCache() {
    templateCache = make(map[string]*template.Template)

    pages := []string{
        "login.html", "dashboard.html", "requests.html", "conversation.html",
        "my_conversations.html", "departments.html", "error.html",
    }

    for _, page := range pages {
        ts := template.New(page).Funcs(templateFuncs)

        ts, err := ts.ParseFiles("web/templates/layout.html")
        if err != nil {
            log.Fatalf("Error parsing layout for %s: %v", page, err)
        }

        ts, err = ts.ParseFiles("web/templates/" + page)
        if err != nil {
            log.Fatalf("Error parsing %s: %v", page, err)
        }

        templateCache[page] = ts
    }
}

func renderTemplate(w http.ResponseWriter, tmpl string, data map[string]interface{}) {
    templateCacheOnce.Do(loadTemplateCache)
    addSecurityHeaders(w)

    if data == nil {
        data = make(map[string]interface{})
    }

    t, ok := templateCache[tmpl]
    if !ok {
        log.Printf("Template %s not found in cache", tmpl)
        http.Error(w, "Template not found", http.StatusInternalServerError)
        return
    }

    if err := t.ExecuteTemplate(w, "layout.html", data); err != nil {
        log.Printf("Template render error for %s: %v", tmpl, err)
        http.Error(w, "Error rendering page", http.StatusInternalServerError)
    }
}

func addSecurityHeaders(w http.ResponseWriter) {
    w.Header().Set("Content-Security-Policy", "default-src 'self'")
    w.Header().Set("X-Frame-Options", "DENY")
    w.Header().Set("X-Content-Type-Options", "nosniff")
    w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
    writeJSON(w, status, map[string]string{"error": message})
}
