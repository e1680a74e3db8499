package admin

// fallback implements the pages shown while statements are still being loaded

import (
	"html/template"
	"net/http"

	"github.com/FAU-CDI/rdfadmin/internal/status"
)

const (
	adminNotReady     = "statements are still being loaded and the admin is not ready"
	adminRetrySeconds = "5"
)

type htmlLoadingContext struct {
	Stage  status.StageStats
	Footer template.HTML
}

func (admin *Admin) htmlFallback(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	w.Header().Set("Retry-After", adminRetrySeconds)
	w.WriteHeader(http.StatusServiceUnavailable)
	err := loadingTemplate.Execute(w, htmlLoadingContext{
		Stage:  admin.Status.Current(),
		Footer: admin.footer,
	})
	if err != nil {
		admin.Status.LogError("render fallback", err)
	}
}

// ProgressMessage is returned by the api while the admin is not ready.
type ProgressMessage struct {
	Message string `json:"message"`
	Stage   string `json:"stage"`
	Count   int    `json:"count"`
}

func (admin *Admin) jsonFallback(w http.ResponseWriter, _ *http.Request) {
	current := admin.Status.Current()

	w.Header().Set("Retry-After", adminRetrySeconds)
	admin.jsonSend(w, http.StatusServiceUnavailable, ProgressMessage{
		Message: adminNotReady,
		Stage:   string(current.Stage),
		Count:   current.Count,
	})
}
