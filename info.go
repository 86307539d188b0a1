package oaspick

import "time"

// AppName is the human-facing name reported by the info endpoint.
const AppName = "Swagger Extractor"

// Endpoint describes one route exposed by the info endpoint.
type Endpoint struct {
	Path        string `json:"path"`
	Method      string `json:"method"`
	Description string `json:"description"`
}

// AppInfo is the static metadata served by /api/version and the MCP info tool.
type AppInfo struct {
	Version     string     `json:"version"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Build       string     `json:"build"`
	ReleaseDate string     `json:"releaseDate"`
	Endpoints   []Endpoint `json:"endpoints"`
}

// Info returns the tool metadata. ReleaseDate is the UTC date of now, so the
// value is stable for a given day only.
func Info(now time.Time) AppInfo {
	return AppInfo{
		Version:     Version(),
		Name:        AppName,
		Description: "API documentation extractor tool",
		Status:      "stable",
		Build:       Commit(),
		ReleaseDate: now.UTC().Format(time.DateOnly),
		Endpoints: []Endpoint{
			{Path: "/api/version", Method: "GET", Description: "Get application version information"},
			{Path: "/api/validate", Method: "POST", Description: "Validate an OpenAPI/Swagger document"},
			{Path: "/api/extract", Method: "POST", Description: "Extract selected operations from an OpenAPI/Swagger document"},
		},
	}
}
