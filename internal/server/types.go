package server

import (
	"image"

	"github.com/fingervision/ridgemark/internal/pipeline"
)

// analyzer is the pipeline surface the server depends on. A fresh pipeline
// is created per request because pipelines keep per-run state.
type analyzer interface {
	Run(img image.Image) (*pipeline.Result, *image.RGBA, error)
}

// analyzerFactory builds one analyzer per request.
type analyzerFactory func() (analyzer, error)

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	CORSOrigin  string
	MaxUploadMB int64
	TimeoutSec  int
	Pipeline    pipeline.Config
}

// DefaultConfig returns server defaults.
func DefaultConfig() Config {
	return Config{
		Host:        "localhost",
		Port:        8080,
		CORSOrigin:  "*",
		MaxUploadMB: 20,
		TimeoutSec:  30,
		Pipeline:    pipeline.DefaultConfig(),
	}
}

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// ErrorResponse is the JSON error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
