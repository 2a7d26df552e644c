package models

// HealthCheckResponse holds the structure for the health endpoint
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
