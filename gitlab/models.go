package gitlab

import "time"

// Job statuses as reported by the CI API.
const (
	StatusSuccess  = "success"
	StatusFailed   = "failed"
	StatusCanceled = "canceled"
	StatusRunning  = "running"
	StatusPending  = "pending"
)

// Job is one execution unit within a pipeline stage.
type Job struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Stage     string    `json:"stage"`
	Status    string    `json:"status"`
	Duration  float64   `json:"duration"`
	WebURL    string    `json:"web_url"`
	CreatedAt time.Time `json:"created_at"`
	Commit    Commit    `json:"commit"`
}

// Commit is the subset of commit metadata shown on cards.
type Commit struct {
	ShortID string `json:"short_id"`
	Title   string `json:"title"`
}

// Pipeline is a CI run triggered against a ref.
type Pipeline struct {
	ID        int       `json:"id"`
	Ref       string    `json:"ref"`
	Status    string    `json:"status"`
	WebURL    string    `json:"web_url"`
	CreatedAt time.Time `json:"created_at"`
}
