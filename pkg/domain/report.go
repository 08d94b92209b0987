package domain

import "time"

// Report summarises one complete behaviour run.
type Report struct {
	ID        string        `json:"id"`
	Device    string        `json:"device,omitempty"`
	Behaviour string        `json:"behaviour"`
	Result    Result        `json:"result"`
	Ticks     int           `json:"ticks"`
	Visited   []string      `json:"visited"`
	PeerRead  bool          `json:"peer_read,omitempty"`
	Failure   *HaltError    `json:"failure,omitempty"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Succeeded reports whether the run reached Finished.
func (r *Report) Succeeded() bool {
	return r != nil && r.Result == ResultFinished
}
