package core

import (
	"math"
	"time"
)

// Operation is a long-running job performed by the external engine.
type Operation string

const (
	OpDecompile Operation = "decompile"
	OpCompile   Operation = "compile"
)

// Progress is the passive record of the external engine's last report.
// The core never schedules, retries or cancels the work it describes.
type Progress struct {
	Active    bool      `json:"active"`
	Operation Operation `json:"operation,omitempty"`
	Ratio     float64   `json:"ratio"`
	Message   string    `json:"message"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Running reports whether op is the active operation.
func (p Progress) Running(op Operation) bool {
	return p.Active && p.Operation == op
}

// Report is what the external engine sends while it works. The final report of an
// operation has Active set to false.
type Report struct {
	Active  bool
	Ratio   float64
	Message string
}

// Reporter is the callback handed to the external engine.
type Reporter func(Report)

// clampRatio keeps a ratio inside [0, 100]; NaN reads as 0.
func clampRatio(r float64) float64 {
	if math.IsNaN(r) {
		return 0
	}
	return math.Max(0, math.Min(100, r))
}
