package store

import (
	"time"

	"github.com/danielpatrickdp/wcst/go-controller/internal/triallog"
)

// #region session
// Session is the archived header of one completed (or abandoned) session.
type Session struct {
	ID          string
	Participant string
	Mode        string // "scored" | "practice"
	Seed        int64
	StartedAt   time.Time
	FinishedAt  time.Time
	Summary     triallog.Summary
}

// #endregion session
