package quiz

import (
	"github.com/abhisek/pathfinder/internal/report"
)

// submitDoneMsg carries the outcome of a Session.Submit call.
type submitDoneMsg struct {
	Result *report.Result
	Err    error
}
