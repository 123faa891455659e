package pipeline

import "github.com/sdtd-tools/localedump/internal/extract"

// RunStats tracks per-file outcomes across a dump run. Path lists are in
// discovery order.
type RunStats struct {
	Total       int
	Contributed int
	Rows        int // Data rows written, header excluded.
	// Keys defined by more than one contributing file.
	DuplicateKeys int
	Ignored       []string
	Errored       []string
}

// record files one result under its terminal state.
func (s *RunStats) record(res extract.FileResult) {
	switch res.Status {
	case extract.StatusContributed:
		s.Contributed++
	case extract.StatusIgnored:
		s.Ignored = append(s.Ignored, res.Path)
	default:
		s.Errored = append(s.Errored, res.Path)
	}
}
