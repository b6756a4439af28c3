package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/iwvelando/event-viability/pkg/streams"
)

// Mode selects which streams run and whether the real timeline is used.
type Mode string

const (
	// ModeBasic runs tourism, infrastructure and migration with the event
	// treated as happening this year.
	ModeBasic Mode = "basic"
	// ModeComprehensive runs every stream with the event treated as happening
	// this year.
	ModeComprehensive Mode = "comprehensive"
	// ModeFull runs every stream on the real timeline.
	ModeFull Mode = "full"
)

// Modes lists the accepted analysis modes.
var Modes = []Mode{ModeBasic, ModeComprehensive, ModeFull}

// BasicStreams are the streams evaluated in basic mode.
var BasicStreams = []streams.Name{streams.Tourism, streams.InfrastructureNPV, streams.MigrationValue}

// ParseMode resolves a mode name, case-insensitively. An empty name selects
// ModeFull.
func ParseMode(s string) (Mode, error) {
	if strings.TrimSpace(s) == "" {
		return ModeFull, nil
	}
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Modes, m) {
		return "", fmt.Errorf("invalid analysis mode %q: must be one of %v", s, Modes)
	}
	return m, nil
}

// Includes reports whether the stream is evaluated in this mode.
func (m Mode) Includes(name streams.Name) bool {
	if m == ModeBasic {
		return slices.Contains(BasicStreams, name)
	}
	return true
}

// CollapsesTimeline reports whether the mode ignores the years until the event.
func (m Mode) CollapsesTimeline() bool {
	return m == ModeBasic || m == ModeComprehensive
}
