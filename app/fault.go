package app

import (
	"strings"

	"nxui/ui/gfx"
)

// reportFault writes a panic and its stack to the log, one record per stack
// line so the trace survives line-oriented log sinks.
func reportFault(v any, frame uint64, stack []byte) {
	log := gfx.Logger()
	log.Error("app: fault", "panic", v, "frame", frame)
	if len(stack) == 0 {
		log.Error("app: fault", "stack", "unavailable")
		return
	}
	for _, line := range strings.Split(string(stack), "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			continue
		}
		log.Error("app: fault", "stack", line)
	}
}
