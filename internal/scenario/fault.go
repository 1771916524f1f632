package scenario

import "strings"

// faultMarkers are the kernel's crash signatures. Any of these anywhere in
// the output fails the run.
var faultMarkers = []string{
	"Kernel panic",
	"panicked at",
	"Hard fault",
}

func init() {
	// Boots the blink app and checks that nothing crashes. Silence is a
	// pass: the only thing under test is the absence of faults.
	Register("no-faults", func() Scenario {
		return NewConsole("no-faults", []string{"examples/blink"}, analyzeNoFaults)
	})
}

func analyzeNoFaults(lines []string) error {
	for _, line := range lines {
		for _, marker := range faultMarkers {
			if strings.Contains(line, marker) {
				return Failf("fault marker %q in console output: %s", marker, line)
			}
		}
	}
	return nil
}
