package scenario

import "strings"

const helloBanner = "Hello World!"

func init() {
	Register("hello", func() Scenario {
		return NewConsole("hello", []string{"examples/c_hello"}, analyzeHello)
	})

	// Same acceptance, but installs the printf stress app alongside the
	// hello app; exercises multi-app install ordering on real boards.
	Register("hello-printf", func() Scenario {
		return NewConsole("hello-printf",
			[]string{"examples/c_hello", "tests/printf_long"}, analyzeHello)
	})
}

func analyzeHello(lines []string) error {
	for _, line := range lines {
		if strings.Contains(line, helloBanner) {
			return nil
		}
	}
	return Failf("no console line contained %q (%d lines captured)", helloBanner, len(lines))
}
