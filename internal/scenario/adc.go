package scenario

import (
	"regexp"
	"strings"
)

// Not every board wires an ADC; the app announces when the driver is
// absent, and that legitimately passes the test.
const adcAbsentMarker = "ADC driver not present"

var adcReadingRe = regexp.MustCompile(`^ADC Reading: \d+`)

func init() {
	Register("adc", func() Scenario {
		return NewConsole("adc", []string{"tests/adc"}, analyzeADC)
	})
}

func analyzeADC(lines []string) error {
	for _, line := range lines {
		if strings.Contains(line, adcAbsentMarker) {
			return nil
		}
	}
	for _, line := range lines {
		if adcReadingRe.MatchString(line) {
			return nil
		}
	}
	return Failf("ADC driver present but no reading line appeared (%d lines captured)", len(lines))
}
