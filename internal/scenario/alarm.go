package scenario

import (
	"regexp"
	"strconv"
)

// Alarm test output: one line per fire, "<alarm-id> <fired-at> <expired-at>".
var alarmLineRe = regexp.MustCompile(`^(\d+)\s+(\d+)\s+(\d+)$`)

const (
	// alarm 1 runs at half the period of alarm 2, so its fire count must
	// be roughly double. The accepted count ratio band tolerates capture
	// windows that cut off mid-period.
	alarmRatioMin = 1.5
	alarmRatioMax = 2.5
)

func init() {
	Register("multi-alarm", func() Scenario {
		return NewConsole("multi-alarm",
			[]string{"tests/multi_alarm_simple"}, analyzeMultiAlarm)
	})
}

func analyzeMultiAlarm(lines []string) error {
	counts := map[int]int{}
	lastFired := map[int]uint64{}

	for _, line := range lines {
		m := alarmLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		id, _ := strconv.Atoi(m[1])
		fired, _ := strconv.ParseUint(m[2], 10, 64)

		if prev, seen := lastFired[id]; seen && fired < prev {
			return Failf("alarm %d fire timestamps went backwards (%d after %d)", id, fired, prev)
		}
		lastFired[id] = fired
		counts[id]++
	}

	c1, c2 := counts[1], counts[2]
	if c1 == 0 || c2 == 0 {
		return Failf("one or both alarms did not fire (alarm 1: %d, alarm 2: %d)", c1, c2)
	}

	ratio := float64(c1) / float64(c2)
	if ratio < alarmRatioMin || ratio > alarmRatioMax {
		return Failf("alarm 1 did not fire roughly twice as often as alarm 2: %d vs %d (ratio %.2f, accepted %.1f-%.1f)",
			c1, c2, ratio, alarmRatioMin, alarmRatioMax)
	}
	return nil
}
