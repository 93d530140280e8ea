package continuity

import (
	"time"

	"carebridge/pkg/utils"
)

// StreakWindow is how many recent daily check-ins feed the streak.
const StreakWindow = 60

// Streak counts consecutive UTC days ending today that contain at least one
// check-in. No check-in today means a streak of zero.
func Streak(checkins []time.Time, now time.Time) int {
	days := make(map[string]struct{}, len(checkins))
	for _, t := range checkins {
		days[utils.DayKey(t)] = struct{}{}
	}

	streak := 0
	for day := utils.StartOfUTCDay(now); ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[day.Format(utils.DayLayout)]; !ok {
			return streak
		}
		streak++
	}
}

// SameUTCDay reports whether a and b fall on the same UTC calendar day.
func SameUTCDay(a, b time.Time) bool {
	return utils.DayKey(a) == utils.DayKey(b)
}

// CheckedInToday is true iff the latest check-in is on now's UTC day.
func CheckedInToday(latest *time.Time, now time.Time) bool {
	return latest != nil && SameUTCDay(*latest, now)
}
