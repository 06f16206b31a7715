// Package duration turns a free-text learning goal into an hour budget.
package duration

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Budget is the hour allotment derived from a goal.
type Budget struct {
	TotalHours               int    `json:"total_hours"`
	Label                    string `json:"label"`
	IsExplicitHourConstraint bool   `json:"is_explicit_hour_constraint"`
}

// DefaultHours applies when the goal carries neither a duration nor a
// recognised level keyword.
const DefaultHours = 24

// Hour tokens are checked before anything else so "react in 3 hours" is
// never read as days.
var hourPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*hour`),
	regexp.MustCompile(`(\d+)\s*hr`),
	regexp.MustCompile(`(\d+)\s*h\b`),
}

type unitPattern struct {
	re         *regexp.Regexp
	unit       string
	multiplier int
}

var unitPatterns = []unitPattern{
	{regexp.MustCompile(`(\d+)\s*day`), "day", 24},
	{regexp.MustCompile(`(\d+)\s*week`), "week", 7 * 24},
	{regexp.MustCompile(`(\d+)\s*month`), "month", 30 * 24},
}

type levelTier struct {
	keywords []string
	hours    int
}

// Checked in order; the first tier with a matching keyword wins.
var levelTiers = []levelTier{
	{[]string{"basic", "introduction", "fundamental", "crash"}, 8},
	{[]string{"intermediate", "comprehensive"}, 20},
	{[]string{"advanced", "master", "complete"}, 40},
}

// Parse derives a Budget from goal. It never fails.
func Parse(goal string) Budget {
	lower := strings.ToLower(goal)

	for _, re := range hourPatterns {
		if n, ok := firstNumber(re, lower); ok {
			return Budget{
				TotalHours:               n,
				Label:                    plural(n, "hour"),
				IsExplicitHourConstraint: true,
			}
		}
	}

	for _, p := range unitPatterns {
		if n, ok := firstNumber(p.re, lower); ok && n <= math.MaxInt/p.multiplier {
			return Budget{
				TotalHours: n * p.multiplier,
				Label:      plural(n, p.unit),
			}
		}
	}

	for _, tier := range levelTiers {
		for _, kw := range tier.keywords {
			if strings.Contains(lower, kw) {
				return Budget{TotalHours: tier.hours, Label: plural(tier.hours, "hour")}
			}
		}
	}

	return Budget{TotalHours: DefaultHours, Label: plural(DefaultHours, "hour")}
}

// firstNumber returns the number captured by re's first match, raised to 1
// so a budget is never empty.
func firstNumber(re *regexp.Regexp, s string) (int, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Digit runs too long for int.
		return 0, false
	}
	return max(n, 1), true
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
