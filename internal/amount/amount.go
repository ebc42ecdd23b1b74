// Package amount extracts currency magnitudes and headcounts from Indian
// business news text. The canonical unit is the crore (10^7 rupees).
package amount

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// amountPattern matches one currency-magnitude mention: an optional rupee
// prefix, a number with thousands separators, and a unit. "lakh crore" must
// precede the bare units in the alternation so compounds win.
var amountPattern = regexp.MustCompile(
	`(?i)(?:₹|rs\.?|inr)?\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*(lakh[\s-]+crores?|crores?|lakhs?|cr\b)`)

// jobsPattern matches headcount mentions such as "2000 jobs", "5,000 direct
// jobs", or "1 lakh jobs".
var jobsPattern = regexp.MustCompile(
	`(?i)([0-9][0-9,]*(?:\.[0-9]+)?)\s*(lakh|thousand)?\s*(?:\+\s*)?(?:new\s+|direct\s+|indirect\s+|additional\s+)?(?:jobs?\b|employment\b)`)

// AllAmountsCrore returns every currency-magnitude mention in text converted
// to crore, in match order. Non-positive and non-finite values are discarded.
func AllAmountsCrore(text string) []float64 {
	if text == "" {
		return nil
	}

	var out []float64
	for _, m := range amountPattern.FindAllStringSubmatch(text, -1) {
		v, ok := parseNumber(m[1])
		if !ok {
			continue
		}
		v *= unitMultiplier(m[2])
		if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// MaxAmountCrore returns the largest crore figure mentioned in text, or nil
// when nothing matches. The largest figure in an article is taken as the
// headline investment; smaller figures (per-unit costs, earlier tranches)
// are noise.
func MaxAmountCrore(text string) *float64 {
	all := AllAmountsCrore(text)
	if len(all) == 0 {
		return nil
	}
	best := all[0]
	for _, v := range all[1:] {
		if v > best {
			best = v
		}
	}
	return &best
}

// AllJobs returns every jobs/employment figure mentioned in text, in match
// order.
func AllJobs(text string) []int {
	if text == "" {
		return nil
	}

	var out []int
	for _, m := range jobsPattern.FindAllStringSubmatch(text, -1) {
		v, ok := parseNumber(m[1])
		if !ok {
			continue
		}
		switch strings.ToLower(m[2]) {
		case "lakh":
			v *= 100000
		case "thousand":
			v *= 1000
		}
		if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		n := int(math.Round(v))
		if n > 0 {
			out = append(out, n)
		}
	}
	return out
}

// MaxJobs returns the largest jobs/employment figure mentioned in text, or
// nil when none is found.
func MaxJobs(text string) *int {
	all := AllJobs(text)
	if len(all) == 0 {
		return nil
	}
	best := all[0]
	for _, v := range all[1:] {
		if v > best {
			best = v
		}
	}
	return &best
}

// HasAmount reports whether text contains any currency-magnitude mention.
func HasAmount(text string) bool {
	return amountPattern.MatchString(text)
}

// HasJobs reports whether text contains any headcount mention.
func HasJobs(text string) bool {
	return jobsPattern.MatchString(text)
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// unitMultiplier converts a matched unit to crore. One lakh crore is 10^5
// crore; one lakh is 10^-2 crore.
func unitMultiplier(unit string) float64 {
	u := strings.ToLower(strings.Join(strings.Fields(strings.ReplaceAll(unit, "-", " ")), " "))
	switch {
	case strings.HasPrefix(u, "lakh crore"):
		return 100000
	case strings.HasPrefix(u, "crore"), u == "cr":
		return 1
	case strings.HasPrefix(u, "lakh"):
		return 0.01
	}
	return 1
}
