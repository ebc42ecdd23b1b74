package reconcile

import (
	"sort"
	"time"

	"github.com/growthlens/investscan/internal/model"
)

// passOne collapses records sharing a normalized source URL down to the
// single best one.
func passOne(entries []entry) []entry {
	best := make(map[string]entry)
	var order []string
	for _, e := range entries {
		k := model.NormalizeURL(e.rec.SourceURL)
		cur, ok := best[k]
		if !ok {
			best[k] = e
			order = append(order, k)
			continue
		}
		best[k] = chooseBest(cur, e)
	}
	out := make([]entry, 0, len(order))
	for _, k := range order {
		out = append(out, best[k])
	}
	return out
}

// passTwo collapses cross-state duplicates sharing the (rounded crore,
// calendar day) fingerprint. Records missing either field skip this pass.
func passTwo(entries []entry) []entry {
	type key struct {
		amt int
		day string
	}
	clusters := make(map[key][]entry)
	var keys []key
	var skipped []entry
	for _, e := range entries {
		amt, ok := roundedCrore(e.rec)
		if !ok || e.rec.AnnouncementDate == nil {
			skipped = append(skipped, e)
			continue
		}
		if _, valid := dateOf(e.rec); !valid {
			skipped = append(skipped, e)
			continue
		}
		k := key{amt: amt, day: *e.rec.AnnouncementDate}
		if _, seen := clusters[k]; !seen {
			keys = append(keys, k)
		}
		clusters[k] = append(clusters[k], e)
	}

	out := make([]entry, 0, len(entries))
	for _, k := range keys {
		cluster := clusters[k]
		winner := cluster[0]
		for _, e := range cluster[1:] {
			if passTwoBetter(e, winner) {
				winner = e
			}
		}
		out = append(out, winner)
	}
	return append(out, skipped...)
}

// passTwoBetter reports whether a beats b for a cross-state cluster: higher
// opportunity score, then company presence, then publisher priority, then
// more recent date, then the earlier-seen record.
func passTwoBetter(a, b entry) bool {
	if a.rec.OpportunityScore != b.rec.OpportunityScore {
		return a.rec.OpportunityScore > b.rec.OpportunityScore
	}
	if (a.rec.Company != nil) != (b.rec.Company != nil) {
		return a.rec.Company != nil
	}
	if pa, pb := priorityOf(a.rec), priorityOf(b.rec); pa != pb {
		return pa < pb
	}
	da, aok := dateOf(a.rec)
	db, bok := dateOf(b.rec)
	if aok && bok && !da.Equal(db) {
		return da.After(db)
	}
	return a.idx < b.idx
}

// passThree merges near-date duplicates within a state: same rounded crore
// amount, announcement dates at most one calendar day apart. Catches
// adjacent-day duplicates that the exact-day fingerprint of pass two cannot.
func passThree(entries []entry) []entry {
	type key struct {
		state string
		amt   int
	}
	groups := make(map[key][]entry)
	var keys []key
	var skipped []entry
	for _, e := range entries {
		amt, ok := roundedCrore(e.rec)
		if !ok || e.rec.State == nil {
			skipped = append(skipped, e)
			continue
		}
		k := key{state: *e.rec.State, amt: amt}
		if _, seen := groups[k]; !seen {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], e)
	}

	out := make([]entry, 0, len(entries))
	for _, k := range keys {
		out = append(out, mergeNearDates(groups[k])...)
	}
	return append(out, skipped...)
}

// mergeNearDates sorts a group by date descending and chain-merges adjacent
// records within one day of each other. Undated records pass through
// unmerged.
func mergeNearDates(group []entry) []entry {
	var dated, undated []entry
	for _, e := range group {
		if _, ok := dateOf(e.rec); ok {
			dated = append(dated, e)
		} else {
			undated = append(undated, e)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		di, _ := dateOf(dated[i].rec)
		dj, _ := dateOf(dated[j].rec)
		return di.After(dj)
	})

	var out []entry
	var prev time.Time
	for i, e := range dated {
		d, _ := dateOf(e.rec)
		if i > 0 && withinOneDay(prev, d) {
			out[len(out)-1] = chooseBest(out[len(out)-1], e)
		} else {
			out = append(out, e)
		}
		prev = d
	}
	return append(out, undated...)
}
