package reconcile

import (
	"math"
	"strings"
	"time"

	"github.com/growthlens/investscan/internal/model"
)

// publisherPriority ranks publisher domains; lower index is more trusted.
// Unlisted domains rank below every listed one.
var publisherPriority = []string{
	"economictimes.indiatimes.com",
	"business-standard.com",
	"livemint.com",
	"thehindubusinessline.com",
	"financialexpress.com",
	"moneycontrol.com",
	"timesofindia.indiatimes.com",
	"hindustantimes.com",
	"thehindu.com",
	"ndtvprofit.com",
	"newindianexpress.com",
	"deccanherald.com",
	"telegraphindia.com",
	"tribuneindia.com",
}

// priorityOf returns the publisher rank for a record's source URL.
func priorityOf(rec model.InvestmentRecord) int {
	host := hostOf(rec.SourceURL)
	for i, d := range publisherPriority {
		if host == d || strings.HasSuffix(host, "."+d) {
			return i
		}
	}
	return len(publisherPriority)
}

func hostOf(rawURL string) string {
	norm := model.NormalizeURL(rawURL)
	if i := strings.IndexByte(norm, '/'); i >= 0 {
		return norm[:i]
	}
	return norm
}

// chooseBest resolves two records reporting the same story: publisher
// priority, then field completeness, then larger amount, then more recent
// date, then the earlier-seen record.
func chooseBest(a, b entry) entry {
	if pa, pb := priorityOf(a.rec), priorityOf(b.rec); pa != pb {
		if pa < pb {
			return a
		}
		return b
	}
	if fa, fb := a.rec.FilledFieldCount(), b.rec.FilledFieldCount(); fa != fb {
		if fa > fb {
			return a
		}
		return b
	}
	if aa, ab := a.rec.Amount(), b.rec.Amount(); aa != ab {
		if aa > ab {
			return a
		}
		return b
	}
	da, aok := dateOf(a.rec)
	db, bok := dateOf(b.rec)
	switch {
	case aok && bok && !da.Equal(db):
		if da.After(db) {
			return a
		}
		return b
	case aok && !bok:
		return a
	case bok && !aok:
		return b
	}
	if a.idx <= b.idx {
		return a
	}
	return b
}

// dateOf parses the record's announcement date at UTC midnight.
func dateOf(rec model.InvestmentRecord) (time.Time, bool) {
	if rec.AnnouncementDate == nil {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", *rec.AnnouncementDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// roundedCrore returns the amount as a rounded integer crore for cluster
// keys.
func roundedCrore(rec model.InvestmentRecord) (int, bool) {
	if rec.AmountINRCrore == nil {
		return 0, false
	}
	return int(math.Round(*rec.AmountINRCrore)), true
}

// withinOneDay reports whether two dates differ by at most one calendar day.
func withinOneDay(a, b time.Time) bool {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return d <= 24*time.Hour
}
