package reconcile

import (
	"github.com/google/uuid"

	"github.com/growthlens/investscan/internal/model"
)

// fanOut emits one copy of each record per requested state the article
// concerns. The union of the record's own state, the query-tagged states,
// and alias-detected states in the text, intersected with the requested set,
// determines the copies. A record matching no requested state is dropped;
// with no requested set configured every record is kept, stateless ones
// unchanged.
func (e *Engine) fanOut(entries []entry) []entry {
	type fanKey struct{ url, state string }
	seen := make(map[fanKey]bool)
	out := make([]entry, 0, len(entries))

	for _, en := range entries {
		targets := e.fanTargets(en)
		if len(targets) == 0 {
			if len(e.requested) == 0 {
				out = append(out, en)
			}
			continue
		}
		url := model.NormalizeURL(en.rec.SourceURL)
		emitted := 0
		for _, st := range targets {
			k := fanKey{url: url, state: st}
			if seen[k] {
				continue
			}
			seen[k] = true
			copyEntry := en
			if emitted == 0 {
				if en.rec.State == nil || *en.rec.State != st {
					rec := en.rec.Clone()
					rec.State = model.String(st)
					rec.AddRationale("state assigned from fan-out: " + st)
					copyEntry.rec = rec
				}
			} else {
				rec := en.rec.Clone()
				rec.ID = uuid.NewString()
				rec.State = model.String(st)
				rec.AddRationale("fanned out to " + st)
				copyEntry.rec = rec
			}
			out = append(out, copyEntry)
			emitted++
		}
	}
	return out
}

// fanTargets resolves the states a record should be emitted for, the
// record's own state first.
func (e *Engine) fanTargets(en entry) []string {
	var union []string
	add := func(s string) {
		if s != "" && !inList(s, union) {
			union = append(union, s)
		}
	}
	if en.rec.State != nil {
		add(*en.rec.State)
	}
	for _, tag := range en.item.TaggedStates {
		if c, ok := e.states.Canonical(tag); ok {
			add(c)
		}
	}
	for _, d := range e.states.DetectStates(en.item.FullText()) {
		add(d)
	}

	if len(e.requested) == 0 {
		return union
	}
	targets := make([]string, 0, len(union))
	for _, s := range union {
		if e.requestedSet[s] {
			targets = append(targets, s)
		}
	}
	return targets
}
