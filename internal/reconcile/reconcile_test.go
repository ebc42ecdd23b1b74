package reconcile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growthlens/investscan/internal/heuristic"
	"github.com/growthlens/investscan/internal/model"
)

func TestNew_CanonicalizesRequestedStates(t *testing.T) {
	eng := New(nil, Options{RequestedStates: []string{"karnataka", "Orissa", "Atlantis", "Karnataka"}})
	assert.Equal(t, []string{"Karnataka", "Odisha"}, eng.requested)
}

func TestEngineRun_EmptyInput(t *testing.T) {
	eng := New(nil, Options{})
	out, stats := eng.Run(context.Background(), nil)
	assert.Empty(t, out)
	assert.Zero(t, stats.Input)
	assert.Zero(t, stats.Output)
}

func TestEngineRun_CollapsesURLDuplicatesAndFansOut(t *testing.T) {
	eng := New(nil, Options{RequestedStates: []string{"Karnataka", "Tamil Nadu"}})

	item := model.NewDiscoveredItem(
		"Foxconn to invest Rs 1,200 crore in two states",
		"https://www.example.com/foxconn?ref=rss",
		"Example News",
		"Karnataka",
	)
	item.Text = "Foxconn will set up electronics assembly units in Karnataka and Tamil Nadu with an investment of Rs 1,200 crore."

	rec := model.NewRecordForItem(item)
	rec.Company = model.String("Foxconn")
	rec.AmountINRCrore = model.Float(1200)
	rec.State = model.String("Karnataka")

	// the same story discovered again under a URL variant
	dup := model.NewRecordForItem(item)
	dup.SourceURL = "http://example.com/foxconn"

	out, stats := eng.Run(context.Background(), []Candidate{
		{Record: rec, Item: item},
		{Record: dup, Item: item},
	})

	require.Len(t, out, 2)
	assert.Equal(t, 2, stats.Input)
	assert.Equal(t, 1, stats.DuplicatesRemoved)
	assert.Equal(t, 2, stats.Output)

	assert.Equal(t, "Karnataka", *out[0].State)
	assert.Equal(t, "Tamil Nadu", *out[1].State)
	assert.NotEqual(t, out[0].ID, out[1].ID)
	for _, r := range out {
		require.NotNil(t, r.Company)
		assert.Equal(t, foxconnCanonical, *r.Company)
		require.NotNil(t, r.Sector)
		assert.Equal(t, model.SectorEMS, *r.Sector)
		// amount 1200 saturates the 50-point amount component
		assert.Equal(t, 50, r.OpportunityScore)
	}
}

func TestEngineRun_RerunIsFixedPoint(t *testing.T) {
	eng := New(nil, Options{RequestedStates: []string{"Karnataka", "Tamil Nadu"}})

	item := model.NewDiscoveredItem(
		"Foxconn to invest Rs 1,200 crore in two states",
		"https://www.example.com/foxconn",
		"Example News",
		"Karnataka",
	)
	item.Text = "Foxconn will set up electronics assembly units in Karnataka and Tamil Nadu with an investment of Rs 1,200 crore."
	rec := model.NewRecordForItem(item)

	out, _ := eng.Run(context.Background(), []Candidate{{Record: rec, Item: item}})
	require.Len(t, out, 2)

	again := make([]Candidate, len(out))
	for i, r := range out {
		again[i] = Candidate{Record: r, Item: item}
	}
	out2, stats2 := eng.Run(context.Background(), again)

	// deduped output is a fixed point: the fan-out siblings collapse in
	// pass one and fan back out to the same states
	require.Len(t, out2, len(out))
	assert.Equal(t, "Karnataka", *out2[0].State)
	assert.Equal(t, "Tamil Nadu", *out2[1].State)
	assert.Equal(t, len(out), stats2.Output)
}

func TestEngineRun_CrossStateDuplicateCollapses(t *testing.T) {
	eng := New(nil, Options{})

	kaItem := model.NewDiscoveredItem("Vedanta announces major investment", "https://business-standard.com/vedanta-ka", "Business Standard", "Karnataka")
	kaItem.Text = "Vedanta announced the investment on Tuesday."
	ka := model.NewRecordForItem(kaItem)
	ka.Company = model.String("Vedanta")
	ka.AmountINRCrore = model.Float(5000)
	ka.AnnouncementDate = model.String("2026-08-12")
	ka.State = model.String("Karnataka")

	odItem := model.NewDiscoveredItem("Rs 5,000 crore project cleared", "https://example.com/odisha-project", "Example News", "Odisha")
	odItem.Text = "The project was cleared on Tuesday."
	od := model.NewRecordForItem(odItem)
	od.AmountINRCrore = model.Float(5000)
	od.AnnouncementDate = model.String("2026-08-12")
	od.State = model.String("Odisha")

	out, stats := eng.Run(context.Background(), []Candidate{
		{Record: ka, Item: kaItem},
		{Record: od, Item: odItem},
	})

	// identical amount and day fingerprint the same deal across states;
	// the record with a company name wins the cluster
	require.Len(t, out, 1)
	assert.Equal(t, 1, stats.DuplicatesRemoved)
	require.NotNil(t, out[0].Company)
	assert.Equal(t, "Vedanta", *out[0].Company)
	assert.Equal(t, "Karnataka", *out[0].State)
}

func TestEngineRun_FoxconnHeadlineEndToEnd(t *testing.T) {
	eng := New(nil, Options{RequestedStates: []string{"Karnataka"}})

	item := model.NewDiscoveredItem(
		"Foxconn to invest ₹500 crore in Karnataka EV plant, 2000 jobs",
		"https://example.com/foxconn-ev",
		"Example News",
		"Karnataka",
	)
	rec := heuristic.Infer(item, model.NewRecordForItem(item))

	out, _ := eng.Run(context.Background(), []Candidate{{Record: rec, Item: item}})

	require.Len(t, out, 1)
	got := out[0]
	require.NotNil(t, got.Company)
	assert.Equal(t, "Foxconn (Hon Hai Precision Industry)", *got.Company)
	require.NotNil(t, got.Sector)
	assert.Equal(t, model.SectorAutomobile, *got.Sector)
	require.NotNil(t, got.AmountINRCrore)
	assert.InDelta(t, 500.0, *got.AmountINRCrore, 0.001)
	require.NotNil(t, got.Jobs)
	assert.Equal(t, 2000, *got.Jobs)
	require.NotNil(t, got.State)
	assert.Equal(t, "Karnataka", *got.State)
}

func TestEngineRun_GovernmentTagging(t *testing.T) {
	eng := New(nil, Options{})

	item := model.NewDiscoveredItem("Industrial park coming up", "https://example.com/park", "Odisha TV", "Odisha")
	item.Text = "The Chief Minister said the state cabinet cleared the industrial park in Jharsuguda."
	rec := model.NewRecordForItem(item)

	out, _ := eng.Run(context.Background(), []Candidate{{Record: rec, Item: item}})
	require.Len(t, out, 1)
	require.NotNil(t, out[0].Company)
	assert.Equal(t, "Government of Odisha", *out[0].Company)
	require.NotNil(t, out[0].State)
	assert.Equal(t, "Odisha", *out[0].State)
}

func TestEngineRun_NormalizesStateSpelling(t *testing.T) {
	eng := New(nil, Options{})

	item := model.NewDiscoveredItem("Plant announced", "https://example.com/tn-plant", "Example News", "Tamil Nadu")
	rec := model.NewRecordForItem(item)
	rec.State = model.String("tamilnadu")

	out, _ := eng.Run(context.Background(), []Candidate{{Record: rec, Item: item}})
	require.Len(t, out, 1)
	require.NotNil(t, out[0].State)
	assert.Equal(t, "Tamil Nadu", *out[0].State)
}

func TestEngineRun_ClusteredRecordsPrecedePassThroughs(t *testing.T) {
	eng := New(nil, Options{})

	stateless := model.NewDiscoveredItem("Policy update announced", "https://example.com/policy", "Example News", "")
	recA := model.NewRecordForItem(stateless)

	located := model.NewDiscoveredItem("Gujarat plant", "https://example.com/gujarat", "Example News", "Gujarat")
	located.Text = "A ₹300 crore plant will come up in Sanand."
	recB := model.NewRecordForItem(located)
	recB.State = model.String("Gujarat")

	out, _ := eng.Run(context.Background(), []Candidate{
		{Record: recA, Item: stateless},
		{Record: recB, Item: located},
	})

	require.Len(t, out, 2)
	// the clusterable record moves ahead of the stateless pass-through
	assert.Equal(t, "https://example.com/gujarat", out[0].SourceURL)
	assert.Nil(t, out[1].State)
}
