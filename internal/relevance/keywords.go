package relevance

// Keyword tables compiled once at classifier construction; never mutated
// afterwards.

// hardNegatives mark topics that are never investment announcements.
var hardNegatives = []string{
	"election", "polls", "exit poll", "cricket", "ipl", "football",
	"tournament", "bollywood", "box office", "murder", "arrested", "bail",
	"crime branch", "bypoll",
}

// softNegatives mark event coverage that only sometimes carries a deal.
var softNegatives = []string{
	"summit", "conclave", "roadshow", "expo", "exhibition", "seminar",
	"webinar", "felicitation", "delegation",
}

// positives mark investment-announcement vocabulary. A title hit outweighs a
// body hit.
var positives = []string{
	"invest", "investment", "crore", "capex", "plant", "factory",
	"manufacturing", "facility", "greenfield", "brownfield", "expansion",
	"mou", "industrial park", "sez", "semiconductor", "gigafactory",
	"data centre", "data center", "refinery", "jobs", "employment",
	"production unit", "commissioned",
}

// educationContext words flag MoUs about academics and social programmes
// rather than industry.
var educationContext = []string{
	"university", "school", "college", "students", "curriculum",
	"scholarship", "skill development", "academic", "training institute",
	"vocational",
}

// industrialContext words rescue an MoU mention from the education penalty.
var industrialContext = []string{
	"plant", "factory", "manufacturing", "industrial", "production",
	"facility", "refinery", "smelter", "mill", "fab", "gigafactory",
	"capacity",
}

// corporateSuffixPattern spots organisation names, a weak but useful signal
// that a specific company is acting.
const corporateSuffixPattern = `(?i)\b(?:ltd|limited|pvt\.?\s+ltd|private\s+limited|corp|corporation|inc|industries|group|enterprises)\b`

// Category signal patterns, checked in priority order: expansion beats
// proposal beats intent beats mou. First match wins.
const (
	expansionPattern = `(?i)\b(?:expansion|expands?|additional capacity|phase\s+(?:ii|2|iii|3)|scale[\s-]?up|ramp[\s-]?up|debottleneck\w*)\b`
	proposalPattern  = `(?i)\b(?:proposal|proposes?|proposed|seeks? approval|awaiting clearance|in-principle approval)\b`
	intentPattern    = `(?i)\b(?:plans? to invest|to invest|intends? to|announce[sd]?|to set up|will set up|setting up|mulls?|eyeing)\b`
	mouPattern       = `(?i)\b(?:mou|mous|memorandum of understanding|signs? pact|pact signed|agreement signed)\b`
)
