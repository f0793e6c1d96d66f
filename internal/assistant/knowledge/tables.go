package knowledge

// Static content tables. Everything the base serves comes from here; there
// is no I/O behind any lookup.

const (
	conceptConfidence  = 0.9
	fallbackConfidence = 0.3
)

// conceptKeys fixes the scan order for MatchConceptKey. Longer phrases come
// before their prefixes so "carbon offset" wins over "carbon".
var conceptKeys = []string{
	"carbon footprint",
	"carbon offset",
	"carbon neutral",
	"carbon intensity",
	"emission factor",
	"net zero",
	"scope 1",
	"scope 2",
	"scope 3",
	"renewable energy",
}

var concepts = map[string]Concept{
	"carbon footprint": {
		Text:       "A carbon footprint is the total amount of greenhouse gases, expressed as CO2 equivalent, released directly and indirectly by an organization or activity over a period.",
		Related:    []string{"emission factor", "carbon intensity", "scope 1"},
		Confidence: conceptConfidence,
	},
	"carbon offset": {
		Text:       "A carbon offset is a credit for emission reductions achieved elsewhere, such as reforestation or renewable generation, purchased to compensate for emissions you cannot yet eliminate.",
		Related:    []string{"net zero", "carbon neutral"},
		Confidence: conceptConfidence,
	},
	"carbon neutral": {
		Text:       "Carbon neutral means balancing emitted CO2 with an equivalent amount of offsets or removals, so the net contribution to the atmosphere is zero for the accounting period.",
		Related:    []string{"net zero", "carbon offset"},
		Confidence: conceptConfidence,
	},
	"carbon intensity": {
		Text:       "Carbon intensity expresses emissions relative to a unit of activity, such as kg CO2e per employee, per unit of revenue, or per kWh, making organizations of different sizes comparable.",
		Related:    []string{"carbon footprint", "emission factor"},
		Confidence: conceptConfidence,
	},
	"emission factor": {
		Text:       "An emission factor converts an activity amount, like a kWh of electricity or a liter of diesel, into greenhouse gas emissions. Factors differ by fuel, region, and year.",
		Related:    []string{"carbon footprint", "carbon intensity"},
		Confidence: conceptConfidence,
	},
	"net zero": {
		Text:       "Net zero means cutting emissions as close to zero as possible and removing the small remainder from the atmosphere, going beyond offsetting business as usual.",
		Related:    []string{"carbon neutral", "carbon offset"},
		Confidence: conceptConfidence,
	},
	"scope 1": {
		Text:       "Scope 1 covers direct emissions from sources you own or control, such as company vehicles, boilers, and on-site fuel combustion.",
		Related:    []string{"scope 2", "scope 3"},
		Confidence: conceptConfidence,
	},
	"scope 2": {
		Text:       "Scope 2 covers indirect emissions from purchased electricity, steam, heating, and cooling consumed by your organization.",
		Related:    []string{"scope 1", "scope 3"},
		Confidence: conceptConfidence,
	},
	"scope 3": {
		Text:       "Scope 3 covers all other indirect emissions across the value chain, including purchased goods, business travel, commuting, and the use of sold products. It is usually the largest share.",
		Related:    []string{"scope 1", "scope 2"},
		Confidence: conceptConfidence,
	},
	"renewable energy": {
		Text:       "Renewable energy comes from sources that replenish naturally, such as solar, wind, and hydro. Switching purchased electricity to renewables is one of the fastest ways to cut scope 2 emissions.",
		Related:    []string{"scope 2", "emission factor"},
		Confidence: conceptConfidence,
	},
}

var fallbackConcept = Concept{
	Text:       "I don't have a detailed explanation for that yet. Try asking about the carbon footprint, emission scopes, offsets, or net zero.",
	Related:    []string{"carbon footprint", "net zero"},
	Confidence: fallbackConfidence,
}

// Recommendation tiers per industry. Unknown industries fall back to the
// general entry, unknown levels to the beginner tier.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

var recommendations = map[string]map[string][]string{
	"general": {
		LevelBeginner: {
			"Switch to LED lighting and enable power management on office equipment",
			"Measure your monthly electricity and fuel use to establish a baseline",
			"Set printer defaults to double-sided and reduce paper waste",
		},
		LevelIntermediate: {
			"Move to a renewable electricity tariff or buy renewable energy certificates",
			"Introduce a travel policy favoring rail and video calls over short-haul flights",
			"Run a waste audit and add recycling streams for the top waste categories",
		},
		LevelAdvanced: {
			"Set a science-based reduction target and publish yearly progress",
			"Engage your largest suppliers on scope 3 emissions data",
			"Invest in on-site generation such as rooftop solar",
		},
	},
	"technology": {
		LevelBeginner: {
			"Consolidate servers and switch unused environments off outside working hours",
			"Default laptops and monitors to aggressive sleep settings",
			"Prefer refurbished hardware for non-critical roles",
		},
		LevelIntermediate: {
			"Migrate workloads to cloud regions with low-carbon grids",
			"Extend hardware refresh cycles from three to four or five years",
			"Choose data center providers with published PUE and renewable commitments",
		},
		LevelAdvanced: {
			"Schedule batch compute to hours with high renewable share",
			"Include embodied carbon in procurement scoring",
			"Offer remote-first roles to structurally cut commuting emissions",
		},
	},
	"manufacturing": {
		LevelBeginner: {
			"Fix compressed air leaks, usually the cheapest energy win on the floor",
			"Install sub-meters on the most energy-hungry lines",
			"Switch hall lighting to LED with occupancy sensors",
		},
		LevelIntermediate: {
			"Recover waste heat from furnaces and compressors for space heating",
			"Shift energy-intensive processes to off-peak, lower-carbon grid hours",
			"Source recycled input materials where tolerances allow",
		},
		LevelAdvanced: {
			"Electrify process heat where temperatures permit",
			"Negotiate a power purchase agreement for dedicated renewable supply",
			"Redesign products for material efficiency and end-of-life recovery",
		},
	},
	"retail": {
		LevelBeginner: {
			"Close doors on refrigerated cabinets and maintain door seals",
			"Switch store lighting to LED and daylight dimming",
			"Optimize delivery rounds to cut empty kilometers",
		},
		LevelIntermediate: {
			"Upgrade refrigeration to low-GWP refrigerants and monitor leakage",
			"Consolidate inbound logistics with fewer, fuller truckloads",
			"Reduce packaging weight and move to recycled content",
		},
		LevelAdvanced: {
			"Electrify the last-mile delivery fleet",
			"Require emissions data from private-label suppliers",
			"Install rooftop solar across the store estate",
		},
	},
	"transportation": {
		LevelBeginner: {
			"Train drivers in efficient driving; it cuts fuel use by 5 to 10 percent",
			"Keep tire pressure and maintenance schedules tight across the fleet",
			"Cut idling time at depots and loading bays",
		},
		LevelIntermediate: {
			"Optimize routing and load factors to reduce empty running",
			"Introduce electric or hybrid vehicles on short urban routes",
			"Switch eligible vehicles to certified low-carbon fuels",
		},
		LevelAdvanced: {
			"Plan depot charging infrastructure for full fleet electrification",
			"Shift long-haul volume to rail where lanes allow",
			"Offer customers carbon-intensity reporting per shipment",
		},
	},
	"agriculture": {
		LevelBeginner: {
			"Calibrate fertilizer application to soil tests rather than fixed schedules",
			"Maintain and tune machinery to cut diesel consumption",
			"Cover manure storage to limit methane release",
		},
		LevelIntermediate: {
			"Adopt precision agriculture to cut fertilizer and fuel passes",
			"Plant cover crops to build soil carbon between seasons",
			"Install solar pumps for irrigation",
		},
		LevelAdvanced: {
			"Introduce agroforestry strips on marginal land",
			"Capture biogas from manure for on-farm energy",
			"Join a verified soil carbon sequestration program",
		},
	},
}

// Insight variants per industry. The empty question type resolves to
// "default"; unknown industries fall back to defaultInsight.
var industryInsights = map[string]map[string]Insight{
	"technology": {
		"default": {
			Answer:            "Technology companies typically emit 2 to 5 tonnes CO2e per employee per year, dominated by purchased electricity for offices and data centers plus business travel.",
			FollowUpQuestions: []string{"How do data centers affect my footprint?", "What do similar tech companies emit per employee?"},
		},
		"benchmark": {
			Answer:            "A reasonable benchmark for a software company is about 3 tonnes CO2e per employee per year. Hardware-heavy businesses run higher once manufacturing is counted.",
			FollowUpQuestions: []string{"How can I get below the benchmark?"},
		},
		"trends": {
			Answer:            "The sector trend is cloud migration to low-carbon regions, longer hardware cycles, and remote-first policies shrinking office and commuting footprints.",
			FollowUpQuestions: []string{"Which cloud regions are lowest carbon?"},
		},
	},
	"manufacturing": {
		"default": {
			Answer:            "Manufacturing footprints are dominated by process energy and purchased materials. Electricity and heat often account for over half of scope 1 and 2 emissions.",
			FollowUpQuestions: []string{"How do I cut process energy use?", "What counts as scope 1 in a plant?"},
		},
		"benchmark": {
			Answer:            "Manufacturing intensity varies widely by product; comparing kg CO2e per unit produced against your own baseline beats cross-company comparisons.",
			FollowUpQuestions: []string{"How do I set a production baseline?"},
		},
		"trends": {
			Answer:            "The sector is electrifying process heat, recovering waste heat, and signing power purchase agreements to decarbonize electricity supply.",
			FollowUpQuestions: []string{"What is a power purchase agreement?"},
		},
	},
	"retail": {
		"default": {
			Answer:            "Retail emissions concentrate in store energy, refrigeration leakage, and logistics. Refrigerants alone can rival electricity once leakage is counted.",
			FollowUpQuestions: []string{"Why do refrigerants matter so much?", "How do I cut delivery emissions?"},
		},
		"trends": {
			Answer:            "Retailers are moving to low-GWP refrigerants, electrifying last-mile delivery, and pushing emissions requirements into private-label supply chains.",
			FollowUpQuestions: []string{"What are low-GWP refrigerants?"},
		},
	},
	"transportation": {
		"default": {
			Answer:            "For transport operators nearly all emissions are scope 1 fuel burn. Load factor and routing beat vehicle technology as the first levers.",
			FollowUpQuestions: []string{"Should I electrify the fleet first?", "How much does efficient driving save?"},
		},
		"trends": {
			Answer:            "Fleets are electrifying urban routes first, where duty cycles fit today's batteries, while long haul waits on charging corridors and alternative fuels.",
			FollowUpQuestions: []string{"Which routes electrify best?"},
		},
	},
}

var defaultInsight = Insight{
	Answer:            "Across most industries the biggest levers are purchased electricity, fuel use, and supply chain emissions. A measured baseline is the place to start.",
	FollowUpQuestions: []string{"How do I establish a baseline?", "What does my industry typically emit?"},
}

// Compliance standards with regional notes appended when the region is known.
var complianceStandards = []string{"ghg protocol", "csrd", "secr", "iso 14064", "tcfd"}

type complianceEntry struct {
	base     string
	regional map[string]string
}

var compliance = map[string]complianceEntry{
	"ghg protocol": {
		base: "The GHG Protocol is the most widely used accounting standard for corporate greenhouse gas inventories. It defines the scope 1, 2, and 3 structure most regulations reference.",
		regional: map[string]string{
			"eu": "EU reporting regimes, including the CSRD, expect inventories prepared on GHG Protocol lines.",
			"us": "The SEC climate disclosure rules reference GHG Protocol methodology for scope 1 and 2 reporting.",
		},
	},
	"csrd": {
		base: "The Corporate Sustainability Reporting Directive requires large EU companies to report sustainability information, including audited greenhouse gas emissions, under the ESRS standards.",
		regional: map[string]string{
			"eu": "Applies in phases from financial year 2024, starting with companies already under the NFRD.",
			"uk": "UK companies with significant EU operations can fall in scope through EU subsidiaries or listings.",
		},
	},
	"secr": {
		base: "Streamlined Energy and Carbon Reporting requires large UK companies to disclose energy use, emissions, and an intensity metric in their annual reports.",
		regional: map[string]string{
			"uk": "Mandatory for quoted companies and large unquoted companies meeting two of three size thresholds.",
		},
	},
	"iso 14064": {
		base: "ISO 14064 specifies how to quantify, report, and verify greenhouse gas inventories at the organization level, and is commonly used to back audited claims.",
		regional: map[string]string{
			"eu": "Often used alongside CSRD reporting to evidence inventory quality.",
		},
	},
	"tcfd": {
		base: "The Task Force on Climate-related Financial Disclosures framework structures reporting around governance, strategy, risk management, and metrics with targets.",
		regional: map[string]string{
			"uk": "TCFD-aligned disclosure is mandatory for premium-listed companies and large asset owners.",
		},
	},
}

var fallbackCompliance = Compliance{
	Information: "I don't have details for that standard. Commonly referenced frameworks are the GHG Protocol, CSRD, SECR, ISO 14064, and TCFD.",
}
