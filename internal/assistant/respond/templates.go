package respond

// Template pools. Selection is uniform over each pool; wording varies, the
// shape of the answer does not.

var greetingTemplates = []string{
	"Hello! I'm your carbon footprint assistant. I can estimate emissions, explain concepts, and suggest reductions.",
	"Hi there! Ask me about your carbon footprint, industry benchmarks, or how to cut emissions.",
	"Welcome! I help companies understand and reduce their carbon footprint. What would you like to know?",
	"Hey! I can calculate emissions from your activity data or walk you through carbon basics. Where shall we start?",
}

var goodbyeTemplates = []string{
	"Goodbye! Come back whenever you want to check on your footprint.",
	"Take care! Every tonne you cut counts.",
	"Bye for now. Good luck with your reduction goals!",
}

var fallbackTemplates = []string{
	"I didn't quite catch that. I can calculate footprints, explain carbon concepts, and suggest reductions.",
	"I'm not sure how to help with that one. Try asking about emissions, benchmarks, or compliance.",
	"That's outside what I know. I'm best at carbon calculations, explanations, and reduction advice.",
}

// starterSuggestions are the fixed conversation openers shown with greetings
// and fallbacks.
var starterSuggestions = []string{
	"Calculate my carbon footprint",
	"What is a carbon footprint?",
	"Give me reduction recommendations",
	"What does my industry typically emit?",
}

var missingDataSuggestions = []string{
	"We used 10,000 kWh of electricity last month",
	"Our fleet burned 500 liters of diesel",
	"We have 35 employees",
}

var afterCalculationSuggestions = []string{
	"How can I reduce my footprint?",
	"What does my industry typically emit?",
}

var industryPromptSuggestions = []string{
	"We're a technology company",
	"Tell me about manufacturing",
	"What's typical for retail?",
}

// categoryPhrases render breakdown categories for people.
var categoryPhrases = map[string]string{
	"electricity": "electricity use (kWh)",
	"fuel":        "fuel use (liters)",
	"travel":      "travel distance (km)",
	"waste":       "waste (kg)",
	"employees":   "employee count",
}
