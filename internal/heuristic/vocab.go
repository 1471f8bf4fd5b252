package heuristic

import "regexp"

// Curated vocabularies and patterns for recipe line classification. All
// tables are read-only after init, so concurrent scoring needs no locking.

// ingredientPatterns indicate a line is likely an ingredient. Only the
// first matching pattern contributes to the score.
var ingredientPatterns = []*regexp.Regexp{
	// Starts with quantity + unit: "2 cups flour"
	regexp.MustCompile(`(?i)^\d+[\s/\d]*\s*(cup|cups|tbsp|tsp|tablespoon|tablespoons|teaspoon|teaspoons|oz|ounce|ounces|lb|lbs|pound|pounds|g|gram|grams|kg|kilogram|ml|milliliter|l|liter)`),
	// Starts with number + word: "3 eggs", "1/2 onion"
	regexp.MustCompile(`^\d+[\s/\d]*\s+\w+`),
	// Starts with a vulgar fraction glyph: ¼, ½, ¾, ⅓, ⅔, …
	regexp.MustCompile(`^[\x{00BC}-\x{00BE}\x{2150}-\x{215E}]`),
	// Bullet + number: "- 2 eggs", "• 1 cup"
	regexp.MustCompile(`^[-•*]\s*\d`),
	// Range: "2-3 cloves", "1-2 pounds"
	regexp.MustCompile(`^\d+\s*[-–]\s*\d+`),
}

// ingredientKeywords holds measurement units and ingredient qualifiers.
// Only the first matching token contributes to the score.
var ingredientKeywords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"cup", "cups", "tablespoon", "tablespoons", "tbsp", "tbs",
		"teaspoon", "teaspoons", "tsp", "ounce", "ounces", "oz",
		"pound", "pounds", "lb", "lbs", "gram", "grams", "g",
		"kilogram", "kilograms", "kg", "milliliter", "milliliters", "ml",
		"liter", "liters", "l", "quart", "quarts", "qt", "pint", "pints", "pt",
		"gallon", "gallons", "gal", "fluid", "fl",
		"pinch", "dash", "clove", "cloves", "bunch", "bunches", "handful",
		"package", "packages", "pkg", "can", "cans", "jar", "jars",
		"slice", "slices", "piece", "pieces", "whole", "half", "halves",
		"chopped", "diced", "minced", "sliced", "grated", "shredded",
		"fresh", "dried", "frozen", "canned", "cooked", "raw",
		"large", "medium", "small", "extra", "optional",
	} {
		ingredientKeywords[w] = struct{}{}
	}
}

// ingredientHeaders are section titles that open an ingredient list.
// Entries starting with "for " also match as prefixes ("for the sauce").
var ingredientHeaders = []string{
	"ingredients", "ingredient", "you will need", "you'll need",
	"what you need", "shopping list", "grocery list",
	"for the", "for garnish", "for serving", "for topping",
}

// instructionPatterns indicate a line is likely an instruction step.
var instructionPatterns = []*regexp.Regexp{
	// Numbered step: "1. Mix" or "1) Mix"
	regexp.MustCompile(`^\d+[.)]\s+`),
	// "Step 1", "Step 2", …
	regexp.MustCompile(`(?i)^step\s+\d+`),
	// Numbered step starting with a capital: "1. Preheat"
	regexp.MustCompile(`^\d+\.\s*[A-Z]`),
}

// instructionVerbs are common cooking actions. Order matters for the
// substring scan, so this stays a slice rather than a set.
var instructionVerbs = []string{
	"preheat", "heat", "warm", "boil", "simmer", "reduce", "cook",
	"fry", "sauté", "saute", "pan-fry", "stir-fry",
	"bake", "roast", "broil", "grill", "barbecue",
	"steam", "poach", "blanch", "parboil",
	"mix", "stir", "whisk", "beat", "blend", "fold", "combine", "incorporate",
	"chop", "dice", "mince", "slice", "cut", "julienne", "cube",
	"trim", "peel", "core", "seed", "debone", "skin",
	"add", "pour", "drizzle", "pour in", "stir in", "mix in",
	"place", "put", "set", "arrange", "lay", "spread",
	"season", "sprinkle", "coat", "brush", "rub", "marinate",
	"cover", "wrap", "seal", "close", "uncover",
	"bring", "let", "allow", "leave", "keep", "maintain",
	"rest", "cool", "chill", "refrigerate", "freeze",
	"remove", "discard", "drain", "strain", "squeeze", "press",
	"transfer", "move", "flip", "turn", "rotate", "shake",
	"serve", "garnish", "top", "finish", "plate", "present",
	"enjoy", "taste", "adjust", "check", "test",
	"thicken", "dissolve", "melt", "caramelize",
	"brown", "sear", "char", "toast", "crisp",
}

// instructionVerbSet mirrors instructionVerbs for exact first-word lookups.
var instructionVerbSet = map[string]struct{}{}

func init() {
	for _, v := range instructionVerbs {
		instructionVerbSet[v] = struct{}{}
	}
}

// instructionHeaders are section titles that open an instruction list.
var instructionHeaders = []string{
	"instructions", "instruction", "directions", "direction",
	"method", "methods", "steps", "procedure", "procedures",
	"how to make", "how to prepare", "preparation",
	"cooking instructions", "cooking directions", "cooking method",
	"to make", "to prepare", "making", "preparing",
	"technique", "techniques", "proceso", "preparación",
}

var (
	leadingDigitRe  = regexp.MustCompile(`^\d`)
	fractionRe      = regexp.MustCompile(`[\x{00BC}-\x{00BE}\x{2150}-\x{215E}]`)
	numberedStepRe  = regexp.MustCompile(`^\d+[.)]\s+`)
	timeHintRe      = regexp.MustCompile(`\d+\s*(minute|min|hour|hr|second|sec)`)
	tempHintRe      = regexp.MustCompile(`\d+\s*(degree|°|fahrenheit|celsius|f|c)`)
	quantityUnitRe  = regexp.MustCompile(`(?i)^\d+[\s/\d]*\s*(cup|tbsp|tsp|oz|lb|g|kg)`)
	nonWordRe       = regexp.MustCompile(`[^\w]`)
	bulletPrefixRe  = regexp.MustCompile(`^[•\-*◦▪▫○●]\s*`)
	mdHeaderRe      = regexp.MustCompile(`^#+\s*`)
	trailingColonRe = regexp.MustCompile(`[:\s]*$`)
)

// commonUnits is the small abbreviation set that penalizes instruction scores.
var commonUnits = map[string]struct{}{
	"cup": {}, "cups": {}, "tbsp": {}, "tsp": {}, "oz": {}, "lb": {},
}
