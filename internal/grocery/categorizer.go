package grocery

import (
	"strings"

	"github.com/ithinkitschris/expense-assistant/constants"
)

// Substrings that always mean a cooking base, not a table sauce. Checked
// before the condiment list so "soy sauce" lands in pantry.
var cookingSauces = []string{
	"soy sauce", "oyster sauce", "fish sauce", "hoisin sauce", "hoi sin sauce",
	"tomato sauce", "marinara sauce", "alfredo sauce", "worcestershire sauce",
	"shaoxing wine", "mirin", "cooking wine", "black bean sauce", "doubanjiang",
	"teriyaki sauce", "ponzu", "mole sauce", "curry sauce", "pasta sauce",
	"bolognese sauce", "carbonara sauce", "demi glace", "gravy",
	"sukiyaki sauce", "bulgogi sauce", "gochujang", "sambal", "nam pla",
	"maggi seasoning", "liquid aminos", "miso paste",
}

var condimentSauces = []string{
	"ketchup", "mustard", "mayonnaise", "mayo", "bbq sauce", "barbecue sauce",
	"sriracha", "hot sauce", "tabasco", "ranch dressing", "salad dressing",
	"thousand island", "caesar dressing", "blue cheese dressing", "aioli",
	"tartar sauce", "cocktail sauce", "remoulade", "chili sauce",
	"sweet chili sauce", "honey mustard", "chipotle sauce", "buffalo sauce",
	"fry sauce", "burger sauce", "special sauce", "tzatziki", "hummus",
	"guacamole", "salsa", "pico de gallo", "relish", "pickles", "olives",
	"capers", "anchovy paste", "tomato ketchup", "dijon", "yellow mustard",
	"spicy mustard",
}

type specialCase struct {
	substring string
	category  constants.GroceryType
}

// Curated substring overrides checked in order, first match wins. Brand
// names, compound phrases, and items the keyword tables get wrong.
var specialCases = []specialCase{
	{"peanut butter", constants.Condiments},
	{"almond butter", constants.Condiments},
	{"cashew butter", constants.Condiments},
	{"nutella", constants.Condiments},
	{"kaya", constants.Condiments},
	{"fish sauce", constants.Condiments},
	{"soy sauce", constants.Condiments},
	{"oyster sauce", constants.Condiments},
	{"hoisin sauce", constants.Condiments},
	{"sriracha", constants.Condiments},
	{"hot sauce", constants.Condiments},
	{"tabasco", constants.Condiments},
	{"worcestershire sauce", constants.Condiments},
	{"bbq sauce", constants.Condiments},
	{"teriyaki sauce", constants.Condiments},
	{"marinara sauce", constants.Condiments},
	{"alfredo sauce", constants.Condiments},
	{"pesto sauce", constants.Condiments},
	{"honey", constants.Condiments},
	{"maple syrup", constants.Condiments},
	{"agave nectar", constants.Condiments},
	{"ice cream", constants.Frozen},
	{"gelato", constants.Frozen},
	{"sorbet", constants.Frozen},
	{"frozen", constants.Frozen},
	{"brownie", constants.SnacksType},
	{"cookie", constants.SnacksType},
	{"cookies", constants.SnacksType},
	{"cake", constants.SnacksType},
	{"chocolate", constants.SnacksType},
	{"candy", constants.SnacksType},
	{"gum", constants.SnacksType},
	{"mints", constants.SnacksType},
	{"protein bar", constants.SnacksType},
	{"energy bar", constants.SnacksType},
	{"granola bar", constants.SnacksType},
	{"fruit snack", constants.SnacksType},
	{"trail mix", constants.SnacksType},
	{"chips", constants.SnacksType},
	{"crackers", constants.SnacksType},
	{"popcorn", constants.SnacksType},
	{"pretzels", constants.SnacksType},
	{"nuts", constants.SnacksType},
	{"almonds", constants.SnacksType},
	{"walnuts", constants.SnacksType},
	{"pecans", constants.SnacksType},
	{"cashews", constants.SnacksType},
	{"pistachios", constants.SnacksType},
	{"peanuts", constants.SnacksType},
	{"sunflower seeds", constants.SnacksType},
	{"pumpkin seeds", constants.SnacksType},
	{"chia seeds", constants.SnacksType},
	{"flax seeds", constants.SnacksType},
	{"raisins", constants.SnacksType},
	{"dried cranberries", constants.SnacksType},
	{"dried apricots", constants.SnacksType},
	{"dried mango", constants.SnacksType},
	{"dried pineapple", constants.SnacksType},
	{"wafer", constants.SnacksType},
	{"mango black tea", constants.Beverages},
	{"nespresso", constants.Beverages},
	{"old town white coffee", constants.Beverages},
	{"blueberry yogurt", constants.Dairy},
	{"honey yogurt", constants.Dairy},
	{"mango yogurt", constants.Dairy},
	{"greek yogurt", constants.Dairy},
	{"plain yogurt", constants.Dairy},
	{"vanilla yogurt", constants.Dairy},
	{"fruit yogurt", constants.Dairy},
	{"organic milk", constants.Dairy},
	{"2% milk", constants.Dairy},
	{"whole milk", constants.Dairy},
	{"skim milk", constants.Dairy},
	{"canned tomatoes", constants.Pantry},
	{"canned", constants.Pantry},
	{"can of", constants.Pantry},
	{"soup", constants.Pantry},
	{"broth", constants.Pantry},
	{"stock", constants.Pantry},
	{"tomato sauce", constants.Pantry},
	{"tomato paste", constants.Pantry},
	{"crushed tomatoes", constants.Pantry},
	{"diced tomatoes", constants.Pantry},
	{"red grapes", constants.Produce},
	{"minced garlic", constants.Pantry},
	{"seaweed flakes", constants.Pantry},
	{"radish cake", constants.Frozen},
	{"kang kong", constants.Produce},
	{"mid joint wings", constants.Meat},
	{"vegetable gyoza", constants.Frozen},
	{"impossible nuggets", constants.Frozen},
	{"nuggets", constants.Frozen},
	{"hash browns", constants.Frozen},
	{"blueberries", constants.Produce},
	{"parmigiano reggiano", constants.Dairy},
	{"rosemary ham", constants.Meat},
	{"shaoxing cooking wine", constants.Beverages},
	{"mirin wine", constants.Beverages},
	{"rice vinegar", constants.Pantry},
	{"red wine", constants.Beverages},
	{"white wine", constants.Beverages},
	{"ikan bilis", constants.Pantry},
	{"lemon chilli sauce", constants.Condiments},
	{"star anise", constants.Pantry},
	{"dried chilli", constants.Pantry},
	{"red peppercorn", constants.Pantry},
	{"peanut butter chocolate granola", constants.SnacksType},
	{"chickpea fusili", constants.Staples},
	{"shredded hash browns", constants.Frozen},
	{"baby bella mushrooms", constants.Produce},
	{"campari tomatoes", constants.Produce},
	{"nespresso rich chocolate", constants.Beverages},
}

// RuleBased assigns a grocery type from the item name alone. Pure and
// deterministic: same input, same category, no hidden state.
//
// Decision order: hard overrides, cooking sauces, condiment sauces, the
// special-case table, an explicit "frozen" check, then the per-category
// keyword tables with whole-word matching. No match lands in other.
func RuleBased(itemName string) constants.GroceryType {
	name := strings.ToLower(strings.TrimSpace(itemName))

	// Hard overrides: tokens a naive keyword search misclassifies.
	if strings.Contains(name, "broth") {
		return constants.Pantry
	}
	if strings.Contains(name, "yogurt") {
		return constants.Dairy
	}
	if strings.Contains(name, "granola") {
		return constants.SnacksType
	}

	for _, sauce := range cookingSauces {
		if strings.Contains(name, sauce) {
			return constants.Pantry
		}
	}
	for _, sauce := range condimentSauces {
		if strings.Contains(name, sauce) {
			return constants.Condiments
		}
	}
	for _, sc := range specialCases {
		if strings.Contains(name, sc.substring) {
			return sc.category
		}
	}

	if strings.Contains(name, "frozen") {
		return constants.Frozen
	}

	for _, gt := range constants.GroceryTypes() {
		if gt.Key == constants.OtherGrocery {
			continue
		}
		for _, keyword := range gt.Keywords {
			if wholeWordMatch(name, keyword) {
				// Bread shelves with the staples.
				if gt.Key == constants.Bread {
					return constants.Staples
				}
				return gt.Key
			}
		}
	}

	return constants.OtherGrocery
}

// wholeWordMatch reports whether keyword appears in name as a whole word:
// exact equality or bounded by spaces/string edges. Keeps "pear" from
// matching inside "spear".
func wholeWordMatch(name, keyword string) bool {
	return name == keyword ||
		strings.HasPrefix(name, keyword+" ") ||
		strings.HasSuffix(name, " "+keyword) ||
		strings.Contains(name, " "+keyword+" ")
}
