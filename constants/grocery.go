package constants

// GroceryType is a pantry shelf category for a grocery item.
type GroceryType string

const (
	Produce      GroceryType = "produce"
	Meat         GroceryType = "meat"
	Dairy        GroceryType = "dairy"
	Bread        GroceryType = "bread"
	Staples      GroceryType = "staples"
	Pantry       GroceryType = "pantry"
	Frozen       GroceryType = "frozen"
	Beverages    GroceryType = "beverages"
	SnacksType   GroceryType = "snacks"
	Condiments   GroceryType = "condiments"
	OtherGrocery GroceryType = "other"
)

// GroceryTypeInfo carries the display metadata and the keyword table for one
// grocery type. Instances live in the package-level groceryTypes table and are
// never mutated after init.
type GroceryTypeInfo struct {
	Key         GroceryType
	DisplayName string
	SortOrder   int
	Keywords    []string
}

var groceryTypes = []GroceryTypeInfo{
	{
		Key:         Produce,
		DisplayName: "Produce",
		SortOrder:   1,
		Keywords: []string{
			// fruits
			"apple", "banana", "orange", "lemon", "lime", "grape", "strawberry",
			"blueberry", "raspberry", "blackberry", "mango", "pineapple", "kiwi",
			"peach", "pear", "plum", "cherry", "apricot", "nectarine", "fig",
			"date", "prune", "raisin", "cranberry", "currant",
			// vegetables
			"lettuce", "tomato", "potato", "onion", "garlic", "pepper",
			"cucumber", "avocado", "carrot", "celery", "broccoli", "cauliflower",
			"spinach", "kale", "cabbage", "brussels", "asparagus", "zucchini",
			"eggplant", "mushroom", "corn", "peas", "beans", "green bean",
			"squash", "pumpkin", "sweet potato", "yam",
			// herbs
			"basil", "parsley", "cilantro", "mint", "rosemary", "thyme",
			"oregano", "sage", "dill", "chive", "scallion", "green onion",
			"leek", "shallot",
			// generic
			"fruit", "vegetable", "fresh", "organic",
		},
	},
	{
		Key:         Meat,
		DisplayName: "Meat",
		SortOrder:   2,
		Keywords: []string{
			"chicken", "turkey", "duck", "quail", "pheasant",
			"beef", "pork", "lamb", "veal", "bison", "venison",
			"sausage", "bacon", "ham", "salami", "pepperoni", "prosciutto",
			"pastrami", "corned beef", "hot dog", "burger", "meatball",
			"fish", "salmon", "tuna", "cod", "halibut", "mackerel", "sardine",
			"anchovy", "shrimp", "prawn", "crab", "lobster", "clam", "mussel",
			"oyster", "scallop", "squid", "octopus",
			"egg", "eggs",
		},
	},
	{
		Key:         Dairy,
		DisplayName: "Dairy",
		SortOrder:   3,
		Keywords: []string{
			"milk", "cream", "half and half", "heavy cream", "whipping cream",
			"sour cream", "buttermilk",
			"cheese", "cheddar", "mozzarella", "parmesan", "brie", "camembert",
			"feta", "goat cheese", "blue cheese", "gouda", "swiss", "provolone",
			"ricotta", "cottage cheese", "cream cheese",
			"yogurt", "yoghurt", "greek yogurt", "plain yogurt",
			"vanilla yogurt", "fruit yogurt",
			"butter", "margarine", "ghee",
			"ice cream", "gelato", "sorbet", "pudding", "custard",
		},
	},
	{
		Key:         Bread,
		DisplayName: "Bread",
		SortOrder:   4,
		Keywords: []string{
			"bread", "white bread", "wheat bread", "whole wheat bread",
			"sourdough", "rye bread", "pumpernickel", "french bread",
			"italian bread", "baguette", "ciabatta", "focaccia",
			"bagel", "croissant", "muffin", "danish", "donut", "doughnut",
			"pastry", "bun", "roll",
			"tortilla", "pita", "naan", "flatbread", "wrap", "lavash",
			"cake", "brownie", "cookie", "biscuit",
		},
	},
	{
		Key:         Staples,
		DisplayName: "Staples",
		SortOrder:   5,
		Keywords: []string{
			"rice", "white rice", "brown rice", "basmati rice", "jasmine rice",
			"wild rice", "quinoa", "couscous", "bulgur", "barley", "farro",
			"millet", "oats", "oatmeal", "steel cut oats",
			"pasta", "noodles", "spaghetti", "macaroni", "penne", "linguine",
			"fettuccine", "rigatoni", "lasagna", "ravioli", "tortellini",
			"ramen", "udon", "soba", "vermicelli",
			"lentils", "chickpeas", "garbanzo beans", "black beans",
			"kidney beans", "pinto beans", "navy beans", "lima beans",
			"split peas", "black eyed peas",
			"potato", "sweet potato", "yam",
		},
	},
	{
		Key:         Pantry,
		DisplayName: "Pantry",
		SortOrder:   6,
		Keywords: []string{
			"flour", "all purpose flour", "bread flour", "cake flour",
			"whole wheat flour", "almond flour", "coconut flour", "sugar",
			"brown sugar", "powdered sugar", "confectioners sugar", "honey",
			"maple syrup", "agave", "molasses",
			"oil", "olive oil", "vegetable oil", "canola oil", "coconut oil",
			"sesame oil", "avocado oil", "grapeseed oil",
			"vinegar", "apple cider vinegar", "balsamic vinegar",
			"white vinegar", "red wine vinegar", "rice vinegar",
			"canned", "can of", "soup", "broth", "stock", "tomato sauce",
			"tomato paste", "crushed tomatoes", "diced tomatoes",
			"cereal", "granola", "muesli",
			"salt", "pepper", "black pepper", "white pepper", "cinnamon",
			"nutmeg", "cardamom", "cloves", "bay leaves", "oregano", "basil",
			"thyme", "rosemary", "sage", "cumin", "coriander", "turmeric",
			"paprika", "chili powder", "cayenne", "garlic powder",
			"onion powder", "msg", "monosodium glutamate",
			"baking soda", "baking powder", "yeast", "vanilla extract",
			"almond extract", "food coloring",
		},
	},
	{
		Key:         Frozen,
		DisplayName: "Frozen",
		SortOrder:   7,
		Keywords: []string{
			"frozen", "frozen vegetables", "frozen fruit", "frozen meat",
			"frozen fish", "frozen pizza", "frozen dinner", "frozen meal",
			"ice cream", "gelato", "sorbet", "popsicle", "ice pop",
			"frozen yogurt",
			"frozen waffles", "frozen pancakes", "frozen french fries",
			"frozen onion rings", "frozen chicken nuggets", "frozen fish sticks",
		},
	},
	{
		Key:         Beverages,
		DisplayName: "Beverages",
		SortOrder:   8,
		Keywords: []string{
			"water", "sparkling water", "mineral water", "juice",
			"orange juice", "apple juice", "grape juice", "cranberry juice",
			"lemonade", "limeade", "soda", "pop", "cola", "sprite",
			"ginger ale", "root beer", "tea", "green tea", "black tea",
			"herbal tea", "chamomile tea", "peppermint tea", "coffee",
			"espresso", "latte", "cappuccino", "hot chocolate", "cocoa",
			"wine", "red wine", "white wine", "beer", "ale", "lager", "stout",
			"whiskey", "vodka", "rum", "gin", "tequila", "brandy", "cognac",
			"energy drink", "sports drink", "protein shake", "smoothie",
		},
	},
	{
		Key:         SnacksType,
		DisplayName: "Snacks",
		SortOrder:   9,
		Keywords: []string{
			"chips", "potato chips", "tortilla chips", "corn chips",
			"crackers", "saltine crackers", "ritz crackers", "wheat crackers",
			"pretzels",
			"nuts", "almonds", "walnuts", "pecans", "cashews", "pistachios",
			"peanuts", "sunflower seeds", "pumpkin seeds", "chia seeds",
			"flax seeds",
			"cookies", "biscuits", "popcorn", "wafer", "chocolate", "candy",
			"gum", "mints",
			"raisins", "dried cranberries", "dried apricots", "dried mango",
			"dried pineapple",
			"protein bar", "energy bar", "granola bar", "fruit snack",
			"trail mix",
		},
	},
	{
		Key:         Condiments,
		DisplayName: "Condiments",
		SortOrder:   10,
		Keywords: []string{
			"ketchup", "mustard", "mayo", "mayonnaise", "sauce", "soy sauce",
			"fish sauce", "oyster sauce", "hoisin sauce", "sriracha",
			"hot sauce", "tabasco", "worcestershire sauce", "bbq sauce",
			"teriyaki sauce", "marinara sauce", "alfredo sauce", "pesto sauce",
			"dressing", "salad dressing", "ranch dressing", "italian dressing",
			"vinaigrette", "dip", "hummus", "guacamole", "salsa",
			"syrup", "maple syrup", "chocolate syrup", "caramel syrup", "jam",
			"jelly", "preserves", "marmalade", "peanut butter", "almond butter",
			"cashew butter", "nutella", "honey", "agave nectar",
			"relish", "pickles", "olives", "capers", "anchovy paste",
			"tomato paste",
		},
	},
	{
		Key:         OtherGrocery,
		DisplayName: "Other",
		SortOrder:   11,
		Keywords:    nil,
	},
}

// GroceryTypes returns the grocery type table in sort order.
func GroceryTypes() []GroceryTypeInfo {
	return groceryTypes
}

// AllGroceryTypes returns the grocery type keys in sort order.
func AllGroceryTypes() []string {
	result := make([]string, len(groceryTypes))
	for i, gt := range groceryTypes {
		result[i] = string(gt.Key)
	}
	return result
}

// GroceryTypeDisplayName returns the display label for a grocery type key,
// falling back to the Other bucket's label for unknown keys.
func GroceryTypeDisplayName(key string) string {
	for _, gt := range groceryTypes {
		if string(gt.Key) == key {
			return gt.DisplayName
		}
	}
	return "Other"
}

// GroceryTypeSortOrder returns the shelf sort position for a grocery type
// key. Unknown keys sort with Other, at the end.
func GroceryTypeSortOrder(key string) int {
	for _, gt := range groceryTypes {
		if string(gt.Key) == key {
			return gt.SortOrder
		}
	}
	return len(groceryTypes)
}

// IsGroceryType reports whether key is one of the known grocery types.
func IsGroceryType(key string) bool {
	for _, gt := range groceryTypes {
		if string(gt.Key) == key {
			return true
		}
	}
	return false
}
