package llm

import (
	"fmt"
	"strings"

	"github.com/ithinkitschris/expense-assistant/constants"
)

// Worked examples shown to the model for expense parsing. Shared between the
// single and multi prompts so the two paths extract fields the same way.
const expenseExamples = `Examples:
- "I spent $20 on groceries at trader joes last week" → {"amount": 20.00, "category": "groceries", "description": "groceries at Trader Joe's"}
- "bought coffee for $4.50 this morning" → {"amount": 4.50, "category": "food", "description": "coffee"}
- "$38 COS, T Shirt" → {"amount": 38.00, "category": "fashion", "description": "COS, T Shirt"}
- "$235 KLM, Flight Ticket" → {"amount": 235.00, "category": "travel", "description": "KLM, Flight Ticket"}
- "$8 Amazon, Method Body Soap" → {"amount": 8.00, "category": "amazon", "description": "Method Body Soap"}`

func categoryLine() string {
	return strings.Join(constants.AllCategories(), ", ")
}

// BuildSingleExpensePrompt builds the prompt for a one-expense parse,
// expecting a single JSON object back.
func BuildSingleExpensePrompt(input string) string {
	var b strings.Builder
	b.WriteString("You are an expert expense parser. Parse this natural language expense description into structured data.\n\n")
	fmt.Fprintf(&b, "Input: %q\n\n", input)
	b.WriteString("Instructions:\n")
	b.WriteString("1. Extract the EXACT dollar amount mentioned (no estimation)\n")
	fmt.Fprintf(&b, "2. Determine the most appropriate category from the input and sort into ONLY the following categories: %s. DO NOT CREATE NEW CATEGORIES.\n", categoryLine())
	b.WriteString("3. Create a clear, concise description including relevant details like store names, items, etc.\n")
	b.WriteString("4. If a date/time reference is mentioned (like \"last week\", \"yesterday\"), note it but don't include it in the description\n\n")
	b.WriteString("Return ONLY valid JSON in this exact format:\n")
	b.WriteString(`{"amount": 20.00, "category": "groceries", "description": "groceries at Trader Joe's"}`)
	b.WriteString("\n\n")
	b.WriteString(expenseExamples)
	return b.String()
}

// BuildMultiExpensePrompt builds the prompt for inputs that may carry several
// expenses, expecting a JSON array back.
func BuildMultiExpensePrompt(input string) string {
	var b strings.Builder
	b.WriteString("You are an expert expense parser. Parse this natural language description that may contain MULTIPLE expenses.\n\n")
	fmt.Fprintf(&b, "Input: %q\n\n", input)
	b.WriteString("Instructions:\n")
	b.WriteString("1. Identify ALL separate expenses mentioned in the input\n")
	b.WriteString("2. For each expense, extract the EXACT dollar amount (no estimation)\n")
	fmt.Fprintf(&b, "3. Determine the most appropriate category from the input and sort into ONLY the following categories: %s. DO NOT CREATE NEW CATEGORIES.\n", categoryLine())
	b.WriteString("4. If a date/time reference is mentioned, it applies to all expenses\n\n")
	b.WriteString("Return ONLY valid JSON array in this exact format:\n")
	b.WriteString("[\n")
	b.WriteString(`    {"amount": 20.00, "category": "groceries", "description": "groceries"},` + "\n")
	b.WriteString(`    {"amount": 5.00, "category": "food", "description": "coffee"}` + "\n")
	b.WriteString("]\n\n")
	b.WriteString("If only ONE expense is found, still return an array with one item.\n\n")
	b.WriteString(expenseExamples)
	return b.String()
}

// BuildGrocerySplitPrompt asks the model to split a free-text description
// into individual grocery items with grocery-type categories.
func BuildGrocerySplitPrompt(description string) string {
	types := strings.Join(constants.AllGroceryTypes(), ", ")
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert grocery parser. Given a string containing one or more grocery items (possibly separated by commas, newlines, or 'and'), extract each individual grocery item and assign it to one of these categories: %s.\n\n", types)
	fmt.Fprintf(&b, "Input: %q\n\n", description)
	b.WriteString("Return ONLY valid JSON in this format:\n")
	b.WriteString("[\n")
	b.WriteString(`  {"item": "lemon baton wafer", "category": "snacks"},` + "\n")
	b.WriteString(`  {"item": "organic milk", "category": "dairy"},` + "\n")
	b.WriteString(`  {"item": "eggs", "category": "meat"}` + "\n")
	b.WriteString("]\n")
	b.WriteString("- For single items, just return a one-item list.\n")
	b.WriteString("- Keep brand names if they're part of the item name (e.g., \"chobani yogurt\").\n")
	b.WriteString("- For complex items, keep the full descriptive name (e.g., \"lemon baton wafer\").\n")
	b.WriteString("- If no specific items are found, return an empty list.\n")
	return b.String()
}

// BuildGroceryCategorizePrompt asks the model to categorize a single item
// name. The guide spells out each bucket plus the misclassification traps the
// rule-based path special-cases, so the two paths agree on the hard items.
func BuildGroceryCategorizePrompt(itemName string) string {
	var b strings.Builder
	b.WriteString("You are a grocery categorizer. Assign the item below to exactly one category.\n\n")
	fmt.Fprintf(&b, "Item: %q\n\n", itemName)
	b.WriteString("Category guide:\n")
	for _, gt := range constants.GroceryTypes() {
		if gt.Key == constants.OtherGrocery {
			b.WriteString("- other: use only when nothing else applies\n")
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", gt.Key, groceryGuide[gt.Key])
	}
	b.WriteString("\nExamples:\n")
	b.WriteString("- \"greek yogurt\" → dairy (yogurt is always dairy, never snacks)\n")
	b.WriteString("- \"chicken broth\" → pantry (broth is a cooking base, NOT meat)\n")
	b.WriteString("- \"peanut butter granola\" → snacks (granola is always snacks, NOT condiments)\n")
	b.WriteString("- \"soy sauce\" → pantry (cooking sauce, NOT condiments)\n")
	b.WriteString("- \"frozen peas\" → frozen (anything labelled frozen, NOT produce)\n\n")
	b.WriteString("Return ONLY valid JSON in this exact format:\n")
	fmt.Fprintf(&b, `{"item": %q, "category": "dairy"}`, itemName)
	return b.String()
}

var groceryGuide = map[constants.GroceryType]string{
	constants.Produce:    "fresh fruits, vegetables, and herbs",
	constants.Meat:       "poultry, red meat, seafood, and eggs",
	constants.Dairy:      "milk, cheese, yogurt, butter, and cream",
	constants.Bread:      "bread, pastries, wraps, and flatbreads",
	constants.Staples:    "rice, pasta, grains, and dried legumes",
	constants.Pantry:     "baking ingredients, oils, vinegars, canned goods, spices, cooking sauces, broth, and stock",
	constants.Frozen:     "anything sold frozen, including ice cream",
	constants.Beverages:  "drinks of any kind, alcoholic or not",
	constants.SnacksType: "chips, crackers, nuts, sweets, bars, and granola",
	constants.Condiments: "table sauces, spreads, dressings, and dips",
}
