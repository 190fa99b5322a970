package nutrition

// LineItem is the accumulated allocation for a single food.
type LineItem struct {
	Food     string  `json:"food"`
	Servings float64 `json:"servings"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

// Plan is the outcome of one allocation run.
type Plan struct {
	Items         []LineItem `json:"items"`
	TotalCalories int        `json:"total_calories"`
	TotalProtein  int        `json:"total_protein_g"`
	Note          string     `json:"note,omitempty"`
	Steps         int        `json:"steps"`
}

// Converged reports whether the run finished without a shortfall note.
func (p Plan) Converged() bool { return p.Note == "" }

// lineItems accumulates servings per food while keeping first-insertion
// order.
type lineItems struct {
	index map[string]int
	items []LineItem
}

func newLineItems() *lineItems {
	return &lineItems{index: make(map[string]int)}
}

func (l *lineItems) add(food string, servings, calories, protein float64) {
	if i, ok := l.index[food]; ok {
		l.items[i].Servings += servings
		l.items[i].Calories += calories
		l.items[i].Protein += protein
		return
	}
	l.index[food] = len(l.items)
	l.items = append(l.items, LineItem{Food: food, Servings: servings, Calories: calories, Protein: protein})
}

func (l *lineItems) len() int { return len(l.items) }

func (l *lineItems) list() []LineItem {
	out := make([]LineItem, len(l.items))
	copy(out, l.items)
	return out
}
