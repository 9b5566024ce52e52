package schema

// ComparisonColumn identifies one compared property.
type ComparisonColumn struct {
	PropertyID int64  `json:"propertyId"`
	Name       string `json:"name"`
	Postcode   string `json:"postcode"`
	Price      int    `json:"price"`
}

// ComparisonCell is one score in the comparison matrix.
type ComparisonCell struct {
	Score int  `json:"score"`
	Best  bool `json:"best"`
	Worst bool `json:"worst"`
}

// ComparisonRow is a category (or overall) across all compared properties.
// Cells follow the order of ComparisonResult.Columns.
type ComparisonRow struct {
	Key   string           `json:"key"`
	Name  string           `json:"name"`
	Cells []ComparisonCell `json:"cells"`
}

// ComparisonResult is the matrix produced for a comparison view.
type ComparisonResult struct {
	Columns     []ComparisonColumn `json:"columns"`
	Overall     ComparisonRow      `json:"overall"`
	Categories  []ComparisonRow    `json:"categories"`
	Completion  []int              `json:"completion"`
	BestOverall *int64             `json:"bestOverall,omitempty"`
}
