package domain

// Category groups programs for display and code generation.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Program is a health initiative with eligibility, capacity, and scheduling
// attributes. Belongs to exactly one Category; the registry serves the
// category expanded on reads and expects category_id on writes.
type Program struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Code                string    `json:"code"`
	StartDate           string    `json:"start_date"`
	EndDate             string    `json:"end_date,omitempty"`
	EligibilityCriteria string    `json:"eligibility_criteria,omitempty"`
	Capacity            *int      `json:"capacity,omitempty"`
	Location            string    `json:"location"`
	Category            *Category `json:"category,omitempty"`
	CategoryID          int64     `json:"category_id,omitempty"`
}

// CategoryRef returns the program's category id regardless of whether the
// registry expanded the category object or sent only the foreign key.
func (p Program) CategoryRef() int64 {
	if p.CategoryID != 0 {
		return p.CategoryID
	}
	if p.Category != nil {
		return p.Category.ID
	}
	return 0
}
