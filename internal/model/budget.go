package model

const (
	MinPriority = 1
	MaxPriority = 10
)

// Category is a named budget bucket with a priority in [MinPriority, MaxPriority].
type Category struct {
	Name     string
	Priority int
}

// NewCategory builds a Category with its priority clamped.
func NewCategory(name string, priority int) Category {
	return Category{Name: name, Priority: ClampPriority(priority)}
}

// ClampPriority forces p into [MinPriority, MaxPriority].
func ClampPriority(p int) int {
	if p < MinPriority {
		return MinPriority
	}
	if p > MaxPriority {
		return MaxPriority
	}
	return p
}

// Allocation is the share of the budget assigned to one category.
type Allocation struct {
	Category Category
	Amount   float64
}
