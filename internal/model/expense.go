package model

// Expense is a transaction treated as a point in (amount, date) space.
// Date is a numeric timestamp or day index.
type Expense struct {
	Amount float64 `csv:"amount"`
	Date   float64 `csv:"date"`
}

// Centroid is the mean point of a cluster.
type Centroid struct {
	Amount float64
	Date   float64
}

// Point returns the centroid as an (amount, date) vector.
func (c Centroid) Point() []float64 { return []float64{c.Amount, c.Date} }

// Point returns the expense as an (amount, date) vector.
func (e Expense) Point() []float64 { return []float64{e.Amount, e.Date} }

// Cluster is one group of a k-means partition.
type Cluster struct {
	Centroid Centroid
	Members  []Expense
}

// ClusterResult holds the final partition. Clusters may be empty.
type ClusterResult struct {
	Clusters   []Cluster
	Iterations int
}
