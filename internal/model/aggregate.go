package model

// BucketKey addresses one stacked bar segment
type BucketKey struct {
	Status EnrollmentStatus `json:"status"`
	BIPOC  BIPOCCategory    `json:"bipoc"`
}

func (k BucketKey) String() string {
	return string(k.Status) + "-" + string(k.BIPOC)
}

// BarAggregate holds the (status, bipoc) counts behind the stacked bar chart
type BarAggregate struct {
	Statuses   []EnrollmentStatus `json:"statuses"`
	Categories []BIPOCCategory    `json:"categories"`
	Counts     map[BucketKey]int  `json:"-"`
	Dropped    int                `json:"dropped"` // records with an unrecognized status
}

// Count returns the bucket count; a missing key counts as zero
func (a BarAggregate) Count(status EnrollmentStatus, bipoc BIPOCCategory) int {
	if a.Counts == nil {
		return 0
	}
	return a.Counts[BucketKey{Status: status, BIPOC: bipoc}]
}

// StackHeight sums every category of one status column
func (a BarAggregate) StackHeight(status EnrollmentStatus) int {
	total := 0
	for _, c := range a.Categories {
		total += a.Count(status, c)
	}
	return total
}

// MaxStackHeight is the tallest status column, used as the y domain
func (a BarAggregate) MaxStackHeight() int {
	max := 0
	for _, s := range a.Statuses {
		if h := a.StackHeight(s); h > max {
			max = h
		}
	}
	return max
}

// Total is the number of records that landed in a bucket
func (a BarAggregate) Total() int {
	total := 0
	for _, s := range a.Statuses {
		total += a.StackHeight(s)
	}
	return total
}

// Flat returns counts keyed by the "<status>-<bipoc>" string form
func (a BarAggregate) Flat() map[string]int {
	out := make(map[string]int, len(a.Statuses)*len(a.Categories))
	for _, s := range a.Statuses {
		for _, c := range a.Categories {
			k := BucketKey{Status: s, BIPOC: c}
			out[k.String()] = a.Count(s, c)
		}
	}
	return out
}

// Pie slice labels
const (
	PieLabelBIPOC = "BIPOC"
	PieLabelWhite = "White"
)

// PieAggregate holds the two-way BIPOC / All White split
type PieAggregate struct {
	BIPOC int `json:"BIPOC"`
	White int `json:"White"`
}

// PieSlice is one labelled pie value
type PieSlice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Slices returns the pie values in draw order
func (p PieAggregate) Slices() []PieSlice {
	return []PieSlice{
		{Label: PieLabelBIPOC, Value: p.BIPOC},
		{Label: PieLabelWhite, Value: p.White},
	}
}

// Total is the number of counted records
func (p PieAggregate) Total() int {
	return p.BIPOC + p.White
}
