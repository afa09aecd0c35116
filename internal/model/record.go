package model

// EnrollmentStatus is the enrollment state of a family
type EnrollmentStatus string

const (
	StatusEnrolled   EnrollmentStatus = "Enrolled"
	StatusUnenrolled EnrollmentStatus = "Unenrolled"
)

// StatusCategories is the x domain of the bar chart, in display order
var StatusCategories = []EnrollmentStatus{StatusEnrolled, StatusUnenrolled}

// BIPOCCategory classifies a family by the race/ethnicity of its members
type BIPOCCategory string

const (
	BIPOCAtLeastOne BIPOCCategory = "At least one BIPOC"
	BIPOCAllWhite   BIPOCCategory = "All White"
	BIPOCOther      BIPOCCategory = "Other"
)

// BIPOCCategories is the stack order of the bar chart
var BIPOCCategories = []BIPOCCategory{BIPOCAtLeastOne, BIPOCAllWhite, BIPOCOther}

// Record is one row of the enrollment dataset. Categorical values are kept as
// read; coercion is the aggregator's job.
type Record struct {
	Year             string           `json:"year"`
	EnrollmentStatus EnrollmentStatus `json:"enrollmentStatus"`
	BIPOCCategory    BIPOCCategory    `json:"bipocCategory"`
	RowPosition      float64          `json:"rowPosition"`
	ColPosition      float64          `json:"colPosition"`
}

// Input column names
const (
	ColumnYear             = "Year"
	ColumnEnrollmentStatus = "Enrollment_Status"
	ColumnBIPOC            = "BIPOC"
	ColumnRow              = "rowNum"
	ColumnCol              = "colNum"
)

// Columns lists the columns every source must provide
var Columns = []string{ColumnYear, ColumnEnrollmentStatus, ColumnBIPOC, ColumnRow, ColumnCol}
