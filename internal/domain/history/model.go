package history

import (
	"time"

	"github.com/google/uuid"
)

// Processing status values for a history item.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Item is one saved prescription-translation event. The id and both
// timestamps are assigned by the store; caller-supplied values for them are
// ignored. A failed item may still carry partial prescription data.
type Item struct {
	ID               uuid.UUID     `db:"id" json:"id"`
	OriginalText     string        `db:"original_text" json:"originalText"`
	SimplifiedText   string        `db:"simplified_text" json:"simplifiedText"`
	Prescription     *Prescription `db:"prescription" json:"prescription,omitempty"`
	ImageURL         *string       `db:"image_url" json:"imageUrl,omitempty"`
	ProcessingStatus string        `db:"processing_status" json:"processingStatus"`
	Tags             []string      `db:"tags" json:"tags"`
	CreatedAt        time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time     `db:"updated_at" json:"updatedAt"`
}

// Prescription is the optional structured representation of a history item's
// medical content. Stored as a JSONB document.
type Prescription struct {
	Patient   *PatientInfo `json:"patient,omitempty"`
	Doctor    *DoctorInfo  `json:"doctor,omitempty"`
	Diagnosis []string     `json:"diagnosis,omitempty"`
	Medicines []LineItem   `json:"medicines,omitempty"`
}

// PatientInfo holds free-text patient demographics as read off the source
// prescription. Age stays a string because handwritten prescriptions carry
// values like "6 months".
type PatientInfo struct {
	Name   string `json:"name,omitempty"`
	Age    string `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// DoctorInfo holds prescriber details.
type DoctorInfo struct {
	Name           string `json:"name,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Registration   string `json:"registration,omitempty"`
}

// LineItem is a single prescribed medicine.
type LineItem struct {
	Name     string   `json:"name"`
	Dosage   string   `json:"dosage,omitempty"`
	Quantity int      `json:"quantity,omitempty"`
	Refills  *int     `json:"refills,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Patch carries a partial update. Only non-nil fields are written; the id and
// created_at columns are not representable here, so attempts to overwrite
// them drop off at the JSON boundary.
type Patch struct {
	OriginalText     *string       `json:"originalText,omitempty"`
	SimplifiedText   *string       `json:"simplifiedText,omitempty"`
	Prescription     *Prescription `json:"prescription,omitempty"`
	ImageURL         *string       `json:"imageUrl,omitempty"`
	ProcessingStatus *string       `json:"processingStatus,omitempty"`
	Tags             *[]string     `json:"tags,omitempty"`
}

// IsEmpty reports whether the patch sets no fields. An empty patch is still a
// valid update: it refreshes updated_at and nothing else.
func (p Patch) IsEmpty() bool {
	return p.OriginalText == nil && p.SimplifiedText == nil && p.Prescription == nil &&
		p.ImageURL == nil && p.ProcessingStatus == nil && p.Tags == nil
}

// Stats aggregates record counts by recency window and processing status.
type Stats struct {
	Total     int `json:"total"`
	ThisWeek  int `json:"thisWeek"`
	ThisMonth int `json:"thisMonth"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// RestoreResult reports a batch reimport. Success is true only when every
// supplied record was inserted; partial success is reported, not rolled back.
type RestoreResult struct {
	Inserted int  `json:"inserted"`
	Failed   int  `json:"failed"`
	Success  bool `json:"success"`
}
