package constants

// ReceiptStatus is the canonical status for rows in receipts.
type ReceiptStatus string

// Stable values (store these exact strings in DB).
const (
	StatusProcessing  ReceiptStatus = "PROCESSING"   // pipeline in progress
	StatusCompleted   ReceiptStatus = "COMPLETED"    // extracted and reconciled
	StatusFailed      ReceiptStatus = "FAILED"       // terminal failure
	StatusNeedsReview ReceiptStatus = "NEEDS_REVIEW" // saved, but a human should look
)

// AllStatuses lists the stable status values, for schema enum validation.
var AllStatuses = []string{
	string(StatusProcessing),
	string(StatusCompleted),
	string(StatusFailed),
	string(StatusNeedsReview),
}
