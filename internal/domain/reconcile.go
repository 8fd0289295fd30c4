package domain

// Machine-readable rejection reasons for stock change requests.
const (
	RejectNegativeQuantity = "negative-quantity"
	RejectUnknownProduct   = "unknown-product"
	RejectDuplicateInBatch = "duplicate-in-batch"
)

// ValidRejectReasons returns the set of rejection reason codes.
func ValidRejectReasons() []string {
	return []string{RejectNegativeQuantity, RejectUnknownProduct, RejectDuplicateInBatch}
}

// StockChangeRequest is a proposed absolute stock quantity for one product.
type StockChangeRequest struct {
	ProductID        string `json:"product_id"`
	ProposedQuantity int    `json:"proposed_quantity"`
	Reason           string `json:"reason,omitempty"`
}

// AppliedChange records one committed stock mutation.
type AppliedChange struct {
	ProductID   string      `json:"product_id"`
	OldQuantity int         `json:"old_quantity"`
	NewQuantity int         `json:"new_quantity"`
	NewStatus   StockStatus `json:"new_status"`
}

// RejectedChange records one stock change request that failed validation.
type RejectedChange struct {
	ProductID string `json:"product_id"`
	Reason    string `json:"reason"`
}

// ReconciliationReport is the outcome of one reconcile call. Every request in
// the batch appears exactly once, either in Applied or in Rejected.
type ReconciliationReport struct {
	Applied  []AppliedChange  `json:"applied"`
	Rejected []RejectedChange `json:"rejected"`
}
