package domain

// ClientRecord is a reference entry for a known customer, loaded from the
// client-directory spreadsheet. Read-only after load.
type ClientRecord struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"clientName"`
	Email      string `json:"clientEmail"`
}
