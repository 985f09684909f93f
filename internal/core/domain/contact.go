package domain

// Contact is a counterparty in the company's contact directory. The ledger
// engine reads contacts to resolve counterparty display data for tax
// reporting; it never mutates them.
type Contact struct {
	ContactID string `json:"contactID"` // Primary Key (UUID)
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`
	TaxID     string `json:"taxID"`
	Address   string `json:"address"`
}
