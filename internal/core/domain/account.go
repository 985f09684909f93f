package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Clearing account identity for barter transactions. One per company,
// created lazily on first use and owned by the system rather than the user.
const (
	BarterClearingAccountName   = "Barter Clearing"
	BarterClearingAccountNumber = "1350"
)

// Account represents an account in the company's chart of accounts. The
// ledger engine consumes the chart read-only except for lazily creating the
// barter clearing account.
type Account struct {
	AccountID     string          `json:"accountID"`     // Primary Key (UUID)
	CompanyID     string          `json:"companyID"`     // Owning company
	Name          string          `json:"name"`          // User-defined name
	AccountNumber string          `json:"accountNumber"` // Chart of accounts number
	AccountType   AccountType     `json:"accountType"`   // ASSET, LIABILITY, etc.
	Description   string          `json:"description"`
	IsSystem      bool            `json:"isSystem"` // True for auto-created accounts
	IsActive      bool            `json:"isActive"`
	Balance       decimal.Decimal `json:"balance"`
	AuditFields
}
