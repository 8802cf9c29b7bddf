package model

// CatalogEntry represents a row in the account catalog.
type CatalogEntry struct {
	Classification string
	Name           string
	Depth          int // 0 = derive from classification
	AccountType    string
}
