package report

import (
	"strings"

	"github.com/resultado/dre/internal/classification"
)

// CompositeKey identifies one report line. Two ledger lines are the same
// report line iff their keys are equal.
type CompositeKey struct {
	Classification string `json:"classification"` // normalized
	Account        string `json:"account,omitempty"`
	SubAccount     string `json:"sub_account,omitempty"`
}

// Key builds a CompositeKey. Missing account fields become "".
func Key(classificationCode, account, subAccount string) CompositeKey {
	return CompositeKey{
		Classification: classification.Normalize(classificationCode),
		Account:        strings.TrimSpace(account),
		SubAccount:     strings.TrimSpace(subAccount),
	}
}

// IsBase reports whether the key has no sub-account.
func (k CompositeKey) IsBase() bool {
	return k.SubAccount == ""
}

// Base returns the key of the owning base-account row.
func (k CompositeKey) Base() CompositeKey {
	return CompositeKey{Classification: k.Classification, Account: k.Account}
}

// Less orders keys by classification, then account, then sub-account.
func (k CompositeKey) Less(other CompositeKey) bool {
	if k.Classification != other.Classification {
		return k.Classification < other.Classification
	}
	if k.Account != other.Account {
		return k.Account < other.Account
	}
	return k.SubAccount < other.SubAccount
}

// keySet records observed keys in first-seen order along with the display
// data the ledger supplied for them.
type keySet struct {
	order      []CompositeKey
	raw        map[CompositeKey]string // first raw classification seen
	names      map[CompositeKey]string
	classNames map[string]string
}

func newKeySet() *keySet {
	return &keySet{
		raw:        make(map[CompositeKey]string),
		names:      make(map[CompositeKey]string),
		classNames: make(map[string]string),
	}
}

func (ks *keySet) add(k CompositeKey, rawClassification, name string) {
	if _, seen := ks.raw[k]; !seen {
		ks.order = append(ks.order, k)
		ks.raw[k] = strings.TrimSpace(rawClassification)
	}
	name = strings.TrimSpace(name)
	if longer(name, ks.names[k]) {
		ks.names[k] = name
	}
	if longer(name, ks.classNames[k.Classification]) {
		ks.classNames[k.Classification] = name
	}
}

// longer reports whether a is a more complete label than b.
func longer(a, b string) bool {
	return len([]rune(a)) > len([]rune(b))
}
