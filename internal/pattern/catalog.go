// Package pattern provides the rule catalog, text matcher, and pattern
// synthesis used to pull typed fields out of statement text.
package pattern

import "github.com/billflow/billflow/internal/model"

// DefaultCatalog returns the built-in extraction rules in catalog order.
// Callers may append custom rules or supply an alternate set per call;
// nothing here is global mutable state.
func DefaultCatalog() []model.PatternRule {
	return []model.PatternRule{
		{
			Name:        "account-labeled",
			Pattern:     `(?i)account\s*(?:number|nbr|num|no)?\.?\s*[:#]?\s*([A-Z0-9][A-Z0-9-]{4,19})`,
			Description: "Account number preceded by an explicit label",
			ValueType:   model.ValueAccount,
			Priority:    10,
		},
		{
			Name:        "account-code",
			Pattern:     `\b[A-Z]{2,6}\d{4,12}\b`,
			Description: "Alphanumeric account code (letter prefix, digit suffix)",
			ValueType:   model.ValueAccount,
			Priority:    8,
		},
		{
			Name:        "account-numeric",
			Pattern:     `\b\d{6,15}\b`,
			Description: "Long bare digit run",
			ValueType:   model.ValueAccount,
			Priority:    6,
			Validator:   AccountNumberValidator{},
		},
		{
			Name:        "name-labeled",
			Pattern:     `(?i:customer|name|bill\s*to|account\s*holder)\s*[:#]?\s*([A-Z][a-z]+(?: [A-Z][a-z.'-]+){0,3})`,
			Description: "Customer name preceded by an explicit label",
			ValueType:   model.ValueName,
			Priority:    10,
		},
		{
			Name:        "name-couple",
			Pattern:     `\b[A-Z][a-z]+ & [A-Z][a-z]+ [A-Z][a-z]+\b`,
			Description: "Couple name (First & First Last)",
			ValueType:   model.ValueName,
			Priority:    9,
		},
		{
			Name:        "name-formal",
			Pattern:     `\b[A-Z][a-z]+(?: [A-Z]\.?)? [A-Z][a-z]+\b`,
			Description: "Formal two or three word name",
			ValueType:   model.ValueName,
			Priority:    7,
			Validator:   PersonNameValidator{},
		},
		{
			Name:        "name-caps",
			Pattern:     `\b[A-Z]{2,}(?: [A-Z]{2,}){1,2}\b`,
			Description: "All-caps name",
			ValueType:   model.ValueName,
			Priority:    6,
			Validator:   PersonNameValidator{},
		},
		{
			Name:        "date-written",
			Pattern:     `\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`,
			Description: "Written month-name date",
			ValueType:   model.ValueDate,
			Priority:    9,
		},
		{
			Name:        "date-slash",
			Pattern:     `\b\d{1,2}/\d{1,2}/\d{2,4}\b`,
			Description: "Slash-delimited numeric date",
			ValueType:   model.ValueDate,
			Priority:    8,
			Validator:   DateValidator{},
		},
		{
			Name:        "date-dash",
			Pattern:     `\b\d{1,2}-\d{1,2}-\d{2,4}\b`,
			Description: "Dash-delimited numeric date",
			ValueType:   model.ValueDate,
			Priority:    8,
			Validator:   DateValidator{},
		},
		{
			Name:        "currency-dollar",
			Pattern:     `\$\s?\d{1,3}(?:,\d{3})*(?:\.\d{2})?`,
			Description: "Dollar-sign currency amount",
			ValueType:   model.ValueCurrency,
			Priority:    9,
		},
		{
			Name:        "currency-decimal",
			Pattern:     `\b\d{1,3}(?:,\d{3})*\.\d{2}\b`,
			Description: "Bare decimal currency amount",
			ValueType:   model.ValueCurrency,
			Priority:    7,
		},
		{
			Name:        "address-street",
			Pattern:     `\b\d+ [A-Za-z][A-Za-z .]{2,40}(?:St|Street|Ave|Avenue|Rd|Road|Blvd|Boulevard|Dr|Drive|Ln|Lane|Ct|Court|Way)\b`,
			Description: "Street address",
			ValueType:   model.ValueAddress,
			Priority:    8,
		},
		{
			Name:        "address-zip",
			Pattern:     `\b\d{5}(?:-\d{4})?\b`,
			Description: "ZIP code",
			ValueType:   model.ValueAddress,
			Priority:    7,
		},
		{
			Name:        "phone",
			Pattern:     `\(?\d{3}\)?[-. ]?\d{3}[-. ]?\d{4}\b`,
			Description: "Phone number",
			ValueType:   model.ValuePhone,
			Priority:    8,
		},
		{
			Name:        "email",
			Pattern:     `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`,
			Description: "Email address",
			ValueType:   model.ValueEmail,
			Priority:    9,
		},
	}
}

// CatalogByType filters a rule set down to one value type, preserving order.
func CatalogByType(rules []model.PatternRule, vt model.ValueType) []model.PatternRule {
	var out []model.PatternRule
	for _, r := range rules {
		if r.ValueType == vt {
			out = append(out, r)
		}
	}
	return out
}
