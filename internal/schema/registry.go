// Package schema resolves bank-specific statement layouts: which header
// aliases each bank uses for the canonical columns, and which cell index
// ends up holding each column in a given document.
package schema

import (
	"strings"
)

// Role is a canonical column role in a statement table.
type Role string

// The five canonical column roles.
const (
	RoleDate        Role = "date"
	RoleDescription Role = "description"
	RoleDebit       Role = "debit"
	RoleCredit      Role = "credit"
	RoleBalance     Role = "balance"
)

// BankSchema maps each column role to the header aliases a bank uses for it.
// Aliases are stored lower-cased; matching is case-insensitive.
type BankSchema map[Role][]string

// ColumnMap resolves column roles to cell indexes for one document. It is
// established once per document and never mutated.
type ColumnMap map[Role]int

// HasRequired reports whether the map resolves the minimum roles needed to
// decode data rows.
func (m ColumnMap) HasRequired() bool {
	_, hasDate := m[RoleDate]
	_, hasDesc := m[RoleDescription]
	return hasDate && hasDesc
}

// Registry is the static bank name -> schema lookup, immutable after load.
type Registry struct {
	schemas map[string]BankSchema
}

// NewRegistry builds a registry from raw configuration
// (bank identifier -> role name -> alias list).
func NewRegistry(raw map[string]map[string][]string) *Registry {
	schemas := make(map[string]BankSchema, len(raw))
	for bank, roles := range raw {
		bs := make(BankSchema, len(roles))
		for role, aliases := range roles {
			lowered := make([]string, 0, len(aliases))
			for _, a := range aliases {
				a = strings.ToLower(strings.TrimSpace(a))
				if a != "" {
					lowered = append(lowered, a)
				}
			}
			bs[Role(strings.ToLower(role))] = lowered
		}
		schemas[strings.ToUpper(bank)] = bs
	}
	return &Registry{schemas: schemas}
}

// Lookup returns the schema for a bank identifier, if configured.
func (r *Registry) Lookup(bank string) (BankSchema, bool) {
	bs, ok := r.schemas[strings.ToUpper(bank)]
	return bs, ok
}

// Banks returns the configured bank identifiers.
func (r *Registry) Banks() []string {
	banks := make([]string, 0, len(r.schemas))
	for bank := range r.schemas {
		banks = append(banks, bank)
	}
	return banks
}
