package service

import (
	"github.com/aditi/profilecore/internal/domain"
)

// TableStore is the read-only table access required by the profile pipeline.
// The loaded store satisfies it; tests substitute fixtures.
type TableStore interface {
	Partner(id string) (domain.Partner, bool)
	OnboardingNote(partnerID string) (string, bool)
	RolesByPartner(partnerID string) []domain.RoleRecord
	AccountLinksByBR(brID string) []domain.AccountLink
	Account(id string) (domain.Account, bool)
	TransactionsForAccounts(accountIDs []string) []domain.Transaction
}

// Resolver walks the partner → role → business relationship → account join
// chain and gathers the transactions on the resolved accounts.
type Resolver struct {
	store TableStore
}

// NewResolver constructs a Resolver over the provided tables.
func NewResolver(store TableStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve maps a partner identifier to its account set and transaction list.
// Empty results at any step are a valid "no financial footprint" state, never
// an error. Relationship and account identifiers are deduplicated between
// join steps so that shared edges cannot double-count transactions; no
// ordering is imposed on the returned transactions beyond table order.
func (r *Resolver) Resolve(partnerID string) ([]string, []domain.Transaction) {
	var brIDs []string
	seenBRs := make(map[string]struct{})
	for _, role := range r.store.RolesByPartner(partnerID) {
		if role.EntityType != domain.EntityTypeBusinessRelationship {
			continue
		}
		if _, dup := seenBRs[role.EntityID]; dup {
			continue
		}
		seenBRs[role.EntityID] = struct{}{}
		brIDs = append(brIDs, role.EntityID)
	}
	if len(brIDs) == 0 {
		return nil, nil
	}

	var accountIDs []string
	seenAccounts := make(map[string]struct{})
	for _, brID := range brIDs {
		for _, link := range r.store.AccountLinksByBR(brID) {
			if _, dup := seenAccounts[link.AccountID]; dup {
				continue
			}
			seenAccounts[link.AccountID] = struct{}{}
			accountIDs = append(accountIDs, link.AccountID)
		}
	}
	if len(accountIDs) == 0 {
		return nil, nil
	}

	return accountIDs, r.store.TransactionsForAccounts(accountIDs)
}
