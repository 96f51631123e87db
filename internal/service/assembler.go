package service

import (
	"sort"
	"time"

	"github.com/aditi/profilecore/internal/domain"
)

// defaultRecentLimit bounds the recent-transactions view when no limit is
// configured.
const defaultRecentLimit = 100

// Assembler builds unified profiles from the loaded tables. Each Build is a
// stateless read over shared read-only data, so one Assembler serves any
// number of concurrent callers.
type Assembler struct {
	store       TableStore
	resolver    *Resolver
	engine      FeatureEngine
	recentLimit int
	nowFn       func() time.Time
}

// NewAssembler constructs an Assembler. A non-positive recentLimit falls back
// to the default bound.
func NewAssembler(store TableStore, recentLimit int) *Assembler {
	if recentLimit <= 0 {
		recentLimit = defaultRecentLimit
	}
	return &Assembler{
		store:       store,
		resolver:    NewResolver(store),
		recentLimit: recentLimit,
		nowFn:       time.Now,
	}
}

// WithClock overrides the time provider (used primarily in tests).
func (a *Assembler) WithClock(nowFn func() time.Time) {
	if nowFn != nil {
		a.nowFn = nowFn
	}
}

// Build assembles a fresh unified profile for the given partner identifier.
// Unknown identifiers and identifiers without a financial footprint yield a
// profile with empty blocks and zero-valued aggregates, never an error.
func (a *Assembler) Build(partnerID string) *domain.UnifiedProfile {
	now := a.nowFn().UTC()
	accountIDs, txs := a.resolver.Resolve(partnerID)

	profile := &domain.UnifiedProfile{
		PartnerID: partnerID,
		CreatedAt: now,
	}

	if partner, ok := a.store.Partner(partnerID); ok {
		profile.Identity = domain.Identity{
			CanonicalID:    partnerID,
			Name:           partner.Name,
			KYCStatus:      partner.KYCStatus(),
			OnboardingDate: partner.OpenDate,
			Industry:       partner.IndustryCode,
			Class:          partner.ClassCode,
		}
		profile.StaticProfile = domain.StaticProfile{
			FullName:  partner.Name,
			BirthYear: partner.BirthYear,
			Gender:    partner.Gender,
			Address:   partner.Address,
			Phone:     partner.Phone,
			OpenDate:  partner.OpenDate,
			CloseDate: partner.CloseDate,
		}
	}

	accounts := make([]domain.Account, 0, len(accountIDs))
	for _, id := range accountIDs {
		if account, ok := a.store.Account(id); ok {
			accounts = append(accounts, account)
		}
	}
	status := domain.AccountStatusInactive
	if len(accountIDs) > 0 {
		status = domain.AccountStatusActive
	}
	profile.AccountData = domain.AccountData{
		// Count follows the resolved identifiers, not the detail rows found.
		Count:    len(accountIDs),
		Accounts: accounts,
		Status:   status,
	}

	profile.Aggregates = a.engine.Compute(txs, now)
	profile.AllTransactions = txs
	profile.RecentTransactions = recentTransactions(txs, a.recentLimit)

	if note, ok := a.store.OnboardingNote(partnerID); ok {
		profile.OnboardingNote = note
	}

	return profile
}

// recentTransactions orders transactions newest first, breaking ties by
// original table position, and caps the result at limit. Rows with an
// unparseable date sort last.
func recentTransactions(txs []domain.Transaction, limit int) []domain.Transaction {
	if len(txs) == 0 {
		return nil
	}
	ordered := make([]domain.Transaction, len(txs))
	copy(ordered, txs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.After(ordered[j].Date)
	})
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}
