package store

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/aditi/profilecore/internal/domain"
)

// Source table file names, fixed by the upstream data drop.
const (
	partnerFile     = "partner.csv"
	notesFile       = "client_onboarding_notes.csv"
	roleFile        = "partner_role.csv"
	businessRelFile = "business_rel.csv"
	accountLinkFile = "br_to_account.csv"
	accountFile     = "account.csv"
	transactionFile = "transactions.csv"
)

// Store holds the seven source tables, indexed by their lookup keys. It is
// built once by Load and read-only afterwards, so any number of concurrent
// profile builds may share one instance without coordination.
type Store struct {
	partners       map[string]domain.Partner
	notes          map[string]string
	rolesByPartner map[string][]domain.RoleRecord
	businessRels   []domain.BusinessRelationship
	linksByBR      map[string][]domain.AccountLink
	accounts       map[string]domain.Account
	transactions   []domain.Transaction
	txPositions    map[string][]int

	counts Counts
}

// Counts reports per-table row totals, used for startup logging and health
// reporting.
type Counts struct {
	Partners              int `json:"partners"`
	OnboardingNotes       int `json:"onboardingNotes"`
	Roles                 int `json:"roles"`
	BusinessRelationships int `json:"businessRelationships"`
	AccountLinks          int `json:"accountLinks"`
	Accounts              int `json:"accounts"`
	Transactions          int `json:"transactions"`
}

// Load reads every source table from dir and builds the lookup indexes. Any
// missing or unreadable table aborts the load; there is no degraded mode.
// Row contents are not validated.
func Load(dir string) (*Store, error) {
	s := &Store{
		partners:       make(map[string]domain.Partner),
		notes:          make(map[string]string),
		rolesByPartner: make(map[string][]domain.RoleRecord),
		linksByBR:      make(map[string][]domain.AccountLink),
		accounts:       make(map[string]domain.Account),
		txPositions:    make(map[string][]int),
	}

	if err := s.loadPartners(filepath.Join(dir, partnerFile)); err != nil {
		return nil, fmt.Errorf("load partner table: %w", err)
	}
	if err := s.loadNotes(filepath.Join(dir, notesFile)); err != nil {
		return nil, fmt.Errorf("load onboarding notes table: %w", err)
	}
	if err := s.loadRoles(filepath.Join(dir, roleFile)); err != nil {
		return nil, fmt.Errorf("load partner role table: %w", err)
	}
	if err := s.loadBusinessRels(filepath.Join(dir, businessRelFile)); err != nil {
		return nil, fmt.Errorf("load business relationship table: %w", err)
	}
	if err := s.loadAccountLinks(filepath.Join(dir, accountLinkFile)); err != nil {
		return nil, fmt.Errorf("load account link table: %w", err)
	}
	if err := s.loadAccounts(filepath.Join(dir, accountFile)); err != nil {
		return nil, fmt.Errorf("load account table: %w", err)
	}
	if err := s.loadTransactions(filepath.Join(dir, transactionFile)); err != nil {
		return nil, fmt.Errorf("load transaction table: %w", err)
	}

	return s, nil
}

func (s *Store) loadPartners(path string) error {
	rows, err := readTable(path)
	if err != nil {
		return err
	}
	for _, r := range rows {
		id := r.get("partner_id")
		if _, exists := s.partners[id]; exists {
			// first row wins for duplicate keys
			continue
		}
		s.partners[id] = domain.Partner{
			ID:           id,
			Name:         r.get("partner_name"),
			Gender:       r.get("partner_gender"),
			BirthYear:    r.get("partner_birth_year"),
			Phone:        r.get("partner_phone_number"),
			Address:      r.get("partner_address"),
			OpenDate:     r.get("partner_open_date"),
			CloseDate:    r.get("partner_close_date"),
			IndustryCode: r.get("industry_gic2_code"),
			ClassCode:    r.get("partner_class_code"),
		}
	}
	s.counts.Partners = len(rows)
	return nil
}

func (s *Store) loadNotes(path string) error {
	rows, err := readTable(path)
	if err != nil {
		return err
	}
	for _, r := range rows {
		id := r.get("Partner_ID")
		if _, exists := s.notes[id]; exists {
			continue
		}
		s.notes[id] = r.get("Onboarding_Note")
	}
	s.counts.OnboardingNotes = len(rows)
	return nil
}

func (s *Store) loadRoles(path string) error {
	rows, err := readTable(path)
	if err != nil {
		return err
	}
	for _, r := range rows {
		role := domain.RoleRecord{
			PartnerID:  r.get("partner_id"),
			EntityType: r.get("entity_type"),
			EntityID:   r.get("entity_id"),
		}
		s.rolesByPartner[role.PartnerID] = append(s.rolesByPartner[role.PartnerID], role)
	}
	s.counts.Roles = len(rows)
	return nil
}

func (s *Store) loadBusinessRels(path string) error {
	rows, err := readTable(path)
	if err != nil {
		return err
	}
	for _, r := range rows {
		fields := make(map[string]string, len(r.columns))
		for column := range r.columns {
			if column == "br_id" {
				continue
			}
			fields[column] = r.get(column)
		}
		s.businessRels = append(s.businessRels, domain.BusinessRelationship{
			ID:     r.get("br_id"),
			Fields: fields,
		})
	}
	s.counts.BusinessRelationships = len(rows)
	return nil
}

func (s *Store) loadAccountLinks(path string) error {
	rows, err := readTable(path)
	if err != nil {
		return err
	}
	for _, r := range rows {
		link := domain.AccountLink{
			BRID:      r.get("br_id"),
			AccountID: r.get("account_id"),
		}
		s.linksByBR[link.BRID] = append(s.linksByBR[link.BRID], link)
	}
	s.counts.AccountLinks = len(rows)
	return nil
}

func (s *Store) loadAccounts(path string) error {
	rows, err := readTable(path)
	if err != nil {
		return err
	}
	for _, r := range rows {
		id := r.get("account_id")
		if _, exists := s.accounts[id]; exists {
			continue
		}
		var extra map[string]string
		for column := range r.columns {
			switch column {
			case "account_id", "balance", "currency":
			default:
				if extra == nil {
					extra = make(map[string]string)
				}
				extra[column] = r.get(column)
			}
		}
		s.accounts[id] = domain.Account{
			ID:       id,
			Balance:  r.get("balance"),
			Currency: r.get("currency"),
			Extra:    extra,
		}
	}
	s.counts.Accounts = len(rows)
	return nil
}

func (s *Store) loadTransactions(path string) error {
	rows, err := readTable(path)
	if err != nil {
		return err
	}
	for _, r := range rows {
		rawDate := r.get("Date")
		tx := domain.Transaction{
			AccountID:                r.get("Account ID"),
			Date:                     parseDate(rawDate),
			RawDate:                  rawDate,
			Amount:                   r.get("Amount"),
			DebitCredit:              r.get("Debit/Credit"),
			Currency:                 r.get("Currency"),
			Balance:                  r.get("Balance"),
			TransferType:             r.get("Transfer_Type"),
			CounterpartyAccountID:    r.get("counterparty_Account_ID"),
			ExtCounterpartyAccountID: r.get("ext_counterparty_Account_ID"),
			ExtCounterpartyCountry:   r.get("ext_counterparty_country"),
		}
		position := len(s.transactions)
		s.transactions = append(s.transactions, tx)
		s.txPositions[tx.AccountID] = append(s.txPositions[tx.AccountID], position)
	}
	s.counts.Transactions = len(rows)
	return nil
}

// Partner returns the partner record for the given identifier.
func (s *Store) Partner(id string) (domain.Partner, bool) {
	partner, ok := s.partners[id]
	return partner, ok
}

// OnboardingNote returns the onboarding note recorded for a partner.
func (s *Store) OnboardingNote(partnerID string) (string, bool) {
	note, ok := s.notes[partnerID]
	return note, ok
}

// RolesByPartner returns the role rows for a partner in table order.
func (s *Store) RolesByPartner(partnerID string) []domain.RoleRecord {
	return s.rolesByPartner[partnerID]
}

// BusinessRelationships returns all business relationship rows in table order.
func (s *Store) BusinessRelationships() []domain.BusinessRelationship {
	return s.businessRels
}

// AccountLinksByBR returns the relationship-to-account edges for a business
// relationship in table order.
func (s *Store) AccountLinksByBR(brID string) []domain.AccountLink {
	return s.linksByBR[brID]
}

// Account returns the account record for the given identifier.
func (s *Store) Account(id string) (domain.Account, bool) {
	account, ok := s.accounts[id]
	return account, ok
}

// TransactionsForAccounts returns every transaction whose account reference
// is in accountIDs, preserving original table order across accounts. The
// position index avoids a linear scan of the transaction table per request.
func (s *Store) TransactionsForAccounts(accountIDs []string) []domain.Transaction {
	if len(accountIDs) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(accountIDs))
	var positions []int
	for _, id := range accountIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		positions = append(positions, s.txPositions[id]...)
	}
	sort.Ints(positions)

	txs := make([]domain.Transaction, 0, len(positions))
	for _, pos := range positions {
		txs = append(txs, s.transactions[pos])
	}
	return txs
}

// Counts reports the loaded row totals per table.
func (s *Store) Counts() Counts {
	return s.counts
}
