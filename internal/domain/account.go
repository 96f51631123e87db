package domain

// EntityTypeBusinessRelationship marks role rows that link a partner to a
// business relationship. Other entity types exist in the role table but play
// no part in account resolution.
const EntityTypeBusinessRelationship = "BR"

// RoleRecord links a partner to some entity, discriminated by EntityType.
type RoleRecord struct {
	PartnerID  string
	EntityType string
	EntityID   string
}

// BusinessRelationship is an intermediate entity between partners and
// accounts. The pipeline only needs its identifier; remaining columns are
// carried verbatim.
type BusinessRelationship struct {
	ID     string
	Fields map[string]string
}

// AccountLink is a many-to-many edge between a business relationship and an
// account.
type AccountLink struct {
	BRID      string
	AccountID string
}

// Account is a financial account record. Balance and currency stay as raw
// table strings; columns beyond the known schema are preserved in Extra so
// profile documents can pass full records through.
type Account struct {
	ID       string
	Balance  string
	Currency string
	Extra    map[string]string
}

// Document renders the account as a key-value record using the source table
// column names.
func (a Account) Document() map[string]any {
	doc := map[string]any{
		"account_id": a.ID,
		"balance":    a.Balance,
		"currency":   a.Currency,
	}
	for k, v := range a.Extra {
		doc[k] = v
	}
	return doc
}
