package domain

import (
	"fmt"
	"strings"
	"time"
)

// Account status values derived during profile assembly.
const (
	AccountStatusActive   = "active"
	AccountStatusInactive = "inactive"
)

// Identity is the canonical identity block of a profile.
type Identity struct {
	CanonicalID    string
	Name           string
	KYCStatus      string
	OnboardingDate string
	Industry       string
	Class          string
}

// StaticProfile carries the slow-changing attributes of a partner.
type StaticProfile struct {
	FullName  string
	BirthYear string
	Gender    string
	Address   string
	Phone     string
	OpenDate  string
	CloseDate string
}

// AccountData summarises the accounts a partner controls. Count reflects the
// resolved account identifiers even when detail rows are missing from the
// account table.
type AccountData struct {
	Count    int
	Accounts []Account
	Status   string
}

// FinancialAggregates is the fixed schema of derived transaction features.
// Every field is guaranteed finite; undefined computations collapse to 0.
type FinancialAggregates struct {
	TotalSpending30d  float64
	TotalSpending90d  float64
	AvgTxValue90d     float64
	VelocityTxPerHour float64
	TxCount30d        int
	TxCount90d        int
	MaxTxAmount       float64
	MinTxAmount       float64
}

// Document renders the aggregates under their canonical feature names.
func (f FinancialAggregates) Document() map[string]any {
	return map[string]any{
		"total_spending_30d":   f.TotalSpending30d,
		"total_spending_90d":   f.TotalSpending90d,
		"avg_tx_value_90d":     f.AvgTxValue90d,
		"velocity_tx_per_hour": f.VelocityTxPerHour,
		"tx_count_30d":         f.TxCount30d,
		"tx_count_90d":         f.TxCount90d,
		"max_tx_amount":        f.MaxTxAmount,
		"min_tx_amount":        f.MinTxAmount,
	}
}

// RiskMetadata is attached once by the external risk-scoring collaborator.
// The core never computes or validates it.
type RiskMetadata struct {
	Score                int
	ModelVersion         string
	Explanation          string
	FeatureContributions map[string]float64
}

// UnifiedProfile is the assembled per-partner artifact. It is constructed
// fresh on every build and not mutated afterwards, with the single exception
// of the one-time risk metadata attachment.
type UnifiedProfile struct {
	PartnerID          string
	CreatedAt          time.Time
	Identity           Identity
	StaticProfile      StaticProfile
	AccountData        AccountData
	Aggregates         FinancialAggregates
	RecentTransactions []Transaction
	AllTransactions    []Transaction
	OnboardingNote     string

	risk *RiskMetadata
}

// AttachRiskMetadata records the external risk assessment on the profile.
// Only the first attachment sticks; repeated calls are ignored.
func (p *UnifiedProfile) AttachRiskMetadata(score int, modelVersion, explanation string, featureContributions map[string]float64) {
	if p.risk != nil {
		return
	}
	p.risk = &RiskMetadata{
		Score:                score,
		ModelVersion:         modelVersion,
		Explanation:          explanation,
		FeatureContributions: featureContributions,
	}
}

// RiskMetadata returns the attached risk block, if any.
func (p *UnifiedProfile) RiskMetadata() (RiskMetadata, bool) {
	if p.risk == nil {
		return RiskMetadata{}, false
	}
	return *p.risk, true
}

// Document renders the profile as a generic key-value document for API
// consumers. Every numeric leaf is sanitized: non-finite values are replaced
// with an explicit null marker before the document leaves the core.
func (p *UnifiedProfile) Document() map[string]any {
	risk := map[string]any{}
	if p.risk != nil {
		contributions := map[string]any{}
		for name, weight := range p.risk.FeatureContributions {
			contributions[name] = weight
		}
		risk = map[string]any{
			"risk_score":            p.risk.Score,
			"model_version":         p.risk.ModelVersion,
			"explanation":           p.risk.Explanation,
			"feature_contributions": contributions,
		}
	}

	doc := map[string]any{
		"canonical_id": p.PartnerID,
		"created_at":   p.CreatedAt.Format(time.RFC3339),
		"identity": map[string]any{
			"canonical_id":    p.Identity.CanonicalID,
			"name":            p.Identity.Name,
			"kyc_status":      p.Identity.KYCStatus,
			"onboarding_date": p.Identity.OnboardingDate,
			"industry":        p.Identity.Industry,
			"class":           p.Identity.Class,
		},
		"static_profile": map[string]any{
			"full_name":       p.StaticProfile.FullName,
			"dob":             p.StaticProfile.BirthYear,
			"gender":          p.StaticProfile.Gender,
			"primary_address": p.StaticProfile.Address,
			"phone":           p.StaticProfile.Phone,
			"open_date":       p.StaticProfile.OpenDate,
			"close_date":      p.StaticProfile.CloseDate,
		},
		"account_data": map[string]any{
			"account_count":  p.AccountData.Count,
			"accounts":       accountDocuments(p.AccountData.Accounts),
			"account_status": p.AccountData.Status,
		},
		"financial_aggregates": p.Aggregates.Document(),
		"risk_metadata":        risk,
		"onboarding_notes":     p.OnboardingNote,
		"recent_transactions":  transactionDocuments(p.RecentTransactions),
		"all_transactions":     transactionDocuments(p.AllTransactions),
	}

	return Sanitize(doc).(map[string]any)
}

// textRecentLimit caps the transaction section of the textual view.
const textRecentLimit = 5

// Text renders the profile as ordered labeled sections. The output is a
// deterministic context string for text-based consumers; it carries the same
// data as Document in flattened form.
func (p *UnifiedProfile) Text() string {
	var lines []string

	lines = append(lines,
		"=== CANONICAL IDENTITY ===",
		fmt.Sprintf("Partner ID: %s", p.PartnerID),
		fmt.Sprintf("Name: %s", orNA(p.Identity.Name)),
		fmt.Sprintf("KYC Status: %s", orNA(p.Identity.KYCStatus)),
		fmt.Sprintf("Onboarding Date: %s", orNA(p.Identity.OnboardingDate)),
		"",
	)

	lines = append(lines, "=== STATIC PROFILE DATA ===")
	for _, field := range []struct{ label, value string }{
		{"full_name", p.StaticProfile.FullName},
		{"dob", p.StaticProfile.BirthYear},
		{"gender", p.StaticProfile.Gender},
		{"primary_address", p.StaticProfile.Address},
		{"phone", p.StaticProfile.Phone},
		{"open_date", p.StaticProfile.OpenDate},
		{"close_date", p.StaticProfile.CloseDate},
	} {
		if field.value != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", field.label, field.value))
		}
	}
	lines = append(lines, "")

	lines = append(lines,
		"=== FINANCIAL AGGREGATES ===",
		fmt.Sprintf("total_spending_30d: %.2f", p.Aggregates.TotalSpending30d),
		fmt.Sprintf("total_spending_90d: %.2f", p.Aggregates.TotalSpending90d),
		fmt.Sprintf("avg_tx_value_90d: %.2f", p.Aggregates.AvgTxValue90d),
		fmt.Sprintf("velocity_tx_per_hour: %.2f", p.Aggregates.VelocityTxPerHour),
		fmt.Sprintf("tx_count_30d: %d", p.Aggregates.TxCount30d),
		fmt.Sprintf("tx_count_90d: %d", p.Aggregates.TxCount90d),
		fmt.Sprintf("max_tx_amount: %.2f", p.Aggregates.MaxTxAmount),
		fmt.Sprintf("min_tx_amount: %.2f", p.Aggregates.MinTxAmount),
		"",
	)

	lines = append(lines, "=== RECENT TRANSACTIONS ===")
	for i, tx := range p.RecentTransactions {
		if i == textRecentLimit {
			break
		}
		lines = append(lines, fmt.Sprintf("Date: %s, Amount: %s %s, Type: %s",
			orNA(tx.RawDate), orNA(tx.Amount), orNA(tx.Currency), orNA(tx.DebitCredit)))
	}
	lines = append(lines, "")

	if p.risk != nil {
		lines = append(lines,
			"=== RISK & AUDIT METADATA ===",
			fmt.Sprintf("Latest Risk Score: %d/100", p.risk.Score),
			fmt.Sprintf("Model Version: %s", orNA(p.risk.ModelVersion)),
		)
		if p.risk.Explanation != "" {
			lines = append(lines, fmt.Sprintf("Explanation: %s", p.risk.Explanation))
		}
	}

	return strings.Join(lines, "\n")
}

func accountDocuments(accounts []Account) []any {
	docs := make([]any, 0, len(accounts))
	for _, account := range accounts {
		docs = append(docs, account.Document())
	}
	return docs
}

func transactionDocuments(txs []Transaction) []any {
	docs := make([]any, 0, len(txs))
	for _, tx := range txs {
		docs = append(docs, tx.Document())
	}
	return docs
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
