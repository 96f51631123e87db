package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Table is one generated CSV table: file name, header, and data rows.
type Table struct {
	File   string
	Header []string
	Rows   [][]string
}

// Dataset contains the seven generated source tables.
type Dataset struct {
	Partners        Table
	OnboardingNotes Table
	Roles           Table
	BusinessRels    Table
	AccountLinks    Table
	Accounts        Table
	Transactions    Table
}

// Generator produces synthetic tables aligned with the record store schema.
type Generator struct {
	cfg   Config
	rand  *rand.Rand
	names nameFragments
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	if cfg.NumPartners <= 0 {
		cfg.NumPartners = DefaultConfig().NumPartners
	}
	if cfg.NumTransactions <= 0 {
		cfg.NumTransactions = DefaultConfig().NumTransactions
	}
	if cfg.NoteChance <= 0 {
		cfg.NoteChance = DefaultConfig().NoteChance
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:   cfg,
		rand:  rand.New(rand.NewSource(cfg.Seed)),
		names: defaultNameFragments(),
	}
}

// Generate synthesises the seven tables. It respects context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	ds := Dataset{
		Partners: Table{
			File: "partner.csv",
			Header: []string{
				"partner_id", "partner_name", "partner_gender", "partner_birth_year",
				"partner_phone_number", "partner_address", "partner_open_date",
				"partner_close_date", "industry_gic2_code", "partner_class_code",
			},
		},
		OnboardingNotes: Table{
			File:   "client_onboarding_notes.csv",
			Header: []string{"Partner_ID", "Onboarding_Note"},
		},
		Roles: Table{
			File:   "partner_role.csv",
			Header: []string{"partner_id", "entity_type", "entity_id"},
		},
		BusinessRels: Table{
			File:   "business_rel.csv",
			Header: []string{"br_id", "br_type", "br_start_date"},
		},
		AccountLinks: Table{
			File:   "br_to_account.csv",
			Header: []string{"br_id", "account_id"},
		},
		Accounts: Table{
			File:   "account.csv",
			Header: []string{"account_id", "balance", "currency", "account_type"},
		},
		Transactions: Table{
			File: "transactions.csv",
			Header: []string{
				"Account ID", "Date", "Amount", "Debit/Credit", "Currency", "Balance",
				"Transfer_Type", "counterparty_Account_ID", "ext_counterparty_Account_ID",
				"ext_counterparty_country",
			},
		},
	}

	now := time.Now().UTC()
	var accountPool []string

	for i := 0; i < g.cfg.NumPartners; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		partnerID := uuid.NewString()
		openDate := ""
		if g.rand.Float64() < 0.8 {
			openDate = now.AddDate(0, 0, -g.rand.Intn(365*5)).Format("2006-01-02")
		}
		closeDate := ""
		if openDate != "" && g.rand.Float64() < 0.05 {
			closeDate = now.AddDate(0, 0, -g.rand.Intn(90)).Format("2006-01-02")
		}

		ds.Partners.Rows = append(ds.Partners.Rows, []string{
			partnerID,
			g.randomFullName(),
			g.randomGender(),
			fmt.Sprintf("%d", 1950+g.rand.Intn(55)),
			g.randomPhone(),
			g.randomAddress(),
			openDate,
			closeDate,
			fmt.Sprintf("GIC%02d", 10+g.rand.Intn(50)),
			g.randomClassCode(),
		})

		if g.rand.Float64() < g.cfg.NoteChance {
			ds.OnboardingNotes.Rows = append(ds.OnboardingNotes.Rows, []string{
				partnerID, g.randomNote(),
			})
		}

		if g.rand.Float64() < g.cfg.NoFootprintChance {
			continue
		}

		// Occasional non-BR role rows exercise the entity-type filter.
		if g.rand.Float64() < 0.2 {
			ds.Roles.Rows = append(ds.Roles.Rows, []string{
				partnerID, "EMP", uuid.NewString(),
			})
		}

		brCount := 1 + g.rand.Intn(2)
		for b := 0; b < brCount; b++ {
			brID := uuid.NewString()
			ds.Roles.Rows = append(ds.Roles.Rows, []string{
				partnerID, "BR", brID,
			})
			ds.BusinessRels.Rows = append(ds.BusinessRels.Rows, []string{
				brID,
				g.randomBRType(),
				now.AddDate(0, 0, -g.rand.Intn(365*3)).Format("2006-01-02"),
			})

			accountCount := 1 + g.rand.Intn(3)
			for a := 0; a < accountCount; a++ {
				accountID := uuid.NewString()
				ds.AccountLinks.Rows = append(ds.AccountLinks.Rows, []string{brID, accountID})
				ds.Accounts.Rows = append(ds.Accounts.Rows, []string{
					accountID,
					fmt.Sprintf("%.2f", g.rand.Float64()*100000),
					g.randomCurrency(),
					g.randomAccountType(),
				})
				accountPool = append(accountPool, accountID)
			}
		}
	}

	for i := 0; i < g.cfg.NumTransactions; i++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		if len(accountPool) == 0 {
			break
		}

		accountID := accountPool[g.rand.Intn(len(accountPool))]
		ts := now.Add(-time.Duration(g.rand.Intn(120*24*60)) * time.Minute)

		amount := fmt.Sprintf("%.2f", g.rand.Float64()*4990+10)
		if g.rand.Float64() < g.cfg.BadAmountChance {
			amount = "N/A"
		}

		direction := "credit"
		if g.rand.Float64() < 0.55 {
			direction = "debit"
		}

		counterparty := ""
		extCounterparty := ""
		extCountry := ""
		if g.rand.Float64() < 0.5 {
			counterparty = accountPool[g.rand.Intn(len(accountPool))]
		} else {
			extCounterparty = fmt.Sprintf("EXT-%08d", g.rand.Intn(100000000))
			extCountry = g.randomCountry()
		}

		ds.Transactions.Rows = append(ds.Transactions.Rows, []string{
			accountID,
			ts.Format("2006-01-02 15:04:05"),
			amount,
			direction,
			g.randomCurrency(),
			fmt.Sprintf("%.2f", g.rand.Float64()*100000),
			g.randomTransferType(),
			counterparty,
			extCounterparty,
			extCountry,
		})
	}

	return ds, nil
}

func (g *Generator) randomFullName() string {
	return fmt.Sprintf("%s %s", g.names.first[g.rand.Intn(len(g.names.first))],
		g.names.last[g.rand.Intn(len(g.names.last))])
}

func (g *Generator) randomGender() string {
	options := []string{"F", "M", ""}
	return options[g.rand.Intn(len(options))]
}

func (g *Generator) randomPhone() string {
	return fmt.Sprintf("+1%03d%03d%04d", g.rand.Intn(900)+100, g.rand.Intn(900)+100, g.rand.Intn(10000))
}

func (g *Generator) randomAddress() string {
	return fmt.Sprintf("%d %s %s, %s", g.rand.Intn(9999)+1,
		g.names.streetNames[g.rand.Intn(len(g.names.streetNames))],
		g.names.streetSuffix[g.rand.Intn(len(g.names.streetSuffix))],
		g.names.cities[g.rand.Intn(len(g.names.cities))])
}

func (g *Generator) randomClassCode() string {
	options := []string{"A", "B", "C", "D"}
	return options[g.rand.Intn(len(options))]
}

func (g *Generator) randomBRType() string {
	options := []string{"OWNER", "SIGNATORY", "BENEFICIARY"}
	return options[g.rand.Intn(len(options))]
}

func (g *Generator) randomCurrency() string {
	options := []string{"USD", "EUR", "GBP", "CHF"}
	return options[g.rand.Intn(len(options))]
}

func (g *Generator) randomAccountType() string {
	options := []string{"CHECKING", "SAVINGS", "BUSINESS"}
	return options[g.rand.Intn(len(options))]
}

func (g *Generator) randomTransferType() string {
	options := []string{"SEPA", "SWIFT", "INTERNAL", "CARD"}
	return options[g.rand.Intn(len(options))]
}

func (g *Generator) randomCountry() string {
	options := []string{"DE", "FR", "GB", "US", "SG", "AE"}
	return options[g.rand.Intn(len(options))]
}

func (g *Generator) randomNote() string {
	notes := []string{
		"Client onboarded via branch referral. Documentation complete.",
		"Remote onboarding. Proof of address pending follow-up.",
		"Long-standing client migrated from legacy system.",
		"Onboarded as part of SME acquisition campaign.",
		"High-value client. Enhanced due diligence on file.",
	}
	return notes[g.rand.Intn(len(notes))]
}

type nameFragments struct {
	first        []string
	last         []string
	streetNames  []string
	streetSuffix []string
	cities       []string
}

func defaultNameFragments() nameFragments {
	return nameFragments{
		first:        []string{"Jane", "John", "Alex", "Priya", "Liu", "Maria", "Omar", "Sofia", "Noah", "Emma", "Lucas", "Mia", "Ava", "Ethan", "Zara"},
		last:         []string{"Doe", "Smith", "Chen", "Patel", "Garcia", "Khan", "Kim", "Ivanov", "Nguyen", "Silva", "Brown", "Lee"},
		streetNames:  []string{"Market", "Mission", "Broadway", "Fifth", "Sunset", "Park", "Cedar", "Oak", "Pine", "Ash"},
		streetSuffix: []string{"St", "Ave", "Blvd", "Ln", "Rd", "Way"},
		cities:       []string{"San Francisco", "New York", "Seattle", "Austin", "Chicago", "Miami", "Denver", "Boston", "Los Angeles"},
	}
}
