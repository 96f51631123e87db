package generator

// Config drives the synthetic data generator.
type Config struct {
	NumPartners     int
	NumTransactions int
	// NoFootprintChance is the probability that a partner has no role rows
	// at all, exercising the empty-resolution path downstream.
	NoFootprintChance float64
	// BadAmountChance injects non-numeric amount values into the
	// transaction table.
	BadAmountChance float64
	NoteChance      float64
	Seed            int64
}

// DefaultConfig returns baseline settings for a workable sample dataset.
func DefaultConfig() Config {
	return Config{
		NumPartners:       500,
		NumTransactions:   5000,
		NoFootprintChance: 0.1,
		BadAmountChance:   0.02,
		NoteChance:        0.6,
		Seed:              42,
	}
}
