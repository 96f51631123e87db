package domain

// Partner is the canonical customer record loaded from the partner table.
// Fields stay as raw table strings: source rows are passed through without
// validation and may be empty or malformed.
type Partner struct {
	ID           string
	Name         string
	Gender       string
	BirthYear    string
	Phone        string
	Address      string
	OpenDate     string
	CloseDate    string
	IndustryCode string
	ClassCode    string
}

// KYC status values derived from the partner record.
const (
	KYCStatusVerified = "verified"
	KYCStatusPending  = "pending"
)

// KYCStatus derives the verification state: a partner with an open date on
// file counts as verified, everyone else is pending.
func (p Partner) KYCStatus() string {
	if p.OpenDate != "" {
		return KYCStatusVerified
	}
	return KYCStatusPending
}
