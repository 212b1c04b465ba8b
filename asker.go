package foerder

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Asker answers subsidy questions over the indexed funding programs.
type Asker interface {
	// Ask answers a natural language question.
	// Returns ENOTFOUND if no programs are indexed.
	Ask(ctx context.Context, question string) (string, error)
}

// CompanyProfile describes the company looking for funding.
type CompanyProfile struct {
	Location       string
	Industry       string
	Employees      int
	FundingType    string
	AdditionalInfo string
}

// FundingTypes lists the funding categories offered to users.
var FundingTypes = []string{
	"Existenzgründung",
	"Forschung und Entwicklung",
	"Umweltschutz",
	"Digitalisierung",
	"Andere",
}

// Validate returns an error if the profile is unusable.
func (p *CompanyProfile) Validate() error {
	if p.Employees < 0 {
		return Errorf(EINVALID, "employee count must not be negative")
	}
	if p.Location == "" && p.Industry == "" && p.AdditionalInfo == "" {
		return Errorf(EINVALID, "profile needs at least a location, an industry or additional information")
	}
	if p.FundingType != "" && !slices.Contains(FundingTypes, p.FundingType) {
		return Errorf(EINVALID, "unknown funding type %q; choose one of: %s", p.FundingType, strings.Join(FundingTypes, ", "))
	}
	return nil
}

// Question renders the profile as the opening message to the assistant.
func (p *CompanyProfile) Question() string {
	var sb strings.Builder
	sb.WriteString("Hier ist das Unternehmensprofil:\n")
	fmt.Fprintf(&sb, "Standort: %s\n", p.Location)
	fmt.Fprintf(&sb, "Branche: %s\n", p.Industry)
	fmt.Fprintf(&sb, "Mitarbeiter: %d\n", p.Employees)
	fmt.Fprintf(&sb, "Förderart: %s\n", p.FundingType)
	fmt.Fprintf(&sb, "Sonstige Informationen: %s\n", p.AdditionalInfo)
	sb.WriteString("Bitte finden Sie passende Fördermittel für dieses Unternehmen.")
	return sb.String()
}
