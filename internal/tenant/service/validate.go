package service

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/tally/internal/tenant/domain"
)

const (
	maxCompanyName = 200
	maxTaxID       = 32
	maxEmail       = 254
	maxPhone       = 32
	maxAddress     = 500
	maxPlan        = 64
	maxDescription = 500
	maxCategory    = 100
)

var (
	// Tax ids are entered in local formats, e.g. 12.345.678/0001-90.
	taxIDPattern    = regexp.MustCompile(`^[0-9][0-9./\- ]*$`)
	phonePattern    = regexp.MustCompile(`^[0-9+()\-. ]+$`)
	platformPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-]{0,63}$`)
)

// normalizeCompanyInput trims every field and checks it.
func normalizeCompanyInput(in domain.CompanyInput) (domain.CompanyInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.TaxID = strings.TrimSpace(in.TaxID)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)

	switch {
	case in.Name == "":
		return in, invalid("name", "is required")
	case utf8.RuneCountInString(in.Name) > maxCompanyName:
		return in, invalid("name", "is too long")
	case in.TaxID == "":
		return in, invalid("tax_id", "is required")
	case len(in.TaxID) > maxTaxID || !taxIDPattern.MatchString(in.TaxID):
		return in, invalid("tax_id", "must contain digits and punctuation only")
	}

	if in.Email != "" {
		if len(in.Email) > maxEmail {
			return in, invalid("email", "is too long")
		}
		if _, err := mail.ParseAddress(in.Email); err != nil {
			return in, invalid("email", "is not a valid address")
		}
	}
	if in.Phone != "" && (len(in.Phone) > maxPhone || !phonePattern.MatchString(in.Phone)) {
		return in, invalid("phone", "is not a valid phone number")
	}
	if utf8.RuneCountInString(in.Address) > maxAddress {
		return in, invalid("address", "is too long")
	}
	return in, nil
}

func validPlatform(p string) error {
	if !platformPattern.MatchString(p) {
		return invalid("platform", "must be lowercase letters, digits, '-' or '_'")
	}
	return nil
}
