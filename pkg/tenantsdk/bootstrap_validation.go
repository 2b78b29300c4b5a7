package tenantsdk

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

const bootstrapRequiredReason = "required"

var (
	reTaxID = regexp.MustCompile(`^[0-9][0-9./\- ]*$`)
	rePhone = regexp.MustCompile(`^[0-9+()\-. ]+$`)
)

// Validate checks the request the way the service will. It returns a map of
// field names to messages, or nil when the request is acceptable.
func (b BootstrapRequest) Validate() map[string]string {
	errs := make(map[string]string)

	name := strings.TrimSpace(b.Name)
	switch {
	case name == "":
		errs["name"] = bootstrapRequiredReason
	case utf8.RuneCountInString(name) > 200:
		errs["name"] = "too long (max 200)"
	}

	taxID := strings.TrimSpace(b.TaxID)
	switch {
	case taxID == "":
		errs["tax_id"] = bootstrapRequiredReason
	case len(taxID) > 32 || !reTaxID.MatchString(taxID):
		errs["tax_id"] = "must contain digits and punctuation only"
	}

	if email := strings.TrimSpace(b.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil || len(email) > 254 {
			errs["email"] = "not a valid address"
		}
	}
	if phone := strings.TrimSpace(b.Phone); phone != "" && (len(phone) > 32 || !rePhone.MatchString(phone)) {
		errs["phone"] = "not a valid phone number"
	}
	if utf8.RuneCountInString(strings.TrimSpace(b.Address)) > 500 {
		errs["address"] = "too long (max 500)"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
