package extraction

import (
	"regexp"
	"strings"
)

// Artifact kind keys, as exposed on the wire.
const (
	KindPhoneNumbers   = "phoneNumbers"
	KindUPIIDs         = "upiIds"
	KindBankAccounts   = "bankAccounts"
	KindIFSCCodes      = "ifscCodes"
	KindPhishingLinks  = "phishingLinks"
	KindEmailAddresses = "emailAddresses"
	KindAadhaarNumbers = "aadhaarNumbers"
	KindPANNumbers     = "panNumbers"
	KindSuspiciousTerm = "suspiciousKeywords"
)

// Kinds lists every artifact kind in canonical order.
var Kinds = []string{
	KindPhoneNumbers,
	KindUPIIDs,
	KindBankAccounts,
	KindIFSCCodes,
	KindPhishingLinks,
	KindEmailAddresses,
	KindAadhaarNumbers,
	KindPANNumbers,
	KindSuspiciousTerm,
}

// Set maps artifact kind to extracted values. Values are deduplicated
// and kept in first-seen order; that order is part of the contract so
// tests never depend on map iteration.
type Set map[string][]string

// Add appends value under kind unless already present. Reports whether
// the value was new.
func (s Set) Add(kind, value string) bool {
	for _, v := range s[kind] {
		if v == value {
			return false
		}
	}
	s[kind] = append(s[kind], value)
	return true
}

// Merge unions src into s, preserving s's existing order. Returns the
// number of newly added values.
func (s Set) Merge(src Set) int {
	added := 0
	for _, kind := range Kinds {
		for _, v := range src[kind] {
			if s.Add(kind, v) {
				added++
			}
		}
	}
	return added
}

// Count returns the total number of values across all kinds.
func (s Set) Count() int {
	n := 0
	for _, vs := range s {
		n += len(vs)
	}
	return n
}

// Clone returns a deep copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, vs := range s {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

const maxSuspiciousTerms = 15

var (
	phoneCountryRE = regexp.MustCompile(`\+91[-\s]?[6-9]\d{9}`)
	phoneBareRE    = regexp.MustCompile(`[6-9]\d{9}`)
	phoneSplitRE   = regexp.MustCompile(`\+91[-\s]?\d{5}[-\s]?\d{5}`)
	separatorRE    = regexp.MustCompile(`[-\s]`)
	upiRE          = regexp.MustCompile(`[a-z0-9._-]+@[a-z]+`)
	accountRE      = regexp.MustCompile(`\b\d{9,18}\b`)
	ifscRE         = regexp.MustCompile(`\b[A-Z]{4}0[A-Z0-9]{6}\b`)
	linkRE         = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)
	emailRE        = regexp.MustCompile(`[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
	aadhaarRE      = regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`)
	panRE          = regexp.MustCompile(`\b[A-Z]{5}\d{4}[A-Z]\b`)
)

// ExtractAll runs every extractor over text and returns the combined
// artifact set. Extraction is stateless and idempotent: re-running on
// the same text yields the same set.
func ExtractAll(text string) Set {
	return Set{
		KindPhoneNumbers:   ExtractPhones(text),
		KindUPIIDs:         ExtractUPIIDs(text),
		KindBankAccounts:   ExtractBankAccounts(text),
		KindIFSCCodes:      ExtractIFSCCodes(text),
		KindPhishingLinks:  ExtractLinks(text),
		KindEmailAddresses: ExtractEmails(text),
		KindAadhaarNumbers: ExtractAadhaarNumbers(text),
		KindPANNumbers:     ExtractPANNumbers(text),
		KindSuspiciousTerm: ExtractSuspiciousTerms(text),
	}
}

// ExtractPhones finds Indian mobile numbers, with or without the +91
// prefix, and normalizes separators away.
func ExtractPhones(text string) []string {
	var found []string
	found = append(found, phoneCountryRE.FindAllString(text, -1)...)
	// Bare 10-digit numbers must not sit inside a longer digit run.
	// RE2 has no lookaround, so the neighbour check replaces (?<!\d)…(?!\d).
	for _, loc := range phoneBareRE.FindAllStringIndex(text, -1) {
		if digitAt(text, loc[0]-1) || digitAt(text, loc[1]) {
			continue
		}
		found = append(found, text[loc[0]:loc[1]])
	}
	found = append(found, phoneSplitRE.FindAllString(text, -1)...)

	out := make([]string, 0, len(found))
	for _, ph := range found {
		out = appendUnique(out, separatorRE.ReplaceAllString(ph, ""))
	}
	return out
}

// ExtractUPIIDs finds token@provider payment handles whose suffix is a
// known payment provider.
func ExtractUPIIDs(text string) []string {
	var out []string
	for _, m := range upiRE.FindAllString(strings.ToLower(text), -1) {
		if hasPaymentSuffix(m) {
			out = appendUnique(out, m)
		}
	}
	return out
}

// ExtractBankAccounts finds 9–18 digit runs. Runs starting with the
// "91" country code are skipped so +91 phone numbers are not
// re-classified as accounts.
func ExtractBankAccounts(text string) []string {
	var out []string
	for _, m := range accountRE.FindAllString(text, -1) {
		if strings.HasPrefix(m, "91") {
			continue
		}
		out = appendUnique(out, m)
	}
	return out
}

// ExtractIFSCCodes finds bank routing codes (4 letters, literal zero,
// 6 alphanumerics), upper-cased.
func ExtractIFSCCodes(text string) []string {
	var out []string
	for _, m := range ifscRE.FindAllString(strings.ToUpper(text), -1) {
		out = appendUnique(out, m)
	}
	return out
}

// ExtractLinks finds http(s) URLs up to the next whitespace or bracket.
func ExtractLinks(text string) []string {
	var out []string
	for _, m := range linkRE.FindAllString(text, -1) {
		out = appendUnique(out, m)
	}
	return out
}

// ExtractEmails finds email addresses, excluding payment handles.
func ExtractEmails(text string) []string {
	var out []string
	for _, m := range emailRE.FindAllString(strings.ToLower(text), -1) {
		if hasPaymentSuffix(m) {
			continue
		}
		out = appendUnique(out, m)
	}
	return out
}

// ExtractAadhaarNumbers finds 12-digit national identity numbers in
// three groups of four, separators optional.
func ExtractAadhaarNumbers(text string) []string {
	var out []string
	for _, m := range aadhaarRE.FindAllString(text, -1) {
		normalized := separatorRE.ReplaceAllString(m, "")
		if len(normalized) == 12 {
			out = appendUnique(out, normalized)
		}
	}
	return out
}

// ExtractPANNumbers finds tax identity codes (5 letters, 4 digits, 1
// letter), upper-cased.
func ExtractPANNumbers(text string) []string {
	var out []string
	for _, m := range panRE.FindAllString(strings.ToUpper(text), -1) {
		out = appendUnique(out, m)
	}
	return out
}

// ExtractSuspiciousTerms scans the multilingual term tables against
// text, case-insensitively, walking categories in table order. The
// result is capped at the first 15 distinct terms.
func ExtractSuspiciousTerms(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, cat := range TermCategories {
		for _, term := range cat.Terms {
			if strings.Contains(lower, strings.ToLower(term)) {
				out = appendUnique(out, term)
			}
		}
	}
	if len(out) > maxSuspiciousTerms {
		out = out[:maxSuspiciousTerms]
	}
	return out
}

func hasPaymentSuffix(handle string) bool {
	for _, suffix := range PaymentSuffixes {
		if strings.HasSuffix(handle, suffix) {
			return true
		}
	}
	return false
}

func digitAt(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return false
	}
	return s[i] >= '0' && s[i] <= '9'
}

func appendUnique(values []string, v string) []string {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}
