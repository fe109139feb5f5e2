package billing

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// financialYearStartMonth is April; the invoice number embeds the financial
// year as a YYs/YYe tag.
const financialYearStartMonth = time.April

var invoiceSeqRegex = regexp.MustCompile(`^[A-Z](\d+)/`)

// NextInvoiceNumber derives the next invoice number from the full history of
// existing numbers, formatted as P####/M/YYs/YYe, e.g. K0008/4/24/25.
//
// The sequence scan deliberately ignores financial year boundaries: the
// numeric component grows monotonically forever and the FY tag is decorative.
// Numbers whose sequence cannot be parsed are skipped. The generator does not
// enforce uniqueness; the invoices table's unique constraint does.
func NextInvoiceNumber(prefix string, existing []string, now time.Time) string {
	maxSeq := 0
	for _, number := range existing {
		m := invoiceSeqRegex.FindStringSubmatch(number)
		if m == nil {
			continue
		}
		seq, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}

	fyStart, fyEnd := FinancialYear(now)
	return fmt.Sprintf("%s%04d/%d/%02d/%02d",
		prefix, maxSeq+1, int(now.Month()), fyStart%100, fyEnd%100)
}

// FinancialYear returns the start and end calendar years of the financial
// year containing t.
func FinancialYear(t time.Time) (start, end int) {
	if t.Month() >= financialYearStartMonth {
		return t.Year(), t.Year() + 1
	}
	return t.Year() - 1, t.Year()
}
