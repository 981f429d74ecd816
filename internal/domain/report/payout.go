package report

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/okian/payroll/internal/domain/model"
)

// PayoutName is the registry name of the payout report.
const PayoutName = "payout"

const (
	columnGap    = "    "
	totalPrefix  = "Total payout: $"
	payoutPlaces = 0
)

// Payout lists each employee's payout followed by the total.
//
//	Employee: Alice Johnson    Department: Marketing    Payout: $8000
//	Employee: Bob Smith        Department: Design       Payout: $6000
//	Total payout: $14000
//
// Names and departments are padded to the widest value in the input. Amounts
// are rounded half to even to whole units for display only; the total sums
// exact payouts.
type Payout struct{}

// Generate implements Generator.
func (Payout) Generate(records []model.Record) string {
	if len(records) == 0 {
		return totalPrefix + "0"
	}

	nameWidth, deptWidth := 0, 0
	for _, rec := range records {
		nameWidth = max(nameWidth, utf8.RuneCountInString(rec.Name()))
		deptWidth = max(deptWidth, utf8.RuneCountInString(rec.Department()))
	}

	var b strings.Builder
	total := decimal.Zero
	for _, rec := range records {
		payout := rec.Payout()
		total = total.Add(payout)

		b.WriteString("Employee: ")
		b.WriteString(padRight(rec.Name(), nameWidth))
		b.WriteString(columnGap)
		b.WriteString("Department: ")
		b.WriteString(padRight(rec.Department(), deptWidth))
		b.WriteString(columnGap)
		b.WriteString("Payout: $")
		b.WriteString(payout.StringFixedBank(payoutPlaces))
		b.WriteByte('\n')
	}
	b.WriteString(totalPrefix)
	b.WriteString(total.StringFixedBank(payoutPlaces))

	return b.String()
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
