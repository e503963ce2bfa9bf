package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/vynal-docs/vynal/internal/core/domain"
)

// minAddressLength is the shortest accepted postal address, in characters.
const minAddressLength = 10

// maxAmountDigits bounds the whole part of an amount so its value in
// cents fits an int64.
const maxAmountDigits = 15

// yearPivot splits two-digit years: below it maps to 20YY, otherwise 19YY.
const yearPivot = 50

// rule is the format rule of one field kind.
type rule struct {
	// name is reported in corrections and validation errors.
	name string

	// parse returns the typed value when raw is already in canonical form.
	parse func(raw string) (domain.Value, bool)

	// fix rewrites raw into canonical form. It reports false when no
	// deterministic rewrite exists.
	fix func(raw string) (string, bool)
}

var rules = map[domain.FieldKind]rule{
	domain.FieldKindDate:    {name: "date", parse: parseDate, fix: fixDate},
	domain.FieldKindAmount:  {name: "amount", parse: parseAmount, fix: fixAmount},
	domain.FieldKindEmail:   {name: "email", parse: parseEmail, fix: fixEmail},
	domain.FieldKindPhone:   {name: "phone", parse: parsePhone, fix: fixPhone},
	domain.FieldKindAddress: {name: "address", parse: parseAddress, fix: fixAddress},
}

var (
	isoDate      = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	yearFirst    = regexp.MustCompile(`^(\d{4})[/.\-](\d{1,2})[/.\-](\d{1,2})$`)
	dayFirst     = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})$`)
	dayFirstYY   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2})$`)
	plainAmount  = regexp.MustCompile(fmt.Sprintf(`^\d{1,%d}(\.\d{1,2})?$`, maxAmountDigits))
	emailPattern = regexp.MustCompile(`(?i)^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Date.

func parseDate(raw string) (domain.Value, bool) {
	m := isoDate.FindStringSubmatch(raw)
	if m == nil {
		return domain.Value{}, false
	}
	d, ok := calendarDate(m[1], m[2], m[3])
	if !ok {
		return domain.Value{}, false
	}
	return domain.Value{Kind: domain.FieldKindDate, Text: raw, Date: d, Valid: true}, true
}

func fixDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)

	var year, month, day string
	if m := yearFirst.FindStringSubmatch(s); m != nil {
		year, month, day = m[1], m[2], m[3]
	} else if m := dayFirst.FindStringSubmatch(s); m != nil {
		day, month, year = m[1], m[2], m[3]
	} else if m := dayFirstYY.FindStringSubmatch(s); m != nil {
		day, month = m[1], m[2]
		yy, _ := strconv.Atoi(m[3])
		if yy < yearPivot {
			year = fmt.Sprintf("20%02d", yy)
		} else {
			year = fmt.Sprintf("19%02d", yy)
		}
	} else {
		return "", false
	}

	d, ok := calendarDate(year, month, day)
	if !ok {
		return "", false
	}
	return d.Format(time.DateOnly), true
}

// calendarDate rejects dates that time.Date would normalise (e.g. 31 February).
func calendarDate(year, month, day string) (time.Time, bool) {
	y, err1 := strconv.Atoi(year)
	m, err2 := strconv.Atoi(month)
	d, err3 := strconv.Atoi(day)
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

// Amount.

func parseAmount(raw string) (domain.Value, bool) {
	if !plainAmount.MatchString(raw) {
		return domain.Value{}, false
	}
	whole, frac, _ := strings.Cut(raw, ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return domain.Value{}, false
	}
	frac = (frac + "00")[:2]
	cents, _ := strconv.ParseInt(frac, 10, 64)
	total := units*100 + cents
	return domain.Value{
		Kind:  domain.FieldKindAmount,
		Text:  formatCents(total),
		Cents: total,
		Valid: true,
	}, true
}

func fixAmount(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			b.WriteRune(r)
		case r == '-':
			return "", false
		}
	}
	s := strings.ReplaceAll(b.String(), ",", ".")
	if i := strings.LastIndex(s, "."); i >= 0 {
		s = strings.ReplaceAll(s[:i], ".", "") + "." + s[i+1:]
	}
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "." {
		return "", false
	}

	// Whole units and cents are computed on the digits, rounding the
	// third decimal half up.
	whole, frac, _ := strings.Cut(s, ".")
	whole = strings.TrimLeft(whole, "0")
	if len(whole) > maxAmountDigits {
		return "", false
	}
	var units int64
	if whole != "" {
		n, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return "", false
		}
		units = n
	}
	frac += "000"
	cents := int64(frac[0]-'0')*10 + int64(frac[1]-'0')
	if frac[2] >= '5' {
		cents++
	}
	return formatCents(units*100 + cents), true
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// Email.

func parseEmail(raw string) (domain.Value, bool) {
	if !emailPattern.MatchString(raw) {
		return domain.Value{}, false
	}
	return domain.Value{Kind: domain.FieldKindEmail, Text: strings.ToLower(raw), Valid: true}, true
}

func fixEmail(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(s) {
		return "", false
	}
	return s, true
}

// Phone.

func parsePhone(raw string) (domain.Value, bool) {
	if !phonePattern.MatchString(raw) {
		return domain.Value{}, false
	}
	return domain.Value{Kind: domain.FieldKindPhone, Text: raw, Valid: true}, true
}

func fixPhone(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	var b strings.Builder
	for i, r := range s {
		if r == '+' && i == 0 {
			b.WriteRune(r)
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if !phonePattern.MatchString(out) {
		return "", false
	}
	return out, true
}

// Address.

func parseAddress(raw string) (domain.Value, bool) {
	if utf8.RuneCountInString(raw) < minAddressLength {
		return domain.Value{}, false
	}
	if whitespace.ReplaceAllString(strings.TrimSpace(raw), " ") != raw {
		return domain.Value{}, false
	}
	return domain.Value{Kind: domain.FieldKindAddress, Text: raw, Valid: true}, true
}

func fixAddress(raw string) (string, bool) {
	lines := strings.FieldsFunc(raw, func(r rune) bool { return r == '\n' || r == '\r' })
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		line = whitespace.ReplaceAllString(strings.TrimSpace(line), " ")
		line = strings.Trim(line, ", ")
		if line != "" {
			parts = append(parts, line)
		}
	}
	out := strings.Join(parts, ", ")
	if utf8.RuneCountInString(out) < minAddressLength {
		return "", false
	}
	return out, true
}
