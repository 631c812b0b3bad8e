package order

import "regexp"

var phoneNonDigits = regexp.MustCompile(`\D`)

// FormatPhone renders a phone number with dashes: 11 digits as 3-4-4,
// 10 digits as 3-3-4. Anything else passes through untouched.
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}
	digits := phoneNonDigits.ReplaceAllString(phone, "")
	switch len(digits) {
	case 11:
		return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
	case 10:
		return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	}
	return phone
}
