package validators

import "strings"

// IsPhoneValid acepta números con 7 a 15 dígitos, con prefijo + opcional y
// separadores usuales.
func IsPhoneValid(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}

	if strings.HasPrefix(phone, "+") {
		phone = phone[1:]
	}

	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return false
		}
	}

	return digits >= 7 && digits <= 15
}
