package services

import "unicode/utf8"

// PasswordRule names one clause of the sign-up password policy.
type PasswordRule string

const (
	RuleMinLength PasswordRule = "min_length"
	RuleUppercase PasswordRule = "uppercase"
	RuleLowercase PasswordRule = "lowercase"
	RuleDigit     PasswordRule = "digit"
)

const MinPasswordLength = 8

func (r PasswordRule) Message() string {
	switch r {
	case RuleMinLength:
		return "Password must be at least 8 characters long"
	case RuleUppercase:
		return "Password must contain at least one uppercase letter"
	case RuleLowercase:
		return "Password must contain at least one lowercase letter"
	case RuleDigit:
		return "Password must contain at least one number"
	default:
		return ""
	}
}

// CheckPassword evaluates the rules in order and reports the first one p
// does not meet. ok is true when p satisfies all of them.
func CheckPassword(p string) (rule PasswordRule, ok bool) {
	if utf8.RuneCountInString(p) < MinPasswordLength {
		return RuleMinLength, false
	}

	var upper, lower, digit bool
	for i := 0; i < len(p); i++ {
		switch c := p[i]; {
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= '0' && c <= '9':
			digit = true
		}
	}

	switch {
	case !upper:
		return RuleUppercase, false
	case !lower:
		return RuleLowercase, false
	case !digit:
		return RuleDigit, false
	}
	return "", true
}
