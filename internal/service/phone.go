package service

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// normalizePhone validates a visitor-entered number and returns it in E.164.
// Numbers without a country code are read in defaultRegion.
func normalizePhone(raw, defaultRegion string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", invalid("phone", "Please enter your phone number.")
	}

	num, err := phonenumbers.Parse(raw, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", invalid("phone", "Please enter a valid phone number.")
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
