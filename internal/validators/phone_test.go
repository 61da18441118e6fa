package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPhoneValid(t *testing.T) {
	valid := []string{
		"3001234567",
		"+57 300 123 4567",
		"(601) 555-1234",
		"1234567",
	}
	for _, p := range valid {
		assert.True(t, IsPhoneValid(p), p)
	}

	invalid := []string{
		"",
		"   ",
		"123456",
		"1234567890123456",
		"300-123-45ab",
		"tel:3001234567",
	}
	for _, p := range invalid {
		assert.False(t, IsPhoneValid(p), p)
	}
}
