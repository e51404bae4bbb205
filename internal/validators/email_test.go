package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailFormatValid(t *testing.T) {
	assert.True(t, IsEmailFormatValid("sam@ldagroup.co.uk"))
	assert.False(t, IsEmailFormatValid("Sam <sam@ldagroup.co.uk>"))
	assert.False(t, IsEmailFormatValid("sam@localhost"))
	assert.False(t, IsEmailFormatValid("not-an-email"))
	assert.False(t, IsEmailFormatValid(""))
}

func TestIsEmailDomainValidRejectsMissingDomain(t *testing.T) {
	assert.False(t, IsEmailDomainValid("sam@"))
	assert.False(t, IsEmailDomainValid("sam"))
}
