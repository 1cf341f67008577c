package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderWelcomeEmail_SubstitutesTokens(t *testing.T) {
	body := RenderWelcomeEmail("Ann", "Welcome Ann!")

	assert.Contains(t, body, "Welcome aboard, Ann!")
	assert.Contains(t, body, "Welcome Ann!")
	assert.NotContains(t, body, "{{name}}")
	assert.NotContains(t, body, "{{intro}}")
}

func TestRenderWelcomeEmail_IsHTML(t *testing.T) {
	body := RenderWelcomeEmail("Ann", "Welcome!")

	assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
	assert.Contains(t, body, "</html>")
}
