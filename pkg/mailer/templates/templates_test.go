package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Welcome(t *testing.T) {
	data := ToMap(EmailData{Name: "Ada", Email: "ada@x.io", AppName: "Accounts", LoginURL: "https://app.example/login"})

	subject, text, html, err := Render(Welcome, data)
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Accounts, Ada", subject)
	assert.Contains(t, text, "ada@x.io")
	assert.Contains(t, text, "https://app.example/login")
	assert.Contains(t, html, "<strong>ada@x.io</strong>")
}

func TestRender_DefaultsAndEscaping(t *testing.T) {
	data := ToMap(EmailData{Name: "<b>Eve</b>", Email: "eve@x.io", Role: "admin"})

	subject, _, html, err := Render(AdminWelcome, data)
	require.NoError(t, err)
	assert.Equal(t, "Service: administrator account for <b>Eve</b>", subject)
	assert.Contains(t, html, "&lt;b&gt;Eve&lt;/b&gt;")
	assert.Contains(t, html, "ADMIN")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nope", map[string]any{})
	assert.Error(t, err)
}
