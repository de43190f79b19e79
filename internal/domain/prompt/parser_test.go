package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEmpty(t *testing.T) {
	assert.Nil(t, Parse(""))
	assert.Nil(t, Parse("   \n\t  "))
}

func TestParseColonBlocks(t *testing.T) {
	text := "Login:\nEmail and password fields.\nForgot password link.\n\nDashboard:\nStats overview."
	got := Parse(text)
	assert.Equal(t, []ParsedScreen{
		{Name: "Login", Description: "Email and password fields.\nForgot password link."},
		{Name: "Dashboard", Description: "Stats overview."},
	}, got)
}

func TestParseColonBlocksDropLeadingProse(t *testing.T) {
	text := "Build me an app with these screens\nHome:\nA feed of posts."
	got := Parse(text)
	assert.Equal(t, []ParsedScreen{
		{Name: "Home", Description: "A feed of posts."},
	}, got)
}

func TestParseBullets(t *testing.T) {
	text := "- Home: a feed of posts\n- Profile\n- Settings: toggles for notifications"
	got := Parse(text)
	assert.Equal(t, []ParsedScreen{
		{Name: "Home", Description: "a feed of posts"},
		{Name: "Profile"},
		{Name: "Settings", Description: "toggles for notifications"},
	}, got)
}

func TestParseBulletsIgnoreNonBulletLines(t *testing.T) {
	text := "I want three screens\n- Home\n- Profile"
	got := Parse(text)
	assert.Equal(t, []ParsedScreen{
		{Name: "Home"},
		{Name: "Profile"},
	}, got)
}

func TestParseCommaList(t *testing.T) {
	got := Parse("Home, Profile, Settings")
	assert.Equal(t, []ParsedScreen{
		{Name: "Home"},
		{Name: "Profile"},
		{Name: "Settings"},
	}, got)
}

func TestParseCommaListSkipsEmptyItems(t *testing.T) {
	got := Parse("Home,, Profile, ")
	assert.Equal(t, []ParsedScreen{
		{Name: "Home"},
		{Name: "Profile"},
	}, got)
}

func TestParseLineFallback(t *testing.T) {
	got := Parse("Home page\nProfile page")
	assert.Equal(t, []ParsedScreen{
		{Name: "Home page"},
		{Name: "Profile page"},
	}, got)
}

func TestParseSingleLine(t *testing.T) {
	got := Parse("a fitness tracking app")
	assert.Equal(t, []ParsedScreen{
		{Name: "a fitness tracking app"},
	}, got)
}

func TestParseMultiLineWithCommasUsesLines(t *testing.T) {
	// Commas only trigger splitting on single-line prompts.
	got := Parse("Home, the main feed\nProfile, user details")
	assert.Equal(t, []ParsedScreen{
		{Name: "Home, the main feed"},
		{Name: "Profile, user details"},
	}, got)
}
