package preferences

import (
	"testing"

	repo "github.com/ariawaludin/smarttourism/internal/repositories/preferences"
	"github.com/stretchr/testify/assert"
)

func TestSettings_Defaults(t *testing.T) {
	st := NewSettings(openStore(t, repo.NewMemoryRepository()))

	assert.False(t, st.DarkMode())
	assert.True(t, st.NotificationsEnabled())
	assert.True(t, st.LocationEnabled())
}

func TestSettings_ToggleAndClear(t *testing.T) {
	s := openStore(t, repo.NewMemoryRepository())
	st := NewSettings(s)

	st.SetDarkMode(true)
	st.SetNotificationsEnabled(false)
	st.SetLocationEnabled(false)
	s.SaveUser("ari")

	assert.True(t, st.DarkMode())
	assert.False(t, st.NotificationsEnabled())
	assert.False(t, st.LocationEnabled())

	st.Clear()
	assert.False(t, st.DarkMode())
	assert.True(t, st.NotificationsEnabled())
	assert.True(t, st.LocationEnabled())
	assert.Equal(t, "ari", s.User(), "clearing settings keeps the session")
}
