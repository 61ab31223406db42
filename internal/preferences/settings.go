package preferences

// Settings is the view used by the settings screen.
type Settings struct {
	store *Store
}

func NewSettings(s *Store) *Settings {
	return &Settings{store: s}
}

func (s *Settings) DarkMode() bool { return s.store.GetBool(KeyDarkMode, false) }

func (s *Settings) SetDarkMode(v bool) { s.store.SetBool(KeyDarkMode, v) }

func (s *Settings) NotificationsEnabled() bool {
	return s.store.GetBool(KeyNotificationsEnabled, true)
}

func (s *Settings) SetNotificationsEnabled(v bool) { s.store.SetBool(KeyNotificationsEnabled, v) }

func (s *Settings) LocationEnabled() bool { return s.store.GetBool(KeyLocationEnabled, true) }

func (s *Settings) SetLocationEnabled(v bool) { s.store.SetBool(KeyLocationEnabled, v) }

// Clear resets the three toggles to their defaults. Other keys are kept.
func (s *Settings) Clear() {
	s.store.Remove(KeyDarkMode)
	s.store.Remove(KeyNotificationsEnabled)
	s.store.Remove(KeyLocationEnabled)
}
