package preferences

// Keys shared by the screens.
const (
	KeyDarkMode             = "dark_mode"
	KeyNotificationsEnabled = "notifications_enabled"
	KeyLocationEnabled      = "location_enabled"
	KeyLoggedIn             = "isLoggedIn"
	KeyUsername             = "username"
	KeyProfileName          = "profile_name"
	KeyProfileEmail         = "profile_email"
	KeySessionToken         = "session_token"
	KeySessionSecret        = "session_secret"
)
