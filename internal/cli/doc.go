// Package cli is the interactive front end of the Smart Tourism app.
//
// NewApp is the composition root: it opens storage, the preference store,
// the account and session services, the navigator and the optional remote
// backends (Redis, S3, the quotes feed). App.Run shows the splash screen,
// routes to home or login depending on the saved session and then runs a
// small REPL where every command maps to a screen action.
//
// Errors never end the program. They are printed as a single line and the
// user stays on the current screen.
package cli
