package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ariawaludin/smarttourism/internal/models"
	"github.com/ariawaludin/smarttourism/internal/navigation"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// open makes route the active screen unless it already is.
func (a *App) open(route navigation.Route) error {
	if a.nav.Current() == route {
		return nil
	}
	return a.nav.Navigate(route)
}

func (a *App) Go(_ context.Context, route string) error {
	return a.nav.Navigate(navigation.Route(route))
}

// Back pops the current screen. It reports false on the last screen.
func (a *App) Back(_ context.Context) bool {
	return a.nav.PopBackStack()
}

func (a *App) Menu(_ context.Context) error {
	if err := a.open(navigation.AllMenu); err != nil {
		return err
	}
	for _, item := range navigation.Menu {
		target := "go " + string(item.Route)
		if item.Route == "" {
			target = "coming soon"
		}
		printlnFn(fmt.Sprintf("%-18s %s", item.Label, target))
	}
	return nil
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (a *App) Profile(_ context.Context) error {
	if err := a.open(navigation.Profile); err != nil {
		return err
	}
	name := a.prefs.ProfileName()
	if name == "" {
		name = "-"
	}
	email := a.prefs.ProfileEmail()
	if email == "" {
		email = "-"
	}
	printlnFn(fmt.Sprintf("Username: %s\nName:     %s\nEmail:    %s", a.sessions.Username(), name, email))
	return nil
}

func (a *App) EditProfile(ctx context.Context) error {
	if err := a.open(navigation.EditProfile); err != nil {
		return err
	}

	name, err := getTextWithDefault(a.reader, "Name", a.prefs.ProfileName(), os.Stdout)
	if err != nil {
		return err
	}
	email, err := getTextWithDefault(a.reader, "Email", a.prefs.ProfileEmail(), os.Stdout)
	if err != nil {
		return err
	}

	a.prefs.SaveProfile(name, email)
	if err := a.prefs.Flush(ctx); err != nil {
		return err
	}
	printlnFn("Profile saved")
	a.nav.PopBackStack()
	return nil
}

func (a *App) Settings(_ context.Context) error {
	if err := a.open(navigation.Settings); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Dark mode:     %s\nNotifications: %s\nLocation:      %s",
		onOff(a.settings.DarkMode()),
		onOff(a.settings.NotificationsEnabled()),
		onOff(a.settings.LocationEnabled()),
	))
	return nil
}

func (a *App) Set(ctx context.Context, name, value string) error {
	if err := a.open(navigation.Settings); err != nil {
		return err
	}

	var v bool
	switch strings.ToLower(value) {
	case "on", "true", "1":
		v = true
	case "off", "false", "0":
	default:
		return fmt.Errorf("value must be on or off, got %q", value)
	}

	switch strings.ToLower(name) {
	case "darkmode", "dark_mode":
		a.settings.SetDarkMode(v)
	case "notifications":
		a.settings.SetNotificationsEnabled(v)
	case "location":
		a.settings.SetLocationEnabled(v)
	default:
		return fmt.Errorf("unknown setting %q", name)
	}
	return a.Settings(ctx)
}

// ClearSettings resets every toggle to its default.
func (a *App) ClearSettings(ctx context.Context) error {
	if err := a.open(navigation.Settings); err != nil {
		return err
	}
	a.settings.Clear()
	return a.Settings(ctx)
}

func (a *App) Places(ctx context.Context) error {
	if err := a.open(navigation.ListWisata); err != nil {
		return err
	}
	list, err := a.places.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		printlnFn("No places yet")
		return nil
	}
	for _, p := range list {
		printlnFn(fmt.Sprintf("%3d  %-30s %s", p.ID, p.Name, p.Location))
	}
	return nil
}

func (a *App) AddPlace(ctx context.Context) error {
	if err := a.open(navigation.ListWisata); err != nil {
		return err
	}

	name, err := getSimpleText(a.reader, "Place name", os.Stdout)
	if err != nil {
		return err
	}
	location, err := getSimpleText(a.reader, "Location", os.Stdout)
	if err != nil {
		return err
	}
	description, err := GetMultiline(a.reader, "Description", os.Stdout)
	if err != nil {
		return err
	}

	p, err := a.places.Add(ctx, models.Place{Name: name, Location: location, Description: description})
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Added %s (#%d)", p.Name, p.ID))
	return nil
}

func (a *App) Destinations(_ context.Context, kind string) error {
	if err := a.open(navigation.Explore); err != nil {
		return err
	}
	list := a.places.Destinations(models.DestinationType(strings.ToLower(kind)))
	if len(list) == 0 {
		printlnFn("No destinations found")
		return nil
	}
	for _, d := range list {
		line := fmt.Sprintf("%-12s %-24s %s", d.Type, d.Name, d.Location)
		if d.ReviewCount > 0 {
			line += fmt.Sprintf("  %.1f (%d reviews)", d.Rating, d.ReviewCount)
		}
		printlnFn(line)
	}
	return nil
}

func (a *App) Nearest(_ context.Context, lat, lng string) error {
	if err := a.open(navigation.Maps); err != nil {
		return err
	}
	if !a.settings.LocationEnabled() {
		return fmt.Errorf("location is turned off in settings")
	}

	la, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return fmt.Errorf("bad latitude %q", lat)
	}
	lo, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return fmt.Errorf("bad longitude %q", lng)
	}

	d, km := a.places.Nearest(la, lo)
	printlnFn(fmt.Sprintf("Nearest: %s (%s), %.1f km", d.Name, d.Location, km))
	return nil
}

func (a *App) Photo(ctx context.Context, path string) error {
	if err := a.open(navigation.Camera); err != nil {
		return err
	}
	data, err := readFile(path)
	if err != nil {
		return err
	}

	p, err := a.album.Capture(ctx, data)
	if p != nil {
		printlnFn("Photo saved to " + p.LocalPath)
		if p.RemoteKey != "" {
			printlnFn("Uploaded as " + p.RemoteKey)
		}
	}
	return err
}

func (a *App) Upload(ctx context.Context) error {
	n, err := a.album.UploadPending(ctx)
	if n > 0 {
		printlnFn(fmt.Sprintf("Uploaded %d photo(s)", n))
	}
	return err
}

// Quotes loads the feed in the background and prints a waiting line until
// it arrives, as the async demo screen does.
func (a *App) Quotes(ctx context.Context) error {
	if err := a.open(navigation.ThreadAsync); err != nil {
		return err
	}

	type result struct {
		quotes []models.Quote
		err    error
	}
	done := make(chan result, 1)
	go func() {
		q, err := a.quotes.Fetch(ctx)
		done <- result{q, err}
	}()

	printlnFn("Loading quotes...")
	var r result
	select {
	case r = <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if r.err != nil {
		return r.err
	}

	for _, q := range r.quotes {
		printlnFn(fmt.Sprintf("\"%s\" - %s", q.Text, q.Author))
	}
	return nil
}
