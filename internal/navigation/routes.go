package navigation

import "fmt"

type Route string

const (
	Splash      Route = "splash"
	Auth        Route = "auth"
	Register    Route = "register"
	Home        Route = "home"
	AllMenu     Route = "allmenu"
	Explore     Route = "explore"
	Maps        Route = "maps"
	Camera      Route = "camera"
	Profile     Route = "profile"
	Settings    Route = "settings"
	EditProfile Route = "edit_profile"
	ListWisata  Route = "listwisata"
	ThreadAsync Route = "thread_async"
)

var aliases = map[Route]Route{
	"login":        Auth,
	"SplashScreen": Splash,
}

// Canonical resolves aliases. Unknown names are returned unchanged.
func Canonical(r Route) Route {
	if c, ok := aliases[r]; ok {
		return c
	}
	return r
}

// Graph maps a route to the routes reachable from it. Going back is not an
// edge: it is always allowed through PopBackStack.
type Graph map[Route][]Route

// DefaultGraph returns the screen map of the app.
func DefaultGraph() Graph {
	return Graph{
		Splash:      {Auth, Home},
		Auth:        {Home, Register},
		Register:    {Auth},
		Home:        {AllMenu, Explore, Maps, Camera, Profile, Settings, ListWisata, ThreadAsync},
		AllMenu:     {Explore, Maps, Camera, ListWisata, ThreadAsync},
		Explore:     {Maps},
		Maps:        {Home, Explore, Profile},
		Camera:      {},
		Profile:     {Home, Maps, Settings, EditProfile, Auth},
		Settings:    {EditProfile, Auth},
		EditProfile: {},
		ListWisata:  {},
		ThreadAsync: {},
	}
}

func (g Graph) validate() error {
	for from, targets := range g {
		if _, ok := aliases[from]; ok {
			return fmt.Errorf("%w: alias %q used as graph node", ErrUnknownRoute, from)
		}
		for _, to := range targets {
			if _, ok := g[to]; !ok {
				return fmt.Errorf("%w: %q -> %q", ErrUnknownRoute, from, to)
			}
		}
	}
	return nil
}

func (g Graph) allows(from, to Route) bool {
	for _, r := range g[from] {
		if r == to {
			return true
		}
	}
	return false
}

// MenuItem is an entry of the all-menu screen. Items without a screen yet
// have an empty Route.
type MenuItem struct {
	Label string
	Route Route
}

// Menu lists the all-menu screen in display order.
var Menu = []MenuItem{
	{"Explore", Explore},
	{"Dining", ""},
	{"Hotels", ""},
	{"Transport", ""},
	{"Activities", ""},
	{"Camera", Camera},
	{"AsyncTask/Thread", ThreadAsync},
	{"Maps", Maps},
	{"Places", ListWisata},
}
