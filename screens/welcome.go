package screens

// WelcomeContent is the static copy of the welcome screen.
type WelcomeContent struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Slides   []string `json:"slides"`
	Actions  []string `json:"actions"`
}

// WelcomeScreen has no backend calls.
type WelcomeScreen struct{}

func (WelcomeScreen) Content() WelcomeContent {
	return WelcomeContent{
		Title:    "Tripnest",
		Subtitle: "Find, save and book your next trip.",
		Slides: []string{
			"Explore hand-picked destinations",
			"Save the trips you love",
			"Book trips and hotel rooms in one place",
		},
		Actions: []string{"signIn", "signUp"},
	}
}
