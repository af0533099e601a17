package domain

// ViewKind tells the host which screen to render.
type ViewKind string

const (
	ViewWelcome      ViewKind = "welcome"
	ViewQuestion     ViewKind = "question"
	ViewInterstitial ViewKind = "interstitial"
	ViewResult       ViewKind = "result"
)

// View is the outward-facing payload of a turn. Exactly one of the
// pointers matching Kind is set.
type View struct {
	Kind         ViewKind          `json:"kind"`
	Welcome      *WelcomeView      `json:"welcome,omitempty"`
	Question     *QuestionView     `json:"question,omitempty"`
	Interstitial *InterstitialView `json:"interstitial,omitempty"`
	Result       *ResultView       `json:"result,omitempty"`
}

// Button is a choice the user can press.
type Button struct {
	Choice int    `json:"choice"`
	Label  string `json:"label"`
	Emoji  string `json:"emoji,omitempty"`
}

// Caption joins emoji and label the way buttons are shown.
func (b Button) Caption() string {
	if b.Emoji == "" {
		return b.Label
	}
	return b.Emoji + " " + b.Label
}

// WelcomeView offers the entry branches.
type WelcomeView struct {
	Text     string   `json:"text"`
	MediaRef string   `json:"media_ref,omitempty"`
	Branches []Button `json:"branches"`
}

// QuestionView shows a question with its options.
type QuestionView struct {
	Branch    int      `json:"branch"`
	Question  int      `json:"question"`
	Text      string   `json:"text"`
	MediaRef  string   `json:"media_ref,omitempty"`
	Options   []Button `json:"options"`
	CanGoBack bool     `json:"can_go_back"`
}

// HasMedia reports whether the question should be sent with media.
func (v *QuestionView) HasMedia() bool {
	return v.MediaRef != ""
}

// InterstitialView is the one-shot screen before the result.
type InterstitialView struct {
	Text         string `json:"text"`
	SubscribeURL string `json:"subscribe_url,omitempty"`
}

// AdviceLine is a formatted, numbered advice entry.
type AdviceLine struct {
	Marker  string `json:"marker"`
	Heading string `json:"heading"`
	Body    string `json:"body,omitempty"`
}

// String renders the line as plain text.
func (a AdviceLine) String() string {
	s := a.Marker + " " + a.Heading
	if a.Body != "" {
		s += "\n" + a.Body
	}
	return s
}

// Result is the aggregation of a finished session.
type Result struct {
	Portrait    string       `json:"portrait"`
	Description string       `json:"portrait_description"`
	Advices     []AdviceLine `json:"advice_lines"`
}

// ResultView is the final screen.
type ResultView struct {
	Result
	Feed string `json:"feed,omitempty"`
}
