package domain

// Texts is the catalogue of user-facing strings. Keys in mapstructure tags
// match the "key" column of texts.csv.
type Texts struct {
	WelcomeCaption      string `mapstructure:"welcome_caption" json:"welcome_caption"`
	StartButton         string `mapstructure:"start_button" json:"start_button"`
	BranchButton        string `mapstructure:"branch_button" json:"branch_button"`
	BackButton          string `mapstructure:"back_button" json:"back_button"`
	RestartButton       string `mapstructure:"restart_button" json:"restart_button"`
	ConfirmationMark    string `mapstructure:"confirmation_mark" json:"confirmation_mark"`
	InterstitialText    string `mapstructure:"interstitial_text" json:"interstitial_text"`
	SubscribeButton     string `mapstructure:"subscribe_button" json:"subscribe_button"`
	SkipButton          string `mapstructure:"skip_button" json:"skip_button"`
	FallbackPortrait    string `mapstructure:"fallback_portrait" json:"fallback_portrait"`
	FallbackDescription string `mapstructure:"fallback_description" json:"fallback_description"`
	ResultHeader        string `mapstructure:"result_header" json:"result_header"`
	ResultFooter        string `mapstructure:"result_footer" json:"result_footer"`
	FeedHeader          string `mapstructure:"feed_header" json:"feed_header"`
	ChannelLabel        string `mapstructure:"channel_label" json:"channel_label"`
	CommunityLabel      string `mapstructure:"community_label" json:"community_label"`
	UseButtonsHint      string `mapstructure:"use_buttons_hint" json:"use_buttons_hint"`
	SessionMissing      string `mapstructure:"session_missing" json:"session_missing"`
	QuestionNotFound    string `mapstructure:"question_not_found" json:"question_not_found"`
	InvalidChoice       string `mapstructure:"invalid_choice" json:"invalid_choice"`
	BackNotAllowed      string `mapstructure:"back_not_allowed" json:"back_not_allowed"`
	GenericFailure      string `mapstructure:"generic_failure" json:"generic_failure"`
}

// DefaultTexts returns the built-in catalogue.
func DefaultTexts() Texts {
	return Texts{
		WelcomeCaption: "👋 <b>Welcome to the career advisor!</b>\n" +
			"This bot will help you:\n" +
			"- Find out your profile\n" +
			"- Get personalized recommendations\n" +
			"Ready? Press the button below!",
		StartButton:         "🚀 Start the survey",
		BranchButton:        "🚀 Branch %d",
		BackButton:          "🔙 Back",
		RestartButton:       "🔄 Start over",
		ConfirmationMark:    "✅",
		InterstitialText:    "Almost done! Subscribe to the channel while we prepare your results, or skip straight to them.",
		SubscribeButton:     "📢 Subscribe",
		SkipButton:          "➡️ Show my results",
		FallbackPortrait:    DefaultPortrait,
		FallbackDescription: "<b>Your professional portrait: %s</b>\nYou have a sound combination of qualities that will help you steadily succeed in your career.",
		ResultHeader:        "🎯 <b>Your personal recommendations:</b>",
		ResultFooter:        "<b>Don't lock yourself into work alone. Follow the trends if you want to level up in life.</b>",
		FeedHeader:          "<b>Latest posts:</b>",
		ChannelLabel:        "Channel",
		CommunityLabel:      "Community",
		UseButtonsHint:      "Please use the buttons to navigate",
		SessionMissing:      "Session reset",
		QuestionNotFound:    "Error: question not found",
		InvalidChoice:       "Invalid choice",
		BackNotAllowed:      "Cannot go back",
		GenericFailure:      "Something went wrong. Let's start over.",
	}
}

// ErrorMessage returns the user-facing message for a failure kind.
func (t Texts) ErrorMessage(kind ErrorKind) string {
	switch kind {
	case KindSessionMissing:
		return t.SessionMissing
	case KindQuestionNotFound:
		return t.QuestionNotFound
	case KindInvalidChoice:
		return t.InvalidChoice
	case KindBackNotAllowed:
		return t.BackNotAllowed
	}
	return t.GenericFailure
}
