package constants

// Storage blob keys. Each entity collection persists as its own JSON blob
// under one of these keys; renaming any of them orphans existing data.
const (
	KeySteps       = "steps"
	KeyDays        = "days"
	KeyReflections = "reflections"
	KeySettings    = "settings"
)

const (
	// MinActiveSteps and MaxSteps bound the routine size. The store does not
	// enforce these; callers validate before mutating (see internal/validation).
	MinActiveSteps = 1
	MaxSteps       = 5

	// MaxEmojiGraphemes caps a step's icon at two grapheme clusters.
	MaxEmojiGraphemes = 2

	// MaxReflectionChars caps reflection text, counted in runes.
	MaxReflectionChars = 160

	MoodMin = 0
	MoodMax = 4

	// WindowDays is the rolling statistics window.
	WindowDays = 7

	// BackupVersion is the current backup envelope format version.
	BackupVersion = 1
)

// StepSeed describes one default routine step created on init and full reset.
type StepSeed struct {
	Title string
	Emoji string
}

// DefaultStepSeeds keep the app from ever starting with an empty routine.
var DefaultStepSeeds = []StepSeed{
	{Title: "Drink a glass of water", Emoji: "💧"},
	{Title: "Stretch for five minutes", Emoji: "🧘"},
	{Title: "Write down one thought", Emoji: "✍️"},
}
