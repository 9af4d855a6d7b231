package activity

// Tone classifies the severity of the status banner.
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
)

// Banner is the single live status line. Every operation overwrites it
// wholesale; tones are never merged.
type Banner struct {
	Tone Tone
	Text string
}

func Neutral(text string) Banner { return Banner{Tone: ToneNeutral, Text: text} }
func Success(text string) Banner { return Banner{Tone: ToneSuccess, Text: text} }
func Error(text string) Banner   { return Banner{Tone: ToneError, Text: text} }
