package detection

type scriptRange struct {
	lo, hi   rune
	language string
}

// scriptRanges is checked in order; the first script present in the
// text decides the language.
var scriptRanges = []scriptRange{
	{0x0900, 0x097F, "Hindi"},
	{0x0B80, 0x0BFF, "Tamil"},
	{0x0C00, 0x0C7F, "Telugu"},
	{0x0C80, 0x0CFF, "Kannada"},
	{0x0D00, 0x0D7F, "Malayalam"},
	{0x0980, 0x09FF, "Bengali"},
}

// DetectLanguage guesses the message language from its script. Latin
// text, or anything outside the known Indic ranges, reads as English.
func DetectLanguage(text string) string {
	for _, sr := range scriptRanges {
		for _, r := range text {
			if r >= sr.lo && r <= sr.hi {
				return sr.language
			}
		}
	}
	return "English"
}
