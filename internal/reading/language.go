package reading

import "unicode"

// MatchesTargetLanguage reports whether text is written in the script of
// lang. English and Russian passages must be at least 90% Latin or Cyrillic
// letters respectively; other languages are not checked.
func MatchesTargetLanguage(text, lang string) bool {
	var latin, cyrillic int
	for _, r := range text {
		switch {
		case r < unicode.MaxASCII && unicode.IsLetter(r):
			latin++
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		}
	}
	letters := latin + cyrillic
	if letters == 0 {
		return false
	}
	latinRatio := float64(latin) / float64(letters)
	cyrillicRatio := float64(cyrillic) / float64(letters)
	switch lang {
	case "en":
		return latinRatio >= 0.9 && cyrillicRatio <= 0.05
	case "ru":
		return cyrillicRatio >= 0.9 && latinRatio <= 0.05
	default:
		return true
	}
}
