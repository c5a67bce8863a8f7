package speech

import "strings"

// Jamo tables for decomposing composed Hangul syllables (U+AC00..U+D7A3)
// into their lead consonant, vowel and trailing consonant. Compound
// trailing consonants that split into two audible sounds are expanded so
// the edit distance sees them as two phonemes.
var (
	hangulLead = []string{
		"ㄱ", "ㄲ", "ㄴ", "ㄷ", "ㄸ", "ㄹ", "ㅁ", "ㅂ", "ㅃ", "ㅅ",
		"ㅆ", "ㅇ", "ㅈ", "ㅉ", "ㅊ", "ㅋ", "ㅌ", "ㅍ", "ㅎ",
	}
	hangulVowel = []string{
		"ㅏ", "ㅐ", "ㅑ", "ㅒ", "ㅓ", "ㅔ", "ㅕ", "ㅖ", "ㅗ", "ㅘ",
		"ㅙ", "ㅚ", "ㅛ", "ㅜ", "ㅝ", "ㅞ", "ㅟ", "ㅠ", "ㅡ", "ㅢ", "ㅣ",
	}
	hangulTail = []string{
		"", "ㄱ", "ㄲ", "ㄳ", "ㄴ", "ㄴㅈ", "ㄶ", "ㄷ", "ㄹ", "ㄹㄱ",
		"ㄹㅁ", "ㄹㅂ", "ㄹㅅ", "ㄹㅌ", "ㄹㅍ", "ㄹㅎ", "ㅁ", "ㅂ", "ㅂㅅ", "ㅅ",
		"ㅆ", "ㅇ", "ㅈ", "ㅊ", "ㅋ", "ㅌ", "ㅍ", "ㅎ",
	}
)

const (
	hangulBase = 0xAC00
	hangulLast = 0xD7A3
)

// DecomposeHangul expands every composed Hangul syllable in text into its
// ordered jamo sequence. Runes outside the composed-syllable range pass
// through unchanged.
func DecomposeHangul(text string) string {
	var sb strings.Builder
	for _, r := range text {
		if r < hangulBase || r > hangulLast {
			sb.WriteRune(r)
			continue
		}
		code := int(r - hangulBase)
		sb.WriteString(hangulLead[code/588])
		sb.WriteString(hangulVowel[(code%588)/28])
		sb.WriteString(hangulTail[code%28])
	}
	return sb.String()
}
