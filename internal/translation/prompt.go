package translation

import (
	"fmt"
	"strings"

	"xuanji/internal/phrase"
)

const systemPrompt = `You translate fragments of the Xuanji Tu (璇玑图), Su Hui's palindrome poem grid, from classical Chinese into English.

Rules:
1. The fragment was read in a specific direction; translate it in that order, even if it reads backwards.
2. Prefer the glossary renderings when a glossary entry appears in the fragment.
3. Output ONLY the English translation on a single line.
4. Do NOT add explanations, pinyin, or notes.`

// BuildUserPrompt lists the glossary entries contained in text, then the text itself.
func BuildUserPrompt(text string, dict *phrase.Dictionary) string {
	var sb strings.Builder

	var glossary []string
	for _, zh := range dict.Keys() {
		if zh != text && strings.Contains(text, zh) {
			en, _ := dict.Lookup(zh)
			glossary = append(glossary, fmt.Sprintf("• %s → %s", zh, en))
		}
	}
	if len(glossary) > 0 {
		sb.WriteString("=== Glossary ===\n")
		sb.WriteString(strings.Join(glossary, "\n"))
		sb.WriteString("\n\n")
	}

	sb.WriteString("Fragment to translate:\n")
	sb.WriteString(text)
	return sb.String()
}
