// Package transcript restructures raw speech-recognition output into
// readable text. Formatting is deterministic: the same input and mode always
// produce the same output.
package transcript

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tshuldberg/WyVoice/internal/types"
)

// Spoken enumeration markers. Two or more of these in a transcript switch
// formatting into numbered-list mode.
var ordinalWords = []string{
	"first", "second", "third", "fourth", "fifth",
	"sixth", "seventh", "eighth", "ninth", "tenth",
}

// Discourse phrases that open a new paragraph in structured mode.
var paragraphMarkers = []string{
	"however", "meanwhile", "on the other hand", "in conclusion", "in summary",
	"next", "finally", "additionally", "moreover", "for example",
}

// Connectors that suggest a sentence boundary in long unpunctuated speech.
var sentenceConnectors = map[string]bool{
	"however": true, "meanwhile": true, "next": true, "finally": true,
	"also": true, "additionally": true, "moreover": true, "instead": true,
	"then": true, "but": true, "so": true, "therefore": true,
}

// Empirically tuned bounds for the connector-based splitting fallback.
const (
	connectorSplitMinWords = 14 // below this the transcript stays one sentence
	connectorMinChunkWords = 7  // a chunk must reach this before a connector breaks it
	connectorMaxChunkWords = 20 // hard break for run-on phrases
)

var (
	whitespaceRe     = regexp.MustCompile(`\s+`)
	spaceBeforePunct = regexp.MustCompile(`\s+([.,!?;:])`)
	punctThenLetter  = regexp.MustCompile(`([.!?])([A-Za-z])`)
	sentenceChunkRe  = regexp.MustCompile(`[^.!?]+[.!?]*`)
	terminalPunctRe  = regexp.MustCompile(`[.!?]`)
	endsTerminalRe   = regexp.MustCompile(`[.!?]$`)
	standaloneIRe    = regexp.MustCompile(`\bi\b`)
	firstLetterRe    = regexp.MustCompile(`[A-Za-z]`)
	nonLetterRe      = regexp.MustCompile(`[^a-z']`)
	itemLeadTrimRe   = regexp.MustCompile(`^[,;:\-\s]+`)
	ordinalRe        = regexp.MustCompile(`(?i)\b(` + strings.Join(ordinalWords, "|") + `)\b[\s,:\-]*`)
)

// Format restructures raw transcript text according to mode.
// Off mode trims and nothing else. Basic and structured modes normalize
// spacing and casing, infer numbered lists from ordinal markers, segment
// into sentences, and paragraph the result.
func Format(raw string, mode types.FormattingMode) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if mode == types.FormattingOff {
		return trimmed
	}

	normalized := normalizeSpacing(trimmed)
	if list, ok := inferOrdinalList(normalized); ok {
		return list
	}

	sentenceNormalized := normalizeSentences(normalized)
	if mode == types.FormattingStructured {
		return applyStructuredParagraphs(sentenceNormalized)
	}
	return applyBasicParagraphs(sentenceNormalized)
}

func normalizeSpacing(text string) string {
	s := whitespaceRe.ReplaceAllString(text, " ")
	s = spaceBeforePunct.ReplaceAllString(s, "$1")
	s = punctThenLetter.ReplaceAllString(s, "$1 $2")
	return strings.TrimSpace(s)
}

func normalizeSentences(text string) string {
	sentences := splitIntoSentences(text)
	styled := make([]string, 0, len(sentences))
	for _, sentence := range sentences {
		styled = append(styled, styleSentence(sentence, false))
	}
	return strings.Join(styled, " ")
}

// splitIntoSentences breaks text into sentence chunks. Terminal punctuation
// wins; unpunctuated text falls back to commas, then to discourse
// connectors.
func splitIntoSentences(text string) []string {
	var chunks []string
	for _, m := range sentenceChunkRe.FindAllString(text, -1) {
		if c := strings.TrimSpace(m); c != "" {
			chunks = append(chunks, c)
		}
	}
	if len(chunks) > 1 {
		return chunks
	}

	unpunctuated := !terminalPunctRe.MatchString(text)
	if unpunctuated && strings.Contains(text, ",") {
		var parts []string
		for _, p := range strings.Split(text, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) > 1 {
			return parts
		}
	}

	if unpunctuated {
		if parts := splitByConnectors(text); len(parts) > 1 {
			return parts
		}
	}

	return []string{strings.TrimSpace(text)}
}

// splitByConnectors walks the words of a long unpunctuated transcript and
// starts a new chunk before each discourse connector once the current chunk
// holds at least connectorMinChunkWords words, with a hard break at
// connectorMaxChunkWords.
func splitByConnectors(text string) []string {
	words := strings.Fields(strings.TrimSpace(text))
	if len(words) < connectorSplitMinWords {
		return []string{strings.TrimSpace(text)}
	}

	var segments []string
	var current []string

	for _, word := range words {
		cleaned := nonLetterRe.ReplaceAllString(strings.ToLower(word), "")
		if len(current) >= connectorMinChunkWords && sentenceConnectors[cleaned] {
			segments = append(segments, strings.Join(current, " "))
			current = []string{word}
			continue
		}

		current = append(current, word)

		if len(current) >= connectorMaxChunkWords {
			segments = append(segments, strings.Join(current, " "))
			current = nil
		}
	}

	if len(current) > 0 {
		segments = append(segments, strings.Join(current, " "))
	}

	return segments
}

// styleSentence trims, capitalizes and punctuates one sentence. A terminal
// period is appended only for sentences of four or more words, unless
// forceTerminal is set (list items always end in a period).
func styleSentence(sentence string, forceTerminal bool) string {
	trimmed := whitespaceRe.ReplaceAllString(strings.TrimSpace(sentence), " ")
	if trimmed == "" {
		return ""
	}

	styled := standaloneIRe.ReplaceAllString(capitalizeFirstLetter(trimmed), "I")
	if endsTerminalRe.MatchString(styled) {
		return styled
	}

	if !forceTerminal && len(strings.Fields(styled)) < 4 {
		return styled
	}
	return styled + "."
}

func capitalizeFirstLetter(text string) string {
	loc := firstLetterRe.FindStringIndex(text)
	if loc == nil {
		return text
	}
	return text[:loc[0]] + strings.ToUpper(text[loc[0]:loc[1]]) + text[loc[1]:]
}

// inferOrdinalList detects enumerated speech ("first ... second ...") and
// renders it as a numbered list preceded by the styled intro. Returns false
// when fewer than two ordinal markers or two non-empty items are present.
func inferOrdinalList(text string) (string, bool) {
	matches := ordinalRe.FindAllStringIndex(text, -1)
	if len(matches) < 2 {
		return "", false
	}

	intro := strings.TrimSpace(text[:matches[0][0]])
	var items []string

	for i, m := range matches {
		start := m[1]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		rawItem := itemLeadTrimRe.ReplaceAllString(strings.TrimSpace(text[start:end]), "")
		if rawItem == "" {
			continue
		}
		items = append(items, styleSentence(rawItem, true))
	}

	if len(items) < 2 {
		return "", false
	}

	var b strings.Builder
	if intro != "" {
		b.WriteString(styleSentence(intro, false))
		b.WriteString("\n\n")
	}
	for i, item := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, item)
	}
	return b.String(), true
}

// applyBasicParagraphs joins short transcripts into one paragraph and splits
// longer ones (four or more sentences) into exactly two at the midpoint.
func applyBasicParagraphs(text string) string {
	sentences := styledSentences(text)
	if len(sentences) < 4 {
		return strings.Join(sentences, " ")
	}

	splitAt := (len(sentences) + 1) / 2
	first := strings.Join(sentences[:splitAt], " ")
	second := strings.Join(sentences[splitAt:], " ")
	return first + "\n\n" + second
}

// applyStructuredParagraphs opens a new paragraph before discourse markers
// and flushes every two sentences.
func applyStructuredParagraphs(text string) string {
	sentences := styledSentences(text)
	if len(sentences) < 3 {
		return strings.Join(sentences, " ")
	}

	var paragraphs []string
	var current []string

	for _, sentence := range sentences {
		if startsWithParagraphMarker(sentence) && len(current) > 0 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}

		current = append(current, sentence)

		if len(current) >= 2 {
			paragraphs = append(paragraphs, strings.Join(current, " "))
			current = nil
		}
	}

	if len(current) > 0 {
		paragraphs = append(paragraphs, strings.Join(current, " "))
	}

	return strings.Join(paragraphs, "\n\n")
}

func startsWithParagraphMarker(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, marker := range paragraphMarkers {
		if lower == marker || strings.HasPrefix(lower, marker+" ") {
			return true
		}
	}
	return false
}

func styledSentences(text string) []string {
	split := splitIntoSentences(text)
	styled := make([]string, 0, len(split))
	for _, sentence := range split {
		styled = append(styled, styleSentence(sentence, false))
	}
	return styled
}
