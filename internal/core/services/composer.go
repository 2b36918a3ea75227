package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/medley-app/medley-cli/internal/core/domain"
)

// Text composition limits. The composed blob is the embedding model's input;
// keeping it bounded keeps generation latency predictable.
const (
	// composeTargetLength is the maximum length of the composed text, in runes.
	composeTargetLength = 1000

	// maxTags caps how many processed tags are included.
	maxTags = 10

	// maxConsecutiveEmoji caps emoji kept per run of consecutive emoji.
	maxConsecutiveEmoji = 3

	// maxTotalEmoji caps emoji kept across the whole string.
	maxTotalEmoji = 6

	// descriptionSeparatorBuffer is reserved for separators before the
	// description is fitted into the remaining space.
	descriptionSeparatorBuffer = 10

	// minDescriptionSpace is the smallest remaining space worth filling with
	// description text.
	minDescriptionSpace = 50

	// ocrSeparatorBuffer is the smaller separator reserve used for OCR text,
	// which is appended last.
	ocrSeparatorBuffer = 2

	// minOCRSpace is the smallest remaining space worth filling with OCR text.
	minOCRSpace = 30
)

// spamTags are generic terms that carry no semantic signal for clustering.
// The current year and its neighbours are filtered alongside these, computed
// at call time.
var spamTags = map[string]struct{}{
	"video":     {},
	"videos":    {},
	"youtube":   {},
	"shorts":    {},
	"viral":     {},
	"trending":  {},
	"fyp":       {},
	"foryou":    {},
	"subscribe": {},
	"follow":    {},
	"new":       {},
	"live":      {},
	"official":  {},
	"hd":        {},
	"4k":        {},
	"full":      {},
	"watch":     {},
	"channel":   {},
}

var (
	// urlPattern matches http(s) URLs and bare www hosts.
	urlPattern = regexp.MustCompile(`(?i)\bhttps?://\S+|\bwww\.\S+`)

	// promoPattern matches promotional calls to action commonly pasted at the
	// end of descriptions. Matches run to the end of the sentence.
	promoPattern = regexp.MustCompile(`(?i)\b(follow (us|me|my)\b|subscribe\b|don't forget to (like|subscribe)\b|smash (the|that) like\b|like,? share\b|like (and|&) (share|subscribe)\b|leave a comment\b|hit the bell\b|share this video\b|comment below\b)[^.!?\n]*[.!?]?`)
)

// ComposeInput carries the raw metadata fields a text blob is built from.
// All fields except Title are optional.
type ComposeInput struct {
	Title       string
	Channel     string
	Tags        []string
	Description string
	OCRText     string
}

// TextComposer builds a single bounded-length string from item metadata, in
// priority order, for embedding input. BuildText is pure: it always returns
// in bounded time with bounded length and never fails.
type TextComposer struct {
	targetLength int
	now          func() time.Time
}

// NewTextComposer creates a composer with the default target length.
func NewTextComposer() *TextComposer {
	return &TextComposer{
		targetLength: composeTargetLength,
		now:          time.Now,
	}
}

// BuildText composes the embedding input for an item's metadata.
//
// Priority order: title (always in full), channel, tags, description, OCR
// text. Description and OCR text are fitted into whatever space remains and
// truncated at word boundaries; the final result is hard-truncated to the
// target length as a backstop.
func (c *TextComposer) BuildText(in ComposeInput) string {
	var components []string

	if title := cleanText(in.Title); title != "" {
		components = append(components, title)
	}

	if channel := cleanText(in.Channel); channel != "" {
		components = append(components, "by "+channel)
	}

	if tags := c.ProcessTags(in.Tags); len(tags) > 0 {
		components = append(components, strings.Join(tags, " "))
	}

	if in.Description != "" {
		remaining := c.remainingSpace(components, descriptionSeparatorBuffer)
		if remaining > minDescriptionSpace {
			desc := cleanText(CleanDescription(in.Description))
			desc = truncateAtWordBoundary(desc, remaining)
			if desc != "" {
				components = append(components, desc)
			}
		}
	}

	// OCR text is always last and lowest priority.
	if in.OCRText != "" {
		remaining := c.remainingSpace(components, ocrSeparatorBuffer)
		if remaining > minOCRSpace {
			ocr := truncateAtWordBoundary(cleanText(in.OCRText), remaining)
			if ocr != "" {
				components = append(components, ocr)
			}
		}
	}

	result := strings.Join(components, "\n")

	// Backstop: the title is never truncated by composition, but a
	// pathological title can still exceed the target on its own.
	if runes := []rune(result); len(runes) > c.targetLength {
		result = string(runes[:c.targetLength])
	}

	return result
}

// BuildForItem composes the embedding input for a persisted item.
func (c *TextComposer) BuildForItem(item *domain.MediaItem) string {
	return c.BuildText(ComposeInput{
		Title:       item.Title,
		Channel:     item.Channel,
		Tags:        item.Tags,
		Description: item.Description,
		OCRText:     item.OCRText,
	})
}

// ProcessTags lowercases and trims tags, drops single-character tags,
// deduplicates case-insensitively (first occurrence wins), filters generic
// spam terms plus the current year +-1, and caps the result at maxTags.
func (c *TextComposer) ProcessTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	year := c.now().Year()
	yearTerms := map[string]struct{}{
		strconv.Itoa(year - 1): {},
		strconv.Itoa(year):     {},
		strconv.Itoa(year + 1): {},
	}

	seen := make(map[string]struct{}, len(tags))
	var out []string
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if len([]rune(tag)) <= 1 {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		if _, spam := spamTags[tag]; spam {
			continue
		}
		if _, y := yearTerms[tag]; y {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
		if len(out) == maxTags {
			break
		}
	}
	return out
}

// CleanDescription strips URLs, collapses runs of three or more repeated
// punctuation to a single character, and removes promotional phrases.
// General cleaning (whitespace, emoji) is applied separately afterwards.
func CleanDescription(description string) string {
	description = urlPattern.ReplaceAllString(description, " ")
	description = collapseRepeatedPunctuation(description)
	description = promoPattern.ReplaceAllString(description, " ")
	return description
}

// remainingSpace computes how many runes are still available for the next
// component, reserving buffer runes for separators. Never negative.
func (c *TextComposer) remainingSpace(components []string, buffer int) int {
	soFar := 0
	for i, component := range components {
		soFar += len([]rune(component))
		if i > 0 {
			soFar++ // newline separator
		}
	}

	remaining := c.targetLength - soFar - buffer
	if remaining < 0 {
		return 0
	}
	return remaining
}

// cleanText collapses whitespace runs to single spaces, limits emoji and
// trims the result.
func cleanText(s string) string {
	if s == "" {
		return ""
	}
	s = collapseWhitespace(s)
	s = limitEmoji(s)
	return strings.TrimSpace(s)
}

// collapseWhitespace replaces any run of spaces, tabs or newlines with a
// single space.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteRune(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// limitEmoji keeps at most maxConsecutiveEmoji emoji per run and
// maxTotalEmoji emoji overall, dropping the rest. The per-run counter resets
// whenever a non-emoji rune is seen. Variation selectors and zero-width
// joiners travel with the emoji they modify.
func limitEmoji(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	run, total := 0, 0
	lastEmojiKept := false
	for _, r := range s {
		if r == 0xFE0F || r == 0x200D {
			if lastEmojiKept {
				b.WriteRune(r)
			}
			continue
		}

		if !isEmoji(r) {
			run = 0
			lastEmojiKept = false
			b.WriteRune(r)
			continue
		}

		if run < maxConsecutiveEmoji && total < maxTotalEmoji {
			run++
			total++
			lastEmojiKept = true
			b.WriteRune(r)
		} else {
			run++
			lastEmojiKept = false
		}
	}
	return b.String()
}

// isEmoji reports whether the rune falls in the common emoji blocks:
// symbols and pictographs, emoticons, transport, supplemental and extended
// pictographs, regional indicators, and the legacy dingbat/misc ranges.
func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1F5FF: // misc symbols and pictographs
		return true
	case r >= 0x1F600 && r <= 0x1F64F: // emoticons
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // transport and map
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // supplemental symbols
		return true
	case r >= 0x1FA70 && r <= 0x1FAFF: // extended pictographs
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // regional indicators
		return true
	case r >= 0x2600 && r <= 0x26FF: // misc symbols
		return true
	case r >= 0x2700 && r <= 0x27BF: // dingbats
		return true
	default:
		return false
	}
}

// collapseRepeatedPunctuation reduces any run of three or more identical
// punctuation runes to a single one. Runs of one or two are kept as written.
func collapseRepeatedPunctuation(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); {
		r := runes[i]
		runLen := 1
		for i+runLen < len(runes) && runes[i+runLen] == r {
			runLen++
		}

		if unicode.IsPunct(r) && runLen >= 3 {
			b.WriteRune(r)
		} else {
			for j := 0; j < runLen; j++ {
				b.WriteRune(r)
			}
		}
		i += runLen
	}
	return b.String()
}

// truncateAtWordBoundary cuts s to at most maxRunes runes, ending at the last
// whitespace boundary at or before the limit so no word is split. Returns ""
// when not even the first word fits.
func truncateAtWordBoundary(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 0 {
		return ""
	}

	cut := -1
	for i := maxRunes; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			cut = i
			break
		}
	}
	if cut <= 0 {
		return ""
	}
	return strings.TrimSpace(string(runes[:cut]))
}
