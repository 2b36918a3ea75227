package services

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComposer() *TextComposer {
	c := NewTextComposer()
	// Pin the clock so year-based tag filtering is deterministic.
	c.now = func() time.Time {
		return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	}
	return c
}

func TestBuildTextPriorityOrder(t *testing.T) {
	c := newTestComposer()

	out := c.BuildText(ComposeInput{
		Title:       "Deep Dive into B-Trees",
		Channel:     "Data Structures Weekly",
		Tags:        []string{"Databases", "algorithms"},
		Description: "We walk through insertion and splitting.",
		OCRText:     "node keys children",
	})

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Deep Dive into B-Trees", lines[0])
	assert.Equal(t, "by Data Structures Weekly", lines[1])
	assert.Equal(t, "databases algorithms", lines[2])
	assert.Equal(t, "We walk through insertion and splitting.", lines[3])
	assert.Equal(t, "node keys children", lines[4])
}

func TestBuildTextLengthBound(t *testing.T) {
	c := newTestComposer()

	inputs := []ComposeInput{
		{},
		{Title: "t"},
		{Title: strings.Repeat("long title ", 200)},
		{Title: "Title", Description: strings.Repeat("word ", 5000)},
		{
			Title:       "Title",
			Channel:     strings.Repeat("channel", 100),
			Tags:        []string{strings.Repeat("tag", 50)},
			Description: strings.Repeat("description ", 1000),
			OCRText:     strings.Repeat("ocr ", 1000),
		},
	}

	for i, in := range inputs {
		out := c.BuildText(in)
		assert.LessOrEqual(t, len([]rune(out)), composeTargetLength, "input %d", i)
	}
}

func TestBuildTextTitleNeverTruncated(t *testing.T) {
	c := newTestComposer()

	title := "An Unusually Specific Documentary About Tide Pools"
	out := c.BuildText(ComposeInput{
		Title:       title,
		Description: strings.Repeat("filler words here ", 500),
		Tags:        []string{"one", "two", "three", "four", "five"},
	})

	assert.Contains(t, out, title)
	assert.True(t, strings.HasPrefix(out, title))
}

func TestBuildTextEmptyInput(t *testing.T) {
	c := newTestComposer()

	assert.Empty(t, c.BuildText(ComposeInput{}))
	assert.Empty(t, c.BuildText(ComposeInput{Title: "   \t\n  "}))
}

func TestBuildTextDescriptionWordBoundary(t *testing.T) {
	c := newTestComposer()

	// Fill most of the budget with the title so the description must be cut.
	title := strings.Repeat("t", 900)
	desc := strings.Repeat("boundary ", 40)

	out := c.BuildText(ComposeInput{Title: title, Description: desc})

	require.True(t, strings.HasPrefix(out, title))
	rest := strings.TrimPrefix(out, title)
	rest = strings.TrimPrefix(rest, "\n")
	if rest != "" {
		// Every included description word is intact.
		for _, word := range strings.Fields(rest) {
			assert.Equal(t, "boundary", word)
		}
	}
	assert.LessOrEqual(t, len([]rune(out)), composeTargetLength)
}

func TestBuildTextSkipsDescriptionWhenNoSpace(t *testing.T) {
	c := newTestComposer()

	title := strings.Repeat("t", 990)
	out := c.BuildText(ComposeInput{Title: title, Description: "should not appear"})

	assert.NotContains(t, out, "should not appear")
}

func TestBuildTextOCRLowestPriority(t *testing.T) {
	c := newTestComposer()

	// Description consumes the space; OCR no longer fits.
	out := c.BuildText(ComposeInput{
		Title:       "Title",
		Description: strings.Repeat("desc ", 300),
		OCRText:     "ocr-sentinel words",
	})
	assert.NotContains(t, out, "ocr-sentinel")

	// With a short description, OCR is included after it.
	out = c.BuildText(ComposeInput{
		Title:       "Title",
		Description: "short description",
		OCRText:     "ocr-sentinel words",
	})
	descIdx := strings.Index(out, "short description")
	ocrIdx := strings.Index(out, "ocr-sentinel")
	require.GreaterOrEqual(t, descIdx, 0)
	require.GreaterOrEqual(t, ocrIdx, 0)
	assert.Greater(t, ocrIdx, descIdx)
}

func TestProcessTags(t *testing.T) {
	c := newTestComposer()

	t.Run("dedupe and length filter", func(t *testing.T) {
		got := c.ProcessTags([]string{"Swift", "swift", "SWIFT", "a", "ios"})
		assert.Equal(t, []string{"swift", "ios"}, got)
	})

	t.Run("spam and year filter", func(t *testing.T) {
		year := 2026
		got := c.ProcessTags([]string{
			"cooking", "subscribe", "viral",
			strconv.Itoa(year - 1), strconv.Itoa(year), strconv.Itoa(year + 1),
			"sourdough",
		})
		assert.Equal(t, []string{"cooking", "sourdough"}, got)
	})

	t.Run("cap at maxTags", func(t *testing.T) {
		var tags []string
		for i := 0; i < 30; i++ {
			tags = append(tags, "tag"+strconv.Itoa(i))
		}
		got := c.ProcessTags(tags)
		assert.Len(t, got, maxTags)
		assert.Equal(t, "tag0", got[0])
	})

	t.Run("nil input", func(t *testing.T) {
		assert.Nil(t, c.ProcessTags(nil))
	})
}

func TestCleanDescription(t *testing.T) {
	t.Run("strips urls and collapses punctuation", func(t *testing.T) {
		got := CleanDescription("Check out https://example.com and www.site.org now!!!")
		assert.NotContains(t, got, "http://")
		assert.NotContains(t, got, "https://")
		assert.NotContains(t, got, "www.")
		assert.NotContains(t, got, "!!!")
		assert.Contains(t, got, "!")
	})

	t.Run("strips promotional phrases", func(t *testing.T) {
		got := CleanDescription("Great recipe inside. Don't forget to subscribe for more! Subscribe to my channel.")
		lower := strings.ToLower(got)
		assert.Contains(t, got, "Great recipe inside.")
		assert.NotContains(t, lower, "subscribe")
	})

	t.Run("keeps short punctuation runs", func(t *testing.T) {
		got := CleanDescription("Wait.. what?!")
		assert.Contains(t, got, "Wait..")
	})
}

func TestCleanTextWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", cleanText("  a\t\tb\n\nc  "))
}

func TestLimitEmoji(t *testing.T) {
	t.Run("per-run cap", func(t *testing.T) {
		got := limitEmoji("\U0001F600\U0001F600\U0001F600\U0001F600\U0001F600")
		assert.Equal(t, "\U0001F600\U0001F600\U0001F600", got)
	})

	t.Run("run counter resets on non-emoji", func(t *testing.T) {
		got := limitEmoji("\U0001F600\U0001F600 x \U0001F600\U0001F600")
		assert.Equal(t, "\U0001F600\U0001F600 x \U0001F600\U0001F600", got)
	})

	t.Run("total cap across runs", func(t *testing.T) {
		in := strings.Repeat("\U0001F600\U0001F600\U0001F600 x ", 4)
		got := limitEmoji(in)
		assert.Equal(t, 6, strings.Count(got, "\U0001F600"))
	})

	t.Run("plain text untouched", func(t *testing.T) {
		assert.Equal(t, "no emoji here", limitEmoji("no emoji here"))
	})
}

func TestTruncateAtWordBoundary(t *testing.T) {
	t.Run("short input unchanged", func(t *testing.T) {
		assert.Equal(t, "one two", truncateAtWordBoundary("one two", 100))
	})

	t.Run("cuts at whitespace", func(t *testing.T) {
		got := truncateAtWordBoundary("alpha beta gamma", 12)
		assert.Equal(t, "alpha beta", got)
	})

	t.Run("no boundary fits", func(t *testing.T) {
		assert.Empty(t, truncateAtWordBoundary("supercalifragilistic", 5))
	})

	t.Run("zero budget", func(t *testing.T) {
		assert.Empty(t, truncateAtWordBoundary("anything at all", 0))
	})
}
