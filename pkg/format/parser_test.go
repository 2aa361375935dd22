package format

import (
	"strings"
	"testing"

	"github.com/aretw0/animefmt/pkg/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoBlock = `Demo Show

‣ Genres : Action, Sci-Fi
‣ Type : TV
‣ Average Rating : 82
‣ Status : FINISHED
‣ First aired : 2024-4-13
‣ Last aired : 2024-6-29
‣ Runtime : 24 minutes
‣ No of episodes : 12

‣ Synopsis : A hero rises. (Source: Test)`

var demoRecord = domain.FieldRecord{
	Title:      "Demo Show",
	Genres:     "Action, Sci-Fi",
	Type:       "TV",
	Rating:     "82",
	Status:     "FINISHED",
	FirstAired: "2024-4-13",
	LastAired:  "2024-6-29",
	Runtime:    "24 minutes",
	Episodes:   "12",
	Synopsis:   "A hero rises. (Source: Test)",
}

var blockLines = []string{
	"‣ Genres : Action, Sci-Fi",
	"‣ Type : TV",
	"‣ Average Rating : 82",
	"‣ Status : FINISHED",
	"‣ First aired : 2024-4-13",
	"‣ Last aired : 2024-6-29",
	"‣ Runtime : 24 minutes",
	"‣ No of episodes : 12",
}

func buildBlock(lines []string) string {
	return "Demo Show\n\n" + strings.Join(lines, "\n") + "\n\n‣ Synopsis : A hero rises."
}

func TestParse_DemoBlock(t *testing.T) {
	got, ok := Parse(demoBlock)
	require.True(t, ok)
	if diff := cmp.Diff(demoRecord, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_TitleIsOneLine(t *testing.T) {
	_, ok := Parse("Demo Show\nSecond Title Line\n" + strings.TrimPrefix(demoBlock, "Demo Show\n"))
	assert.False(t, ok)

	record, ok := Parse("Demo Show | デモ\n" + strings.TrimPrefix(demoBlock, "Demo Show\n"))
	require.True(t, ok)
	assert.Equal(t, "Demo Show | デモ", record.Title)
}

func TestParse_ExampleBlock(t *testing.T) {
	record, ok := Parse(ExampleBlock)
	require.True(t, ok)
	assert.Equal(t, "Anime Title | Alternative Title", record.Title)
	assert.Equal(t, "12", record.Episodes)
	assert.Equal(t, "Your anime synopsis here...\n\n(Source: Some Source)", record.Synopsis)
}

func TestParse_MarkerAndCaseTolerance(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bullet marker", strings.ReplaceAll(demoBlock, "‣", "•")},
		{"arrow marker", strings.ReplaceAll(demoBlock, "‣", "➤")},
		{"upper case labels", strings.NewReplacer("Genres", "GENRES", "Average Rating", "AVERAGE RATING", "No of episodes", "NO OF EPISODES").Replace(demoBlock)},
		{"lower case labels", strings.NewReplacer("Synopsis", "synopsis", "First aired", "first aired").Replace(demoBlock)},
		{"tight spacing", strings.ReplaceAll(strings.ReplaceAll(demoBlock, "‣ ", "‣"), " : ", ":")},
		{"loose spacing", strings.ReplaceAll(strings.ReplaceAll(demoBlock, " : ", "   :   "), "\n", "  \n")},
		{"crlf line endings", strings.ReplaceAll(demoBlock, "\n", "\r\n")},
		{"surrounding whitespace", "\n\n   " + demoBlock + "\n\n   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			require.True(t, ok, "expected block to match")
			assert.Equal(t, "Demo Show", got.Title)
			assert.Equal(t, "Action, Sci-Fi", got.Genres)
			assert.Equal(t, "12", got.Episodes)
			assert.Equal(t, "24 minutes", strings.ToLower(got.Runtime))

			// Every field is trimmed.
			for _, v := range []string{got.Title, got.Genres, got.Type, got.Rating, got.Status,
				got.FirstAired, got.LastAired, got.Runtime, got.Episodes, got.Synopsis} {
				assert.Equal(t, strings.TrimSpace(v), v)
				assert.NotEmpty(t, v)
			}
		})
	}
}

func TestParse_RejectsReorderedLabels(t *testing.T) {
	for i := 0; i < len(blockLines)-1; i++ {
		swapped := append([]string(nil), blockLines...)
		swapped[i], swapped[i+1] = swapped[i+1], swapped[i]

		_, ok := Parse(buildBlock(swapped))
		assert.False(t, ok, "swap of lines %d and %d should not match", i, i+1)
	}

	reversed := make([]string, len(blockLines))
	for i, l := range blockLines {
		reversed[len(blockLines)-1-i] = l
	}
	_, ok := Parse(buildBlock(reversed))
	assert.False(t, ok)
}

func TestParse_RejectsMissingLabels(t *testing.T) {
	for i := range blockLines {
		missing := append(append([]string(nil), blockLines[:i]...), blockLines[i+1:]...)
		_, ok := Parse(buildBlock(missing))
		assert.False(t, ok, "block without %q should not match", blockLines[i])
	}

	_, ok := Parse(strings.Replace(demoBlock, "‣ Synopsis : A hero rises. (Source: Test)", "", 1))
	assert.False(t, ok, "block without synopsis should not match")
}

func TestParse_NotMatched(t *testing.T) {
	for _, input := range []string{"", "   ", "frieren", "Demo Show\n‣ Genres : Action", "‣ Genres : Action"} {
		_, ok := Parse(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestParse_EmptyValuesAndMultilineSynopsis(t *testing.T) {
	input := strings.Replace(demoBlock, "‣ Genres : Action, Sci-Fi", "‣ Genres :", 1)
	input = strings.Replace(input, "A hero rises. (Source: Test)", "Line one.\n\nLine two.", 1)

	got, ok := Parse(input)
	require.True(t, ok)
	assert.Equal(t, "", got.Genres)
	assert.Equal(t, "Line one.\n\nLine two.", got.Synopsis)

	got, ok = Parse(strings.Replace(demoBlock, "A hero rises. (Source: Test)", "", 1))
	require.True(t, ok)
	assert.Equal(t, "", got.Synopsis)
}

func TestHasStructuredCue(t *testing.T) {
	assert.True(t, HasStructuredCue(demoBlock))
	assert.True(t, HasStructuredCue("• genres: x"))
	assert.True(t, HasStructuredCue("junk ‣Genres :"))
	assert.False(t, HasStructuredCue("Genres: Action"))
	assert.False(t, HasStructuredCue("one piece"))
}
