package dialogue

import (
	"fmt"

	"github.com/aretw0/animefmt/pkg/format"
)

// User-facing texts. Changing them changes what channel admins see.
const (
	msgQueryTooShort      = "❌ Please enter at least 3 characters to search."
	msgNoResults          = "❌ No anime found with that name."
	msgSearchFailed       = "❌ Error searching for anime. Please try again."
	msgNotYourSession     = "❌ This search session is not yours."
	msgCallbackFailed     = "❌ Error processing your request."
	msgDetailsUnavailable = "❌ Couldn't load anime details."
	msgFormatted          = "✅ Anime formatted successfully!"
	msgSessionExpired     = "❌ Search session expired. Please search again."
	msgPageEmpty          = "❌ No results found for this page."

	msgInvalidFormat = `❌ <b>Invalid Format</b>

Please use the correct format. Send /start to see the example format.

Make sure your message includes:
• Anime title
• All required fields (‣ Genres, ‣ Type, etc.)
• Synopsis section
• Proper line breaks between sections

Or simply send an anime title to search!`

	msgGenericError = `❌ <b>Error occurred</b>

Something went wrong while processing your message. Please try again with the correct format.

Use /start to see the example.`

	helpTemplate = `🎌 <b>Anime Formatter Bot</b> 🎌

Send anime information in this exact format:

<pre>` + format.ExampleBlock + `</pre>

Or simply send an anime title to search from AniList database!

The bot will format it with:
• Bold headings with special characters
• Truncated synopsis (max 5 lines)
• Standard quality and audio options
• Clean, professional layout
• Cover photos from AniList

%s`

	// Pagination controls.
	labelPrevious = "⬅️ Previous"
	labelNext     = "Next ➡️"
	labelPage     = "Page %d/%d"
)

func resultsHeader(count int, query string) string {
	return fmt.Sprintf("🎞 Found %d results for '%s':\n\nSelect an anime:", count, query)
}

func pageHeader(query string) string {
	return fmt.Sprintf("🎞 Found results for '%s':\n\nSelect an anime:", query)
}
