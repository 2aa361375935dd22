/*
Package animefmt turns anime metadata into the fixed, stylized HTML card posted
to a Telegram channel.

Metadata arrives either as a hand-typed structured block or from the AniList
catalog. Both paths build a FieldRecord first and go through one renderer, so
the card template lives in a single place.

# Layout

  - pkg/format: structured-block parser, synopsis compactor, card renderer.
  - pkg/dialogue: the chat state machine (search, paged selection, formatting).
  - pkg/callback: the button token wire format.
  - pkg/ports: interfaces for the catalog, the session store and the messenger.
  - pkg/adapters: AniList, Redis cache, in-memory sessions, Telegram, HTTP and MCP.

# Usage

Render a block without any network access:

	record, ok := format.Parse(text)
	if !ok {
		return errors.New("not a structured block")
	}
	card := format.NewRenderer().Render(record, "")
	fmt.Println(card.Text)

Run the bot with `animefmt bot` (see cmd/animefmt).
*/
package animefmt
