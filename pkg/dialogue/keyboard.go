package dialogue

import (
	"fmt"
	"unicode/utf8"

	"github.com/aretw0/animefmt/pkg/callback"
	"github.com/aretw0/animefmt/pkg/domain"
)

const (
	maxLabelChars = 50
	labelTail     = "..."
	unknownFormat = "Unknown"
)

// resultKeyboard builds one button per item plus a pagination row:
// Previous (only past page 1), the inert page indicator, Next (only when
// info says there is one).
func resultKeyboard(items []domain.SearchResultItem, owner int64, page int, info domain.PageInfo) domain.Keyboard {
	kb := make(domain.Keyboard, 0, len(items)+1)
	for _, item := range items {
		kb = append(kb, []domain.Button{{
			Label: itemLabel(item),
			Token: callback.Encode(callback.Select{ItemID: item.ID}),
		}})
	}

	lastPage := info.LastPage
	if lastPage < page {
		lastPage = page
	}

	var nav []domain.Button
	if page > 1 {
		nav = append(nav, domain.Button{
			Label: labelPrevious,
			Token: callback.Encode(callback.ChangePage{Owner: owner, Page: page - 1}),
		})
	}
	nav = append(nav, domain.Button{
		Label: fmt.Sprintf(labelPage, page, lastPage),
		Token: callback.Encode(callback.Noop{}),
	})
	if info.HasNextPage {
		nav = append(nav, domain.Button{
			Label: labelNext,
			Token: callback.Encode(callback.ChangePage{Owner: owner, Page: page + 1}),
		})
	}
	return append(kb, nav)
}

// itemLabel renders "{title} ({format})", cut to 50 characters with a trailing "...".
func itemLabel(item domain.SearchResultItem) string {
	format := item.Format
	if format == "" {
		format = unknownFormat
	}
	label := fmt.Sprintf("%s (%s)", item.DisplayTitle(), format)
	if utf8.RuneCountInString(label) > maxLabelChars {
		runes := []rune(label)
		label = string(runes[:maxLabelChars-utf8.RuneCountInString(labelTail)]) + labelTail
	}
	return label
}
