// Package callback encodes and decodes the opaque tokens carried by inline
// keyboard buttons.
//
// Wire forms:
//
//	select_<itemID>
//	page_<ownerID>_<page>
//	current_page
//
// Telegram caps callback data at 64 bytes; every form stays well below it.
package callback

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/animefmt/pkg/domain"
)

const (
	selectPrefix = "select_"
	pagePrefix   = "page_"
	noopToken    = "current_page"

	// MaxTokenBytes is the Telegram limit on callback data.
	MaxTokenBytes = 64
)

// Action is a decoded button token. Its concrete type is one of Select,
// ChangePage or Noop.
type Action interface {
	isAction()
}

// Select asks for the details of one catalog entry.
type Select struct {
	ItemID int
}

// ChangePage asks for another page of the owner's listing.
type ChangePage struct {
	Owner int64
	Page  int
}

// Noop is the inert page indicator button.
type Noop struct{}

func (Select) isAction()     {}
func (ChangePage) isAction() {}
func (Noop) isAction()       {}

// Encode returns the wire form of a.
func Encode(a Action) string {
	switch v := a.(type) {
	case Select:
		return selectPrefix + strconv.Itoa(v.ItemID)
	case ChangePage:
		return pagePrefix + strconv.FormatInt(v.Owner, 10) + "_" + strconv.Itoa(v.Page)
	case Noop:
		return noopToken
	default:
		panic(fmt.Sprintf("callback: unknown action %T", a))
	}
}

// Decode parses a wire token. Unknown or malformed tokens yield an error
// wrapping domain.ErrMalformedToken.
func Decode(token string) (Action, error) {
	switch {
	case token == noopToken:
		return Noop{}, nil

	case strings.HasPrefix(token, selectPrefix):
		id, err := parseID(strings.TrimPrefix(token, selectPrefix))
		if err != nil {
			return nil, malformed(token, err)
		}
		return Select{ItemID: id}, nil

	case strings.HasPrefix(token, pagePrefix):
		owner, page, ok := strings.Cut(strings.TrimPrefix(token, pagePrefix), "_")
		if !ok {
			return nil, malformed(token, fmt.Errorf("missing page number"))
		}
		ownerID, err := strconv.ParseInt(owner, 10, 64)
		if err != nil {
			return nil, malformed(token, err)
		}
		n, err := parseID(page)
		if err != nil {
			return nil, malformed(token, err)
		}
		return ChangePage{Owner: ownerID, Page: n}, nil
	}

	return nil, malformed(token, fmt.Errorf("unknown prefix"))
}

// parseID accepts positive decimal integers only.
func parseID(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("value %d out of range", n)
	}
	return n, nil
}

func malformed(token string, cause error) error {
	return fmt.Errorf("%w: %q: %v", domain.ErrMalformedToken, token, cause)
}
