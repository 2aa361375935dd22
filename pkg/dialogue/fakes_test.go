package dialogue_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/animefmt/pkg/domain"
)

type fakeGateway struct {
	mu       sync.Mutex
	search   func(ctx context.Context, term string, page, perPage int) (*domain.SearchPage, error)
	media    func(ctx context.Context, id int) (*domain.MediaDetail, error)
	searches []string
	lookups  []int
}

func (g *fakeGateway) Search(ctx context.Context, term string, page, perPage int) (*domain.SearchPage, error) {
	g.mu.Lock()
	g.searches = append(g.searches, fmt.Sprintf("%s#%d/%d", term, page, perPage))
	fn := g.search
	g.mu.Unlock()
	if fn == nil {
		return nil, fmt.Errorf("%w: no search stub", domain.ErrUpstreamUnavailable)
	}
	return fn(ctx, term, page, perPage)
}

func (g *fakeGateway) Media(ctx context.Context, id int) (*domain.MediaDetail, error) {
	g.mu.Lock()
	g.lookups = append(g.lookups, id)
	fn := g.media
	g.mu.Unlock()
	if fn == nil {
		return nil, fmt.Errorf("%w: no media stub", domain.ErrUpstreamUnavailable)
	}
	return fn(ctx, id)
}

func (g *fakeGateway) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.searches) + len(g.lookups)
}

type sent struct {
	ChatID int64
	Msg    domain.Message
}

type photo struct {
	ChatID  int64
	URL     string
	Caption domain.Message
}

type edit struct {
	ChatID    int64
	MessageID int
	Msg       domain.Message
}

type fakeMessenger struct {
	mu       sync.Mutex
	sent     []sent
	photos   []photo
	edits    []edit
	photoErr error
}

func (m *fakeMessenger) Send(ctx context.Context, chatID int64, msg domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sent{chatID, msg})
	return nil
}

func (m *fakeMessenger) SendPhoto(ctx context.Context, chatID int64, url string, caption domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.photoErr != nil {
		return m.photoErr
	}
	m.photos = append(m.photos, photo{chatID, url, caption})
	return nil
}

func (m *fakeMessenger) Edit(ctx context.Context, chatID int64, messageID int, msg domain.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits = append(m.edits, edit{chatID, messageID, msg})
	return nil
}

func (m *fakeMessenger) lastSent() domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return domain.Message{}
	}
	return m.sent[len(m.sent)-1].Msg
}

func (m *fakeMessenger) lastEdit() domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.edits) == 0 {
		return domain.Message{}
	}
	return m.edits[len(m.edits)-1].Msg
}

type staticProbe bool

func (p staticProbe) Reachable(ctx context.Context, url string) bool { return bool(p) }

// pageOf builds a search page of n items numbered from first.
func pageOf(first, n, page, lastPage int) *domain.SearchPage {
	items := make([]domain.SearchResultItem, 0, n)
	for i := 0; i < n; i++ {
		id := first + i
		items = append(items, domain.SearchResultItem{
			ID:          id,
			TitleRomaji: fmt.Sprintf("Show %d", id),
			Format:      "TV",
		})
	}
	return &domain.SearchPage{
		Items: items,
		PageInfo: domain.PageInfo{
			Total:       lastPage * n,
			CurrentPage: page,
			LastPage:    lastPage,
			HasNextPage: page < lastPage,
		},
	}
}

func intPtr(v int) *int { return &v }
