package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages rendered before Chrome is restarted.
const DefaultMaxPages = 75

// instance is one Chrome process and the number of pages using it.
type instance struct {
	rb     *rod.Browser
	close  func() error
	active int
}

// browser hands out Chrome instances and replaces the current one every
// maxPages pages. Chrome's memory baseline grows with every page it renders
// and never returns to its initial level, even when pages are closed.
//
// A replaced instance stays alive until its last page is released, so
// concurrent fetches never lose their browser mid-load.
type browser struct {
	mu       sync.Mutex
	launch   func() (*instance, error)
	current  *instance
	retired  map[*instance]struct{}
	pages    int
	maxPages int
}

func launchBrowser(maxPages int) (*browser, error) {
	return newBrowser(maxPages, launchChrome)
}

func newBrowser(maxPages int, launch func() (*instance, error)) (*browser, error) {
	b := &browser{
		launch:   launch,
		retired:  make(map[*instance]struct{}),
		maxPages: maxPages,
	}
	inst, err := launch()
	if err != nil {
		return nil, err
	}
	b.current = inst
	return b, nil
}

// acquire returns the instance to open the next page in, restarting Chrome
// first when the page budget is spent. Every acquire must be paired with a
// release.
func (b *browser) acquire() (*instance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.current == nil {
		return nil, fmt.Errorf("browser is closed")
	}
	if b.maxPages > 0 && b.pages >= b.maxPages {
		b.restart()
	}
	b.pages++
	b.current.active++
	return b.current, nil
}

// release returns a page slot. A retired instance is closed with its last page.
func (b *browser) release(inst *instance) {
	b.mu.Lock()
	defer b.mu.Unlock()

	inst.active--
	if _, ok := b.retired[inst]; ok && inst.active == 0 {
		delete(b.retired, inst)
		_ = inst.close()
	}
}

func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	if b.current != nil {
		err = b.current.close()
		b.current = nil
	}
	for inst := range b.retired {
		_ = inst.close()
		delete(b.retired, inst)
	}
	return err
}

// restart swaps in a fresh instance. The old one keeps serving if the
// launch fails. Must be called with mu held.
func (b *browser) restart() {
	b.pages = 0
	next, err := b.launch()
	if err != nil {
		return
	}
	old := b.current
	b.current = next
	if old.active == 0 {
		_ = old.close()
		return
	}
	b.retired[old] = struct{}{}
}

func launchChrome() (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	rb := rod.New().ControlURL(u)
	if err := rb.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &instance{
		rb: rb,
		close: func() error {
			err := rb.Close()
			l.Kill()
			return err
		},
	}, nil
}
