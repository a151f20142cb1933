// Package bot is the showcase bot: a paginated demo catalog driven by the
// keyboard library, with per-chat duplicate suppression and persisted page
// positions.
package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"

	"keyboardkit/internal/config"
	"keyboardkit/internal/store"
	"keyboardkit/pkg/keyboard"
	"keyboardkit/pkg/logx"
)

// catalogPattern is the callback pattern for catalog pagination.
const catalogPattern = "catalog:page:{number}"

// catalogSource partitions duplicate detection and page state per chat:
// "catalog/<chat_id>".
func catalogSource(chatID int64) string {
	return "catalog/" + strconv.FormatInt(chatID, 10)
}

type Bot struct {
	tb    *tele.Bot
	log   logx.Logger
	store *store.Store
	guard *keyboard.Guard

	mu       sync.RWMutex
	pageSize int
	items    []string
	limiter  *rate.Limiter
	refresh  int
}

func New(cfg *config.Config, log logx.Logger, st *store.Store) (*Bot, error) {
	tb, err := tele.NewBot(tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("bot: %w", err)
	}

	b := &Bot{
		tb:       tb,
		log:      log,
		store:    st,
		guard:    keyboard.NewGuard(keyboard.WithCapacity(cfg.GuardCapacity), keyboard.WithGuardLogger(log)),
		pageSize: cfg.PageSize,
		items:    demoCatalog(137),
		limiter:  rate.NewLimiter(rate.Limit(cfg.EditRatePerSec), cfg.EditRatePerSec),
	}
	b.routes()
	return b, nil
}

// ApplyConfig picks up hot-reloadable settings.
func (b *Bot) ApplyConfig(cfg *config.Config) {
	b.mu.Lock()
	b.pageSize = cfg.PageSize
	b.limiter = rate.NewLimiter(rate.Limit(cfg.EditRatePerSec), cfg.EditRatePerSec)
	b.mu.Unlock()
	b.log.Info("bot config applied", logx.Int("page_size", cfg.PageSize))
}

// Refresh simulates the catalog feed advancing: the oldest item falls off and
// a new one arrives. The cron job calls it on the configured schedule.
func (b *Bot) Refresh() {
	b.mu.Lock()
	b.refresh++
	n := b.refresh
	if len(b.items) > 0 {
		next := fmt.Sprintf("Item %03d", len(b.items)+n)
		b.items = append(b.items[1:], next)
	}
	b.mu.Unlock()
	b.log.Info("catalog refreshed", logx.Int("generation", n))
}

// Start runs long polling until ctx is done.
func (b *Bot) Start(ctx context.Context) {
	go b.tb.Start()
	b.log.Info("bot started", logx.String("username", b.tb.Me.Username))
	<-ctx.Done()
	b.tb.Stop()
}

func (b *Bot) routes() {
	b.tb.Handle("/start", b.handleStart)
	b.tb.Handle("/lang", b.handleLang)
	b.tb.Handle("/stats", b.handleStats)
	b.tb.Handle(tele.OnCallback, b.handleCallback)
}

func (b *Bot) handleStart(c tele.Context) error {
	chatID := c.Chat().ID
	page := 1
	if b.store != nil {
		if p, ok, err := b.store.GetPage(context.Background(), chatID, "catalog"); err == nil && ok {
			page = p
		}
	}

	text, kb, err := b.renderCatalog(chatID, page)
	if err != nil {
		// A fresh /start may hit the guard if the chat already sits on this
		// page; a stored page can also go stale when the page size shrinks.
		// Either way, drop the chat's guard state and start over.
		b.guard.ClearSource(catalogSource(chatID))
		if !keyboard.IsUnchanged(err) {
			page = 1
		}
		text, kb, err = b.renderCatalog(chatID, page)
		if err != nil {
			return err
		}
	}
	return c.Send(text, kb.Markup())
}

func (b *Bot) handleCallback(c tele.Context) error {
	cb := c.Callback()
	if cb == nil {
		return nil
	}
	data := strings.TrimSpace(cb.Data)

	if locale, ok := localeFromCallback(data); ok {
		return c.Respond(&tele.CallbackResponse{Text: "Language set: " + locale})
	}

	page, ok := pageFromCallback(data)
	if !ok {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown action"})
	}

	chatID := c.Chat().ID
	text, kb, err := b.renderCatalog(chatID, page)
	if err != nil {
		if keyboard.IsUnchanged(err) {
			// Same page requested twice: answer the callback, skip the edit.
			return c.Respond(&tele.CallbackResponse{Text: "Already on this page"})
		}
		b.log.Warn("pagination failed", logx.Int("page", page), logx.Err(err))
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := b.editLimiter().Wait(ctx); err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Slow down"})
	}

	if err := c.Edit(text, kb.Markup()); err != nil {
		return err
	}
	if b.store != nil {
		if err := b.store.PutPage(context.Background(), chatID, "catalog", page); err != nil {
			b.log.Warn("persist page failed", logx.Err(err))
		}
	}
	return c.Respond(&tele.CallbackResponse{})
}

func (b *Bot) handleLang(c tele.Context) error {
	kb := keyboard.NewInline()
	if err := kb.Languages("lang:{locale}", []string{"en_US", "de_DE", "ru_RU", "uk_UA"}, 2); err != nil {
		return err
	}
	return c.Send("Pick a language:", kb.Markup())
}

func (b *Bot) handleStats(c tele.Context) error {
	st := b.guard.Stats()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Guard: %d fingerprints, capacity %d per source\n", st.Entries, st.Capacity)
	for source, n := range st.Sources {
		fmt.Fprintf(&sb, "  %s: %d\n", source, n)
	}
	return c.Send(sb.String())
}

// renderCatalog builds the page text and its keyboard, consulting the guard.
func (b *Bot) renderCatalog(chatID int64, page int) (string, *keyboard.InlineKeyboard, error) {
	b.mu.RLock()
	items, size := b.items, b.pageSize
	b.mu.RUnlock()

	total := totalPages(len(items), size)
	kb := keyboard.NewInline().WithGuard(b.guard)
	err := kb.Paginate(total, page, catalogPattern, keyboard.WithSource(catalogSource(chatID)))
	if err != nil {
		return "", nil, err
	}
	return renderPage(items, page, size), kb, nil
}

func (b *Bot) editLimiter() *rate.Limiter {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.limiter
}

// ---- pure helpers ----

// pageFromCallback parses "catalog:page:N".
func pageFromCallback(data string) (int, bool) {
	const prefix = "catalog:page:"
	if !strings.HasPrefix(data, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(data[len(prefix):])
	if err != nil {
		return 0, false
	}
	return n, true
}

// localeFromCallback parses "lang:CODE".
func localeFromCallback(data string) (string, bool) {
	const prefix = "lang:"
	if !strings.HasPrefix(data, prefix) {
		return "", false
	}
	code := data[len(prefix):]
	if code == "" {
		return "", false
	}
	return code, true
}

func totalPages(items, size int) int {
	if size < 1 {
		size = 1
	}
	pages := (items + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	return pages
}

func renderPage(items []string, page, size int) string {
	if size < 1 {
		size = 1
	}
	start := (page - 1) * size
	if start < 0 {
		start = 0
	}
	if start > len(items) {
		start = len(items)
	}
	end := min(start+size, len(items))

	var sb strings.Builder
	fmt.Fprintf(&sb, "Catalog · page %d/%d\n\n", page, totalPages(len(items), size))
	for i, item := range items[start:end] {
		fmt.Fprintf(&sb, "%d. %s\n", start+i+1, item)
	}
	return sb.String()
}

func demoCatalog(n int) []string {
	items := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		items = append(items, fmt.Sprintf("Item %03d", i))
	}
	return items
}
