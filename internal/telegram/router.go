package telegram

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/mdnaeem95/musollah-sub007/internal/praytime"
	"github.com/mdnaeem95/musollah-sub007/internal/scheduler"
	"github.com/mdnaeem95/musollah-sub007/internal/store"
)

// Pending state keys used in conversational flows.
const (
	pendingOffset = "await_offset_text"
	pendingSound  = "await_sound_text"
)

// Rescheduler re-runs the notification scheduler after a settings
// change. force bypasses the coverage gate so the window is always
// rebuilt.
type Rescheduler interface {
	Reschedule(ctx context.Context, force bool)
}

// Router wires Telegram updates to handlers and holds minimal in-memory
// conversational state.
type Router struct {
	bot      *tgbotapi.BotAPI
	log      *zap.Logger
	settings *store.SettingsRepo
	resolver scheduler.Resolver
	resched  Rescheduler
	coords   praytime.Coordinates
	loc      *time.Location

	// chatID restricts the bot to its owner's chat; 0 serves any chat.
	chatID int64

	state map[int64]string // chatID -> pending state
	mu    sync.RWMutex
}

func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, settings *store.SettingsRepo, resolver scheduler.Resolver, resched Rescheduler, coords praytime.Coordinates, loc *time.Location, chatID int64) *Router {
	return &Router{
		bot:      bot,
		log:      log,
		settings: settings,
		resolver: resolver,
		resched:  resched,
		coords:   coords,
		loc:      loc,
		chatID:   chatID,
		state:    make(map[int64]string),
	}
}

func (r *Router) now() time.Time {
	return time.Now().In(r.loc)
}

// setPending sets a pending state for a chat (non-persistent, in-memory).
func (r *Router) setPending(chatID int64, s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state[chatID] = s
}

// getPending returns current pending state for a chat.
func (r *Router) getPending(chatID int64) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state[chatID]
}

// clearPending clears a pending state for a chat.
func (r *Router) clearPending(chatID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.state, chatID)
}

// HandleUpdate routes one Telegram update.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	chatID := upd.Message.Chat.ID
	if r.chatID != 0 && chatID != r.chatID {
		r.log.Debug("ignoring message from foreign chat", zap.Int64("chatID", chatID))
		return
	}

	text := strings.TrimSpace(upd.Message.Text)
	if text == "" {
		return
	}

	if !strings.HasPrefix(text, "/") {
		r.handlePendingText(ctx, chatID, text)
		return
	}
	r.clearPending(chatID)

	cmd, arg := splitCommand(text)
	switch cmd {
	case "/start", "/help":
		r.handleStart(chatID)
	case "/status":
		r.handleStatus(ctx, chatID)
	case "/today":
		r.handleToday(ctx, chatID)
	case "/mute":
		r.handleMute(ctx, chatID, arg, true)
	case "/unmute":
		r.handleMute(ctx, chatID, arg, false)
	case "/offset":
		r.handleOffset(ctx, chatID, arg)
	case "/sound":
		r.handleSound(ctx, chatID, arg)
	default:
		r.sendText(chatID, unknownText)
	}
}

// splitCommand separates "/cmd arg rest" into "/cmd" and "arg rest",
// stripping a "@botname" suffix from the command.
func splitCommand(text string) (cmd, arg string) {
	cmd, arg, _ = strings.Cut(text, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.ToLower(cmd), strings.TrimSpace(arg)
}
