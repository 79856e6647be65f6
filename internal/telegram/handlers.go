package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/mdnaeem95/musollah-sub007/internal/domain"
)

// --- Generic helpers ---

func (r *Router) sendText(chatID int64, text string) {
	_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, text))
}

// --- Core commands ---

func (r *Router) handleStart(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, startText)
	msg.ReplyMarkup = mainMenuKeyboard()
	_, _ = r.bot.Send(msg)
}

func (r *Router) handleStatus(ctx context.Context, chatID int64) {
	s, err := r.settings.Get(ctx)
	if err != nil {
		r.log.Error("reading settings failed", zap.Error(err))
		r.sendText(chatID, "Error reading your settings.")
		return
	}

	muted := "—"
	if names := s.MutedSet().Names(); len(names) > 0 {
		var parts []string
		for _, p := range names {
			parts = append(parts, string(p))
		}
		muted = strings.Join(parts, ", ")
	}
	sound := s.Sound
	if sound == "" {
		sound = "silent"
	}

	body := fmt.Sprintf("%s\n\n"+statusFmt,
		statusTitle,
		s.ReminderOffsetMin,
		muted,
		sound,
	)
	msg := tgbotapi.NewMessage(chatID, body)
	msg.ReplyMarkup = mainMenuKeyboard()
	_, _ = r.bot.Send(msg)
}

func (r *Router) handleToday(ctx context.Context, chatID int64) {
	today := domain.DateOf(r.now())
	times, err := r.resolver.Resolve(ctx, today, r.coords)
	if err != nil {
		r.log.Error("resolving today failed", zap.Error(err))
		r.sendText(chatID, "Prayer times are unavailable right now.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🕌 Prayer times for %s\n\n", today)
	for _, p := range domain.PrayerOrder {
		fmt.Fprintf(&b, "• %s — %s\n", p, times.Times[p])
	}
	r.sendText(chatID, b.String())
}

// --- Settings commands ---

func (r *Router) handleMute(ctx context.Context, chatID int64, arg string, mute bool) {
	if arg == "" {
		r.sendText(chatID, mutePromptText)
		return
	}
	p, err := domain.ParsePrayer(arg)
	if err != nil {
		r.sendText(chatID, fmt.Sprintf("I don't know the prayer %q. Try e.g. /mute Sunrise.", arg))
		return
	}

	s, err := r.settings.Get(ctx)
	if err != nil {
		r.log.Error("reading settings failed", zap.Error(err))
		r.sendText(chatID, "Error reading your settings.")
		return
	}
	if mute {
		s = s.WithMuted(p)
	} else {
		s = s.WithUnmuted(p)
	}
	if !r.saveAndReschedule(ctx, chatID, s) {
		return
	}

	if mute {
		r.sendText(chatID, fmt.Sprintf("🔇 %s notifications muted.", p))
	} else {
		r.sendText(chatID, fmt.Sprintf("🔔 %s notifications back on.", p))
	}
}

func (r *Router) handleOffset(ctx context.Context, chatID int64, arg string) {
	if arg == "" {
		r.setPending(chatID, pendingOffset)
		r.sendText(chatID, offsetPromptText)
		return
	}
	r.applyOffset(ctx, chatID, arg)
}

func (r *Router) applyOffset(ctx context.Context, chatID int64, arg string) {
	minutes, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(arg), "m"))
	if err != nil {
		r.sendText(chatID, "Please send a number of minutes, e.g. 15.")
		return
	}

	s, err := r.settings.Get(ctx)
	if err != nil {
		r.log.Error("reading settings failed", zap.Error(err))
		r.sendText(chatID, "Error reading your settings.")
		return
	}
	s.ReminderOffsetMin = minutes
	if err := s.Validate(); err != nil {
		r.sendText(chatID, "Offset must be between 0 and 120 minutes.")
		return
	}
	if !r.saveAndReschedule(ctx, chatID, s) {
		return
	}

	if minutes == 0 {
		r.sendText(chatID, "⏰ Reminders disabled; you'll only get the prayer-time notification.")
	} else {
		r.sendText(chatID, fmt.Sprintf("⏰ You'll be reminded %d minutes before each prayer.", minutes))
	}
}

func (r *Router) handleSound(ctx context.Context, chatID int64, arg string) {
	if arg == "" {
		r.setPending(chatID, pendingSound)
		r.sendText(chatID, soundPromptText)
		return
	}
	r.applySound(ctx, chatID, arg)
}

func (r *Router) applySound(ctx context.Context, chatID int64, arg string) {
	s, err := r.settings.Get(ctx)
	if err != nil {
		r.log.Error("reading settings failed", zap.Error(err))
		r.sendText(chatID, "Error reading your settings.")
		return
	}
	if strings.EqualFold(arg, "silent") || strings.EqualFold(arg, "off") {
		s.Sound = ""
	} else {
		s.Sound = arg
	}
	if !r.saveAndReschedule(ctx, chatID, s) {
		return
	}

	if s.Sound == "" {
		r.sendText(chatID, "🔕 Notifications will arrive silently.")
	} else {
		r.sendText(chatID, fmt.Sprintf("🎵 Alert sound set to %q.", s.Sound))
	}
}

// handlePendingText feeds free text into whichever flow is awaiting it.
func (r *Router) handlePendingText(ctx context.Context, chatID int64, text string) {
	switch r.getPending(chatID) {
	case pendingOffset:
		r.clearPending(chatID)
		r.applyOffset(ctx, chatID, text)
	case pendingSound:
		r.clearPending(chatID)
		r.applySound(ctx, chatID, text)
	default:
		// Free text outside a flow: show the menu.
		r.handleStart(chatID)
	}
}

// saveAndReschedule persists settings and forces a full reschedule so
// the new configuration applies to the whole window. Returns false when
// nothing was saved.
func (r *Router) saveAndReschedule(ctx context.Context, chatID int64, s domain.Settings) bool {
	if err := r.settings.Save(ctx, s); err != nil {
		r.log.Error("saving settings failed", zap.Error(err))
		r.sendText(chatID, "Could not save your settings, please try again.")
		return false
	}
	r.resched.Reschedule(ctx, true)
	return true
}
