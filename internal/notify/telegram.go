package notify

import (
	"fmt"
	"strings"
	"time"

	"gh-talent-scout/internal/models"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Telegram pushes newly surfaced candidates to a recruiter chat.
type Telegram struct {
	bot    *tele.Bot
	chatID int64
	logger *zap.Logger
}

func NewTelegram(token string, chatID int64, logger *zap.Logger) (*Telegram, error) {
	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &Telegram{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}, nil
}

// NotifyNewCandidates sends a summary followed by one message per
// candidate. A failed candidate message is logged and skipped, not fatal.
func (t *Telegram) NotifyNewCandidates(searchName string, candidates []models.Candidate) error {
	if len(candidates) == 0 {
		return nil
	}

	recipient := &tele.Chat{ID: t.chatID}

	summary := fmt.Sprintf("🔔 *New candidates for %s*\n\nFound: %d", searchName, len(candidates))
	if _, err := t.bot.Send(recipient, summary, tele.ModeMarkdown); err != nil {
		return fmt.Errorf("send summary: %w", err)
	}

	for i := range candidates {
		message := formatCandidate(&candidates[i])

		if _, err := t.bot.Send(recipient, message, tele.ModeMarkdown); err != nil {
			t.logger.Error("failed to send candidate notification",
				zap.String("username", candidates[i].Username),
				zap.Error(err),
			)
			continue
		}

		if i < len(candidates)-1 {
			time.Sleep(500 * time.Millisecond)
		}
	}

	return nil
}

func formatCandidate(c *models.Candidate) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s*", c.Username)
	if c.Name != "" {
		fmt.Fprintf(&b, " (%s)", c.Name)
	}
	b.WriteString("\n")

	if c.Location != "" {
		fmt.Fprintf(&b, "📍 %s\n", c.Location)
	}

	fmt.Fprintf(&b, "👥 %d followers · %d repos\n", c.Followers, c.PublicRepos)

	if len(c.DetectedSkills) > 0 {
		skills := c.DetectedSkills
		if len(skills) > 6 {
			skills = skills[:6]
		}
		fmt.Fprintf(&b, "🛠 %s\n", strings.Join(skills, ", "))
	}

	if c.ProfileURL != "" {
		b.WriteString(c.ProfileURL)
	}

	return b.String()
}
