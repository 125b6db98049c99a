package bot

import (
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"whitelister/models"
	"whitelister/validator"

	"github.com/bwmarrin/discordgo"
)

// errInvalidCommand marks an expected shape failure in a recognized
// command. The router answers it with a uniform notice; any other
// error escaping a handler is logged as a fault and suppressed from
// the user.
var errInvalidCommand = errors.New("invalid command")

func (b *Bot) handleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Never answer the bot itself, other bots, or anything outside a
	// guild membership context.
	if m.Author == nil || m.Author.Bot || m.GuildID == "" || m.Member == nil {
		return
	}
	b.route(m, b.isAdministrator(s, m))
}

// route classifies an inbound message as an admin command, a public
// command or a whitelist submission and dispatches it. First match
// wins; gating failures on the submission path stay silent.
func (b *Bot) route(m *discordgo.MessageCreate, isAdmin bool) {
	defer func() {
		if r := recover(); r != nil {
			b.logFault(m, fmt.Errorf("panic: %v", r))
		}
	}()

	content := m.Content

	if isAdmin && strings.HasPrefix(content, commandPrefix) {
		if handler, ok := b.adminCommands[commandName(content)]; ok {
			log.Infof("Admin command (from %s): %s", m.Author.ID, content)
			b.dispatch(m, handler)
			return
		}
		// Unknown admin command: fall through to the public table so
		// admins can still use >help and >check.
	}

	if strings.HasPrefix(content, commandPrefix) {
		if handler, ok := b.publicCommands[commandName(content)]; ok {
			log.Infof("User command from %s: %s", m.Author.ID, content)
			b.dispatch(m, handler)
		} else {
			b.reply(m, fmt.Sprintf("Valid commands are: %s, use `>help` for more info.", b.publicCommandList()))
		}
		return
	}

	b.handleSubmission(m)
}

// dispatch runs a table handler and maps its outcome to user feedback.
func (b *Bot) dispatch(m *discordgo.MessageCreate, handler commandHandler) {
	err := handler(m)
	if err == nil {
		return
	}
	if errors.Is(err, errInvalidCommand) {
		b.reply(m, "Invalid command argument.")
		return
	}
	b.logFault(m, err)
}

// handleSubmission records a wallet address sent by an eligible member
// in the configured whitelist channel. Messages that fail the gating
// checks are ignored without a reply.
func (b *Bot) handleSubmission(m *discordgo.MessageCreate) {
	cfg := b.store.Get(m.GuildID)
	if cfg.WhitelistChannelID == "" || m.ChannelID != cfg.WhitelistChannelID {
		return
	}
	if cfg.WhitelistRoleID == "" || !hasRole(m.Member, cfg.WhitelistRoleID) {
		return
	}

	address := m.Content
	if !validator.Validate(cfg.Blockchain, address) {
		b.reply(m, fmt.Sprintf("The address `%s` is invalid.", address))
		return
	}

	if err := b.store.Mutate(m.GuildID, func(cfg *models.GuildConfig) {
		cfg.Wallets[m.Author.ID] = address
	}); err != nil {
		b.logPersistError(m.GuildID, err)
	}
	b.reply(m, fmt.Sprintf("Your wallet `%s` has been validated and recorded.", address))
}

func hasRole(member *discordgo.Member, roleID string) bool {
	for _, id := range member.Roles {
		if id == roleID {
			return true
		}
	}
	return false
}

// logFault records an unexpected failure with the full event context
// and suppresses it from the user.
func (b *Bot) logFault(m *discordgo.MessageCreate, err error) {
	log.WithFields(log.Fields{
		"guild_id":   m.GuildID,
		"channel_id": m.ChannelID,
		"author_id":  m.Author.ID,
		"content":    m.Content,
	}).Errorf("Unhandled error while routing message: %v", err)
}

// logPersistError records a snapshot write failure. The in-memory
// mutation already took effect, so the user still gets confirmation.
func (b *Bot) logPersistError(guildID string, err error) {
	log.WithField("guild_id", guildID).Errorf("Failed to persist guild data: %v", err)
}

func (b *Bot) reply(m *discordgo.MessageCreate, content string) {
	if _, err := b.sender.ChannelMessageSendReply(m.ChannelID, content, m.Reference()); err != nil {
		log.Errorf("Failed to send reply: %v", err)
	}
}

func (b *Bot) replyEmbed(m *discordgo.MessageCreate, embed *discordgo.MessageEmbed) {
	if _, err := b.sender.ChannelMessageSendEmbedReply(m.ChannelID, embed, m.Reference()); err != nil {
		log.Errorf("Failed to send reply: %v", err)
	}
}
