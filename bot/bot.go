package bot

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"whitelister/store"

	"github.com/bwmarrin/discordgo"
)

// messenger is the slice of the Discord session the router and
// handlers use to answer messages.
type messenger interface {
	ChannelMessageSendReply(channelID string, content string, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbedReply(channelID string, embed *discordgo.MessageEmbed, reference *discordgo.MessageReference, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Config holds bot configuration
type Config struct {
	Token string
}

type Bot struct {
	config  Config
	session *discordgo.Session
	sender  messenger
	store   *store.Store

	adminCommands  map[string]commandHandler
	publicCommands map[string]commandHandler
}

func New(config Config, st *store.Store) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	// Prefix commands require the message content intent.
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	bot := &Bot{
		config:  config,
		session: dg,
		sender:  dg,
		store:   st,
	}
	bot.registerCommands()

	dg.AddHandler(bot.handleReady)
	dg.AddHandler(bot.handleGuildCreate)
	dg.AddHandler(bot.handleMessageCreate)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Infof("Logged in as %s (%s)", r.User.Username, r.User.ID)
}

// handleGuildCreate fires once per guild when the gateway connects and
// again whenever the bot joins a new guild, so it doubles as the
// startup reconciliation pass.
func (b *Bot) handleGuildCreate(s *discordgo.Session, g *discordgo.GuildCreate) {
	b.store.Get(g.ID)
	log.WithFields(log.Fields{
		"guild_id":   g.ID,
		"guild_name": g.Name,
	}).Info("Guild registered")
}

// isAdministrator resolves the author's effective permissions in the
// message's channel. Resolution failures count as not an
// administrator; the message then falls through to public handling.
func (b *Bot) isAdministrator(s *discordgo.Session, m *discordgo.MessageCreate) bool {
	perms, err := s.State.MessagePermissions(m.Message)
	if err != nil {
		log.WithFields(log.Fields{
			"guild_id":  m.GuildID,
			"author_id": m.Author.ID,
		}).Warnf("Failed to resolve member permissions: %v", err)
		return false
	}
	return perms&discordgo.PermissionAdministrator != 0
}
