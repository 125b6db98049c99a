package bot

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"sort"

	"whitelister/models"
	"whitelister/validator"

	"github.com/bwmarrin/discordgo"
)

// Shape patterns for the argument-taking admin commands, anchored over
// the whole message.
var (
	channelPattern    = regexp.MustCompile(`^>channel <#(\d+)>$`)
	rolePattern       = regexp.MustCompile(`^>role <@&(\d+)>$`)
	blockchainPattern = regexp.MustCompile(`^>blockchain (\w{3})$`)
)

// handleSetChannel sets the channel whitelist submissions are accepted
// on. The message must contain exactly one channel reference.
func (b *Bot) handleSetChannel(m *discordgo.MessageCreate) error {
	match := channelPattern.FindStringSubmatch(m.Content)
	if match == nil {
		return errInvalidCommand
	}
	channelID := match[1]

	if err := b.store.Mutate(m.GuildID, func(cfg *models.GuildConfig) {
		cfg.WhitelistChannelID = channelID
	}); err != nil {
		b.logPersistError(m.GuildID, err)
	}
	b.reply(m, fmt.Sprintf("Successfully set whitelist channel to <#%s>", channelID))
	return nil
}

// handleSetRole sets the role a member must hold to submit a wallet.
// The message must mention exactly one role.
func (b *Bot) handleSetRole(m *discordgo.MessageCreate) error {
	match := rolePattern.FindStringSubmatch(m.Content)
	if len(m.MentionRoles) != 1 || match == nil {
		return errInvalidCommand
	}
	roleID := match[1]

	if err := b.store.Mutate(m.GuildID, func(cfg *models.GuildConfig) {
		cfg.WhitelistRoleID = roleID
	}); err != nil {
		b.logPersistError(m.GuildID, err)
	}
	b.reply(m, fmt.Sprintf("Successfully set whitelist role to <@&%s>", roleID))
	return nil
}

// handleSetBlockchain sets the blockchain used for validating
// submitted wallet addresses.
func (b *Bot) handleSetBlockchain(m *discordgo.MessageCreate) error {
	match := blockchainPattern.FindStringSubmatch(m.Content)
	if match == nil || !validator.Supported(match[1]) {
		return errInvalidCommand
	}
	code := match[1]

	if err := b.store.Mutate(m.GuildID, func(cfg *models.GuildConfig) {
		cfg.Blockchain = code
	}); err != nil {
		b.logPersistError(m.GuildID, err)
	}
	b.reply(m, fmt.Sprintf("Successfully set blockchain to %s", code))
	return nil
}

// handleGetConfig replies with the guild's current whitelist
// configuration.
func (b *Bot) handleGetConfig(m *discordgo.MessageCreate) error {
	cfg := b.store.Get(m.GuildID)
	b.replyEmbed(m, configEmbed(cfg))
	return nil
}

// handleGetData exports the guild's recorded wallets as a CSV
// attachment. The export is staged in memory only, so nothing is left
// behind once the attachment is sent.
func (b *Bot) handleGetData(m *discordgo.MessageCreate) error {
	cfg := b.store.Get(m.GuildID)

	memberIDs := make([]string, 0, len(cfg.Wallets))
	for memberID := range cfg.Wallets {
		memberIDs = append(memberIDs, memberID)
	}
	sort.Strings(memberIDs)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"userId", "walletAddress"})
	for _, memberID := range memberIDs {
		w.Write([]string{memberID, cfg.Wallets[memberID]})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to build export: %w", err)
	}

	_, err := b.sender.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Content: "Data for server is attached.",
		Files: []*discordgo.File{{
			Name:        m.GuildID + ".csv",
			ContentType: "text/csv",
			Reader:      &buf,
		}},
		Reference: m.Reference(),
	})
	if err != nil {
		return fmt.Errorf("failed to send export: %w", err)
	}
	return nil
}

// handleClear resets the guild's configuration and recorded wallets to
// the default empty state.
func (b *Bot) handleClear(m *discordgo.MessageCreate) error {
	if err := b.store.Mutate(m.GuildID, func(cfg *models.GuildConfig) {
		cfg.Reset()
	}); err != nil {
		b.logPersistError(m.GuildID, err)
	}
	b.reply(m, "Server's data and config has been cleared.")
	return nil
}

// handleCheck tells the caller whether their own wallet is recorded.
func (b *Bot) handleCheck(m *discordgo.MessageCreate) error {
	cfg := b.store.Get(m.GuildID)
	if address, ok := cfg.Wallets[m.Author.ID]; ok {
		b.reply(m, fmt.Sprintf("You are whitelisted! Address: `%s`", address))
	} else {
		b.reply(m, "Your wallet is not yet on the whitelist. Use `>help` for more info!")
	}
	return nil
}

func (b *Bot) handleHelp(m *discordgo.MessageCreate) error {
	b.replyEmbed(m, helpEmbed())
	return nil
}

func (b *Bot) handleHelpAdmin(m *discordgo.MessageCreate) error {
	b.replyEmbed(m, adminHelpEmbed())
	return nil
}
