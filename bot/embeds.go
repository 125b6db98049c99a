package bot

import (
	"fmt"
	"strings"

	"whitelister/models"
	"whitelister/validator"

	"github.com/bwmarrin/discordgo"
)

func configEmbed(cfg *models.GuildConfig) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "Server Config",
		Description: fmt.Sprintf("Whitelist Channel: %s\nWhitelist Role: %s\nBlockchain: %s",
			formatChannel(cfg.WhitelistChannelID),
			formatRole(cfg.WhitelistRoleID),
			formatBlockchain(cfg.Blockchain)),
	}
}

func formatChannel(channelID string) string {
	if channelID == "" {
		return "not set"
	}
	return "<#" + channelID + ">"
}

func formatRole(roleID string) string {
	if roleID == "" {
		return "not set"
	}
	return "<@&" + roleID + ">"
}

func formatBlockchain(code string) string {
	if code == "" {
		return "not set"
	}
	return code
}

func helpEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Whitelist Manager Help",
		Description: "Whitelist Manager is a bot designed to assist in gathering wallet addresses for NFT drops.",
		Fields: []*discordgo.MessageEmbedField{{
			Name: "COMMANDS",
			Value: "`>check`: will tell you whether or not your wallet has been recorded in the whitelist\n" +
				"`>help`: This screen\n" +
				"`>help.admin`: Provides a help screen to assist in configuring the bot (admin only).\n\n" +
				"How to use: Send your wallet address to the whitelist chat to record it!\n" +
				"The message should contain just the wallet address (no `>`).",
		}},
	}
}

func adminHelpEmbed() *discordgo.MessageEmbed {
	chains := strings.Join(validator.Chains(), "/")
	return &discordgo.MessageEmbed{
		Title: "Whitelist Manager Help (Admin)",
		Description: "Whitelist Manager is a bot designed to assist you in gathering wallet addresses for NFT drops.\n" +
			"After configuring the bot, users who are 'whitelisted' will be able to record their crypto addresses which you can then download as a CSV.\n" +
			"Note, the `config` must be filled out before the bot will work.",
		Fields: []*discordgo.MessageEmbedField{{
			Name: "COMMANDS",
			Value: "`>channel #channelName`: Sets the channel to listen for wallet addresses on.\n" +
				"`>role @roleName`: Sets the role a user must possess to be able to add their address to the whitelist.\n" +
				fmt.Sprintf("`>blockchain %s`: Select which blockchain this NFT drop will occur on, this allows for validation of the addresses that are added.\n", chains) +
				"`>config`: View the current server config.\n" +
				"`>data`: Get discordID:walletAddress pairs in a CSV format.\n" +
				"`>clear`: Clear the config and data for this server.\n" +
				"`>help.admin`: This screen.\n" +
				"`>help`: How to use help screen.",
		}},
	}
}
