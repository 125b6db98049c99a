package bot

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"whitelister/models"

	"github.com/bwmarrin/discordgo"
)

func TestHandleGetData_CSVExport(t *testing.T) {
	b, sender := newTestBot(t)
	b.store.Mutate("g1", func(cfg *models.GuildConfig) {
		cfg.Wallets["20"] = "0xdef"
		cfg.Wallets["10"] = "0xabc"
	})

	var exported string
	var fileName string
	sender.On("ChannelMessageSendComplex", mock.Anything, mock.Anything).Return(nil, nil).Run(func(args mock.Arguments) {
		send := args.Get(1).(*discordgo.MessageSend)
		require.Len(t, send.Files, 1)
		fileName = send.Files[0].Name
		body, err := io.ReadAll(send.Files[0].Reader)
		require.NoError(t, err)
		exported = string(body)
	})

	b.route(guildMessage("g1", "c1", "admin", ">data"), true)

	assert.Equal(t, "g1.csv", fileName)
	assert.Equal(t, "userId,walletAddress\n10,0xabc\n20,0xdef\n", exported)
}

func TestHandleGetData_EmptyGuild(t *testing.T) {
	b, sender := newTestBot(t)

	var exported string
	sender.On("ChannelMessageSendComplex", mock.Anything, mock.Anything).Return(nil, nil).Run(func(args mock.Arguments) {
		send := args.Get(1).(*discordgo.MessageSend)
		body, err := io.ReadAll(send.Files[0].Reader)
		require.NoError(t, err)
		exported = string(body)
	})

	b.route(guildMessage("g1", "c1", "admin", ">data"), true)

	assert.Equal(t, "userId,walletAddress\n", exported)
}

// Full flow: an admin configures the guild, an eligible member records
// an address, and the export contains exactly that one row.
func TestEndToEndScenario(t *testing.T) {
	b, sender := newTestBot(t)
	expectReply(sender)

	b.route(guildMessage("g1", "c1", "admin", ">channel <#10>"), true)
	roleMsg := guildMessage("g1", "c1", "admin", ">role <@&20>")
	roleMsg.MentionRoles = []string{"20"}
	b.route(roleMsg, true)
	b.route(guildMessage("g1", "c1", "admin", ">blockchain eth"), true)

	address := "0x" + strings.Repeat("1a", 20)
	b.route(guildMessage("g1", "10", "member", address, "20"), false)
	sender.AssertCalled(t, "ChannelMessageSendReply", "10",
		"Your wallet `"+address+"` has been validated and recorded.", mock.Anything)

	var exported string
	sender.On("ChannelMessageSendComplex", mock.Anything, mock.Anything).Return(nil, nil).Run(func(args mock.Arguments) {
		send := args.Get(1).(*discordgo.MessageSend)
		body, err := io.ReadAll(send.Files[0].Reader)
		require.NoError(t, err)
		exported = string(body)
	})
	b.route(guildMessage("g1", "c1", "admin", ">data"), true)

	assert.Equal(t, "userId,walletAddress\nmember,"+address+"\n", exported)
}
