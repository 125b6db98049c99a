package bot

import (
	"sort"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// commandPrefix is the sigil marking a message as a command rather
// than plain content.
const commandPrefix = ">"

// commandHandler runs a single command against the message that
// triggered it. It returns errInvalidCommand for an expected shape
// failure; any other error is treated as a fault by the router.
type commandHandler func(m *discordgo.MessageCreate) error

// registerCommands builds the fixed admin and public command tables.
func (b *Bot) registerCommands() {
	b.adminCommands = map[string]commandHandler{
		"channel":    b.handleSetChannel,
		"role":       b.handleSetRole,
		"blockchain": b.handleSetBlockchain,
		"data":       b.handleGetData,
		"config":     b.handleGetConfig,
		"clear":      b.handleClear,
		"help.admin": b.handleHelpAdmin,
	}
	b.publicCommands = map[string]commandHandler{
		"help":  b.handleHelp,
		"check": b.handleCheck,
	}
}

// publicCommandList renders the public command names for the
// unknown-command reply, e.g. "`check`, `help`".
func (b *Bot) publicCommandList() string {
	names := make([]string, 0, len(b.publicCommands))
	for name := range b.publicCommands {
		names = append(names, "`"+name+"`")
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// commandName extracts the first whitespace-delimited token of the
// message, minus the sigil.
func commandName(content string) string {
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimPrefix(fields[0], commandPrefix)
}
