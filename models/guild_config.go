package models

// GuildConfig holds the whitelist configuration and collected wallet
// addresses for a single guild.
type GuildConfig struct {
	// WhitelistChannelID is the only channel wallet submissions are
	// accepted on. Empty means not configured yet.
	WhitelistChannelID string `yaml:"whitelist_channel,omitempty"`

	// WhitelistRoleID is the role a member must hold for their
	// submission to be accepted. Empty means not configured yet.
	WhitelistRoleID string `yaml:"whitelist_role,omitempty"`

	// Blockchain selects the address validator, e.g. "eth" or "sol".
	// Empty means not configured yet.
	Blockchain string `yaml:"blockchain,omitempty"`

	// Wallets maps a member's Discord ID to their recorded wallet
	// address. One entry per member; resubmitting overwrites.
	Wallets map[string]string `yaml:"wallets"`
}

// NewGuildConfig returns a GuildConfig in its default empty state.
func NewGuildConfig() *GuildConfig {
	return &GuildConfig{
		Wallets: make(map[string]string),
	}
}

// Clone returns a deep copy of the config.
func (c *GuildConfig) Clone() *GuildConfig {
	clone := *c
	clone.Wallets = make(map[string]string, len(c.Wallets))
	for memberID, address := range c.Wallets {
		clone.Wallets[memberID] = address
	}
	return &clone
}

// Reset returns the config to its default empty state, discarding all
// configuration and recorded wallets.
func (c *GuildConfig) Reset() {
	*c = *NewGuildConfig()
}
