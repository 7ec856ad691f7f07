package sharedtypes

// GuildID is the tenant key. Every record in the data layer is scoped by it.
type GuildID string

func (id GuildID) String() string { return string(id) }

// DiscordID identifies a user or moderator.
type DiscordID string

func (id DiscordID) String() string { return string(id) }

// RoleID identifies a guild role.
type RoleID string

func (id RoleID) String() string { return string(id) }

// ChannelID identifies a guild channel.
type ChannelID string

func (id ChannelID) String() string { return string(id) }
