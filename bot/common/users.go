package common

import (
	"github.com/bwmarrin/discordgo"
)

// MemberLookup is the part of the Discord session used to resolve guild members
type MemberLookup interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
}

// MemberDisplayName returns the server nickname, then the global name, then the username
func MemberDisplayName(member *discordgo.Member) string {
	if member == nil {
		return ""
	}
	if member.Nick != "" {
		return member.Nick
	}
	return UserDisplayName(member.User)
}

// UserDisplayName returns the global display name, falling back to the username
func UserDisplayName(user *discordgo.User) string {
	if user == nil {
		return ""
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

// FallbackName is shown for players whose member record cannot be fetched
func FallbackName(userID string) string {
	return "User " + userID
}

// GetDisplayName returns the server-specific display name for a user,
// or "User <id>" when the member lookup fails
func GetDisplayName(s MemberLookup, guildID, userID string) string {
	if guildID != "" {
		member, err := s.GuildMember(guildID, userID)
		if err == nil && member != nil {
			if name := MemberDisplayName(member); name != "" {
				return name
			}
		}
	}
	return FallbackName(userID)
}

// InteractionUser returns the invoking user for guild and DM interactions
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// InteractionUserID returns the invoking user's ID, or "" when absent
func InteractionUserID(i *discordgo.InteractionCreate) string {
	if user := InteractionUser(i); user != nil {
		return user.ID
	}
	return ""
}

// InteractionDisplayName returns the invoking user's label in the current guild
func InteractionDisplayName(i *discordgo.InteractionCreate) string {
	if i.Member != nil {
		if name := MemberDisplayName(i.Member); name != "" {
			return name
		}
	}
	if name := UserDisplayName(i.User); name != "" {
		return name
	}
	return FallbackName(InteractionUserID(i))
}

// ChannelSender is the part of the Discord session used to post to channels
type ChannelSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}
