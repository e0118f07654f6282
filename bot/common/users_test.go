package common

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

type fakeMembers map[string]*discordgo.Member

func (f fakeMembers) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	member, ok := f[userID]
	if !ok {
		return nil, errors.New("unknown member")
	}
	return member, nil
}

func TestGetDisplayName(t *testing.T) {
	members := fakeMembers{
		"1": {Nick: "Rex", User: &discordgo.User{ID: "1", Username: "rex_user", GlobalName: "Rexy"}},
		"2": {User: &discordgo.User{ID: "2", Username: "stego", GlobalName: "Stego Fan"}},
		"3": {User: &discordgo.User{ID: "3", Username: "raptor"}},
		"4": {},
	}

	tests := []struct {
		name     string
		guildID  string
		userID   string
		expected string
	}{
		{"nickname wins", "g", "1", "Rex"},
		{"global name before username", "g", "2", "Stego Fan"},
		{"username", "g", "3", "raptor"},
		{"empty member falls back", "g", "4", "User 4"},
		{"lookup failure falls back", "g", "99", "User 99"},
		{"no guild falls back", "", "1", "User 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetDisplayName(members, tt.guildID, tt.userID))
		})
	}
}

func TestInteractionIdentity(t *testing.T) {
	t.Run("guild interaction", func(t *testing.T) {
		i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			Member: &discordgo.Member{Nick: "Rex", User: &discordgo.User{ID: "1", Username: "rex"}},
		}}
		assert.Equal(t, "1", InteractionUserID(i))
		assert.Equal(t, "Rex", InteractionDisplayName(i))
	})

	t.Run("direct message interaction", func(t *testing.T) {
		i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			User: &discordgo.User{ID: "2", Username: "stego"},
		}}
		assert.Equal(t, "2", InteractionUserID(i))
		assert.Equal(t, "stego", InteractionDisplayName(i))
	})
}
