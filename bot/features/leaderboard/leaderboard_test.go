package leaderboard

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"milestonebot/application/dto"
	"milestonebot/bot/common"
	"milestonebot/domain/entities"
	"milestonebot/repository/testutil"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDiscord struct {
	mu       sync.Mutex
	members  map[string]*discordgo.Member
	channels map[string]*discordgo.Channel
	sent     []*discordgo.MessageSend
	sendErr  error

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeDiscord) GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		peak := f.maxInFlight.Load()
		if n <= peak || f.maxInFlight.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond)

	member, ok := f.members[userID]
	if !ok {
		return nil, errors.New("unknown member")
	}
	return member, nil
}

func (f *fakeDiscord) Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	ch, ok := f.channels[channelID]
	if !ok {
		return nil, errors.New("unknown channel")
	}
	return ch, nil
}

func (f *fakeDiscord) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, data)
	return &discordgo.Message{ChannelID: channelID}, nil
}

func newTestFeature(d *fakeDiscord) *Feature {
	return &Feature{
		members:  d,
		sender:   d,
		channels: d,
		images:   NewImageGenerator(entities.DefaultCatalog()),
		size:     5,
		now:      func() time.Time { return testutil.FixedTime },
	}
}

var samplePlayers = []entities.PlayerSummary{
	{DiscordID: "2", Total: 30, Bronze: 10, Silver: 10, Gold: 5, Diamond: 5},
	{DiscordID: "3", Total: 30, Bronze: 30},
	{DiscordID: "1", Total: 10, Gold: 10},
	{DiscordID: "4", Total: 5, Diamond: 5},
}

func TestBuildLeaderboardEmbed(t *testing.T) {
	names := []string{"Bea", "Cy", "", "Dee"}

	embed := BuildLeaderboardEmbed(Title(5), samplePlayers, names, testutil.FixedTime, true)

	assert.Equal(t, "🏆 Leaderboard: Top 5 Players", embed.Title)
	assert.Equal(t, common.ColorLedger, embed.Color)
	require.Len(t, embed.Fields, 4)
	assert.Equal(t, "1. Bea", embed.Fields[0].Name)
	assert.Equal(t, "Milestones: 30\n- Bronze: 10\n- Silver: 10\n- Gold: 5\n- Diamond: 5", embed.Fields[0].Value)
	assert.Equal(t, "3. User 1", embed.Fields[2].Name)
	require.NotNil(t, embed.Image)
	assert.Equal(t, "attachment://leaderboard.png", embed.Image.URL)
}

func TestBuildLeaderboardEmbed_Empty(t *testing.T) {
	embed := BuildLeaderboardEmbed(DailyTitle(5), nil, nil, testutil.FixedTime, false)

	assert.Empty(t, embed.Fields)
	assert.Equal(t, "No milestones logged yet.", embed.Description)
	assert.Nil(t, embed.Image)
}

func TestResolveNames(t *testing.T) {
	d := &fakeDiscord{members: map[string]*discordgo.Member{
		"2": {Nick: "Bea", User: &discordgo.User{ID: "2", Username: "bea"}},
		"3": {User: &discordgo.User{ID: "3", Username: "cy"}},
	}}

	names := ResolveNames(t.Context(), d, "guild", samplePlayers)

	assert.Equal(t, []string{"Bea", "cy", "User 1", "User 4"}, names)
}

func TestResolveNames_BoundedConcurrency(t *testing.T) {
	d := &fakeDiscord{members: map[string]*discordgo.Member{}}
	players := make([]entities.PlayerSummary, 20)
	for i := range players {
		players[i] = entities.PlayerSummary{DiscordID: string(rune('a' + i))}
	}

	names := ResolveNames(t.Context(), d, "guild", players)

	require.Len(t, names, 20)
	assert.LessOrEqual(t, int(d.maxInFlight.Load()), maxConcurrentLookups)
}

func TestImageGenerator_Generate(t *testing.T) {
	g := NewImageGenerator(entities.DefaultCatalog())

	t.Run("renders one row per player", func(t *testing.T) {
		data, err := g.Generate(samplePlayers, []string{"Bea", "A very long display name", "", "Dee"})
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 430, img.Bounds().Dx())
		assert.Equal(t, 25+30+len(samplePlayers)*26+15, img.Bounds().Dy())
	})

	t.Run("empty leaderboard keeps minimum height", func(t *testing.T) {
		data, err := g.Generate(nil, nil)
		require.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 120, img.Bounds().Dy())
	})
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short", truncateName("short"))
	assert.Equal(t, "ÄÄÄÄÄÄÄÄÄÄÄÄÄÄ…", truncateName("ÄÄÄÄÄÄÄÄÄÄÄÄÄÄÄÄÄÄ"))
}

func TestPostLeaderboard(t *testing.T) {
	t.Run("posts embed and image to the channel", func(t *testing.T) {
		d := &fakeDiscord{
			members:  map[string]*discordgo.Member{"2": {Nick: "Bea"}},
			channels: map[string]*discordgo.Channel{"log-channel": {ID: "log-channel", GuildID: "guild"}},
		}
		f := newTestFeature(d)

		err := f.PostLeaderboard(t.Context(), dto.LeaderboardPostDTO{
			ChannelID:   "log-channel",
			Players:     samplePlayers[:2],
			GeneratedAt: testutil.FixedTime,
		})

		require.NoError(t, err)
		require.Len(t, d.sent, 1)
		msg := d.sent[0]
		require.Len(t, msg.Embeds, 1)
		assert.Equal(t, "🏆 Daily Leaderboard: Top 5 Players", msg.Embeds[0].Title)
		assert.Equal(t, "1. Bea", msg.Embeds[0].Fields[0].Name)
		assert.Equal(t, "2. User 3", msg.Embeds[0].Fields[1].Name)
		require.Len(t, msg.Files, 1)
		assert.Equal(t, common.LeaderboardImageName, msg.Files[0].Name)
		data, err := io.ReadAll(msg.Files[0].Reader)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})

	t.Run("unknown channel", func(t *testing.T) {
		f := newTestFeature(&fakeDiscord{channels: map[string]*discordgo.Channel{}})

		err := f.PostLeaderboard(t.Context(), dto.LeaderboardPostDTO{ChannelID: "missing"})

		assert.ErrorIs(t, err, entities.ErrChannelUnavailable)
	})

	t.Run("unconfigured channel", func(t *testing.T) {
		f := newTestFeature(&fakeDiscord{})

		err := f.PostLeaderboard(t.Context(), dto.LeaderboardPostDTO{})

		assert.ErrorIs(t, err, entities.ErrChannelUnavailable)
	})

	t.Run("send failure", func(t *testing.T) {
		d := &fakeDiscord{
			channels: map[string]*discordgo.Channel{"log-channel": {ID: "log-channel", GuildID: "guild"}},
			sendErr:  errors.New("rate limited"),
		}
		f := newTestFeature(d)

		err := f.PostLeaderboard(t.Context(), dto.LeaderboardPostDTO{ChannelID: "log-channel", Players: samplePlayers})

		require.Error(t, err)
		assert.NotErrorIs(t, err, entities.ErrChannelUnavailable)
		assert.Contains(t, err.Error(), "rate limited")
	})
}
