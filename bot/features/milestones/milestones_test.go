package milestones

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"milestonebot/bot/common"
	"milestonebot/domain/entities"
	"milestonebot/domain/testhelpers"
	"milestonebot/repository/testutil"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*discordgo.MessageSend
	err  error
}

func (f *fakeSender) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, data)
	return &discordgo.Message{ChannelID: channelID}, nil
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func milestoneOptions(species, tier, sheetURL string) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	return common.OptionMap([]*discordgo.ApplicationCommandInteractionDataOption{
		stringOpt(common.OptionSpecies, species),
		stringOpt(common.OptionTier, tier),
		stringOpt(common.OptionSheetURL, sheetURL),
	})
}

func newTestFeature(ledger *testhelpers.MockLedgerService, sender *fakeSender) *Feature {
	return &Feature{
		sender:    sender,
		ledger:    ledger,
		catalog:   entities.DefaultCatalog(),
		channelID: "log-channel",
		now:       func() time.Time { return testutil.FixedTime },
	}
}

func restError(status int) error {
	return &discordgo.RESTError{Response: &http.Response{StatusCode: status}}
}

func TestBuildAnnouncementEmbed(t *testing.T) {
	entry := testutil.CreateTestEntry("42", "Stegosaurus", entities.TierGold)
	catalog := entities.DefaultCatalog()

	embed := BuildAnnouncementEmbed(entry, "Rex", catalog)

	assert.Equal(t, "Rex earned a Gold milestone!", embed.Title)
	assert.Equal(t, catalog.TierColor(entities.TierGold), embed.Color)
	require.NotNil(t, embed.Image)
	assert.Equal(t, catalog.TierImage(entities.TierGold), embed.Image.URL)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "Species", embed.Fields[0].Name)
	assert.Equal(t, "Stegosaurus", embed.Fields[0].Value)
	assert.Equal(t, "Gold", embed.Fields[1].Value)
	assert.Equal(t, "Character Sheet URL", embed.Fields[2].Name)
	assert.Equal(t, entry.SheetURL, embed.Fields[2].Value)
	assert.Equal(t, "2025-06-15T12:00:00Z", embed.Timestamp)
}

func TestAutocompleteChoices(t *testing.T) {
	choices := AutocompleteChoices(entities.DefaultCatalog(), "saurus")

	require.NotEmpty(t, choices)
	assert.LessOrEqual(t, len(choices), entities.MaxAutocompleteChoices)
	names := make([]string, 0, len(choices))
	for _, c := range choices {
		assert.Equal(t, c.Name, c.Value)
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "Tyrannosaurus")
	assert.Contains(t, names, "Allosaurus")
}

func TestFeature_Submit(t *testing.T) {
	entry := testutil.CreateTestEntry("42", "Stegosaurus", entities.TierGold)

	t.Run("records and announces", func(t *testing.T) {
		ledger := new(testhelpers.MockLedgerService)
		sender := &fakeSender{}
		f := newTestFeature(ledger, sender)

		ledger.On("SubmitMilestone", mock.Anything, "42", "Rex", "Stegosaurus", entities.TierGold, "https://sheet", testutil.FixedTime).
			Return(entry, nil)

		reply, err := f.submit(t.Context(), "42", "Rex", milestoneOptions("Stegosaurus", "Gold", "https://sheet"))

		require.NoError(t, err)
		assert.Equal(t, "✅ Milestone logged and announced!", reply)
		require.Len(t, sender.sent, 1)
		assert.Equal(t, "Rex earned a Gold milestone!", sender.sent[0].Embeds[0].Title)
		ledger.AssertExpectations(t)
	})

	t.Run("store failure is surfaced and nothing is announced", func(t *testing.T) {
		ledger := new(testhelpers.MockLedgerService)
		sender := &fakeSender{}
		f := newTestFeature(ledger, sender)

		storeErr := entities.NewStoreError("append", entities.EntriesTable, errors.New("quota exceeded"))
		ledger.On("SubmitMilestone", mock.Anything, "42", "Rex", "Stegosaurus", entities.TierGold, "https://sheet", testutil.FixedTime).
			Return(nil, storeErr)

		_, err := f.submit(t.Context(), "42", "Rex", milestoneOptions("Stegosaurus", "Gold", "https://sheet"))

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrStoreUnavailable)
		assert.Empty(t, sender.sent)
	})

	t.Run("missing channel warns but keeps the entry", func(t *testing.T) {
		ledger := new(testhelpers.MockLedgerService)
		sender := &fakeSender{err: restError(http.StatusNotFound)}
		f := newTestFeature(ledger, sender)

		ledger.On("SubmitMilestone", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(entry, nil)

		reply, err := f.submit(t.Context(), "42", "Rex", milestoneOptions("Stegosaurus", "Gold", "https://sheet"))

		require.NoError(t, err)
		assert.Contains(t, reply, "LOG_CHANNEL_ID")
		ledger.AssertNumberOfCalls(t, "SubmitMilestone", 1)
	})

	t.Run("unconfigured channel warns", func(t *testing.T) {
		ledger := new(testhelpers.MockLedgerService)
		f := newTestFeature(ledger, &fakeSender{})
		f.channelID = ""

		ledger.On("SubmitMilestone", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(entry, nil)

		reply, err := f.submit(t.Context(), "42", "Rex", milestoneOptions("Stegosaurus", "Gold", "https://sheet"))

		require.NoError(t, err)
		assert.Contains(t, reply, "LOG_CHANNEL_ID")
	})

	t.Run("transport failure while announcing", func(t *testing.T) {
		ledger := new(testhelpers.MockLedgerService)
		f := newTestFeature(ledger, &fakeSender{err: errors.New("connection reset")})

		ledger.On("SubmitMilestone", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(entry, nil)

		reply, err := f.submit(t.Context(), "42", "Rex", milestoneOptions("Stegosaurus", "Gold", "https://sheet"))

		require.NoError(t, err)
		assert.Equal(t, "⚠️ Milestone logged, but the announcement could not be posted.", reply)
	})

	t.Run("unknown tier is rejected before the ledger", func(t *testing.T) {
		ledger := new(testhelpers.MockLedgerService)
		f := newTestFeature(ledger, &fakeSender{})

		_, err := f.submit(t.Context(), "42", "Rex", milestoneOptions("Stegosaurus", "Platinum", "https://sheet"))

		var botErr *common.BotError
		require.ErrorAs(t, err, &botErr)
		assert.Contains(t, botErr.UserMessage, "Platinum")
		ledger.AssertNotCalled(t, "SubmitMilestone")
	})
}

func TestFeature_Remove(t *testing.T) {
	t.Run("confirms removal", func(t *testing.T) {
		ledger := new(testhelpers.MockLedgerService)
		f := newTestFeature(ledger, &fakeSender{})

		removed := testutil.CreateTestEntry("42", "Allosaurus", entities.TierSilver)
		ledger.On("RemoveLatestMilestone", mock.Anything, "42", "Allosaurus", entities.TierSilver).Return(removed, nil)

		reply, err := f.remove(t.Context(), "42", milestoneOptions("Allosaurus", "Silver", ""))

		require.NoError(t, err)
		assert.Equal(t, "✅ Removed your milestone entry for Allosaurus (Silver).", reply)
	})

	t.Run("no match", func(t *testing.T) {
		ledger := new(testhelpers.MockLedgerService)
		f := newTestFeature(ledger, &fakeSender{})

		notFound := fmt.Errorf("%w for 42 (Allosaurus)", entities.ErrMilestoneNotFound)
		ledger.On("RemoveLatestMilestone", mock.Anything, "42", "Allosaurus", entities.TierSilver).Return(nil, notFound)

		_, err := f.remove(t.Context(), "42", milestoneOptions("Allosaurus", "Silver", ""))

		require.Error(t, err)
		assert.Equal(t, "No matching milestone found for Allosaurus (Silver).", common.UserMessageFor(err))
	})

	t.Run("store failure", func(t *testing.T) {
		ledger := new(testhelpers.MockLedgerService)
		f := newTestFeature(ledger, &fakeSender{})

		storeErr := entities.NewStoreError("delete_row", entities.EntriesTable, errors.New("503"))
		ledger.On("RemoveLatestMilestone", mock.Anything, "42", "Allosaurus", entities.TierSilver).Return(nil, storeErr)

		_, err := f.remove(t.Context(), "42", milestoneOptions("Allosaurus", "Silver", ""))

		assert.ErrorIs(t, err, entities.ErrStoreUnavailable)
		assert.Contains(t, common.UserMessageFor(err), "ledger is unavailable")
	})
}

func TestAnnounce_ChannelErrors(t *testing.T) {
	embed := &discordgo.MessageEmbed{Title: "x"}

	tests := []struct {
		name        string
		err         error
		unavailable bool
	}{
		{"not found", restError(http.StatusNotFound), true},
		{"forbidden", restError(http.StatusForbidden), true},
		{"server error", restError(http.StatusBadGateway), false},
		{"transport", errors.New("dial tcp: timeout"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := announce(&fakeSender{err: tt.err}, "log-channel", embed)

			require.Error(t, err)
			assert.Equal(t, tt.unavailable, errors.Is(err, entities.ErrChannelUnavailable))
		})
	}
}
