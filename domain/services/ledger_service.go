package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"milestonebot/domain/entities"
	"milestonebot/domain/events"
	"milestonebot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// ledgerService implements the LedgerService interface on top of a LedgerStore
type ledgerService struct {
	store     interfaces.LedgerStore
	publisher interfaces.EventPublisher
	locks     *keyLocker
}

// NewLedgerService creates a new ledger service. The store is shared by every
// caller for the lifetime of the process; publisher may be nil.
func NewLedgerService(store interfaces.LedgerStore, publisher interfaces.EventPublisher) interfaces.LedgerService {
	return &ledgerService{
		store:     store,
		publisher: publisher,
		locks:     newKeyLocker(),
	}
}

// SubmitMilestone appends a new entry to the Entries table.
// Species and tier are written as given; the catalog is not consulted.
func (s *ledgerService) SubmitMilestone(ctx context.Context, discordID, displayName, species string, tier entities.Tier, sheetURL string, now time.Time) (*entities.Entry, error) {
	entry := entities.NewEntry(discordID, displayName, species, tier, sheetURL, now)

	unlock := s.locks.Lock(milestoneKey(discordID, species, tier))
	defer unlock()

	if err := s.store.AppendRow(ctx, entities.EntriesTable, entry.Values()); err != nil {
		return nil, entities.NewStoreError("append", entities.EntriesTable, err)
	}

	log.WithFields(log.Fields{
		"discord_id": discordID,
		"species":    species,
		"tier":       tier,
	}).Info("Milestone recorded")

	s.publish(events.MilestoneSubmittedEvent{
		DiscordID:   entry.DiscordID,
		DiscordName: entry.DiscordName,
		Species:     entry.Species,
		Tier:        string(entry.Tier),
		SheetURL:    entry.SheetURL,
		SubmittedAt: entry.Timestamp,
	})

	return entry, nil
}

// RemoveLatestMilestone deletes the matching row with the largest position.
// The position is resolved from a fresh read immediately before the delete.
func (s *ledgerService) RemoveLatestMilestone(ctx context.Context, discordID, species string, tier entities.Tier) (*entities.Entry, error) {
	unlock := s.locks.Lock(milestoneKey(discordID, species, tier))
	defer unlock()

	table, err := s.store.ReadAll(ctx, entities.EntriesTable)
	if err != nil {
		return nil, entities.NewStoreError("read_all", entities.EntriesTable, err)
	}

	var target *entities.Row
	for i := range table.Rows {
		row := &table.Rows[i]
		if !entities.RowMatches(*row, discordID, species, tier) {
			continue
		}
		if target == nil || row.Index > target.Index {
			target = row
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w for %s (%s)", entities.ErrMilestoneNotFound, species, tier)
	}

	removed, err := entities.EntryFromRow(*target)
	if err != nil {
		// the row is still deleted; only the confirmation loses its timestamp
		log.WithError(err).WithField("row_index", target.Index).Warn("Removing entry with unreadable timestamp")
		removed = &entities.Entry{
			DiscordID:   target.Get("DiscordID"),
			DiscordName: target.Get("DiscordName"),
			Species:     species,
			Tier:        tier,
			SheetURL:    target.Get("SheetURL"),
		}
	}

	if err := s.store.DeleteRow(ctx, entities.EntriesTable, target.Index); err != nil {
		return nil, entities.NewStoreError("delete_row", entities.EntriesTable, err)
	}

	log.WithFields(log.Fields{
		"discord_id": discordID,
		"species":    species,
		"tier":       tier,
		"row_index":  target.Index,
	}).Info("Milestone removed")

	s.publish(events.MilestoneRemovedEvent{
		DiscordID:   discordID,
		Species:     species,
		Tier:        string(tier),
		SubmittedAt: removed.Timestamp,
		RowIndex:    target.Index,
	})

	return removed, nil
}

// LeaderboardTopN ranks PlayerTotals by Total descending. Ties keep their row order.
func (s *ledgerService) LeaderboardTopN(ctx context.Context, n int) ([]entities.PlayerSummary, error) {
	if n <= 0 {
		return []entities.PlayerSummary{}, nil
	}

	table, err := s.store.ReadAll(ctx, entities.PlayerTotalsTable)
	if err != nil {
		return nil, entities.NewStoreError("read_all", entities.PlayerTotalsTable, err)
	}

	summaries := make([]entities.PlayerSummary, 0, table.Len())
	for _, row := range table.Rows {
		summary, invalid := entities.PlayerSummaryFromRow(row)
		if len(invalid) > 0 {
			log.WithFields(log.Fields{
				"row_index": row.Index,
				"columns":   invalid,
			}).Warn("Non-numeric PlayerTotals cells counted as zero")
		}
		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Total > summaries[j].Total
	})

	if len(summaries) > n {
		summaries = summaries[:n]
	}
	return summaries, nil
}

// PersonalStats counts a user's entries per species and tier
func (s *ledgerService) PersonalStats(ctx context.Context, discordID string) (entities.PersonalStats, error) {
	table, err := s.store.ReadAll(ctx, entities.EntriesTable)
	if err != nil {
		return nil, entities.NewStoreError("read_all", entities.EntriesTable, err)
	}

	stats := make(entities.PersonalStats)
	for _, row := range table.Rows {
		if row.Get("DiscordID") != discordID {
			continue
		}
		tier := entities.Tier(row.Get("Tier"))
		if !tier.IsValid() {
			log.WithFields(log.Fields{
				"row_index": row.Index,
				"tier":      tier,
			}).Warn("Skipping entry with unknown tier")
			continue
		}

		species := row.Get("Species")
		counts, ok := stats[species]
		if !ok {
			counts = entities.NewTierCounts()
			stats[species] = counts
		}
		counts[tier]++
	}

	return stats, nil
}

func (s *ledgerService) publish(event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(event); err != nil {
		log.WithError(err).WithField("event_type", event.Type()).Warn("Failed to publish ledger event")
	}
}
