package sync

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jinjinsansan/kanjou/internal/clean"
	"github.com/jinjinsansan/kanjou/internal/localstore"
	"github.com/jinjinsansan/kanjou/internal/remote"
	"github.com/jinjinsansan/kanjou/internal/schema"
)

// syncer implements the Service interface.
type syncer struct {
	local  *localstore.Store
	remote *remote.Store // nil when running offline
	norm   *schema.Normalizer
	logger *log.Logger
}

// New creates a Service over the two tiers. A nil remote store puts the
// service in offline mode: writes report ErrRemoteUnavailable, reads
// short-circuit to zero-effect successes.
//
// If logger is nil, a default logger writing to stderr is used.
func New(local *localstore.Store, rs *remote.Store, logger *log.Logger) Service {
	if logger == nil {
		logger = log.New(os.Stderr, "[sync] ", log.LstdFlags)
	}
	return &syncer{
		local:  local,
		remote: rs,
		norm:   schema.NewNormalizer(logger),
		logger: logger,
	}
}

// PushDiaries implements Service.PushDiaries.
func (s *syncer) PushDiaries(ctx context.Context) (int, error) {
	if s.remote == nil {
		return 0, ErrRemoteUnavailable
	}

	entries := s.local.LoadEntries()
	if len(entries) == 0 {
		return 0, nil
	}

	username := s.local.Username()
	if username == "" {
		return 0, fmt.Errorf("no local username set, cannot resolve owner")
	}

	user, err := s.remote.EnsureUser(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve user: %w", err)
	}

	records := s.norm.NormalizeAll(entries, user.ID)
	if err := s.remote.UpsertDiaries(ctx, records); err != nil {
		return 0, fmt.Errorf("diary sync failed: %w", err)
	}

	s.logger.Printf("Pushed %d diaries for %s", len(records), username)
	return len(records), nil
}

// PullConsentHistories implements Service.PullConsentHistories.
func (s *syncer) PullConsentHistories(ctx context.Context) (int, error) {
	if s.remote == nil {
		return 0, nil
	}

	histories, err := s.remote.ListConsentHistories(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch consent histories: %w", err)
	}
	if len(histories) == 0 {
		// Nothing to refresh with; the local cache stays as-is.
		return 0, nil
	}

	if err := s.local.SaveConsents(histories); err != nil {
		return 0, fmt.Errorf("failed to overwrite local consent cache: %w", err)
	}

	s.logger.Printf("Pulled %d consent histories", len(histories))
	return len(histories), nil
}

// PushConsentHistories implements Service.PushConsentHistories.
func (s *syncer) PushConsentHistories(ctx context.Context) (int, error) {
	if s.remote == nil {
		return 0, ErrRemoteUnavailable
	}

	histories := s.local.LoadConsents()
	if len(histories) == 0 {
		return 0, nil
	}

	if err := s.remote.UpsertConsentHistories(ctx, histories); err != nil {
		return 0, fmt.Errorf("consent sync failed: %w", err)
	}

	return len(histories), nil
}

// CleanupTestData implements Service.CleanupTestData.
func (s *syncer) CleanupTestData(ctx context.Context) (CleanupResult, error) {
	var result CleanupResult

	entries := s.local.LoadEntries()
	retained, removed := clean.FilterTestData(entries)
	if removed > 0 {
		if err := s.local.SaveEntries(retained); err != nil {
			return result, fmt.Errorf("failed to rewrite local collection: %w", err)
		}
	}
	result.LocalRemoved = removed

	if s.remote != nil {
		n, err := s.remote.DeleteDiariesMatching(ctx, clean.TestDataMarkers)
		if err != nil {
			// The local cleanup already succeeded; a remote failure is
			// reported as zero rows removed, matching offline behavior.
			s.logger.Printf("WARNING: remote test-data delete failed: %v", err)
		} else {
			result.RemoteRemoved = n
		}
	}

	s.logger.Printf("Cleanup removed %d local, %d remote test entries", result.LocalRemoved, result.RemoteRemoved)
	return result, nil
}

// RemoveDuplicates implements Service.RemoveDuplicates.
func (s *syncer) RemoveDuplicates(ctx context.Context) (CleanupResult, error) {
	var result CleanupResult

	entries := s.local.LoadEntries()
	unique, removed := clean.RemoveDuplicates(entries)
	if removed > 0 {
		if err := s.local.SaveEntries(unique); err != nil {
			return result, fmt.Errorf("failed to rewrite local collection: %w", err)
		}
	}
	result.LocalRemoved = removed

	// No remote pass: diary_entries has primary-key uniqueness on id,
	// which is all the remote tier guards against.
	s.logger.Printf("Dedup removed %d local duplicates", removed)
	return result, nil
}

// DeleteAllDiaries implements Service.DeleteAllDiaries.
func (s *syncer) DeleteAllDiaries(ctx context.Context) (CleanupResult, error) {
	var result CleanupResult

	entries := s.local.LoadEntries()
	result.LocalRemoved = len(entries)
	if err := s.local.SaveEntries(nil); err != nil {
		return result, fmt.Errorf("failed to clear local collection: %w", err)
	}

	if s.remote == nil {
		return result, nil
	}

	username := s.local.Username()
	if username == "" {
		s.logger.Printf("WARNING: no local username set, skipping remote delete")
		return result, nil
	}

	user, err := s.remote.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Printf("WARNING: no remote user row for %s, skipping remote delete", username)
			return result, nil
		}
		s.logger.Printf("WARNING: failed to resolve remote user: %v", err)
		return result, nil
	}

	n, err := s.remote.DeleteDiariesByUser(ctx, user.ID)
	if err != nil {
		s.logger.Printf("WARNING: remote diary delete failed: %v", err)
		return result, nil
	}
	result.RemoteRemoved = n

	s.logger.Printf("Deleted %d local, %d remote diaries for %s", result.LocalRemoved, result.RemoteRemoved, username)
	return result, nil
}

// SendMessage implements Service.SendMessage.
func (s *syncer) SendMessage(ctx context.Context, chatRoomID, content, senderID, counselorID string) (*schema.ChatMessage, error) {
	if s.remote == nil {
		return nil, ErrRemoteUnavailable
	}

	msg, err := schema.NewChatMessage(chatRoomID, content, senderID, counselorID)
	if err != nil {
		return nil, err
	}

	if err := s.remote.InsertMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	return msg, nil
}

// Messages implements Service.Messages.
func (s *syncer) Messages(ctx context.Context, chatRoomID string) ([]schema.ChatMessage, error) {
	if s.remote == nil {
		return []schema.ChatMessage{}, nil
	}

	messages, err := s.remote.ListMessages(ctx, chatRoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}
	if messages == nil {
		messages = []schema.ChatMessage{}
	}
	return messages, nil
}
