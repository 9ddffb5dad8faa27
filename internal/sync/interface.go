// Package sync reconciles the local journal collections with the remote
// store. It is the only component that touches both tiers.
package sync

import (
	"context"
	"errors"

	"github.com/jinjinsansan/kanjou/internal/schema"
)

// ErrRemoteUnavailable is returned by write operations when no remote
// store is configured. Reads short-circuit to a zero-effect success
// instead: the application is designed to function fully offline.
var ErrRemoteUnavailable = errors.New("no remote connection")

// CleanupResult reports what a batch cleanup removed from each tier.
type CleanupResult struct {
	LocalRemoved  int
	RemoteRemoved int
}

// Service reconciles local and remote journal state.
//
// All operations are designed for a caller-serialized, event-driven
// model: none of them spawn goroutines or take locks, and callers must
// not overlap invocations that write the same local collection. Remote
// failures surface immediately as errors with no retry; timeout and
// cancellation are delegated to the ctx passed in.
type Service interface {
	// PushDiaries normalizes the full local diary collection, attaches
	// the owning user resolved from the local identity marker, and
	// issues one batch upsert keyed by record id (incoming row wins).
	//
	// An empty local collection is a no-op success with no remote call.
	// With no remote configured, returns ErrRemoteUnavailable. A remote
	// failure is returned as-is; partial success is not supported.
	//
	// Returns the number of records pushed.
	PushDiaries(ctx context.Context) (int, error)

	// PullConsentHistories fetches the remote consent collection
	// (ordered by consent date descending) and overwrites the local
	// cache wholesale.
	//
	// Consent histories are remote-authoritative, but the pull never
	// destroys data it merely failed to refresh: on fetch failure or an
	// empty result the local cache is left untouched. With no remote
	// configured this is a zero-effect success.
	//
	// Returns the number of histories pulled.
	PullConsentHistories(ctx context.Context) (int, error)

	// PushConsentHistories upserts the locally cached consent histories
	// to the remote store, keyed by id.
	//
	// With no remote configured, returns ErrRemoteUnavailable. An empty
	// local cache is a no-op success.
	PushConsentHistories(ctx context.Context) (int, error)

	// CleanupTestData removes synthetic entries from both tiers: the
	// local collection is rewritten without records matching any test
	// marker, and a single batch delete with an equivalent filter is
	// issued against the remote store when one is configured.
	//
	// A missing or failing remote is not an error here - the remote
	// count is simply reported as zero and the problem is logged.
	CleanupTestData(ctx context.Context) (CleanupResult, error)

	// RemoveDuplicates rewrites the local collection keeping only the
	// first occurrence per dedup key (date + emotion + event prefix).
	//
	// This is a local-only pass: the remote store's primary-key
	// uniqueness already prevents remote duplication, so RemoteRemoved
	// is always zero.
	RemoveDuplicates(ctx context.Context) (CleanupResult, error)

	// DeleteAllDiaries empties the local diary collection and, when a
	// remote store is configured, deletes the current user's remote
	// diaries as well.
	//
	// The remote side requires resolving the local identity marker to a
	// users row; when no row is found the remote deletion is skipped
	// with a warning while the local deletion still proceeds. This
	// asymmetry is accepted behavior, not an error.
	DeleteAllDiaries(ctx context.Context) (CleanupResult, error)

	// SendMessage stores a chat message in the given room. Exactly one
	// of senderID and counselorID must be set; is_counselor is derived.
	// With no remote configured, returns ErrRemoteUnavailable.
	SendMessage(ctx context.Context, chatRoomID, content, senderID, counselorID string) (*schema.ChatMessage, error)

	// Messages returns a room's chat messages ordered oldest first.
	// With no remote configured, returns an empty slice.
	Messages(ctx context.Context, chatRoomID string) ([]schema.ChatMessage, error)
}
