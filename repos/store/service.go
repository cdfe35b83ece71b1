// Package store is the single data-access service for the Firestore
// collections behind the app. It is constructed once at startup and injected
// into every domain service; nothing else touches the raw client.
package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/minifoot/minifoot-api/pkg/matchlog"
)

const (
	playersCollection = "players"
	matchesCollection = "matches"
)

var ErrNotFound = xerrors.New("document not found")

type Service struct {
	client   *firestore.Client
	validate *validator.Validate
	log      zerolog.Logger
}

func NewService(client *firestore.Client, log zerolog.Logger) *Service {
	return &Service{
		client:   client,
		validate: validator.New(),
		log:      log.With().Str("component", "store").Logger(),
	}
}

// Close releases the underlying client. Called once on shutdown.
func (s *Service) Close() error {
	return s.client.Close()
}

func (s *Service) docToPlayer(doc *firestore.DocumentSnapshot) (Player, error) {
	var player Player
	if err := doc.DataTo(&player); err != nil {
		// If this fails, we have an inconsistency error as we control both
		// the data written to Firestore and the shape of our struct.
		return Player{}, xerrors.Errorf(
			"consistency error. Converting player %s failed: %w", doc.Ref.ID, err,
		)
	}
	player.ID = doc.Ref.ID
	if err := s.validate.Struct(player); err != nil {
		return Player{}, xerrors.Errorf("malformed player document %s: %w", doc.Ref.ID, err)
	}
	return player, nil
}

func (s *Service) docToMatch(doc *firestore.DocumentSnapshot) (Match, error) {
	var match Match
	if err := doc.DataTo(&match); err != nil {
		return Match{}, xerrors.Errorf(
			"consistency error. Converting match %s failed: %w", doc.Ref.ID, err,
		)
	}
	match.ID = doc.Ref.ID
	if err := s.validate.Struct(match); err != nil {
		return Match{}, xerrors.Errorf("malformed match document %s: %w", doc.Ref.ID, err)
	}
	return match, nil
}

// CreatePlayer writes a new player with all counters at zero and returns its
// assigned ID. Any counters on the input are discarded.
func (s *Service) CreatePlayer(ctx context.Context, player Player) (string, error) {
	player.Goals = 0
	player.Assists = 0
	player.MatchesPlayed = 0

	if err := s.validate.Struct(player); err != nil {
		return "", err
	}

	ref := s.client.Collection(playersCollection).NewDoc()
	if _, err := ref.Create(ctx, player); err != nil {
		s.log.Error().Err(err).Msg("Failed to create player")
		return "", err
	}
	return ref.ID, nil
}

func (s *Service) GetPlayer(ctx context.Context, id string) (Player, error) {
	doc, err := s.client.Collection(playersCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return Player{}, ErrNotFound
	}
	if err != nil {
		s.log.Error().Err(err).Str("player_id", id).Msg("Failed to get player")
		return Player{}, err
	}
	return s.docToPlayer(doc)
}

// ListPlayers returns every player, newest first.
func (s *Service) ListPlayers(ctx context.Context) ([]Player, error) {
	iter := s.client.Collection(playersCollection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var players []Player
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			s.log.Error().Err(err).Msg("Failed to list players")
			return nil, err
		}
		player, err := s.docToPlayer(doc)
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}

// DeletePlayer removes the player document only. Historical matches keep
// their references to the deleted ID; no aggregate is reconciled.
func (s *Service) DeletePlayer(ctx context.Context, id string) error {
	_, err := s.client.Collection(playersCollection).Doc(id).Delete(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("player_id", id).Msg("Failed to delete player")
	}
	return err
}

// SetPlayerPhoto stores the hosted photo URL on the player document.
func (s *Service) SetPlayerPhoto(ctx context.Context, id, photoURL string) error {
	_, err := s.client.Collection(playersCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "photoUrl", Value: photoURL},
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

// CommitMatch persists a finished match and applies every participant's
// counter increments in one transaction. Either the match document and all
// increments land, or none do: a retry after a failure can never
// double-count, and two devices saving different matches concurrently
// compose because the deltas are relative increments.
func (s *Service) CommitMatch(ctx context.Context, match Match) (string, error) {
	if err := s.validate.Struct(match); err != nil {
		return "", err
	}

	deltas := matchlog.CounterDeltas(match.TeamAPlayers, match.TeamBPlayers, match.Events)
	ref := s.client.Collection(matchesCollection).NewDoc()

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(ref, match); err != nil {
			return err
		}
		for _, d := range deltas {
			playerRef := s.client.Collection(playersCollection).Doc(d.PlayerID)
			updates := []firestore.Update{
				{Path: "matchesPlayed", Value: firestore.Increment(d.MatchesPlayed)},
				{Path: "goals", Value: firestore.Increment(d.Goals)},
				{Path: "assists", Value: firestore.Increment(d.Assists)},
			}
			if err := tx.Update(playerRef, updates); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Int("participants", len(deltas)).Msg("Match commit rolled back")
		return "", err
	}

	s.log.Info().
		Str("match_id", ref.ID).
		Int("events", len(match.Events)).
		Int("participants", len(deltas)).
		Msg("Match committed")
	return ref.ID, nil
}

func (s *Service) GetMatch(ctx context.Context, id string) (Match, error) {
	doc, err := s.client.Collection(matchesCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return Match{}, ErrNotFound
	}
	if err != nil {
		s.log.Error().Err(err).Str("match_id", id).Msg("Failed to get match")
		return Match{}, err
	}
	return s.docToMatch(doc)
}

// ListMatches returns all matches ordered most-recent-first, the ordering
// the date grouping relies on.
func (s *Service) ListMatches(ctx context.Context) ([]Match, error) {
	docs, err := s.client.Collection(matchesCollection).
		OrderBy("date", firestore.Desc).
		Documents(ctx).
		GetAll()
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list matches")
		return nil, err
	}

	var matches []Match
	for _, doc := range docs {
		match, err := s.docToMatch(doc)
		if err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// CountMatches returns the number of stored matches.
func (s *Service) CountMatches(ctx context.Context) (int, error) {
	docs, err := s.client.Collection(matchesCollection).Select().Documents(ctx).GetAll()
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

// WatchPlayers streams the full player collection on every change, the
// store's subscribe-to-collection contract. The channel closes when ctx is
// cancelled or the stream fails; decode failures skip the document rather
// than killing the feed.
func (s *Service) WatchPlayers(ctx context.Context) <-chan []Player {
	out := make(chan []Player)
	snapshots := s.client.Collection(playersCollection).Snapshots(ctx)

	go func() {
		defer close(out)
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					s.log.Error().Err(err).Msg("Player snapshot stream failed")
				}
				return
			}

			var players []Player
			for {
				doc, err := snap.Documents.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					s.log.Error().Err(err).Msg("Player snapshot iteration failed")
					return
				}
				player, err := s.docToPlayer(doc)
				if err != nil {
					s.log.Warn().Err(err).Msg("Skipping malformed player document")
					continue
				}
				players = append(players, player)
			}

			select {
			case out <- players:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// WatchMatches streams the full match collection, most-recent-first, on
// every change.
func (s *Service) WatchMatches(ctx context.Context) <-chan []Match {
	out := make(chan []Match)
	snapshots := s.client.Collection(matchesCollection).
		OrderBy("date", firestore.Desc).
		Snapshots(ctx)

	go func() {
		defer close(out)
		defer snapshots.Stop()
		for {
			snap, err := snapshots.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					s.log.Error().Err(err).Msg("Match snapshot stream failed")
				}
				return
			}

			var matches []Match
			for {
				doc, err := snap.Documents.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					s.log.Error().Err(err).Msg("Match snapshot iteration failed")
					return
				}
				match, err := s.docToMatch(doc)
				if err != nil {
					s.log.Warn().Err(err).Msg("Skipping malformed match document")
					continue
				}
				matches = append(matches, match)
			}

			select {
			case out <- matches:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
