package players

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/minifoot/minifoot-api/pkg/metrics"
	"github.com/minifoot/minifoot-api/repos/store"
)

// Store is the slice of the data-access service this package needs.
type Store interface {
	CreatePlayer(ctx context.Context, player store.Player) (string, error)
	GetPlayer(ctx context.Context, id string) (store.Player, error)
	ListPlayers(ctx context.Context) ([]store.Player, error)
	DeletePlayer(ctx context.Context, id string) error
	SetPlayerPhoto(ctx context.Context, id, photoURL string) error
}

// Uploader pushes an image to the hosting service and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

type PlayersService struct {
	store    Store
	uploader Uploader
	metrics  *metrics.Metrics
	log      zerolog.Logger
}

func NewPlayersService(store Store, uploader Uploader, metrics *metrics.Metrics, log zerolog.Logger) *PlayersService {
	return &PlayersService{
		store:    store,
		uploader: uploader,
		metrics:  metrics,
		log:      log.With().Str("component", "players").Logger(),
	}
}

func (s *PlayersService) CreatePlayer(ctx context.Context, request CreatePlayerRequest) (string, error) {
	id, err := s.store.CreatePlayer(ctx, store.Player{
		Name:     request.Name,
		Nickname: request.Nickname,
		Position: request.Position,
		PhotoURL: request.PhotoURL,
	})
	if err != nil {
		return "", err
	}

	s.metrics.PlayersCreated.Inc()
	s.log.Info().Str("player_id", id).Str("name", request.Name).Msg("Player created")
	return id, nil
}

func (s *PlayersService) GetPlayer(ctx context.Context, id string) (store.Player, error) {
	return s.store.GetPlayer(ctx, id)
}

func (s *PlayersService) ListPlayers(ctx context.Context) ([]store.Player, error) {
	return s.store.ListPlayers(ctx)
}

// DeletePlayer removes a player. Saved matches still reference the ID; the
// display side renders those references as placeholders.
func (s *PlayersService) DeletePlayer(ctx context.Context, id string) error {
	if err := s.store.DeletePlayer(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("player_id", id).Msg("Player deleted")
	return nil
}

// UploadPhoto pushes the image to the hosting service and stores the
// returned URL on the player. The player must exist first.
func (s *PlayersService) UploadPhoto(ctx context.Context, playerID, filename string, file io.Reader) (string, error) {
	if _, err := s.store.GetPlayer(ctx, playerID); err != nil {
		return "", err
	}

	photoURL, err := s.uploader.Upload(ctx, filename, file)
	if err != nil {
		return "", err
	}

	if err := s.store.SetPlayerPhoto(ctx, playerID, photoURL); err != nil {
		return "", err
	}
	s.log.Info().Str("player_id", playerID).Msg("Player photo updated")
	return photoURL, nil
}
