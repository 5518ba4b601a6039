package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/platform/logger"
	"github.com/phrazzld/kanban-api/internal/service/bulk"
	"github.com/phrazzld/kanban-api/internal/store"
)

// CreateCardInput carries the fields of a new card.
type CreateCardInput struct {
	Task       string
	PositionID int
	ColumnID   int64
}

// CardService provides card-related operations for the calling user.
type CardService interface {
	// GetCard retrieves a single card.
	GetCard(ctx context.Context, userID, cardID int64) (*domain.Card, error)

	// CreateCard adds a card to one of the caller's columns.
	CreateCard(ctx context.Context, userID int64, in CreateCardInput) (*domain.Card, error)

	// UpdateCard applies a partial update to one card. A changed column_id must
	// name a column on one of the caller's boards.
	UpdateCard(ctx context.Context, userID, cardID int64, patch domain.CardPatch) (*domain.Card, error)

	// DeleteCard removes one card.
	DeleteCard(ctx context.Context, userID, cardID int64) error

	// BulkUpdateCards applies items to the caller's cards, restricted to
	// columnID when it is non-nil, and returns the surviving cards in
	// submission order. The batch is atomic.
	BulkUpdateCards(
		ctx context.Context,
		userID int64,
		columnID *int64,
		items []bulk.Item[domain.CardPatch],
	) ([]domain.Card, error)
}

type cardServiceImpl struct {
	uow    store.UnitOfWork
	logger *slog.Logger
}

// NewCardService creates a new CardService.
func NewCardService(uow store.UnitOfWork, logger *slog.Logger) (CardService, error) {
	if uow == nil {
		return nil, domain.NewValidationError("uow", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &cardServiceImpl{
		uow:    uow,
		logger: logger.With(slog.String("component", "card_service")),
	}, nil
}

// GetCard implements CardService.GetCard
func (s *cardServiceImpl) GetCard(ctx context.Context, userID, cardID int64) (*domain.Card, error) {
	return ownedCard(ctx, s.uow.Stores(), userID, cardID)
}

// CreateCard implements CardService.CreateCard
func (s *cardServiceImpl) CreateCard(ctx context.Context, userID int64, in CreateCardInput) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewCard(in.ColumnID, in.Task, in.PositionID)
	if err != nil {
		return nil, err
	}

	err = s.uow.RunInTx(ctx, func(ctx context.Context, tx store.Stores) error {
		if _, err := ownedColumn(ctx, tx, userID, in.ColumnID); err != nil {
			return err
		}
		return tx.Cards.Create(ctx, card)
	})
	if err != nil {
		return nil, err
	}

	log.Debug("card created",
		slog.Int64("card_id", card.ID),
		slog.Int64("column_id", card.ColumnID))
	return card, nil
}

// UpdateCard implements CardService.UpdateCard
func (s *cardServiceImpl) UpdateCard(
	ctx context.Context,
	userID, cardID int64,
	patch domain.CardPatch,
) (*domain.Card, error) {
	var updated domain.Card
	err := s.uow.RunInTx(ctx, func(ctx context.Context, tx store.Stores) error {
		card, err := ownedCard(ctx, tx, userID, cardID)
		if err != nil {
			return err
		}
		updated, err = newCardUpdater(tx, userID).update(ctx, *card, patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCard implements CardService.DeleteCard
func (s *cardServiceImpl) DeleteCard(ctx context.Context, userID, cardID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.uow.RunInTx(ctx, func(ctx context.Context, tx store.Stores) error {
		if _, err := ownedCard(ctx, tx, userID, cardID); err != nil {
			return err
		}
		return tx.Cards.Delete(ctx, cardID)
	})
	if err != nil {
		return err
	}

	log.Debug("card deleted", slog.Int64("card_id", cardID))
	return nil
}

// BulkUpdateCards implements CardService.BulkUpdateCards
func (s *cardServiceImpl) BulkUpdateCards(
	ctx context.Context,
	userID int64,
	columnID *int64,
	items []bulk.Item[domain.CardPatch],
) ([]domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var result []domain.Card
	err := s.uow.RunInTx(ctx, func(ctx context.Context, tx store.Stores) error {
		var (
			instance []domain.Card
			err      error
		)
		if columnID != nil {
			if _, err := ownedColumn(ctx, tx, userID, *columnID); err != nil {
				return err
			}
			instance, err = tx.Cards.ListByColumn(ctx, *columnID)
		} else {
			instance, err = tx.Cards.ListByUser(ctx, userID)
		}
		if err != nil {
			return err
		}

		updater := newCardUpdater(tx, userID)
		result, err = bulk.Apply(ctx, instance, items, bulk.Ops[domain.Card, domain.CardPatch]{
			ID:       func(c domain.Card) int64 { return c.ID },
			Delete:   tx.Cards.Delete,
			Update:   updater.update,
			NotFound: store.ErrCardNotFound,
		})
		return err
	})
	if err != nil {
		log.Debug("bulk card update rolled back", slog.String("error", err.Error()))
		return nil, err
	}

	log.Info("bulk card update applied",
		slog.Int("items", len(items)),
		slog.Int("survivors", len(result)))
	return result, nil
}

// cardUpdater applies patches within one transaction, checking each
// destination column once.
type cardUpdater struct {
	tx     store.Stores
	userID int64
	owned  map[int64]bool
}

func newCardUpdater(tx store.Stores, userID int64) *cardUpdater {
	return &cardUpdater{tx: tx, userID: userID, owned: make(map[int64]bool)}
}

func (u *cardUpdater) update(ctx context.Context, card domain.Card, patch domain.CardPatch) (domain.Card, error) {
	if patch.ColumnID != nil && *patch.ColumnID != card.ColumnID && !u.owned[*patch.ColumnID] {
		if _, err := ownedColumn(ctx, u.tx, u.userID, *patch.ColumnID); err != nil {
			return domain.Card{}, err
		}
		u.owned[*patch.ColumnID] = true
	}

	if err := card.Apply(patch); err != nil {
		return domain.Card{}, err
	}
	if err := u.tx.Cards.Update(ctx, &card); err != nil {
		return domain.Card{}, err
	}
	return card, nil
}
