package mocks

import (
	"cmp"
	"context"
	"database/sql"
	"maps"
	"slices"
	"sync"

	"github.com/phrazzld/kanban-api/internal/domain"
	"github.com/phrazzld/kanban-api/internal/store"
)

// MemoryUnitOfWork is an in-memory store.UnitOfWork. RunInTx works on a copy
// of the data and publishes it only when fn succeeds, so tests can observe
// rollback.
type MemoryUnitOfWork struct {
	mu    sync.Mutex
	state *memState

	// CardUpdateFn, when set, runs before every card update and can fail it.
	CardUpdateFn func(card *domain.Card) error

	// ColumnUpdateFn, when set, runs before every column update and can fail it.
	ColumnUpdateFn func(column *domain.Column) error

	// Commits and Rollbacks count finished RunInTx calls.
	Commits   int
	Rollbacks int
}

type memState struct {
	nextID  int64
	users   map[int64]domain.User
	boards  map[int64]domain.Board
	columns map[int64]domain.Column
	cards   map[int64]domain.Card
}

func (s *memState) clone() *memState {
	return &memState{
		nextID:  s.nextID,
		users:   maps.Clone(s.users),
		boards:  maps.Clone(s.boards),
		columns: maps.Clone(s.columns),
		cards:   maps.Clone(s.cards),
	}
}

func (s *memState) id() int64 {
	s.nextID++
	return s.nextID
}

// NewMemoryUnitOfWork creates an empty MemoryUnitOfWork.
func NewMemoryUnitOfWork() *MemoryUnitOfWork {
	return &MemoryUnitOfWork{
		state: &memState{
			users:   make(map[int64]domain.User),
			boards:  make(map[int64]domain.Board),
			columns: make(map[int64]domain.Column),
			cards:   make(map[int64]domain.Card),
		},
	}
}

// Stores implements store.UnitOfWork
func (u *MemoryUnitOfWork) Stores() store.Stores {
	return u.stores(func(fn func(*memState) error) error {
		u.mu.Lock()
		defer u.mu.Unlock()
		return fn(u.state)
	})
}

// RunInTx implements store.UnitOfWork
func (u *MemoryUnitOfWork) RunInTx(
	ctx context.Context,
	fn func(ctx context.Context, tx store.Stores) error,
) error {
	u.mu.Lock()
	working := u.state.clone()
	u.mu.Unlock()

	err := fn(ctx, u.stores(func(fn func(*memState) error) error {
		return fn(working)
	}))

	u.mu.Lock()
	defer u.mu.Unlock()
	if err != nil {
		u.Rollbacks++
		return err
	}
	u.state = working
	u.Commits++
	return nil
}

func (u *MemoryUnitOfWork) stores(with func(func(*memState) error) error) store.Stores {
	return store.Stores{
		Users:   &memUserStore{with: with},
		Boards:  &memBoardStore{with: with},
		Columns: &memColumnStore{with: with, uow: u},
		Cards:   &memCardStore{with: with, uow: u},
	}
}

// AddUser inserts a user with the given password hash and returns its ID.
func (u *MemoryUnitOfWork) AddUser(username, hashedPassword string) int64 {
	user := &domain.User{Username: username, HashedPassword: hashedPassword}
	if err := u.Stores().Users.Create(context.Background(), user); err != nil {
		panic(err)
	}
	return user.ID
}

// AddBoard inserts a board and returns it.
func (u *MemoryUnitOfWork) AddBoard(userID int64, name string) domain.Board {
	board, err := domain.NewBoard(userID, name)
	if err != nil {
		panic(err)
	}
	if err := u.Stores().Boards.Create(context.Background(), board); err != nil {
		panic(err)
	}
	return *board
}

// AddColumn inserts a column and returns it.
func (u *MemoryUnitOfWork) AddColumn(boardID int64, name string, positionID int) domain.Column {
	column, err := domain.NewColumn(boardID, name, positionID)
	if err != nil {
		panic(err)
	}
	if err := u.Stores().Columns.Create(context.Background(), column); err != nil {
		panic(err)
	}
	return *column
}

// AddCard inserts a card and returns it.
func (u *MemoryUnitOfWork) AddCard(columnID int64, task string, positionID int) domain.Card {
	card, err := domain.NewCard(columnID, task, positionID)
	if err != nil {
		panic(err)
	}
	if err := u.Stores().Cards.Create(context.Background(), card); err != nil {
		panic(err)
	}
	return *card
}

// Card returns the committed card with id.
func (u *MemoryUnitOfWork) Card(id int64) (domain.Card, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	card, ok := u.state.cards[id]
	return card, ok
}

// Column returns the committed column with id.
func (u *MemoryUnitOfWork) Column(id int64) (domain.Column, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	column, ok := u.state.columns[id]
	return column, ok
}

// Board returns the committed board with id.
func (u *MemoryUnitOfWork) Board(id int64) (domain.Board, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	board, ok := u.state.boards[id]
	return board, ok
}

type memUserStore struct {
	with func(func(*memState) error) error
}

func (s *memUserStore) Create(_ context.Context, user *domain.User) error {
	if user.HashedPassword == "" {
		return store.ErrInvalidEntity
	}
	return s.with(func(st *memState) error {
		for _, existing := range st.users {
			if existing.Username == user.Username {
				return store.ErrUsernameExists
			}
		}
		user.ID = st.id()
		user.Password = ""
		st.users[user.ID] = *user
		return nil
	})
}

func (s *memUserStore) GetByID(_ context.Context, id int64) (*domain.User, error) {
	var user domain.User
	err := s.with(func(st *memState) error {
		found, ok := st.users[id]
		if !ok {
			return store.ErrUserNotFound
		}
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.with(func(st *memState) error {
		for _, found := range st.users {
			if found.Username == username {
				user = found
				return nil
			}
		}
		return store.ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *memUserStore) WithTx(*sql.Tx) store.UserStore { return s }

type memBoardStore struct {
	with func(func(*memState) error) error
}

func (s *memBoardStore) Create(_ context.Context, board *domain.Board) error {
	return s.with(func(st *memState) error {
		if _, ok := st.users[board.UserID]; !ok {
			return store.ErrIntegrity
		}
		board.ID = st.id()
		stored := *board
		stored.Columns = nil
		st.boards[board.ID] = stored
		return nil
	})
}

func (s *memBoardStore) GetByID(_ context.Context, id int64) (*domain.Board, error) {
	var board domain.Board
	err := s.with(func(st *memState) error {
		found, ok := st.boards[id]
		if !ok {
			return store.ErrBoardNotFound
		}
		board = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *memBoardStore) ListByUser(_ context.Context, userID int64) ([]domain.Board, error) {
	boards := []domain.Board{}
	err := s.with(func(st *memState) error {
		for _, board := range st.boards {
			if board.UserID == userID {
				boards = append(boards, board)
			}
		}
		return nil
	})
	slices.SortFunc(boards, func(a, b domain.Board) int { return cmp.Compare(a.ID, b.ID) })
	return boards, err
}

func (s *memBoardStore) Delete(_ context.Context, id int64) error {
	return s.with(func(st *memState) error {
		if _, ok := st.boards[id]; !ok {
			return store.ErrBoardNotFound
		}
		delete(st.boards, id)
		for columnID, column := range st.columns {
			if column.BoardID == id {
				deleteColumn(st, columnID)
			}
		}
		return nil
	})
}

func (s *memBoardStore) WithTx(*sql.Tx) store.BoardStore { return s }

type memColumnStore struct {
	with func(func(*memState) error) error
	uow  *MemoryUnitOfWork
}

func (s *memColumnStore) Create(_ context.Context, column *domain.Column) error {
	return s.with(func(st *memState) error {
		if _, ok := st.boards[column.BoardID]; !ok {
			return store.ErrIntegrity
		}
		column.ID = st.id()
		stored := *column
		stored.Cards = nil
		st.columns[column.ID] = stored
		return nil
	})
}

func (s *memColumnStore) GetByID(_ context.Context, id int64) (*domain.Column, error) {
	var column domain.Column
	err := s.with(func(st *memState) error {
		found, ok := st.columns[id]
		if !ok {
			return store.ErrColumnNotFound
		}
		column = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &column, nil
}

func (s *memColumnStore) ListByBoard(_ context.Context, boardID int64) ([]domain.Column, error) {
	return s.list(func(st *memState, c domain.Column) bool { return c.BoardID == boardID })
}

func (s *memColumnStore) ListByUser(_ context.Context, userID int64) ([]domain.Column, error) {
	return s.list(func(st *memState, c domain.Column) bool {
		return st.boards[c.BoardID].UserID == userID
	})
}

func (s *memColumnStore) list(keep func(*memState, domain.Column) bool) ([]domain.Column, error) {
	columns := []domain.Column{}
	err := s.with(func(st *memState) error {
		for _, column := range st.columns {
			if keep(st, column) {
				columns = append(columns, column)
			}
		}
		return nil
	})
	slices.SortFunc(columns, func(a, b domain.Column) int {
		if a.PositionID != b.PositionID {
			return cmp.Compare(a.PositionID, b.PositionID)
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return columns, err
}

func (s *memColumnStore) Update(_ context.Context, column *domain.Column) error {
	if s.uow.ColumnUpdateFn != nil {
		if err := s.uow.ColumnUpdateFn(column); err != nil {
			return err
		}
	}
	return s.with(func(st *memState) error {
		existing, ok := st.columns[column.ID]
		if !ok {
			return store.ErrColumnNotFound
		}
		existing.Name = column.Name
		existing.PositionID = column.PositionID
		existing.UpdatedAt = column.UpdatedAt
		st.columns[column.ID] = existing
		return nil
	})
}

func (s *memColumnStore) Delete(_ context.Context, id int64) error {
	return s.with(func(st *memState) error {
		if _, ok := st.columns[id]; !ok {
			return store.ErrColumnNotFound
		}
		deleteColumn(st, id)
		return nil
	})
}

func (s *memColumnStore) WithTx(*sql.Tx) store.ColumnStore { return s }

type memCardStore struct {
	with func(func(*memState) error) error
	uow  *MemoryUnitOfWork
}

func (s *memCardStore) Create(_ context.Context, card *domain.Card) error {
	return s.with(func(st *memState) error {
		if _, ok := st.columns[card.ColumnID]; !ok {
			return store.ErrIntegrity
		}
		card.ID = st.id()
		st.cards[card.ID] = *card
		return nil
	})
}

func (s *memCardStore) GetByID(_ context.Context, id int64) (*domain.Card, error) {
	var card domain.Card
	err := s.with(func(st *memState) error {
		found, ok := st.cards[id]
		if !ok {
			return store.ErrCardNotFound
		}
		card = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *memCardStore) ListByColumn(_ context.Context, columnID int64) ([]domain.Card, error) {
	return s.list(func(st *memState, c domain.Card) bool { return c.ColumnID == columnID })
}

func (s *memCardStore) ListByBoard(_ context.Context, boardID int64) ([]domain.Card, error) {
	return s.list(func(st *memState, c domain.Card) bool {
		return st.columns[c.ColumnID].BoardID == boardID
	})
}

func (s *memCardStore) ListByUser(_ context.Context, userID int64) ([]domain.Card, error) {
	return s.list(func(st *memState, c domain.Card) bool {
		return st.boards[st.columns[c.ColumnID].BoardID].UserID == userID
	})
}

func (s *memCardStore) list(keep func(*memState, domain.Card) bool) ([]domain.Card, error) {
	cards := []domain.Card{}
	err := s.with(func(st *memState) error {
		for _, card := range st.cards {
			if keep(st, card) {
				cards = append(cards, card)
			}
		}
		return nil
	})
	slices.SortFunc(cards, func(a, b domain.Card) int {
		if a.PositionID != b.PositionID {
			return cmp.Compare(a.PositionID, b.PositionID)
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return cards, err
}

func (s *memCardStore) Update(_ context.Context, card *domain.Card) error {
	if s.uow.CardUpdateFn != nil {
		if err := s.uow.CardUpdateFn(card); err != nil {
			return err
		}
	}
	return s.with(func(st *memState) error {
		if _, ok := st.cards[card.ID]; !ok {
			return store.ErrCardNotFound
		}
		if _, ok := st.columns[card.ColumnID]; !ok {
			return store.ErrIntegrity
		}
		st.cards[card.ID] = *card
		return nil
	})
}

func (s *memCardStore) Delete(_ context.Context, id int64) error {
	return s.with(func(st *memState) error {
		if _, ok := st.cards[id]; !ok {
			return store.ErrCardNotFound
		}
		delete(st.cards, id)
		return nil
	})
}

func (s *memCardStore) WithTx(*sql.Tx) store.CardStore { return s }

func deleteColumn(st *memState, id int64) {
	delete(st.columns, id)
	for cardID, card := range st.cards {
		if card.ColumnID == id {
			delete(st.cards, cardID)
		}
	}
}
