package app

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctonneslan/letterboxd-clone/internal/domain"
	"github.com/ctonneslan/letterboxd-clone/internal/errors"
)

func listFixture(owner uuid.UUID, public, ranked bool) *domain.List {
	return &domain.List{
		ID:       uuid.New(),
		UserID:   owner,
		Name:     "Favorites",
		IsPublic: public,
		IsRanked: ranked,
	}
}

func TestCreateList_Success(t *testing.T) {
	svc, deps := newTestService()
	userID := uuid.New()

	deps.lists.createFn = func(_ context.Context, gotUser uuid.UUID, name string, _ *string, isPublic, isRanked bool) (*domain.List, error) {
		assert.Equal(t, userID, gotUser)
		assert.Equal(t, "Favorites", name)
		assert.True(t, isPublic, "visibility defaults to public")
		assert.False(t, isRanked)
		return listFixture(userID, isPublic, isRanked), nil
	}

	list, err := svc.CreateList(context.Background(), userID, CreateListInput{Name: "  Favorites  "})
	require.NoError(t, err)
	assert.Equal(t, "Favorites", list.Name)
}

func TestCreateList_NameRequired(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateList(context.Background(), uuid.New(), CreateListInput{Name: "   "})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeValidation))
}

func TestGetList_PrivateHiddenFromNonOwner(t *testing.T) {
	svc, deps := newTestService()
	owner := uuid.New()
	private := listFixture(owner, false, false)
	deps.lists.getByIDFn = func(context.Context, uuid.UUID) (*domain.List, error) { return private, nil }

	_, _, err := svc.GetList(context.Background(), private.ID, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))

	other := uuid.New()
	_, _, err = svc.GetList(context.Background(), private.ID, &other)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))

	list, _, err := svc.GetList(context.Background(), private.ID, &owner)
	require.NoError(t, err)
	assert.Equal(t, private.ID, list.ID)
}

func TestUpdateList_NonOwnerForbidden(t *testing.T) {
	svc, deps := newTestService()
	list := listFixture(uuid.New(), true, false)
	deps.lists.getByIDFn = func(context.Context, uuid.UUID) (*domain.List, error) { return list, nil }

	_, err := svc.UpdateList(context.Background(), uuid.New(), list.ID, domain.ListPatch{Name: domain.Some("Stolen")})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeForbidden))
}

func TestUpdateList_NullNameRejected(t *testing.T) {
	svc, deps := newTestService()
	owner := uuid.New()
	list := listFixture(owner, true, false)
	deps.lists.getByIDFn = func(context.Context, uuid.UUID) (*domain.List, error) { return list, nil }

	_, err := svc.UpdateList(context.Background(), owner, list.ID, domain.ListPatch{Name: domain.Null[string]()})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeValidation))
}

func TestAddListItem_RankedPositions(t *testing.T) {
	svc, deps := newTestService()
	owner := uuid.New()
	ranked := listFixture(owner, true, true)
	movie := testMovie(603)

	deps.lists.getByIDFn = func(context.Context, uuid.UUID) (*domain.List, error) { return ranked, nil }
	deps.movies.getByTMDBIDFn = func(context.Context, int) (*domain.Movie, error) { return movie, nil }

	maxPos := 0
	deps.lists.maxPositionFn = func(context.Context, uuid.UUID) (int, error) { return maxPos, nil }
	deps.lists.addItemFn = func(_ context.Context, listID, movieID uuid.UUID, position int, notes *string) (*domain.ListItem, error) {
		maxPos = position
		return &domain.ListItem{ID: uuid.New(), ListID: listID, MovieID: movieID, Position: position, Notes: notes}, nil
	}

	// First item gets position 1, then max+1.
	item, err := svc.AddListItem(context.Background(), owner, ranked.ID, 603, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Position)

	item, err = svc.AddListItem(context.Background(), owner, ranked.ID, 604, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Position)

	// Removal leaves the sequence sparse; the next insert still takes max+1.
	maxPos = 5
	item, err = svc.AddListItem(context.Background(), owner, ranked.ID, 605, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, item.Position)
}

func TestAddListItem_UnrankedStaysAtZero(t *testing.T) {
	svc, deps := newTestService()
	owner := uuid.New()
	unranked := listFixture(owner, true, false)

	deps.lists.getByIDFn = func(context.Context, uuid.UUID) (*domain.List, error) { return unranked, nil }
	deps.movies.getByTMDBIDFn = func(context.Context, int) (*domain.Movie, error) { return testMovie(603), nil }
	deps.lists.maxPositionFn = func(context.Context, uuid.UUID) (int, error) {
		t.Fatal("unranked lists must not query positions")
		return 0, nil
	}
	deps.lists.addItemFn = func(_ context.Context, listID, movieID uuid.UUID, position int, notes *string) (*domain.ListItem, error) {
		return &domain.ListItem{ID: uuid.New(), ListID: listID, MovieID: movieID, Position: position}, nil
	}

	item, err := svc.AddListItem(context.Background(), owner, unranked.ID, 603, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, item.Position)
}

func TestAddListItem_DuplicateConflicts(t *testing.T) {
	svc, deps := newTestService()
	owner := uuid.New()
	list := listFixture(owner, true, false)

	deps.lists.getByIDFn = func(context.Context, uuid.UUID) (*domain.List, error) { return list, nil }
	deps.movies.getByTMDBIDFn = func(context.Context, int) (*domain.Movie, error) { return testMovie(603), nil }
	deps.lists.addItemFn = func(context.Context, uuid.UUID, uuid.UUID, int, *string) (*domain.ListItem, error) {
		return nil, domain.ErrDuplicateListItem
	}

	_, err := svc.AddListItem(context.Background(), owner, list.ID, 603, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConflict))
}

func TestAddListItem_PreCheckConflictsBeforeInsert(t *testing.T) {
	svc, deps := newTestService()
	owner := uuid.New()
	list := listFixture(owner, true, false)
	movie := testMovie(603)

	deps.lists.getByIDFn = func(context.Context, uuid.UUID) (*domain.List, error) { return list, nil }
	deps.movies.getByTMDBIDFn = func(context.Context, int) (*domain.Movie, error) { return movie, nil }
	deps.lists.getItemFn = func(context.Context, uuid.UUID, uuid.UUID) (*domain.ListItem, error) {
		return &domain.ListItem{ListID: list.ID, MovieID: movie.ID}, nil
	}
	deps.lists.addItemFn = func(context.Context, uuid.UUID, uuid.UUID, int, *string) (*domain.ListItem, error) {
		t.Fatal("insert must not be attempted when the pre-check finds the item")
		return nil, nil
	}

	_, err := svc.AddListItem(context.Background(), owner, list.ID, 603, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConflict))
}

func TestAddListItem_NonOwnerForbidden(t *testing.T) {
	svc, deps := newTestService()
	list := listFixture(uuid.New(), true, false)
	deps.lists.getByIDFn = func(context.Context, uuid.UUID) (*domain.List, error) { return list, nil }

	_, err := svc.AddListItem(context.Background(), uuid.New(), list.ID, 603, nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeForbidden))
}

func TestRemoveListItem_MissingIsNotFound(t *testing.T) {
	svc, deps := newTestService()
	owner := uuid.New()
	list := listFixture(owner, true, false)

	deps.lists.getByIDFn = func(context.Context, uuid.UUID) (*domain.List, error) { return list, nil }
	deps.movies.getByTMDBIDFn = func(context.Context, int) (*domain.Movie, error) { return testMovie(603), nil }
	deps.lists.removeItemFn = func(context.Context, uuid.UUID, uuid.UUID) error {
		return domain.ErrListItemNotFound
	}

	err := svc.RemoveListItem(context.Background(), owner, list.ID, 603)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotFound))
}

func TestListUserLists_VisibilityByViewer(t *testing.T) {
	svc, deps := newTestService()
	owner := testUser("alice")
	deps.users.getByUsernameFn = func(context.Context, string) (*domain.User, error) { return owner, nil }

	var gotPublicOnly bool
	deps.lists.listByUserFn = func(_ context.Context, _ uuid.UUID, publicOnly bool, _, _ int) ([]*domain.List, error) {
		gotPublicOnly = publicOnly
		return []*domain.List{}, nil
	}

	_, err := svc.ListUserLists(context.Background(), "alice", nil, 20, 0)
	require.NoError(t, err)
	assert.True(t, gotPublicOnly)

	_, err = svc.ListUserLists(context.Background(), "alice", &owner.ID, 20, 0)
	require.NoError(t, err)
	assert.False(t, gotPublicOnly)
}
