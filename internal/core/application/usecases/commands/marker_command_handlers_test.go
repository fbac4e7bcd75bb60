package commands_test

import (
	"context"
	"errors"
	"testing"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/domain/model/marker"
	"warehouse/internal/core/ports"
	"warehouse/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock implementations for testing.
type MockMarkerRepository struct {
	mock.Mock
}

func (m *MockMarkerRepository) Get(ctx context.Context, id int64) (*marker.Marker, error) {
	args := m.Called(ctx, id)
	mk, _ := args.Get(0).(*marker.Marker)
	return mk, args.Error(1)
}

func (m *MockMarkerRepository) GetWithDeleted(ctx context.Context, id int64) (*marker.Marker, error) {
	args := m.Called(ctx, id)
	mk, _ := args.Get(0).(*marker.Marker)
	return mk, args.Error(1)
}

func (m *MockMarkerRepository) List(ctx context.Context) ([]*marker.Marker, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*marker.Marker), args.Error(1)
}

func (m *MockMarkerRepository) ListWithDeleted(ctx context.Context) ([]*marker.Marker, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*marker.Marker), args.Error(1)
}

func (m *MockMarkerRepository) ListDeleted(ctx context.Context) ([]*marker.Marker, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*marker.Marker), args.Error(1)
}

func (m *MockMarkerRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMarkerRepository) MissingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockMarkerRepository) Add(ctx context.Context, mk *marker.Marker) error {
	args := m.Called(ctx, mk)
	return args.Error(0)
}

func (m *MockMarkerRepository) Update(ctx context.Context, mk *marker.Marker) error {
	args := m.Called(ctx, mk)
	return args.Error(0)
}

func (m *MockMarkerRepository) SoftDelete(ctx context.Context, mk *marker.Marker, actorID string) error {
	args := m.Called(ctx, mk, actorID)
	return args.Error(0)
}

func (m *MockMarkerRepository) SoftDeleteByID(ctx context.Context, id int64, actorID string) error {
	args := m.Called(ctx, id, actorID)
	return args.Error(0)
}

func (m *MockMarkerRepository) Undelete(ctx context.Context, mk *marker.Marker, actorID string) error {
	args := m.Called(ctx, mk, actorID)
	return args.Error(0)
}

type MockMarkerUoW struct {
	mock.Mock
}

func (m *MockMarkerUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMarkerUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMarkerUoW) CommitWithLog(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMarkerUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockMarkerUoW) MarkerRepository() ports.MarkerRepository {
	args := m.Called()
	return args.Get(0).(ports.MarkerRepository)
}

type MockMarkerUoWFactory struct {
	mock.Mock
}

func (m *MockMarkerUoWFactory) Create() commands.MarkerUoW {
	args := m.Called()
	return args.Get(0).(commands.MarkerUoW)
}

func TestNewCreateMarkerCommandHandler(t *testing.T) {
	// Arrange
	mockFactory := new(MockMarkerUoWFactory)

	// Act
	handler := commands.NewCreateMarkerCommandHandler(mockFactory, clock)

	// Assert
	assert.NotNil(t, handler)
}

func TestCreateMarkerCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewCreateMarkerCommand(actor, "fragile")
	require.NoError(t, err)

	mockRepo := new(MockMarkerRepository)
	mockUoW := new(MockMarkerUoW)
	mockFactory := new(MockMarkerUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("MarkerRepository").Return(mockRepo).Once(),
		mockRepo.On("Add", ctx, mock.AnythingOfType("*marker.Marker")).
			Run(func(args mock.Arguments) {
				require.NoError(t, args.Get(1).(*marker.Marker).AssignID(7))
			}).
			Return(nil).Once(),
		mockUoW.On("CommitWithLog", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCreateMarkerCommandHandler(mockFactory, clock)

	// Act
	id, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestCreateMarkerCommandHandler_Handle_InvalidCommand(t *testing.T) {
	// Arrange
	ctx := t.Context()
	var invalidCmd commands.CreateMarkerCommand // zero value command

	mockFactory := new(MockMarkerUoWFactory)
	handler := commands.NewCreateMarkerCommandHandler(mockFactory, clock)

	// Act
	_, err := handler.Handle(ctx, invalidCmd)

	// Assert
	require.ErrorIs(t, err, commands.ErrCreateMarkerCommandIsNotConstructed)
	mockFactory.AssertExpectations(t) // No calls should be made to factory
}

func TestCreateMarkerCommandHandler_Handle_BlankNameNeverOpensATransaction(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewCreateMarkerCommand(actor, "   ")
	require.NoError(t, err)

	mockFactory := new(MockMarkerUoWFactory)
	handler := commands.NewCreateMarkerCommandHandler(mockFactory, clock)

	// Act
	_, err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	mockFactory.AssertExpectations(t)
}

func TestCreateMarkerCommandHandler_Handle_BeginTransactionError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewCreateMarkerCommand(actor, "fragile")
	require.NoError(t, err)

	mockUoW := new(MockMarkerUoW)
	mockFactory := new(MockMarkerUoWFactory)

	beginErr := errors.New("connection refused")
	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(beginErr).Once()

	handler := commands.NewCreateMarkerCommandHandler(mockFactory, clock)

	// Act
	_, err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, beginErr)
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
}

func TestCreateMarkerCommandHandler_Handle_RepositoryErrorRollsBack(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewCreateMarkerCommand(actor, "fragile")
	require.NoError(t, err)

	mockRepo := new(MockMarkerRepository)
	mockUoW := new(MockMarkerUoW)
	mockFactory := new(MockMarkerUoWFactory)

	addErr := errors.New("insert failed")
	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("MarkerRepository").Return(mockRepo).Once(),
		mockRepo.On("Add", ctx, mock.AnythingOfType("*marker.Marker")).Return(addErr).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewCreateMarkerCommandHandler(mockFactory, clock)

	// Act
	_, err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, addErr)
	mockUoW.AssertNotCalled(t, "CommitWithLog", ctx)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestRenameMarkerCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewRenameMarkerCommand("user-2", 7, "cold")
	require.NoError(t, err)

	existing, err := marker.NewMarker("fragile", actor, now)
	require.NoError(t, err)
	require.NoError(t, existing.AssignID(7))

	mockRepo := new(MockMarkerRepository)
	mockUoW := new(MockMarkerUoW)
	mockFactory := new(MockMarkerUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("MarkerRepository").Return(mockRepo).Once(),
		mockRepo.On("Get", ctx, int64(7)).Return(existing, nil).Once(),
		mockRepo.On("Update", ctx, existing).Return(nil).Once(),
		mockUoW.On("CommitWithLog", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewRenameMarkerCommandHandler(mockFactory, clock)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "cold", existing.Name())
	require.NotNil(t, existing.LastModifiedByUserID())
	assert.Equal(t, "user-2", *existing.LastModifiedByUserID())
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestRenameMarkerCommandHandler_Handle_NotFound(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewRenameMarkerCommand(actor, 7, "cold")
	require.NoError(t, err)

	mockRepo := new(MockMarkerRepository)
	mockUoW := new(MockMarkerUoW)
	mockFactory := new(MockMarkerUoWFactory)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("MarkerRepository").Return(mockRepo).Once()
	mockRepo.On("Get", ctx, int64(7)).Return(nil, errs.NewObjectNotFoundError(marker.EntityType, int64(7))).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	handler := commands.NewRenameMarkerCommandHandler(mockFactory, clock)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockUoW.AssertExpectations(t)
}

func TestDeleteMarkerCommandHandler_Handle_Success(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewMarkerCommand(actor, 7)
	require.NoError(t, err)

	mockRepo := new(MockMarkerRepository)
	mockUoW := new(MockMarkerUoW)
	mockFactory := new(MockMarkerUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("MarkerRepository").Return(mockRepo).Once(),
		mockRepo.On("SoftDeleteByID", ctx, int64(7), actor).Return(nil).Once(),
		mockUoW.On("CommitWithLog", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewDeleteMarkerCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestRestoreMarkerCommandHandler_Handle_CommitError(t *testing.T) {
	// Arrange
	ctx := t.Context()
	cmd, err := commands.NewMarkerCommand(actor, 7)
	require.NoError(t, err)

	deleted, err := marker.NewMarker("fragile", actor, now)
	require.NoError(t, err)
	require.NoError(t, deleted.AssignID(7))
	require.NoError(t, deleted.MarkDeleted(actor, now))

	mockRepo := new(MockMarkerRepository)
	mockUoW := new(MockMarkerUoW)
	mockFactory := new(MockMarkerUoWFactory)

	commitErr := errors.New("commit failed")
	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("MarkerRepository").Return(mockRepo).Once(),
		mockRepo.On("GetWithDeleted", ctx, int64(7)).Return(deleted, nil).Once(),
		mockRepo.On("Undelete", ctx, deleted, actor).Return(nil).Once(),
		mockUoW.On("CommitWithLog", ctx).Return(commitErr).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	handler := commands.NewRestoreMarkerCommandHandler(mockFactory)

	// Act
	err = handler.Handle(ctx, cmd)

	// Assert
	require.ErrorIs(t, err, commitErr)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}
