package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultService(t *testing.T) *Service {
	t.Helper()
	store, err := NewStore(Default())
	require.NoError(t, err)
	return NewService(store)
}

func TestService_ByAuthor(t *testing.T) {
	svc := newDefaultService(t)
	ctx := context.Background()

	got, err := svc.ByAuthor(ctx, "Jane Austen")
	require.NoError(t, err)
	assert.Equal(t, []string{"8"}, got.ISBNs())

	_, err = svc.ByAuthor(ctx, "Nobody")
	assert.ErrorIs(t, err, ErrNoAuthorMatch)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ByTitle(t *testing.T) {
	svc := newDefaultService(t)
	ctx := context.Background()

	got, err := svc.ByTitle(ctx, "The Divine Comedy")
	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, got.ISBNs())

	_, err = svc.ByTitle(ctx, "the divine comedy")
	assert.True(t, errors.Is(err, ErrNoTitleMatch))
}

func TestService_ByISBN(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := NewMockRepository(ctrl)
	svc := NewService(mockRepo)

	mockRepo.EXPECT().Lookup("5").Return(Book{Author: "Unknown", Title: "The Book Of Job"}, true)
	mockRepo.EXPECT().Lookup("50").Return(Book{}, false)

	b, err := svc.ByISBN(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, "The Book Of Job", b.Title)

	_, err = svc.ByISBN(context.Background(), "50")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_All(t *testing.T) {
	svc := newDefaultService(t)

	all, err := svc.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 10)

	empty, err := NewStore(nil)
	require.NoError(t, err)
	none, err := NewService(empty).All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestService_Reviews(t *testing.T) {
	svc := newDefaultService(t)

	reviews, err := svc.Reviews(context.Background(), "1")
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)

	_, err = svc.Reviews(context.Background(), "11")
	assert.ErrorIs(t, err, ErrNotFound)
}
