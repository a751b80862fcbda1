package services

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func (s *serviceSuite) TestUploadClassifiesAndMeasures() {
	body := strings.Repeat("a", 4096)
	file := s.upload("diagram.PNG", "image/png", body, "", s.alice)

	s.Equal(models.FileKindImage, file.Kind)
	s.Equal(models.VisibilityPrivate, file.Visibility)
	s.Equal(int64(len(body)), file.Size)
	s.Equal(s.alice.ID, file.OwnerID)
	s.True(strings.HasSuffix(file.StorageKey, ".PNG"))
	s.NotContains(file.StorageKey, "diagram")

	_, rc, err := s.files.Open(s.ctx, file.ID, s.alice)
	s.Require().NoError(err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	s.Require().NoError(err)
	s.Equal(body, string(got))
}

func (s *serviceSuite) TestUploadKindOverride() {
	doc := s.upload("report.pdf", "application/pdf", "%PDF", models.VisibilityPublic, s.alice)
	s.Equal(models.FileKindDocument, doc.Kind)

	file, err := s.files.Upload(s.ctx, &Upload{
		Body:         strings.NewReader("x"),
		OriginalName: "photo.jpg",
		MimeType:     "image/jpeg",
		Kind:         models.FileKindOther,
	}, s.alice)
	s.Require().NoError(err)
	s.Equal(models.FileKindOther, file.Kind)
}

func (s *serviceSuite) TestUploadRequiresIdentity() {
	_, err := s.files.Upload(s.ctx, &Upload{Body: strings.NewReader("x"), OriginalName: "a.txt", MimeType: "text/plain"}, nil)
	s.ErrorIs(err, apperror.ErrUnauthorized)
}

func (s *serviceSuite) TestFileVisibility() {
	public := s.upload("pub.txt", "text/plain", "pub", models.VisibilityPublic, s.alice)
	private := s.upload("priv.txt", "text/plain", "priv", models.VisibilityPrivate, s.alice)

	anon, err := s.files.List(s.ctx, nil)
	s.Require().NoError(err)
	s.Require().Len(anon, 1)
	s.Equal(public.ID, anon[0].ID)

	mine, err := s.files.List(s.ctx, s.alice)
	s.Require().NoError(err)
	s.Len(mine, 2)

	_, err = s.files.Get(s.ctx, private.ID, nil)
	s.ErrorIs(err, apperror.ErrForbidden)
	_, err = s.files.Get(s.ctx, private.ID, s.bob)
	s.ErrorIs(err, apperror.ErrForbidden)
	_, err = s.files.Get(s.ctx, private.ID, s.admin)
	s.NoError(err)
}

func (s *serviceSuite) TestDeleteFileRemovesRecordAndBytes() {
	file := s.upload("gone.txt", "text/plain", "bye", models.VisibilityPublic, s.alice)

	s.ErrorIs(s.files.Delete(s.ctx, file.ID, s.bob), apperror.ErrForbidden)
	s.Require().NoError(s.files.Delete(s.ctx, file.ID, s.alice))

	_, err := s.files.Get(s.ctx, file.ID, s.alice)
	s.ErrorIs(err, ErrFileNotFound)
	_, err = s.store.Open(s.ctx, file.StorageKey)
	s.ErrorIs(err, storage.ErrNotFound)

	s.ErrorIs(s.files.Delete(s.ctx, uuid.New(), s.alice), ErrFileNotFound)
}

func (s *serviceSuite) TestDeleteFileSwallowsMissingBytes() {
	file := s.upload("vanished.txt", "text/plain", "x", models.VisibilityPublic, s.alice)
	s.Require().NoError(s.store.Remove(s.ctx, file.StorageKey))

	s.NoError(s.files.Delete(s.ctx, file.ID, s.admin))
}

// failingFiles refuses every insert.
type failingFiles struct {
	repository.FileRepository
}

func (failingFiles) Create(context.Context, *models.File) error {
	return errors.New("insert failed")
}

func (s *serviceSuite) TestUploadRemovesBytesWhenRecordFails() {
	dir := s.T().TempDir()
	svc := NewFileService(failingFiles{s.repos.Files}, storage.NewLocal(dir))

	_, err := svc.Upload(s.ctx, &Upload{Body: strings.NewReader("x"), OriginalName: "a.txt", MimeType: "text/plain"},
		&auth.Identity{ID: s.alice.ID, Role: models.RoleUser})
	s.Require().Error(err)

	entries, err := os.ReadDir(dir)
	s.Require().NoError(err)
	s.Empty(entries, "no orphaned bytes in %s", filepath.Base(dir))
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Store(ctx context.Context, r io.Reader, originalName, mimeType string) (*storage.Object, error) {
	args := m.Called(ctx, r, originalName, mimeType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Object), args.Error(1)
}

func (m *mockStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *mockStorage) Remove(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (s *serviceSuite) TestDeleteFileSucceedsWhenBytesCannotBeRemoved() {
	store := new(mockStorage)
	store.On("Store", mock.Anything, mock.Anything, "a.txt", "text/plain").
		Return(&storage.Object{Key: "k.txt", Size: 1}, nil)
	store.On("Remove", mock.Anything, "k.txt").Return(errors.New("bucket unavailable"))
	svc := NewFileService(s.repos.Files, store)

	file, err := svc.Upload(s.ctx, &Upload{Body: strings.NewReader("x"), OriginalName: "a.txt", MimeType: "text/plain"}, s.alice)
	s.Require().NoError(err)

	s.NoError(svc.Delete(s.ctx, file.ID, s.alice))
	_, err = svc.Get(s.ctx, file.ID, s.alice)
	s.ErrorIs(err, ErrFileNotFound)
	store.AssertExpectations(s.T())
}

func (s *serviceSuite) TestUploadStorageFailure() {
	store := new(mockStorage)
	store.On("Store", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))
	svc := NewFileService(s.repos.Files, store)

	_, err := svc.Upload(s.ctx, &Upload{Body: strings.NewReader("x"), OriginalName: "a.txt", MimeType: "text/plain"}, s.alice)
	s.ErrorContains(err, "disk full")
	store.AssertNotCalled(s.T(), "Remove", mock.Anything, mock.Anything)
}
