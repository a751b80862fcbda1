package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/apperror"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/storage"
	"github.com/google/uuid"
)

// Upload describes one incoming file. Kind and Visibility are optional.
type Upload struct {
	Body         io.Reader
	OriginalName string
	MimeType     string
	Kind         models.FileKind
	Visibility   models.Visibility
}

type FileService struct {
	files   repository.FileRepository
	storage storage.Storage
}

func NewFileService(files repository.FileRepository, store storage.Storage) *FileService {
	return &FileService{files: files, storage: store}
}

func (s *FileService) List(ctx context.Context, actor *auth.Identity) ([]models.File, error) {
	files, err := s.files.List(ctx, repository.FileFilter{Viewer: actor})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return files, nil
}

func (s *FileService) Get(ctx context.Context, id uuid.UUID, actor *auth.Identity) (*models.File, error) {
	file, err := s.files.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrFileNotFound, "failed to load file")
	}
	if !access.CanView(file.Visibility, file.OwnerID, actor) {
		return nil, apperror.ErrForbidden
	}
	return file, nil
}

// Upload stores the bytes first and then records them. If the record cannot
// be written the stored bytes are removed again.
func (s *FileService) Upload(ctx context.Context, in *Upload, actor *auth.Identity) (*models.File, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	obj, err := s.storage.Store(ctx, in.Body, in.OriginalName, in.MimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	file := &models.File{
		OwnerID:      actor.ID,
		Kind:         in.Kind,
		Visibility:   in.Visibility,
		OriginalName: in.OriginalName,
		MimeType:     in.MimeType,
		Size:         obj.Size,
		StorageKey:   obj.Key,
	}
	if file.Kind == "" {
		file.Kind = storage.Classify(in.MimeType)
	}
	if file.Visibility == "" {
		file.Visibility = models.VisibilityPrivate
	}

	if err := s.files.Create(ctx, file); err != nil {
		if rmErr := s.storage.Remove(context.WithoutCancel(ctx), obj.Key); rmErr != nil {
			slog.Warn("failed to remove orphaned upload", "key", obj.Key, "error", rmErr)
		}
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	slog.Info("file uploaded", "file_id", file.ID.String(), "user_id", actor.ID.String(), "size", file.Size)
	return file, nil
}

// Delete removes the record, then the bytes. A failure to remove the bytes is
// logged and not reported to the caller.
func (s *FileService) Delete(ctx context.Context, id uuid.UUID, actor *auth.Identity) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	file, err := s.files.FindByID(ctx, id)
	if err != nil {
		return notFound(err, ErrFileNotFound, "failed to load file")
	}
	if !access.CanModifyOwned(file.OwnerID, actor) {
		return apperror.ErrForbidden
	}

	if err := s.files.Delete(ctx, id); err != nil {
		return notFound(err, ErrFileNotFound, "failed to delete file")
	}
	if err := s.storage.Remove(context.WithoutCancel(ctx), file.StorageKey); err != nil {
		slog.Warn("failed to remove file bytes", "file_id", id.String(), "key", file.StorageKey, "error", err)
	}
	return nil
}

// Open returns the file record and a reader over its bytes.
func (s *FileService) Open(ctx context.Context, id uuid.UUID, actor *auth.Identity) (*models.File, io.ReadCloser, error) {
	file, err := s.Get(ctx, id, actor)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.storage.Open(ctx, file.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrFileNotFound
		}
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, rc, nil
}
