// Package memrepo implements the repositories in process memory. It backs
// `serve --in-memory` and the service and HTTP tests.
package memrepo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/access"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/repository"
	"github.com/google/uuid"
)

type postImageKey struct {
	postID, fileID uuid.UUID
}

// Store holds every table. Rows are copied in and out so callers never share memory with it.
type Store struct {
	mu         sync.RWMutex
	seq        int64
	order      map[uuid.UUID]int64
	users      map[uuid.UUID]models.User
	posts      map[uuid.UUID]models.Post
	postCats   map[uuid.UUID][]uuid.UUID
	categories map[uuid.UUID]models.Category
	files      map[uuid.UUID]models.File
	images     map[postImageKey]models.PostImage
	now        func() time.Time
}

func New() *Store {
	return &Store{
		order:      make(map[uuid.UUID]int64),
		users:      make(map[uuid.UUID]models.User),
		posts:      make(map[uuid.UUID]models.Post),
		postCats:   make(map[uuid.UUID][]uuid.UUID),
		categories: make(map[uuid.UUID]models.Category),
		files:      make(map[uuid.UUID]models.File),
		images:     make(map[postImageKey]models.PostImage),
		now:        time.Now,
	}
}

// Repositories exposes the store through the repository interfaces.
func (s *Store) Repositories() repository.Repositories {
	return repository.Repositories{
		Users:      (*users)(s),
		Posts:      (*posts)(s),
		Categories: (*categories)(s),
		Files:      (*files)(s),
		PostImages: (*postImages)(s),
	}
}

// stamp must be called with the write lock held.
func (s *Store) stamp(id *uuid.UUID, createdAt, updatedAt *time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	now := s.now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
	s.seq++
	s.order[*id] = s.seq
}

type users Store

func (r *users) Create(_ context.Context, user *models.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) || u.ID == user.ID {
			return repository.ErrDuplicate
		}
	}
	s.stamp(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	s.users[user.ID] = *user
	return nil
}

func (r *users) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *users) List(_ context.Context, filter repository.UserFilter) ([]models.User, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		if filter.IsActive != nil && u.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool { return s.order[out[i].ID] > s.order[out[j].ID] })
	return out, nil
}

func (r *users) Update(_ context.Context, user *models.User) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	user.UpdatedAt = s.now()
	s.users[user.ID] = *user
	return nil
}

type posts Store

func (r *posts) Create(_ context.Context, post *models.Post) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.posts {
		if p.Slug == post.Slug {
			return repository.ErrDuplicate
		}
	}
	catIDs := post.CategoryIDs()
	for _, id := range catIDs {
		if _, ok := s.categories[id]; !ok {
			return repository.ErrNotFound
		}
	}
	s.stamp(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	s.postCats[post.ID] = catIDs
	s.posts[post.ID] = *post
	return nil
}

// withCategories must be called with a lock held.
func (s *Store) withCategories(p models.Post) models.Post {
	p.Categories = make([]models.Category, 0, len(s.postCats[p.ID]))
	for _, id := range s.postCats[p.ID] {
		if c, ok := s.categories[id]; ok {
			p.Categories = append(p.Categories, c)
		}
	}
	return p
}

func (r *posts) FindByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p = s.withCategories(p)
	return &p, nil
}

func (r *posts) FindBySlug(_ context.Context, slug string) (*models.Post, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.posts {
		if p.Slug == slug {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *posts) List(_ context.Context, f repository.PostFilter) ([]models.Post, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(f.Search)
	out := make([]models.Post, 0)
	for _, p := range s.posts {
		if !access.CanView(p.Visibility, p.AuthorID, f.Viewer) {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.Visibility != "" && p.Visibility != f.Visibility {
			continue
		}
		if f.AuthorID != nil && p.AuthorID != *f.AuthorID {
			continue
		}
		if f.CategoryID != nil && !containsID(s.postCats[p.ID], *f.CategoryID) {
			continue
		}
		if search != "" && !matches(p, search) {
			continue
		}
		out = append(out, s.withCategories(p))
	}

	sort.SliceStable(out, func(i, j int) bool { return s.less(out[i], out[j], f.Sort) })

	skip, take := repository.Page(f.Skip, f.Take)
	if skip >= len(out) {
		return []models.Post{}, nil
	}
	out = out[skip:]
	if take < len(out) {
		out = out[:take]
	}
	return out, nil
}

func (s *Store) less(a, b models.Post, order models.PostSort) bool {
	created := func(asc bool) bool {
		if asc {
			return s.order[a.ID] < s.order[b.ID]
		}
		return s.order[a.ID] > s.order[b.ID]
	}
	published := func(asc bool) bool {
		switch {
		case a.PublishedAt == nil && b.PublishedAt == nil:
			return created(asc)
		case a.PublishedAt == nil:
			return false
		case b.PublishedAt == nil:
			return true
		case a.PublishedAt.Equal(*b.PublishedAt):
			return created(asc)
		case asc:
			return a.PublishedAt.Before(*b.PublishedAt)
		default:
			return a.PublishedAt.After(*b.PublishedAt)
		}
	}

	switch order {
	case models.SortCreatedAtAsc:
		return created(true)
	case models.SortPublishedAtDesc:
		return published(false)
	case models.SortPublishedAtAsc:
		return published(true)
	default:
		return created(false)
	}
}

func matches(p models.Post, search string) bool {
	if strings.Contains(strings.ToLower(p.Title), search) {
		return true
	}
	return p.Summary != nil && strings.Contains(strings.ToLower(*p.Summary), search)
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (r *posts) Update(_ context.Context, post *models.Post) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[post.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, p := range s.posts {
		if id != post.ID && p.Slug == post.Slug {
			return repository.ErrDuplicate
		}
	}
	post.UpdatedAt = s.now()
	stored := *post
	stored.Categories = nil
	s.posts[post.ID] = stored
	return nil
}

func (r *posts) Delete(_ context.Context, id uuid.UUID) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return repository.ErrNotFound
	}
	for key := range s.images {
		if key.postID == id {
			delete(s.images, key)
		}
	}
	delete(s.postCats, id)
	delete(s.posts, id)
	return nil
}

type categories Store

func (r *categories) Create(_ context.Context, category *models.Category) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.categories {
		if c.Slug == category.Slug {
			return repository.ErrDuplicate
		}
	}
	s.stamp(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	s.categories[category.ID] = *category
	return nil
}

func (r *categories) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

func (r *categories) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *categories) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.Category, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Category
	for _, id := range ids {
		if c, ok := s.categories[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *categories) List(_ context.Context) ([]models.Category, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *categories) Delete(_ context.Context, id uuid.UUID) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return repository.ErrNotFound
	}
	for postID, ids := range s.postCats {
		kept := ids[:0]
		for _, cid := range ids {
			if cid != id {
				kept = append(kept, cid)
			}
		}
		s.postCats[postID] = kept
	}
	delete(s.categories, id)
	return nil
}

type files Store

func (r *files) Create(_ context.Context, file *models.File) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stamp(&file.ID, &file.CreatedAt, &file.UpdatedAt)
	s.files[file.ID] = *file
	return nil
}

func (r *files) FindByID(_ context.Context, id uuid.UUID) (*models.File, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &f, nil
}

func (r *files) List(_ context.Context, filter repository.FileFilter) ([]models.File, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.File, 0)
	for _, f := range s.files {
		if access.CanView(f.Visibility, f.OwnerID, filter.Viewer) {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return s.order[out[i].ID] > s.order[out[j].ID] })
	return out, nil
}

func (r *files) Delete(_ context.Context, id uuid.UUID) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[id]; !ok {
		return repository.ErrNotFound
	}
	for key := range s.images {
		if key.fileID == id {
			delete(s.images, key)
		}
	}
	for postID, p := range s.posts {
		if p.CoverFileID != nil && *p.CoverFileID == id {
			p.CoverFileID = nil
			s.posts[postID] = p
		}
	}
	delete(s.files, id)
	return nil
}

type postImages Store

func (r *postImages) Upsert(_ context.Context, image *models.PostImage) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	key := postImageKey{postID: image.PostID, fileID: image.FileID}
	now := s.now()
	if existing, ok := s.images[key]; ok {
		image.CreatedAt = existing.CreatedAt
	} else {
		image.CreatedAt = now
	}
	image.UpdatedAt = now
	s.images[key] = *image
	return nil
}

func (r *postImages) Delete(_ context.Context, postID, fileID uuid.UUID) error {
	s := (*Store)(r)
	s.mu.Lock()
	defer s.mu.Unlock()

	key := postImageKey{postID: postID, fileID: fileID}
	if _, ok := s.images[key]; !ok {
		return repository.ErrNotFound
	}
	delete(s.images, key)
	return nil
}

func (r *postImages) ListByPost(_ context.Context, postID uuid.UUID) ([]models.PostImage, error) {
	s := (*Store)(r)
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.PostImage, 0)
	for key, img := range s.images {
		if key.postID == postID {
			out = append(out, img)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Sort != out[j].Sort {
			return out[i].Sort < out[j].Sort
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
