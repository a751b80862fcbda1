package models

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type Visibility string

const (
	VisibilityPublic  Visibility = "PUBLIC"
	VisibilityPrivate Visibility = "PRIVATE"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "DRAFT"
	PostStatusPublished PostStatus = "PUBLISHED"
	PostStatusArchived  PostStatus = "ARCHIVED"
)

type FileKind string

const (
	FileKindImage    FileKind = "IMAGE"
	FileKindDocument FileKind = "DOCUMENT"
	FileKindOther    FileKind = "OTHER"
)

// PostSort orders post listings.
type PostSort string

const (
	SortCreatedAtDesc   PostSort = "CREATED_AT_DESC"
	SortCreatedAtAsc    PostSort = "CREATED_AT_ASC"
	SortPublishedAtDesc PostSort = "PUBLISHED_AT_DESC"
	SortPublishedAtAsc  PostSort = "PUBLISHED_AT_ASC"
)
