package models

import (
	"errors"
	"time"

	"github.com/hollowlog/burrow/internal/snowflake"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// A Post is a single piece of content published by an actor. It may be a
// reply to another post, or quote one. A reply link is only ever established
// to a post that already exists locally; an unknown parent leaves the post
// unthreaded.
type Post struct {
	ID          snowflake.ID `gorm:"primarykey;autoIncrement:false"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime:false"`
	URI         string       `gorm:"uniqueIndex;size:128;not null"`
	ActorID     snowflake.ID
	Actor       *Actor   `gorm:"constraint:OnDelete:CASCADE;<-:false;"` // don't update actor on post update
	Type        PostType `gorm:"default:'Note';not null"`
	Title       string   `gorm:"size:128"` // Article and Page only
	Content     string   `gorm:"type:text"`
	Sensitive   bool     `gorm:"not null;default:false"`
	URL         string   `gorm:"size:128"`
	InReplyToID *snowflake.ID
	QuoteOfID   *snowflake.ID
	AddressedTo []PostAddress `gorm:"constraint:OnDelete:CASCADE;"`
}

// A PostAddress is a destination URI the post declared itself delivered to,
// eg. a community. The destination's host decides moderation authority over
// the post.
type PostAddress struct {
	PostID snowflake.ID `gorm:"primarykey;autoIncrement:false"`
	URI    string       `gorm:"primarykey;size:128"`
}

type PostType string

func (PostType) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql", "postgres":
		return "enum('Note', 'Article', 'Page')"
	case "sqlite":
		return "TEXT"
	default:
		return ""
	}
}

func (p *Post) AfterCreate(tx *gorm.DB) error {
	return forEach(tx, p.updatePostsCount)
}

// updatePostsCount updates the posts_count and last_post_at fields on the actor.
func (p *Post) updatePostsCount(tx *gorm.DB) error {
	postsCount := tx.Select("COUNT(id)").Where("actor_id = ?", p.ActorID).Table("posts")
	actor := &Actor{ID: p.ActorID}
	return tx.Model(actor).UpdateColumns(map[string]interface{}{
		"posts_count":  postsCount,
		"last_post_at": p.ID.ToTime(),
	}).Error
}

type Posts struct {
	db *gorm.DB
}

func NewPosts(db *gorm.DB) *Posts {
	return &Posts{db: db}
}

// FindByURI returns a post by its URI if it exists locally.
func (p *Posts) FindByURI(uri string) (*Post, error) {
	if uri == "" {
		return nil, errors.New("Posts.FindByURI: uri is empty")
	}
	// use find to avoid the not found error on empty result
	var posts []Post
	query := p.db.Preload("Actor").Preload("AddressedTo")
	if err := query.Where("uri = ?", uri).Find(&posts).Error; err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &posts[0], nil
}

func (p *Posts) FindByID(id snowflake.ID) (*Post, error) {
	var post Post
	query := p.db.Preload("Actor").Preload("AddressedTo")
	if err := query.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Create stores the post if no post with its URI exists yet. Redelivery of
// the same Create is a no-op; the first write wins and is returned.
func (p *Posts) Create(post *Post) (*Post, error) {
	existing, err := p.FindByURI(post.URI)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err := p.db.Create(post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return p.FindByURI(post.URI)
		}
		return nil, err
	}
	return post, nil
}

// Update overwrites the mutable fields of the post, content, the sensitive
// flag and url. Everything else, the author and thread links in particular,
// is fixed at creation.
func (p *Posts) Update(post *Post, content string, sensitive bool, url string) error {
	return p.db.Model(post).Select("content", "sensitive", "url", "updated_at").Updates(Post{
		Content:   content,
		Sensitive: sensitive,
		URL:       url,
		UpdatedAt: time.Now(),
	}).Error
}

// Delete removes the post. Deleting an already absent post is not an error.
func (p *Posts) Delete(post *Post) error {
	return p.db.Delete(post).Error
}
