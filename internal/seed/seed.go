// Package seed creates demo data for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"quill/internal/models"
	"quill/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data is generated.
type Options struct {
	Users    int
	Posts    int
	Comments int
	// MaxDays spreads created_at over a realistic time window.
	MaxDays int
	// SkipBcrypt stores a plaintext marker instead of a bcrypt hash. Only
	// useful when iterating on seed volume locally.
	SkipBcrypt bool
}

// DefaultOptions seeds a small but browsable dataset.
func DefaultOptions() Options {
	return Options{Users: 10, Posts: 30, Comments: 120, MaxDays: 90}
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	r    *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		r:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run seeds users, posts, comments and comment likes.
func (f *Factory) Run() error {
	users, err := f.createUsers(f.opts.Users)
	if err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}

	posts, err := f.createPosts(users, f.opts.Posts)
	if err != nil {
		return fmt.Errorf("seeding posts: %w", err)
	}

	if err := f.createComments(users, posts, f.opts.Comments); err != nil {
		return fmt.Errorf("seeding comments: %w", err)
	}

	log.Printf("Seeded %d users, %d posts, %d comments", len(users), len(posts), f.opts.Comments)
	return nil
}

// spreadCreatedAt returns a timestamp within the configured window.
func (f *Factory) spreadCreatedAt() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.r.Intn(maxDays)
	minsBack := f.r.Intn(24 * 60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample user. Override functions may
// modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username:       seedUsername(f.r),
		Email:          gofakeit.Email(),
		ProfilePicture: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		CreatedAt:      f.spreadCreatedAt(),
	}

	if f.opts.SkipBcrypt {
		user.Password = "password123"
	} else {
		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing seed password: %w", err)
		}
		user.Password = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}
	return user, f.db.Create(user).Error
}

func (f *Factory) createUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	// The first user doubles as the demo admin/author.
	if len(users) > 0 {
		if err := f.db.Model(users[0]).Update("is_admin", true).Error; err != nil {
			return nil, err
		}
		users[0].IsAdmin = true
	}
	return users, nil
}

// CreatePost constructs and persists a sample post attributed to author.
func (f *Factory) CreatePost(author *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	title := strings.TrimSuffix(gofakeit.Sentence(f.r.Intn(5)+3), ".")
	post := &models.Post{
		UserID:    author.ID,
		Title:     title,
		Content:   gofakeit.Paragraph(2, 4, 8, "\n\n"),
		Category:  models.PostCategories[f.r.Intn(len(models.PostCategories))],
		Image:     fmt.Sprintf("https://picsum.photos/seed/%s/1200/600", gofakeit.UUID()),
		Slug:      service.Slugify(title) + fmt.Sprintf("-%d", gofakeit.Number(100, 999)),
		CreatedAt: f.spreadCreatedAt(),
	}

	for _, override := range overrides {
		override(post)
	}
	return post, f.db.Create(post).Error
}

func (f *Factory) createPosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}
	// Posts come from the admin author, matching the app's publishing model.
	author := users[0]
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		post, err := f.CreatePost(author)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (f *Factory) createComments(users []*models.User, posts []*models.Post, n int) error {
	if len(users) == 0 || len(posts) == 0 {
		return nil
	}
	for i := 0; i < n; i++ {
		user := users[f.r.Intn(len(users))]
		post := posts[f.r.Intn(len(posts))]

		content := gofakeit.Sentence(f.r.Intn(12) + 3)
		if len(content) > models.MaxCommentLength {
			content = content[:models.MaxCommentLength]
		}

		comment := &models.Comment{
			PostID:    post.ID,
			UserID:    user.ID,
			Content:   content,
			CreatedAt: f.spreadCreatedAt(),
		}
		if err := f.db.Create(comment).Error; err != nil {
			return err
		}

		// Sprinkle likes from random users.
		for _, liker := range users {
			if f.r.Intn(4) == 0 {
				like := &models.CommentLike{UserID: liker.ID, CommentID: comment.ID}
				if err := f.db.Create(like).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// seedUsername generates a username that satisfies the signup rules.
func seedUsername(r *rand.Rand) string {
	base := strings.ToLower(gofakeit.Username())
	var b strings.Builder
	for _, c := range base {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	name := b.String()
	if len(name) > 14 {
		name = name[:14]
	}
	return fmt.Sprintf("%s%d", name, gofakeit.Number(100000, 999999))
}
