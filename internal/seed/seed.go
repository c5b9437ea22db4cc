package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"yatube/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumGroups   int
	NumPosts    int
	NumComments int
	ShouldClean bool
}

// Seed populates the database with demo users, groups, posts, comments and
// a random subscription mesh.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users, %d groups and %d posts...",
		opts.NumUsers, opts.NumGroups, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory := NewFactory(db, SeedOptions{})
	//nolint:gosec // Weak random number generator is fine for seeding
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	groups := make([]*models.Group, 0, opts.NumGroups)
	for i := 0; i < opts.NumGroups; i++ {
		group, err := factory.CreateGroup()
		if err != nil {
			return fmt.Errorf("failed to create group: %w", err)
		}
		groups = append(groups, group)
	}
	log.Printf("✓ %d groups created", len(groups))

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[r.Intn(len(users))]
		// Leave roughly a third of the posts ungrouped.
		var group *models.Group
		if len(groups) > 0 && r.Float32() < 0.66 {
			group = groups[r.Intn(len(groups))]
		}
		post, err := factory.CreatePost(author, group)
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, post)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d posts...", i)
		}
	}
	log.Printf("✓ %d posts created", len(posts))

	numComments := opts.NumComments
	if numComments == 0 {
		numComments = opts.NumPosts * 2
	}
	for i := 0; i < numComments && len(posts) > 0; i++ {
		author := users[r.Intn(len(users))]
		post := posts[r.Intn(len(posts))]
		if _, err := factory.CreateComment(author, post); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
	}
	log.Printf("✓ %d comments created", numComments)

	edges, err := createFollowMesh(factory, users, r)
	if err != nil {
		return fmt.Errorf("failed to create subscriptions: %w", err)
	}
	log.Printf("✓ %d subscriptions created", edges)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE follows, comments, posts, groups, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a few well-known accounts for local logins.
	if count >= 3 {
		for _, name := range []string{"leo", "editor", "test"} {
			username := name
			user, err := factory.CreateUser(func(u *models.User) {
				u.Username = username
				u.Email = fmt.Sprintf("%s@example.com", username)
			})
			if err == nil {
				users = append(users, user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

// createFollowMesh gives each user a handful of random subscriptions.
func createFollowMesh(factory *Factory, users []*models.User, r *rand.Rand) (int, error) {
	if len(users) < 2 {
		return 0, nil
	}
	edges := 0
	for _, user := range users {
		for n := r.Intn(4); n > 0; n-- {
			author := users[r.Intn(len(users))]
			if author.ID == user.ID {
				continue
			}
			if err := factory.CreateFollow(user, author); err != nil {
				return edges, err
			}
			edges++
		}
	}
	return edges, nil
}
