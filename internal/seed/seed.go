// Package seed creates demo data for development databases. It is not used
// by the server at runtime.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"critiq/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

var categories = []models.Category{
	{Name: "Movies", Slug: "movies"},
	{Name: "Books", Slug: "books"},
	{Name: "Music", Slug: "music"},
}

var genres = []models.Genre{
	{Name: "Drama", Slug: "drama"},
	{Name: "Comedy", Slug: "comedy"},
	{Name: "Sci-Fi", Slug: "sci-fi"},
	{Name: "Thriller", Slug: "thriller"},
	{Name: "Fantasy", Slug: "fantasy"},
	{Name: "Documentary", Slug: "documentary"},
}

// Seeder populates the database with fake taxonomy, titles, users, reviews
// and comments.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll truncates every domain table. Order follows the foreign keys.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"comments", "reviews", "title_genres", "titles", "genres", "categories", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// Run seeds the full dataset: taxonomy, numUsers users and numTitles titles
// with a spread of reviews and comments.
func (s *Seeder) Run(numUsers, numTitles int) error {
	if err := s.db.Create(&categories).Error; err != nil {
		return fmt.Errorf("seeding categories: %w", err)
	}
	if err := s.db.Create(&genres).Error; err != nil {
		return fmt.Errorf("seeding genres: %w", err)
	}

	users, err := s.seedUsers(numUsers)
	if err != nil {
		return err
	}
	titles, err := s.seedTitles(numTitles)
	if err != nil {
		return err
	}
	return s.seedReviews(users, titles)
}

func (s *Seeder) seedUsers(n int) ([]models.User, error) {
	users := make([]models.User, 0, n+1)

	// A predictable admin account for local testing.
	users = append(users, models.User{
		Username: "admin",
		Email:    "admin@critiq.local",
		Role:     models.RoleAdmin,
		Confirmed: true,
	})

	for i := 0; i < n; i++ {
		role := models.RoleUser
		if i%10 == 9 {
			role = models.RoleModerator
		}
		username := strings.ToLower(gofakeit.Username())
		users = append(users, models.User{
			Username:  fmt.Sprintf("%s%d", username, i),
			Email:     fmt.Sprintf("%s%d@%s", username, i, gofakeit.DomainName()),
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Bio:       gofakeit.Sentence(8),
			Role:      role,
			Confirmed: true,
		})
	}

	if err := s.db.Create(&users).Error; err != nil {
		return nil, fmt.Errorf("seeding users: %w", err)
	}
	log.Printf("seeded %d users", len(users))
	return users, nil
}

func (s *Seeder) seedTitles(n int) ([]models.Title, error) {
	titles := make([]models.Title, 0, n)
	currentYear := time.Now().Year()

	for i := 0; i < n; i++ {
		desc := gofakeit.Paragraph(1, 2, 8, " ")
		category := categories[s.rng.Intn(len(categories))]
		picked := s.pickGenres()

		titles = append(titles, models.Title{
			Name:        gofakeit.MovieName(),
			Year:        currentYear - s.rng.Intn(60),
			Description: &desc,
			CategoryID:  &category.ID,
			Genres:      picked,
		})
	}

	if err := s.db.Create(&titles).Error; err != nil {
		return nil, fmt.Errorf("seeding titles: %w", err)
	}
	log.Printf("seeded %d titles", len(titles))
	return titles, nil
}

func (s *Seeder) pickGenres() []models.Genre {
	count := 1 + s.rng.Intn(3)
	picked := make([]models.Genre, 0, count)
	seen := map[uint]bool{}
	for len(picked) < count {
		g := genres[s.rng.Intn(len(genres))]
		if !seen[g.ID] {
			seen[g.ID] = true
			picked = append(picked, g)
		}
	}
	return picked
}

func (s *Seeder) seedReviews(users []models.User, titles []models.Title) error {
	var reviews, comments int
	for _, title := range titles {
		// Each reviewer at most once per title.
		s.rng.Shuffle(len(users), func(i, j int) { users[i], users[j] = users[j], users[i] })
		for _, user := range users[:s.rng.Intn(len(users)/2+1)] {
			review := models.Review{
				TitleID:  title.ID,
				AuthorID: user.ID,
				Text:     gofakeit.Paragraph(1, 2, 10, " "),
				Score:    1 + s.rng.Intn(10),
			}
			if err := s.db.Create(&review).Error; err != nil {
				return fmt.Errorf("seeding review: %w", err)
			}
			reviews++

			for i := 0; i < s.rng.Intn(3); i++ {
				commenter := users[s.rng.Intn(len(users))]
				comment := models.Comment{
					ReviewID: review.ID,
					AuthorID: commenter.ID,
					Text:     gofakeit.Sentence(12),
				}
				if err := s.db.Create(&comment).Error; err != nil {
					return fmt.Errorf("seeding comment: %w", err)
				}
				comments++
			}
		}
	}
	log.Printf("seeded %d reviews, %d comments", reviews, comments)
	return nil
}
