package cmd

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/sportsevents/sports-events-api/config"
	"github.com/sportsevents/sports-events-api/internal/db"
	"github.com/sportsevents/sports-events-api/internal/model"
)

var (
	seedVenues int
	seedEvents int
	seedUsers  int
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Populate the database with sport categories and generated venues, events and users for local development`,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedVenues, "venues", 10, "number of venues to generate")
	seedCmd.Flags().IntVar(&seedEvents, "events", 30, "number of events to generate")
	seedCmd.Flags().IntVar(&seedUsers, "users", 50, "number of users to generate")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return err
	}

	gdb, err := db.Connect(cfg.DB)
	if err != nil {
		return err
	}

	if err := db.Migrate(gdb); err != nil {
		return err
	}

	return gdb.Transaction(func(tx *gorm.DB) error {
		categories, err := seedCategories(tx)
		if err != nil {
			return err
		}

		venues := make([]model.Venue, 0, seedVenues)
		for i := 0; i < seedVenues; i++ {
			capacity := gofakeit.Number(100, 20000)
			lat := gofakeit.Latitude()
			lon := gofakeit.Longitude()
			venues = append(venues, model.Venue{
				Name:        fmt.Sprintf("%s %s", gofakeit.City(), gofakeit.RandomString([]string{"Arena", "Stadium", "Sports Complex", "Field", "Track"})),
				Address:     gofakeit.Street(),
				City:        gofakeit.City(),
				State:       gofakeit.State(),
				PostalCode:  gofakeit.Zip(),
				Country:     gofakeit.Country(),
				Latitude:    &lat,
				Longitude:   &lon,
				Capacity:    &capacity,
				Description: gofakeit.Sentence(10),
			})
		}
		if err := tx.Create(&venues).Error; err != nil {
			return err
		}

		now := time.Now()
		events := make([]model.Event, 0, seedEvents)
		for i := 0; i < seedEvents; i++ {
			eventDate := now.AddDate(0, 0, gofakeit.Number(7, 120))
			maxParticipants := gofakeit.Number(20, 500)
			price := gofakeit.Price(5, 150)
			difficulty := model.DifficultyLevel(gofakeit.RandomString([]string{
				string(model.DifficultyBeginner), string(model.DifficultyIntermediate),
				string(model.DifficultyAdvanced), string(model.DifficultyExpert),
			}))
			events = append(events, model.Event{
				Title:                 gofakeit.Sentence(4),
				Description:           gofakeit.Paragraph(1, 3, 12, " "),
				EventDate:             eventDate,
				RegistrationStartDate: now.AddDate(0, 0, -7),
				RegistrationEndDate:   eventDate.AddDate(0, 0, -1),
				MaxParticipants:       &maxParticipants,
				Price:                 &price,
				EventType: model.EventType(gofakeit.RandomString([]string{
					string(model.EventTypeRunning), string(model.EventTypeCycling),
					string(model.EventTypeSwimming), string(model.EventTypeFootball),
					string(model.EventTypeMarathon), string(model.EventTypeTriathlon),
				})),
				DifficultyLevel: &difficulty,
				Status:          model.EventStatusActive,
				CategoryID:      categories[gofakeit.Number(0, len(categories)-1)].ID,
				VenueID:         venues[gofakeit.Number(0, len(venues)-1)].ID,
			})
		}
		if err := tx.Create(&events).Error; err != nil {
			return err
		}

		users := make([]model.User, 0, seedUsers)
		for i := 0; i < seedUsers; i++ {
			users = append(users, model.User{
				FirstName:   gofakeit.FirstName(),
				LastName:    gofakeit.LastName(),
				Email:       gofakeit.Email(),
				PhoneNumber: gofakeit.Phone(),
				City:        gofakeit.City(),
				State:       gofakeit.State(),
			})
		}
		if err := tx.Create(&users).Error; err != nil {
			return err
		}

		log.Info().
			Int("categories", len(categories)).
			Int("venues", len(venues)).
			Int("events", len(events)).
			Int("users", len(users)).
			Msg("Database seeded")
		return nil
	})
}

// seedCategories creates one category per supported sport, skipping any
// that already exist
func seedCategories(tx *gorm.DB) ([]model.Category, error) {
	names := []string{
		"Running", "Cycling", "Swimming", "Football", "Basketball",
		"Tennis", "Cricket", "Volleyball", "Badminton", "Table Tennis",
		"Athletics", "Marathon", "Triathlon",
	}

	categories := make([]model.Category, 0, len(names))
	for _, name := range names {
		category := model.Category{Name: name, Description: gofakeit.Sentence(8)}
		err := tx.Where("name = ?", name).FirstOrCreate(&category).Error
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}
