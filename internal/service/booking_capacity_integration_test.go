package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sportsevents/sports-events-api/internal/db"
	"github.com/sportsevents/sports-events-api/internal/model"
	"github.com/sportsevents/sports-events-api/internal/repository"
	"github.com/sportsevents/sports-events-api/internal/tracing"
)

// startPostgres runs a throwaway Postgres container and returns a connected
// gorm handle plus a teardown function.
func startPostgres(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not reachable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15",
		Env: []string{
			"POSTGRES_USER=user",
			"POSTGRES_PASSWORD=password",
			"POSTGRES_DB=test_db",
		},
		ExposedPorts: []string{"5432"},
	}, func(conf *docker.HostConfig) {
		conf.AutoRemove = true
	})
	require.NoError(t, err, "could not start postgres container")

	var gdb *gorm.DB
	dsn := fmt.Sprintf(
		"host=localhost port=%s user=user password=password dbname=test_db sslmode=disable",
		resource.GetPort("5432/tcp"),
	)
	err = pool.Retry(func() error {
		var openErr error
		gdb, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if openErr != nil {
			return openErr
		}
		sqlDB, pingErr := gdb.DB()
		if pingErr != nil {
			return pingErr
		}
		return sqlDB.Ping()
	})
	require.NoError(t, err, "could not connect to postgres container")

	cleanup := func() {
		if sqlDB, dbErr := gdb.DB(); dbErr == nil {
			sqlDB.Close()
		}
		if purgeErr := pool.Purge(resource); purgeErr != nil {
			t.Logf("could not purge resource: %v", purgeErr)
		}
	}
	return gdb, cleanup
}

// TestCreateBookingCapacityUnderConcurrency fills an event with a hard
// participant limit from many goroutines at once and checks that the limit
// holds: with capacity N and N+1 racing bookings, exactly N are confirmed.
func TestCreateBookingCapacityUnderConcurrency(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	gdb, cleanup := startPostgres(t)
	defer cleanup()

	require.NoError(t, db.Migrate(gdb))

	const capacity = 5

	category := model.Category{Name: "Running", Description: "Road and trail running"}
	require.NoError(t, gdb.Create(&category).Error)

	venue := model.Venue{Name: "City Stadium", Address: "1 Stadium Way", City: "Springfield"}
	require.NoError(t, gdb.Create(&venue).Error)

	maxParticipants := capacity
	price := 25.0
	event := model.Event{
		Title:                 "Spring 10K",
		EventDate:             testNow.AddDate(0, 1, 0),
		RegistrationStartDate: testNow.AddDate(0, -1, 0),
		RegistrationEndDate:   testNow.AddDate(0, 2, 0),
		MaxParticipants:       &maxParticipants,
		Price:                 &price,
		EventType:             model.EventTypeRunning,
		Status:                model.EventStatusActive,
		CategoryID:            category.ID,
		VenueID:               venue.ID,
	}
	require.NoError(t, gdb.Create(&event).Error)

	users := make([]model.User, capacity+1)
	for i := range users {
		users[i] = model.User{
			FirstName: "Runner",
			LastName:  fmt.Sprintf("Number%d", i),
			Email:     fmt.Sprintf("runner%d@example.com", i),
		}
		require.NoError(t, gdb.Create(&users[i]).Error)
	}

	svc := NewBookingService(
		gdb,
		repository.NewBookingRepository(gdb),
		repository.NewUserRepository(gdb),
		tracing.NewNoopTracer(),
	)
	bs, ok := svc.(*bookingService)
	require.True(t, ok)
	bs.nowFn = func() time.Time { return testNow }

	errs := make([]error, len(users))
	var wg sync.WaitGroup
	for i := range users {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CreateBooking(context.Background(), CreateBookingInput{
				UserID:  users[i].ID,
				EventID: event.ID,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, ErrCapacityExceeded)
	}
	require.Equal(t, capacity, succeeded)

	var confirmed int64
	require.NoError(t, gdb.Model(&model.Booking{}).
		Where("event_id = ? AND booking_status = ?", event.ID, model.BookingStatusConfirmed).
		Count(&confirmed).Error)
	require.Equal(t, int64(capacity), confirmed)
}
