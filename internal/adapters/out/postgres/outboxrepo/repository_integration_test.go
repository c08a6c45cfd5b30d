package outboxrepo_test

import (
	"context"
	"testing"
	"time"

	"cafe/internal/adapters/out/postgres/outboxrepo"
	"cafe/internal/core/domain/model/event"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/sync/errgroup"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OutboxRepositoryIntegrationTestSuite checks the visibility order of the event
// log when several transactions append at the same time.
type OutboxRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&outboxrepo.EventDTO{}))
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE outbox_events RESTART IDENTITY").Error)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAppend_LaterSeqWaitsForEarlierCommit() {
	ctx := context.Background()
	first := newEvent(suite.T(), event.NewOrder, 1)
	second := newEvent(suite.T(), event.NewOrder, 2)

	txA := suite.db.Begin()
	defer txA.Rollback()
	a, err := outboxrepo.NewGormOutboxRepository(txA).Append(ctx, first)
	suite.Require().NoError(err)

	txB := suite.db.Begin()
	defer txB.Rollback()
	appended := make(chan event.Event, 1)
	failed := make(chan error, 1)
	go func() {
		b, appendErr := outboxrepo.NewGormOutboxRepository(txB).Append(ctx, second)
		if appendErr != nil {
			failed <- appendErr
			return
		}
		appended <- b
	}()

	select {
	case <-appended:
		suite.Require().FailNow("second append did not wait for the open transaction")
	case appendErr := <-failed:
		suite.Require().NoError(appendErr)
	case <-time.After(300 * time.Millisecond):
	}

	reader := outboxrepo.NewGormOutboxRepository(suite.db)
	visible, err := reader.ListAfter(ctx, 0, 10)
	suite.Require().NoError(err)
	suite.Empty(visible)

	suite.Require().NoError(txA.Commit().Error)

	var b event.Event
	select {
	case b = <-appended:
	case appendErr := <-failed:
		suite.Require().NoError(appendErr)
	case <-time.After(10 * time.Second):
		suite.Require().FailNow("second append never resumed")
	}
	suite.Greater(b.Seq, a.Seq)

	// An observer reading now sees only the first event and moves its cursor.
	visible, err = reader.ListAfter(ctx, 0, 10)
	suite.Require().NoError(err)
	suite.Require().Len(visible, 1)
	suite.Equal(a.ID, visible[0].ID)
	cursor := visible[0].Seq

	suite.Require().NoError(txB.Commit().Error)

	visible, err = reader.ListAfter(ctx, cursor, 10)
	suite.Require().NoError(err)
	suite.Require().Len(visible, 1)
	suite.Equal(b.ID, visible[0].ID)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAppend_PollingObserverMissesNothing() {
	const writers = 20
	ctx := context.Background()

	events := make([]event.Event, writers)
	for i := range events {
		events[i] = newEvent(suite.T(), event.OrderUpdated, i+1)
	}

	var g errgroup.Group
	for i, e := range events {
		g.Go(func() error {
			return suite.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				if _, err := outboxrepo.NewGormOutboxRepository(tx).Append(ctx, e); err != nil {
					return err
				}
				time.Sleep(time.Duration(i%4) * 5 * time.Millisecond)
				return nil
			})
		})
	}

	reader := outboxrepo.NewGormOutboxRepository(suite.db)
	seen := make(map[string]bool, writers)
	var cursor int64
	deadline := time.Now().Add(30 * time.Second)
	for len(seen) < writers && time.Now().Before(deadline) {
		batch, err := reader.ListAfter(ctx, cursor, 100)
		suite.Require().NoError(err)
		for _, e := range batch {
			suite.False(seen[e.ID.String()], "event %s delivered twice", e.ID)
			seen[e.ID.String()] = true
			cursor = e.Seq
		}
		time.Sleep(2 * time.Millisecond)
	}
	suite.Require().NoError(g.Wait())

	// Anything committed after the last poll is still ahead of the cursor.
	rest, err := reader.ListAfter(ctx, cursor, 100)
	suite.Require().NoError(err)
	for _, e := range rest {
		seen[e.ID.String()] = true
	}

	suite.Len(seen, writers)
	for _, e := range events {
		suite.True(seen[e.ID.String()], "event for %s was skipped by the cursor", e.OrderID)
	}
}

func TestOutboxRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OutboxRepositoryIntegrationTestSuite))
}
