package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	postgres_adapter "fablab/internal/adapters/out/postgres"
	"fablab/internal/core/domain/model/catalog"
	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
	"fablab/internal/core/domain/services"
	"fablab/internal/core/ports"
	"fablab/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises transactions and the concurrency
// guarantees of the schema against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE printing_jobs, printings, jobs").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx), "commit without begin")
	suite.Require().NoError(uow.Rollback(ctx), "rollback without begin is a no-op")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().NoError(uow.Rollback(ctx), "rollback after commit is a no-op")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitSpansRepositories() {
	ctx := context.Background()
	item := suite.newItem("Laser cutting", 700)
	draft := suite.newDraft(kernel.NewUUID(), item.ID(), 2)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CatalogRepository().Add(ctx, item))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, draft))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	_, err := reader.CatalogRepository().Get(ctx, item.ID())
	suite.Require().NoError(err)
	loaded, err := reader.OrderRepository().Get(ctx, draft.ID())
	suite.Require().NoError(err)
	suite.Equal(1, loaded.ItemCount())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEverything() {
	ctx := context.Background()
	item := suite.newItem("Laser cutting", 700)
	draft := suite.newDraft(kernel.NewUUID(), item.ID(), 1)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.CatalogRepository().Add(ctx, item))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, draft))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err := reader.CatalogRepository().Get(ctx, item.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = reader.OrderRepository().Get(ctx, draft.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentDraftCreation_SingleDraft() {
	ctx := context.Background()
	author := kernel.NewUUID()
	const writers = 5

	var ready, done sync.WaitGroup
	ready.Add(writers)
	done.Add(writers)
	results := make(chan error, writers)

	for i := 0; i < writers; i++ {
		go func() {
			defer done.Done()
			uow := suite.factory.Create()
			if err := uow.Begin(ctx); err != nil {
				ready.Done()
				results <- err
				return
			}
			defer func() { _ = uow.Rollback(ctx) }()

			_, err := uow.OrderRepository().GetDraftByAuthor(ctx, author)
			ready.Done()
			ready.Wait()
			if err == nil {
				results <- nil
				return
			}

			draft, _ := order.NewDraft(kernel.NewUUID(), author, time.Now().UTC())
			if err = uow.OrderRepository().Add(ctx, draft); err != nil {
				results <- err
				return
			}
			results <- uow.Commit(ctx)
		}()
	}
	done.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrConcurrencyConflict):
			conflicted++
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, succeeded)
	suite.Equal(writers-1, conflicted)

	var drafts int64
	suite.Require().NoError(suite.db.Table("printings").
		Where("author_id = ? AND status = ?", author.Bytes(), int(order.Draft)).Count(&drafts).Error)
	suite.Equal(int64(1), drafts)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentResolve_ExactlyOneWins() {
	ctx := context.Background()
	item := suite.newItem("Laser cutting", 700)
	draft := suite.newDraft(kernel.NewUUID(), item.ID(), 2)
	suite.Require().NoError(draft.Form("Panel", time.Now().UTC()))

	setup := suite.factory.Create()
	suite.Require().NoError(setup.Begin(ctx))
	suite.Require().NoError(setup.CatalogRepository().Add(ctx, item))
	suite.Require().NoError(setup.OrderRepository().Add(ctx, draft))
	suite.Require().NoError(setup.Commit(ctx))

	decisions := []string{"complete", "reject"}
	var ready, done sync.WaitGroup
	ready.Add(len(decisions))
	done.Add(len(decisions))
	results := make(chan error, len(decisions))

	for _, decision := range decisions {
		decision := decision
		go func() {
			defer done.Done()
			results <- suite.resolve(ctx, draft.ID(), decision, &ready)
		}()
	}
	done.Wait()
	close(results)

	var succeeded, conflicted int
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)
		conflicted++
	}
	suite.Equal(1, succeeded)
	suite.Equal(1, conflicted)

	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, draft.ID())
	suite.Require().NoError(err)
	suite.True(loaded.Status().IsTerminal())
	suite.Equal(1, loaded.Version())
}

// resolve reads the printing, waits until every competitor has read it too,
// then writes the decision.
func (suite *UnitOfWorkIntegrationTestSuite) resolve(
	ctx context.Context, id kernel.UUID, decision string, ready *sync.WaitGroup,
) error {
	uow := suite.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		ready.Done()
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	printing, err := uow.OrderRepository().Get(ctx, id)
	ready.Done()
	ready.Wait()
	if err != nil {
		return err
	}

	jobIDs := make([]kernel.UUID, 0, printing.ItemCount())
	for _, line := range printing.Items() {
		jobIDs = append(jobIDs, line.JobID())
	}
	jobs, err := uow.CatalogRepository().GetMany(ctx, jobIDs)
	if err != nil {
		return err
	}

	if err = printing.Resolve(kernel.NewUUID(), decision, services.NewPriceCalculator(jobs), time.Now().UTC()); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, printing); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (suite *UnitOfWorkIntegrationTestSuite) newItem(name string, price int64) *catalog.Item {
	item, err := catalog.NewItem(kernel.NewUUID(), name, "", price)
	suite.Require().NoError(err)
	return item
}

func (suite *UnitOfWorkIntegrationTestSuite) newDraft(author, jobID kernel.UUID, qty int) *order.Printing {
	draft, err := order.NewDraft(kernel.NewUUID(), author, time.Now().UTC())
	suite.Require().NoError(err)
	quantity, err := kernel.NewQuantity(qty)
	suite.Require().NoError(err)
	_, err = draft.AddItem(jobID, quantity)
	suite.Require().NoError(err)
	return draft
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
