package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "fablab/internal/adapters/in/http"
	"fablab/internal/adapters/out/memory"
	"fablab/internal/adapters/out/objectstore"
	"fablab/internal/core/application/usecases/commands"
	"fablab/internal/core/application/usecases/queries"
	"fablab/internal/core/domain/model/kernel"
	"fablab/internal/core/domain/model/order"
	"fablab/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

const testSecret = "test-secret"

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, order.ChangedEvent) error { return nil }

type nopMetrics struct{}

func (nopMetrics) TransitionRecorded(order.Status) {}
func (nopMetrics) CartMutated(ports.CartMutation)  {}

type uowFactoryFunc func() commands.UoW

func (f uowFactoryFunc) Create() commands.UoW { return f() }

type orderUoWFactoryFunc func() commands.OrderUoW

func (f orderUoWFactoryFunc) Create() commands.OrderUoW { return f() }

type catalogUoWFactoryFunc func() commands.CatalogUoW

func (f catalogUoWFactoryFunc) Create() commands.CatalogUoW { return f() }

// ServerSuite drives the HTTP API over the in-memory storage.
type ServerSuite struct {
	suite.Suite

	echo     *echo.Echo
	identity *httpadapter.Identity
	assets   *objectstore.MemoryAssetStore

	staff  kernel.Actor
	author kernel.Actor
	other  kernel.Actor
}

func (s *ServerSuite) SetupTest() {
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	reader := memory.NewReader(store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := kernel.SystemClock{}
	s.assets = objectstore.NewMemoryAssetStore()

	uow := uowFactoryFunc(func() commands.UoW { return factory.Create() })
	orderUoW := orderUoWFactoryFunc(func() commands.OrderUoW { return factory.Create() })
	catalogUoW := catalogUoWFactoryFunc(func() commands.CatalogUoW { return factory.Create() })
	notifier := commands.NewTransitionNotifier(nopPublisher{}, nopMetrics{}, clock, logger)

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateCatalogItem: commands.NewCreateCatalogItemCommandHandler(catalogUoW),
		UpdateCatalogItem: commands.NewUpdateCatalogItemCommandHandler(catalogUoW),
		DeleteCatalogItem: commands.NewDeleteCatalogItemCommandHandler(catalogUoW, s.assets, logger),
		AttachImage:       commands.NewAttachCatalogImageCommandHandler(catalogUoW, s.assets, logger),
		AddLineItem:       commands.NewAddLineItemCommandHandler(uow, clock, nopMetrics{}),
		UpdateLineItem:    commands.NewUpdateLineItemCommandHandler(orderUoW, nopMetrics{}),
		RemoveLineItem:    commands.NewRemoveLineItemCommandHandler(orderUoW, nopMetrics{}),
		RenameOrder:       commands.NewRenameOrderCommandHandler(orderUoW),
		FormOrder:         commands.NewFormOrderCommandHandler(orderUoW, clock, notifier),
		ResolveOrder:      commands.NewResolveOrderCommandHandler(uow, clock, notifier),
		DeleteOrder:       commands.NewDeleteOrderCommandHandler(orderUoW, notifier),
		ListCatalogItems:  queries.NewListCatalogItemsQueryHandler(reader, reader),
		GetCatalogItem:    queries.NewGetCatalogItemQueryHandler(reader),
		ListOrders:        queries.NewListOrdersQueryHandler(reader),
		GetOrder:          queries.NewGetOrderQueryHandler(reader),
	})

	s.identity = httpadapter.NewIdentity(testSecret)
	e, err := httpadapter.NewEcho(server, s.identity, logger)
	s.Require().NoError(err)
	s.echo = e

	s.staff = s.actor("moderator@fablab.test", true)
	s.author = s.actor("maker@fablab.test", false)
	s.other = s.actor("other@fablab.test", false)
}

func (s *ServerSuite) actor(email string, staff bool) kernel.Actor {
	a, err := kernel.NewActor(kernel.NewUUID(), email, staff)
	s.Require().NoError(err)
	return a
}

func (s *ServerSuite) token(a kernel.Actor) string {
	token, err := s.identity.Sign(a, time.Hour, time.Now())
	s.Require().NoError(err)
	return token
}

func (s *ServerSuite) do(a *kernel.Actor, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if a != nil {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token(*a))
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func (s *ServerSuite) decode(rec *httptest.ResponseRecorder, dest any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), dest), rec.Body.String())
}

func (s *ServerSuite) createJob(name string, price int64) queries.CatalogItemView {
	rec := s.do(&s.staff, http.MethodPost, "/api/v1/jobs", map[string]any{"name": name, "info": "", "price": price})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var view queries.CatalogItemView
	s.decode(rec, &view)
	return view
}

func (s *ServerSuite) TestHealth() {
	rec := s.do(nil, http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ServerSuite) TestApiRequiresBearerToken() {
	rec := s.do(nil, http.MethodGet, "/api/v1/jobs", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-token")
	bad := httptest.NewRecorder()
	s.echo.ServeHTTP(bad, req)
	s.Equal(http.StatusUnauthorized, bad.Code)

	forged, err := httpadapter.NewIdentity("another-secret").Sign(s.staff, time.Hour, time.Now())
	s.Require().NoError(err)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+forged)
	rec = httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ServerSuite) TestExpiredTokenIsRejected() {
	token, err := s.identity.Sign(s.author, time.Minute, time.Now().Add(-time.Hour))
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ServerSuite) TestCatalogManagementRequiresStaff() {
	rec := s.do(&s.author, http.MethodPost, "/api/v1/jobs", map[string]any{"name": "Milling", "price": 100})
	s.Equal(http.StatusForbidden, rec.Code)

	job := s.createJob("Milling", 100)
	rec = s.do(&s.author, http.MethodDelete, "/api/v1/jobs/"+job.ID.String(), nil)
	s.Equal(http.StatusForbidden, rec.Code)
}

func (s *ServerSuite) TestCreateJob_ContractViolation() {
	rec := s.do(&s.staff, http.MethodPost, "/api/v1/jobs", map[string]any{"info": "no name"})
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var body httpadapter.Error
	s.decode(rec, &body)
	s.Contains(body.Fields, "body")
}

func (s *ServerSuite) TestCreateJob_BusinessValidationReportsEveryField() {
	rec := s.do(&s.staff, http.MethodPost, "/api/v1/jobs", map[string]any{"name": "", "price": 0})
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	var body httpadapter.Error
	s.decode(rec, &body)
	s.Contains(body.Fields, "name")
	s.Contains(body.Fields, "price")
}

func (s *ServerSuite) TestMalformedPathID() {
	rec := s.do(&s.author, http.MethodGet, "/api/v1/jobs/not-a-uuid", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerSuite) TestUpdateAndDeleteJob() {
	job := s.createJob("Laser cutting", 700)

	rec := s.do(&s.staff, http.MethodPut, "/api/v1/jobs/"+job.ID.String(), map[string]any{"price": 900})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var updated queries.CatalogItemView
	s.decode(rec, &updated)
	s.Equal(int64(900), updated.Price)
	s.Equal("Laser cutting", updated.Name)

	rec = s.do(&s.staff, http.MethodDelete, "/api/v1/jobs/"+job.ID.String(), nil)
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.do(&s.author, http.MethodGet, "/api/v1/jobs/"+job.ID.String(), nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerSuite) TestAttachJobImage() {
	job := s.createJob("Engraving", 300)

	png := append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", "Front View.png")
	s.Require().NoError(err)
	_, err = part.Write(png)
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs/"+job.ID.String()+"/image", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token(s.staff))
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var view queries.CatalogItemView
	s.decode(rec, &view)
	s.Require().NotNil(view.ImageURL)
	s.Contains(*view.ImageURL, "front-view.png")
	s.Equal(1, s.assets.Len())
}

func (s *ServerSuite) TestOrderWorkflow() {
	job := s.createJob("3D printing", 500)
	jobPath := "/api/v1/jobs/" + job.ID.String() + "/printing"

	rec := s.do(&s.author, http.MethodPost, jobPath, map[string]any{"quantity": 2})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	rec = s.do(&s.author, http.MethodPost, jobPath, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var line httpadapter.LineItemResponse
	s.decode(rec, &line)
	s.Equal(3, line.Quantity)

	rec = s.do(&s.author, http.MethodGet, "/api/v1/jobs", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var catalogPage queries.ListCatalogItemsResponse
	s.decode(rec, &catalogPage)
	s.Require().NotNil(catalogPage.DraftID)
	s.Equal(1, catalogPage.DraftCount)
	s.Len(catalogPage.Items, 1)
	printingPath := "/api/v1/printings/" + catalogPage.DraftID.String()

	rec = s.do(&s.other, http.MethodPost, printingPath+"/form", map[string]any{"name": "Not mine"})
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(&s.author, http.MethodPost, printingPath+"/form", map[string]any{"name": "Bracket"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var formed queries.PrintingView
	s.decode(rec, &formed)
	s.Equal("formed", formed.Status)
	s.Require().NotNil(formed.Name)
	s.Equal("Bracket", *formed.Name)
	s.Len(formed.LineItems, 1)

	rec = s.do(&s.author, http.MethodPost, printingPath+"/form", map[string]any{"name": "Bracket"})
	s.Require().Equal(http.StatusBadRequest, rec.Code)
	var problem httpadapter.Error
	s.decode(rec, &problem)
	s.Contains(problem.Fields, order.KeyStatusError)

	rec = s.do(&s.author, http.MethodPost, printingPath+"/complete", map[string]any{"status": "complete"})
	s.Equal(http.StatusForbidden, rec.Code)

	rec = s.do(&s.staff, http.MethodPost, printingPath+"/complete", map[string]any{"status": "complete"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var completed queries.PrintingView
	s.decode(rec, &completed)
	s.Equal("complete", completed.Status)
	s.Require().NotNil(completed.TotalPrice)
	s.Equal(int64(1500), *completed.TotalPrice)
	s.Require().NotNil(completed.Moderator)
	s.Equal(s.staff.ID(), *completed.Moderator)

	rec = s.do(&s.staff, http.MethodPut, "/api/v1/jobs/"+job.ID.String(), map[string]any{"price": 10})
	s.Require().Equal(http.StatusOK, rec.Code)
	rec = s.do(&s.author, http.MethodGet, printingPath, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var later queries.PrintingView
	s.decode(rec, &later)
	s.Equal(int64(1500), *later.TotalPrice)
}

func (s *ServerSuite) TestResolveRejectsUnknownDecision() {
	job := s.createJob("Soldering", 200)
	s.Require().Equal(http.StatusOK, s.do(&s.author, http.MethodPost, "/api/v1/jobs/"+job.ID.String()+"/printing", nil).Code)

	var page queries.ListCatalogItemsResponse
	s.decode(s.do(&s.author, http.MethodGet, "/api/v1/jobs", nil), &page)
	s.Require().NotNil(page.DraftID)
	printingPath := "/api/v1/printings/" + page.DraftID.String()
	s.Require().Equal(http.StatusOK, s.do(&s.author, http.MethodPost, printingPath+"/form", map[string]any{"name": "Board"}).Code)

	rec := s.do(&s.staff, http.MethodPost, printingPath+"/complete", map[string]any{"status": "approve"})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerSuite) TestUpdateLineItemToZeroRemovesIt() {
	job := s.createJob("Plotting", 150)
	jobPath := "/api/v1/jobs/" + job.ID.String() + "/printing"
	s.Require().Equal(http.StatusOK, s.do(&s.author, http.MethodPost, jobPath, nil).Code)

	rec := s.do(&s.author, http.MethodPut, jobPath, map[string]any{"quantity": 0})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var line httpadapter.LineItemResponse
	s.decode(rec, &line)
	s.True(line.Removed)

	rec = s.do(&s.author, http.MethodPut, jobPath, map[string]any{"quantity": 2})
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(&s.author, http.MethodDelete, jobPath, nil)
	s.Equal(http.StatusNoContent, rec.Code)
}

func (s *ServerSuite) TestListPrintings() {
	job := s.createJob("Sewing", 100)
	jobPath := "/api/v1/jobs/" + job.ID.String() + "/printing"

	for _, a := range []kernel.Actor{s.author, s.other} {
		s.Require().Equal(http.StatusOK, s.do(&a, http.MethodPost, jobPath, nil).Code)
		var page queries.ListCatalogItemsResponse
		s.decode(s.do(&a, http.MethodGet, "/api/v1/jobs", nil), &page)
		s.Require().NotNil(page.DraftID)
		rec := s.do(&a, http.MethodPost, "/api/v1/printings/"+page.DraftID.String()+"/form", map[string]any{"name": "Bag"})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	}

	var own []queries.PrintingView
	s.decode(s.do(&s.author, http.MethodGet, "/api/v1/printings", nil), &own)
	s.Require().Len(own, 1)
	s.Equal(s.author.ID(), own[0].Author)

	var all []queries.PrintingView
	s.decode(s.do(&s.staff, http.MethodGet, "/api/v1/printings?status=formed", nil), &all)
	s.Len(all, 2)

	var drafts []queries.PrintingView
	s.decode(s.do(&s.staff, http.MethodGet, "/api/v1/printings?status=draft", nil), &drafts)
	s.Empty(drafts)

	today := time.Now().UTC().Format(time.DateOnly)
	var window []queries.PrintingView
	s.decode(s.do(&s.staff, http.MethodGet, "/api/v1/printings?start_date="+today+"&end_date="+today, nil), &window)
	s.Len(window, 2)

	rec := s.do(&s.staff, http.MethodGet, "/api/v1/printings?status=bogus", nil)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
	var problem httpadapter.Error
	s.decode(rec, &problem)
	s.Contains(problem.Fields, "status")

	rec = s.do(&s.staff, http.MethodGet, "/api/v1/printings?start_date=yesterday", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ServerSuite) TestDeletePrinting() {
	job := s.createJob("Welding", 400)
	s.Require().Equal(http.StatusOK, s.do(&s.author, http.MethodPost, "/api/v1/jobs/"+job.ID.String()+"/printing", nil).Code)
	var page queries.ListCatalogItemsResponse
	s.decode(s.do(&s.author, http.MethodGet, "/api/v1/jobs", nil), &page)
	s.Require().NotNil(page.DraftID)
	printingPath := "/api/v1/printings/" + page.DraftID.String()

	s.Equal(http.StatusForbidden, s.do(&s.author, http.MethodDelete, printingPath, nil).Code)
	s.Equal(http.StatusNoContent, s.do(&s.staff, http.MethodDelete, printingPath, nil).Code)
	s.Equal(http.StatusNotFound, s.do(&s.author, http.MethodGet, printingPath, nil).Code)

	rec := s.do(&s.staff, http.MethodGet, printingPath, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var view queries.PrintingView
	s.decode(rec, &view)
	s.Equal("deleted", view.Status)
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerSuite))
}
