//go:build unit

package api_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"car-auction/internal/domain/auction"
	"car-auction/internal/domain/region"
	"car-auction/internal/handler/api"
	resdto "car-auction/internal/handler/dto/response"
	"car-auction/internal/handler/middleware"
	"car-auction/internal/pkg/errs"
	"car-auction/internal/usecase/commands"
	"car-auction/internal/usecase/queries"
	"car-auction/tests/common/builder"
	"car-auction/tests/common/httptest"
	"car-auction/tests/common/testutil"
	commandsmock "car-auction/tests/mock/commands"
	queriesmock "car-auction/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuctionHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuctionCommands
	mockQueries  *queriesmock.MockAuctionQueries
	handler      *api.AuctionHandler
}

func (s *AuctionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(middleware.CallerRegion())

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuctionCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockAuctionQueries(s.mockCtrl)
	s.handler = api.NewAuctionHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/auctions", s.handler.CreateAuction)
	s.router.GET("/auctions/:id", s.handler.GetAuction)
	s.router.POST("/auctions/:id/bids", s.handler.PlaceBid)
	s.router.GET("/auctions/:id/bids", s.handler.ListBids)
	s.router.POST("/auctions/:id/reconcile", s.handler.Reconcile)
	s.router.GET("/regions/:region/reconciliation-candidates", s.handler.ReconciliationCandidates)
}

func (s *AuctionHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuctionHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuctionHandlerTestSuite))
}

type testCaseAuction struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// decimal.Decimal holds a *big.Int, so compare by value instead of DeepEqual.
type decimalEq struct{ want decimal.Decimal }

func (m decimalEq) Matches(x any) bool {
	d, ok := x.(decimal.Decimal)
	return ok && d.Equal(m.want)
}

func (m decimalEq) String() string { return fmt.Sprintf("is decimal %s", m.want) }

// ================================================================================
// TestCreateAuction
// ================================================================================

func (s *AuctionHandlerTestSuite) TestCreateAuction() {
	url := "/auctions"

	b := builder.NewAuctionBuilder()
	reqBody := b.BuildCreateRequestDTO()
	created := b.BuildActive()

	missing := []testCaseAuction{
		{name: "missing field: vehicle_id (required)", mutate: testutil.Field("vehicle_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: start_time (required)", mutate: testutil.Field("start_time", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: end_time (required)", mutate: testutil.Field("end_time", nil), expectCode: http.StatusBadRequest},
	}
	invalid := []testCaseAuction{
		{name: "unknown region", mutate: testutil.Field("region", "Mars"), expectCode: http.StatusBadRequest},
		{name: "malformed vehicle_id", mutate: testutil.Field("vehicle_id", "not-a-uuid"), expectCode: http.StatusBadRequest},
	}

	s.Run("success: returns 201 Created with the strong view", func() {
		s.mockCommands.EXPECT().CreateAuction(gomock.Any(), gomock.Any()).
			Return(created, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.AuctionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(created.ID(), body.ID)
		s.Equal(auction.ConsistencyStrong, body.Consistency)
		s.Equal(auction.StateActive, body.State)
	})

	s.Run("success: omitted region is left for the vehicle to decide", func() {
		s.mockCommands.EXPECT().CreateAuction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, req commands.CreateAuctionRequest) (*auction.Auction, error) {
				s.Empty(req.Region)
				return created, nil
			}).Times(1)

		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("region", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		for _, group := range [][]testCaseAuction{missing, invalid} {
			for _, tc := range group {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
				})
			}
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "vehicle not found",
				commandsError:  commands.ErrVehicleNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Vehicle not found",
			},
			{
				name:           "domain validation error",
				commandsError:  errs.Mark(auction.ErrInvalidSchedule, errs.ErrDomainValidation),
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Domain validation failed",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateAuction(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGetAuction
// ================================================================================

func (s *AuctionHandlerTestSuite) TestGetAuction() {
	view := builder.NewAuctionBuilder().BuildView(auction.ConsistencyEventual)
	url := "/auctions/" + view.ID.String()

	s.Run("success: passes the consistency level through", func() {
		s.mockQueries.EXPECT().GetAuction(gomock.Any(), view.ID, auction.ConsistencyStrong).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?consistency=strong", nil, "")

		var body resdto.AuctionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
	})

	s.Run("success: empty consistency is left for the query to default", func() {
		s.mockQueries.EXPECT().GetAuction(gomock.Any(), view.ID, auction.ConsistencyLevel("")).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auctions/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid auction ID format")
	})

	s.Run("error: maps query errors to proper statuses", func() {
		testCases := []struct {
			name           string
			queryError     error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "invalid consistency", queryError: queries.ErrInvalidConsistencyLevel, expectedStatus: http.StatusBadRequest, expectedMsg: "Invalid consistency level"},
			{name: "not found", queryError: queries.ErrAuctionNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "Auction not found"},
			{name: "internal server error", queryError: errors.New("boom"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().GetAuction(gomock.Any(), view.ID, gomock.Any()).
					Return(nil, tc.queryError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?consistency=whatever", nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestPlaceBid
// ================================================================================

func (s *AuctionHandlerTestSuite) TestPlaceBid() {
	auctionID := uuid.New()
	bidderID := uuid.New()
	url := "/auctions/" + auctionID.String() + "/bids"
	reqBody := map[string]any{"bidder_id": bidderID.String(), "amount": "11000"}

	placed := builder.NewBidBuilder().ForAuction(auctionID).WithAmount(11000).
		With(func(b *builder.BidBuilder) { b.BidderID = bidderID; b.Accepted = true }).
		BuildDomain()

	s.Run("success: placed bid returns 200 with the bid", func() {
		s.mockCommands.EXPECT().PlaceBid(gomock.Any(), auctionID, bidderID, decimalEq{decimal.NewFromInt(11000)}).
			Return(&commands.BidResult{Success: true, Outcome: commands.OutcomePlaced, Message: commands.MsgBidPlaced, Bid: placed}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, region.USEast.String())

		var body resdto.BidResultResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Success)
		s.Equal(string(commands.OutcomePlaced), body.Outcome)
		s.Require().NotNil(body.Bid)
		s.Equal(placed.ID(), body.Bid.ID)
	})

	s.Run("success: X-Region reaches the usecase through the context", func() {
		s.mockCommands.EXPECT().PlaceBid(gomock.Any(), auctionID, bidderID, gomock.Any()).
			DoAndReturn(func(ctx context.Context, _, _ uuid.UUID, _ decimal.Decimal) (*commands.BidResult, error) {
				r, ok := region.CallerFrom(ctx)
				s.True(ok)
				s.Equal(region.EUWest, r)
				return &commands.BidResult{Success: true, Outcome: commands.OutcomeQueued, Message: commands.MsgBidQueued}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, region.EUWest.String())
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: maps outcomes to status codes", func() {
		testCases := []struct {
			outcome        commands.BidOutcome
			expectedStatus int
		}{
			{outcome: commands.OutcomeQueued, expectedStatus: http.StatusOK},
			{outcome: commands.OutcomeAuctionEnded, expectedStatus: http.StatusOK},
			{outcome: commands.OutcomeNotFound, expectedStatus: http.StatusNotFound},
			{outcome: commands.OutcomePartitioned, expectedStatus: http.StatusConflict},
			{outcome: commands.OutcomeConflict, expectedStatus: http.StatusConflict},
			{outcome: commands.OutcomeRejected, expectedStatus: http.StatusUnprocessableEntity},
			{outcome: commands.OutcomeNotActive, expectedStatus: http.StatusUnprocessableEntity},
		}

		for _, tc := range testCases {
			s.Run(string(tc.outcome), func() {
				s.mockCommands.EXPECT().PlaceBid(gomock.Any(), auctionID, bidderID, gomock.Any()).
					Return(&commands.BidResult{Outcome: tc.outcome, Message: "m"}, nil).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

				body := httptest.AssertBidOutcome(s.T(), rec, tc.expectedStatus, string(tc.outcome))
				s.Equal("m", body.Message)
			})
		}
	})

	s.Run("error: 400 Bad Request on invalid input", func() {
		testCases := []struct {
			name string
			path string
			body any
			hdr  string
		}{
			{name: "malformed auction id", path: "/auctions/not-a-uuid/bids", body: reqBody},
			{name: "missing bidder_id", path: url, body: map[string]any{"amount": "11000"}},
			{name: "amount is not a number", path: url, body: map[string]any{"bidder_id": bidderID.String(), "amount": "abc"}},
			{name: "unknown X-Region", path: url, body: reqBody, hdr: "Mars"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, tc.path, tc.body, tc.hdr)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 500 when the usecase fails", func() {
		s.mockCommands.EXPECT().PlaceBid(gomock.Any(), auctionID, bidderID, gomock.Any()).
			Return(nil, errors.New("sequence store down")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestListBids
// ================================================================================

func (s *AuctionHandlerTestSuite) TestListBids() {
	auctionID := uuid.New()
	url := "/auctions/" + auctionID.String() + "/bids"
	views := []*queries.BidView{
		queries.NewBidView(builder.NewBidBuilder().ForAuction(auctionID).With(func(b *builder.BidBuilder) { b.Sequence = 1 }).BuildDomain()),
		queries.NewBidView(builder.NewBidBuilder().ForAuction(auctionID).With(func(b *builder.BidBuilder) { b.Sequence = 2 }).BuildDomain()),
	}

	s.Run("success: returns bids in sequence order", func() {
		s.mockQueries.EXPECT().ListBids(gomock.Any(), auctionID, gomock.Nil()).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body []resdto.BidResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 2)
		s.Equal(int64(1), body[0].Sequence)
		s.Equal(int64(2), body[1].Sequence)
	})

	s.Run("success: since is parsed as RFC3339", func() {
		since := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
		s.mockQueries.EXPECT().ListBids(gomock.Any(), auctionID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, got *time.Time) ([]*queries.BidView, error) {
				s.Require().NotNil(got)
				s.True(since.Equal(*got))
				return nil, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?since="+since.Format(time.RFC3339), nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request on malformed since", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?since=yesterday", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid since parameter")
	})
}

// ================================================================================
// TestReconcile
// ================================================================================

func (s *AuctionHandlerTestSuite) TestReconcile() {
	auctionID := uuid.New()
	url := "/auctions/" + auctionID.String() + "/reconcile"
	winner := uuid.New()
	amount := decimal.NewFromInt(12500)

	s.Run("success: returns the winner", func() {
		s.mockCommands.EXPECT().Reconcile(gomock.Any(), auctionID).
			Return(&commands.ReconciliationResult{
				Success: true, Message: commands.MsgReconciled, BidsReconciled: 3,
				WinnerID: &winner, WinningAmount: &amount,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var body resdto.ReconciliationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(3, body.BidsReconciled)
		s.Require().NotNil(body.WinnerID)
		s.Equal(winner.String(), *body.WinnerID)
		s.Require().NotNil(body.WinningAmount)
		s.Equal("12500", *body.WinningAmount)
	})

	s.Run("error: maps unsuccessful results to status codes", func() {
		testCases := []struct {
			name           string
			message        string
			expectedStatus int
		}{
			{name: "auction not found", message: commands.MsgAuctionNotFound, expectedStatus: http.StatusNotFound},
			{name: "nothing queued", message: commands.MsgNothingQueued, expectedStatus: http.StatusConflict},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Reconcile(gomock.Any(), auctionID).
					Return(&commands.ReconciliationResult{Message: tc.message}, nil).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
				s.Equal(tc.expectedStatus, rec.Code)
			})
		}
	})

	s.Run("error: 500 when the usecase fails", func() {
		s.mockCommands.EXPECT().Reconcile(gomock.Any(), auctionID).
			Return(nil, errors.New("db down")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestReconciliationCandidates
// ================================================================================

func (s *AuctionHandlerTestSuite) TestReconciliationCandidates() {
	s.Run("success: lists paused auctions of the region", func() {
		items := []*queries.ReconciliationCandidate{{AuctionID: uuid.New(), Region: region.EUWest, QueuedBids: 2}}
		s.mockQueries.EXPECT().ReconciliationCandidates(gomock.Any(), region.EUWest).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/regions/EUWest/reconciliation-candidates", nil, "")

		var body []queries.ReconciliationCandidate
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal(2, body[0].QueuedBids)
	})

	s.Run("error: 400 Bad Request on unknown region", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/regions/Mars/reconciliation-candidates", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Unknown region")
	})
}
