package api

import (
	"errors"
	"net/http"
	"time"

	"car-auction/internal/domain/auction"
	"car-auction/internal/domain/region"
	reqdto "car-auction/internal/handler/dto/request"
	resdto "car-auction/internal/handler/dto/response"
	"car-auction/internal/handler/httperr"
	"car-auction/internal/pkg/errs"
	"car-auction/internal/usecase/commands"
	"car-auction/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuctionHandler struct {
	cmds commands.AuctionCommands
	q    queries.AuctionQueries
}

func NewAuctionHandler(cmds commands.AuctionCommands, q queries.AuctionQueries) *AuctionHandler {
	return &AuctionHandler{cmds: cmds, q: q}
}

// @Summary Create auction
// @Description Create and start an auction for a catalog vehicle. Always runs on the strong path.
// @Tags auctions
// @Accept json
// @Produce json
// @Param request body reqdto.CreateAuctionRequest true "Create auction request"
// @Success 201 {object} resdto.AuctionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /auctions [post]
func (h *AuctionHandler) CreateAuction(c *gin.Context) {
	var req reqdto.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid region", nil)
		return
	}

	a, err := h.cmds.CreateAuction(c.Request.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrVehicleNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Vehicle not found", nil)
		case errors.Is(err, errs.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromAuctionView(queries.NewAuctionView(a, auction.ConsistencyStrong)))
}

// @Summary Get auction
// @Description Read an auction. Strong reads include the settled bids.
// @Tags auctions
// @Produce json
// @Param id path string true "Auction ID"
// @Param consistency query string false "strong (default) or eventual"
// @Success 200 {object} resdto.AuctionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /auctions/{id} [get]
func (h *AuctionHandler) GetAuction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid auction ID format", nil)
		return
	}
	level := auction.ConsistencyLevel(c.Query("consistency"))

	view, err := h.q.GetAuction(c.Request.Context(), id, level)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidConsistencyLevel):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid consistency level", nil)
		case errors.Is(err, queries.ErrAuctionNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Auction not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromAuctionView(view))
}

// @Summary Place bid
// @Description Place a bid from the caller region given in X-Region. The body is the bid result for every status.
// @Tags auctions
// @Accept json
// @Produce json
// @Param id path string true "Auction ID"
// @Param X-Region header string false "Caller region (USEast, EUWest)"
// @Param request body reqdto.PlaceBidRequest true "Bid"
// @Success 200 {object} resdto.BidResultResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} resdto.BidResultResponse
// @Failure 409 {object} resdto.BidResultResponse
// @Failure 422 {object} resdto.BidResultResponse
// @Router /auctions/{id}/bids [post]
func (h *AuctionHandler) PlaceBid(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid auction ID format", nil)
		return
	}
	var req reqdto.PlaceBidRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	result, err := h.cmds.PlaceBid(c.Request.Context(), id, req.BidderID, req.Amount)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(bidStatus(result.Outcome), resdto.FromBidResult(result))
}

func bidStatus(o commands.BidOutcome) int {
	switch o {
	case commands.OutcomePlaced, commands.OutcomeQueued, commands.OutcomeAuctionEnded:
		return http.StatusOK
	case commands.OutcomeNotFound:
		return http.StatusNotFound
	case commands.OutcomePartitioned, commands.OutcomeConflict:
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

// @Summary List bids
// @Description List an auction's bids in sequence order
// @Tags auctions
// @Produce json
// @Param id path string true "Auction ID"
// @Param since query string false "RFC3339 lower bound on creation time"
// @Success 200 {array} resdto.BidResponse
// @Failure 400 {object} map[string]string
// @Router /auctions/{id}/bids [get]
func (h *AuctionHandler) ListBids(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid auction ID format", nil)
		return
	}
	var since *time.Time
	if v := c.Query("since"); v != "" {
		t, perr := time.Parse(time.RFC3339, v)
		if perr != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, perr, "Invalid since parameter", nil)
			return
		}
		since = &t
	}

	views, err := h.q.ListBids(c.Request.Context(), id, since)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBidViews(views))
}

// @Summary Reconcile auction
// @Description Merge the bids queued during a partition into a paused auction and resume it
// @Tags auctions
// @Produce json
// @Param id path string true "Auction ID"
// @Success 200 {object} resdto.ReconciliationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} resdto.ReconciliationResponse
// @Failure 409 {object} resdto.ReconciliationResponse
// @Router /auctions/{id}/reconcile [post]
func (h *AuctionHandler) Reconcile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid auction ID format", nil)
		return
	}

	result, err := h.cmds.Reconcile(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	status := http.StatusOK
	switch {
	case result.Success:
	case result.Message == commands.MsgAuctionNotFound:
		status = http.StatusNotFound
	default:
		status = http.StatusConflict
	}
	c.JSON(status, resdto.FromReconciliationResult(result))
}

// @Summary Reconciliation candidates
// @Description List paused auctions of a region that still wait for reconciliation
// @Tags auctions
// @Produce json
// @Param region path string true "Auction region"
// @Success 200 {array} queries.ReconciliationCandidate
// @Failure 400 {object} map[string]string
// @Router /regions/{region}/reconciliation-candidates [get]
func (h *AuctionHandler) ReconciliationCandidates(c *gin.Context) {
	r, err := region.Parse(c.Param("region"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown region", nil)
		return
	}

	items, err := h.q.ReconciliationCandidates(c.Request.Context(), r)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, items)
}
