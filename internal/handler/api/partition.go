package api

import (
	"errors"
	"net/http"
	"time"

	"car-auction/internal/domain/partition"
	"car-auction/internal/domain/region"
	reqdto "car-auction/internal/handler/dto/request"
	resdto "car-auction/internal/handler/dto/response"
	"car-auction/internal/handler/httperr"
	"car-auction/internal/usecase/commands"
	"car-auction/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// defaultHistoryWindow applies when /partitions/history gets no since parameter.
const defaultHistoryWindow = 24 * time.Hour

type PartitionHandler struct {
	cmds commands.PartitionCommands
	q    queries.PartitionQueries
}

func NewPartitionHandler(cmds commands.PartitionCommands, q queries.PartitionQueries) *PartitionHandler {
	return &PartitionHandler{cmds: cmds, q: q}
}

// @Summary Simulate partition
// @Description Cut an auction region off from an origin region until healed or the duration passes
// @Tags partitions
// @Accept json
// @Produce json
// @Param request body reqdto.SimulatePartitionRequest true "Partition request"
// @Success 201 {object} resdto.PartitionEventResponse
// @Failure 400 {object} map[string]string
// @Router /partitions [post]
func (h *PartitionHandler) Simulate(c *gin.Context) {
	var req reqdto.SimulatePartitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown region", nil)
		return
	}

	e, err := h.cmds.SimulatePartition(c.Request.Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidDuration), errors.Is(err, region.ErrUnknownRegion):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid partition request", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	h.writeEvent(c, http.StatusCreated, e)
}

// @Summary Heal all partitions
// @Tags partitions
// @Success 204 "No Content"
// @Failure 500 {object} map[string]string
// @Router /partitions [delete]
func (h *PartitionHandler) HealAll(c *gin.Context) {
	if err := h.cmds.HealAll(c.Request.Context()); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Heal failed", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Heal region partition
// @Description Heal the active partition of an auction region. Healing a healthy region is a no-op.
// @Tags partitions
// @Param region path string true "Auction region"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /partitions/{region} [delete]
func (h *PartitionHandler) HealRegion(c *gin.Context) {
	r, err := region.Parse(c.Param("region"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown region", nil)
		return
	}
	if err := h.cmds.HealRegion(c.Request.Context(), r); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Heal failed", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Partition status
// @Tags partitions
// @Produce json
// @Success 200 {object} resdto.PartitionStatusResponse
// @Failure 500 {object} map[string]string
// @Router /partitions/status [get]
func (h *PartitionHandler) Status(c *gin.Context) {
	view, err := h.q.Status(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	res, err := resdto.FromPartitionStatusView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Update partition status
// @Description Move the open incident of an auction region to the given status
// @Tags partitions
// @Accept json
// @Produce json
// @Param region path string true "Auction region"
// @Param request body reqdto.UpdatePartitionStatusRequest true "Target status"
// @Success 200 {object} resdto.PartitionEventResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /partitions/{region}/status [put]
func (h *PartitionHandler) UpdateStatus(c *gin.Context) {
	r, err := region.Parse(c.Param("region"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown region", nil)
		return
	}
	var req reqdto.UpdatePartitionStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	target, err := req.ToStatus()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown partition status", nil)
		return
	}

	e, err := h.cmds.UpdateStatus(c.Request.Context(), r, target)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNoActivePartition):
			httperr.AbortWithError(c, http.StatusNotFound, err, "No active partition for region", nil)
		case errors.Is(err, partition.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Invalid status transition", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	h.writeEvent(c, http.StatusOK, e)
}

// @Summary Partition history
// @Tags partitions
// @Produce json
// @Param since query string false "RFC3339 lower bound, defaults to 24h ago"
// @Success 200 {array} resdto.PartitionEventResponse
// @Failure 400 {object} map[string]string
// @Router /partitions/history [get]
func (h *PartitionHandler) History(c *gin.Context) {
	since := time.Now().UTC().Add(-defaultHistoryWindow)
	if v := c.Query("since"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid since parameter", nil)
			return
		}
		since = t
	}

	views, err := h.q.History(c.Request.Context(), since)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	res, err := resdto.FromPartitionEventViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Set default caller region
// @Description Region used for requests that carry no X-Region header
// @Tags partitions
// @Accept json
// @Param request body reqdto.SetRegionRequest true "Region"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Router /regions/current [put]
func (h *PartitionHandler) SetCurrentRegion(c *gin.Context) {
	var req reqdto.SetRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	r, err := region.Parse(req.Region)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown region", nil)
		return
	}
	if err := h.cmds.SetDefaultRegion(c.Request.Context(), r); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Unknown region", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PartitionHandler) writeEvent(c *gin.Context, status int, e *partition.Event) {
	res, err := resdto.FromPartitionEvent(e)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, res)
}
