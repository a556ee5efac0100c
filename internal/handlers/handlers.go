// Package handlers wires the HTTP surface to the application service.
//
// Every response body is JSON. Domain errors map onto statuses: validation
// failures are 400, unknown ids are 404, undecodable share tokens are 422.
// Nothing here reaches into the state directly; the service owns it.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tripsplit/internal/calculator"
	"tripsplit/internal/codec"
	"tripsplit/internal/models"
	"tripsplit/internal/service"
)

type handler struct {
	svc *service.Service
}

// Register mounts all routes on r.
func Register(r *gin.Engine, svc *service.Service) {
	h := &handler{svc: svc}

	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/friends", h.listFriends)
		api.POST("/friends", h.createFriend)
		api.PUT("/friends/:id", h.updateFriend)
		api.DELETE("/friends/:id", h.deleteFriend)
		api.GET("/friends/:id/paycode", h.friendPaycode)

		api.GET("/trips", h.listTrips)
		api.POST("/trips", h.createTrip)
		api.GET("/trips/:id", h.getTrip)
		api.PUT("/trips/:id", h.updateTrip)
		api.POST("/trips/:id/members", h.addMember)
		api.POST("/trips/:id/expenses", h.addExpense)
		api.GET("/trips/:id/balances", h.balances)
		api.GET("/trips/:id/settlement", h.settlement)
		api.GET("/trips/:id/export", h.exportTrip)
		api.POST("/import", h.importTrip)

		api.GET("/selected-trip", h.selectedTrip)
		api.PUT("/selected-trip", h.selectTrip)
	}
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// fail translates a service error to a status code and error body, and
// attaches it to the context for the request logger.
func (h *handler) fail(c *gin.Context, err error) {
	c.Error(err)

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, service.ErrTripNotFound),
		errors.Is(err, service.ErrFriendNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoPaymentRoute):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, codec.ErrInvalidToken):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid or corrupted trip code"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *handler) listFriends(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Friends())
}

func (h *handler) createFriend(c *gin.Context) {
	var in service.FriendInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	friend, err := h.svc.AddFriend(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, friend)
}

func (h *handler) updateFriend(c *gin.Context) {
	var in service.FriendInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	friend, err := h.svc.UpdateFriend(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, friend)
}

func (h *handler) deleteFriend(c *gin.Context) {
	if err := h.svc.DeleteFriend(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) friendPaycode(c *gin.Context) {
	amount := 0.0
	if raw := c.Query("amount"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount"})
			return
		}
		amount = parsed
	}

	code, err := h.svc.FriendPaymentCode(c.Param("id"), amount)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, code)
}

func (h *handler) listTrips(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Trips())
}

type createTripRequest struct {
	Name string `json:"name"`
}

func (h *handler) createTrip(c *gin.Context) {
	var req createTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	trip, err := h.svc.CreateTrip(c.Request.Context(), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

func (h *handler) getTrip(c *gin.Context) {
	trip, err := h.svc.Trip(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

type updateTripRequest struct {
	Name  *string `json:"name,omitempty"`
	Photo *string `json:"photo,omitempty"`
}

func (h *handler) updateTrip(c *gin.Context) {
	var req updateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	if req.Name != nil {
		if err := h.svc.RenameTrip(ctx, id, *req.Name); err != nil {
			h.fail(c, err)
			return
		}
	}
	if req.Photo != nil {
		if err := h.svc.SetTripPhoto(ctx, id, *req.Photo); err != nil {
			h.fail(c, err)
			return
		}
	}

	trip, err := h.svc.Trip(id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

type addMemberRequest struct {
	// FriendID adds an existing friend; Name quick-creates one. Exactly one
	// must be set.
	FriendID string `json:"friend_id,omitempty"`
	Name     string `json:"name,omitempty"`
}

func (h *handler) addMember(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	tripID := c.Param("id")
	switch {
	case req.FriendID != "" && req.Name == "":
		if err := h.svc.AddMember(ctx, tripID, req.FriendID); err != nil {
			h.fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	case req.Name != "" && req.FriendID == "":
		friend, err := h.svc.QuickAddMember(ctx, tripID, req.Name)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, friend)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "set exactly one of friend_id or name"})
	}
}

func (h *handler) addExpense(c *gin.Context) {
	var in service.ExpenseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	expense, err := h.svc.AddExpense(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *handler) balances(c *gin.Context) {
	balances, err := h.svc.Balances(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balances": balances})
}

func (h *handler) settlement(c *gin.Context) {
	plan, err := h.svc.SettlementPlan(c.Param("id"))
	if errors.Is(err, calculator.ErrNothingToSettle) {
		c.JSON(http.StatusOK, gin.H{"transfers": []service.PlannedTransfer{}, "settled": true})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transfers": plan, "settled": false})
}

func (h *handler) exportTrip(c *gin.Context) {
	includePrivate := c.Query("include_private") == "true"

	token, err := h.svc.ExportTrip(c.Param("id"), includePrivate)
	if err != nil {
		h.fail(c, err)
		return
	}
	tripExports.Inc()
	c.JSON(http.StatusOK, gin.H{"token": token})
}

type importRequest struct {
	Token string `json:"token"`
}

func (h *handler) importTrip(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tripID, err := h.svc.ImportTrip(c.Request.Context(), req.Token)
	if err != nil {
		tripImports.WithLabelValues("rejected").Inc()
		h.fail(c, err)
		return
	}
	tripImports.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"trip_id": tripID})
}

func (h *handler) selectedTrip(c *gin.Context) {
	id := h.svc.SelectedTripID()
	if id == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "no trip selected"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip_id": id})
}

type selectTripRequest struct {
	TripID string `json:"trip_id"`
}

func (h *handler) selectTrip(c *gin.Context) {
	var req selectTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.SelectTrip(c.Request.Context(), req.TripID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
