package order

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AdeebIsmail/PandaExpressPOS/internal/catalog"
)

type Handler struct {
	orchestrator *Orchestrator
	sessions     *SessionRegistry
	catalog      *catalog.Service
}

func NewHandler(
	orchestrator *Orchestrator,
	sessions *SessionRegistry,
	catalogService *catalog.Service,
) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		sessions:     sessions,
		catalog:      catalogService,
	}
}

// --------------------------------------------------
// Open a session
// --------------------------------------------------
func (h *Handler) OpenSession(c *gin.Context) {
	employeeID, ok := employeeFromContext(c)
	if !ok {
		return
	}

	session := h.sessions.Open(employeeID)

	c.JSON(http.StatusCreated, gin.H{
		"session_id": session.ID,
		"state":      string(StateBuilding),
	})
}

// --------------------------------------------------
// Combo lifecycle
// --------------------------------------------------
func (h *Handler) StartCombo(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	var req struct {
		Kind string `json:"kind"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.orchestrator.StartCombo(session, ComboKind(req.Kind)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"kind": req.Kind})
}

func (h *Handler) ToggleItem(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := h.catalog.Item(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown item"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}

	if err := h.orchestrator.ToggleItem(session, *item); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"toggled": req.Name})
}

func (h *Handler) ConfirmCombo(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	var req struct {
		Size string `json:"size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var size Size
	if req.Size != "" {
		parsed, valid := ParseSize(req.Size)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown size"})
			return
		}
		size = parsed
	}

	lines, err := h.orchestrator.ConfirmCombo(c.Request.Context(), session, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"lines": lines})
}

func (h *Handler) AddALaCarte(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
		Size string `json:"size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	size, valid := ParseSize(req.Size)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown size"})
		return
	}

	item, err := h.catalog.Item(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown item"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}

	line, err := h.orchestrator.AddALaCarte(c.Request.Context(), session, *item, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"line": line})
}

// --------------------------------------------------
// Cart
// --------------------------------------------------
func (h *Handler) GetCart(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	lines, total := h.orchestrator.CartView(session)

	c.JSON(http.StatusOK, gin.H{
		"state": string(h.orchestrator.SessionState(session)),
		"lines": lines,
		"total": total,
	})
}

func (h *Handler) RemoveLine(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	var req struct {
		Index *int `json:"index"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index required"})
		return
	}

	if err := h.orchestrator.RemoveLine(session, *req.Index); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": *req.Index})
}

func (h *Handler) ClearCart(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	if err := h.orchestrator.ClearCart(session); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// --------------------------------------------------
// Checkout
// --------------------------------------------------
func (h *Handler) BeginCheckout(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	if err := h.orchestrator.BeginCheckout(session); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": string(StateAwaitingPayment)})
}

func (h *Handler) SetPaymentMethod(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	var req struct {
		Method string `json:"method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.orchestrator.SetPaymentMethod(session, req.Method); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": string(StateAwaitingCustomerInfo)})
}

func (h *Handler) SetCustomerInfo(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.orchestrator.SetCustomerName(session, req.Name); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer_name": req.Name})
}

func (h *Handler) Finalize(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	receipt, err := h.orchestrator.Finalize(c.Request.Context(), session)

	var partial *PartialInventoryError
	if errors.As(err, &partial) {
		// order completed; surface the reconciliation work
		c.JSON(http.StatusOK, gin.H{
			"receipt":              receipt,
			"inventory_failures":   len(partial.Failed),
			"inventory_incomplete": true,
		})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"receipt": receipt})
}

func (h *Handler) Cancel(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	if err := h.orchestrator.Cancel(session); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": string(StateBuilding)})
}

func (h *Handler) GetReceipt(c *gin.Context) {
	session, ok := h.ownedSession(c)
	if !ok {
		return
	}

	receipt, found := h.orchestrator.Receipt(session)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not completed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"receipt": receipt})
}

// --------------------------------------------------
// MANAGER: latest transaction id
// --------------------------------------------------
func (h *Handler) GetLatestTransactionID(c *gin.Context) {
	id, err := h.orchestrator.LatestTransactionID(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"latest_transaction_id": id})
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------
func employeeFromContext(c *gin.Context) (int, bool) {
	val, exists := c.Get("employeeID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, false
	}
	id, ok := val.(int)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid employee context"})
		return 0, false
	}
	return id, true
}

// ownedSession resolves the :id session and checks it belongs to the
// authenticated cashier.
func (h *Handler) ownedSession(c *gin.Context) (*Session, bool) {
	employeeID, ok := employeeFromContext(c)
	if !ok {
		return nil, false
	}

	session, found := h.sessions.Get(c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, false
	}
	if session.EmployeeID != employeeID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your session"})
		return nil, false
	}
	return session, true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrServiceUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case errors.Is(err, ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, ErrIncompleteSelection),
		errors.Is(err, ErrInvalidItem),
		errors.Is(err, ErrMissingPaymentMethod),
		errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrIndexOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
