package handler

import (
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"

	"github.com/mattwyattcooper/circularbuild-sub000/pkg/response"
)

type HealthHandler struct {
	firestoreClient *firestore.Client
	startedAt       time.Time
}

func NewHealthHandler(firestoreClient *firestore.Client) *HealthHandler {
	return &HealthHandler{
		firestoreClient: firestoreClient,
		startedAt:       time.Now(),
	}
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	return response.Success(c, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(h.startedAt).String(),
	})
}

// CheckStoreHealth verifies the Firestore connection with a cheap read.
func (h *HealthHandler) CheckStoreHealth(c echo.Context) error {
	ctx := c.Request().Context()

	_, err := h.firestoreClient.Collection("listings").Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return response.Success(c, map[string]interface{}{
			"status": "degraded",
			"error":  err.Error(),
		})
	}

	return response.Success(c, map[string]interface{}{
		"status": "ok",
	})
}
