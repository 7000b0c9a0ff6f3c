package handlers

import (
	"net/http"

	"roomservice/services/location"
	"roomservice/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LocationHandler serves hotel locations and their QR codes.
type LocationHandler struct {
	LocationService location.LocationService
}

func NewLocationHandler(svc location.LocationService) *LocationHandler {
	return &LocationHandler{LocationService: svc}
}

type locationRequest struct {
	Location string `json:"location"`
}

func (h *LocationHandler) GetAllLocationsHandler(c *gin.Context) {
	locations, err := h.LocationService.ListLocations()
	if err != nil {
		utils.RespondError(c, err, "Failed to get locations")
		return
	}
	c.JSON(http.StatusOK, locations)
}

func (h *LocationHandler) CreateLocationHandler(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Location is required"})
		return
	}
	loc, err := h.LocationService.CreateLocation(req.Location)
	if err != nil {
		utils.RespondError(c, err, "Failed to create location")
		return
	}
	c.JSON(http.StatusCreated, loc)
}

// UpdateLocationHandler renames a location; its QR codes are re-rendered.
func (h *LocationHandler) UpdateLocationHandler(c *gin.Context) {
	var req locationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Location is required"})
		return
	}
	res, err := h.LocationService.UpdateLocation(c.Request.Context(), c.Param("id"), req.Location)
	if err != nil {
		utils.RespondError(c, err, "Failed to update location")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"updatedLocation": res.Location,
		"updatedQRCodes":  res.UpdatedQRCodes,
		"message":         "Location and related QR codes updated successfully.",
	})
}

func (h *LocationHandler) DeleteLocationHandler(c *gin.Context) {
	res, err := h.LocationService.DeleteLocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Failed to delete location")
		return
	}
	getLogger(c).Info("Location deleted", zap.String("id", res.Location.ID), zap.Int("qrcodes", len(res.QRCodes)))
	c.JSON(http.StatusOK, gin.H{"message": "Location and related QR codes deleted."})
}

func (h *LocationHandler) CreateQRCodeHandler(c *gin.Context) {
	var req struct {
		LocationID string `json:"locationId"`
		Label      string `json:"label"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Message: "Location ID and label are required"})
		return
	}
	qr, err := h.LocationService.CreateQRCode(c.Request.Context(), req.LocationID, req.Label)
	if err != nil {
		utils.RespondError(c, err, "Failed to create QR code")
		return
	}
	c.JSON(http.StatusCreated, qr)
}

func (h *LocationHandler) GetAllQRCodesHandler(c *gin.Context) {
	codes, err := h.LocationService.ListQRCodes()
	if err != nil {
		utils.RespondError(c, err, "Failed to get QR codes")
		return
	}
	c.JSON(http.StatusOK, codes)
}

func (h *LocationHandler) GetGroupedQRCodesHandler(c *gin.Context) {
	groups, err := h.LocationService.ListGrouped()
	if err != nil {
		utils.RespondError(c, err, "Failed to get QR codes")
		return
	}
	c.JSON(http.StatusOK, groups)
}

// GetQRCodesByLocationHandler accepts locationId from the JSON body or the
// query string.
func (h *LocationHandler) GetQRCodesByLocationHandler(c *gin.Context) {
	var req struct {
		LocationID string `json:"locationId"`
	}
	_ = c.ShouldBindJSON(&req)
	if req.LocationID == "" {
		req.LocationID = c.Query("locationId")
	}
	codes, err := h.LocationService.ListByLocation(req.LocationID)
	if err != nil {
		utils.RespondError(c, err, "Failed to get QR codes")
		return
	}
	c.JSON(http.StatusOK, codes)
}

// GetQRCodeDataHandler is public: guests resolve the code they scanned.
func (h *LocationHandler) GetQRCodeDataHandler(c *gin.Context) {
	data, err := h.LocationService.GetQRCodeData(c.Param("id"))
	if err != nil {
		utils.RespondError(c, err, "Failed to get QR code")
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *LocationHandler) DeleteQRCodeHandler(c *gin.Context) {
	if _, err := h.LocationService.DeleteQRCode(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err, "Failed to delete QR code")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "QR code deleted successfully."})
}
