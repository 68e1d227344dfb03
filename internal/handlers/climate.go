package handlers

import (
	"errors"
	"net/http"

	"ac_remote_control/internal/climate"
	"ac_remote_control/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	statusOK             = "ok"
	statusModeSet        = "hvac_mode_set"
	statusTemperatureSet = "temperature_set"
	statusPresetSet      = "preset_mode_set"
	statusUnchanged      = "unchanged"

	errGetState        = "failed to load state"
	errInvalidBodyPref = "invalid body: "
	errServiceCall     = "failed to apply change"
)

func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondServiceError maps a rejected service call to 400 and anything else to 500.
func (h *Handler) respondServiceError(c *gin.Context, logKey string, err error) {
	var verr *climate.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   verr.Error(),
			"field":   verr.Field,
			"allowed": verr.Allowed,
		})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, errServiceCall, logKey, err)
}

// Respond with a status and include current state if available (best-effort).
func (h *Handler) respondWithStatusAndState(c *gin.Context, status string, extra gin.H) {
	resp := gin.H{"status": status}
	for k, v := range extra {
		resp[k] = v
	}
	if st, err := h.services.Climate.GetState(c.Request.Context()); err == nil {
		resp["state"] = st
	}
	c.JSON(http.StatusOK, resp)
}

// SetHVACModeRequest is the body of POST /api/v1/climate/hvac_mode.
type SetHVACModeRequest struct {
	// Allowed: heat, cool, off
	HVACMode string `json:"hvac_mode" binding:"required" example:"cool"`
}

// SetTemperatureRequest is the body of POST /api/v1/climate/temperature.
// A missing temperature leaves the state unchanged.
type SetTemperatureRequest struct {
	Temperature *float64 `json:"temperature" example:"22.5"`
}

// SetPresetModeRequest is the body of POST /api/v1/climate/preset_mode.
type SetPresetModeRequest struct {
	// "none" or one of the configured presets
	PresetMode string `json:"preset_mode" binding:"required" example:"eco"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Get climate state
// @Tags         climate
// @Produce      json
// @Success      200  {object}  models.ClimateState
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/climate/state [get]
// @Security     BearerAuth
func (h *Handler) getState(c *gin.Context) {
	st, err := h.services.Climate.GetState(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetState, "climate_get_state_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Set HVAC mode
// @Tags         climate
// @Accept       json
// @Produce      json
// @Param        body  body      SetHVACModeRequest  true  "Mode payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/climate/hvac_mode [post]
// @Security     BearerAuth
func (h *Handler) setHVACMode(c *gin.Context) {
	var req SetHVACModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	mode := models.HVACMode(req.HVACMode)
	if err := h.services.Climate.SetHVACMode(c.Request.Context(), mode); err != nil {
		h.respondServiceError(c, "climate_set_hvac_mode_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusModeSet, gin.H{"hvac_mode": mode})
}

// @Summary      Set target temperature
// @Description  A body without temperature is accepted and changes nothing.
// @Tags         climate
// @Accept       json
// @Produce      json
// @Param        body  body      SetTemperatureRequest  true  "Temperature payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/climate/temperature [post]
// @Security     BearerAuth
func (h *Handler) setTemperature(c *gin.Context) {
	var req SetTemperatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if req.Temperature == nil {
		h.respondWithStatusAndState(c, statusUnchanged, gin.H{})
		return
	}
	if err := h.services.Climate.SetTemperature(c.Request.Context(), req.Temperature); err != nil {
		h.respondServiceError(c, "climate_set_temperature_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusTemperatureSet, gin.H{"temperature": *req.Temperature})
}

// @Summary      Set preset mode
// @Tags         climate
// @Accept       json
// @Produce      json
// @Param        body  body      SetPresetModeRequest  true  "Preset payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/climate/preset_mode [post]
// @Security     BearerAuth
func (h *Handler) setPresetMode(c *gin.Context) {
	var req SetPresetModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Climate.SetPresetMode(c.Request.Context(), req.PresetMode); err != nil {
		h.respondServiceError(c, "climate_set_preset_mode_failed", err)
		return
	}
	h.respondWithStatusAndState(c, statusPresetSet, gin.H{"preset_mode": req.PresetMode})
}
