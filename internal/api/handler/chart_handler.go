package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/astroconsulta/platform-api/internal/api/metrics"
	"github.com/astroconsulta/platform-api/internal/core/domain"
	"github.com/astroconsulta/platform-api/internal/core/ports"
)

// ChartHandler handles HTTP requests for chart calculation.
type ChartHandler struct {
	service ports.ChartService
	users   ports.UserRepository
}

func NewChartHandler(service ports.ChartService, users ports.UserRepository) *ChartHandler {
	return &ChartHandler{service: service, users: users}
}

// CalculateNatal calculates and stores a natal chart for a client.
//
// @Summary      Calculate a natal chart
// @Tags         charts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      calculateNatalRequest  true  "Calculation request"
// @Success      201   {object}  chartResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/charts/natal [post]
func (h *ChartHandler) CalculateNatal(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if err != nil {
		return err
	}

	var req calculateNatalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	chart, err := h.service.CalculateNatal(c.Request().Context(), ports.CalculateNatalChartInput{
		ClientID: req.ClientID,
		Options:  toChartOptions(req.Options),
		Language: req.Language,
	}, actor)
	if err != nil {
		observeCalculationError(err)
		return err
	}
	metrics.ChartsCalculatedTotal.WithLabelValues("natal").Inc()
	metrics.CalculationDuration.WithLabelValues("natal").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusCreated, toChartResponse(chart))
}

// QuickCalculate calculates a chart from raw birth data without persisting it.
//
// @Summary      Quick chart calculation
// @Tags         charts
// @Accept       json
// @Produce      json
// @Param        body  body      quickCalculateRequest  true  "Birth data"
// @Success      200   {object}  quickChartResponse
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/charts/quick-calculate [post]
func (h *ChartHandler) QuickCalculate(c echo.Context) error {
	var req quickCalculateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	result, err := h.service.QuickCalculate(c.Request().Context(), ports.QuickCalculateInput{
		Name: req.Name,
		Birth: ports.BirthDataInput{
			Date:      req.Birth.Date,
			City:      req.Birth.City,
			Country:   req.Birth.Country,
			Timezone:  req.Birth.Timezone,
			Latitude:  req.Birth.Latitude,
			Longitude: req.Birth.Longitude,
		},
		Options:  toChartOptions(req.Options),
		Language: req.Language,
	})
	if err != nil {
		observeCalculationError(err)
		return err
	}
	metrics.ChartsCalculatedTotal.WithLabelValues("quick").Inc()
	metrics.CalculationDuration.WithLabelValues("quick").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, quickChartResponse{
		Name:         result.Name,
		SunSign:      result.SunSign,
		Data:         result.Data,
		SolarSet:     toSolarSetResponse(result.SolarSet),
		SVG:          result.SVG,
		HouseSystem:  result.HouseSystem,
		CalculatedAt: result.CalculatedAt,
	})
}

// Get returns one stored natal chart.
//
// @Summary      Get a natal chart by id
// @Tags         charts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Chart id"
// @Success      200 {object}  chartResponse
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /api/charts/natal/{id} [get]
func (h *ChartHandler) Get(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if err != nil {
		return err
	}

	chart, err := h.service.GetChart(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toChartResponse(chart))
}

// ListForClient returns a client's stored charts, newest first.
//
// @Summary      List a client's charts
// @Tags         charts
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Client id"
// @Param        skip   query     int     false  "Items to skip"
// @Param        limit  query     int     false  "Page size (max 100)"
// @Success      200    {object}  listChartsResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /api/charts/client/{id}/charts [get]
func (h *ChartHandler) ListForClient(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if err != nil {
		return err
	}

	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	charts, err := h.service.ListClientCharts(c.Request().Context(), c.Param("id"), actor, skip, limit)
	if err != nil {
		return err
	}

	data := make([]chartResponse, 0, len(charts))
	for _, chart := range charts {
		data = append(data, toChartResponse(chart))
	}
	return c.JSON(http.StatusOK, listChartsResponse{Data: data})
}

// CalculateTransits calculates transits against a stored natal chart.
//
// @Summary      Calculate transits for a natal chart
// @Tags         charts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Natal chart id"
// @Param        body  body      calculateTransitsRequest  true  "Transit request"
// @Success      201   {object}  transitResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/charts/natal/{id}/transits [post]
func (h *ChartHandler) CalculateTransits(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if err != nil {
		return err
	}

	var req calculateTransitsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var overrides map[domain.AspectType]float64
	if len(req.OrbOverrides) > 0 {
		overrides = make(map[domain.AspectType]float64, len(req.OrbOverrides))
		for name, orb := range req.OrbOverrides {
			overrides[domain.AspectType(name)] = orb
		}
	}

	start := time.Now()
	transit, err := h.service.CalculateTransits(c.Request().Context(), ports.CalculateTransitsInput{
		NatalChartID: c.Param("id"),
		TargetDate:   req.TargetDate,
		OrbOverrides: overrides,
		Language:     req.Language,
	}, actor)
	if err != nil {
		observeCalculationError(err)
		return err
	}
	metrics.ChartsCalculatedTotal.WithLabelValues("transit").Inc()
	metrics.CalculationDuration.WithLabelValues("transit").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusCreated, transitResponse{
		ID:                 transit.ID,
		ClientID:           transit.ClientID,
		NatalChartID:       transit.NatalChartID,
		TransitDate:        transit.TransitDate,
		Data:               transit.Data,
		SignificantAspects: transit.SignificantAspects,
		Interpretations:    transit.Interpretations,
		CalculatedAt:       transit.CalculatedAt,
	})
}

// CalculateSolarReturn calculates the annual return chart for one year.
//
// @Summary      Calculate a solar return
// @Tags         charts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                       true  "Natal chart id"
// @Param        body  body      calculateSolarReturnRequest  true  "Solar return request"
// @Success      201   {object}  solarReturnResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/charts/natal/{id}/solar-return [post]
func (h *ChartHandler) CalculateSolarReturn(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if err != nil {
		return err
	}

	var req calculateSolarReturnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	start := time.Now()
	sr, err := h.service.CalculateSolarReturn(c.Request().Context(), ports.CalculateSolarReturnInput{
		NatalChartID: c.Param("id"),
		Year:         req.Year,
		Language:     req.Language,
	}, actor)
	if err != nil {
		observeCalculationError(err)
		return err
	}
	metrics.ChartsCalculatedTotal.WithLabelValues("solar_return").Inc()
	metrics.CalculationDuration.WithLabelValues("solar_return").Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusCreated, solarReturnResponse{
		ID:              sr.ID,
		ClientID:        sr.ClientID,
		NatalChartID:    sr.NatalChartID,
		ReturnYear:      sr.ReturnYear,
		ReturnDatetime:  sr.ReturnDatetime,
		LocationCity:    sr.LocationCity,
		LocationCountry: sr.LocationCountry,
		Data:            sr.Data,
		SolarSet:        toSolarSetResponse(sr.SolarSet),
		HouseSystem:     sr.HouseSystem,
		IsRelocated:     sr.IsRelocated,
		Interpretations: sr.Interpretations,
		CalculatedAt:    sr.CalculatedAt,
	})
}

func toChartOptions(req chartOptionsRequest) ports.NatalChartOptions {
	return ports.NatalChartOptions{
		IncludeChiron: req.IncludeChiron,
		IncludeLilith: req.IncludeLilith,
		IncludeNodes:  req.IncludeNodes,
		HouseSystem:   req.HouseSystem,
	}
}

func toSolarSetResponse(set domain.SolarSet) solarSetResponse {
	return solarSetResponse{
		SunSign:        set.SunSign,
		SunHouse:       set.SunHouse,
		SunDegree:      set.SunDegree,
		FifthHouseSign: set.FifthHouseSign,
		HardAspects:    set.HardAspects,
	}
}

func toChartResponse(chart *domain.NatalChart) chartResponse {
	return chartResponse{
		ID:              chart.ID,
		ClientID:        chart.ClientID,
		Name:            chart.Name,
		Data:            chart.Data,
		SolarSet:        toSolarSetResponse(chart.SolarSet),
		HouseSystem:     chart.HouseSystem,
		CalculatedAt:    chart.CalculatedAt,
		Interpretations: chart.Interpretations,
		SVGURL:          chart.SVGURL,
		PDFURL:          chart.PDFURL,
	}
}

func observeCalculationError(err error) {
	var de *domain.Error
	if errors.As(err, &de) && de.Code == domain.CodeCalculation {
		metrics.CalculationErrorsTotal.WithLabelValues(de.Stage).Inc()
	}
}
