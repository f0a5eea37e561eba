package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/astroconsulta/platform-api/internal/core/domain"
	"github.com/astroconsulta/platform-api/internal/core/ports"
)

// ClientHandler handles HTTP requests for client management.
type ClientHandler struct {
	service ports.ClientService
	users   ports.UserRepository
}

func NewClientHandler(service ports.ClientService, users ports.UserRepository) *ClientHandler {
	return &ClientHandler{service: service, users: users}
}

// Create registers a new client for the acting consultant.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClientRequest  true  "Client details"
// @Success      201   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if err != nil {
		return err
	}

	var req createClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.CreateClientInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Notes:     req.Notes,
	}
	if req.Birth != nil {
		input.Birth = &ports.BirthDataInput{
			Date:      req.Birth.Date,
			City:      req.Birth.City,
			Country:   req.Birth.Country,
			Timezone:  req.Birth.Timezone,
			Latitude:  req.Birth.Latitude,
			Longitude: req.Birth.Longitude,
		}
	}

	client, err := h.service.Create(c.Request().Context(), input, actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toClientResponse(client))
}

// Get returns one client.
//
// @Summary      Get a client by id
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Client id"
// @Success      200 {object}  clientResponse
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if err != nil {
		return err
	}

	client, err := h.service.Get(c.Request().Context(), c.Param("id"), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toClientResponse(client))
}

// Update applies a partial update to a client.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Client id"
// @Param        body  body      updateClientRequest  true  "Fields to update"
// @Success      200   {object}  clientResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if err != nil {
		return err
	}

	var req updateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	client, err := h.service.Update(c.Request().Context(), ports.UpdateClientInput{
		ClientID:  c.Param("id"),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Notes:     req.Notes,
	}, actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toClientResponse(client))
}

// List returns the actor's clients, paginated. An optional q parameter
// switches to name/email search within the same tenant scope.
//
// @Summary      List or search clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        q      query     string  false  "Search term (name or email)"
// @Param        skip   query     int     false  "Items to skip"
// @Param        limit  query     int     false  "Page size (max 100)"
// @Success      200    {object}  listClientsResponse
// @Failure      403    {object}  errorResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if err != nil {
		return err
	}

	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	var page *ports.ClientList
	if q := c.QueryParam("q"); q != "" {
		page, err = h.service.Search(c.Request().Context(), q, actor, skip, limit)
	} else {
		page, err = h.service.List(c.Request().Context(), actor, skip, limit)
	}
	if err != nil {
		return err
	}

	data := make([]clientResponse, 0, len(page.Clients))
	for _, client := range page.Clients {
		data = append(data, toClientResponse(client))
	}
	return c.JSON(http.StatusOK, listClientsResponse{
		Data: data,
		Pagination: paginationResponse{
			Total: page.Total,
			Skip:  page.Skip,
			Limit: page.Limit,
		},
	})
}

// Search finds clients by partial name or email within the actor's tenant.
//
// @Summary      Search clients by name or email
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Param        q      query     string  true   "Search term"
// @Param        skip   query     int     false  "Items to skip"
// @Param        limit  query     int     false  "Page size (max 100)"
// @Success      200    {object}  listClientsResponse
// @Failure      400    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /api/clients/search [get]
func (h *ClientHandler) Search(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if err != nil {
		return err
	}

	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}

	skip, _ := strconv.Atoi(c.QueryParam("skip"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	page, err := h.service.Search(c.Request().Context(), q, actor, skip, limit)
	if err != nil {
		return err
	}

	data := make([]clientResponse, 0, len(page.Clients))
	for _, client := range page.Clients {
		data = append(data, toClientResponse(client))
	}
	return c.JSON(http.StatusOK, listClientsResponse{
		Data: data,
		Pagination: paginationResponse{
			Total: page.Total,
			Skip:  page.Skip,
			Limit: page.Limit,
		},
	})
}

// Delete removes a client.
//
// @Summary      Delete a client
// @Tags         clients
// @Security     BearerAuth
// @Param        id  path  string  true  "Client id"
// @Success      204 "No Content"
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	actor, err := resolveActor(c, h.users)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func toClientResponse(client *domain.Client) clientResponse {
	resp := clientResponse{
		ID:           client.ID,
		ConsultantID: client.ConsultantID,
		FirstName:    client.FirstName,
		LastName:     client.LastName,
		Email:        client.Email,
		Phone:        client.Phone,
		Notes:        client.Notes,
		CreatedAt:    client.CreatedAt,
		UpdatedAt:    client.UpdatedAt,
	}
	if client.BirthData != nil {
		resp.BirthData = &birthDataResponse{
			Date:      client.BirthData.Date,
			City:      client.BirthData.City,
			Country:   client.BirthData.Country,
			Timezone:  client.BirthData.Timezone,
			Latitude:  client.BirthData.Latitude,
			Longitude: client.BirthData.Longitude,
		}
	}
	return resp
}
