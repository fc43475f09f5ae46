package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"oficina-api/internal/dto"
	"oficina-api/internal/models"
	"oficina-api/internal/period"
	"oficina-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrVehicleModel    = errors.New("vehicle model is required")
	ErrInvalidClientID = errors.New("client_id must be a valid id")
)

// ClientService keeps the shop's customer and vehicle registry.
type ClientService struct {
	clients ClientStore
	logger  *zap.Logger
	now     func() time.Time
}

func NewClientService(clients ClientStore, logger *zap.Logger) *ClientService {
	return &ClientService{
		clients: clients,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *ClientService) Create(ctx context.Context, req *dto.ClientRequest) (*dto.ClientResponse, error) {
	client := &models.Client{ID: uuid.New(), CreatedAt: s.now().UTC()}
	if err := fillClient(client, req); err != nil {
		return nil, err
	}

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, err
	}

	s.logger.Info("Client created", zap.String("client_id", client.ID.String()))

	resp := toClientResponse(client)
	return &resp, nil
}

func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error) {
	client, err := s.getClient(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toClientResponse(client)
	return &resp, nil
}

// List returns a page of ten clients. search ignores case and accents.
func (s *ClientService) List(ctx context.Context, page int, search string) (*dto.ClientListResponse, error) {
	page = normalizePage(page)
	filter := repository.ClientFilter{
		Search: period.Normalize(search),
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}

	clients, err := s.clients.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.clients.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ClientListResponse{
		Clients:    make([]dto.ClientResponse, 0, len(clients)),
		Page:       page,
		TotalPages: totalPages(count),
		Total:      count,
	}
	for _, c := range clients {
		resp.Clients = append(resp.Clients, toClientResponse(c))
	}
	return resp, nil
}

func (s *ClientService) Edit(ctx context.Context, id uuid.UUID, req *dto.ClientRequest) (*dto.ClientResponse, error) {
	client, err := s.getClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fillClient(client, req); err != nil {
		return nil, err
	}

	if err := s.clients.Update(ctx, client); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	s.logger.Info("Client updated", zap.String("client_id", id.String()))

	resp := toClientResponse(client)
	return &resp, nil
}

func (s *ClientService) CreateVehicle(ctx context.Context, req *dto.VehicleRequest) (*dto.VehicleResponse, error) {
	vehicle := &models.Vehicle{ID: uuid.New(), CreatedAt: s.now().UTC()}
	if err := fillVehicle(vehicle, req); err != nil {
		return nil, err
	}

	if err := s.clients.CreateVehicle(ctx, vehicle); err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	s.logger.Info("Vehicle created",
		zap.String("vehicle_id", vehicle.ID.String()),
		zap.String("client_id", vehicle.ClientID.String()),
	)

	return s.GetVehicle(ctx, vehicle.ID)
}

func (s *ClientService) GetVehicle(ctx context.Context, id uuid.UUID) (*dto.VehicleResponse, error) {
	vehicle, err := s.getVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toVehicleResponse(vehicle)
	return &resp, nil
}

// ListVehicles returns a page of ten vehicles, newest first.
func (s *ClientService) ListVehicles(ctx context.Context, q dto.VehicleQuery) (*dto.VehicleListResponse, error) {
	page := normalizePage(q.Page)
	filter := repository.VehicleFilter{
		Model:        cleanText(q.Model),
		LicensePlate: strings.ToUpper(cleanText(q.LicensePlate)),
		Limit:        pageSize,
		Offset:       (page - 1) * pageSize,
	}
	if q.ClientID != "" {
		clientID, err := uuid.Parse(q.ClientID)
		if err != nil {
			return nil, ErrInvalidClientID
		}
		filter.ClientID = &clientID
	}

	vehicles, err := s.clients.ListVehicles(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.clients.CountVehicles(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.VehicleListResponse{
		Vehicles:   make([]dto.VehicleResponse, 0, len(vehicles)),
		Page:       page,
		TotalPages: totalPages(count),
		Total:      count,
	}
	for _, v := range vehicles {
		resp.Vehicles = append(resp.Vehicles, toVehicleResponse(v))
	}
	return resp, nil
}

func (s *ClientService) EditVehicle(ctx context.Context, id uuid.UUID, req *dto.VehicleRequest) (*dto.VehicleResponse, error) {
	vehicle, err := s.getVehicle(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fillVehicle(vehicle, req); err != nil {
		return nil, err
	}

	if err := s.clients.UpdateVehicle(ctx, vehicle); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrVehicleNotFound
		case errors.Is(err, repository.ErrClientNotFound):
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	s.logger.Info("Vehicle updated", zap.String("vehicle_id", id.String()))

	return s.GetVehicle(ctx, id)
}

func (s *ClientService) getClient(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *ClientService) getVehicle(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	vehicle, err := s.clients.GetVehicle(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return vehicle, nil
}

func fillClient(c *models.Client, req *dto.ClientRequest) error {
	name := cleanText(req.Name)
	if name == "" {
		return ErrClientNameRequired
	}
	c.Name = name
	c.Phone = cleanText(req.Phone)
	c.CPF = cleanText(req.CPF)
	c.Address = cleanText(req.Address)
	return nil
}

func fillVehicle(v *models.Vehicle, req *dto.VehicleRequest) error {
	clientID, err := uuid.Parse(strings.TrimSpace(req.ClientID))
	if err != nil {
		return ErrInvalidClientID
	}
	model := cleanText(req.Model)
	if model == "" {
		return ErrVehicleModel
	}

	v.ClientID = clientID
	v.Brand = cleanText(req.Brand)
	v.Model = model
	v.LicensePlate = strings.ToUpper(strings.ReplaceAll(cleanText(req.LicensePlate), " ", ""))
	v.Year = cleanText(req.Year)
	v.Color = cleanText(req.Color)
	v.Chassis = strings.ToUpper(cleanText(req.Chassis))
	return nil
}

func toClientResponse(c *models.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Phone:     c.Phone,
		CPF:       c.CPF,
		Address:   c.Address,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toVehicleResponse(v *models.Vehicle) dto.VehicleResponse {
	return dto.VehicleResponse{
		ID:           v.ID.String(),
		ClientID:     v.ClientID.String(),
		ClientName:   v.ClientName,
		Brand:        v.Brand,
		Model:        v.Model,
		LicensePlate: v.LicensePlate,
		Year:         v.Year,
		Color:        v.Color,
		Chassis:      v.Chassis,
		CreatedAt:    v.CreatedAt.UTC().Format(time.RFC3339),
	}
}
