package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/fieldserve/jobs-system/internal/core/authz"
	"github.com/fieldserve/jobs-system/internal/core/domain"
	"github.com/fieldserve/jobs-system/internal/core/ports"
)

// ClientService implements client record management. Clients carry no
// ownership: creation and deletion are ADMIN-only, everything else needs
// authentication only.
type ClientService struct {
	clients ports.ClientRepository
	jobs    ports.JobRepository
	log     zerolog.Logger
}

func NewClientService(clients ports.ClientRepository, jobs ports.JobRepository, log zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, jobs: jobs, log: log}
}

func (s *ClientService) Create(ctx context.Context, in ports.CreateClientInput, actor domain.Actor) (*domain.Client, error) {
	if err := authz.Decide(actor, authz.AdminOnly, nil); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	client, err := s.clients.Create(ctx, &domain.Client{
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("client_id", client.ID).Msg("client created")
	return client, nil
}

func (s *ClientService) List(ctx context.Context, in ports.ListClientsInput, actor domain.Actor) (*ports.ClientListResult, error) {
	if err := authz.Decide(actor, authz.AnyAuthenticated, nil); err != nil {
		return nil, err
	}

	page, limit := normalizePage(in.Page, in.Limit)
	items, total, err := s.clients.List(ctx, ports.ListClientsFilter{
		Search: in.Search,
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ClientListResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *ClientService) Get(ctx context.Context, id string, actor domain.Actor) (*domain.Client, error) {
	if err := authz.Decide(actor, authz.AnyAuthenticated, nil); err != nil {
		return nil, err
	}
	return s.clients.FindByID(ctx, id)
}

func (s *ClientService) Update(ctx context.Context, id string, patch ports.ClientPatch, actor domain.Actor) (*domain.Client, error) {
	if err := authz.Decide(actor, authz.AnyAuthenticated, nil); err != nil {
		return nil, err
	}
	if _, err := s.clients.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.clients.Update(ctx, id, patch)
}

func (s *ClientService) Remove(ctx context.Context, id string, actor domain.Actor) error {
	if err := authz.Decide(actor, authz.AdminOnly, nil); err != nil {
		return err
	}
	if _, err := s.clients.FindByID(ctx, id); err != nil {
		return err
	}
	return s.clients.Delete(ctx, id)
}

// Jobs returns the client together with its jobs, newest first.
func (s *ClientService) Jobs(ctx context.Context, id string, actor domain.Actor) (*ports.ClientWithJobs, error) {
	if err := authz.Decide(actor, authz.AnyAuthenticated, nil); err != nil {
		return nil, err
	}

	client, err := s.clients.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	jobs, err := s.jobs.FindByClient(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ports.ClientWithJobs{Client: client, Jobs: jobs}, nil
}
