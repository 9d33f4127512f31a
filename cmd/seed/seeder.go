package main

import (
	"context"
	"fmt"
	"strings"

	"Fundbridge/internal/domain/helprequest"
	"Fundbridge/internal/domain/messaging"
	"Fundbridge/internal/domain/proposal"
	"Fundbridge/internal/domain/shared"
	"Fundbridge/internal/domain/user"
	"Fundbridge/internal/infrastructure"
	"Fundbridge/internal/infrastructure/events"
	"Fundbridge/internal/logger"
	"Fundbridge/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type Seeder struct {
	Users        *user.Service
	HelpRequests *helprequest.Service
	Proposals    *proposal.Service
	Messaging    *messaging.Service
}

type Report struct {
	Users         int
	HelpRequests  int
	Proposals     int
	Decisions     int
	Conversations int
	Messages      int
}

func (r Report) String() string {
	return fmt.Sprintf(
		"usuários=%d pedidos=%d propostas=%d decisões=%d conversas=%d mensagens=%d",
		r.Users, r.HelpRequests, r.Proposals, r.Decisions, r.Conversations, r.Messages,
	)
}

func NewSeeder(db *gorm.DB, publisher events.Publisher) *Seeder {
	userSvc := user.NewService(&infrastructure.UserRepository{DB: db})
	checker := shared.NewUserCheckerService(user.NewUserServiceAdapter(userSvc))
	helpRequestSvc := helprequest.NewService(&infrastructure.HelpRequestRepository{DB: db}, userSvc, checker)

	return &Seeder{
		Users:        userSvc,
		HelpRequests: helpRequestSvc,
		Proposals:    proposal.NewService(&infrastructure.ProposalRepository{DB: db}, helpRequestSvc, userSvc, publisher, nil),
		Messaging:    messaging.NewService(&infrastructure.MessagingStore{DB: db}, helpRequestSvc, publisher, checker),
	}
}

// Apply grava as fixtures na ordem de dependência e para no primeiro erro.
func (s *Seeder) Apply(ctx context.Context, fixtures *Fixtures) (Report, error) {
	var report Report
	users := make(map[string]ulid.ULID, len(fixtures.Users))
	requests := make(map[string]*helprequest.HelpRequest, len(fixtures.HelpRequests))

	for _, f := range fixtures.Users {
		entity := &user.User{
			Name:  f.Name,
			Email: f.Email,
			Role:  user.Role(strings.ToUpper(strings.TrimSpace(f.Role))),
			Bio:   f.Bio,
		}
		if err := s.Users.Create(ctx, entity); err != nil {
			return report, fmt.Errorf("usuário %q: %w", f.Key, err)
		}
		users[f.Key] = entity.Id
		report.Users++
	}

	for _, f := range fixtures.HelpRequests {
		entity, err := s.HelpRequests.Create(ctx, helprequest.CreateInput{
			OwnerId:         users[f.Owner],
			Kind:            helprequest.Kind(strings.ToUpper(strings.TrimSpace(f.Kind))),
			Title:           f.Title,
			Description:     f.Description,
			RequestedAmount: pkg.CoerceAmount(f.RequestedAmount),
		})
		if err != nil {
			return report, fmt.Errorf("pedido %q: %w", f.Key, err)
		}
		requests[f.Key] = entity
		report.HelpRequests++
	}

	for i, f := range fixtures.Proposals {
		request := requests[f.HelpRequest]
		input := proposal.CreateInput{
			AuthorId:      users[f.Author],
			HelpRequestId: request.Id,
			Kind:          request.Kind,
			Message:       f.Message,
		}
		if request.Kind == helprequest.KindFinancial {
			input.Amount = pkg.CoerceAmount(f.Amount)
		} else {
			input.Technical = &proposal.TechnicalTerms{
				Expertise:     f.Expertise,
				HoursPerWeek:  f.HoursPerWeek,
				DurationWeeks: f.DurationWeeks,
			}
		}

		entity, err := s.Proposals.Create(ctx, input)
		if err != nil {
			return report, fmt.Errorf("proposta %d: %w", i, err)
		}
		report.Proposals++

		status, ok := proposal.ParseStatus(f.Status)
		if !ok || status == proposal.StatusPending {
			continue
		}
		if _, err := s.Proposals.UpdateStatus(ctx, entity.Id, request.OwnerId, status); err != nil {
			return report, fmt.Errorf("proposta %d (%s): %w", i, status, err)
		}
		report.Decisions++
	}

	for i, f := range fixtures.Conversations {
		var helpRequestID *ulid.ULID
		if f.HelpRequest != "" {
			id := requests[f.HelpRequest].Id
			helpRequestID = &id
		}

		conversation, created, err := s.Messaging.StartConversation(ctx, users[f.Participants[0]], users[f.Participants[1]], helpRequestID)
		if err != nil {
			return report, fmt.Errorf("conversa %d: %w", i, err)
		}
		if created {
			report.Conversations++
		}

		for j, m := range f.Messages {
			if _, err := s.Messaging.Send(ctx, conversation.Id, users[m.From], m.Body); err != nil {
				return report, fmt.Errorf("conversa %d mensagem %d: %w", i, j, err)
			}
			report.Messages++
		}
	}

	logger.Info().
		Int("users", report.Users).
		Int("help_requests", report.HelpRequests).
		Int("proposals", report.Proposals).
		Int("conversations", report.Conversations).
		Msg("Seed concluído")

	return report, nil
}
