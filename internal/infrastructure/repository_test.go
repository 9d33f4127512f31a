package infrastructure_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"Fundbridge/internal/domain/helprequest"
	"Fundbridge/internal/domain/messaging"
	"Fundbridge/internal/domain/proposal"
	"Fundbridge/internal/domain/shared"
	"Fundbridge/internal/domain/user"
	appErrors "Fundbridge/internal/errors"
	"Fundbridge/internal/infrastructure"
	"Fundbridge/internal/pkg"

	"github.com/glebarez/sqlite"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, infrastructure.AutoMigrate(db))
	return db
}

type repos struct {
	users        *infrastructure.UserRepository
	helpRequests *infrastructure.HelpRequestRepository
	proposals    *infrastructure.ProposalRepository
	messaging    *infrastructure.MessagingStore
}

func newRepos(t *testing.T) repos {
	db := newTestDB(t)
	return repos{
		users:        &infrastructure.UserRepository{DB: db},
		helpRequests: &infrastructure.HelpRequestRepository{DB: db},
		proposals:    &infrastructure.ProposalRepository{DB: db},
		messaging:    &infrastructure.MessagingStore{DB: db},
	}
}

func createUser(t *testing.T, r repos, email string, role user.Role) *user.User {
	t.Helper()
	svc := user.NewService(r.users)
	u := &user.User{Name: "Usuário " + email, Email: email, Role: role}
	require.NoError(t, svc.Create(context.Background(), u))
	return u
}

func createRequest(t *testing.T, r repos, owner *user.User, kind helprequest.Kind, amount string) *helprequest.HelpRequest {
	t.Helper()
	now := time.Now()
	h := &helprequest.HelpRequest{
		Id:          ulid.Make(),
		OwnerId:     owner.Id,
		Kind:        kind,
		Title:       "Pedido " + string(kind),
		Description: "descrição",
		Status:      helprequest.StatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if amount != "" {
		h.RequestedAmount = decimal.RequireFromString(amount)
	}
	require.NoError(t, r.helpRequests.Create(context.Background(), h))
	return h
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	created := createUser(t, r, "ana@fundbridge.dev", user.RoleEntrepreneur)

	byEmail, err := r.users.GetByEmail(ctx, "ana@fundbridge.dev")
	require.NoError(t, err)
	assert.Equal(t, created.Id, byEmail.Id)
	assert.Equal(t, user.RoleEntrepreneur, byEmail.Role)

	err = user.NewService(r.users).Create(ctx, &user.User{Name: "Outra", Email: "ANA@fundbridge.dev", Role: user.RoleInvestor})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrEmailAlreadyExists), "got %v", err)

	err = r.users.Create(ctx, &user.User{Id: ulid.Make(), Name: "Direto", Email: "ana@fundbridge.dev", Role: user.RoleMentor})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrEmailAlreadyExists), "unique index must map to email conflict, got %v", err)

	_, err = r.users.GetByID(ctx, ulid.Make())
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUserNotFound))

	name := "Ana Paula"
	updated, err := user.NewService(r.users).UpdateProfile(ctx, created.Id, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ana Paula", updated.Name)

	reloaded, err := r.users.GetByID(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Ana Paula", reloaded.Name)
}

func TestHelpRequestRepository(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	owner := createUser(t, r, "dona@fundbridge.dev", user.RoleEntrepreneur)
	other := createUser(t, r, "outro@fundbridge.dev", user.RoleEntrepreneur)

	financial := createRequest(t, r, owner, helprequest.KindFinancial, "1500.75")
	createRequest(t, r, owner, helprequest.KindTechnical, "")
	createRequest(t, r, other, helprequest.KindFinancial, "300")

	got, err := r.helpRequests.GetByID(ctx, financial.Id)
	require.NoError(t, err)
	assert.True(t, got.RequestedAmount.Equal(decimal.RequireFromString("1500.75")), "got %s", got.RequestedAmount)

	kind := helprequest.KindFinancial
	list, total, err := r.helpRequests.List(ctx, &helprequest.Filters{Kind: &kind}, &pkg.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, list, 2)

	mine, total, err := r.helpRequests.GetByOwnerID(ctx, owner.Id, &pkg.PaginationParams{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, mine, 1)

	require.NoError(t, r.helpRequests.UpdateStatus(ctx, financial.Id, helprequest.StatusClosed))
	status := helprequest.StatusOpen
	open, total, err := r.helpRequests.List(ctx, &helprequest.Filters{Status: &status}, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, h := range open {
		assert.NotEqual(t, financial.Id, h.Id)
	}

	err = r.helpRequests.UpdateStatus(ctx, ulid.Make(), helprequest.StatusClosed)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrHelpRequestNotFound))
}

func TestProposalRepositoryRoundTripAndSums(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	owner := createUser(t, r, "dona@fundbridge.dev", user.RoleEntrepreneur)
	investor := createUser(t, r, "investidor@fundbridge.dev", user.RoleInvestor)
	mentor := createUser(t, r, "mentora@fundbridge.dev", user.RoleMentor)
	financial := createRequest(t, r, owner, helprequest.KindFinancial, "1000")
	technical := createRequest(t, r, owner, helprequest.KindTechnical, "")

	svc := proposal.NewService(r.proposals, r.helpRequests, r.users, nil, nil)

	var created []*proposal.Proposal
	for _, amount := range []string{"250.50", "100", "400"} {
		p, err := svc.Create(ctx, proposal.CreateInput{
			AuthorId:      investor.Id,
			HelpRequestId: financial.Id,
			Kind:          helprequest.KindFinancial,
			Amount:        decimal.RequireFromString(amount),
		})
		require.NoError(t, err)
		created = append(created, p)
	}
	tech, err := svc.Create(ctx, proposal.CreateInput{
		AuthorId:      mentor.Id,
		HelpRequestId: technical.Id,
		Kind:          helprequest.KindTechnical,
		Technical:     &proposal.TechnicalTerms{Expertise: "finanças", HoursPerWeek: 4, DurationWeeks: 6},
	})
	require.NoError(t, err)

	reloaded, err := r.proposals.GetByID(ctx, created[0].Id)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Financial)
	assert.Nil(t, reloaded.Technical)
	assert.True(t, reloaded.Financial.Amount.Equal(decimal.RequireFromString("250.50")))
	assert.True(t, reloaded.Financial.RequestedAmount.Equal(decimal.NewFromInt(1000)))

	reloadedTech, err := r.proposals.GetByID(ctx, tech.Id)
	require.NoError(t, err)
	require.NotNil(t, reloadedTech.Technical)
	assert.Nil(t, reloadedTech.Financial)
	assert.Equal(t, proposal.TechnicalTerms{Expertise: "finanças", HoursPerWeek: 4, DurationWeeks: 6}, *reloadedTech.Technical)

	sum, err := r.proposals.SumAccepted(ctx, financial.Id)
	require.NoError(t, err)
	assert.True(t, sum.IsZero(), "no accepted proposals yet, got %s", sum)

	_, err = svc.UpdateStatus(ctx, created[0].Id, owner.Id, proposal.StatusAccepted)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, created[1].Id, owner.Id, proposal.StatusRefused)
	require.NoError(t, err)

	sum, err = r.proposals.SumAccepted(ctx, financial.Id)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.RequireFromString("250.5")), "got %s", sum)

	received, total, err := r.proposals.ListByHelpRequestOwner(ctx, owner.Id, "", nil)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, received, 4)

	receivedFinancial, total, err := r.proposals.ListByHelpRequestOwner(ctx, owner.Id, helprequest.KindFinancial, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, receivedFinancial, 3)

	sent, total, err := r.proposals.ListByAuthor(ctx, investor.Id, "", nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, sent, 3)

	mentorFinancial, total, err := r.proposals.ListByAuthor(ctx, mentor.Id, helprequest.KindFinancial, nil)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, mentorFinancial)

	decided, err := r.proposals.GetByID(ctx, created[1].Id)
	require.NoError(t, err)
	assert.Equal(t, proposal.StatusRefused, decided.Status)
	assert.NotNil(t, decided.DecidedAt)
}

func TestProposalAcceptanceFundsRequestAndRejectsOvershoot(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	owner := createUser(t, r, "dona@fundbridge.dev", user.RoleEntrepreneur)
	investor := createUser(t, r, "investidor@fundbridge.dev", user.RoleInvestor)
	request := createRequest(t, r, owner, helprequest.KindFinancial, "1000")

	svc := proposal.NewService(r.proposals, r.helpRequests, r.users, nil, nil)
	create := func(amount string) *proposal.Proposal {
		p, err := svc.Create(ctx, proposal.CreateInput{
			AuthorId:      investor.Id,
			HelpRequestId: request.Id,
			Kind:          helprequest.KindFinancial,
			Amount:        decimal.RequireFromString(amount),
		})
		require.NoError(t, err)
		return p
	}

	first := create("600")
	overshoot := create("500")
	closing := create("400")

	_, err := svc.UpdateStatus(ctx, first.Id, owner.Id, proposal.StatusAccepted)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, overshoot.Id, owner.Id, proposal.StatusAccepted)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrProposalExceedsRequested), "got %v", err)

	stillPending, err := r.proposals.GetByID(ctx, overshoot.Id)
	require.NoError(t, err)
	assert.Equal(t, proposal.StatusPending, stillPending.Status)

	_, err = svc.UpdateStatus(ctx, closing.Id, owner.Id, proposal.StatusAccepted)
	require.NoError(t, err)

	funded, err := r.helpRequests.GetByID(ctx, request.Id)
	require.NoError(t, err)
	assert.Equal(t, helprequest.StatusFunded, funded.Status)

	assert.True(t, svc.AcceptedAmount(ctx, request.Id).Equal(decimal.NewFromInt(1000)))
}

func TestProposalTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	owner := createUser(t, r, "dona@fundbridge.dev", user.RoleEntrepreneur)
	request := createRequest(t, r, owner, helprequest.KindFinancial, "1000")

	boom := errors.New("boom")
	err := r.proposals.WithinTransaction(ctx, func(tx proposal.Repository) error {
		locked, err := tx.LockHelpRequest(ctx, request.Id)
		require.NoError(t, err)
		require.NoError(t, tx.UpdateHelpRequestStatus(ctx, locked.Id, helprequest.StatusFunded))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := r.helpRequests.GetByID(ctx, request.Id)
	require.NoError(t, err)
	assert.Equal(t, helprequest.StatusOpen, got.Status)
}

func TestProposalAcceptanceSumsCentAmountsExactly(t *testing.T) {
	tests := []struct {
		name      string
		requested string
		amounts   []string
	}{
		{name: "tres parcelas fecham 1.00", requested: "1.00", amounts: []string{"0.10", "0.20", "0.70"}},
		{name: "duas parcelas fecham 0.30", requested: "0.30", amounts: []string{"0.10", "0.20"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			r := newRepos(t)

			owner := createUser(t, r, "dona@fundbridge.dev", user.RoleEntrepreneur)
			investor := createUser(t, r, "investidor@fundbridge.dev", user.RoleInvestor)
			request := createRequest(t, r, owner, helprequest.KindFinancial, tt.requested)

			svc := proposal.NewService(r.proposals, r.helpRequests, r.users, nil, nil)
			for _, amount := range tt.amounts {
				p, err := svc.Create(ctx, proposal.CreateInput{
					AuthorId:      investor.Id,
					HelpRequestId: request.Id,
					Kind:          helprequest.KindFinancial,
					Amount:        decimal.RequireFromString(amount),
				})
				require.NoError(t, err)

				_, err = svc.UpdateStatus(ctx, p.Id, owner.Id, proposal.StatusAccepted)
				require.NoError(t, err, "accepting %s", amount)
			}

			sum, err := r.proposals.SumAccepted(ctx, request.Id)
			require.NoError(t, err)
			assert.Equal(t, decimal.RequireFromString(tt.requested).String(), sum.String())

			funded, err := r.helpRequests.GetByID(ctx, request.Id)
			require.NoError(t, err)
			assert.Equal(t, helprequest.StatusFunded, funded.Status)
		})
	}
}

func TestProposalDeleteKeepsDecidedRows(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	owner := createUser(t, r, "dona@fundbridge.dev", user.RoleEntrepreneur)
	investor := createUser(t, r, "investidor@fundbridge.dev", user.RoleInvestor)
	request := createRequest(t, r, owner, helprequest.KindFinancial, "1000")

	svc := proposal.NewService(r.proposals, r.helpRequests, r.users, nil, nil)
	p, err := svc.Create(ctx, proposal.CreateInput{
		AuthorId:      investor.Id,
		HelpRequestId: request.Id,
		Kind:          helprequest.KindFinancial,
		Amount:        decimal.NewFromInt(300),
	})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, p.Id, owner.Id, proposal.StatusAccepted)
	require.NoError(t, err)

	// Retirada que leu a proposta ainda pendente chega depois do aceite.
	err = r.proposals.Delete(ctx, p.Id)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrProposalAlreadyDecided), "got %v", err)

	kept, err := r.proposals.GetByID(ctx, p.Id)
	require.NoError(t, err)
	assert.Equal(t, proposal.StatusAccepted, kept.Status)
	assert.True(t, svc.AcceptedAmount(ctx, request.Id).Equal(decimal.NewFromInt(300)))

	err = r.proposals.Delete(ctx, ulid.Make())
	assert.True(t, appErrors.HasCode(err, appErrors.ErrProposalNotFound), "got %v", err)
}

func TestMessagingStore(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	ana := createUser(t, r, "ana@fundbridge.dev", user.RoleEntrepreneur)
	bruno := createUser(t, r, "bruno@fundbridge.dev", user.RoleInvestor)
	request := createRequest(t, r, ana, helprequest.KindFinancial, "500")

	checker := shared.NewUserCheckerService(user.NewUserServiceAdapter(user.NewService(r.users)))
	svc := messaging.NewService(r.messaging, r.helpRequests, nil, checker)

	conversation, created, err := svc.StartConversation(ctx, bruno.Id, ana.Id, &request.Id)
	require.NoError(t, err)
	assert.True(t, created)

	again, created, err := svc.StartConversation(ctx, ana.Id, bruno.Id, &request.Id)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, conversation.Id, again.Id)

	_, created, err = svc.StartConversation(ctx, ana.Id, bruno.Id, nil)
	require.NoError(t, err)
	assert.True(t, created, "conversation without request is a different thread")

	_, err = svc.Send(ctx, conversation.Id, bruno.Id, "Olá, tenho interesse")
	require.NoError(t, err)
	_, err = svc.Send(ctx, conversation.Id, ana.Id, "Obrigada!")
	require.NoError(t, err)

	messages, total, err := svc.Messages(ctx, conversation.Id, ana.Id, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "Olá, tenho interesse", messages[0].Body)

	unread, err := r.messaging.CountUnread(ctx, conversation.Id, ana.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	marked, err := svc.MarkRead(ctx, conversation.Id, ana.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 1, marked)

	summaries, total, err := svc.Conversations(ctx, ana.Id, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, summaries, 2)
	for _, s := range summaries {
		assert.Zero(t, s.UnreadCount)
	}

	_, err = r.messaging.GetConversation(ctx, ulid.Make())
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConversationNotFound))
}

func TestMessagingStoreEnforcesUniquePair(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t)

	ana := createUser(t, r, "ana@fundbridge.dev", user.RoleEntrepreneur)
	bruno := createUser(t, r, "bruno@fundbridge.dev", user.RoleInvestor)
	request := createRequest(t, r, ana, helprequest.KindFinancial, "500")

	a, b := ana.Id, bruno.Id
	if a.String() > b.String() {
		a, b = b, a
	}
	now := time.Now()
	newConversation := func(helpRequestID *ulid.ULID) *messaging.Conversation {
		return &messaging.Conversation{
			Id:            ulid.Make(),
			ParticipantA:  a,
			ParticipantB:  b,
			HelpRequestId: helpRequestID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}

	require.NoError(t, r.messaging.CreateConversation(ctx, newConversation(nil)))
	require.NoError(t, r.messaging.CreateConversation(ctx, newConversation(&request.Id)))

	err := r.messaging.CreateConversation(ctx, newConversation(nil))
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict), "got %v", err)

	err = r.messaging.CreateConversation(ctx, newConversation(&request.Id))
	assert.True(t, appErrors.HasCode(err, appErrors.ErrConflict), "got %v", err)

	_, total, err := r.messaging.ListConversations(ctx, ana.Id, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}
