package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"clutchly/internal/domain"
	"clutchly/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const CoachServicePath = "/clutchly.v1.CoachService/"

const (
	RegisterPlayerProcedure  = CoachServicePath + "RegisterPlayer"
	LinkRiotAccountProcedure = CoachServicePath + "LinkRiotAccount"
	GetProfileProcedure      = CoachServicePath + "GetProfile"
	SyncMatchesProcedure     = CoachServicePath + "SyncMatches"
	GenerateCardProcedure    = CoachServicePath + "GenerateCard"
	GetCardProcedure         = CoachServicePath + "GetCard"
	JoinWaitlistProcedure    = CoachServicePath + "JoinWaitlist"
)

type PlayerAPI interface {
	RegisterPlayer(ctx context.Context, id, email, region string) (*domain.PlayerProfile, error)
	LinkRiotAccount(ctx context.Context, playerID, gameName, tagLine string) (*domain.PlayerProfile, error)
	GetProfile(ctx context.Context, playerID string) (*service.Profile, error)
}

type SyncAPI interface {
	Sync(ctx context.Context, playerID string) (*domain.SyncResult, error)
}

type CardAPI interface {
	GenerateCard(ctx context.Context, playerID string) (*domain.DailyCard, error)
	GetCard(ctx context.Context, playerID string) (*domain.DailyCard, error)
}

type WaitlistAPI interface {
	Join(ctx context.Context, email, source string) (bool, error)
}

type CoachServer struct {
	players  PlayerAPI
	sync     SyncAPI
	cards    CardAPI
	waitlist WaitlistAPI
	logger   zerolog.Logger
}

func NewCoachServer(players PlayerAPI, sync SyncAPI, cards CardAPI, waitlist WaitlistAPI, logger zerolog.Logger) *CoachServer {
	return &CoachServer{
		players:  players,
		sync:     sync,
		cards:    cards,
		waitlist: waitlist,
		logger:   logger,
	}
}

func ProvideCoachServer(
	players *service.PlayerService,
	sync *service.SyncService,
	cards *service.CardService,
	waitlist *service.WaitlistService,
	logger zerolog.Logger,
) *CoachServer {
	return NewCoachServer(players, sync, cards, waitlist, logger)
}

// NewCoachServiceHandler mounts every procedure and returns the path prefix
// to register the handler under.
func NewCoachServiceHandler(s *CoachServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(RegisterPlayerProcedure, connect.NewUnaryHandler(RegisterPlayerProcedure, s.RegisterPlayer, opts...))
	mux.Handle(LinkRiotAccountProcedure, connect.NewUnaryHandler(LinkRiotAccountProcedure, s.LinkRiotAccount, opts...))
	mux.Handle(GetProfileProcedure, connect.NewUnaryHandler(GetProfileProcedure, s.GetProfile, opts...))
	mux.Handle(SyncMatchesProcedure, connect.NewUnaryHandler(SyncMatchesProcedure, s.SyncMatches, opts...))
	mux.Handle(GenerateCardProcedure, connect.NewUnaryHandler(GenerateCardProcedure, s.GenerateCard, opts...))
	mux.Handle(GetCardProcedure, connect.NewUnaryHandler(GetCardProcedure, s.GetCard, opts...))
	mux.Handle(JoinWaitlistProcedure, connect.NewUnaryHandler(JoinWaitlistProcedure, s.JoinWaitlist, opts...))
	return CoachServicePath, mux
}

func (s *CoachServer) RegisterPlayer(ctx context.Context, req *connect.Request[RegisterPlayerRequest]) (*connect.Response[PlayerResponse], error) {
	if strings.TrimSpace(req.Msg.Email) == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("email is required"))
	}

	player, err := s.players.RegisterPlayer(ctx, req.Msg.PlayerID, req.Msg.Email, req.Msg.Region)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	resp := toPlayerResponse(player)
	return connect.NewResponse(&resp), nil
}

func (s *CoachServer) LinkRiotAccount(ctx context.Context, req *connect.Request[LinkRiotAccountRequest]) (*connect.Response[PlayerResponse], error) {
	if err := requirePlayerID(req.Msg.PlayerID); err != nil {
		return nil, err
	}

	player, err := s.players.LinkRiotAccount(ctx, req.Msg.PlayerID, req.Msg.GameName, req.Msg.TagLine)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	resp := toPlayerResponse(player)
	return connect.NewResponse(&resp), nil
}

func (s *CoachServer) GetProfile(ctx context.Context, req *connect.Request[PlayerRequest]) (*connect.Response[ProfileResponse], error) {
	if err := requirePlayerID(req.Msg.PlayerID); err != nil {
		return nil, err
	}

	profile, err := s.players.GetProfile(ctx, req.Msg.PlayerID)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(toProfileResponse(profile)), nil
}

func (s *CoachServer) SyncMatches(ctx context.Context, req *connect.Request[PlayerRequest]) (*connect.Response[SyncMatchesResponse], error) {
	if err := requirePlayerID(req.Msg.PlayerID); err != nil {
		return nil, err
	}

	result, err := s.sync.Sync(ctx, req.Msg.PlayerID)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(toSyncResponse(result)), nil
}

func (s *CoachServer) GenerateCard(ctx context.Context, req *connect.Request[PlayerRequest]) (*connect.Response[CardResponse], error) {
	if err := requirePlayerID(req.Msg.PlayerID); err != nil {
		return nil, err
	}

	card, err := s.cards.GenerateCard(ctx, req.Msg.PlayerID)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(toCardResponse(card)), nil
}

func (s *CoachServer) GetCard(ctx context.Context, req *connect.Request[PlayerRequest]) (*connect.Response[CardResponse], error) {
	if err := requirePlayerID(req.Msg.PlayerID); err != nil {
		return nil, err
	}

	card, err := s.cards.GetCard(ctx, req.Msg.PlayerID)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(toCardResponse(card)), nil
}

func (s *CoachServer) JoinWaitlist(ctx context.Context, req *connect.Request[JoinWaitlistRequest]) (*connect.Response[JoinWaitlistResponse], error) {
	created, err := s.waitlist.Join(ctx, req.Msg.Email, req.Msg.Source)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}

	resp := &JoinWaitlistResponse{Created: created, Message: "Successfully joined waitlist"}
	if !created {
		resp.Message = "Email already registered"
	}
	return connect.NewResponse(resp), nil
}

func requirePlayerID(id string) error {
	if strings.TrimSpace(id) == "" {
		return connect.NewError(connect.CodeInvalidArgument, errors.New("playerId is required"))
	}
	return nil
}

func (s *CoachServer) toConnectError(ctx context.Context, err error) error {
	code := codeFor(err)
	if code == connect.CodeInternal {
		log := zerolog.Ctx(ctx)
		if log.GetLevel() == zerolog.Disabled {
			log = &s.logger
		}
		log.Error().Err(err).Msg("request failed")
		return connect.NewError(code, errors.New("internal error"))
	}
	return connect.NewError(code, err)
}

func codeFor(err error) connect.Code {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return connect.CodeInvalidArgument
	case errors.Is(err, domain.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, domain.ErrAlreadyLinked), errors.Is(err, domain.ErrAlreadyExists):
		return connect.CodeAlreadyExists
	case errors.Is(err, domain.ErrNoRankedHistory), errors.Is(err, domain.ErrNoChampionData):
		return connect.CodeFailedPrecondition
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return connect.CodeUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	default:
		return connect.CodeInternal
	}
}
