package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	dbm "carebridge/internal/models/db_models"
	"carebridge/internal/models/request_models"
	"carebridge/internal/models/response_models"
	"carebridge/internal/repositories"
	"carebridge/pkg/utils"

	"go.uber.org/zap"
)

const (
	DefaultSessionMinutes = 50
	MinSessionMinutes     = 5
	MaxSessionMinutes     = 480
)

type SessionServiceInterface interface {
	CreateSession(ctx context.Context, therapistID uint, request request_models.CreateSessionRequest) (*response_models.SessionResponse, error)
	UpdateSession(ctx context.Context, therapistID, sessionID uint, patch request_models.UpdateSessionRequest) (*response_models.SessionResponse, error)
	DeleteSession(ctx context.Context, therapistID, sessionID uint) error
	GetSession(ctx context.Context, therapistID, sessionID uint) (*response_models.SessionResponse, error)
	ListSessions(ctx context.Context, therapistID uint, query request_models.ListSessionsQuery) ([]response_models.SessionResponse, error)
	ListClientSessions(ctx context.Context, clientID uint, upcomingOnly bool) ([]response_models.SessionResponse, error)
}

type SessionService struct {
	sessionRepo repositories.SessionRepository
	linkRepo    repositories.LinkRepository
	log         *zap.Logger
	now         func() time.Time
}

func NewSessionService(
	sessionRepo repositories.SessionRepository,
	linkRepo repositories.LinkRepository,
	log *zap.Logger,
) SessionServiceInterface {
	return &SessionService{
		sessionRepo: sessionRepo,
		linkRepo:    linkRepo,
		log:         log,
		now:         time.Now,
	}
}

func (s *SessionService) CreateSession(ctx context.Context, therapistID uint, request request_models.CreateSessionRequest) (*response_models.SessionResponse, error) {
	verr := &utils.ValidationError{}
	if request.ClientID == 0 {
		verr.Add("client_id", "is required")
	}
	if request.StartsAt.IsZero() {
		verr.Add("starts_at", "is required")
	}
	duration := request.DurationMin
	if duration == 0 {
		duration = DefaultSessionMinutes
	}
	checkDuration(verr, duration)
	sessionType, ok := parseSessionType(request.Type)
	if !ok {
		verr.Add("type", "must be one of: in_person, video, phone")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	link, err := s.linkRepo.FindByPair(ctx, therapistID, request.ClientID)
	if err != nil {
		return nil, s.dbError("find link", err)
	}
	if link == nil || link.Status != dbm.LinkActive {
		return nil, utils.ErrNotLinked
	}

	session := &dbm.Session{
		TherapistID:     therapistID,
		ClientAccountID: request.ClientID,
		StartsAt:        request.StartsAt.UTC(),
		DurationMin:     duration,
		Status:          dbm.SessionScheduled,
		Type:            sessionType,
		NotesPreview:    strings.TrimSpace(request.NotesPreview),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, s.dbError("create session", err)
	}

	resp := response_models.NewSessionResponse(session)
	return &resp, nil
}

// UpdateSession applies a partial patch. A patch carrying starts_at is a
// reschedule: the session keeps its id and client and returns to scheduled.
// Otherwise only scheduled sessions may change status.
func (s *SessionService) UpdateSession(ctx context.Context, therapistID, sessionID uint, patch request_models.UpdateSessionRequest) (*response_models.SessionResponse, error) {
	session, err := s.sessionRepo.FindOwned(ctx, therapistID, sessionID)
	if err != nil {
		return nil, s.dbError("find session", err)
	}
	if session == nil {
		return nil, utils.ErrNotFound
	}
	if patch.Empty() {
		resp := response_models.NewSessionResponse(session)
		return &resp, nil
	}

	verr := &utils.ValidationError{}
	if patch.DurationMin != nil {
		checkDuration(verr, *patch.DurationMin)
	}
	var nextStatus *dbm.SessionStatus
	if patch.Status != nil {
		st := dbm.SessionStatus(*patch.Status)
		if !st.Valid() {
			verr.Add("status", "must be one of: scheduled, completed, canceled, no_show")
		}
		nextStatus = &st
	}
	var nextType *dbm.SessionType
	if patch.Type != nil {
		t, ok := parseSessionType(*patch.Type)
		if !ok || *patch.Type == "" {
			verr.Add("type", "must be one of: in_person, video, phone")
		}
		nextType = &t
	}
	if patch.StartsAt != nil && patch.StartsAt.IsZero() {
		verr.Add("starts_at", "must be a valid timestamp")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	status, err := nextSessionStatus(session.Status, nextStatus, patch.StartsAt != nil)
	if err != nil {
		return nil, err
	}

	if patch.StartsAt != nil {
		session.StartsAt = patch.StartsAt.UTC()
	}
	session.Status = status
	if patch.DurationMin != nil {
		session.DurationMin = *patch.DurationMin
	}
	if nextType != nil {
		session.Type = *nextType
	}
	if patch.NotesPreview != nil {
		session.NotesPreview = strings.TrimSpace(*patch.NotesPreview)
	}

	if err := s.sessionRepo.Save(ctx, session); err != nil {
		return nil, s.dbError("save session", err)
	}

	resp := response_models.NewSessionResponse(session)
	return &resp, nil
}

// nextSessionStatus resolves the target status of a patch.
func nextSessionStatus(current dbm.SessionStatus, requested *dbm.SessionStatus, reschedule bool) (dbm.SessionStatus, error) {
	if reschedule {
		if requested != nil && *requested != dbm.SessionScheduled {
			return current, utils.ErrInvalidSessionTransition
		}
		return dbm.SessionScheduled, nil
	}
	if requested == nil || *requested == current {
		return current, nil
	}
	if current != dbm.SessionScheduled || *requested == dbm.SessionScheduled {
		return current, utils.ErrInvalidSessionTransition
	}
	return *requested, nil
}

func (s *SessionService) DeleteSession(ctx context.Context, therapistID, sessionID uint) error {
	affected, err := s.sessionRepo.DeleteWithNotes(ctx, therapistID, sessionID)
	if err != nil {
		return s.dbError("delete session", err)
	}
	if affected == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (s *SessionService) GetSession(ctx context.Context, therapistID, sessionID uint) (*response_models.SessionResponse, error) {
	session, err := s.sessionRepo.FindOwned(ctx, therapistID, sessionID)
	if err != nil {
		return nil, s.dbError("find session", err)
	}
	if session == nil {
		return nil, utils.ErrNotFound
	}
	resp := response_models.NewSessionResponse(session)
	return &resp, nil
}

func (s *SessionService) ListSessions(ctx context.Context, therapistID uint, query request_models.ListSessionsQuery) ([]response_models.SessionResponse, error) {
	var filter repositories.SessionFilter
	verr := &utils.ValidationError{}

	if query.Status != "" {
		st := dbm.SessionStatus(query.Status)
		if !st.Valid() {
			verr.Add("status", "must be one of: scheduled, completed, canceled, no_show")
		}
		filter.Status = &st
	}
	if query.ClientID != 0 {
		filter.ClientID = &query.ClientID
	}
	from, err := utils.ParseTimeParam(query.From)
	if err != nil {
		verr.Add("from", "must be RFC3339 or YYYY-MM-DD")
	}
	to, err := utils.ParseTimeParam(query.To)
	if err != nil {
		verr.Add("to", "must be RFC3339 or YYYY-MM-DD")
	}
	if from != nil && to != nil && !to.After(*from) {
		verr.Add("to", "must be after from")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	filter.From, filter.To = from, to

	sessions, err := s.sessionRepo.ListByTherapist(ctx, therapistID, filter)
	if err != nil {
		return nil, s.dbError("list sessions", err)
	}
	return response_models.NewSessionResponses(sessions), nil
}

func (s *SessionService) ListClientSessions(ctx context.Context, clientID uint, upcomingOnly bool) ([]response_models.SessionResponse, error) {
	var from *time.Time
	if upcomingOnly {
		now := s.now().UTC()
		from = &now
	}
	sessions, err := s.sessionRepo.ListByClient(ctx, clientID, from)
	if err != nil {
		return nil, s.dbError("list client sessions", err)
	}
	if upcomingOnly {
		scheduled := sessions[:0]
		for _, sess := range sessions {
			if sess.Status == dbm.SessionScheduled {
				scheduled = append(scheduled, sess)
			}
		}
		sessions = scheduled
	}
	return response_models.NewSessionResponses(sessions), nil
}

func (s *SessionService) dbError(op string, err error) error {
	s.log.Error("session storage failure", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%w: %s: %v", utils.ErrDatabaseError, op, err)
}

func checkDuration(verr *utils.ValidationError, minutes int) {
	if minutes < MinSessionMinutes || minutes > MaxSessionMinutes {
		verr.Add("duration_min", fmt.Sprintf("must be between %d and %d", MinSessionMinutes, MaxSessionMinutes))
	}
}

func parseSessionType(raw string) (dbm.SessionType, bool) {
	switch t := dbm.SessionType(raw); t {
	case "":
		return dbm.SessionInPerson, true
	case dbm.SessionInPerson, dbm.SessionVideo, dbm.SessionPhone:
		return t, true
	default:
		return t, false
	}
}
