package bot

import (
	"context"
	"encoding/csv"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Xausdorf/pollbooth/internal/usecase"
)

const (
	cmdHelp   = "/help"
	cmdList   = "/poll_list"
	cmdCreate = "/poll_create"
	cmdOpen   = "/poll_open"
	cmdVote   = "/poll_vote"
	cmdDelete = "/poll_delete"

	argConfirm = "confirm"
	argCancel  = "cancel"

	// sessionTTL - idle time after which a user's session is dropped.
	sessionTTL = 24 * time.Hour
)

// Handler maps chat commands onto poll sessions, one session per user.
type Handler struct {
	service usecase.PollService
	log     *slog.Logger
	timeout time.Duration

	mu       sync.Mutex
	sessions map[string]*userSession
	ttl      time.Duration
	now      func() time.Time
}

type userSession struct {
	client   *usecase.Client
	lastSeen time.Time
}

func NewHandler(service usecase.PollService, log *slog.Logger, timeout time.Duration) *Handler {
	return &Handler{
		service:  service,
		log:      log,
		timeout:  timeout,
		sessions: make(map[string]*userSession),
		ttl:      sessionTTL,
		now:      time.Now,
	}
}

// Handle returns the reply to a message, ok is false when the message is not a command.
func (h *Handler) Handle(ctx context.Context, userID, message string) (reply string, ok bool) {
	firstLine, rest, _ := strings.Cut(message, "\n")

	// CSV reading for splitting a string at spaces, except spaces inside quotation marks.
	r := csv.NewReader(strings.NewReader(firstLine))
	r.Comma = ' '
	r.LazyQuotes = true
	fields, err := r.Read()
	if err != nil {
		h.log.Debug("could not split message", "msg", message, "error", err)
		return "", false
	}
	tokens := fields[:0]
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	if len(tokens) == 0 {
		return "", false
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	args := tokens[1:]
	switch tokens[0] {
	case cmdHelp:
		return helpText, true
	case cmdList:
		return h.handleList(ctx, userID), true
	case cmdCreate:
		return h.handleCreate(ctx, userID, strings.Join(args, " "), rest), true
	case cmdOpen:
		return h.handleOpen(ctx, userID, args), true
	case cmdVote:
		return h.handleVote(ctx, userID, args), true
	case cmdDelete:
		return h.handleDelete(ctx, userID, args), true
	}
	return "", false
}

func (h *Handler) handleList(ctx context.Context, userID string) string {
	// /poll_list
	c, _ := h.session(userID)
	if err := c.Refresh(ctx); err != nil && !errors.Is(err, usecase.ErrActionPending) {
		return joinSections("Failed to load polls. Try again", renderRoster(c.State().Roster))
	}
	return renderRoster(c.State().Roster)
}

func (h *Handler) handleCreate(ctx context.Context, userID, question, optionsText string) string {
	// /poll_create [question]
	// [option1]
	// [option2]
	c := h.loadedSession(ctx, userID)
	c.SetDraft(question, optionsText)
	err := c.Create(ctx)
	if err != nil {
		h.log.Debug("create did not complete", "user_id", userID, "error", err)
	}
	return h.detail(c)
}

func (h *Handler) handleOpen(ctx context.Context, userID string, args []string) string {
	// /poll_open [pollID]
	if len(args) != 1 {
		return "There must be 1 argument: poll ID"
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil {
		return "Poll ID must be a number"
	}

	c := h.loadedSession(ctx, userID)
	if err = c.Open(ctx, id); err != nil {
		h.log.Debug("open did not complete", "user_id", userID, "poll_id", id, "error", err)
	}
	return h.detail(c)
}

func (h *Handler) handleVote(ctx context.Context, userID string, args []string) string {
	// /poll_vote [vote]
	if len(args) != 1 {
		return "There must be 1 argument: option's number"
	}
	idx, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return "Vote must be a non-negative integer: option's number"
	}

	c := h.loadedSession(ctx, userID)
	if err = c.Vote(ctx, idx); err != nil {
		h.log.Debug("vote did not complete", "user_id", userID, "error", err)
	}
	return h.detail(c)
}

func (h *Handler) handleDelete(ctx context.Context, userID string, args []string) string {
	// /poll_delete [confirm|cancel]
	if len(args) > 1 {
		return "There must be at most 1 argument: confirm or cancel"
	}

	c := h.loadedSession(ctx, userID)
	var err error
	switch {
	case len(args) == 0:
		if err = c.RequestDelete(); err == nil {
			state := c.State()
			return joinSections(renderNotice(state.Notice), renderPoll(state.Session, false), confirmHint)
		}
	case args[0] == argConfirm:
		err = c.ConfirmDelete(ctx)
	case args[0] == argCancel:
		c.CancelDelete()
	default:
		return "Unknown argument, use confirm or cancel"
	}
	if err != nil {
		h.log.Debug("delete did not complete", "user_id", userID, "error", err)
	}

	state := c.State()
	if state.Session == nil {
		return joinSections(renderNotice(state.Notice), renderRoster(state.Roster))
	}
	return h.detail(c)
}

// detail renders the notice followed by the open poll, if any.
func (h *Handler) detail(c *usecase.Client) string {
	state := c.State()
	if state.Session == nil {
		return renderNotice(state.Notice)
	}
	pending := c.Pending(usecase.ActionVote, state.Session.ID)
	return joinSections(renderNotice(state.Notice), renderPoll(state.Session, pending))
}

// session returns the user's session, fresh is true when it was just created.
// Sessions idle for longer than ttl are dropped whenever a new one is created.
func (h *Handler) session(userID string) (c *usecase.Client, fresh bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.now()
	if s, ok := h.sessions[userID]; ok && now.Sub(s.lastSeen) <= h.ttl {
		s.lastSeen = now
		return s.client, false
	}

	h.evictIdle(now)
	c = usecase.NewClient(h.service, h.log.With("user_id", userID))
	h.sessions[userID] = &userSession{client: c, lastSeen: now}
	return c, true
}

func (h *Handler) evictIdle(now time.Time) {
	for userID, s := range h.sessions {
		if now.Sub(s.lastSeen) > h.ttl {
			delete(h.sessions, userID)
			h.log.Debug("idle session dropped", "user_id", userID)
		}
	}
}

// loadedSession returns the user's session, loading the roster on first use.
func (h *Handler) loadedSession(ctx context.Context, userID string) *usecase.Client {
	c, fresh := h.session(userID)
	if fresh {
		h.load(ctx, c)
	}
	return c
}

func (h *Handler) load(ctx context.Context, c *usecase.Client) {
	if err := c.Refresh(ctx); err != nil {
		h.log.Warn("initial roster load failed", "error", err)
	}
}
