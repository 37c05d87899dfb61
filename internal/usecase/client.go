package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Xausdorf/pollbooth/internal/domain"
	"github.com/google/uuid"
)

type Action string

const (
	ActionRefresh Action = "refresh"
	ActionOpen    Action = "open"
	ActionVote    Action = "vote"
	ActionDelete  Action = "delete"
	ActionCreate  Action = "create"
)

type actionKey struct {
	action Action
	id     uint64
}

// State - everything a surface needs to render the poll screens.
type State struct {
	Roster  []domain.PollSummary
	Session *domain.Poll
	Draft   domain.Draft
	Notice  domain.Notice
	// PendingDeletion - id of the open poll awaiting delete confirmation.
	PendingDeletion *uint64
}

// Client - poll session controller of a single user.
//
// State is only replaced with values received from the poll service; vote counts
// are never derived locally. The mutex is never held across a remote call.
type Client struct {
	service PollService
	log     *slog.Logger

	mu       sync.Mutex
	state    State
	inflight map[actionKey]struct{}
}

func NewClient(service PollService, log *slog.Logger) *Client {
	return &Client{
		service:  service,
		log:      log,
		inflight: make(map[actionKey]struct{}),
	}
}

// State returns a copy that is safe to read while other actions run.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Roster = append([]domain.PollSummary(nil), c.state.Roster...)
	if c.state.Session != nil {
		s.Session = clonePoll(c.state.Session)
	}
	if c.state.PendingDeletion != nil {
		id := *c.state.PendingDeletion
		s.PendingDeletion = &id
	}
	return s
}

// Pending reports whether the action on target id is still waiting for the poll service.
func (c *Client) Pending(action Action, id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.inflight[actionKey{action: action, id: id}]
	return ok
}

// Refresh reloads the roster. On failure the last known roster is kept.
func (c *Client) Refresh(ctx context.Context) error {
	done, log, err := c.begin(ActionRefresh, 0)
	if err != nil {
		return err
	}
	defer done()

	return c.refresh(ctx, log)
}

// Open replaces the session with poll id. A missing poll leaves the current session in place.
func (c *Client) Open(ctx context.Context, id uint64) error {
	done, log, err := c.begin(ActionOpen, id)
	if err != nil {
		return err
	}
	defer done()

	return c.open(ctx, log, id)
}

// Vote casts a vote for optionIndex in the open poll and shows the counts fetched afterwards.
func (c *Client) Vote(ctx context.Context, optionIndex uint64) error {
	pollID, ok := c.sessionID()
	if !ok {
		c.notify(domain.Failure(MsgNoSession))
		return ErrNoSession
	}

	done, log, err := c.begin(ActionVote, pollID)
	if err != nil {
		return err
	}
	defer done()

	log = log.With("poll_id", pollID, "option", optionIndex)
	res, err := c.service.Vote(ctx, pollID, optionIndex)
	if err != nil {
		log.Error("vote failed", "error", err)
		c.notify(domain.Failure(MsgVoteFailed))
		return fmt.Errorf("could not vote in poll %d: %w", pollID, err)
	}

	switch res.Kind() {
	case domain.ResultOk:
		log.Info("vote counted")
		c.notify(domain.Info(MsgVoteCounted))
		return c.reload(ctx, log, pollID)
	case domain.ResultErr:
		log.Info("vote rejected", "reason", res.Reason())
		c.notify(domain.Failure(res.Reason()))
		return fmt.Errorf("%w: %s", ErrRejected, res.Reason())
	default:
		log.Error("unexpected vote result", "result", res.String())
		c.notify(domain.Failure(MsgVoteFailed))
		return fmt.Errorf("could not vote in poll %d: unexpected result %s", pollID, res)
	}
}

// RequestDelete marks the open poll for deletion. Nothing is sent until ConfirmDelete.
func (c *Client) RequestDelete() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Session == nil {
		c.state.Notice = domain.Failure(MsgNoSession)
		return ErrNoSession
	}
	id := c.state.Session.ID
	c.state.PendingDeletion = &id
	c.state.Notice = domain.Info(MsgConfirmDelete)
	return nil
}

// CancelDelete drops a pending deletion without contacting the poll service.
func (c *Client) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.PendingDeletion == nil {
		c.state.Notice = domain.Info(MsgNothingToConfirm)
		return
	}
	c.state.PendingDeletion = nil
	c.state.Notice = domain.Info(MsgDeleteCancelled)
}

// ConfirmDelete deletes the poll marked by RequestDelete if it is still the open one.
func (c *Client) ConfirmDelete(ctx context.Context) error {
	pollID, ok := c.pendingDeletion()
	if !ok {
		c.notify(domain.Info(MsgNothingToConfirm))
		return ErrNothingToConfirm
	}

	done, log, err := c.begin(ActionDelete, pollID)
	if err != nil {
		return err
	}
	defer done()

	c.update(func(s *State) {
		s.PendingDeletion = nil
	})

	log = log.With("poll_id", pollID)
	res, err := c.service.DeletePoll(ctx, pollID)
	if err != nil {
		log.Error("delete failed", "error", err)
		c.notify(domain.Failure(MsgDeleteFailed))
		return fmt.Errorf("could not delete poll %d: %w", pollID, err)
	}

	switch res.Kind() {
	case domain.ResultOk:
		log.Info("poll deleted")
		c.update(func(s *State) {
			if s.Session != nil && s.Session.ID == pollID {
				s.Session = nil
			}
			s.Notice = domain.Info(MsgPollDeleted)
		})
		if err = c.refresh(ctx, log); err != nil {
			log.Warn("roster not refreshed after delete", "error", err)
		}
		return nil
	case domain.ResultErr:
		log.Info("delete rejected", "reason", res.Reason())
		c.notify(domain.Failure(res.Reason()))
		return fmt.Errorf("%w: %s", ErrRejected, res.Reason())
	default:
		log.Error("unexpected delete result", "result", res.String())
		c.notify(domain.Failure(MsgDeleteFailed))
		return fmt.Errorf("could not delete poll %d: unexpected result %s", pollID, res)
	}
}

// SetDraft stores the raw create form input. Validation happens in Create.
func (c *Client) SetDraft(question, optionsText string) {
	c.update(func(s *State) {
		s.Draft = domain.Draft{Question: question, OptionsText: optionsText}
	})
}

// Create submits the draft. Invalid drafts never reach the poll service.
func (c *Client) Create(ctx context.Context) error {
	c.mu.Lock()
	draft := c.state.Draft
	c.mu.Unlock()

	if err := draft.Validate(); err != nil {
		c.notify(domain.Failure(MsgInvalidDraft))
		return err
	}

	done, log, err := c.begin(ActionCreate, 0)
	if err != nil {
		return err
	}
	defer done()

	options := draft.Options()
	id, err := c.service.CreatePoll(ctx, strings.TrimSpace(draft.Question), options)
	if err != nil {
		log.Error("create failed", "error", err)
		c.notify(domain.Failure(MsgCreateFailed))
		return fmt.Errorf("could not create poll: %w", err)
	}
	log.Info("poll created", "poll_id", id, "options", len(options))

	c.update(func(s *State) {
		s.Draft = domain.Draft{}
	})
	if err = c.refresh(ctx, log); err != nil {
		log.Warn("roster not refreshed after create", "poll_id", id, "error", err)
	}
	return c.open(ctx, log, id)
}

func (c *Client) refresh(ctx context.Context, log *slog.Logger) error {
	roster, err := c.service.GetAllPolls(ctx)
	if err != nil {
		log.Error("could not load polls", "error", err)
		return fmt.Errorf("could not load polls: %w", err)
	}
	c.update(func(s *State) {
		s.Roster = roster
	})
	log.Debug("roster refreshed", "polls", len(roster))
	return nil
}

func (c *Client) open(ctx context.Context, log *slog.Logger, id uint64) error {
	log = log.With("poll_id", id)
	poll, found, err := c.fetch(ctx, id)
	if err != nil {
		log.Error("could not open poll", "error", err)
		c.notify(domain.Failure(MsgOpenFailed))
		return fmt.Errorf("could not open poll %d: %w", id, err)
	}
	if !found {
		log.Info("poll not found")
		c.notify(domain.NotFound(MsgPollNotFound))
		return ErrPollNotFound
	}

	c.update(func(s *State) {
		if s.PendingDeletion != nil && *s.PendingDeletion != poll.ID {
			s.PendingDeletion = nil
		}
		s.Session = poll
		s.Notice = domain.Notice{}
	})
	return nil
}

// reload replaces the session with a fresh copy after a successful mutation.
func (c *Client) reload(ctx context.Context, log *slog.Logger, id uint64) error {
	poll, found, err := c.fetch(ctx, id)
	if err != nil {
		log.Error("could not reload poll", "error", err)
		c.update(func(s *State) {
			if s.Session != nil && s.Session.ID == id {
				s.Notice = domain.Failure(MsgVoteReloadFailed)
			}
		})
		return fmt.Errorf("could not reload poll %d: %w", id, err)
	}

	c.update(func(s *State) {
		if s.Session == nil || s.Session.ID != id {
			return
		}
		if !found {
			s.Session = nil
			s.PendingDeletion = nil
			s.Notice = domain.NotFound(MsgPollNotFound)
			return
		}
		s.Session = poll
	})
	return nil
}

func (c *Client) fetch(ctx context.Context, id uint64) (*domain.Poll, bool, error) {
	poll, found, err := c.service.GetPoll(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if !found || poll == nil {
		return nil, false, nil
	}
	if err = poll.Validate(); err != nil {
		return nil, false, err
	}
	return poll, true, nil
}

func (c *Client) begin(action Action, id uint64) (func(), *slog.Logger, error) {
	key := actionKey{action: action, id: id}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.inflight[key]; ok {
		c.state.Notice = domain.Failure(MsgActionPending)
		return nil, nil, fmt.Errorf("%s %d: %w", action, id, ErrActionPending)
	}
	c.inflight[key] = struct{}{}

	log := c.log.With("action", string(action), "action_id", uuid.NewString())
	return func() {
		c.mu.Lock()
		delete(c.inflight, key)
		c.mu.Unlock()
	}, log, nil
}

func (c *Client) update(fn func(s *State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
}

func (c *Client) notify(n domain.Notice) {
	c.update(func(s *State) {
		s.Notice = n
	})
}

func (c *Client) sessionID() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Session == nil {
		return 0, false
	}
	return c.state.Session.ID, true
}

func (c *Client) pendingDeletion() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.PendingDeletion == nil || c.state.Session == nil || c.state.Session.ID != *c.state.PendingDeletion {
		return 0, false
	}
	return *c.state.PendingDeletion, true
}

func clonePoll(p *domain.Poll) *domain.Poll {
	return &domain.Poll{
		ID:       p.ID,
		Question: p.Question,
		Options:  append([]string(nil), p.Options...),
		Votes:    append([]uint64(nil), p.Votes...),
	}
}
