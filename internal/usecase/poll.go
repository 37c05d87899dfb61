package usecase

import (
	"context"
	"errors"

	"github.com/Xausdorf/pollbooth/internal/domain"
)

var (
	ErrNoSession        = errors.New("no poll is open")
	ErrPollNotFound     = errors.New("poll not found")
	ErrActionPending    = errors.New("action is already in progress")
	ErrNothingToConfirm = errors.New("no deletion awaits confirmation")
	ErrRejected         = errors.New("rejected by poll service")
)

// User-facing notice texts.
const (
	MsgPollNotFound     = "Poll not found."
	MsgOpenFailed       = "Error opening the poll."
	MsgNoSession        = "No poll is open."
	MsgVoteCounted      = "Vote counted."
	MsgVoteFailed       = "Voting error."
	MsgVoteReloadFailed = "Vote counted, but the results could not be reloaded."
	MsgInvalidDraft     = "A question and at least 2 options are required."
	MsgCreateFailed     = "Error creating the poll."
	MsgConfirmDelete    = "Delete this poll? Confirm to continue."
	MsgDeleteCancelled  = "Deletion cancelled."
	MsgNothingToConfirm = "Nothing to confirm."
	MsgPollDeleted      = "Poll deleted."
	MsgDeleteFailed     = "Error deleting the poll."
	MsgActionPending    = "That action is already in progress."
)

//go:generate mockgen -source=poll.go -destination=mocks/mock_poll_service.go -package=mocks

// PollService - remote poll storage and vote counting.
type PollService interface {
	GetAllPolls(ctx context.Context) ([]domain.PollSummary, error)
	// GetPoll reports found == false when the poll does not exist.
	GetPoll(ctx context.Context, id uint64) (poll *domain.Poll, found bool, err error)
	Vote(ctx context.Context, id uint64, optionIndex uint64) (domain.Result, error)
	CreatePoll(ctx context.Context, question string, options []string) (uint64, error)
	DeletePoll(ctx context.Context, id uint64) (domain.Result, error)
}
