package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Xausdorf/pollbooth/internal/domain"
	"github.com/Xausdorf/pollbooth/internal/usecase/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransport = errors.New("connection reset")

func newTestClient(t *testing.T) (*Client, *mocks.MockPollService) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockPollService(ctrl)
	return NewClient(svc, slog.New(slog.NewTextHandler(io.Discard, nil))), svc
}

func testPoll(votes ...uint64) *domain.Poll {
	options := []string{"A", "B", "C"}[:len(votes)]
	return &domain.Poll{ID: 1, Question: "Lunch?", Options: options, Votes: votes}
}

func openSession(t *testing.T, c *Client, svc *mocks.MockPollService, poll *domain.Poll) {
	t.Helper()
	svc.EXPECT().GetPoll(gomock.Any(), poll.ID).Return(poll, true, nil)
	require.NoError(t, c.Open(context.Background(), poll.ID))
}

func TestClient_Refresh(t *testing.T) {
	c, svc := newTestClient(t)
	roster := []domain.PollSummary{{ID: 1, Title: "Lunch?"}, {ID: 2, Title: "Dinner?"}}

	svc.EXPECT().GetAllPolls(gomock.Any()).Return(roster, nil)
	require.NoError(t, c.Refresh(context.Background()))
	assert.Equal(t, roster, c.State().Roster)

	svc.EXPECT().GetAllPolls(gomock.Any()).Return(nil, errTransport)
	err := c.Refresh(context.Background())
	require.ErrorIs(t, err, errTransport)
	assert.Equal(t, roster, c.State().Roster, "roster must stay at last known value")
}

func TestClient_Open(t *testing.T) {
	c, svc := newTestClient(t)
	poll := testPoll(1, 2)

	openSession(t, c, svc, poll)

	state := c.State()
	require.NotNil(t, state.Session)
	assert.Equal(t, poll, state.Session)
	assert.True(t, state.Notice.IsZero())
}

func TestClient_OpenNotFound(t *testing.T) {
	c, svc := newTestClient(t)
	poll := testPoll(1, 2)
	openSession(t, c, svc, poll)

	svc.EXPECT().GetPoll(gomock.Any(), uint64(42)).Return(nil, false, nil)
	err := c.Open(context.Background(), 42)
	require.ErrorIs(t, err, ErrPollNotFound)

	state := c.State()
	assert.Equal(t, domain.NotFound(MsgPollNotFound), state.Notice)
	assert.Equal(t, poll, state.Session, "session must not change")
}

func TestClient_OpenTransportFailure(t *testing.T) {
	c, svc := newTestClient(t)

	svc.EXPECT().GetPoll(gomock.Any(), uint64(3)).Return(nil, false, errTransport)
	err := c.Open(context.Background(), 3)
	require.ErrorIs(t, err, errTransport)

	state := c.State()
	assert.Nil(t, state.Session)
	assert.Equal(t, domain.Failure(MsgOpenFailed), state.Notice)
}

func TestClient_OpenRejectsBrokenPoll(t *testing.T) {
	c, svc := newTestClient(t)
	broken := &domain.Poll{ID: 5, Question: "Q", Options: []string{"A", "B"}, Votes: []uint64{1}}

	svc.EXPECT().GetPoll(gomock.Any(), uint64(5)).Return(broken, true, nil)
	err := c.Open(context.Background(), 5)
	require.ErrorIs(t, err, domain.ErrVotesMismatch)
	assert.Nil(t, c.State().Session)
}

func TestClient_VoteShowsFetchedCounts(t *testing.T) {
	c, svc := newTestClient(t)
	openSession(t, c, svc, testPoll(1, 0))

	// other clients voted meanwhile: a local +1 would give [1, 1]
	fresh := testPoll(4, 9)
	gomock.InOrder(
		svc.EXPECT().Vote(gomock.Any(), uint64(1), uint64(1)).Return(domain.Ok(), nil),
		svc.EXPECT().GetPoll(gomock.Any(), uint64(1)).Return(fresh, true, nil),
	)

	require.NoError(t, c.Vote(context.Background(), 1))

	state := c.State()
	assert.Equal(t, []uint64{4, 9}, state.Session.Votes)
	assert.Equal(t, domain.Info(MsgVoteCounted), state.Notice)
}

func TestClient_VoteRejected(t *testing.T) {
	c, svc := newTestClient(t)
	openSession(t, c, svc, testPoll(1, 1, 2))

	svc.EXPECT().Vote(gomock.Any(), uint64(1), uint64(0)).Return(domain.Err("already voted"), nil)

	err := c.Vote(context.Background(), 0)
	require.ErrorIs(t, err, ErrRejected)

	state := c.State()
	assert.Equal(t, []uint64{1, 1, 2}, state.Session.Votes)
	assert.Equal(t, "already voted", state.Notice.Text)
	assert.Equal(t, domain.NoticeError, state.Notice.Level)
}

func TestClient_VoteTransportFailure(t *testing.T) {
	c, svc := newTestClient(t)
	openSession(t, c, svc, testPoll(1, 1))

	svc.EXPECT().Vote(gomock.Any(), uint64(1), uint64(0)).Return(domain.Result{}, errTransport)

	require.ErrorIs(t, c.Vote(context.Background(), 0), errTransport)
	state := c.State()
	assert.Equal(t, []uint64{1, 1}, state.Session.Votes)
	assert.Equal(t, domain.Failure(MsgVoteFailed), state.Notice)
}

func TestClient_VoteWithoutSession(t *testing.T) {
	c, _ := newTestClient(t)

	require.ErrorIs(t, c.Vote(context.Background(), 0), ErrNoSession)
	assert.Equal(t, domain.Failure(MsgNoSession), c.State().Notice)
}

func TestClient_VotePollRemovedMeanwhile(t *testing.T) {
	c, svc := newTestClient(t)
	openSession(t, c, svc, testPoll(0, 0))

	svc.EXPECT().Vote(gomock.Any(), uint64(1), uint64(0)).Return(domain.Ok(), nil)
	svc.EXPECT().GetPoll(gomock.Any(), uint64(1)).Return(nil, false, nil)

	require.NoError(t, c.Vote(context.Background(), 0))
	state := c.State()
	assert.Nil(t, state.Session)
	assert.Equal(t, domain.NotFound(MsgPollNotFound), state.Notice)
}

func TestClient_VoteSingleFlight(t *testing.T) {
	c, svc := newTestClient(t)
	openSession(t, c, svc, testPoll(0, 0))

	started := make(chan struct{})
	release := make(chan struct{})
	svc.EXPECT().Vote(gomock.Any(), uint64(1), uint64(0)).DoAndReturn(
		func(context.Context, uint64, uint64) (domain.Result, error) {
			close(started)
			<-release
			return domain.Ok(), nil
		})
	svc.EXPECT().GetPoll(gomock.Any(), uint64(1)).Return(testPoll(1, 0), true, nil)

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.Vote(context.Background(), 0)
	}()
	<-started

	assert.True(t, c.Pending(ActionVote, 1))
	require.ErrorIs(t, c.Vote(context.Background(), 1), ErrActionPending)

	close(release)
	require.NoError(t, <-errCh)
	assert.False(t, c.Pending(ActionVote, 1))
	assert.Equal(t, []uint64{1, 0}, c.State().Session.Votes)
}

func TestClient_DeleteRequiresConfirmation(t *testing.T) {
	c, svc := newTestClient(t)
	roster := []domain.PollSummary{{ID: 1, Title: "Lunch?"}}
	svc.EXPECT().GetAllPolls(gomock.Any()).Return(roster, nil)
	require.NoError(t, c.Refresh(context.Background()))
	openSession(t, c, svc, testPoll(1, 1))

	// no DeletePoll expectation: any remote call fails the test
	require.NoError(t, c.RequestDelete())
	c.CancelDelete()
	require.ErrorIs(t, c.ConfirmDelete(context.Background()), ErrNothingToConfirm)

	state := c.State()
	assert.Equal(t, roster, state.Roster)
	assert.Equal(t, testPoll(1, 1), state.Session)
	assert.Nil(t, state.PendingDeletion)
}

func TestClient_DeleteWithoutSession(t *testing.T) {
	c, _ := newTestClient(t)

	require.ErrorIs(t, c.RequestDelete(), ErrNoSession)
	require.ErrorIs(t, c.ConfirmDelete(context.Background()), ErrNothingToConfirm)
}

func TestClient_DeleteConfirmed(t *testing.T) {
	c, svc := newTestClient(t)
	openSession(t, c, svc, testPoll(1, 1))

	gomock.InOrder(
		svc.EXPECT().DeletePoll(gomock.Any(), uint64(1)).Return(domain.Ok(), nil),
		svc.EXPECT().GetAllPolls(gomock.Any()).Return([]domain.PollSummary{}, nil),
	)

	require.NoError(t, c.RequestDelete())
	require.NoError(t, c.ConfirmDelete(context.Background()))

	state := c.State()
	assert.Nil(t, state.Session)
	assert.Empty(t, state.Roster)
	assert.Nil(t, state.PendingDeletion)
	assert.Equal(t, domain.Info(MsgPollDeleted), state.Notice)
}

func TestClient_DeleteRejected(t *testing.T) {
	c, svc := newTestClient(t)
	openSession(t, c, svc, testPoll(1, 1))

	svc.EXPECT().DeletePoll(gomock.Any(), uint64(1)).Return(domain.Err("not the author"), nil)

	require.NoError(t, c.RequestDelete())
	require.ErrorIs(t, c.ConfirmDelete(context.Background()), ErrRejected)

	state := c.State()
	assert.Equal(t, testPoll(1, 1), state.Session)
	assert.Equal(t, domain.Failure("not the author"), state.Notice)
}

func TestClient_OpeningAnotherPollDropsPendingDeletion(t *testing.T) {
	c, svc := newTestClient(t)
	openSession(t, c, svc, testPoll(1, 1))
	require.NoError(t, c.RequestDelete())

	other := &domain.Poll{ID: 2, Question: "Dinner?", Options: []string{"X", "Y"}, Votes: []uint64{0, 0}}
	openSession(t, c, svc, other)

	assert.Nil(t, c.State().PendingDeletion)
	require.ErrorIs(t, c.ConfirmDelete(context.Background()), ErrNothingToConfirm)
}

func TestClient_Create(t *testing.T) {
	c, svc := newTestClient(t)
	created := &domain.Poll{ID: 9, Question: "Q", Options: []string{"A", "B"}, Votes: []uint64{0, 0}}
	roster := []domain.PollSummary{{ID: 9, Title: "Q"}}

	gomock.InOrder(
		svc.EXPECT().CreatePoll(gomock.Any(), "Q", []string{"A", "B"}).Return(uint64(9), nil),
		svc.EXPECT().GetAllPolls(gomock.Any()).Return(roster, nil),
		svc.EXPECT().GetPoll(gomock.Any(), uint64(9)).Return(created, true, nil),
	)

	c.SetDraft("Q", "A\nB")
	require.NoError(t, c.Create(context.Background()))

	state := c.State()
	assert.True(t, state.Draft.IsEmpty())
	assert.Equal(t, roster, state.Roster)
	assert.Equal(t, created, state.Session)
}

func TestClient_CreateRejectedLocally(t *testing.T) {
	tests := []struct {
		name        string
		question    string
		optionsText string
	}{
		{name: "single option", question: "Q", optionsText: "A"},
		{name: "blank options", question: "Q", optionsText: "\n \n"},
		{name: "no question", question: "", optionsText: "A\nB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t)

			c.SetDraft(tt.question, tt.optionsText)
			require.ErrorIs(t, c.Create(context.Background()), domain.ErrInvalidDraft)

			state := c.State()
			assert.Equal(t, domain.Failure(MsgInvalidDraft), state.Notice)
			assert.Equal(t, tt.optionsText, state.Draft.OptionsText, "draft is kept for editing")
		})
	}
}

func TestClient_CreateTransportFailure(t *testing.T) {
	c, svc := newTestClient(t)

	svc.EXPECT().CreatePoll(gomock.Any(), "Q", []string{"A", "B"}).Return(uint64(0), errTransport)

	c.SetDraft("Q", "A\n\nB\n ")
	require.ErrorIs(t, c.Create(context.Background()), errTransport)

	state := c.State()
	assert.Equal(t, domain.Failure(MsgCreateFailed), state.Notice)
	assert.Equal(t, "Q", state.Draft.Question)
	assert.Nil(t, state.Session)
}

func TestClient_StateIsACopy(t *testing.T) {
	c, svc := newTestClient(t)
	openSession(t, c, svc, testPoll(1, 1))

	state := c.State()
	state.Session.Votes[0] = 100

	assert.Equal(t, []uint64{1, 1}, c.State().Session.Votes)
}

func TestClient_VoteReloadFailure(t *testing.T) {
	c, svc := newTestClient(t)
	openSession(t, c, svc, testPoll(1, 1))

	gomock.InOrder(
		svc.EXPECT().Vote(gomock.Any(), uint64(1), uint64(0)).Return(domain.Ok(), nil),
		svc.EXPECT().GetPoll(gomock.Any(), uint64(1)).Return(nil, false, errTransport),
	)

	require.ErrorIs(t, c.Vote(context.Background(), 0), errTransport)

	state := c.State()
	assert.Equal(t, domain.Failure(MsgVoteReloadFailed), state.Notice, "stale counts must not be shown as fresh")
	assert.Equal(t, []uint64{1, 1}, state.Session.Votes)
}

func TestClient_CreateRosterFailureStillOpensPoll(t *testing.T) {
	var logs bytes.Buffer
	svc := mocks.NewMockPollService(gomock.NewController(t))
	c := NewClient(svc, slog.New(slog.NewTextHandler(&logs, nil)))
	roster := []domain.PollSummary{{ID: 1, Title: "Lunch?"}}
	svc.EXPECT().GetAllPolls(gomock.Any()).Return(roster, nil)
	require.NoError(t, c.Refresh(context.Background()))

	created := &domain.Poll{ID: 9, Question: "Q", Options: []string{"A", "B"}, Votes: []uint64{0, 0}}
	gomock.InOrder(
		svc.EXPECT().CreatePoll(gomock.Any(), "Q", []string{"A", "B"}).Return(uint64(9), nil),
		svc.EXPECT().GetAllPolls(gomock.Any()).Return(nil, errTransport),
		svc.EXPECT().GetPoll(gomock.Any(), uint64(9)).Return(created, true, nil),
	)

	c.SetDraft("Q", "A\nB")
	require.NoError(t, c.Create(context.Background()))

	state := c.State()
	assert.Equal(t, created, state.Session)
	assert.Equal(t, roster, state.Roster, "roster must stay at last known value")
	assert.True(t, state.Draft.IsEmpty())
	assert.Contains(t, logs.String(), `msg="roster not refreshed after create"`)
	assert.Contains(t, logs.String(), "poll_id=9")
}
