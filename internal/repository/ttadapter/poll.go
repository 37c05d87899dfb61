package ttadapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xausdorf/pollbooth/internal/domain"
	"github.com/tarantool/go-tarantool/v2"
)

// Stored functions of the poll service.
const (
	fnGetAllPolls = "getAllPolls"
	fnGetPoll     = "getPoll"
	fnVote        = "vote"
	fnCreatePoll  = "createPoll"
	fnDeletePoll  = "deletePoll"
)

var errEmptyResponse = errors.New("empty response")

type PollService struct {
	conn tarantool.Doer
}

func NewPollService(conn tarantool.Doer) *PollService {
	return &PollService{
		conn: conn,
	}
}

func (s *PollService) GetAllPolls(ctx context.Context) ([]domain.PollSummary, error) {
	var res [][]SummaryModel
	if err := s.conn.Do(
		tarantool.NewCallRequest(fnGetAllPolls).
			Context(ctx),
	).GetTyped(&res); err != nil {
		return nil, fmt.Errorf("could not call %s in tarantool: %w", fnGetAllPolls, err)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("%s: %w", fnGetAllPolls, errEmptyResponse)
	}

	roster := make([]domain.PollSummary, len(res[0]))
	for i := range res[0] {
		roster[i] = res[0][i].ToSummary()
	}
	return roster, nil
}

func (s *PollService) GetPoll(ctx context.Context, id uint64) (*domain.Poll, bool, error) {
	var res [][]PollModel
	if err := s.conn.Do(
		tarantool.NewCallRequest(fnGetPoll).
			Context(ctx).
			Args([]interface{}{id}),
	).GetTyped(&res); err != nil {
		return nil, false, fmt.Errorf("could not call %s in tarantool: %w", fnGetPoll, err)
	}
	if len(res) == 0 || len(res[0]) == 0 {
		return nil, false, nil
	}

	poll := res[0][0].ToPoll()
	if err := poll.Validate(); err != nil {
		return nil, false, fmt.Errorf("%s returned invalid poll: %w", fnGetPoll, err)
	}
	return poll, true, nil
}

func (s *PollService) Vote(ctx context.Context, id uint64, optionIndex uint64) (domain.Result, error) {
	return s.mutate(ctx, fnVote, id, optionIndex)
}

func (s *PollService) CreatePoll(ctx context.Context, question string, options []string) (uint64, error) {
	var res []uint64
	if err := s.conn.Do(
		tarantool.NewCallRequest(fnCreatePoll).
			Context(ctx).
			Args([]interface{}{question, options}),
	).GetTyped(&res); err != nil {
		return 0, fmt.Errorf("could not call %s in tarantool: %w", fnCreatePoll, err)
	}
	if len(res) == 0 {
		return 0, fmt.Errorf("%s: %w", fnCreatePoll, errEmptyResponse)
	}
	return res[0], nil
}

func (s *PollService) DeletePoll(ctx context.Context, id uint64) (domain.Result, error) {
	return s.mutate(ctx, fnDeletePoll, id)
}

func (s *PollService) mutate(ctx context.Context, fn string, args ...interface{}) (domain.Result, error) {
	var res []ResultModel
	if err := s.conn.Do(
		tarantool.NewCallRequest(fn).
			Context(ctx).
			Args(args),
	).GetTyped(&res); err != nil {
		return domain.Result{}, fmt.Errorf("could not call %s in tarantool: %w", fn, err)
	}
	if len(res) == 0 {
		return domain.Result{}, fmt.Errorf("%s: %w", fn, errEmptyResponse)
	}
	return res[0].Result, nil
}
