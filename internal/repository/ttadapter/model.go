package ttadapter

import (
	"fmt"

	"github.com/Xausdorf/pollbooth/internal/domain"
	"github.com/vmihailenco/msgpack/v5"
)

// SummaryModel - roster tuple [id, title].
type SummaryModel struct {
	ID    uint64
	Title string
}

// PollModel - poll tuple [id, question, {options}, {votes}].
type PollModel struct {
	ID       uint64
	Question string
	Options  []string
	Votes    []uint64
}

// ResultModel - mutation result map, either {ok = ...} or {err = "reason"}.
type ResultModel struct {
	Result domain.Result
}

const (
	summaryModelFields = 2
	pollModelFields    = 4

	resultOkKey  = "ok"
	resultErrKey = "err"
)

func (s *SummaryModel) ToSummary() domain.PollSummary {
	return domain.PollSummary{ID: s.ID, Title: s.Title}
}

func (s *SummaryModel) DecodeMsgpack(d *msgpack.Decoder) error {
	var err error
	var l int
	if l, err = d.DecodeArrayLen(); err != nil {
		return err
	}
	if l != summaryModelFields {
		return fmt.Errorf("array len doesn't match: %d", l)
	}
	if s.ID, err = d.DecodeUint64(); err != nil {
		return err
	}
	if s.Title, err = d.DecodeString(); err != nil {
		return err
	}
	return nil
}

func (p *PollModel) ToPoll() *domain.Poll {
	return &domain.Poll{
		ID:       p.ID,
		Question: p.Question,
		Options:  p.Options,
		Votes:    p.Votes,
	}
}

func (p *PollModel) DecodeMsgpack(d *msgpack.Decoder) error {
	var err error
	var l int
	if l, err = d.DecodeArrayLen(); err != nil {
		return err
	}
	if l != pollModelFields {
		return fmt.Errorf("array len doesn't match: %d", l)
	}
	if p.ID, err = d.DecodeUint64(); err != nil {
		return err
	}
	if p.Question, err = d.DecodeString(); err != nil {
		return err
	}
	if l, err = d.DecodeArrayLen(); err != nil {
		return err
	}
	p.Options = make([]string, max(l, 0))
	for i := range p.Options {
		if p.Options[i], err = d.DecodeString(); err != nil {
			return err
		}
	}
	if l, err = d.DecodeArrayLen(); err != nil {
		return err
	}
	p.Votes = make([]uint64, max(l, 0))
	for i := range p.Votes {
		if p.Votes[i], err = d.DecodeUint64(); err != nil {
			return err
		}
	}
	return nil
}

func (r *ResultModel) DecodeMsgpack(d *msgpack.Decoder) error {
	var err error
	var l int
	if l, err = d.DecodeMapLen(); err != nil {
		return err
	}
	if l != 1 {
		return fmt.Errorf("result must have exactly one variant, got %d", l)
	}
	var key string
	if key, err = d.DecodeString(); err != nil {
		return err
	}
	switch key {
	case resultOkKey:
		if err = d.Skip(); err != nil {
			return err
		}
		r.Result = domain.Ok()
	case resultErrKey:
		var reason string
		if reason, err = d.DecodeString(); err != nil {
			return err
		}
		r.Result = domain.Err(reason)
	default:
		return fmt.Errorf("unknown result variant: %q", key)
	}
	return nil
}
