package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Xausdorf/pollbooth/internal/config"
	"github.com/mattermost/mattermost-server/v6/model"
)

const (
	maxRetries = 5
	retryDelay = 3 * time.Second
)

var ErrMaxRetries = errors.New("could not connect mattermost websocket, max retries exceeded")

type PollingBot struct {
	cfg             config.MattermostConfig
	client          *model.Client4
	webSocketClient *model.WebSocketClient
	user            *model.User
	team            *model.Team
	handler         *Handler
	log             *slog.Logger
}

func NewPollingBot(cfg config.MattermostConfig, handler *Handler, log *slog.Logger) (*PollingBot, error) {
	var bot PollingBot

	bot.cfg = cfg
	bot.log = log
	bot.client = model.NewAPIv4Client(bot.cfg.Server)
	bot.client.SetToken(bot.cfg.Token)

	user, _, err := bot.client.GetMe("")
	if err != nil {
		return nil, fmt.Errorf("could not log in: %w", err)
	}
	log.Info("logged in to mattermost", "user", user.Username)
	bot.user = user

	team, _, err := bot.client.GetTeamByName(cfg.TeamName, "")
	if err != nil {
		return nil, fmt.Errorf("could not find team %q: %w", cfg.TeamName, err)
	}
	log.Info("team found", "team", team.Name)
	bot.team = team

	bot.handler = handler

	return &bot, nil
}

// Listen serves posts until ctx is done. It returns ErrMaxRetries when the
// websocket cannot be (re)connected.
func (b *PollingBot) Listen(ctx context.Context) error {
	for i := 0; i < maxRetries; i++ {
		var err error
		b.webSocketClient, err = model.NewWebSocketClient4(b.cfg.Server, b.client.AuthToken)
		if err != nil {
			b.log.Warn("could not connect mattermost websocket, retrying", "error", err)
			select {
			case <-time.After(retryDelay):
				continue
			case <-ctx.Done():
				return nil
			}
		}
		b.log.Info("mattermost websocket successfully connected")

		b.webSocketClient.Listen()

		b.log.Info("polling bot listening now")
		if b.serve(ctx) {
			return nil
		}
		b.log.Warn("mattermost websocket closed, reconnecting")
	}
	return ErrMaxRetries
}

// serve reports true when it stopped because ctx is done.
func (b *PollingBot) serve(ctx context.Context) bool {
	for {
		select {
		case event, ok := <-b.webSocketClient.EventChannel:
			if !ok {
				return false
			}
			go b.handleWebSocketEvent(ctx, event)
		case <-ctx.Done():
			return true
		}
	}
}

func (b *PollingBot) Close() {
	if b.webSocketClient != nil {
		b.log.Info("closing mattermost websocket connection")
		b.webSocketClient.Close()
	}
}

func (b *PollingBot) handleWebSocketEvent(ctx context.Context, event *model.WebSocketEvent) {
	if event.EventType() != model.WebsocketEventPosted {
		return
	}

	post := &model.Post{}
	eventData, ok := event.GetData()["post"].(string)
	if !ok {
		b.log.Warn("could not cast event data to string")
		return
	}
	if err := json.Unmarshal([]byte(eventData), &post); err != nil {
		b.log.Warn("could not unmarshal event to *model.Post", "error", err)
		return
	}

	if post.UserId == b.user.Id {
		return
	}

	b.handlePost(ctx, post)
}

func (b *PollingBot) handlePost(ctx context.Context, post *model.Post) {
	b.log.Debug("handling post", "msg", post.Message, "post_id", post.Id, "user_id", post.UserId)

	reply, ok := b.handler.Handle(ctx, post.UserId, post.Message)
	if !ok {
		return
	}
	b.Respond(ctx, post, reply)
}

func (b *PollingBot) Respond(_ context.Context, post *model.Post, msg string) {
	resp := &model.Post{}
	resp.ChannelId = post.ChannelId
	resp.Message = msg
	resp.RootId = post.Id

	if _, _, err := b.client.CreatePost(resp); err != nil {
		b.log.Error("could not respond to post", "msg", msg, "post_id", post.Id, "error", err)
	}
}
