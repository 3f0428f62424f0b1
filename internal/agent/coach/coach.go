// Package coach runs the per-turn slot-filling pipeline: extract candidate
// facts from the utterance, merge them into the stored profile, persist,
// compute which fields are still missing, then stream a model reply built
// from the full profile state and conversation history.
package coach

import (
	"context"
	"io"
	"strings"
	"sync"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/coach-core-poc/server/internal/agent/extract"
	"github.com/coach-core-poc/server/internal/agent/model"
	"github.com/coach-core-poc/server/internal/agent/profile"
	"github.com/coach-core-poc/server/internal/agent/prompts"
	errx "github.com/coach-core-poc/server/internal/core/error"
	logx "github.com/coach-core-poc/server/pkg/logger"
)

// turnStage labels the lifecycle of a single turn for logging.
type turnStage string

const (
	stageReceived        turnStage = "received"
	stageExtracted       turnStage = "extracted"
	stageMerged          turnStage = "merged"
	stagePersisted       turnStage = "persisted"
	stageMissingComputed turnStage = "missing_computed"
	stageRequestBuilt    turnStage = "request_built"
	stageStreaming       turnStage = "streaming"
	stageCompleted       turnStage = "completed"
	stageAborted         turnStage = "aborted"
)

// snapshotBuffer bounds how far the producer can run ahead of the consumer.
const snapshotBuffer = 8

// Coach orchestrates turns for any number of sessions. Turns for the same
// session are serialized; turns for different sessions run in parallel.
type Coach struct {
	chatModel einomodel.BaseChatModel
	profiles  model.ProfileRepository
	history   model.ConversationRepository
	prompt    model.CoachPromptConfig

	sessions sync.Map // sessionID -> *sync.Mutex
}

func New(chatModel einomodel.BaseChatModel, profiles model.ProfileRepository, history model.ConversationRepository, prompt model.CoachPromptConfig) *Coach {
	return &Coach{
		chatModel: chatModel,
		profiles:  profiles,
		history:   history,
		prompt:    prompt,
	}
}

func (c *Coach) sessionLock(sessionID string) *sync.Mutex {
	mu, _ := c.sessions.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// HandleTurn processes one utterance and returns a stream of response
// snapshots. Each received item is the full accumulated reply so far, not
// the delta; the stream ends with io.EOF on natural completion or with the
// turn's failure otherwise.
//
// The session stays locked until the returned stream completes, errors, or
// is closed by the caller, so a second turn for the same session blocks
// here until the first one settles. The user/assistant exchange is written
// to the history only when the backend finishes the stream naturally;
// a mid-stream failure or caller close leaves the history untouched while
// the profile keeps the merge persisted before streaming began.
func (c *Coach) HandleTurn(ctx context.Context, in model.TurnInput) (*schema.StreamReader[string], error) {
	turnID := uuid.NewString()
	mu := c.sessionLock(in.SessionID)
	mu.Lock()
	c.logStage(turnID, in.SessionID, stageReceived)

	abort := func(err error) (*schema.StreamReader[string], error) {
		c.logStage(turnID, in.SessionID, stageAborted)
		mu.Unlock()
		return nil, err
	}

	// Extraction is pure and total; an utterance matching nothing simply
	// contributes zero facts.
	facts := extract.Extract(in.Utterance)
	c.logStage(turnID, in.SessionID, stageExtracted)

	current, err := c.profiles.Get(ctx, in.SessionID)
	if err != nil {
		return abort(err)
	}
	merged := profile.Merge(current, facts)
	c.logStage(turnID, in.SessionID, stageMerged)

	if err := c.profiles.Upsert(ctx, merged); err != nil {
		return abort(err)
	}
	c.logStage(turnID, in.SessionID, stagePersisted)

	// Recomputed fresh every turn: this turn's merge may have just
	// completed a field.
	missing := profile.Missing(merged)
	c.logStage(turnID, in.SessionID, stageMissingComputed)

	system, err := prompts.RenderCoachSystem(ctx, c.prompt, merged, missing)
	if err != nil {
		return abort(err)
	}
	hist, err := c.history.LoadHistory(ctx, in.SessionID)
	if err != nil {
		return abort(err)
	}

	userMsg := schema.UserMessage(in.Utterance)
	messages := make([]*schema.Message, 0, len(hist.Messages)+2)
	messages = append(messages, schema.SystemMessage(system))
	messages = append(messages, hist.Messages...)
	messages = append(messages, userMsg)
	c.logStage(turnID, in.SessionID, stageRequestBuilt)

	ms, err := c.chatModel.Stream(ctx, messages)
	if err != nil {
		return abort(errx.WrapGeneration(err))
	}
	c.logStage(turnID, in.SessionID, stageStreaming)

	sr, sw := schema.Pipe[string](snapshotBuffer)
	go c.pump(ctx, turnID, in.SessionID, mu, userMsg, ms, sw)
	return sr, nil
}

// Reset clears the session's conversation history so the next turn starts
// from an empty context. The stored profile is left intact; removing a
// profile is an administrative operation outside the turn engine. Reset
// waits for any in-flight turn on the session to settle first.
func (c *Coach) Reset(ctx context.Context, sessionID string) error {
	mu := c.sessionLock(sessionID)
	mu.Lock()
	defer mu.Unlock()
	return c.history.ClearHistory(ctx, sessionID)
}

// pump drains the model stream into the snapshot pipe and commits the
// exchange on natural completion. It owns the session lock from here on.
func (c *Coach) pump(ctx context.Context, turnID, sessionID string, mu *sync.Mutex, userMsg *schema.Message, ms *schema.StreamReader[*schema.Message], sw *schema.StreamWriter[string]) {
	defer mu.Unlock()
	defer sw.Close()
	defer ms.Close()

	var acc strings.Builder
	for {
		chunk, err := ms.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Snapshots already delivered stand as the final partial
			// output; nothing is written to the history.
			c.logStage(turnID, sessionID, stageAborted)
			sw.Send("", errx.WrapGeneration(err))
			return
		}
		if chunk == nil || chunk.Content == "" {
			continue
		}
		acc.WriteString(chunk.Content)
		if closed := sw.Send(acc.String(), nil); closed {
			// The caller abandoned the turn; skip the history commit.
			c.logStage(turnID, sessionID, stageAborted)
			return
		}
	}

	assistant := schema.AssistantMessage(acc.String(), nil)
	if err := c.history.AddExchange(ctx, sessionID, userMsg, assistant); err != nil {
		c.logStage(turnID, sessionID, stageAborted)
		sw.Send("", err)
		return
	}
	c.logStage(turnID, sessionID, stageCompleted)
}

func (c *Coach) logStage(turnID, sessionID string, stage turnStage) {
	logx.Debug().
		Str("turn_id", turnID).
		Str("session_id", sessionID).
		Str("stage", string(stage)).
		Msg("turn stage")
}
