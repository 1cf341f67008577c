package workflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/heksoli/Stocks-Watcher/events"
	"github.com/heksoli/Stocks-Watcher/inference"
	"github.com/heksoli/Stocks-Watcher/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInference struct {
	resp  *inference.Response
	err   error
	calls int
}

func (s *stubInference) Generate(ctx context.Context, model, prompt string) (*inference.Response, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type stubSender struct {
	err  error
	sent []mailer.WelcomeEmailData
}

func (s *stubSender) SendWelcomeEmail(ctx context.Context, data mailer.WelcomeEmailData) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, data)
	return nil
}

func textResponse(text string) *inference.Response {
	return &inference.Response{
		Candidates: []inference.Candidate{
			{Content: inference.Content{Parts: []inference.Part{{Text: text}}}},
		},
	}
}

func annEvent() events.UserEvent {
	return events.UserEvent{
		ID:        "evt-ann-1",
		Event:     events.TopicUserCreated,
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
		Data: events.UserCreatedEvent{
			Email:             "a@b.com",
			Name:              "Ann",
			Country:           "RO",
			InvestmentGoals:   "Growth",
			RiskTolerance:     "Medium",
			PreferredIndustry: "Technology",
		},
	}
}

func newTestRunner(t *testing.T, client inference.Client, sender mailer.Sender) *Runner {
	t.Helper()

	runner, err := NewRunner(newTestDB(t), client, sender, "gemini-2.5-flash-lite")
	require.NoError(t, err)
	return runner
}

func TestWelcomeWorkflow_SendsGeneratedIntro(t *testing.T) {
	client := &stubInference{resp: textResponse("Welcome Ann!")}
	sender := &stubSender{}
	runner := newTestRunner(t, client, sender)

	result, err := runner.Handle(context.Background(), annEvent())
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "Welcome email successfully sent to a@b.com", result.Message)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, mailer.WelcomeEmailData{
		Email: "a@b.com",
		Name:  "Ann",
		Intro: "Welcome Ann!",
	}, sender.sent[0])
}

func TestWelcomeWorkflow_TrimsGeneratedIntro(t *testing.T) {
	client := &stubInference{resp: textResponse("  Welcome Ann!\n")}
	sender := &stubSender{}
	runner := newTestRunner(t, client, sender)

	_, err := runner.Handle(context.Background(), annEvent())
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Welcome Ann!", sender.sent[0].Intro)
}

func TestWelcomeWorkflow_EmptyCandidatesFallsBack(t *testing.T) {
	client := &stubInference{resp: &inference.Response{}}
	sender := &stubSender{}
	runner := newTestRunner(t, client, sender)

	result, err := runner.Handle(context.Background(), annEvent())
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, fallbackIntro, sender.sent[0].Intro)
}

func TestWelcomeWorkflow_NonTextPartFallsBack(t *testing.T) {
	client := &stubInference{resp: &inference.Response{
		Candidates: []inference.Candidate{
			{Content: inference.Content{Parts: []inference.Part{{}}}},
		},
	}}
	sender := &stubSender{}
	runner := newTestRunner(t, client, sender)

	result, err := runner.Handle(context.Background(), annEvent())
	require.NoError(t, err)

	assert.True(t, result.Success)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, fallbackIntro, sender.sent[0].Intro)
}

func TestWelcomeWorkflow_InferenceErrorPropagates(t *testing.T) {
	client := &stubInference{err: errors.New("gemini unreachable")}
	sender := &stubSender{}
	runner := newTestRunner(t, client, sender)

	_, err := runner.Handle(context.Background(), annEvent())
	require.Error(t, err)
	assert.Empty(t, sender.sent)
}

func TestWelcomeWorkflow_MailErrorPropagates(t *testing.T) {
	client := &stubInference{resp: textResponse("Welcome Ann!")}
	sender := &stubSender{err: errors.New("smtp connection refused")}
	runner := newTestRunner(t, client, sender)

	_, err := runner.Handle(context.Background(), annEvent())
	require.Error(t, err)
	assert.Empty(t, sender.sent)
}

func TestWelcomeWorkflow_RedeliveryDoesNotRepeatInference(t *testing.T) {
	client := &stubInference{resp: textResponse("Welcome Ann!")}
	sender := &stubSender{err: errors.New("smtp connection refused")}
	runner := newTestRunner(t, client, sender)

	event := annEvent()
	ctx := context.Background()

	// First delivery: inference succeeds, mail dispatch fails.
	_, err := runner.Handle(ctx, event)
	require.Error(t, err)
	require.Equal(t, 1, client.calls)

	// Redelivery: the memoized inference step must not run again.
	sender.err = nil
	result, err := runner.Handle(ctx, event)
	require.NoError(t, err)

	assert.Equal(t, 1, client.calls)
	assert.True(t, result.Success)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Welcome Ann!", sender.sent[0].Intro)
}

func TestWelcomeWorkflow_RedeliveryDoesNotResendEmail(t *testing.T) {
	client := &stubInference{resp: textResponse("Welcome Ann!")}
	sender := &stubSender{}
	runner := newTestRunner(t, client, sender)

	event := annEvent()
	ctx := context.Background()

	first, err := runner.Handle(ctx, event)
	require.NoError(t, err)

	// A duplicate delivery replays the recorded result without a second send.
	second, err := runner.Handle(ctx, event)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, sender.sent, 1)
	assert.Equal(t, 1, client.calls)
}

func TestWelcomeWorkflow_DistinctEventsAreIndependent(t *testing.T) {
	client := &stubInference{resp: textResponse("Welcome!")}
	sender := &stubSender{}
	runner := newTestRunner(t, client, sender)

	ctx := context.Background()

	first := annEvent()
	second := annEvent()
	second.ID = "evt-ann-2"
	second.Data.Email = "b@c.com"
	second.Data.Name = "Bob"

	_, err := runner.Handle(ctx, first)
	require.NoError(t, err)
	_, err = runner.Handle(ctx, second)
	require.NoError(t, err)

	assert.Equal(t, 2, client.calls)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "a@b.com", sender.sent[0].Email)
	assert.Equal(t, "b@c.com", sender.sent[1].Email)
}

func TestWelcomeWorkflow_RejectsEventWithoutID(t *testing.T) {
	client := &stubInference{resp: textResponse("Welcome!")}
	sender := &stubSender{}
	runner := newTestRunner(t, client, sender)

	event := annEvent()
	event.ID = ""

	_, err := runner.Handle(context.Background(), event)
	require.Error(t, err)
	assert.Empty(t, sender.sent)
	assert.Zero(t, client.calls)
}

func TestResolveIntro(t *testing.T) {
	assert.Equal(t, fallbackIntro, resolveIntro(nil))
	assert.Equal(t, fallbackIntro, resolveIntro(&inference.Response{}))
	assert.Equal(t, fallbackIntro, resolveIntro(&inference.Response{
		Candidates: []inference.Candidate{{}},
	}))
	assert.Equal(t, fallbackIntro, resolveIntro(textResponse("   ")))
	assert.Equal(t, "Welcome!", resolveIntro(textResponse("  Welcome!  ")))
}
