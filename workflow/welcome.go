package workflow

import (
	"context"
	"encoding/gob"
	"fmt"
	"strings"

	"github.com/heksoli/Stocks-Watcher/events"
	"github.com/heksoli/Stocks-Watcher/inference"
	"github.com/heksoli/Stocks-Watcher/mailer"

	"github.com/petrijr/fluxo"
)

// Name identifies the welcome workflow on the engine.
const Name = "send-welcome-email"

// Step names double as step-record keys, so renaming one invalidates
// memoized progress for in-flight events.
const (
	stepBuildPrompt   = "build-prompt"
	stepGenerateIntro = "generate-welcome-intro"
	stepSendEmail     = "send-welcome-email"
)

// fallbackIntro is used whenever the model returns no usable text.
// Degraded content is expected and never an error.
const fallbackIntro = "Thanks for joining! You now have the tools to track markets and make smart moves"

func init() {
	// Workflow state crosses the engine's gob-encoded persistence boundary.
	gob.Register(events.UserEvent{})
	gob.Register(welcomeState{})
	gob.Register(StepResult{})
}

// StepResult is the terminal output of the workflow, kept for audit only.
type StepResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// welcomeState is the value threaded through the workflow's steps.
type welcomeState struct {
	EventID string
	Event   events.UserCreatedEvent
	Prompt  string
	Intro   string
}

// WelcomeWorkflow sends a personalized welcome email for one user.created
// event: build prompt, generate the intro via AI inference, dispatch the
// email. The two side-effecting steps are memoized per event ID so that a
// redelivered event resumes instead of repeating completed work.
type WelcomeWorkflow struct {
	inference inference.Client
	sender    mailer.Sender
	records   *StepRecordStore
	model     string
}

// NewWelcomeWorkflow wires the workflow's collaborators.
func NewWelcomeWorkflow(client inference.Client, sender mailer.Sender, records *StepRecordStore, model string) *WelcomeWorkflow {
	return &WelcomeWorkflow{
		inference: client,
		sender:    sender,
		records:   records,
		model:     model,
	}
}

// Definition builds the fluxo workflow definition. No per-step retry policy
// is attached: retry is owned by the broker's redelivery, and memoized steps
// make replays cheap.
func (w *WelcomeWorkflow) Definition() *fluxo.FlowBuilder {
	return fluxo.New(Name).
		Step(stepBuildPrompt, w.buildPrompt).
		Step(stepGenerateIntro, w.generateIntro).
		Step(stepSendEmail, w.sendEmail)
}

// buildPrompt is pure: safe to re-execute on every delivery.
func (w *WelcomeWorkflow) buildPrompt(ctx context.Context, input any) (any, error) {
	event, ok := input.(events.UserEvent)
	if !ok {
		return nil, fmt.Errorf("%s: expected events.UserEvent input, got %T", stepBuildPrompt, input)
	}
	if event.ID == "" {
		return nil, fmt.Errorf("%s: event has no ID", stepBuildPrompt)
	}

	return welcomeState{
		EventID: event.ID,
		Event:   event.Data,
		Prompt:  BuildPrompt(event.Data),
	}, nil
}

// generateIntro invokes the AI inference gateway once per event. Transport
// errors propagate to the host runtime; absent or non-text content resolves
// to the fallback intro.
func (w *WelcomeWorkflow) generateIntro(ctx context.Context, input any) (any, error) {
	state, ok := input.(welcomeState)
	if !ok {
		return nil, fmt.Errorf("%s: expected welcomeState input, got %T", stepGenerateIntro, input)
	}

	var intro string
	done, err := w.records.Lookup(ctx, state.EventID, stepGenerateIntro, &intro)
	if err != nil {
		return nil, err
	}

	if !done {
		resp, err := w.inference.Generate(ctx, w.model, state.Prompt)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", stepGenerateIntro, err)
		}

		intro = resolveIntro(resp)

		if err := w.records.Record(ctx, state.EventID, stepGenerateIntro, intro); err != nil {
			return nil, err
		}
	}

	state.Intro = intro
	return state, nil
}

// sendEmail dispatches the welcome email at most once per event. The step
// record is written only after the relay accepts the message, so a crash
// in between re-attempts the send, never drops it silently.
func (w *WelcomeWorkflow) sendEmail(ctx context.Context, input any) (any, error) {
	state, ok := input.(welcomeState)
	if !ok {
		return nil, fmt.Errorf("%s: expected welcomeState input, got %T", stepSendEmail, input)
	}

	var result StepResult
	done, err := w.records.Lookup(ctx, state.EventID, stepSendEmail, &result)
	if err != nil {
		return nil, err
	}

	if !done {
		err := w.sender.SendWelcomeEmail(ctx, mailer.WelcomeEmailData{
			Email: state.Event.Email,
			Name:  state.Event.Name,
			Intro: state.Intro,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", stepSendEmail, err)
		}

		result = StepResult{
			Success: true,
			Message: fmt.Sprintf("Welcome email successfully sent to %s", state.Event.Email),
		}

		if err := w.records.Record(ctx, state.EventID, stepSendEmail, result); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// resolveIntro extracts the email intro from an inference response: first
// candidate, first part, trimmed. Anything else falls back to the fixed
// welcome sentence.
func resolveIntro(resp *inference.Response) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return fallbackIntro
	}

	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return fallbackIntro
	}

	text := strings.TrimSpace(parts[0].Text)
	if text == "" {
		return fallbackIntro
	}

	return text
}
