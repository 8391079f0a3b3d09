package campusmesh

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/campusmesh/agent"
	"github.com/hupe1980/campusmesh/core"
)

func TestChatRejectsInvalidInput(t *testing.T) {
	m := New()

	_, err := m.Chat(context.Background(), &ChatRequest{SessionID: "s-1", UserID: "user-1"})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "message", reqErr.Field)

	_, err = m.Chat(context.Background(), &ChatRequest{Message: "hello", UserID: "user-1"})
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "sessionId", reqErr.Field)

	_, err = m.Chat(context.Background(), &ChatRequest{Message: "hello", SessionID: "s-1"})
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "userId", reqErr.Field)

	_, err = m.Chat(context.Background(), &ChatRequest{Message: "   ", SessionID: "s-1", UserID: "user-1"})
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "message", reqErr.Field)
}

func TestChatCreatesSessionForUnknownID(t *testing.T) {
	m := New()

	resp, err := m.Chat(context.Background(), &ChatRequest{
		Message:   "hello there",
		SessionID: "never-seen",
		UserID:    "user-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEqual(t, "never-seen", resp.SessionID)
	assert.NotEmpty(t, resp.TraceID)

	sess, ok := m.Sessions().Get(resp.SessionID)
	require.True(t, ok)
	// User turn plus assistant turn, in lock-step with the context history.
	assert.Equal(t, 2, sess.MessageCount())
	assert.Len(t, sess.Context().History(), 2)

	msgs := sess.Messages()
	assert.Equal(t, core.RoleUser, msgs[0].Role)
	assert.Equal(t, core.RoleAssistant, msgs[1].Role)
	assert.Equal(t, resp.AgentID, msgs[1].AgentID)
}

func TestChatResumesExistingSession(t *testing.T) {
	m := New()

	first, err := m.Chat(context.Background(), &ChatRequest{Message: "hello", SessionID: "s-1", UserID: "user-1"})
	require.NoError(t, err)

	second, err := m.Chat(context.Background(), &ChatRequest{
		Message:   "hello again",
		UserID:    "user-1",
		SessionID: first.SessionID,
	})
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, second.SessionID)

	sess, _ := m.Sessions().Get(first.SessionID)
	assert.Equal(t, 4, sess.MessageCount())
	assert.Equal(t, 1, m.Sessions().Count())
}

func TestChatRoutesCourseQuestionToAdvisor(t *testing.T) {
	m := New()

	resp, err := m.Chat(context.Background(), &ChatRequest{
		Message:   "Can you recommend courses for next semester?",
		SessionID: "s-1",
		UserID:    "user-1",
		Profile:   &core.UserProfile{Name: "Alex", Major: "Computer Science", Year: "Freshman"},
	})
	require.NoError(t, err)

	assert.Equal(t, agent.AcademicAdvisorID, resp.AgentID)
	assert.Equal(t, "Academic Advisor", resp.AgentName)
	assert.Contains(t, resp.Message, "CS 101: Introduction to Programming")
	assert.Equal(t, agent.AcademicAdvisorID, resp.Metadata["selectedAgent"])
}

func TestChatAttachesProfileToResumedSession(t *testing.T) {
	m := New()

	first, err := m.Chat(context.Background(), &ChatRequest{
		Message:   "hello",
		SessionID: "s-1",
		UserID:    "user-1",
	})
	require.NoError(t, err)

	// The profile arrives on the second turn and the advisor uses it.
	resp, err := m.Chat(context.Background(), &ChatRequest{
		Message:   "Can you recommend courses for next semester?",
		SessionID: first.SessionID,
		UserID:    "user-1",
		Profile:   &core.UserProfile{Name: "Alex", Major: "Electrical Engineering", Year: "Freshman"},
	})
	require.NoError(t, err)

	assert.Equal(t, first.SessionID, resp.SessionID)
	assert.Equal(t, agent.AcademicAdvisorID, resp.AgentID)
	assert.Contains(t, resp.Message, "Electrical Engineering major")
	assert.Contains(t, resp.Message, "EE 101: Circuit Analysis")

	sess, ok := m.Sessions().Get(first.SessionID)
	require.True(t, ok)
	profile := sess.Context().Profile()
	require.NotNil(t, profile)
	assert.Equal(t, "Electrical Engineering", profile.Major)
}

func TestChatPersistsSkillProgressToMemory(t *testing.T) {
	m := New()

	resp, err := m.Chat(context.Background(), &ChatRequest{
		Message:   "I'm 75% done with python",
		SessionID: "s-1",
		UserID:    "user-1",
	})
	require.NoError(t, err)

	assert.Equal(t, agent.SkillRoadmapID, resp.AgentID)
	assert.Contains(t, resp.Message, "advanced")

	// The update outlives the session via the memory bank.
	assert.Equal(t, 75, m.Memory().SkillProgress("user-1", "python"))
}

func TestChatUnroutableMessageGetsCoordinatorHelp(t *testing.T) {
	m := New()

	resp, err := m.Chat(context.Background(), &ChatRequest{Message: "xyzzy", SessionID: "s-1", UserID: "user-1"})
	require.NoError(t, err)

	assert.Equal(t, agent.CoordinatorID, resp.AgentID)
	assert.Contains(t, resp.Message, "not sure which agent")
}

func TestChatSelectedAgentOverride(t *testing.T) {
	m := New()

	resp, err := m.Chat(context.Background(), &ChatRequest{
		Message:       "hello",
		SessionID:     "s-1",
		UserID:        "user-1",
		SelectedAgent: agent.CareerGuidanceID,
	})
	require.NoError(t, err)

	// The override bypasses routing even though no career keyword occurs.
	assert.Equal(t, agent.CareerGuidanceID, resp.AgentID)
	assert.Contains(t, resp.Message, "Career Guidance Agent")
}

func TestChatUnknownSelectedAgentFallsBackToRouting(t *testing.T) {
	m := New()

	resp, err := m.Chat(context.Background(), &ChatRequest{
		Message:       "recommend a course",
		SessionID:     "s-1",
		UserID:        "user-1",
		SelectedAgent: "bogus-agent",
	})
	require.NoError(t, err)

	assert.Equal(t, agent.AcademicAdvisorID, resp.AgentID)
}

func TestChatRecordsTrace(t *testing.T) {
	m := New()

	resp, err := m.Chat(context.Background(), &ChatRequest{Message: "hello", SessionID: "s-1", UserID: "user-1"})
	require.NoError(t, err)

	spans := m.Tracer().Trace(resp.TraceID)
	require.Len(t, spans, 2)
	assert.Equal(t, "chat", spans[0].Name)
	assert.Equal(t, "process", spans[1].Name)
	for _, sp := range spans {
		assert.False(t, sp.EndTime.IsZero())
	}
}

func TestSystemMetricsReflectsChats(t *testing.T) {
	m := New()

	_, err := m.Chat(context.Background(), &ChatRequest{Message: "recommend a course", SessionID: "s-1", UserID: "user-1"})
	require.NoError(t, err)
	_, err = m.Chat(context.Background(), &ChatRequest{Message: "I want to learn python", SessionID: "s-2", UserID: "user-2"})
	require.NoError(t, err)

	sys := m.SystemMetrics()
	assert.Equal(t, 2, sys.TotalMessages)
	assert.Equal(t, 2, sys.ActiveSessions)
	assert.Equal(t, 2, sys.TotalSessions)
	assert.Zero(t, sys.ErrorRate)

	// Coordinator plus the four domain agents.
	assert.Len(t, sys.Agents, 5)
}

func TestCreateSession(t *testing.T) {
	m := New()

	sess, err := m.CreateSession("user-1", &core.UserProfile{Name: "Alex"})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, 1, m.Sessions().Count())

	_, err = m.CreateSession("  ", nil)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, "userId", reqErr.Field)
}

func TestCleanup(t *testing.T) {
	m := New()
	_, err := m.CreateSession("user-1", nil)
	require.NoError(t, err)

	assert.Zero(t, m.Cleanup(0))
	assert.Equal(t, 1, m.Sessions().Count())
}

func TestRequestErrorMessage(t *testing.T) {
	err := &RequestError{Field: "message"}
	assert.Equal(t, "invalid request: message is required", err.Error())
}
