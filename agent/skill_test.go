package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/campusmesh/core"
)

func TestSkillRoadmapTrackProgressFromPercentage(t *testing.T) {
	a := NewSkillRoadmap(nil)
	conv := core.NewContext("user-1", "sess-1", nil)

	resp := a.Process(context.Background(), "I'm 75% done with python", conv)

	assert.Equal(t, SkillRoadmapID, resp.AgentID)
	assert.Contains(t, resp.Content, "python")
	assert.Contains(t, resp.Content, "75%")
	assert.Contains(t, resp.Content, "advanced")
	assert.Equal(t, []string{"trackProgress"}, resp.ToolsUsed)

	// The update lands in the conversation scratchpad.
	skills, ok := conv.GetMemory("skills")
	require.True(t, ok)
	entry, ok := skills.(map[string]any)["python"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 75, entry["progress"])
	assert.NotEmpty(t, entry["lastUpdated"])
}

func TestSkillRoadmapTrackProgressKeyword(t *testing.T) {
	a := NewSkillRoadmap(nil)
	conv := core.NewContext("user-1", "sess-1", nil)

	resp := a.Process(context.Background(), "track my react progress", conv)
	assert.Contains(t, resp.Content, "react")
	assert.Contains(t, resp.Content, "0%")
	assert.Contains(t, resp.Content, "beginner")
}

func TestSkillRoadmapLearningPath(t *testing.T) {
	a := NewSkillRoadmap(nil)

	resp := a.Process(context.Background(), "I want to learn python", core.NewContext("u", "s", nil))
	assert.Contains(t, resp.Content, "beginner learning path for python")
	assert.Contains(t, resp.Content, "Duration: 4 weeks")
	assert.Contains(t, resp.Content, "Python Basics")
	assert.Equal(t, []string{"createLearningPath"}, resp.ToolsUsed)
}

func TestSkillRoadmapLearningPathIntermediate(t *testing.T) {
	a := NewSkillRoadmap(nil)

	resp := a.Process(context.Background(), "give me an intermediate python roadmap", core.NewContext("u", "s", nil))
	assert.Contains(t, resp.Content, "intermediate learning path for python")
	assert.Contains(t, resp.Content, "Duration: 6 weeks")
}

func TestSkillRoadmapGenericPathForUnknownSkill(t *testing.T) {
	a := NewSkillRoadmap(nil)

	resp := a.Process(context.Background(), "I want to learn rust", core.NewContext("u", "s", nil))
	// Unknown skills get the generic path under the default skill name.
	assert.Contains(t, resp.Content, "programming")
	assert.Contains(t, resp.Content, "Duration: 4 weeks")
	assert.Contains(t, resp.Content, "Mastery")
}

func TestSkillRoadmapResources(t *testing.T) {
	a := NewSkillRoadmap(nil)

	resp := a.Process(context.Background(), "what tutorials are there for react", core.NewContext("u", "s", nil))
	assert.Contains(t, resp.Content, "Learning resources for react")
	assert.Contains(t, resp.Content, "Full Stack Open")
	assert.Equal(t, []string{"getResources"}, resp.ToolsUsed)
}

func TestSkillRoadmapFallback(t *testing.T) {
	a := NewSkillRoadmap(nil)

	resp := a.Process(context.Background(), "coding is fun", core.NewContext("u", "s", nil))
	assert.Contains(t, resp.Content, "Skill Roadmap Agent")
	assert.Empty(t, resp.ToolsUsed)
}

func TestExtractSkillAndLevel(t *testing.T) {
	assert.Equal(t, "python", extractSkill("i love python and java"))
	assert.Equal(t, "machine learning", extractSkill("intro to machine learning"))
	assert.Equal(t, "programming", extractSkill("nothing known here"))

	assert.Equal(t, "beginner", extractLevel("i am a beginner"))
	assert.Equal(t, "intermediate", extractLevel("medium difficulty please"))
	assert.Equal(t, "advanced", extractLevel("expert material"))
	assert.Equal(t, "beginner", extractLevel("no level given"))
}

func TestExtractProgress(t *testing.T) {
	assert.Equal(t, 75, extractProgress("I'm 75% done"))
	assert.Equal(t, 0, extractProgress("no percent here"))
}
