package agent

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hupe1980/campusmesh/core"
	"github.com/hupe1980/campusmesh/logging"
	"github.com/hupe1980/campusmesh/memory"
	"github.com/hupe1980/campusmesh/tool"
)

// SkillRoadmapID is the skill roadmap agent's stable agent id.
const SkillRoadmapID = "skill-roadmap"

var progressRe = regexp.MustCompile(`(\d+)%`)

// knownSkills are tried in order when extracting a skill from free text.
var knownSkills = []string{
	"python", "javascript", "react", "node.js", "docker", "kubernetes",
	"aws", "machine learning", "data structures", "algorithms", "git",
	"sql", "mongodb", "postgresql", "typescript", "java", "c++",
	"system design", "devops", "ci/cd",
}

type pathMilestone struct {
	Week  int
	Topic string
	Tasks []string
}

type learningPath struct {
	Weeks      int
	Milestones []pathMilestone
}

var learningPaths = map[string]map[string]learningPath{
	"python": {
		"beginner": {
			Weeks: 4,
			Milestones: []pathMilestone{
				{Week: 1, Topic: "Python Basics", Tasks: []string{"Variables & Data Types", "Control Flow", "Functions"}},
				{Week: 2, Topic: "Data Structures", Tasks: []string{"Lists, Tuples, Dictionaries", "List Comprehensions"}},
				{Week: 3, Topic: "Object-Oriented Programming", Tasks: []string{"Classes & Objects", "Inheritance"}},
				{Week: 4, Topic: "Projects", Tasks: []string{"Build a Calculator", "Create a To-Do App"}},
			},
		},
		"intermediate": {
			Weeks: 6,
			Milestones: []pathMilestone{
				{Week: 1, Topic: "Advanced OOP", Tasks: []string{"Decorators", "Generators", "Context Managers"}},
				{Week: 2, Topic: "File Handling", Tasks: []string{"Reading/Writing Files", "CSV/JSON Processing"}},
				{Week: 3, Topic: "APIs", Tasks: []string{"REST APIs", "HTTP Requests", "API Integration"}},
				{Week: 4, Topic: "Databases", Tasks: []string{"SQLite", "SQLAlchemy"}},
				{Week: 5, Topic: "Testing", Tasks: []string{"Unit Testing", "pytest"}},
				{Week: 6, Topic: "Projects", Tasks: []string{"Build a Web API", "Create a Data Analysis Tool"}},
			},
		},
	},
	"react": {
		"beginner": {
			Weeks: 5,
			Milestones: []pathMilestone{
				{Week: 1, Topic: "React Basics", Tasks: []string{"Components", "JSX", "Props"}},
				{Week: 2, Topic: "State Management", Tasks: []string{"useState", "useEffect"}},
				{Week: 3, Topic: "Routing", Tasks: []string{"React Router", "Navigation"}},
				{Week: 4, Topic: "Hooks", Tasks: []string{"Custom Hooks", "Context API"}},
				{Week: 5, Topic: "Projects", Tasks: []string{"Build a Todo App", "Create a Portfolio"}},
			},
		},
	},
}

var genericLearningPath = learningPath{
	Weeks: 4,
	Milestones: []pathMilestone{
		{Week: 1, Topic: "Introduction", Tasks: []string{"Learn Basics"}},
		{Week: 2, Topic: "Practice", Tasks: []string{"Build Projects"}},
		{Week: 3, Topic: "Advanced Topics", Tasks: []string{"Deep Dive"}},
		{Week: 4, Topic: "Mastery", Tasks: []string{"Expert Level"}},
	},
}

type skillResources struct {
	Courses  []string
	Books    []string
	Practice []string
	Projects []string
}

var resourcesBySkill = map[string]skillResources{
	"python": {
		Courses:  []string{"Python for Everybody (Coursera)", "Automate the Boring Stuff"},
		Books:    []string{"Python Crash Course", "Fluent Python"},
		Practice: []string{"LeetCode", "HackerRank", "Codewars"},
		Projects: []string{"Build a Web Scraper", "Create a Data Visualization Tool"},
	},
	"react": {
		Courses:  []string{"React - The Complete Guide (Udemy)", "Full Stack Open"},
		Books:    []string{"Learning React", "Full Stack React"},
		Practice: []string{"Build Projects", "React Challenges"},
		Projects: []string{"Todo App", "E-commerce Site", "Social Media Dashboard"},
	},
}

var genericResources = skillResources{
	Courses:  []string{"Online Courses", "YouTube Tutorials"},
	Books:    []string{"Recommended Books"},
	Practice: []string{"Practice Platforms"},
	Projects: []string{"Build Projects"},
}

type progressReport struct {
	Skill    string
	Progress int
	Status   string
}

// NewSkillRoadmap builds the learning-path agent.
func NewSkillRoadmap(logger logging.Logger) *DomainAgent {
	return NewDomainAgent(Config{
		ID:          SkillRoadmapID,
		Name:        "Skill Roadmap Agent",
		Description: "Creates personalized learning paths for technical skills and engineering tools",
		Keywords: []string{
			"skill", "learn", "roadmap", "tutorial", "practice", "master",
			"programming", "python", "javascript", "react", "node", "docker",
			"git", "aws", "machine learning", "data structure", "algorithm",
			"development", "coding", "project", "portfolio",
		},
		ScoreKeywords: []string{"skill", "learn", "roadmap", "tutorial", "programming", "python", "react"},
		ErrorReply:    "I encountered an error while creating your learning roadmap. Please try again with more specific details about the skill you want to learn.",
		Tools: []*tool.Tool{
			{
				Name:        "createLearningPath",
				Description: "Create a personalized learning path for a skill",
				Execute: func(_ context.Context, params map[string]any, _ *core.Context) (any, error) {
					return lookupLearningPath(params["skill"].(string), params["level"].(string)), nil
				},
			},
			{
				Name:        "getResources",
				Description: "Get learning resources for a skill",
				Execute: func(_ context.Context, params map[string]any, _ *core.Context) (any, error) {
					return lookupResources(params["skill"].(string)), nil
				},
			},
			{
				Name:        "trackProgress",
				Description: "Track learning progress for a skill",
				Execute: func(_ context.Context, params map[string]any, conv *core.Context) (any, error) {
					return trackProgress(params["skill"].(string), params["progress"].(int), conv), nil
				},
			},
		},
		Intents: []Intent{
			{
				// Percentages count as progress updates even without the word
				// "progress" ("I'm 75% done with python").
				Name: "track-progress",
				Match: func(lower string) bool {
					return containsAny(lower, "progress", "track") || progressRe.MatchString(lower)
				},
				Handle: func(_ context.Context, inv *Invocation) (string, error) {
					skill := extractSkill(inv.Lower)
					progress := extractProgress(inv.Message)
					result, err := inv.CallTool("trackProgress", map[string]any{"skill": skill, "progress": progress})
					if err != nil {
						return "", err
					}
					return renderProgress(result.(progressReport)), nil
				},
			},
			{
				Name:  "learning-path",
				Match: func(lower string) bool { return containsAny(lower, "roadmap", "path", "learn") },
				Handle: func(_ context.Context, inv *Invocation) (string, error) {
					skill := extractSkill(inv.Lower)
					level := extractLevel(inv.Lower)
					result, err := inv.CallTool("createLearningPath", map[string]any{"skill": skill, "level": level})
					if err != nil {
						return "", err
					}
					return renderLearningPath(skill, level, result.(learningPath)), nil
				},
			},
			{
				Name:  "resources",
				Match: func(lower string) bool { return containsAny(lower, "resource", "tutorial", "course") },
				Handle: func(_ context.Context, inv *Invocation) (string, error) {
					skill := extractSkill(inv.Lower)
					result, err := inv.CallTool("getResources", map[string]any{"skill": skill})
					if err != nil {
						return "", err
					}
					return renderResources(skill, result.(skillResources)), nil
				},
			},
		},
		Fallback: func(_ *Invocation) string {
			return "I'm your Skill Roadmap Agent! I help you create personalized learning paths for technical skills.\n\n" +
				"I can help you with:\n\n" +
				"- Creating learning roadmaps for any skill (Python, React, AWS, etc.)\n" +
				"- Finding the best resources (courses, books, practice platforms)\n" +
				"- Tracking your learning progress\n" +
				"- Adjusting your path based on your level (beginner/intermediate/advanced)\n\n" +
				"What skill would you like to learn or improve?"
		},
	}, logger)
}

func extractSkill(lower string) string {
	for _, skill := range knownSkills {
		if strings.Contains(lower, skill) {
			return skill
		}
	}
	return "programming"
}

func extractLevel(lower string) string {
	switch {
	case containsAny(lower, "beginner", "start"):
		return "beginner"
	case containsAny(lower, "intermediate", "medium"):
		return "intermediate"
	case containsAny(lower, "advanced", "expert"):
		return "advanced"
	}
	return "beginner"
}

func extractProgress(message string) int {
	m := progressRe.FindStringSubmatch(message)
	if m == nil {
		return 0
	}
	progress, _ := strconv.Atoi(m[1])
	return progress
}

func lookupLearningPath(skill, level string) learningPath {
	if byLevel, ok := learningPaths[skill]; ok {
		if path, ok := byLevel[level]; ok {
			return path
		}
	}
	return genericLearningPath
}

func lookupResources(skill string) skillResources {
	if res, ok := resourcesBySkill[skill]; ok {
		return res
	}
	return genericResources
}

// trackProgress records the update in the conversation scratchpad under the
// "skills" key and derives the level name from the percentage.
func trackProgress(skill string, progress int, conv *core.Context) progressReport {
	skills, _ := conv.GetMemory("skills")
	m, ok := skills.(map[string]any)
	if !ok {
		m = map[string]any{}
	}
	m[skill] = map[string]any{
		"progress":    progress,
		"lastUpdated": time.Now().UTC().Format(time.RFC3339),
	}
	conv.SetMemory("skills", m)

	return progressReport{Skill: skill, Progress: progress, Status: memory.ProgressStatus(progress)}
}

func renderLearningPath(skill, level string, path learningPath) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Here's your personalized %s learning path for %s:\n\n", level, skill)
	fmt.Fprintf(&sb, "Duration: %d weeks\n\n", path.Weeks)
	sb.WriteString("Milestones:\n\n")
	for _, m := range path.Milestones {
		fmt.Fprintf(&sb, "Week %d: %s\n", m.Week, m.Topic)
		for _, task := range m.Tasks {
			fmt.Fprintf(&sb, "  ✓ %s\n", task)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Stay consistent and track your progress. Would you like resources for any specific topic?")
	return sb.String()
}

func renderResources(skill string, res skillResources) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Learning resources for %s:\n\n", skill)
	writeBullets := func(header string, items []string) {
		sb.WriteString(header + "\n")
		for _, it := range items {
			fmt.Fprintf(&sb, "  - %s\n", it)
		}
		sb.WriteString("\n")
	}
	writeBullets("📚 Courses:", res.Courses)
	writeBullets("📖 Books:", res.Books)
	writeBullets("💻 Practice Platforms:", res.Practice)
	writeBullets("🚀 Project Ideas:", res.Projects)
	sb.WriteString("Start with the courses, then practice regularly, and build projects to solidify your knowledge!")
	return sb.String()
}

func renderProgress(report progressReport) string {
	return fmt.Sprintf("Great progress on %s! You're at %d%% completion, which puts you at the %s level.\n\n"+
		"Keep up the excellent work! Would you like me to adjust your learning path based on your progress?",
		report.Skill, report.Progress, report.Status)
}
