package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hupe1980/campusmesh/core"
	"github.com/hupe1980/campusmesh/logging"
	"github.com/hupe1980/campusmesh/tool"
)

// AssignmentHelperID is the assignment helper's stable agent id.
const AssignmentHelperID = "assignment-helper"

var assignmentNameRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)assignment[:\s]+(.+?)(?:deadline|due|help|$)`),
	regexp.MustCompile(`(?i)project[:\s]+(.+?)(?:deadline|due|help|$)`),
	regexp.MustCompile(`(?i)homework[:\s]+(.+?)(?:deadline|due|help|$)`),
}

var deadlineRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)deadline[:\s]+(.+?)(?:\n|$)`),
	regexp.MustCompile(`(?i)due[:\s]+(.+?)(?:\n|$)`),
	regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4})`),
	regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
}

const noDeadline = "No deadline specified"

type taskItem struct {
	ID            int
	Task          string
	EstimatedTime string
	Priority      string
}

type taskList struct {
	Assignment         string
	Deadline           string
	Tasks              []taskItem
	TotalEstimatedTime string
}

type projectPhase struct {
	Phase string
	Tasks []string
}

type projectBreakdown struct {
	Phases         []projectPhase
	EstimatedWeeks int
}

var projectBreakdowns = map[string]projectBreakdown{
	"simple": {
		Phases: []projectPhase{
			{Phase: "Planning", Tasks: []string{"Define scope", "Set timeline", "Gather requirements"}},
			{Phase: "Development", Tasks: []string{"Implement core features", "Basic testing"}},
			{Phase: "Completion", Tasks: []string{"Final review", "Documentation", "Submission"}},
		},
		EstimatedWeeks: 1,
	},
	"medium": {
		Phases: []projectPhase{
			{Phase: "Planning", Tasks: []string{"Requirements analysis", "Design architecture", "Create timeline"}},
			{Phase: "Development", Tasks: []string{"Set up environment", "Implement features", "Integration"}},
			{Phase: "Testing", Tasks: []string{"Unit tests", "Integration tests", "Bug fixes"}},
			{Phase: "Completion", Tasks: []string{"Documentation", "Code review", "Deployment"}},
		},
		EstimatedWeeks: 2,
	},
	"complex": {
		Phases: []projectPhase{
			{Phase: "Planning", Tasks: []string{"Requirements gathering", "System design", "Architecture planning", "Resource allocation"}},
			{Phase: "Development", Tasks: []string{"Module 1 development", "Module 2 development", "Module integration"}},
			{Phase: "Testing", Tasks: []string{"Unit testing", "Integration testing", "System testing", "Performance testing"}},
			{Phase: "Refinement", Tasks: []string{"Code optimization", "Security review", "User feedback"}},
			{Phase: "Completion", Tasks: []string{"Documentation", "Deployment", "Maintenance plan"}},
		},
		EstimatedWeeks: 4,
	},
}

// NewAssignmentHelper builds the homework and project planning agent.
func NewAssignmentHelper(logger logging.Logger) *DomainAgent {
	return NewDomainAgent(Config{
		ID:          AssignmentHelperID,
		Name:        "Assignment Helper",
		Description: "Assists with homework, project planning, and deadline management",
		Keywords: []string{
			"assignment", "homework", "project", "deadline", "due date",
			"task", "todo", "reminder", "schedule", "plan", "break down",
			"help with", "stuck", "guidance", "steps", "checklist",
		},
		ScoreKeywords: []string{"assignment", "homework", "project", "deadline", "task", "help with"},
		ErrorReply:    "I encountered an error while helping with your assignment. Please provide more details about what you need help with.",
		Tools: []*tool.Tool{
			{
				Name:        "createTaskList",
				Description: "Create a task list for an assignment",
				Execute: func(_ context.Context, params map[string]any, _ *core.Context) (any, error) {
					return buildTaskList(params["assignment"].(string), params["deadline"].(string)), nil
				},
			},
			{
				Name:        "setReminder",
				Description: "Set a reminder for a deadline",
				Execute: func(_ context.Context, params map[string]any, conv *core.Context) (any, error) {
					return setReminder(params["task"].(string), params["deadline"].(string), conv), nil
				},
			},
			{
				Name:        "breakDownProject",
				Description: "Break down a project into manageable tasks",
				Execute: func(_ context.Context, params map[string]any, _ *core.Context) (any, error) {
					return lookupBreakdown(params["complexity"].(string)), nil
				},
			},
		},
		Intents: []Intent{
			{
				Name:  "task-list",
				Match: func(lower string) bool { return containsAny(lower, "task list", "checklist", "break down") },
				Handle: func(_ context.Context, inv *Invocation) (string, error) {
					assignment := extractAssignment(inv.Message)
					deadline := extractDeadline(inv.Message)
					result, err := inv.CallTool("createTaskList", map[string]any{"assignment": assignment, "deadline": deadline})
					if err != nil {
						return "", err
					}
					return renderTaskList(result.(taskList)), nil
				},
			},
			{
				Name:  "reminder",
				Match: func(lower string) bool { return containsAny(lower, "reminder", "alert") },
				Handle: func(_ context.Context, inv *Invocation) (string, error) {
					task := extractAssignment(inv.Message)
					deadline := extractDeadline(inv.Message)
					result, err := inv.CallTool("setReminder", map[string]any{"task": task, "deadline": deadline})
					if err != nil {
						return "", err
					}
					return renderReminder(task, deadline, result.(reminder)), nil
				},
			},
			{
				Name: "project-plan",
				Match: func(lower string) bool {
					return strings.Contains(lower, "project") && containsAny(lower, "plan", "steps")
				},
				Handle: func(_ context.Context, inv *Invocation) (string, error) {
					project := extractAssignment(inv.Message)
					complexity := extractComplexity(inv.Lower)
					result, err := inv.CallTool("breakDownProject", map[string]any{"project": project, "complexity": complexity})
					if err != nil {
						return "", err
					}
					return renderBreakdown(project, result.(projectBreakdown)), nil
				},
			},
		},
		Fallback: func(_ *Invocation) string {
			return "I'm your Assignment Helper! I can assist you with:\n\n" +
				"- Creating task lists and checklists for assignments\n" +
				"- Breaking down complex projects into manageable steps\n" +
				"- Setting reminders for deadlines\n" +
				"- Planning your work schedule\n" +
				"- Providing guidance on assignment structure\n\n" +
				"What assignment or project do you need help with?"
		},
	}, logger)
}

type reminder struct {
	ID        string
	Task      string
	Deadline  string
	CreatedAt time.Time
}

func extractAssignment(message string) string {
	for _, re := range assignmentNameRes {
		if m := re.FindStringSubmatch(message); m != nil && strings.TrimSpace(m[1]) != "" {
			return strings.TrimSpace(m[1])
		}
	}
	return "Your assignment"
}

func extractDeadline(message string) string {
	for _, re := range deadlineRes {
		if m := re.FindStringSubmatch(message); m != nil && strings.TrimSpace(m[1]) != "" {
			return strings.TrimSpace(m[1])
		}
	}
	return noDeadline
}

func extractComplexity(lower string) string {
	switch {
	case containsAny(lower, "simple", "easy"):
		return "simple"
	case containsAny(lower, "complex", "hard", "difficult"):
		return "complex"
	}
	return "medium"
}

func buildTaskList(assignment, deadline string) taskList {
	return taskList{
		Assignment: assignment,
		Deadline:   deadline,
		Tasks: []taskItem{
			{ID: 1, Task: "Understand requirements", EstimatedTime: "1 hour", Priority: "high"},
			{ID: 2, Task: "Research and gather resources", EstimatedTime: "2 hours", Priority: "high"},
			{ID: 3, Task: "Create outline/structure", EstimatedTime: "1 hour", Priority: "medium"},
			{ID: 4, Task: "Implement solution", EstimatedTime: "4-6 hours", Priority: "high"},
			{ID: 5, Task: "Test and debug", EstimatedTime: "2 hours", Priority: "high"},
			{ID: 6, Task: "Review and refine", EstimatedTime: "1 hour", Priority: "medium"},
			{ID: 7, Task: "Submit assignment", EstimatedTime: "30 minutes", Priority: "high"},
		},
		TotalEstimatedTime: "12-14 hours",
	}
}

// setReminder appends to the "reminders" list in the conversation scratchpad.
func setReminder(task, deadline string, conv *core.Context) reminder {
	rem := reminder{
		ID:        core.NewID(),
		Task:      task,
		Deadline:  deadline,
		CreatedAt: time.Now().UTC(),
	}

	existing, _ := conv.GetMemory("reminders")
	list, ok := existing.([]reminder)
	if !ok {
		list = nil
	}
	conv.SetMemory("reminders", append(list, rem))
	return rem
}

func lookupBreakdown(complexity string) projectBreakdown {
	if b, ok := projectBreakdowns[complexity]; ok {
		return b
	}
	return projectBreakdowns["medium"]
}

func renderTaskList(list taskList) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Task list for %q:\n\n", list.Assignment)
	if list.Deadline != noDeadline {
		fmt.Fprintf(&sb, "Deadline: %s\n\n", list.Deadline)
	}
	sb.WriteString("Tasks:\n\n")
	for _, t := range list.Tasks {
		fmt.Fprintf(&sb, "%d. %s\n", t.ID, t.Task)
		fmt.Fprintf(&sb, "   ⏱️  Estimated time: %s\n", t.EstimatedTime)
		fmt.Fprintf(&sb, "   📌 Priority: %s\n\n", t.Priority)
	}
	fmt.Fprintf(&sb, "Total estimated time: %s\n\n", list.TotalEstimatedTime)
	sb.WriteString("Start with high-priority tasks and work your way through. Good luck!")
	return sb.String()
}

func renderReminder(task, deadline string, rem reminder) string {
	return fmt.Sprintf("✅ Reminder set for %q\n\nDeadline: %s\nCreated: %s\n\n"+
		"I'll help you stay on track! Would you like me to create a task breakdown for this assignment?",
		task, deadline, rem.CreatedAt.Format(time.RFC1123))
}

func renderBreakdown(project string, breakdown projectBreakdown) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Project breakdown for %q:\n\n", project)
	fmt.Fprintf(&sb, "Estimated duration: %d week(s)\n\n", breakdown.EstimatedWeeks)
	sb.WriteString("Phases:\n\n")
	for i, phase := range breakdown.Phases {
		fmt.Fprintf(&sb, "Phase %d: %s\n", i+1, phase.Phase)
		for _, task := range phase.Tasks {
			fmt.Fprintf(&sb, "  ✓ %s\n", task)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Work through each phase systematically. Break down each task into smaller sub-tasks if needed.")
	return sb.String()
}
