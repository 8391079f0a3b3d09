package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/hupe1980/campusmesh/core"
	"github.com/hupe1980/campusmesh/logging"
	"github.com/hupe1980/campusmesh/tool"
)

// AcademicAdvisorID is the academic advisor's stable agent id.
const AcademicAdvisorID = "academic-advisor"

var courseCodeRe = regexp.MustCompile(`[A-Z]{2,4}\s?\d{3,4}`)

// courseRecommendations is the seeded (major, year) course catalog. Unknown
// majors fall back to Computer Science.
var courseRecommendations = map[string]map[string][]string{
	"Computer Science": {
		"Freshman":  {"CS 101: Introduction to Programming", "MATH 101: Calculus I", "ENG 101: English Composition"},
		"Sophomore": {"CS 201: Data Structures", "CS 202: Algorithms", "MATH 201: Linear Algebra"},
		"Junior":    {"CS 301: Software Engineering", "CS 302: Database Systems", "CS 303: Operating Systems"},
		"Senior":    {"CS 401: Capstone Project", "CS 402: Distributed Systems", "CS 403: Machine Learning"},
	},
	"Electrical Engineering": {
		"Freshman":  {"EE 101: Circuit Analysis", "MATH 101: Calculus I", "PHYS 101: Physics I"},
		"Sophomore": {"EE 201: Digital Systems", "EE 202: Signals and Systems", "MATH 201: Differential Equations"},
		"Junior":    {"EE 301: Electronics", "EE 302: Control Systems", "EE 303: Power Systems"},
		"Senior":    {"EE 401: Senior Design", "EE 402: Communication Systems", "EE 403: Embedded Systems"},
	},
}

var coursePrerequisites = map[string][]string{
	"CS 201": {"CS 101"},
	"CS 202": {"CS 201", "MATH 101"},
	"CS 301": {"CS 202"},
	"CS 302": {"CS 201"},
	"CS 303": {"CS 201", "CS 202"},
	"EE 201": {"EE 101", "MATH 101"},
	"EE 301": {"EE 201", "MATH 201"},
}

var coreCoursesByMajor = map[string][]string{
	"Computer Science":       {"CS 101", "CS 201", "CS 202", "CS 301", "CS 401"},
	"Electrical Engineering": {"EE 101", "EE 201", "EE 301", "EE 401"},
}

type degreePlan struct {
	Major              string
	TotalCredits       int
	Semesters          int
	CreditsPerSemester float64
	CoreCourses        []string
	Electives          []string
}

// NewAcademicAdvisor builds the course-guidance and degree-planning agent.
func NewAcademicAdvisor(logger logging.Logger) *DomainAgent {
	return NewDomainAgent(Config{
		ID:          AcademicAdvisorID,
		Name:        "Academic Advisor",
		Description: "Provides course guidance, degree planning, and academic strategy for engineering students",
		Keywords: []string{
			"course", "degree", "prerequisite", "graduation", "credit", "semester",
			"academic", "major", "minor", "curriculum", "schedule", "enrollment",
			"gpa", "grade", "transcript", "advisor",
		},
		ScoreKeywords: []string{"course", "degree", "prerequisite", "graduation", "academic", "major", "gpa"},
		ErrorReply:    "I apologize, but I encountered an error while processing your request. Please try rephrasing your question.",
		Tools: []*tool.Tool{
			{
				Name:        "getCourseRecommendations",
				Description: "Get course recommendations based on major and year",
				Execute: func(_ context.Context, params map[string]any, _ *core.Context) (any, error) {
					return recommendCourses(params["major"].(string), params["year"].(string)), nil
				},
			},
			{
				Name:        "checkPrerequisites",
				Description: "Check prerequisites for a course",
				Execute: func(_ context.Context, params map[string]any, _ *core.Context) (any, error) {
					return prerequisitesFor(params["course"].(string)), nil
				},
			},
			{
				Name:        "createDegreePlan",
				Description: "Create a degree plan for the student",
				Execute: func(_ context.Context, params map[string]any, _ *core.Context) (any, error) {
					return buildDegreePlan(params["major"].(string), params["credits"].(int)), nil
				},
			},
		},
		Intents: []Intent{
			{
				Name:  "recommend-courses",
				Match: func(lower string) bool { return containsAny(lower, "recommend", "course") },
				Handle: func(_ context.Context, inv *Invocation) (string, error) {
					major := inv.ProfileField(func(p *core.UserProfile) string { return p.Major }, "Engineering")
					year := inv.ProfileField(func(p *core.UserProfile) string { return p.Year }, "Freshman")
					result, err := inv.CallTool("getCourseRecommendations", map[string]any{"major": major, "year": year})
					if err != nil {
						return "", err
					}
					return renderCourseRecommendations(result.([]string), major, year), nil
				},
			},
			{
				Name:  "check-prerequisites",
				Match: func(lower string) bool { return containsAny(lower, "prerequisite", "prereq") },
				Handle: func(_ context.Context, inv *Invocation) (string, error) {
					course := "CS 101"
					if m := courseCodeRe.FindString(inv.Message); m != "" {
						course = m
					}
					result, err := inv.CallTool("checkPrerequisites", map[string]any{"course": course})
					if err != nil {
						return "", err
					}
					return renderPrerequisites(course, result.([]string)), nil
				},
			},
			{
				Name:  "degree-plan",
				Match: func(lower string) bool { return containsAny(lower, "degree plan", "graduation") },
				Handle: func(_ context.Context, inv *Invocation) (string, error) {
					major := inv.ProfileField(func(p *core.UserProfile) string { return p.Major }, "Engineering")
					result, err := inv.CallTool("createDegreePlan", map[string]any{"major": major, "credits": 120})
					if err != nil {
						return "", err
					}
					return renderDegreePlan(result.(degreePlan)), nil
				},
			},
		},
		Fallback: func(_ *Invocation) string {
			return "As your Academic Advisor, I'm here to help with course selection, degree planning, and academic strategy. " +
				"I can help you with:\n\n" +
				"- Course recommendations based on your major and year\n" +
				"- Checking prerequisites for specific courses\n" +
				"- Creating a degree plan\n" +
				"- Academic planning and scheduling\n\n" +
				"What specific academic question can I help you with today?"
		},
	}, logger)
}

func recommendCourses(major, year string) []string {
	byYear, ok := courseRecommendations[major]
	if !ok {
		byYear = courseRecommendations["Computer Science"]
	}
	return byYear[year]
}

func prerequisitesFor(course string) []string {
	if prereqs, ok := coursePrerequisites[course]; ok {
		return prereqs
	}
	return []string{"No specific prerequisites found"}
}

func buildDegreePlan(major string, credits int) degreePlan {
	cores, ok := coreCoursesByMajor[major]
	if !ok {
		cores = coreCoursesByMajor["Computer Science"]
	}
	return degreePlan{
		Major:              major,
		TotalCredits:       credits,
		Semesters:          8,
		CreditsPerSemester: float64(credits) / 8,
		CoreCourses:        cores,
		Electives:          []string{"Technical Elective 1", "Technical Elective 2", "General Elective 1", "General Elective 2"},
	}
}

func renderCourseRecommendations(courses []string, major, year string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on your %s major and %s year, I recommend the following courses:\n\n", major, year)
	for i, c := range courses {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, c)
	}
	sb.WriteString("\nThese courses will help you build a strong foundation and progress toward your degree. Would you like more details about any specific course?")
	return sb.String()
}

func renderPrerequisites(course string, prereqs []string) string {
	if len(prereqs) == 0 || prereqs[0] == "No specific prerequisites found" {
		return fmt.Sprintf("%s has no specific prerequisites, but basic programming knowledge is recommended.", course)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "The prerequisites for %s are:\n", course)
	for _, p := range prereqs {
		fmt.Fprintf(&sb, "- %s\n", p)
	}
	sb.WriteString("\nMake sure you've completed these before enrolling.")
	return sb.String()
}

func renderDegreePlan(plan degreePlan) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Here's your %s degree plan:\n\n", plan.Major)
	fmt.Fprintf(&sb, "Total Credits: %d\n", plan.TotalCredits)
	fmt.Fprintf(&sb, "Semesters: %d\n", plan.Semesters)
	fmt.Fprintf(&sb, "Credits per Semester: %g\n\n", plan.CreditsPerSemester)
	sb.WriteString("Core Courses:\n")
	for _, c := range plan.CoreCourses {
		fmt.Fprintf(&sb, "- %s\n", c)
	}
	sb.WriteString("\nElectives:\n")
	for _, e := range plan.Electives {
		fmt.Fprintf(&sb, "- %s\n", e)
	}
	sb.WriteString("\nThis is a general plan. I recommend meeting with your academic advisor to customize it based on your specific goals.")
	return sb.String()
}
