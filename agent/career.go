package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/campusmesh/core"
	"github.com/hupe1980/campusmesh/logging"
	"github.com/hupe1980/campusmesh/tool"
)

// CareerGuidanceID is the career guidance agent's stable agent id.
const CareerGuidanceID = "career-guidance"

var internshipTimingByYear = map[string]string{
	"Freshman":  "Focus on building skills and projects. Start networking and exploring options.",
	"Sophomore": "Apply for summer internships. Many companies have programs for sophomores.",
	"Junior":    "This is prime internship season. Apply to multiple companies and prepare thoroughly.",
	"Senior":    "Consider full-time positions or post-graduation opportunities.",
}

var applicationTips = []string{
	"Start early - many companies post internships 6-9 months in advance",
	"Tailor your resume for each application",
	"Write a compelling cover letter",
	"Build a portfolio showcasing your projects",
	"Network on LinkedIn and attend career fairs",
	"Practice coding interviews (LeetCode, HackerRank)",
	"Prepare behavioral interview questions (STAR method)",
}

var internshipResources = []string{
	"LinkedIn Jobs",
	"Handshake",
	"Indeed",
	"Glassdoor",
	"Company career pages",
	"University career center",
}

var skillsByField = map[string][]string{
	"Computer Science":       {"Programming languages", "Data structures & algorithms", "Software development", "System design"},
	"Electrical Engineering": {"Circuit design", "Embedded systems", "Signal processing", "Hardware design"},
	"Engineering":            {"Problem-solving", "Technical skills", "Project management", "Communication"},
}

var resumeSkills = []string{
	"python", "javascript", "react", "node.js", "java", "c++",
	"machine learning", "data science", "web development",
	"cloud computing", "devops", "database",
}

type internshipAdvice struct {
	Timing            string
	ApplicationTips   []string
	Resources         []string
	SkillsToHighlight []string
}

type resumeReview struct {
	Strengths    []string
	Improvements []string
	Tips         []string
}

type careerPath struct {
	Title          string
	Description    string
	RequiredSkills []string
	Growth         string
	Salary         string
}

type careerSuggestion struct {
	Recommended  []careerPath
	Alternatives []careerPath
	NextSteps    []string
}

var careerPaths = []careerPath{
	{
		Title:          "Software Engineer",
		Description:    "Build and maintain software applications",
		RequiredSkills: []string{"Programming", "Problem-solving", "System design"},
		Growth:         "High demand, excellent growth prospects",
		Salary:         "$70k - $150k+",
	},
	{
		Title:          "Data Scientist",
		Description:    "Analyze data and build ML models",
		RequiredSkills: []string{"Python", "Machine Learning", "Statistics", "Data Analysis"},
		Growth:         "Rapidly growing field with high demand",
		Salary:         "$80k - $160k+",
	},
	{
		Title:          "DevOps Engineer",
		Description:    "Manage infrastructure and deployment pipelines",
		RequiredSkills: []string{"Cloud platforms", "CI/CD", "Containerization", "Monitoring"},
		Growth:         "Critical role in modern software teams",
		Salary:         "$75k - $140k+",
	},
	{
		Title:          "Product Manager",
		Description:    "Define product strategy and roadmap",
		RequiredSkills: []string{"Communication", "Analytics", "Technical understanding", "Leadership"},
		Growth:         "Leadership track with high impact",
		Salary:         "$85k - $170k+",
	},
}

// NewCareerGuidance builds the internship and career advice agent.
func NewCareerGuidance(logger logging.Logger) *DomainAgent {
	return NewDomainAgent(Config{
		ID:          CareerGuidanceID,
		Name:        "Career Guidance Agent",
		Description: "Offers internship advice, resume feedback, and career path recommendations",
		Keywords: []string{
			"career", "internship", "resume", "cv", "job", "interview",
			"application", "hire", "employment", "position", "role",
			"salary", "company", "industry", "professional", "network",
			"linkedin", "portfolio", "experience", "skills",
		},
		ScoreKeywords: []string{"career", "internship", "resume", "job", "interview", "application"},
		ErrorReply:    "I encountered an error while providing career guidance. Please try rephrasing your question.",
		Tools: []*tool.Tool{
			{
				Name:        "getInternshipAdvice",
				Description: "Get advice for finding and applying to internships",
				Execute: func(_ context.Context, params map[string]any, _ *core.Context) (any, error) {
					return buildInternshipAdvice(params["field"].(string), params["year"].(string)), nil
				},
			},
			{
				Name:        "reviewResume",
				Description: "Review resume and provide feedback",
				Execute: func(_ context.Context, params map[string]any, _ *core.Context) (any, error) {
					_ = params["resume"]
					return buildResumeReview(), nil
				},
			},
			{
				Name:        "suggestCareerPath",
				Description: "Suggest career paths based on interests and skills",
				Execute: func(_ context.Context, params map[string]any, _ *core.Context) (any, error) {
					return suggestCareerPaths(), nil
				},
			},
		},
		Intents: []Intent{
			{
				Name:  "internships",
				Match: func(lower string) bool { return containsAny(lower, "internship", "intern") },
				Handle: func(_ context.Context, inv *Invocation) (string, error) {
					field := inv.ProfileField(func(p *core.UserProfile) string { return p.Major }, "Engineering")
					year := inv.ProfileField(func(p *core.UserProfile) string { return p.Year }, "Sophomore")
					result, err := inv.CallTool("getInternshipAdvice", map[string]any{"field": field, "year": year})
					if err != nil {
						return "", err
					}
					return renderInternshipAdvice(field, year, result.(internshipAdvice)), nil
				},
			},
			{
				Name:  "resume-review",
				Match: func(lower string) bool { return containsAny(lower, "resume", "cv") },
				Handle: func(_ context.Context, inv *Invocation) (string, error) {
					// A bounded prefix stands in for real resume parsing.
					resume := inv.Message
					if len(resume) > 500 {
						resume = resume[:500]
					}
					result, err := inv.CallTool("reviewResume", map[string]any{"resume": resume})
					if err != nil {
						return "", err
					}
					return renderResumeReview(result.(resumeReview)), nil
				},
			},
			{
				Name:  "career-path",
				Match: func(lower string) bool { return containsAny(lower, "career path", "what should i do") },
				Handle: func(_ context.Context, inv *Invocation) (string, error) {
					var interests []string
					if p := inv.Profile(); p != nil {
						interests = p.Interests
					}
					result, err := inv.CallTool("suggestCareerPath", map[string]any{
						"interests": interests,
						"skills":    extractResumeSkills(inv.Lower),
					})
					if err != nil {
						return "", err
					}
					return renderCareerPaths(result.(careerSuggestion)), nil
				},
			},
		},
		Fallback: func(_ *Invocation) string {
			return "I'm your Career Guidance Agent! I can help you with:\n\n" +
				"- Finding and applying to internships\n" +
				"- Resume and CV review and feedback\n" +
				"- Career path recommendations\n" +
				"- Interview preparation tips\n" +
				"- Professional networking advice\n" +
				"- Salary and negotiation guidance\n\n" +
				"What aspect of your career would you like guidance on?"
		},
	}, logger)
}

func extractResumeSkills(lower string) []string {
	var out []string
	for _, skill := range resumeSkills {
		if strings.Contains(lower, skill) {
			out = append(out, skill)
		}
	}
	return out
}

func buildInternshipAdvice(field, year string) internshipAdvice {
	timing, ok := internshipTimingByYear[year]
	if !ok {
		timing = "Start preparing early and apply to multiple opportunities."
	}
	skills, ok := skillsByField[field]
	if !ok {
		skills = skillsByField["Engineering"]
	}
	return internshipAdvice{
		Timing:            timing,
		ApplicationTips:   applicationTips,
		Resources:         internshipResources,
		SkillsToHighlight: skills,
	}
}

func buildResumeReview() resumeReview {
	return resumeReview{
		Strengths: []string{
			"Clear formatting and structure",
			"Quantifiable achievements",
			"Relevant technical skills",
		},
		Improvements: []string{
			"Add more specific metrics and numbers",
			"Include relevant projects with GitHub links",
			"Tailor experience descriptions to job descriptions",
			"Ensure consistent formatting throughout",
			"Add a skills section with proficiency levels",
			"Include any certifications or courses",
		},
		Tips: []string{
			"Keep it to 1 page for internships/entry-level",
			"Use action verbs (developed, implemented, optimized)",
			"Highlight impact and results, not just responsibilities",
			"Proofread multiple times for typos",
			"Get feedback from peers and mentors",
		},
	}
}

func suggestCareerPaths() careerSuggestion {
	return careerSuggestion{
		Recommended:  careerPaths[:2],
		Alternatives: careerPaths[2:],
		NextSteps: []string{
			"Build projects in your area of interest",
			"Get relevant internships or co-ops",
			"Network with professionals in the field",
			"Continue learning and upskilling",
		},
	}
}

func renderInternshipAdvice(field, year string, advice internshipAdvice) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Internship advice for %s students (%s):\n\n", field, year)
	fmt.Fprintf(&sb, "⏰ Timing: %s\n\n", advice.Timing)
	sb.WriteString("💡 Application Tips:\n")
	for _, tip := range advice.ApplicationTips {
		fmt.Fprintf(&sb, "  • %s\n", tip)
	}
	sb.WriteString("\n📚 Resources:\n")
	for _, res := range advice.Resources {
		fmt.Fprintf(&sb, "  • %s\n", res)
	}
	sb.WriteString("\n🎯 Skills to Highlight:\n")
	for _, skill := range advice.SkillsToHighlight {
		fmt.Fprintf(&sb, "  • %s\n", skill)
	}
	sb.WriteString("\nStart preparing now and apply early!")
	return sb.String()
}

func renderResumeReview(review resumeReview) string {
	var sb strings.Builder
	sb.WriteString("Resume Review Feedback:\n\n")
	sb.WriteString("✅ Strengths:\n")
	for _, s := range review.Strengths {
		fmt.Fprintf(&sb, "  • %s\n", s)
	}
	sb.WriteString("\n📝 Areas for Improvement:\n")
	for _, s := range review.Improvements {
		fmt.Fprintf(&sb, "  • %s\n", s)
	}
	sb.WriteString("\n💡 Tips:\n")
	for _, s := range review.Tips {
		fmt.Fprintf(&sb, "  • %s\n", s)
	}
	sb.WriteString("\nWould you like specific feedback on any section?")
	return sb.String()
}

func renderCareerPaths(suggestion careerSuggestion) string {
	var sb strings.Builder
	sb.WriteString("Career Path Recommendations:\n\n")
	sb.WriteString("🎯 Recommended Paths:\n\n")
	for _, path := range suggestion.Recommended {
		fmt.Fprintf(&sb, "📌 %s\n", path.Title)
		fmt.Fprintf(&sb, "   %s\n", path.Description)
		fmt.Fprintf(&sb, "   Skills: %s\n", strings.Join(path.RequiredSkills, ", "))
		fmt.Fprintf(&sb, "   Growth: %s\n", path.Growth)
		fmt.Fprintf(&sb, "   Salary Range: %s\n\n", path.Salary)
	}
	sb.WriteString("🔄 Alternative Paths:\n\n")
	for _, path := range suggestion.Alternatives {
		fmt.Fprintf(&sb, "  • %s - %s\n", path.Title, path.Description)
	}
	sb.WriteString("\n🚀 Next Steps:\n")
	for _, step := range suggestion.NextSteps {
		fmt.Fprintf(&sb, "  • %s\n", step)
	}
	return sb.String()
}
