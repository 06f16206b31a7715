package lessonplan

import (
	"fmt"
	"strings"
)

const (
	minConcepts = 3
	maxConcepts = 5
	maxTopics   = 6
)

// keywordList maps a lowercase substring to the items it contributes.
// Tables are slices so matches are unioned in a fixed order.
type keywordList struct {
	keywords []string
	items    []string
}

// Matched against the lesson title.
var lessonConcepts = []keywordList{
	{[]string{"introduction"}, []string{"Fundamental Principles", "Basic Terminology", "Course Overview"}},
	{[]string{"basic"}, []string{"Core Concepts", "Fundamental Techniques", "Essential Skills"}},
	{[]string{"fundamental"}, []string{"Key Principles", "Basic Operations", "Core Methodology"}},
	{[]string{"advanced"}, []string{"Complex Techniques", "Advanced Applications", "Expert Methods"}},
	{[]string{"project"}, []string{"Practical Implementation", "Real-world Application", "Project Development"}},
	{[]string{"lab"}, []string{"Hands-on Practice", "Experimental Learning", "Skill Application"}},
	{[]string{"practice"}, []string{"Skill Development", "Application Exercises", "Practical Scenarios"}},
}

// Matched against the unit title.
var unitConcepts = []keywordList{
	{[]string{"python", "programming"}, []string{"Syntax", "Data Structures", "Control Flow", "Functions"}},
	{[]string{"data"}, []string{"Data Analysis", "Data Manipulation", "Data Visualization"}},
	{[]string{"machine learning"}, []string{"Algorithms", "Model Training", "Prediction", "Evaluation"}},
	{[]string{"statistics"}, []string{"Descriptive Statistics", "Probability", "Inferential Methods"}},
}

// Matched against the unit title.
var unitTopics = []keywordList{
	{[]string{"python"}, []string{"Code Examples", "Best Practices", "Common Pitfalls"}},
	{[]string{"data"}, []string{"Data Processing", "Analysis Techniques", "Result Interpretation"}},
}

func match(tables []keywordList, text string) []string {
	text = strings.ToLower(text)
	var out []string
	for _, t := range tables {
		for _, kw := range t.keywords {
			if strings.Contains(text, kw) {
				out = append(out, t.items...)
				break
			}
		}
	}
	return out
}

// keyConcepts lists 3 to 5 concepts for a lesson.
func keyConcepts(lessonTitle, unitTitle string) []string {
	concepts := match(lessonConcepts, lessonTitle)
	concepts = append(concepts, match(unitConcepts, unitTitle)...)
	return clampConcepts(concepts)
}

// clampConcepts pads with "Core Concept N" placeholders up to 3 and
// keeps at most 5.
func clampConcepts(concepts []string) []string {
	for len(concepts) < minConcepts {
		concepts = append(concepts, fmt.Sprintf("Core Concept %d", len(concepts)+1))
	}
	if len(concepts) > maxConcepts {
		concepts = concepts[:maxConcepts]
	}
	return concepts
}

// importantTopics lists up to 6 topics for a lesson.
func importantTopics(lessonTitle, unitTitle string, concepts []string) []string {
	topics := []string{
		"Understanding " + lessonTitle,
		"Practical applications of " + lessonTitle,
	}
	for _, c := range concepts[:min(2, len(concepts))] {
		topics = append(topics, "Deep dive into "+c)
	}
	topics = append(topics, match(unitTopics, unitTitle)...)
	if len(topics) > maxTopics {
		topics = topics[:maxTopics]
	}
	return topics
}

func learningObjectives(lessonTitle string, concepts []string) []string {
	applied := "key concepts"
	if len(concepts) > 0 {
		applied = concepts[0]
	}
	objectives := []string{
		"Understand the core principles of " + lessonTitle,
		"Apply " + applied + " in practical scenarios",
		"Demonstrate proficiency in " + lessonTitle + " techniques",
	}
	if len(concepts) > 1 {
		objectives = append(objectives, fmt.Sprintf("Analyze relationships between %s and %s", concepts[0], concepts[1]))
	}
	return objectives
}

// prerequisites depend only on the lesson's position in its unit.
func prerequisites(lessonNumber int, unitTitle string) []string {
	if lessonNumber == 1 {
		return []string{"Basic computer literacy", "Willingness to learn"}
	}
	return []string{
		"Completion of previous lessons in " + unitTitle,
		"Understanding of fundamental concepts covered earlier",
		"Basic practical skills from preceding lessons",
	}
}

func assessmentMethods(lessonTitle string) []string {
	return []string{
		"Practical exercise on " + lessonTitle,
		"Concept understanding quiz",
		"Hands-on project application",
		"Peer review and discussion",
	}
}

func unitObjective(unitTitle string, outcomes []string) string {
	title := strings.ToLower(unitTitle)
	if len(outcomes) == 0 {
		return "Develop comprehensive understanding and practical skills in " + title
	}
	return fmt.Sprintf("Master %s concepts and achieve: %s", title, strings.Join(outcomes[:min(2, len(outcomes))], ", "))
}

// timeBreakdown splits lessonHours 30/40/20/10. Each bucket is truncated
// to whole minutes on its own, so the sum may fall short of the total.
func timeBreakdown(lessonHours float64) TimeBreakdown {
	total := lessonHours * 60
	return TimeBreakdown{
		TheoryConcepts:         Minutes(total * 0.3),
		PracticalExercises:     Minutes(total * 0.4),
		ExamplesDemonstrations: Minutes(total * 0.2),
		ReviewAssessment:       Minutes(total * 0.1),
	}
}
