package scoring

// QuestionType selects the weight row and keyword tables for a field.
type QuestionType string

const (
	TypeProductDescription QuestionType = "productDescription"
	TypeProblemStatement   QuestionType = "problemStatement"
	TypeBusinessObjectives QuestionType = "businessObjectives"
	TypeTargetAudience     QuestionType = "targetAudience"
	TypeUserStory          QuestionType = "userStory"
	TypeRequirementsList   QuestionType = "requirementsList"
	TypeSuccessMetrics     QuestionType = "successMetrics"
	TypeOpenQuestion       QuestionType = "openQuestion"
	TypeDefault            QuestionType = "default"
)

// Weights blend the four sub-scores into the overall score.
// Every row sums to 1.0 — descriptive fields bias completeness and
// specificity, story-style fields bias relevance.
type Weights struct {
	Completeness float64 `json:"completeness"`
	Specificity  float64 `json:"specificity"`
	Relevance    float64 `json:"relevance"`
	Clarity      float64 `json:"clarity"`
}

var weightTable = map[QuestionType]Weights{
	TypeProductDescription: {Completeness: 0.35, Specificity: 0.30, Relevance: 0.20, Clarity: 0.15},
	TypeProblemStatement:   {Completeness: 0.30, Specificity: 0.30, Relevance: 0.25, Clarity: 0.15},
	TypeBusinessObjectives: {Completeness: 0.25, Specificity: 0.35, Relevance: 0.25, Clarity: 0.15},
	TypeTargetAudience:     {Completeness: 0.30, Specificity: 0.25, Relevance: 0.30, Clarity: 0.15},
	TypeUserStory:          {Completeness: 0.25, Specificity: 0.20, Relevance: 0.40, Clarity: 0.15},
	TypeRequirementsList:   {Completeness: 0.30, Specificity: 0.25, Relevance: 0.25, Clarity: 0.20},
	TypeSuccessMetrics:     {Completeness: 0.20, Specificity: 0.40, Relevance: 0.25, Clarity: 0.15},
	TypeOpenQuestion:       {Completeness: 0.25, Specificity: 0.20, Relevance: 0.30, Clarity: 0.25},
	TypeDefault:            {Completeness: 0.30, Specificity: 0.25, Relevance: 0.25, Clarity: 0.20},
}

// WeightsFor returns the weight row for a question type, falling back to
// the default row for unknown types.
func WeightsFor(qt QuestionType) Weights {
	if w, ok := weightTable[qt]; ok {
		return w
	}
	return weightTable[TypeDefault]
}

// QuestionTypes returns every question type with an explicit weight row.
func QuestionTypes() []QuestionType {
	return []QuestionType{
		TypeProductDescription,
		TypeProblemStatement,
		TypeBusinessObjectives,
		TypeTargetAudience,
		TypeUserStory,
		TypeRequirementsList,
		TypeSuccessMetrics,
		TypeOpenQuestion,
		TypeDefault,
	}
}
