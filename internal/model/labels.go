package model

// Candidate labels for zero-shot classification of free-text answers.
const (
	LabelServiceSatisfaction  = "satisfacción con el servicio"
	LabelMalfunctionComplaint = "queja por mal funcionamiento"
	LabelImprovementIdea      = "sugerencia de mejora"
	LabelNeutralComment       = "comentario neutro"
	LabelTechnicalIssue       = "problema técnico"
	LabelCompliment           = "felicitación"
	LabelPositiveExperience   = "experiencia positiva"
	LabelNegativeExperience   = "experiencia negativa"
	LabelInfoRequest          = "solicitud de información"
	LabelPricingComment       = "comentario sobre precio"
)

// Sentiment buckets derived from classification labels
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// CandidateLabels returns the full candidate label set in a stable order.
func CandidateLabels() []string {
	return []string{
		LabelServiceSatisfaction,
		LabelMalfunctionComplaint,
		LabelImprovementIdea,
		LabelNeutralComment,
		LabelTechnicalIssue,
		LabelCompliment,
		LabelPositiveExperience,
		LabelNegativeExperience,
		LabelInfoRequest,
		LabelPricingComment,
	}
}

// SentimentFor maps a classification label to its sentiment bucket.
// Every label maps to exactly one bucket; unknown labels are neutral.
func SentimentFor(label string) Sentiment {
	switch label {
	case LabelServiceSatisfaction, LabelCompliment, LabelPositiveExperience:
		return SentimentPositive
	case LabelMalfunctionComplaint, LabelTechnicalIssue, LabelNegativeExperience:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
