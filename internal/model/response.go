package model

import (
	"strings"
	"time"
)

// AnonymousRespondent is the sentinel used when a respondent chose not
// to identify themselves.
const AnonymousRespondent = "anonimo"

// Response is a read-only snapshot of a submitted survey response.
// A response with zero answer items means "opened but did not answer".
type Response struct {
	ID           string       `json:"id" bson:"_id,omitempty"`
	SurveyID     string       `json:"idEncuesta" bson:"idEncuesta"`
	RespondentID string       `json:"idUsuario" bson:"idUsuario"`
	Answers      []AnswerItem `json:"respuestas" bson:"respuestas"`
	SubmittedAt  time.Time    `json:"fechaEnvio" bson:"fechaEnvio"`
}

// AnswerItem is one answered question within a response. The value may
// be a string, a number or a list depending on the question type.
type AnswerItem struct {
	QuestionID string `json:"idPregunta" bson:"idPregunta"`
	Value      any    `json:"respuesta" bson:"respuesta"`
}

// NormalizeID canonicalizes a question/survey identifier for lookups.
func NormalizeID(id string) string {
	return strings.TrimSpace(id)
}

// TextValue returns the answer value as a string when the underlying
// value is textual.
func (a AnswerItem) TextValue() (string, bool) {
	s, ok := a.Value.(string)
	return s, ok
}
