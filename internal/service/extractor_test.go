package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"surveypulse/internal/model"
)

func extractorSurvey() *model.Survey {
	return &model.Survey{
		ID:   "enc-1",
		Name: "Encuesta",
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionTypeOpenText, Text: "¿Cómo fue su experiencia?"},
			{ID: "q2", Type: model.QuestionTypeScale, Text: "Califique del 1 al 5"},
			{ID: "q3 ", Type: model.QuestionTypeOpenText, Text: "Comentarios adicionales"},
		},
	}
}

func response(id string, items ...model.AnswerItem) *model.Response {
	return &model.Response{
		ID:          id,
		SurveyID:    "enc-1",
		Answers:     items,
		SubmittedAt: time.Now(),
	}
}

func collect(survey *model.Survey, responses []*model.Response) []ExtractedAnswer {
	var out []ExtractedAnswer
	for e := range EligibleAnswers(survey, responses) {
		out = append(out, e)
	}
	return out
}

func TestEligibleAnswersFiltering(t *testing.T) {
	responses := []*model.Response{
		response("r1",
			model.AnswerItem{QuestionID: "q1", Value: "Una experiencia realmente buena en general"},
			model.AnswerItem{QuestionID: "q2", Value: 4},           // not free-text
			model.AnswerItem{QuestionID: "q1", Value: "corto"},     // too short
			model.AnswerItem{QuestionID: "q1", Value: 12345},       // not a string
			model.AnswerItem{QuestionID: "zz", Value: "pregunta eliminada hace tiempo"}, // dangling id
		),
		response("r2"), // opened but did not answer
		response("r3",
			model.AnswerItem{QuestionID: "q3", Value: "   El soporte tardó demasiado en responder.   "},
		),
	}

	extracted := collect(extractorSurvey(), responses)

	assert.Len(t, extracted, 2)
	assert.Equal(t, "r1", extracted[0].Response.ID)
	assert.Equal(t, "q1", extracted[0].Question.ID)
	// Normalized question id lookup matches despite the trailing space
	// in the survey definition, and the yielded text is trimmed.
	assert.Equal(t, "r3", extracted[1].Response.ID)
	assert.Equal(t, "El soporte tardó demasiado en responder.", extracted[1].Text)
}

func TestEligibleAnswersLengthBoundary(t *testing.T) {
	survey := extractorSurvey()

	// Exactly 10 characters is not eligible; 11 is.
	boundary := []*model.Response{
		response("r1", model.AnswerItem{QuestionID: "q1", Value: "1234567890"}),
		response("r2", model.AnswerItem{QuestionID: "q1", Value: "12345678901"}),
	}

	extracted := collect(survey, boundary)
	assert.Len(t, extracted, 1)
	assert.Equal(t, "r2", extracted[0].Response.ID)
}

func TestEligibleAnswersLengthCountsRunes(t *testing.T) {
	survey := extractorSurvey()

	// Accented characters are two UTF-8 bytes each; eligibility counts
	// characters, not bytes.
	runes := []*model.Response{
		response("r1", model.AnswerItem{QuestionID: "q1", Value: "áéíóúñü"}),            // 7 chars, 14 bytes
		response("r2", model.AnswerItem{QuestionID: "q1", Value: "ñáéíóúüñáé"}),         // exactly 10 chars
		response("r3", model.AnswerItem{QuestionID: "q1", Value: "atención pésima"}),    // 15 chars
	}

	extracted := collect(survey, runes)
	assert.Len(t, extracted, 1)
	assert.Equal(t, "r3", extracted[0].Response.ID)
}

func TestEligibleAnswersEarlyStop(t *testing.T) {
	responses := []*model.Response{
		response("r1", model.AnswerItem{QuestionID: "q1", Value: "primera respuesta suficientemente larga"}),
		response("r2", model.AnswerItem{QuestionID: "q1", Value: "segunda respuesta suficientemente larga"}),
	}

	seen := 0
	for range EligibleAnswers(extractorSurvey(), responses) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}
