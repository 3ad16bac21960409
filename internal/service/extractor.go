package service

import (
	"iter"
	"log"
	"strings"
	"unicode/utf8"

	"surveypulse/internal/model"
)

// minAnswerLength is the trimmed length, in characters, an answer must
// exceed to be eligible for classification.
const minAnswerLength = 10

// ExtractedAnswer is an answer eligible for classification
type ExtractedAnswer struct {
	Response *model.Response
	Question *model.Question
	Text     string
}

// EligibleAnswers yields, in a single lazy pass, the free-text answers
// of the given responses that are eligible for classification. Answers
// referencing a question id absent from the survey are skipped with a
// warning; observed in real data, not a hard failure.
func EligibleAnswers(survey *model.Survey, responses []*model.Response) iter.Seq[ExtractedAnswer] {
	index := survey.QuestionIndex()

	return func(yield func(ExtractedAnswer) bool) {
		for _, resp := range responses {
			for _, item := range resp.Answers {
				question, ok := index[model.NormalizeID(item.QuestionID)]
				if !ok {
					log.Printf("[Extractor] warning: response %s references unknown question %q in survey %s, skipping",
						resp.ID, item.QuestionID, survey.ID)
					continue
				}
				if question.Type != model.QuestionTypeOpenText {
					continue
				}
				text, ok := item.TextValue()
				if !ok {
					continue
				}
				trimmed := strings.TrimSpace(text)
				if utf8.RuneCountInString(trimmed) <= minAnswerLength {
					continue
				}
				if !yield(ExtractedAnswer{Response: resp, Question: question, Text: trimmed}) {
					return
				}
			}
		}
	}
}
