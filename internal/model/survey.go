package model

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeOpenText       QuestionType = "texto_abierto"   // Free text, eligible for classification
	QuestionTypeMultipleChoice QuestionType = "opcion_multiple" // Closed option list
	QuestionTypeScale          QuestionType = "escala"          // Numeric rating
	QuestionTypeYesNo          QuestionType = "si_no"           // Boolean
)

// Survey is a read-only snapshot of a survey owned by the CRUD layer
type Survey struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	Name      string     `json:"nombre" bson:"nombre"`
	Questions []Question `json:"preguntas" bson:"preguntas"`
}

// Question is a question template within a survey
type Question struct {
	ID      string       `json:"id" bson:"id"`
	Type    QuestionType `json:"tipo" bson:"tipo"`
	Text    string       `json:"texto" bson:"texto"`
	Options []string     `json:"opciones,omitempty" bson:"opciones,omitempty"`
}

// QuestionIndex builds a lookup of questions keyed by normalized id.
// Ids are normalized once here so downstream code never compares
// loosely shaped identifiers.
func (s *Survey) QuestionIndex() map[string]*Question {
	idx := make(map[string]*Question, len(s.Questions))
	for i := range s.Questions {
		q := &s.Questions[i]
		idx[NormalizeID(q.ID)] = q
	}
	return idx
}
