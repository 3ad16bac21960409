package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surveypulse/internal/config"
	"surveypulse/internal/model"
)

// Seeds two sample surveys and a batch of responses so cmd/analyze has
// data to exercise the full pipeline locally.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.DatabaseName)

	surveys := []model.Survey{
		{
			ID:   "enc-satisfaccion-2026",
			Name: "Satisfacción del Servicio 2026",
			Questions: []model.Question{
				{ID: "q1", Type: model.QuestionTypeScale, Text: "¿Qué tan satisfecho está con el servicio? (1-5)"},
				{ID: "q2", Type: model.QuestionTypeOpenText, Text: "Cuéntenos sobre su experiencia con el servicio."},
				{ID: "q3", Type: model.QuestionTypeOpenText, Text: "¿Qué mejoraría de nuestra plataforma?"},
			},
		},
		{
			ID:   "enc-soporte-tecnico",
			Name: "Evaluación de Soporte Técnico",
			Questions: []model.Question{
				{ID: "q1", Type: model.QuestionTypeYesNo, Text: "¿Se resolvió su problema?"},
				{ID: "q2", Type: model.QuestionTypeOpenText, Text: "Describa el problema que tuvo."},
			},
		},
	}

	answers := map[string][][]model.AnswerItem{
		"enc-satisfaccion-2026": {
			{{QuestionID: "q1", Value: 5}, {QuestionID: "q2", Value: "El servicio fue excelente, el equipo respondió muy rápido y con mucha amabilidad."}},
			{{QuestionID: "q1", Value: 4}, {QuestionID: "q3", Value: "Sería útil poder exportar los reportes directamente desde el panel."}},
			{{QuestionID: "q1", Value: 2}, {QuestionID: "q2", Value: "La aplicación se cae constantemente cuando intento guardar mis datos."}},
			{}, // opened but did not answer
		},
		"enc-soporte-tecnico": {
			{{QuestionID: "q1", Value: true}, {QuestionID: "q2", Value: "El sistema no cargaba los archivos adjuntos y tuve que reiniciar varias veces."}},
			{{QuestionID: "q1", Value: false}, {QuestionID: "q2", Value: "corto"}}, // too short to classify
		},
	}

	surveyColl := db.Collection("encuestas")
	responseColl := db.Collection("respuestas")

	for _, survey := range surveys {
		if _, err := surveyColl.InsertOne(ctx, survey); err != nil {
			log.Fatalf("Failed to insert survey %s: %v", survey.ID, err)
		}
		for i, items := range answers[survey.ID] {
			respondent := uuid.NewString()
			if i%3 == 0 {
				respondent = model.AnonymousRespondent
			}
			resp := model.Response{
				ID:           uuid.NewString(),
				SurveyID:     survey.ID,
				RespondentID: respondent,
				Answers:      items,
				SubmittedAt:  time.Now().Add(-time.Duration(i) * time.Hour),
			}
			if _, err := responseColl.InsertOne(ctx, resp); err != nil {
				log.Fatalf("Failed to insert response for %s: %v", survey.ID, err)
			}
		}
		fmt.Printf("Seeded survey %q with %d responses\n", survey.Name, len(answers[survey.ID]))
	}
}
