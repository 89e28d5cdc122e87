package database

import (
	"aiact_backend/internal/model"
	"encoding/json"

	"gorm.io/gorm"
)

// EntryQuestionCode is where every new assessment starts.
const EntryQuestionCode = "E4.N7.Q1"

func seedQuestionnaire(db *gorm.DB) error {
	var count int64
	db.Model(&model.QuestionnaireQuestion{}).Count(&count)
	if count > 0 {
		return nil
	}

	sections := DefaultSections()
	for i := range sections {
		if err := db.Create(&sections[i]).Error; err != nil {
			return err
		}
	}
	sectionID := map[string]uint{}
	for _, s := range sections {
		sectionID[s.Code] = s.ID
	}

	questions := DefaultQuestions(sectionID)
	for i := range questions {
		if err := db.Create(&questions[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// DefaultSections returns the questionnaire sections shipped with a fresh install.
func DefaultSections() []model.QuestionnaireSection {
	return []model.QuestionnaireSection{
		{Code: "E4", Title: "Cartographie du système", DisplayOrder: 1},
		{Code: "E5", Title: "Gouvernance des données", DisplayOrder: 2},
		{Code: "E6", Title: "Surveillance et gouvernance", DisplayOrder: 3},
	}
}

// DefaultQuestions returns the built-in question bank. sectionID maps section
// codes to their database ids; pass an empty map when persistence is not involved.
func DefaultQuestions(sectionID map[string]uint) []model.QuestionnaireQuestion {
	bool2 := func(nonImpact float64) []model.QuestionOption {
		return []model.QuestionOption{
			{Value: "oui", Label: "Oui", ScoreImpact: 0},
			{Value: "non", Label: "Non", ScoreImpact: nonImpact},
		}
	}

	questions := []model.QuestionnaireQuestion{
		{
			Code: "E4.N7.Q1", SectionID: sectionID["E4"], Type: model.SingleChoice, DisplayOrder: 1,
			Text: "Quel rôle votre organisation joue-t-elle vis-à-vis du système d'IA ?",
			Options: model.MustEncodeOptions([]model.QuestionOption{
				{Value: "fournisseur", Label: "Fournisseur"},
				{Value: "deployeur", Label: "Déployeur"},
				{Value: "importateur", Label: "Importateur"},
				{Value: "distributeur", Label: "Distributeur"},
				{Value: "fabricant", Label: "Fabricant de produit"},
				{Value: "mandataire", Label: "Mandataire"},
				{Value: "autre", Label: "Autre, précisez", RequiresDetail: true},
			}),
			DefaultNext: "E4.N7.Q2",
		},
		{
			Code: "E4.N7.Q2", SectionID: sectionID["E4"], Type: model.MultiChoice, DisplayOrder: 2,
			Text: "Dans quels domaines le système est-il utilisé ?",
			Options: model.MustEncodeOptions([]model.QuestionOption{
				{Value: "biometrie", Label: "Biométrie", RiskLevel: model.RiskHigh},
				{Value: "infrastructures_critiques", Label: "Infrastructures critiques", RiskLevel: model.RiskHigh},
				{Value: "education", Label: "Éducation et formation", RiskLevel: model.RiskHigh},
				{Value: "emploi", Label: "Emploi et gestion des travailleurs", RiskLevel: model.RiskHigh},
				{Value: "services_essentiels", Label: "Services essentiels", RiskLevel: model.RiskHigh},
				{Value: "repressif", Label: "Application de la loi", RiskLevel: model.RiskHigh},
				{Value: "migration", Label: "Migration et contrôle aux frontières", RiskLevel: model.RiskHigh},
				{Value: "justice", Label: "Justice et processus démocratiques", RiskLevel: model.RiskHigh},
				{Value: "aucun", Label: "Aucun de ces domaines"},
			}),
			DefaultNext: "E4.N7.Q3",
		},
		{
			Code: "E4.N7.Q3", SectionID: sectionID["E4"], Type: model.MultiChoice, DisplayOrder: 3,
			Text: "Le système réalise-t-il l'une de ces activités ?",
			Options: model.MustEncodeOptions([]model.QuestionOption{
				{Value: "identification_biometrique", Label: "Identification biométrique à distance", RiskLevel: model.RiskHigh},
				{Value: "manipulation_subliminale", Label: "Techniques subliminales ou manipulatrices", IsEliminatory: true, RiskLevel: model.RiskUnacceptable},
				{Value: "exploitation_vulnerabilites", Label: "Exploitation des vulnérabilités de personnes", IsEliminatory: true, RiskLevel: model.RiskUnacceptable},
				{Value: "notation_sociale", Label: "Notation sociale généralisée", IsEliminatory: true, RiskLevel: model.RiskUnacceptable},
				{Value: "police_predictive", Label: "Évaluation du risque de commission d'infractions", IsEliminatory: true, RiskLevel: model.RiskUnacceptable},
				{Value: "moissonnage_facial", Label: "Moissonnage non ciblé d'images faciales", IsEliminatory: true, RiskLevel: model.RiskUnacceptable},
				{Value: "reconnaissance_emotions_travail", Label: "Reconnaissance des émotions au travail ou en formation", IsEliminatory: true, RiskLevel: model.RiskUnacceptable},
				{Value: "categorisation_biometrique_sensible", Label: "Catégorisation biométrique de données sensibles", IsEliminatory: true, RiskLevel: model.RiskUnacceptable},
				{Value: "biometrie_temps_reel_public", Label: "Identification biométrique en temps réel dans l'espace public", IsEliminatory: true, RiskLevel: model.RiskUnacceptable},
				{Value: "aucune", Label: "Aucune de ces activités", NextQuestionCode: "E4.N8.Q12"},
			}),
			DefaultNext: "E5.N8.Q1",
		},
		{
			Code: "E5.N8.Q1", SectionID: sectionID["E5"], Type: model.Boolean, DisplayOrder: 1,
			Text:        "Disposez-vous d'un système de gestion des risques documenté ?",
			Options:     model.MustEncodeOptions(bool2(-5)),
			DefaultNext: "E5.N8.Q2",
		},
		{
			Code: "E5.N8.Q2", SectionID: sectionID["E5"], Type: model.Boolean, DisplayOrder: 2,
			Text:        "Les jeux de données d'entraînement sont-ils documentés ?",
			Options:     model.MustEncodeOptions(bool2(-3)),
			DefaultNext: "E5.N9.Q3",
		},
		{
			Code: "E5.N9.Q3", SectionID: sectionID["E5"], Type: model.Boolean, DisplayOrder: 3,
			Text:        "Des critères de qualité des données sont-ils définis ?",
			Options:     model.MustEncodeOptions(bool2(-3)),
			DefaultNext: "E5.N9.Q4",
		},
		{
			Code: "E5.N9.Q4", SectionID: sectionID["E5"], Type: model.Boolean, DisplayOrder: 4,
			Text:        "Les biais potentiels des données sont-ils examinés ?",
			Options:     model.MustEncodeOptions(bool2(-3)),
			DefaultNext: "E5.N9.Q5",
		},
		{
			Code: "E5.N9.Q5", SectionID: sectionID["E5"], Type: model.TagMultiselect, DisplayOrder: 5,
			Text: "Quelles catégories de données le système traite-t-il ?",
			Options: model.MustEncodeOptions([]model.QuestionOption{
				{Value: "donnees_personnelles", Label: "Données personnelles", ScoreImpact: -5},
				{Value: "donnees_strategiques", Label: "Données stratégiques", ScoreImpact: -5},
				{Value: "donnees_sensibles", Label: "Données sensibles", ScoreImpact: -5},
				{Value: "donnees_publiques", Label: "Données publiques"},
			}),
			DefaultNext: "E5.N9.Q6",
		},
		{
			Code: "E5.N9.Q6", SectionID: sectionID["E5"], Type: model.Boolean, DisplayOrder: 6,
			Text:        "Une documentation technique est-elle tenue à jour ?",
			Options:     model.MustEncodeOptions(bool2(-3)),
			DefaultNext: "E5.N9.Q7",
		},
		{
			Code: "E5.N9.Q7", SectionID: sectionID["E5"], Type: model.Boolean, DisplayOrder: 7,
			Text:        "Le système journalise-t-il automatiquement ses événements ?",
			Options:     model.MustEncodeOptions(bool2(-3)),
			DefaultNext: "E5.N9.Q8",
		},
		{
			Code: "E5.N9.Q8", SectionID: sectionID["E5"], Type: model.Boolean, DisplayOrder: 8,
			Text:        "Les utilisateurs sont-ils informés qu'ils interagissent avec une IA ?",
			Options:     model.MustEncodeOptions(bool2(-5)),
			DefaultNext: "E5.N9.Q9",
		},
		{
			Code: "E5.N9.Q9", SectionID: sectionID["E5"], Type: model.Boolean, DisplayOrder: 9,
			Text:        "Des mesures de cybersécurité spécifiques sont-elles en place ?",
			Options:     model.MustEncodeOptions(bool2(-3)),
			DefaultNext: "E4.N8.Q12",
		},
		{
			Code: "E4.N8.Q12", SectionID: sectionID["E4"], Type: model.Boolean, DisplayOrder: 4,
			Text: "Le système est-il exclusivement utilisé à des fins de recherche et développement ?",
			Options: model.MustEncodeOptions([]model.QuestionOption{
				{Value: "oui", Label: "Oui", ScoreImpact: 10, Terminal: true},
				{Value: "non", Label: "Non"},
			}),
			DefaultNext: "E4.N8.Q9",
		},
		{
			Code: "E4.N8.Q9", SectionID: sectionID["E4"], Type: model.Boolean, DisplayOrder: 5,
			Text: "Tenez-vous un registre des utilisateurs du système ?",
			Options: model.MustEncodeOptions([]model.QuestionOption{
				{Value: "oui", Label: "Oui", NextQuestionCode: "E4.N8.Q10"},
				{Value: "non", Label: "Non", ScoreImpact: -5, NextQuestionCode: "E4.N8.Q11"},
			}),
			DefaultNext: "E4.N8.Q11",
		},
		{
			Code: "E4.N8.Q10", SectionID: sectionID["E4"], Type: model.SingleChoice, DisplayOrder: 6,
			Text: "Combien d'utilisateurs le système compte-t-il ?",
			Options: model.MustEncodeOptions([]model.QuestionOption{
				{Value: "moins_100", Label: "Moins de 100"},
				{Value: "100_1000", Label: "Entre 100 et 1 000", ScoreImpact: -2},
				{Value: "plus_1000", Label: "Plus de 1 000", ScoreImpact: -2},
			}),
			DefaultNext: "E4.N8.Q11",
		},
		{
			Code: "E4.N8.Q11", SectionID: sectionID["E4"], Type: model.Boolean, DisplayOrder: 7,
			Text:        "Un contrôle humain peut-il interrompre le système à tout moment ?",
			Options:     model.MustEncodeOptions(bool2(-5)),
			DefaultNext: "E6.N10.Q1",
		},
		{
			Code: "E6.N10.Q1", SectionID: sectionID["E6"], Type: model.Boolean, DisplayOrder: 1,
			Text:        "Un plan de surveillance post-commercialisation est-il défini ?",
			Options:     model.MustEncodeOptions(bool2(-3)),
			DefaultNext: "E6.N10.Q2",
		},
		{
			Code: "E6.N10.Q2", SectionID: sectionID["E6"], Type: model.Boolean, DisplayOrder: 2,
			Text:        "Les incidents graves sont-ils notifiés aux autorités ?",
			Options:     model.MustEncodeOptions(bool2(-0.8)),
			DefaultNext: "E6.N10.Q3",
		},
		{
			Code: "E6.N10.Q3", SectionID: sectionID["E6"], Type: model.Boolean, DisplayOrder: 3,
			Text:    "Le personnel est-il formé à la maîtrise de l'IA ?",
			Options: model.MustEncodeOptions(bool2(-1)),
		},
	}

	for i := range questions {
		questions[i].Required = true
		questions[i].IsActive = true
	}
	return questions
}

func seedModels(db *gorm.DB) error {
	var count int64
	db.Model(&model.AIModel{}).Count(&count)
	if count > 0 {
		return nil
	}

	f := func(v float64) *float64 { return &v }
	encode := func(scores map[string]*float64) []byte {
		raw, _ := json.Marshal(scores)
		return raw
	}

	models := []model.AIModel{
		{
			Slug: "gpt-4o", Name: "GPT-4o", Provider: "OpenAI",
			PrincipleScores: encode(map[string]*float64{
				model.PrincipleTechnical:    f(3.2),
				model.PrinciplePrivacy:      f(2.87),
				model.PrincipleTransparency: f(3.0),
				model.PrincipleFairness:     f(3.0),
			}),
		},
		{
			Slug: "claude-3-5-sonnet", Name: "Claude 3.5 Sonnet", Provider: "Anthropic",
			PrincipleScores: encode(map[string]*float64{
				model.PrincipleTechnical:    f(3.4),
				model.PrinciplePrivacy:      f(3.1),
				model.PrincipleTransparency: f(2.9),
				model.PrincipleFairness:     f(3.05),
			}),
		},
		{
			Slug: "mistral-large", Name: "Mistral Large", Provider: "Mistral AI",
			PrincipleScores: encode(map[string]*float64{
				model.PrincipleTechnical:    f(3.0),
				model.PrinciplePrivacy:      nil,
				model.PrincipleTransparency: f(2.8),
				model.PrincipleFairness:     f(2.6),
			}),
		},
	}
	for i := range models {
		if err := db.Create(&models[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
