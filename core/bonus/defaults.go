package bonus

// DefaultCatalog returns a fresh copy of the built-in catalog, used when no snapshot
// has been persisted yet.
func DefaultCatalog() []Resource {
	return []Resource{
		{
			ID:            "bonus_default_pronuncia",
			Title:         "Guia de Pronúncia do Inglês Americano",
			Description:   "Os sons que mais confundem brasileiros, explicados passo a passo.",
			Type:          TypeGuide,
			Thumbnail:     DefaultThumbnail,
			TotalLessons:  2,
			TotalDuration: "45min",
			Rating:        4.8,
			Downloads:     0,
			Lessons: []Lesson{
				{
					ID:          "lesson_default_pronuncia_1",
					Title:       "Aula 1: O som do TH",
					Description: "Diferença entre o TH sonoro e o TH surdo.",
					VideoURL:    "https://www.youtube.com/embed/mttHTuEK5Xs",
					Duration:    "12:00",
					TextContent: "# O som do TH\n\nPosicione a ponta da língua entre os dentes e sopre.\n\n" +
						"## Pratique\n\n- think\n- this\n- three\n- mother",
					Exercises: []Exercise{
						{
							ID:       "exercise_default_pronuncia_1",
							Question: "Qual destas palavras tem o TH sonoro?",
							Options: []string{
								"think",
								"this",
								"three",
								"thank",
							},
							CorrectAnswer: 1,
							Explanation:   "Em \"this\" as cordas vocais vibram; nas outras o TH é surdo.",
						},
					},
				},
				{
					ID:          "lesson_default_pronuncia_2",
					Title:       "Aula 2: Vogais curtas e longas",
					Description: "Ship ou sheep? Aprenda a diferença.",
					VideoURL:    "https://www.youtube.com/embed/mttHTuEK5Xs",
					Duration:    "15:00",
					TextContent: "# Vogais curtas e longas\n\nA vogal longa /iː/ é mais tensa e mais comprida que a curta /ɪ/.",
					Exercises: []Exercise{
						{
							ID:            "exercise_default_pronuncia_2",
							Question:      "Qual palavra tem a vogal longa /iː/?",
							Options:       []string{"ship", "sit", "sheep", "bit"},
							CorrectAnswer: 2,
						},
					},
				},
			},
		},
		{
			ID:            "bonus_default_phrasal_verbs",
			Title:         "E-book: Phrasal Verbs Essenciais",
			Description:   "Os phrasal verbs mais usados no dia a dia, com exemplos reais.",
			Type:          TypeEbook,
			Thumbnail:     DefaultThumbnail,
			TotalLessons:  1,
			TotalDuration: "1h",
			Rating:        4.6,
			Downloads:     0,
			Lessons: []Lesson{
				{
					ID:          "lesson_default_phrasal_verbs_1",
					Title:       "Capítulo 1: Get",
					Description: "Get up, get over, get along e companhia.",
					Duration:    "20:00",
					TextContent: "# Get\n\n- **get up**: levantar\n- **get over**: superar\n- **get along**: se dar bem",
					Exercises: []Exercise{
						{
							ID:       "exercise_default_phrasal_verbs_1",
							Question: "\"It took me months to ___ the breakup.\"",
							Options: []string{
								"get up",
								"get over",
								"get along",
								"get in",
							},
							CorrectAnswer: 1,
							Explanation:   "\"Get over\" significa superar algo.",
						},
					},
				},
			},
		},
		{
			ID:            "bonus_default_listening",
			Title:         "Áudio: Listening para Iniciantes",
			Description:   "Diálogos curtos em velocidade reduzida para treinar o ouvido.",
			Type:          TypeAudio,
			Thumbnail:     DefaultThumbnail,
			TotalLessons:  1,
			TotalDuration: "30min",
			Rating:        4.5,
			Downloads:     0,
			Lessons: []Lesson{
				{
					ID:          "lesson_default_listening_1",
					Title:       "Faixa 1: No aeroporto",
					Description: "Check-in, bagagem e portão de embarque.",
					Duration:    "08:30",
					TextContent: "# No aeroporto\n\nOuça o diálogo e repita cada frase em voz alta.",
					Exercises:   []Exercise{},
				},
			},
		},
	}
}

// starterLesson is the introductory lesson seeded by NewResource.WithStarterLesson.
func starterLesson(title string) (Lesson, NewExercise) {
	lesson := Lesson{
		Title:       "Aula 1: Introdução",
		Description: "Primeira aula do curso",
		VideoURL:    "https://www.youtube.com/embed/mttHTuEK5Xs",
		Duration:    "15:00",
		TextContent: "# " + title + "\n\nBem-vindo ao curso! Esta é a primeira aula.\n\n" +
			"## Conteúdo da Aula\n\nAqui você pode adicionar o conteúdo da aula em markdown.",
		Exercises: []Exercise{},
	}
	exercise := NewExercise{
		Question: "Esta é uma pergunta de exemplo?",
		Options: []string{
			"Sim, é uma pergunta de exemplo",
			"Não, não é uma pergunta",
			"Talvez seja uma pergunta",
			"Não sei responder",
		},
		CorrectAnswer: 0,
		Explanation:   "Esta é realmente uma pergunta de exemplo para demonstrar o sistema.",
	}
	return lesson, exercise
}
