package server

import "github.com/abhisek/pathfinder/internal/quiz"

func testDefinition() *quiz.Definition {
	return &quiz.Definition{
		Title: "Mini",
		Sections: []quiz.Section{{
			Title:     "Only",
			Questions: []quiz.Question{{Text: "Ready?", Options: []string{"yes", "no"}}},
		}},
	}
}
