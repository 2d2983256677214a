package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/pathfinder/internal/quiz"
)

// answersFile is the YAML accepted by `pathfinder prompt --answers`: one
// option per question, in quiz order.
type answersFile struct {
	Answers []string `yaml:"answers"`
}

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the prompt that would be sent for a set of answers",
	Long: "Reads answers from a YAML file of the form\n\n" +
		"  answers:\n    - Mathematics\n    - Building things\n\n" +
		"with one option per question in quiz order, and prints the generation prompt.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		def, err := loadQuiz(cfg)
		if err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("answers")
		partial, _ := cmd.Flags().GetBool("partial")

		answers, err := readAnswers(def, path)
		if err != nil {
			return err
		}
		if !partial {
			if err := quiz.ValidateComplete(def, answers); err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), quiz.BuildPrompt(def, answers))
		return nil
	},
}

func init() {
	promptCmd.Flags().StringP("answers", "a", "", "YAML file with answers in quiz order")
	promptCmd.Flags().Bool("partial", false, "Allow unanswered questions")
	_ = promptCmd.MarkFlagRequired("answers")
}

// readAnswers loads an answers file and applies it to a fresh answer set.
// An empty entry leaves that question unanswered.
func readAnswers(def *quiz.Definition, path string) (*quiz.AnswerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	var file answersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse answers %s: %w", path, err)
	}

	keys := def.Keys()
	if len(file.Answers) > len(keys) {
		return nil, fmt.Errorf("answers file has %d entries, quiz has %d questions", len(file.Answers), len(keys))
	}

	answers := quiz.NewAnswerSet(def)
	for i, opt := range file.Answers {
		if opt == "" {
			continue
		}
		k := keys[i]
		if err := answers.Select(k.Section, k.Question, opt); err != nil {
			return nil, fmt.Errorf("answer %d: %w", i+1, err)
		}
	}
	return answers, nil
}
