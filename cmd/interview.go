package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rishabhsingroha/hr-screener/internal/config"
	"github.com/rishabhsingroha/hr-screener/internal/screening"
)

const (
	PromptNext   = "Next question"
	PromptRepeat = "Repeat the question"
	PromptFinish = "Finish the interview"

	demoFallbackAnswer = "I understand."
)

// demoAnswers replay a scripted candidate, one answer per question in order.
var demoAnswers = []string{
	"Hi, I'm John Smith. I have 5 years of experience in software development.",
	"My key skills are Python, React, and Cloud technologies.",
	"I have 5 years of experience.",
	"I'm based in New York.",
	"Yes, I can join within 2 weeks.",
}

var errFinish = errors.New("interview finished")

var nextPrompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptNext, PromptRepeat, PromptFinish},
}

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run a scripted screening interview in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		interview(cmd)
	},
}

func init() {
	rootCmd.AddCommand(interviewCmd)

	interviewCmd.Flags().Bool("demo", false, "answer every question with a scripted candidate")
	interviewCmd.Flags().StringP("output", "o", outputJSON, "output format: json or yaml")
}

func interview(cmd *cobra.Command) {
	ctx := context.Background()
	p := mustPipeline(ctx)

	demo, _ := cmd.Flags().GetBool("demo")
	format, _ := cmd.Flags().GetString("output")
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, p.config.Interview.Greeting)

	answers, err := askQuestions(ctx, out, p, p.config.Interview.Questions, demo)
	if err != nil && !errors.Is(err, errFinish) {
		p.logger.Fatal("running the interview", zap.Error(err))
	}

	if len(answers) == 0 {
		p.logger.Info("no answers collected")
		return
	}

	overall := p.screener.Screen(ctx, strings.Join(answers, " "))
	fmt.Fprintln(out, "\nOverall evaluation:")
	if err := writeOutput(out, format, overall.Result); err != nil {
		p.logger.Fatal("writing output", zap.Error(err))
	}

	fmt.Fprintln(out, p.config.Interview.Farewell)
}

func askQuestions(ctx context.Context, out io.Writer, p *pipeline, questions []config.Question, demo bool) ([]string, error) {
	var answers []string

	for i := 0; i < len(questions); i++ {
		q := questions[i]

		answer, err := answerFor(out, q, i, demo)
		if err != nil {
			return answers, err
		}

		s := p.screener.Screen(ctx, answer)
		printAnswerSummary(out, q, s)

		if demo {
			answers = append(answers, answer)
			continue
		}

		_, action, err := nextPrompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				return append(answers, answer), errFinish
			}
			return answers, err
		}

		switch action {
		case PromptRepeat:
			i--
			continue
		case PromptFinish:
			return append(answers, answer), nil
		}

		answers = append(answers, answer)
	}

	return answers, nil
}

func answerFor(out io.Writer, q config.Question, index int, demo bool) (string, error) {
	if demo {
		answer := demoFallbackAnswer
		if index < len(demoAnswers) {
			answer = demoAnswers[index]
		}
		fmt.Fprintf(out, "%s\n> %s\n", q.Text, answer)
		return answer, nil
	}

	answerPrompt := promptui.Prompt{
		Label: q.Text,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("answer must not be empty")
			}
			return nil
		},
	}

	answer, err := answerPrompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrInterrupt) {
			return "", errFinish
		}
		return "", fmt.Errorf("question %q: %w", q.ID, err)
	}

	return strings.TrimSpace(answer), nil
}

func printAnswerSummary(out io.Writer, q config.Question, s screening.Screening) {
	info := s.Analysis.ExtractedInfo
	fmt.Fprintf(out, "  [%s] sentiment=%s decision=%s", q.ID, s.Result.Sentiment, s.Result.Decision)
	if len(s.Analysis.ToneFlags) > 0 {
		fmt.Fprintf(out, " flags=%v", s.Analysis.ToneFlags)
	}
	if info.Experience != "" {
		fmt.Fprintf(out, " experience=%q", info.Experience)
	}
	if info.Location != "" {
		fmt.Fprintf(out, " location=%q", info.Location)
	}
	fmt.Fprintln(out)
}
