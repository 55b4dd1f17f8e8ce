package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rishabhsingroha/hr-screener/internal/screening"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [transcript...]",
	Short: "Analyze and evaluate candidate answers",
	Long: "Evaluate one or more transcripts given as arguments, read line by line from --file " +
		"(use - for stdin), or transcribed from --audio-url.",
	Run: func(cmd *cobra.Command, args []string) {
		evaluate(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringP("file", "f", "", "file with one transcript per line, - for stdin")
	evaluateCmd.Flags().String("audio-url", "", "transcribe and evaluate the answer recorded at this url")
	evaluateCmd.Flags().StringP("output", "o", outputJSON, "output format: json or yaml")
	evaluateCmd.Flags().Bool("details", false, "print the full analysis alongside each decision")
}

func evaluate(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	p := mustPipeline(ctx)

	file, _ := cmd.Flags().GetString("file")
	audioURL, _ := cmd.Flags().GetString("audio-url")
	format, _ := cmd.Flags().GetString("output")
	details, _ := cmd.Flags().GetBool("details")

	var screenings []screening.Screening

	if audioURL != "" {
		s, err := p.screener.ScreenAudio(ctx, audioURL)
		if err != nil {
			p.logger.Fatal("processing audio response", zap.Error(err))
		}
		screenings = append(screenings, s)
	}

	transcripts := args
	if file != "" {
		fromFile, err := readTranscripts(file, cmd.InOrStdin())
		if err != nil {
			p.logger.Fatal("reading transcripts", zap.Error(err))
		}
		transcripts = append(transcripts, fromFile...)
	}

	if len(transcripts) == 0 && len(screenings) == 0 {
		p.logger.Fatal("nothing to evaluate: pass transcripts as arguments, --file or --audio-url")
	}

	batch, err := p.screener.ScreenAll(ctx, transcripts)
	if err != nil {
		p.logger.Fatal("evaluating transcripts", zap.Error(err))
	}
	screenings = append(screenings, batch...)

	if err := writeOutput(cmd.OutOrStdout(), format, present(screenings, details)); err != nil {
		p.logger.Fatal("writing output", zap.Error(err))
	}
}

// present keeps the flat consumer shape unless details are requested. A single
// result is printed on its own rather than as a list.
func present(screenings []screening.Screening, details bool) any {
	out := make([]any, len(screenings))
	for i, s := range screenings {
		if details {
			out[i] = s
		} else {
			out[i] = s.Result
		}
	}

	if len(out) == 1 {
		return out[0]
	}
	return out
}

func readTranscripts(path string, stdin io.Reader) ([]string, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open transcripts: %w", err)
		}
		defer f.Close()
		r = f
	}

	var transcripts []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			transcripts = append(transcripts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read transcripts: %w", err)
	}

	return transcripts, nil
}
