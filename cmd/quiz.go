package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/abhisek/bs2tutor/internal/i18n"
	"github.com/abhisek/bs2tutor/internal/questiongen"
	"github.com/abhisek/bs2tutor/internal/session"
	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Run a plain-text quiz session",
	Long: "Generates a question queue and asks it on stdin/stdout. Answer with the option\n" +
		"letters, e.g. \"A\" or \"A,C\". Without --topic each question gets a random topic.",
	RunE: func(cmd *cobra.Command, args []string) error {
		topic, _ := cmd.Flags().GetString("topic")
		typeFlag, _ := cmd.Flags().GetString("type")
		count, _ := cmd.Flags().GetInt("count")
		langFlag, _ := cmd.Flags().GetString("lang")

		qtype, err := questiongen.ParseQuestionType(typeFlag)
		if err != nil {
			return err
		}

		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()
		if err := svc.requireAI(); err != nil {
			return err
		}

		lang := svc.lang
		if langFlag != "" {
			lang = i18n.ParseLang(langFlag)
		}
		in := session.BuildInput{
			Type:     qtype,
			Count:    count,
			Topic:    topic,
			Language: lang,
		}
		return runQuiz(cmd.Context(), svc.session, in, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	quizCmd.Flags().StringP("topic", "t", "", "Topic to generate questions for (random topics if empty)")
	quizCmd.Flags().String("type", "mc", "Question type: sc or mc")
	quizCmd.Flags().IntP("count", "n", 0, "Number of questions (default from config)")
	quizCmd.Flags().String("lang", "", "Question language: de or en (default from config)")
}

// runQuiz builds a queue on sess and plays it over r and w until every
// question is passed or r is exhausted.
func runQuiz(ctx context.Context, sess *session.Session, in session.BuildInput, r io.Reader, w io.Writer) error {
	lang := in.Language
	fmt.Fprintln(w, i18n.T(lang, i18n.MsgGenerating))

	turn, err := sess.BuildQueue(ctx, in)
	if err != nil {
		fmt.Fprintln(w, i18n.Localize(err, lang))
		return fmt.Errorf("build queue: %w", err)
	}

	scanner := bufio.NewScanner(r)
	for !turn.Done {
		q := turn.Question
		fmt.Fprintf(w, "\n%s · %s\n\n%s\n\n", turn.Progress, q.Type.Label(lang), q.Text)
		for _, label := range session.FormatChoices(q.Options) {
			fmt.Fprintln(w, "  "+label)
		}
		fmt.Fprint(w, "> ")

		if !scanner.Scan() {
			fmt.Fprintln(w)
			return scanner.Err()
		}
		ev := sess.Submit(parseAnswer(scanner.Text(), q))
		fmt.Fprintln(w, ev.Feedback)
		if ev.ShouldAdvance {
			fmt.Fprintln(w, q.SourceLine(lang))
			turn = sess.Advance()
		}
	}
	return nil
}

// parseAnswer picks option letters out of free-form input such as "a c",
// "A,C" or "ac".
func parseAnswer(line string, q *questiongen.QuestionSpec) []string {
	var keys []string
	for _, r := range strings.ToUpper(line) {
		if !unicode.IsLetter(r) {
			continue
		}
		if k := string(r); q.HasOption(k) {
			keys = append(keys, k)
		}
	}
	return session.NormalizeSelection(keys)
}
